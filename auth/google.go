package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/truest-construction/site-backend/errs"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// Provider is an OAuth identity provider that resolves a sign-in to a verified email.
type Provider interface {
	AuthCodeURL(state string) string
	Email(ctx context.Context, code string) (string, error)
}

// GoogleProvider signs administrators in with their Google account.
type GoogleProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

type GoogleOption func(*GoogleProvider)

// WithEndpoints points the provider at different token and userinfo endpoints.
func WithEndpoints(endpoint oauth2.Endpoint, userInfoURL string) GoogleOption {
	return func(p *GoogleProvider) {
		p.config.Endpoint = endpoint
		p.userInfoURL = userInfoURL
	}
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string, opts ...GoogleOption) *GoogleProvider {
	provider := &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email"},
			Endpoint:     endpoints.Google,
		},
		userInfoURL: googleUserInfoURL,
	}
	for _, opt := range opts {
		opt(provider)
	}
	return provider
}

// AuthCodeURL returns the consent page URL carrying state.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.SetAuthURLParam("prompt", "select_account"))
}

type googleUserInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// Email exchanges the authorization code and returns the account's verified email.
func (p *GoogleProvider) Email(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", errs.NewBadRequestError("missing authorization code")
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchanging authorization code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", errs.NewProviderError("google", resp.StatusCode, string(body))
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decoding user info: %w", err)
	}
	if info.Email == "" {
		return "", errors.New("user info has no email")
	}
	if !info.EmailVerified {
		return "", errs.ErrUnverifiedEmail
	}
	return normalizeEmail(info.Email), nil
}
