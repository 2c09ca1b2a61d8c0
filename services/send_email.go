package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/truest-construction/site-backend/errs"
)

const resendEmailsURL = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Email is one outgoing message.
type Email struct {
	Subject string
	Html    string
	Text    string
	ReplyTo string
}

// ResendMailer sends email through the Resend HTTP API.
type ResendMailer struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewResendMailer(apiKey, from string, logger zerolog.Logger) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errs.NewEnvironmentVariableError("RESEND_API_KEY")
	}
	if from == "" {
		return nil, errs.NewEnvironmentVariableError("RESEND_FROM_EMAIL")
	}
	return &ResendMailer{
		apiKey:     apiKey,
		from:       from,
		endpoint:   resendEmailsURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}, nil
}

// SendEmail sends email to every recipient in one API call and returns the Resend message id.
func (m *ResendMailer) SendEmail(ctx context.Context, email Email, recipients []string) (string, error) {
	if len(recipients) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}

	payload := ResendEmailRequest{
		From:    m.from,
		To:      recipients,
		Subject: email.Subject,
		Html:    email.Html,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", errs.NewNotificationError("resend", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return "", errs.NewProviderError("resend", resp.StatusCode, errorResp.Message)
		}
		return "", errs.NewProviderError("resend", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
		return "", nil
	}
	m.logger.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	return emailResponse.ID, nil
}
