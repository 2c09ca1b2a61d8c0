package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/truest-construction/site-backend/auth"
	"github.com/truest-construction/site-backend/errs"
	"github.com/truest-construction/site-backend/metrics"
	"github.com/truest-construction/site-backend/site"
)

const stateCookiePath = "/auth"

type authHandler struct {
	responder     Responder
	pages         pageWriter
	logger        zerolog.Logger
	sessions      *auth.SessionManager
	policy        auth.AdminPolicy
	provider      auth.Provider
	secureCookies bool
}

func newAuthHandler(deps Dependencies) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:     NewResponder(logger),
		pages:         pageWriter{renderer: deps.Renderer, logger: logger},
		logger:        logger,
		sessions:      deps.Sessions,
		policy:        deps.Policy,
		provider:      deps.Provider,
		secureCookies: deps.SecureCookies,
	}
}

// SessionResponse describes the caller's session.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
}

var errSignInUnavailable = errs.NewApiErr(http.StatusServiceUnavailable, "Sign-in is not configured")

// signIn starts the OAuth flow, remembering where to return in a signed state cookie
// @Summary Start admin sign-in
// @Tags Auth
// @Param callbackUrl query string false "Relative path to return to"
// @Success 302
// @Router /auth/signin [get]
func (h authHandler) signIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.provider == nil || h.sessions == nil {
			h.responder.WriteError(w, errSignInUnavailable)
			return
		}

		state, err := h.sessions.IssueState(r.URL.Query().Get("callbackUrl"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Failed to start sign-in", err))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     auth.StateCookieName,
			Value:    state,
			Path:     stateCookiePath,
			MaxAge:   int((10 * time.Minute).Seconds()),
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusFound)
	}
}

// callback finishes the OAuth flow and issues a session for allowed administrators
// @Summary Complete admin sign-in
// @Tags Auth
// @Param code query string true "Authorization code"
// @Param state query string true "State issued by /auth/signin"
// @Success 302
// @Failure 400 {object} ErrorResponse "Invalid sign-in state"
// @Failure 403 "Account not permitted"
// @Router /auth/callback [get]
func (h authHandler) callback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.provider == nil || h.sessions == nil {
			h.responder.WriteError(w, errSignInUnavailable)
			return
		}
		h.clearCookie(w, auth.StateCookieName, stateCookiePath)

		query := r.URL.Query()
		if providerErr := query.Get("error"); providerErr != "" {
			metrics.RecordSignIn("failure")
			h.responder.WriteError(w, errs.NewBadRequestError("Sign-in was cancelled: "+providerErr))
			return
		}

		cookie, err := r.Cookie(auth.StateCookieName)
		if err != nil || cookie.Value == "" || cookie.Value != query.Get("state") {
			metrics.RecordSignIn("failure")
			h.responder.WriteError(w, errs.NewBadRequestError(errs.ErrInvalidState.Error()))
			return
		}
		callbackURL, err := h.sessions.ValidateState(cookie.Value)
		if err != nil {
			metrics.RecordSignIn("failure")
			h.logger.Warn().Err(err).Msg("rejected sign-in state")
			h.responder.WriteError(w, errs.NewBadRequestError(errs.ErrInvalidState.Error()))
			return
		}

		email, err := h.provider.Email(r.Context(), query.Get("code"))
		if err != nil {
			metrics.RecordSignIn("failure")
			if errors.Is(err, errs.ErrUnverifiedEmail) {
				h.pages.render(w, r, http.StatusForbidden, site.PageForbidden, "Access Denied", site.ForbiddenView{})
				return
			}
			if errs.StatusCode(err) < http.StatusInternalServerError {
				h.responder.WriteError(w, err)
				return
			}
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Sign-in failed", err))
			return
		}

		if !h.policy.Allows(email) {
			metrics.RecordSignIn("denied")
			h.logger.Warn().Str("email", email).Msg("sign-in denied by admin policy")
			h.pages.render(w, r, http.StatusForbidden, site.PageForbidden, "Access Denied", site.ForbiddenView{Email: email})
			return
		}

		token, expiresAt, err := h.sessions.Issue(email)
		if err != nil {
			metrics.RecordSignIn("failure")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Sign-in failed", err))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     auth.SessionCookieName,
			Value:    token,
			Path:     "/",
			Expires:  expiresAt,
			MaxAge:   int(time.Until(expiresAt).Seconds()),
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		metrics.RecordSignIn("success")
		h.logger.Info().Str("email", email).Msg("admin signed in")
		http.Redirect(w, r, callbackURL, http.StatusFound)
	}
}

// signOut clears the session cookie
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /auth/signout [post]
func (h authHandler) signOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.clearCookie(w, auth.SessionCookieName, "/")
		h.responder.WriteJSON(w, SuccessResponse{Success: true})
	}
}

// session reports whether the caller holds an allowed admin session
// @Summary Current session
// @Tags Auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /auth/session [get]
func (h authHandler) session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.sessions == nil {
			h.responder.WriteJSON(w, SessionResponse{})
			return
		}
		email, err := h.sessions.Validate(sessionToken(r))
		if err != nil || !h.policy.Allows(email) {
			h.responder.WriteJSON(w, SessionResponse{})
			return
		}
		h.responder.WriteJSON(w, SessionResponse{Authenticated: true, Email: email})
	}
}

func (h authHandler) clearCookie(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
