package api

import (
	"net/http"
	"net/url"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/truest-construction/site-backend/auth"
	"github.com/truest-construction/site-backend/errs"
)

// adminMiddleware gates the admin surface on a valid session whose email the policy allows.
type adminMiddleware struct {
	responder Responder
	logger    zerolog.Logger
	sessions  *auth.SessionManager
	policy    auth.AdminPolicy
}

func newAdminMiddleware(sessions *auth.SessionManager, policy auth.AdminPolicy) adminMiddleware {
	logger := log.With().Str("handlerName", "adminMiddleware").Logger()
	return adminMiddleware{
		responder: NewResponder(logger),
		logger:    logger,
		sessions:  sessions,
		policy:    policy,
	}
}

// authenticate answers 401 before the wrapped handler runs unless the request carries
// an allowed admin session.
func (m adminMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, err := m.admin(r)
		if err != nil {
			if !errs.IsUnauthorized(err) {
				m.logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected session check failure")
				err = errs.Unauthorized
			}
			m.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("admin request rejected")
			m.responder.WriteError(w, err)
			return
		}

		updatedReq := r.WithContext(ctxWithAdminEmail(r.Context(), email))
		next.ServeHTTP(w, updatedReq)
	})
}

// requireSession sends browsers without an allowed session to the sign-in flow,
// returning them to the requested page afterwards.
func (m adminMiddleware) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, err := m.admin(r)
		if err != nil {
			http.Redirect(w, r, signInURL(r.URL.RequestURI()), http.StatusFound)
			return
		}

		updatedReq := r.WithContext(ctxWithAdminEmail(r.Context(), email))
		next.ServeHTTP(w, updatedReq)
	})
}

func (m adminMiddleware) admin(r *http.Request) (string, error) {
	if m.sessions == nil {
		return "", errs.Unauthorized
	}
	email, err := m.sessions.Validate(sessionToken(r))
	if err != nil {
		return "", err
	}
	if !m.policy.Allows(email) {
		m.logger.Warn().Str("email", email).Str("path", r.URL.Path).Msg("session account not permitted")
		return "", errs.NewNotPermittedError()
	}
	return email, nil
}

// sessionToken reads the session cookie, falling back to a bearer token.
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

func signInURL(callbackURL string) string {
	return "/auth/signin?callbackUrl=" + url.QueryEscape(auth.SafeCallbackURL(callbackURL))
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
