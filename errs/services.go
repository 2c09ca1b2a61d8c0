package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party Notification Errors
var (
	ErrInvalidAPIKey      = errors.New("invalid API key")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrNotificationFailed = errors.New("notification failed")
)

// Configuration & Environment Errors
var ErrEnvironmentVariable = errors.New("environment variable error")

// NewProviderError classifies a non-2xx response from an outbound provider such as Resend or Twilio.
func NewProviderError(provider string, statusCode int, message string) *ApiErr {
	sentinel := ErrNotificationFailed
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		sentinel = ErrInvalidAPIKey
	case statusCode == http.StatusTooManyRequests:
		sentinel = ErrRateLimitExceeded
	case statusCode >= 500:
		sentinel = ErrServiceUnavailable
	}

	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        fmt.Errorf("%s: %w", provider, sentinel),
		Details:    fmt.Sprintf("%s returned status %d: %s", provider, statusCode, message),
		Field:      provider,
	}
}

func NewNotificationError(provider string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        fmt.Errorf("%s: %w", provider, ErrNotificationFailed),
		Details:    fmt.Sprintf("Failed to deliver notification via %s", provider),
		Cause:      cause,
		Field:      provider,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        fmt.Errorf("%s: %w", varName, ErrEnvironmentVariable),
		Details:    fmt.Sprintf("Environment variable %s is not set or invalid", varName),
		Field:      varName,
	}
}

func IsRateLimitError(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

func IsInvalidAPIKeyError(err error) bool {
	return errors.Is(err, ErrInvalidAPIKey)
}

func IsNotificationError(err error) bool {
	return errors.Is(err, ErrNotificationFailed) || errors.Is(err, ErrInvalidAPIKey) ||
		errors.Is(err, ErrRateLimitExceeded) || errors.Is(err, ErrServiceUnavailable)
}
