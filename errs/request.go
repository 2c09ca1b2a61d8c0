package errs

import (
	"errors"
	"net/http"
)

var (
	Unauthorized = &ApiErr{StatusCode: http.StatusUnauthorized, err: ErrUnauthorized}
)

// Authentication & Authorization Errors
var (
	ErrMissingToken    = errors.New("missing session token")
	ErrInvalidToken    = errors.New("invalid session token")
	ErrTokenExpired    = errors.New("session expired")
	ErrNotPermitted    = errors.New("account is not permitted to administer this site")
	ErrInvalidState    = errors.New("invalid sign-in state")
	ErrUnverifiedEmail = errors.New("email address is not verified")
)

// Authentication & Authorization Error Constructors
func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrUnauthorized,
		Details:    "Missing session token",
		Field:      "authorization",
		Cause:      ErrMissingToken,
	}
}

func NewInvalidTokenError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrUnauthorized,
		Details:    "Invalid session token",
		Field:      "authorization",
		Cause:      errors.Join(ErrInvalidToken, cause),
	}
}

func NewTokenExpiredError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrUnauthorized,
		Details:    "Session has expired",
		Field:      "authorization",
		Cause:      ErrTokenExpired,
	}
}

func NewNotPermittedError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrUnauthorized,
		Details:    "Account is not on the admin allow-list",
		Field:      "email",
		Cause:      ErrNotPermitted,
	}
}

func IsTokenExpiredError(err error) bool {
	var apiErr *ApiErr
	return errors.As(err, &apiErr) && errors.Is(apiErr.Cause, ErrTokenExpired)
}

func IsNotPermittedError(err error) bool {
	var apiErr *ApiErr
	return errors.As(err, &apiErr) && errors.Is(apiErr.Cause, ErrNotPermitted)
}
