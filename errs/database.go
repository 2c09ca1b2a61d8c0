package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// NewInvalidTransitionError reports a status change the lifecycle does not allow.
func NewInvalidTransitionError(entity, from, to string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("cannot change %s status from %s to %s", entity, from, to),
		Field:      "status",
		Cause:      ErrInvalidTransition,
	}
}

func IsInvalidTransition(err error) bool {
	var apiErr *ApiErr
	return errors.As(err, &apiErr) && errors.Is(apiErr.Cause, ErrInvalidTransition)
}

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	// Errors that already carry a status (e.g. transition checks) pass through untouched
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}

	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if cause != nil {
		errStr := strings.ToLower(cause.Error())
		switch {
		case errors.Is(cause, gorm.ErrDuplicatedKey),
			strings.Contains(errStr, "duplicate key"),
			strings.Contains(errStr, "unique constraint"):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				err:        fmt.Errorf("%s already exists", entity),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "foreign key constraint"):
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				err:        fmt.Errorf("invalid reference in %s", entity),
				Details:    "The referenced resource does not exist or cannot be linked",
				Cause:      cause,
			}
		case errors.Is(cause, gorm.ErrRecordNotFound):
			return &ApiErr{
				StatusCode: http.StatusNotFound,
				err:        fmt.Errorf("%s not found", entity),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "connection refused"),
			strings.Contains(errStr, "failed to connect"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrDatabaseConnection,
				Details:    "Unable to connect to database",
				Cause:      cause,
			}
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}
