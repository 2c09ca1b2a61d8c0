package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/truest-construction/site-backend/errs"
)

const (
	maxAdminBodyBytes   = 1 << 20
	maxContactBodyBytes = 64 << 10
)

// decodeJSON reads one JSON value from a size-capped body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	body := http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			return errs.NewMaxBodySizeExceededError(limit)
		case errors.Is(err, io.EOF):
			return errs.NewInvalidJSONError(errors.New("request body is empty"))
		default:
			return errs.NewInvalidJSONError(err)
		}
	}
	return nil
}

// idParam reads and parses the ?id= query parameter used by every admin collection.
func idParam(r *http.Request, entity string) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("id"))
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError(entity + " ID is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError("id", "must be a UUID")
	}
	return id, nil
}

// hasIDParam reports whether the request names a single entity.
func hasIDParam(r *http.Request) bool {
	return r.URL.Query().Has("id")
}
