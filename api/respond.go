package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/truest-construction/site-backend/errs"
)

const maxResponseSize = 10 * 1024 * 1024 // 10MB

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

// WriteJSONStatus marshals data before touching the response so a marshal failure can still become a 500.
func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")
		status = http.StatusRequestEntityTooLarge
		jsonData, _ = json.Marshal(map[string]any{
			"error":        "Response too large",
			"maxSizeMB":    maxResponseSize / (1024 * 1024),
			"actualSizeMB": len(jsonData) / (1024 * 1024),
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps an *errs.ApiErr to its status. Anything else is logged and answered with
// a generic 500 so internals never reach the client.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSONStatus(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Internal Server Error",
			Status: "error",
		})
		return
	}

	response := ErrorResponse{
		Error:  apiErr.Error(),
		Status: "error",
		Field:  apiErr.Field,
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())
	} else {
		response.Details = apiErr.Details
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
