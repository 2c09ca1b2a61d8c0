package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/truest-construction/site-backend/database"
	"github.com/truest-construction/site-backend/errs"
	"github.com/truest-construction/site-backend/metrics"
)

const healthPingTimeout = 2 * time.Second

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          database.Database
	startupTime time.Time
}

func newHealthHandler(db database.Database, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		startupTime: startupTime,
	}
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Uptime string `json:"uptime" example:"3h2m1s"`
}

// health pings the database and reports uptime
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ErrorResponse "Database unavailable"
// @Router /health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error().Err(err).Msg("health check failed")
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "Database unavailable"))
			return
		}
		if stats, err := h.db.Stats(); err == nil {
			metrics.UpdateDBConnections(stats)
		}

		h.responder.WriteJSON(w, HealthResponse{
			Status: "ok",
			Uptime: time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
