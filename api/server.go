package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/truest-construction/site-backend/auth"
	"github.com/truest-construction/site-backend/config"
	"github.com/truest-construction/site-backend/database"
	"github.com/truest-construction/site-backend/metrics"
	"github.com/truest-construction/site-backend/services"
	"github.com/truest-construction/site-backend/site"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// Dependencies are the collaborators the router is built from.
type Dependencies struct {
	Database database.Database
	Policy   auth.AdminPolicy
	Sessions *auth.SessionManager
	// Provider may be nil, in which case sign-in answers 503 and only bearer sessions work.
	Provider auth.Provider
	Notifier *services.Notifier
	Renderer *site.Renderer

	SecureCookies   bool
	AcceptedOrigins []string
}

func NewServer(c map[string]string, deps Dependencies) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	router, err := newRouter(deps, withConfig(c), withStartupTime(startupTime))
	if err != nil {
		return Server{}, err
	}

	server := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadTimeout:       config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 30),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 30),
		IdleTimeout:       config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 120),
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.startupTime.IsZero() {
		router.startupTime = time.Now()
	}

	if deps.Renderer == nil {
		renderer, err := site.NewRenderer(config.GetString(router.config, "SITE_NAME", "Tru-Est Construction"))
		if err != nil {
			return nil, err
		}
		deps.Renderer = renderer
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(metrics.PrometheusMiddleware)

	if len(deps.AcceptedOrigins) > 0 {
		chiRouter.Use(cors.Handler(cors.Options{
			AllowedOrigins:   deps.AcceptedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	handlers := initializeHandlers(deps, router.startupTime)
	admin := newAdminMiddleware(deps.Sessions, deps.Policy)

	setupRoutes(chiRouter, handlers, admin)

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
