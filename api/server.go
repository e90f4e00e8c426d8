package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/buildsy/buildsy-backend/config"
	"github.com/buildsy/buildsy-backend/errs"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(deps Dependencies, c map[string]string) (Server, error) {
	if deps.Verifier == nil || deps.Chat == nil {
		return Server{}, fmt.Errorf("api: verifier and chat service are required")
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	router := newRouter(deps, withConfig(c), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 180),
		WriteTimeout: config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 180),
		IdleTimeout:  config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 180),
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

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(corsMiddleware(config.GetList(router.config, "ACCEPTED_ORIGINS")))
	chiRouter.Use(metricsMiddleware(deps.Metrics))
	chiRouter.Use(HTTPLoggingMiddleware)

	notFound := func(w http.ResponseWriter, r *http.Request) {
		NewResponder(log.Logger).WriteError(w, errs.NewRouteNotFoundError(r.URL.Path))
	}
	chiRouter.NotFound(notFound)
	chiRouter.MethodNotAllowed(notFound)

	if deps.Metrics != nil {
		chiRouter.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	handlers := initializeHandlers(deps, router.startupTime)
	setupRoutes(chiRouter, handlers, newAuthMiddleware(deps.Verifier))

	return chiRouter
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
