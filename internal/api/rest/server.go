package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/fortuna/ceres/internal/backfill"
	"github.com/fortuna/ceres/internal/scheduler"
	"github.com/fortuna/ceres/internal/service"
	"github.com/fortuna/ceres/pkg/metrics"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// HealthChecker is implemented by the database and the Redis cache.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// SchedulerStatus reports the nightly task.
type SchedulerStatus interface {
	GetStatus() scheduler.Status
}

// Deps are the services behind the API. Backfill, Scheduler, Metrics and
// Health are optional.
type Deps struct {
	Games     *service.GameService
	Ratings   *service.RatingService
	Backfill  *backfill.Service
	Scheduler SchedulerStatus
	Metrics   *metrics.Manager
	Health    map[string]HealthChecker
	Log       logrus.FieldLogger
}

// Server represents the REST API server
type Server struct {
	server *http.Server
	router *mux.Router
}

// NewServer creates a new REST API server
func NewServer(addr string, deps Deps) *Server {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	log := deps.Log.WithField("component", "rest")
	handler := NewHandler(deps)

	router := mux.NewRouter()

	router.Use(RequestIDMiddleware)
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggingMiddleware(log))
	router.Use(CORSMiddleware(nil))

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	if reg := deps.Metrics.Registry(); reg != nil {
		router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")
	}

	api := router.PathPrefix("/api/v1").Subrouter()

	// Games
	api.HandleFunc("/games", handler.ListGames).Methods("GET")
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")
	api.HandleFunc("/games/{gameID}/timeline", handler.GetTimeline).Methods("GET")

	// Ratings
	api.HandleFunc("/ratings", handler.GetRatings).Methods("GET")
	api.HandleFunc("/ratings", handler.RunRatings).Methods("POST")

	if deps.Scheduler != nil {
		api.HandleFunc("/scheduler/status", handler.SchedulerStatus).Methods("GET")
	}

	// Backfill operations
	if deps.Backfill != nil {
		backfillHandler := NewBackfillHandler(deps.Backfill)
		api.HandleFunc("/backfill", backfillHandler.HandleBackfillRequest).Methods("POST")
		api.HandleFunc("/backfill/status", backfillHandler.HandleBackfillStatus).Methods("GET")
		api.HandleFunc("/backfill/{jobID}", backfillHandler.HandleJob).Methods("GET")
	}

	return &Server{
		router: router,
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
