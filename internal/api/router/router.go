package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aqustica12/diyetup-backend/internal/catalog"
	"github.com/aqustica12/diyetup-backend/internal/clients"
	httpmiddleware "github.com/aqustica12/diyetup-backend/internal/http/middleware"
	"github.com/aqustica12/diyetup-backend/internal/scheduler"
	"github.com/aqustica12/diyetup-backend/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger           *logging.Logger
	ClientsHandler   *clients.Handler
	CatalogHandler   *catalog.Handler
	SchedulerHandler *scheduler.Handler
	MetricsHandler   http.Handler

	// AdminJWTSecret gates mutating routes when set. Empty leaves them
	// open, which is only acceptable for local development.
	AdminJWTSecret     string
	CORSAllowedOrigins []string

	// RateLimitPerSecond throttles the API per client IP. Zero disables
	// throttling.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", handleHealth)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.RateLimitPerSecond > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
		}

		// Read endpoints consumed by the booking calendar.
		api.Get("/packages", cfg.CatalogHandler.ListPackages)
		api.Get("/slots", cfg.SchedulerHandler.ListSlots)
		api.Get("/clients", cfg.ClientsHandler.ListClients)
		api.Get("/clients/{clientID}", cfg.ClientsHandler.GetClient)
		api.Get("/clients/{clientID}/package", cfg.SchedulerHandler.PackageStatus)
		api.Get("/appointments", cfg.SchedulerHandler.ListAppointments)
		api.Get("/appointments/{appointmentID}", cfg.SchedulerHandler.GetAppointment)

		// Mutating endpoints, JWT-gated when a secret is configured.
		api.Group(func(mutating chi.Router) {
			if cfg.AdminJWTSecret != "" {
				mutating.Use(httpmiddleware.AdminJWT(cfg.AdminJWTSecret))
			}
			mutating.Post("/clients", cfg.ClientsHandler.CreateClient)
			mutating.Post("/appointments", cfg.SchedulerHandler.BookAppointment)
			mutating.Patch("/appointments/{appointmentID}/status", cfg.SchedulerHandler.UpdateStatus)
		})
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
