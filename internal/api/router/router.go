package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/celiadunsmore/counselling-platform/internal/availability"
	"github.com/celiadunsmore/counselling-platform/internal/bookings"
	"github.com/celiadunsmore/counselling-platform/internal/calendar"
	"github.com/celiadunsmore/counselling-platform/internal/contacts"
	httpmiddleware "github.com/celiadunsmore/counselling-platform/internal/http/middleware"
	"github.com/celiadunsmore/counselling-platform/internal/locations"
	"github.com/celiadunsmore/counselling-platform/internal/triage"
	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	BookingsHandler     *bookings.Handler
	ContactsHandler     *contacts.Handler
	AvailabilityHandler *availability.Handler
	LocationsHandler    *locations.Handler
	CalendarHandler     *calendar.Handler
	AssistantHandler    *triage.Handler
	MetricsHandler      http.Handler

	AdminToken         string
	GoogleMapsAPIKey   string
	CORSAllowedOrigins []string
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

	limitWrites := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimitPerSecond > 0 {
		limitWrites = httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		public.Get("/api/config/maps", mapsConfig(cfg.GoogleMapsAPIKey))

		if cfg.BookingsHandler != nil {
			public.Get("/api/bookings", cfg.BookingsHandler.List)
			public.With(limitWrites).Post("/api/bookings", cfg.BookingsHandler.Create)
			public.Get("/api/bookings/{id}", cfg.BookingsHandler.Get)
		}
		if cfg.ContactsHandler != nil {
			public.With(limitWrites).Post("/api/contact", cfg.ContactsHandler.Create)
		}
		if cfg.AssistantHandler != nil {
			public.With(limitWrites).Post("/api/ai/chat", cfg.AssistantHandler.Chat)
		}
		if cfg.LocationsHandler != nil {
			public.Get("/api/locations", cfg.LocationsHandler.List)
		}
		// Availability reads are public: the booking wizard consumes them.
		if cfg.AvailabilityHandler != nil {
			public.Get("/api/admin/availability", cfg.AvailabilityHandler.ListRange)
			public.Get("/api/admin/availability/dates", cfg.AvailabilityHandler.ListMonth)
		}
		// OAuth entry points and callback must stay reachable without a
		// bearer token; Google redirects the browser here directly.
		if cfg.CalendarHandler != nil {
			public.Get("/api/auth/google", cfg.CalendarHandler.Auth)
			public.Post("/api/google/manual-auth", cfg.CalendarHandler.ManualAuth)
			public.Get("/api/google/oauth/callback", cfg.CalendarHandler.Callback)
			public.Get("/api/google/status", cfg.CalendarHandler.Status)
		}
	})

	// Admin endpoints, gated by a bearer token
	r.Group(func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminToken(cfg.AdminToken))

		if cfg.CalendarHandler != nil {
			admin.Get("/api/google/calendars", cfg.CalendarHandler.ListCalendars)
			admin.Post("/api/google/sync", cfg.CalendarHandler.Sync)
			admin.Post("/api/google/disconnect", cfg.CalendarHandler.Disconnect)
		}
		if cfg.AvailabilityHandler != nil {
			admin.Post("/api/admin/availability", cfg.AvailabilityHandler.Upsert)
			admin.Delete("/api/admin/availability/{date}", cfg.AvailabilityHandler.Delete)
		}
		if cfg.ContactsHandler != nil {
			admin.Get("/api/admin/contacts", cfg.ContactsHandler.List)
		}
		if cfg.LocationsHandler != nil {
			admin.Post("/api/admin/locations/{id}/primary", cfg.LocationsHandler.SetPrimary)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// mapsConfig exposes the Maps API key to the booking UI. An empty key
// is a valid response; the client falls back to a static map.
func mapsConfig(apiKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"api_key": apiKey})
	}
}
