package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/pkg/metrics"
)

// Options controls which routes NewRouter mounts.
type Options struct {
	SubscriptionPath string
	AllowedOrigins   []string
	StaticDir        string
	RequestTimeout   time.Duration
}

// NewRouter wires the sync endpoint next to the health and metrics endpoints.
func NewRouter(registry Registry, metrics *metrics.Metrics, started time.Time, opts Options) http.Handler {
	if opts.SubscriptionPath == "" {
		opts.SubscriptionPath = "/push/subscriptions"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}

	h := NewSubscriptionHandler(registry, metrics)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))
	// An empty origin list makes cors allow every origin, so skip it and stay
	// same-origin.
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "push subscriber healthy",
			"meta": map[string]interface{}{
				"uptime_seconds": int(time.Since(started).Seconds()),
				"timestamp":      time.Now().UTC(),
			},
		})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Post(opts.SubscriptionPath, h.Sync)
	r.Get("/push/groups/{group}/subscriptions", h.GroupSize)

	if opts.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(opts.StaticDir)))
	}
	return r
}
