// Package handler provides the HTTP surface for StarterKit: authentication,
// locale switching, the dashboard pages and the health endpoint.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/starterkit/internal/i18n"
	"github.com/prn-tf/starterkit/internal/metrics"
	"github.com/prn-tf/starterkit/internal/service"
	"github.com/prn-tf/starterkit/internal/session"
)

// Router wires all HTTP handlers.
type Router struct {
	users    *service.UserService
	sessions *session.Manager
	resolver *i18n.Resolver
	metrics  *metrics.Metrics
	renderer *Renderer
	logger   zerolog.Logger

	metricsPath string
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	UserService *service.UserService
	Sessions    *session.Manager
	Resolver    *i18n.Resolver
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger

	// MetricsPath enables the Prometheus endpoint when non-empty.
	MetricsPath string
}

// NewRouter creates a new Router.
func NewRouter(cfg RouterConfig) (*Router, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	// Collectors are always present so handlers can record events
	// unconditionally; MetricsPath controls whether they are exposed.
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}

	return &Router{
		users:       cfg.UserService,
		sessions:    cfg.Sessions,
		resolver:    cfg.Resolver,
		metrics:     cfg.Metrics,
		renderer:    renderer,
		logger:      cfg.Logger.With().Str("component", "router").Logger(),
		metricsPath: cfg.MetricsPath,
	}, nil
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(rt.requestLogger)
	r.Use(rt.withSessionLocale)

	// Health check and metrics (no auth)
	r.Get("/health", rt.handleHealth)
	if rt.metricsPath != "" {
		r.Method(http.MethodGet, rt.metricsPath, rt.metrics.Handler())
	}

	// Authentication
	r.Route("/auth", func(r chi.Router) {
		r.Get("/register", rt.handleRegisterPage)
		r.Post("/register", rt.handleRegister)
		r.Get("/login", rt.handleLoginPage)
		r.Post("/login", rt.handleLogin)
		r.Get("/logout", rt.handleLogout)
	})

	// Locale switching
	r.Get("/i18n/set/{lang}", rt.handleSetLanguage)

	// Pages
	r.Get("/", rt.handleIndex)
	r.Group(func(r chi.Router) {
		r.Use(rt.requireLogin)
		r.Get("/dashboard", rt.handleDashboard)
		r.Get("/users", rt.handleUsers)
	})

	return r
}

// handleHealth handles health check requests. The payload is constant and
// independent of authentication and database state.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
