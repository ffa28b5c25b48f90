// Package server assembles the HTTP surface of the portfolio: the live page,
// the client script, static assets, the theme API, health probes and metrics.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/gabrielmiguelok/golivefolio/client"
	"github.com/gabrielmiguelok/golivefolio/internal/config"
	"github.com/gabrielmiguelok/golivefolio/internal/portfolio"
	"github.com/gabrielmiguelok/golivefolio/pkg/health"
	"github.com/gabrielmiguelok/golivefolio/pkg/limits"
	"github.com/gabrielmiguelok/golivefolio/pkg/logging"
	"github.com/gabrielmiguelok/golivefolio/pkg/router"
	"github.com/gabrielmiguelok/golivefolio/pkg/state"
	"github.com/gabrielmiguelok/golivefolio/pkg/theme"
)

// Theme API limits per visitor.
const (
	ToggleRate  = 5.0
	ToggleBurst = 10
)

// VisitorMaxAge is the lifetime of the visitor cookie.
const VisitorMaxAge = 365 * 24 * time.Hour

// Options wires the server's collaborators.
type Options struct {
	Config config.ServerConfig
	// Live serves the page and its WebSocket
	Live *router.Router
	Page portfolio.Deps
	// Store backs the theme preferences and the readiness probe
	Store state.Store
	// MaxConnections marks the server unready at capacity; 0 disables
	MaxConnections int
	// Static, when non-nil, is served under /static/
	Static  afero.Fs
	Version string
	Logger  logging.Logger
}

// Server is the portfolio HTTP server.
type Server struct {
	opts       Options
	log        logging.Logger
	themes     *theme.Repository
	limiter    *limits.TokenBucket
	health     *health.Checker
	router     chi.Router
	httpServer *http.Server
	done       chan struct{}
	stop       sync.Once
}

// New builds the server and registers the live page at "/".
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}
	if opts.Page.Themes == nil && opts.Store != nil {
		opts.Page.Themes = theme.NewRepository(opts.Store)
	}
	if opts.Page.Logger == nil {
		opts.Page.Logger = opts.Logger
	}

	s := &Server{
		opts:    opts,
		log:     opts.Logger,
		themes:  opts.Page.Themes,
		limiter: limits.NewTokenBucket(ToggleRate, ToggleBurst),
		health:  health.NewChecker(),
		done:    make(chan struct{}),
	}
	s.health.SetVersion(opts.Version)
	if opts.Store != nil {
		s.health.AddCriticalCheck("store", health.StoreCheck(opts.Store), 2*time.Second)
	}
	if opts.Live != nil {
		s.health.AddCheck("connections", health.ConnectionsCheck(opts.Live.Sockets().Count, opts.MaxConnections), time.Second)
		opts.Live.Live("/", portfolio.NewFactory(opts.Page))
	}

	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(secureHeaders)
	r.Use(s.corsHandler())

	r.Get("/healthz", s.health.HealthHandler().ServeHTTP)
	r.Get("/livez", s.health.LivenessHandler().ServeHTTP)
	r.Get("/readyz", s.health.ReadinessHandler().ServeHTTP)
	if m := s.opts.Page.Metrics; m != nil {
		r.Get("/metrics", m.Handler().ServeHTTP)
	}

	r.Handle("/_live/*", http.StripPrefix("/_live/", client.Handler()))
	if s.opts.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(afero.NewHttpFs(s.opts.Static))))
	}

	r.Group(func(r chi.Router) {
		r.Use(visitorCookie)

		r.Route("/api/theme", func(r chi.Router) {
			if d := s.opts.Config.WriteTimeout; d > 0 {
				r.Use(middleware.Timeout(d))
			}
			r.Get("/", s.getTheme)
			r.Delete("/", s.forgetTheme)
			r.With(limits.Middleware(s.limiter, limits.CookieKeyFunc(portfolio.VisitorCookie))).
				Post("/toggle", s.toggleTheme)
		})

		// the live route upgrades to a long-lived WebSocket, so it gets no
		// request timeout
		if s.opts.Live != nil {
			r.Handle("/", s.opts.Live)
		}
	})

	return r
}

func (s *Server) corsHandler() func(http.Handler) http.Handler {
	origins := s.opts.Config.AllowedOrigins
	if s.opts.Config.Dev || len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// visitorCookie issues a visitor id to first-time browsers. The cookie is
// also added to the request so the page mounted by this request sees it.
func visitorCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if visitorID(r) == "" {
			c := &http.Cookie{
				Name:     portfolio.VisitorCookie,
				Value:    uuid.NewString(),
				Path:     "/",
				MaxAge:   int(VisitorMaxAge / time.Second),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Secure:   r.TLS != nil,
			}
			http.SetCookie(w, c)
			r.AddCookie(c)
		}
		next.ServeHTTP(w, r)
	})
}

// visitorID returns the last non-empty visitor cookie, which is the one
// visitorCookie added when the browser sent none.
func visitorID(r *http.Request) string {
	var id string
	for _, c := range r.Cookies() {
		if c.Name == portfolio.VisitorCookie && c.Value != "" {
			id = c.Value
		}
	}
	return id
}

type themeResponse struct {
	Theme  theme.Preference `json:"theme"`
	Stored bool             `json:"stored"`
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	if s.themes == nil {
		writeJSON(w, http.StatusOK, themeResponse{Theme: theme.Light})
		return
	}
	p, found, err := s.themes.Load(r.Context(), visitorID(r))
	if err != nil {
		logging.L(r.Context()).Error("theme lookup failed", logging.Err(err))
		http.Error(w, "theme unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: p, Stored: found})
}

func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) {
	if s.themes == nil {
		http.Error(w, "theme persistence disabled", http.StatusNotFound)
		return
	}
	p, err := s.themes.Toggle(r.Context(), visitorID(r))
	if err != nil {
		logging.L(r.Context()).Error("theme toggle failed", logging.Err(err))
		http.Error(w, "theme unavailable", http.StatusInternalServerError)
		return
	}
	s.opts.Page.Metrics.ThemeToggled(string(p))
	writeJSON(w, http.StatusOK, themeResponse{Theme: p, Stored: true})
}

func (s *Server) forgetTheme(w http.ResponseWriter, r *http.Request) {
	if s.themes == nil {
		http.Error(w, "theme persistence disabled", http.StatusNotFound)
		return
	}
	if err := s.themes.Forget(r.Context(), visitorID(r)); err != nil {
		logging.L(r.Context()).Error("theme forget failed", logging.Err(err))
		http.Error(w, "theme unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: theme.Light})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Health returns the probe checker.
func (s *Server) Health() *health.Checker { return s.health }

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	header := s.opts.Config.ReadTimeout
	if header <= 0 {
		header = 10 * time.Second
	}
	s.httpServer = &http.Server{
		Addr:              s.opts.Config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: header,
		IdleTimeout:       120 * time.Second,
	}
	s.log.Info("portfolio server listening", logging.String("addr", s.opts.Config.Address))

	go s.sweep()
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// sweep drops idle rate-limit buckets and dead live sessions.
func (s *Server) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.limiter.Sweep(time.Hour)
			if s.opts.Live != nil {
				s.opts.Live.CloseIdle(now)
			}
		}
	}
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stop.Do(func() { close(s.done) })
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
