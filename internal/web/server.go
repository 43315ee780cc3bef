// Package web serves the filter page, the filter form and file downloads.
package web

import (
	"context"
	"net/http"
	"time"

	"sheet-filter/internal/logger"
	"sheet-filter/internal/render"
	"sheet-filter/internal/source"
	"sheet-filter/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options tunes the server
type Options struct {
	DefaultMode     string   // Preselected null-test mode
	DefaultFileName string   // Prefilled export file name
	Formats         []string // Export formats offered in the page
}

// Server is the HTTP server for the filter UI
type Server struct {
	store    *store.Store
	src      source.Source
	renderer *render.HTMLRenderer
	opts     Options
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a Server over an existing store. src is used by the
// reload endpoint and may be nil.
func NewServer(st *store.Store, src source.Source, opts Options) *Server {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{"xlsx", "csv"}
	}
	s := &Server{
		store:    st,
		src:      src,
		renderer: render.NewHTMLRenderer(),
		opts:     opts,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(securityHeaders)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Post("/filter", s.handleFilter)
	s.router.Post("/reset", s.handleReset)
	s.router.Post("/reload", s.handleReload)
	s.router.Get("/export", s.handleExport)
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

// Start begins listening for HTTP requests
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Serving on http://%s", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing
func (s *Server) Router() *chi.Mux {
	return s.router
}

// requestLogger logs method, path, status and duration of each request
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logger.Request(r.Method, r.URL.Path, status, time.Since(start))
	})
}

// securityHeaders adds security headers to all responses
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
