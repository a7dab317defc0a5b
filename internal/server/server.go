// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                          liveness probe, answers "ok"
//	GET  /version                          build information as JSON
//	GET  /v1/render?street=...&format=...  render a descriptor
//	POST /v1/render                        render a JSON {"street","format"} body
//	                                       or a raw descriptor line
//
// Errors are JSON objects {"code": "...", "message": "..."}.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/pipeline"
)

// Config holds listener and request limits plus the render defaults applied
// to every request.
type Config struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	MaxBody        int64

	// Format is used when a request names none.
	Format string
	// TTL is how long rendered output stays cached.
	TTL time.Duration
	// Limits bounds the scene a request may ask for; zero fields fall back
	// to pipeline.DefaultLimits.
	Limits pipeline.Limits
}

const shutdownTimeout = 10 * time.Second

// Server serves rendered scenes.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New builds a Server around runner. A nil logger discards output.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = 64 << 10
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Second
	}
	if cfg.Limits.MaxWidth <= 0 {
		cfg.Limits.MaxWidth = pipeline.DefaultLimits.MaxWidth
	}
	if cfg.Limits.MaxHeight <= 0 {
		cfg.Limits.MaxHeight = pipeline.DefaultLimits.MaxHeight
	}
	s := &Server{cfg: cfg, runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler, for tests or embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/render", s.handleRenderQuery)
		r.With(s.limitBody).Post("/render", s.handleRenderBody)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		err := errors.New(errors.ErrCodeUnsupported, "%s not allowed on %s", r.Method, r.URL.Path)
		s.writeErrorStatus(w, r, http.StatusMethodNotAllowed, err)
	})
	return r
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
