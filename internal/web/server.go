package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cjeanneret/CamGo/internal/log"
	"github.com/cjeanneret/CamGo/internal/logic/photo"
)

const (
	// DefaultRateLimitPerMinute applies to /invoke/* when Options leaves it unset.
	DefaultRateLimitPerMinute = 120

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr               string
	RateLimitPerMinute int
	MaxBodyBytes       int64
}

// Server wraps the HTTP server and handlers.
type Server struct {
	addr      string
	rateLimit int
	handlers  *Handlers
}

// NewServer creates a server exposing commands over HTTP.
func NewServer(opts Options, commands *photo.Commands, broadcaster *StatusBroadcaster) (*Server, error) {
	subFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("web: sub static fs: %w", err)
	}
	if opts.RateLimitPerMinute <= 0 {
		opts.RateLimitPerMinute = DefaultRateLimitPerMinute
	}

	return &Server{
		addr:      opts.Addr,
		rateLimit: opts.RateLimitPerMinute,
		handlers:  NewHandlers(commands, broadcaster, subFS, opts.MaxBodyBytes),
	}, nil
}

// Router returns an http.Handler with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestID)
	r.Use(instrument)

	r.Get("/healthz", s.handlers.HandleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/status/stream", s.handlers.HandleStatusStream)

	r.Route("/invoke", func(r chi.Router) {
		r.Use(rateLimit(s.rateLimit))
		r.Post("/take_photo", s.handlers.HandleTakePhoto)
		r.Post("/save_photo", s.handlers.HandleSavePhoto)
		r.Post("/greet", s.handlers.HandleGreet)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(s.handlers.staticFS))))
	r.Get("/", s.handlers.ServeIndex)

	return r
}

// Run serves on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener. It takes ownership of ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := log.WithComponent("web")
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Msg("web server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		<-errCh
		logger.Info().Msg("web server stopped")
		return err
	}
}
