// Package reportserver serves saved exam results over local HTTP.
package reportserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const shutdownGrace = 5 * time.Second

// Config captures the settings for serving exported results.
type Config struct {
	Addr      string
	ExportDir string
	Logger    zerolog.Logger
}

// Serve listens on cfg.Addr and serves the export index and result pages
// until ctx is cancelled. A port that cannot be bound is reported before
// anything is served.
func Serve(ctx context.Context, cfg Config) error {
	if cfg.Addr == "" {
		return errors.New("reportserver: addr is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("reportserver: listen %s: %w", cfg.Addr, err)
	}
	return serveOn(ctx, ln, withAccessLog(handler, cfg.Logger), cfg.Logger.With().Str("export_dir", cfg.ExportDir).Logger())
}

func serveOn(ctx context.Context, ln net.Listener, handler http.Handler, log zerolog.Logger) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	served := make(chan error, 1)
	go func() { served <- server.Serve(ln) }()
	log.Info().Str("addr", ln.Addr().String()).Msg("serving results")

	select {
	case err := <-served:
		return ignoreClosed(err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("shutdown incomplete")
	}
	return ignoreClosed(<-served)
}

func ignoreClosed(err error) error {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withAccessLog(next http.Handler, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(started)).
			Msg("request")
	})
}
