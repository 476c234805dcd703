package devproxy

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/chrissolanilla/quest-tracker/internal/config"
)

// Run starts the dev proxy and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	target, err := cfg.ProxyTargetURL()
	if err != nil {
		return errors.Wrap(err, "proxy target")
	}

	handler, err := NewHandler(Options{
		Prefix:      cfg.ProxyPrefix,
		Target:      target,
		InsecureTLS: cfg.ProxyInsecureTLS,
	}, log)
	if err != nil {
		return err
	}

	// The backend may still be booting; only block when asked to.
	if cfg.ProxyProbeTimeout > 0 {
		healthURL := target.JoinPath("health").String()
		if err := WaitForBackend(ctx, nil, healthURL, cfg.ProxyProbeTimeout, log); err != nil {
			if cfg.ProxyRequireBackend {
				log.Error().Stack().Err(err).Msg("startup backend probe failed")
				return err
			}
			log.Warn().Err(err).Msg("backend unreachable, proxying anyway")
		}
	}

	ln, err := net.Listen("tcp", cfg.ProxyListen)
	if err != nil {
		return errors.Wrapf(err, "listen %s", cfg.ProxyListen)
	}
	log.Info().
		Str("addr", ln.Addr().String()).
		Str("prefix", cfg.ProxyPrefix).
		Str("target", target.String()).
		Msg("dev proxy listening")
	return Serve(ctx, ln, handler, log)
}

// Serve runs handler on ln with graceful shutdown when ctx ends.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, log zerolog.Logger) error {
	server := newHTTPServer(ctx, handler)
	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down dev proxy")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Dev proxy forced to shutdown")
			return err
		}
		log.Info().Msg("Dev proxy exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("Dev proxy failed")
		return err
	}
}

func newHTTPServer(ctx context.Context, handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		// No WriteTimeout: upstream task listings page through Asana and can be slow.
		IdleTimeout: 60 * time.Second,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
}
