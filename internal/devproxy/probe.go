package devproxy

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// WaitForBackend polls healthURL until it answers 2xx, the context ends, or
// maxWait elapses. 5xx and connection errors are retried; any other status
// stops the probe immediately.
func WaitForBackend(ctx context.Context, hc *http.Client, healthURL string, maxWait time.Duration, log zerolog.Logger) error {
	if hc == nil {
		hc = &http.Client{Timeout: 2 * time.Second}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = maxWait

	attempts := 0
	probe := func() error {
		attempts++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := hc.Do(req)
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 500:
			return fmt.Errorf("backend health returned %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("backend health returned %d", resp.StatusCode))
		}
	}
	notify := func(err error, wait time.Duration) {
		log.Debug().Err(err).Int("attempt", attempts).Dur("retry_in", wait).Str("url", healthURL).Msg("backend not ready")
	}

	if err := backoff.RetryNotify(probe, backoff.WithContext(b, ctx), notify); err != nil {
		return fmt.Errorf("backend %s not healthy after %d attempts: %w", healthURL, attempts, err)
	}
	log.Info().Str("url", healthURL).Int("attempts", attempts).Msg("backend healthy")
	return nil
}
