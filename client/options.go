package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Option configures a Client during construction in New.
//
// Options run in order; an option that replaces the *http.Client discards
// transport tweaks made by earlier options. The session cookie and the
// default fetcher are installed after all options have run.
type Option func(*Client) error

// WithHTTPClient uses a copy of hc, so later options (timeout, debug
// transport, session jar) never modify the caller's client. A nil Jar is
// replaced with a fresh cookie jar when a session is configured.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// The client never retries, so this bounds the total time of each call
// (connection, TLS handshake, redirects, and reading the response).
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Dumps include cookies; keep it out of production.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			if _, already := c.http.Transport.(*debugTransport); already {
				return nil
			}
			transport := c.http.Transport
			if transport == nil {
				transport = http.DefaultTransport
			}
			c.http.Transport = &debugTransport{base: transport}
		}
		return nil
	}
}

// WithFetcher substitutes the request seam, e.g. with a FetchFunc in tests.
// HTTP-level options have no effect on a custom fetcher.
func WithFetcher(f Fetcher) Option {
	return func(c *Client) error {
		if f == nil {
			return fmt.Errorf("nil fetcher")
		}
		c.fetch = f
		return nil
	}
}

// WithAPIPrefix changes the path prefix placed before every resource path.
// Use "" when the base address is the backend itself rather than the proxy.
func WithAPIPrefix(prefix string) Option {
	return func(c *Client) error {
		prefix = strings.TrimRight(prefix, "/")
		if prefix != "" && !strings.HasPrefix(prefix, "/") {
			return fmt.Errorf("api prefix %q must start with /", prefix)
		}
		c.prefix = prefix
		return nil
	}
}

// WithSessionCookie seeds the cookie jar with the backend session id, for
// callers (CLIs, scripts) that did not obtain the cookie through a browser.
func WithSessionCookie(sid string) Option {
	return func(c *Client) error {
		c.session = sid
		return nil
	}
}
