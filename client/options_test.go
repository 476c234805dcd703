package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestWithHTTPTimeoutAndDebugLogging(t *testing.T) {
	// timeout option sets http timeout
	c := &Client{http: &http.Client{}}
	if err := WithHTTPTimeout(5 * time.Second)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.http.Timeout != 5*time.Second {
		t.Fatalf("http timeout not set")
	}

	// debug logging wraps transport
	var called bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header)}, nil
	})
	c2, err := New("http://example.com", WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := c2.http.Transport.(*debugTransport); !ok {
		t.Fatalf("expected debugTransport, got %T", c2.http.Transport)
	}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", strings.NewReader(""))
	if _, err := c2.http.Do(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if !called {
		t.Fatalf("base transport not invoked")
	}
}

func TestWithDebugLogging_Idempotent(t *testing.T) {
	c, err := New("http://example.com", WithDebugLogging(true), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dt, ok := c.http.Transport.(*debugTransport)
	if !ok {
		t.Fatalf("expected debugTransport")
	}
	if _, nested := dt.base.(*debugTransport); nested {
		t.Fatal("debug transport wrapped twice")
	}
}

func TestNew_DebugFromEnv(t *testing.T) {
	cases := []struct {
		name, key, val string
		want           bool
	}{
		{"questboard var", "QUESTBOARD_DEBUG", "true", true},
		{"generic var", "DEBUG", "true", true},
		{"not true", "QUESTBOARD_DEBUG", "1", false},
		{"unset", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("QUESTBOARD_DEBUG", "")
			t.Setenv("DEBUG", "")
			if tc.key != "" {
				t.Setenv(tc.key, tc.val)
			}
			c, err := New("http://example.com")
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if _, got := c.http.Transport.(*debugTransport); got != tc.want {
				t.Fatalf("debug transport installed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDebugTransport_PassesThroughTransportError(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	c, err := New("http://example.com", WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Leaderboard(context.Background()); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected transport error through debug transport, got %v", err)
	}
}

func TestWithHTTPClient_LeavesCallerClientUntouched(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header)}, nil
	})
	hc := &http.Client{Transport: rt}
	c, err := New("http://example.com",
		WithHTTPClient(hc),
		WithHTTPTimeout(3*time.Second),
		WithDebugLogging(true),
		WithSessionCookie("sid-1"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if hc.Jar != nil || hc.Timeout != 0 {
		t.Fatalf("caller client modified: jar=%v timeout=%s", hc.Jar, hc.Timeout)
	}
	if _, wrapped := hc.Transport.(*debugTransport); wrapped {
		t.Fatal("caller transport wrapped")
	}
	if c.http == hc || c.http.Jar == nil || c.http.Timeout != 3*time.Second {
		t.Fatalf("client copy not configured: %+v", c.http)
	}
}

func TestWithAPIPrefix(t *testing.T) {
	cases := []struct {
		in, root string
		ok       bool
	}{
		{"", "http://example.com", true},
		{"/api/", "http://example.com/api", true},
		{"/v1/api", "http://example.com/v1/api", true},
		{"api", "", false},
	}
	for _, tc := range cases {
		c, err := New("http://example.com", WithAPIPrefix(tc.in))
		if !tc.ok {
			if err == nil {
				t.Fatalf("expected error for prefix %q", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("prefix %q: %v", tc.in, err)
		}
		if c.root() != tc.root {
			t.Fatalf("prefix %q: root = %q, want %q", tc.in, c.root(), tc.root)
		}
	}
}

func TestNilOptions(t *testing.T) {
	if _, err := New("http://example.com", WithHTTPClient(nil)); err == nil {
		t.Fatal("expected error for nil http client")
	}
	if _, err := New("http://example.com", WithFetcher(nil)); err == nil {
		t.Fatal("expected error for nil fetcher")
	}
}
