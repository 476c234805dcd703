package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/chrissolanilla/quest-tracker/client/internal/types"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

type fetchCall struct {
	url  string
	opts types.RequestOptions
}

// recordingFetcher answers every call with resp/err and remembers what it was asked.
type recordingFetcher struct {
	mu    sync.Mutex
	calls []fetchCall
	resp  *types.Response
	err   error
}

func (r *recordingFetcher) Fetch(_ context.Context, url string, opts types.RequestOptions) (*types.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fetchCall{url: url, opts: opts})
	return r.resp, r.err
}

func (r *recordingFetcher) last() fetchCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}

func jsonResponse(status int, v any) *types.Response {
	var body []byte
	if v != nil {
		body, _ = json.Marshal(v)
	}
	return &types.Response{StatusCode: status, Header: http.Header{"Content-Type": {"application/json"}}, Body: body}
}
