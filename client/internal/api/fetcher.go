package api

import (
	"context"
	"io"
	"net/http"

	"github.com/chrissolanilla/quest-tracker/client/internal/types"
)

// HTTPFetcher is the default Fetcher. It sends each request once through
// Client and reads the whole body before returning. A nil Client means
// http.DefaultClient.
type HTTPFetcher struct {
	Client types.HTTPClient
}

// Fetch implements types.Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, opts types.RequestOptions) (*types.Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	var hc types.HTTPClient = http.DefaultClient
	if f.Client != nil {
		hc = f.Client
	}
	// Only an *http.Client carries a jar; other HTTPClients own their cookies.
	if std, ok := hc.(*http.Client); ok && opts.Credentials == types.CredentialsOmit && std.Jar != nil {
		noJar := *std
		noJar.Jar = nil
		hc = &noJar
	}

	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &types.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
