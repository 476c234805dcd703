package types

import (
	"context"
	"encoding/json"
	"net/http"
)

// ------------------------------
// Request seam
// ------------------------------

// CredentialsMode controls whether session cookies ride along with a request.
type CredentialsMode string

const (
	// CredentialsInclude attaches the session cookie jar. Every facade call uses it.
	CredentialsInclude CredentialsMode = "include"
	// CredentialsOmit sends the request without cookies.
	CredentialsOmit CredentialsMode = "omit"
)

// RequestOptions is what a facade operation hands to the Fetcher besides the URL.
// Requests never carry a body.
type RequestOptions struct {
	Method      string
	Credentials CredentialsMode
}

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Fetcher issues a single request. Implementations must not retry.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts RequestOptions) (*Response, error)
}

// FetchFunc lets a plain function act as a Fetcher.
type FetchFunc func(ctx context.Context, url string, opts RequestOptions) (*Response, error)

// Fetch calls f.
func (f FetchFunc) Fetch(ctx context.Context, url string, opts RequestOptions) (*Response, error) {
	return f(ctx, url, opts)
}

// HTTPClient is what the default fetcher sends through. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
