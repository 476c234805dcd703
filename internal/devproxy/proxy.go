// Package devproxy forwards prefixed API calls from the frontend origin to the
// backend during development, the way the frontend dev server's proxy does.
package devproxy

import (
	"crypto/tls"
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options configures the proxy handler.
type Options struct {
	// Prefix selects proxied paths and is stripped before forwarding. Required.
	Prefix string
	// Target is the backend base address. Required.
	Target *url.URL
	// InsecureTLS skips certificate checks for an https Target.
	InsecureTLS bool
	// Transport overrides the upstream round tripper.
	Transport http.RoundTripper
}

// NewHandler builds the router: proxied prefix, /healthz and /metrics.
func NewHandler(opts Options, log zerolog.Logger) (http.Handler, error) {
	if opts.Target == nil || opts.Target.Scheme == "" || opts.Target.Host == "" {
		return nil, errors.New("devproxy: target must be an absolute URL")
	}
	prefix := strings.TrimRight(opts.Prefix, "/")
	if prefix == "" || !strings.HasPrefix(prefix, "/") {
		return nil, errors.New("devproxy: prefix must start with / and not be /")
	}
	opts.Prefix = prefix

	root := mux.NewRouter()
	root.SkipClean(true)
	root.Use(AccessLog(log), RequestID, Recover)

	root.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	root.MatcherFunc(underPrefix(prefix)).Handler(instrument(newReverseProxy(opts, log)))
	return root, nil
}

// underPrefix matches the prefix itself and anything below it, but not
// siblings that merely share leading characters ("/apiary").
func underPrefix(prefix string) mux.MatcherFunc {
	return func(r *http.Request, _ *mux.RouteMatch) bool {
		p := r.URL.Path
		return p == prefix || strings.HasPrefix(p, prefix+"/")
	}
}

func newReverseProxy(opts Options, log zerolog.Logger) *httputil.ReverseProxy {
	transport := opts.Transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		if opts.InsecureTLS {
			t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // dev backends use self-signed certs
		}
		transport = t
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Path = stripPrefix(opts.Prefix, pr.In.URL.Path)
			if pr.In.URL.RawPath != "" {
				pr.Out.URL.RawPath = stripPrefix(opts.Prefix, pr.In.URL.RawPath)
			}
			// SetURL clears Out.Host, so the backend sees its own host name.
			pr.SetURL(opts.Target)
			pr.SetXForwarded()
		},
		Transport: transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Warn().
				Err(err).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("target", opts.Target.String()).
				Str("request_id", r.Header.Get(RequestIDHeader)).
				Msg("upstream request failed")
			writeJSONError(w, http.StatusBadGateway, "Bad Gateway")
		},
	}
}

func stripPrefix(prefix, p string) string {
	p = strings.TrimPrefix(p, prefix)
	if p == "" {
		return "/"
	}
	return p
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
