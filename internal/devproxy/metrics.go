package devproxy

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	proxiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "questboard_devproxy",
			Name:      "requests_total",
			Help:      "Proxied requests by method and response code.",
		},
		[]string{"method", "code"},
	)

	proxiedDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "questboard_devproxy",
			Name:      "request_duration_seconds",
			Help:      "Time from receiving a proxied request to finishing its response.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func instrument(h http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(proxiedTotal,
		promhttp.InstrumentHandlerDuration(proxiedDuration, h))
}
