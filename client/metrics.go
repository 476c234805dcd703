package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "questboard_client",
		Name:      "requests_total",
		Help:      "Facade calls by operation and outcome (ok, failed, error).",
	},
	[]string{"operation", "outcome"},
)

// observe records one call. "failed" is a non-2xx answer, "error" anything else.
func observe(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if _, ok := AsRequestError(err); ok {
			outcome = "failed"
		}
	}
	requestsTotal.WithLabelValues(op, outcome).Inc()
}
