package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	backendAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartinterview",
		Name:      "reasoning_backend_attempts_total",
		Help:      "Calls attempted per reasoning backend",
	}, []string{"provider"})

	backendFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartinterview",
		Name:      "reasoning_backend_failures_total",
		Help:      "Failed calls per reasoning backend and error code",
	}, []string{"provider", "code"})

	backendExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "smartinterview",
		Name:      "reasoning_backends_exhausted_total",
		Help:      "Turns where every reasoning backend failed",
	})

	decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartinterview",
		Name:      "flow_decisions_total",
		Help:      "Decisions emitted by the flow engine",
	}, []string{"action"})
)

func RecordBackendAttempt(provider string) {
	backendAttempts.WithLabelValues(provider).Inc()
}

func RecordBackendFailure(provider, code string) {
	backendFailures.WithLabelValues(provider, code).Inc()
}

func RecordBackendsExhausted() {
	backendExhausted.Inc()
}

func RecordDecision(action string) {
	decisions.WithLabelValues(action).Inc()
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
