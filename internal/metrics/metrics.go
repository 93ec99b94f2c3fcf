package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal      *prometheus.CounterVec
	responsesRecordedTotal prometheus.Counter
	registerOnce           sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xpoll",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the xpoll API.",
		}, []string{"method", "path", "status"})

		responsesRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "xpoll",
			Name:      "responses_recorded_total",
			Help:      "Total poll responses accepted by the xpoll API.",
		})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// IncResponseRecorded counts one accepted poll response.
func IncResponseRecorded() {
	if responsesRecordedTotal == nil {
		return
	}
	responsesRecordedTotal.Inc()
}
