package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Latency per matched route and response status
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "olist_http_request_duration_seconds",
		Help:    "Latency of report API handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. Repeated calls
// are no-ops.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestDuration)
	})
}
