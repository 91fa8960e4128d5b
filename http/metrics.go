package http

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors that report gateway activity.
type Metrics struct {
	requestDuration *prometheus.HistogramVec
	Uploads         prometheus.Counter
	Deletes         prometheus.Counter
}

var (
	defaultMetricsOnce sync.Once
	sharedMetrics      *Metrics
)

// defaultMetrics returns the package-level metrics instance registered with
// the global Prometheus registry. The collectors are created only once to
// avoid duplicate registration panics when multiple handlers are built,
// e.g. in unit tests.
func defaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		sharedMetrics = MustNewMetrics(prometheus.DefaultRegisterer)
	})
	return sharedMetrics
}

// MustNewMetrics constructs a Metrics instance using the provided
// registerer. Registration errors panic, mirroring promauto semantics.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "picstash",
				Subsystem: "gateway",
				Name:      "request_duration_seconds",
				Help:      "Duration of gateway HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "status"},
		),
		Uploads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "picstash",
			Subsystem: "gateway",
			Name:      "uploads_total",
			Help:      "Total number of successful image uploads.",
		}),
		Deletes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "picstash",
			Subsystem: "gateway",
			Name:      "deletes_total",
			Help:      "Total number of successful image deletions.",
		}),
	}

	reg.MustRegister(m.requestDuration, m.Uploads, m.Deletes)
	return m
}

// Middleware records request durations labeled by method and status.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &wrappedWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		m.requestDuration.
			WithLabelValues(r.Method, strconv.Itoa(ww.statusCode)).
			Observe(time.Since(start).Seconds())
	})
}
