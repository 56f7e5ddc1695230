package api

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/felixge/httpsnoop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	promHttpTotalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{ // metric name will be Namespace_Name
			Namespace: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP request by path", // description of the metric
		},
		[]string{"path"}) // labels to be added to the metric

	promHttpTotalResponse = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "http",
			Name:      "responses_total",
			Help:      "Number of HTTP responses by path",
		},
		[]string{"path"})
	promHttpResponseStatus = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "http",
		Name:      "response_status_total",
		Help:      "Total number of response with specific status code",
	},
		[]string{"code"})

	promHttpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "http",
		Name:      "response_time_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path"})

	promApplicationVersion = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "application",
		Name:      "info",
		Help:      "Application binary version",
	}, []string{"version"})

	promInitOnce sync.Once
)

// promInit registers the collectors on the default registry served by /metrics.
func promInit(db *bun.DB) {
	promInitOnce.Do(func() {
		prometheus.MustRegister(
			promHttpTotalRequests,
			promHttpResponseStatus,
			promHttpDuration,
			promApplicationVersion,
			promHttpTotalResponse,
			collectors.NewDBStatsCollector(db.DB, "cinema"),
		)
		promApplicationVersion.WithLabelValues(Version).Set(1)
	})
}

// otelHandler traces next under the route pattern and records the request in
// both the prometheus collectors and the otel instruments.
func (app *application) otelHandler(route string, next http.HandlerFunc) http.HandlerFunc {
	measured := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		promHttpTotalRequests.WithLabelValues(route).Inc()
		otelHTTP.started(r.Context(), route)

		m := httpsnoop.CaptureMetrics(next, w, r)

		promHttpTotalResponse.WithLabelValues(route).Inc()
		promHttpResponseStatus.WithLabelValues(strconv.Itoa(m.Code)).Inc()
		promHttpDuration.WithLabelValues(route).Observe(m.Duration.Seconds())
		otelHTTP.finished(r.Context(), route, m)
	})
	return otelhttp.NewHandler(measured, route).ServeHTTP
}
