package api

import (
	"context"

	"github.com/cybrarymin/cinema/internal/data"
	"github.com/felixge/httpsnoop"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var otelMeter = otel.Meter("cybrarymin.com/cinema/api")

// httpInstruments are recorded by otelHandler for every routed request.
type httpInstruments struct {
	requests  metric.Int64Counter
	responses metric.Int64Counter
	statuses  metric.Int64Counter
	latency   metric.Float64Histogram
}

// otelHTTP stays a no-op until initializeOtelMetrics runs.
var otelHTTP = httpInstruments{
	requests:  noop.Int64Counter{},
	responses: noop.Int64Counter{},
	statuses:  noop.Int64Counter{},
	latency:   noop.Float64Histogram{},
}

func (i httpInstruments) started(ctx context.Context, route string) {
	i.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("path", route)))
}

func (i httpInstruments) finished(ctx context.Context, route string, m httpsnoop.Metrics) {
	routeAttr := metric.WithAttributes(attribute.String("path", route))
	i.responses.Add(ctx, 1, routeAttr)
	i.statuses.Add(ctx, 1, metric.WithAttributes(attribute.Int("code", m.Code)))
	i.latency.Record(ctx, float64(m.Duration.Milliseconds()), routeAttr)
}

func newHTTPInstruments() (httpInstruments, error) {
	var i httpInstruments
	var err error
	i.requests, err = otelMeter.Int64Counter("http_requests",
		metric.WithDescription("total number of http requests"),
		metric.WithUnit("{request}"))
	if err != nil {
		return i, errors.Wrap(err, "http_requests counter")
	}
	i.responses, err = otelMeter.Int64Counter("http_responses",
		metric.WithDescription("total number of http responses"),
		metric.WithUnit("{response}"))
	if err != nil {
		return i, errors.Wrap(err, "http_responses counter")
	}
	i.statuses, err = otelMeter.Int64Counter("http_response_status",
		metric.WithDescription("http responses by status code"),
		metric.WithUnit("{response}"))
	if err != nil {
		return i, errors.Wrap(err, "http_response_status counter")
	}
	i.latency, err = otelMeter.Float64Histogram("http_response_time",
		metric.WithDescription("http response time"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(5, 10, 50, 100, 500, 1000, 3000))
	if err != nil {
		return i, errors.Wrap(err, "http_response_time histogram")
	}
	return i, nil
}

// initializeOtelMetrics swaps the request instruments for real ones and
// registers the gauges observed on every collection: build version, database
// pool state and catalog size.
func initializeOtelMetrics(db *bun.DB, models *data.Models) error {
	inst, err := newHTTPInstruments()
	if err != nil {
		return err
	}

	version, err := otelMeter.Int64Gauge("application_info",
		metric.WithDescription("application binary version info"))
	if err != nil {
		return errors.Wrap(err, "application_info gauge")
	}
	version.Record(context.Background(), 1, metric.WithAttributes(attribute.String("version", Version)))

	_, err = otelMeter.Int64ObservableGauge("db_connection_status",
		metric.WithDescription("database connection pool state"),
		metric.WithUnit("{count}"),
		metric.WithInt64Callback(func(ctx context.Context, obs metric.Int64Observer) error {
			s := db.Stats()
			for name, v := range map[string]int64{
				"max_open":         int64(s.MaxOpenConnections),
				"open":             int64(s.OpenConnections),
				"idle":             int64(s.Idle),
				"in_use":           int64(s.InUse),
				"wait_count":       s.WaitCount,
				"wait_duration_ms": s.WaitDuration.Milliseconds(),
			} {
				obs.Observe(v, metric.WithAttributes(attribute.String("stat_name", name)))
			}
			return nil
		}))
	if err != nil {
		return errors.Wrap(err, "db_connection_status gauge")
	}

	_, err = otelMeter.Int64ObservableGauge("catalog_size",
		metric.WithDescription("stored movies, genres and actors"),
		metric.WithUnit("{record}"),
		metric.WithInt64Callback(func(ctx context.Context, obs metric.Int64Observer) error {
			size, err := models.Movies.CatalogSize(ctx)
			if err != nil {
				return err
			}
			obs.Observe(int64(size.Movies), metric.WithAttributes(attribute.String("kind", "movies")))
			obs.Observe(int64(size.Genres), metric.WithAttributes(attribute.String("kind", "genres")))
			obs.Observe(int64(size.Actors), metric.WithAttributes(attribute.String("kind", "actors")))
			return nil
		}))
	if err != nil {
		return errors.Wrap(err, "catalog_size gauge")
	}

	otelHTTP = inst
	return nil
}
