package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/jsamuelsen/quotevault/telemetry"

	// TraceIDHeader echoes the request's trace ID back to the client.
	TraceIDHeader = "X-Trace-ID"
)

type serverMetrics struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

func newServerMetrics(meter metric.Meter) (*serverMetrics, error) {
	var (
		m   serverMetrics
		err error
	)

	if m.duration, err = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration"), metric.WithUnit("s")); err != nil {
		return nil, err
	}

	if m.total, err = meter.Int64Counter("http.server.request.total",
		metric.WithDescription("HTTP requests by route and status")); err != nil {
		return nil, err
	}

	if m.inFlight, err = meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("HTTP requests in flight")); err != nil {
		return nil, err
	}

	return &m, nil
}

// Middleware returns the tracing and metrics handlers, in that order. The
// otelgin span must exist before the metrics handler reads its trace ID.
func Middleware(serviceName string) []gin.HandlerFunc {
	return []gin.HandlerFunc{otelgin.Middleware(serviceName), MetricsMiddleware()}
}

// MetricsMiddleware records request count, duration and in-flight requests
// by route, and sets the X-Trace-ID response header. Instrument errors go to
// otel.Handle and leave the request untouched.
func MetricsMiddleware() gin.HandlerFunc {
	m, err := newServerMetrics(otel.Meter(instrumentationName))
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			c.Header(TraceIDHeader, sc.TraceID().String())
		}

		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		route := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
		)

		m.inFlight.Add(ctx, 1, route)
		defer m.inFlight.Add(ctx, -1, route)

		c.Next()

		done := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
			attribute.Int("http.status_code", c.Writer.Status()),
		)
		m.duration.Record(ctx, time.Since(start).Seconds(), done)
		m.total.Add(ctx, 1, done)
	}
}
