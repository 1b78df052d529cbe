package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quotevault/internal/adapters/clients"

	defaultTimeout = 30 * time.Second
	jitter         = 0.25
)

// Config configures a Client.
type Config struct {
	// BaseURL prefixes every request path.
	BaseURL string

	// ServiceName labels logs, spans, metrics and the breaker.
	ServiceName string

	// Timeout bounds one attempt. Retries and backoff add to the total.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// AuthFunc decorates every attempt, so a token refreshed between
	// retries is picked up.
	AuthFunc func(*http.Request)

	Logger *slog.Logger
}

// Client sends requests to one downstream service.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	retry       config.RetryConfig
	authFunc    func(*http.Request)
	logger      *slog.Logger
	breaker     *gobreaker.CircuitBreaker[*http.Response]
	tracer      trace.Tracer

	duration metric.Float64Histogram
	total    metric.Int64Counter
}

// New builds a Client from cfg.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", cfg.ServiceName),
	)

	meter := otel.Meter(instrumentationName)

	duration, err := meter.Float64Histogram("quotevault.client.request.duration",
		metric.WithDescription("Duration of API calls including retries"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	total, err := meter.Int64Counter("quotevault.client.request.total",
		metric.WithDescription("API calls by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	c := &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(cfg.Transport),
		},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName: cfg.ServiceName,
		retry:       cfg.Retry,
		authFunc:    cfg.AuthFunc,
		logger:      logger,
		tracer:      otel.Tracer(instrumentationName),
		duration:    duration,
		total:       total,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*http.Response](breakerSettings(cfg.ServiceName, cfg.Circuit, logger))

	return c, nil
}

// newTransport returns a pooled transport; zero fields keep the
// net/http defaults.
func newTransport(cfg config.TransportConfig) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // stdlib default

	if cfg.MaxIdleConns > 0 {
		t.MaxIdleConns = cfg.MaxIdleConns
	}

	if cfg.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}

	if cfg.IdleConnTimeout > 0 {
		t.IdleConnTimeout = cfg.IdleConnTimeout
	}

	return t
}

func breakerSettings(name string, cfg config.CircuitBreakerConfig, logger *slog.Logger) gobreaker.Settings {
	maxFailures := max(cfg.MaxFailures, 1)

	return gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(max(cfg.HalfOpenLimit, 1)), //nolint:gosec // small positive config value
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures) //nolint:gosec // small positive config value
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}
}

// Do sends req through the breaker, retrying transport errors and 5xx
// answers with exponential backoff. Bodies are rewound through GetBody
// between attempts; requests built by Get, Post, Put and Delete always
// have one.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContextOr(ctx, c.logger).With(
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	ctx, span := c.tracer.Start(ctx, "HTTP "+req.Method+" "+c.serviceName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.retrying(ctx, req, logger)
	})

	elapsed := time.Since(start)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.record(ctx, req.Method, 0, elapsed, "circuit_open")
		span.SetStatus(codes.Error, "circuit open")
		logger.Warn("request blocked by circuit breaker")

		return nil, fmt.Errorf("%w: %s", ErrCircuitOpen, c.serviceName)

	case err != nil:
		c.record(ctx, req.Method, 0, elapsed, "error")
		span.SetStatus(codes.Error, err.Error())
		logger.Error("request failed", slog.Duration("duration", elapsed), slog.Any("error", err))

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, resp.Status)
	}

	c.record(ctx, req.Method, resp.StatusCode, elapsed, fmt.Sprintf("%dxx", resp.StatusCode/100))
	logger.Debug("request completed", slog.Int("status", resp.StatusCode), slog.Duration("duration", elapsed))

	return resp, nil
}

func (c *Client) retrying(ctx context.Context, req *http.Request, logger *slog.Logger) (*http.Response, error) {
	attempt := 0

	op := func() (*http.Response, error) {
		attempt++

		if attempt > 1 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, backoff.Permanent(fmt.Errorf("rewinding request body: %w", err))
			}

			req.Body = body
		}

		c.decorate(ctx, req)

		resp, err := c.http.Do(req.WithContext(ctx))
		if err != nil {
			if retryable(err) {
				return nil, err
			}

			return nil, backoff.Permanent(err)
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("server error: %d", resp.StatusCode)
		}

		return resp, nil
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(c.backoff()),
		backoff.WithMaxTries(uint(max(c.retry.MaxAttempts, 1))), //nolint:gosec // small positive config value
		backoff.WithNotify(func(err error, wait time.Duration) {
			logger.Debug("retrying request",
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", wait),
				slog.Any("error", err),
			)
		}),
	)
}

func (c *Client) backoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retry.InitialInterval
	b.MaxInterval = c.retry.MaxInterval
	b.Multiplier = c.retry.Multiplier
	b.RandomizationFactor = jitter
	if c.retry.JitterFactor > 0 {
		b.RandomizationFactor = c.retry.JitterFactor
	}

	return b
}

// decorate sets tracing, ID and auth headers for one attempt.
func (c *Client) decorate(ctx context.Context, req *http.Request) {
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderRequestID, id)
	}

	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderCorrelationID, id)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	if c.authFunc != nil {
		c.authFunc(req)
	}
}

// Get sends a GET to path.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.send(ctx, http.MethodGet, path, nil)
}

// Delete sends a DELETE to path.
func (c *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.send(ctx, http.MethodDelete, path, nil)
}

// Post sends body as JSON to path.
func (c *Client) Post(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	return c.send(ctx, http.MethodPost, path, body)
}

// Put sends body as JSON to path.
func (c *Client) Put(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	return c.send(ctx, http.MethodPut, path, body)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	if body == nil {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if body != http.NoBody {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.Do(ctx, req)
}

// CircuitState reports the breaker state: closed, half-open or open.
func (c *Client) CircuitState() gobreaker.State {
	return c.breaker.State()
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

func (c *Client) record(ctx context.Context, method string, status int, d time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}

	opt := metric.WithAttributes(attrs...)
	c.duration.Record(ctx, d.Seconds(), opt)
	c.total.Add(ctx, 1, opt)
}

// retryable reports whether a transport error may succeed on another try.
// Cancellation and deadlines are final.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
