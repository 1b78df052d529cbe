// Package middleware provides the gin middleware of the QuoteVault API.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Tracing headers. X-Correlation-ID groups every call a client makes for
// one user action; X-Request-ID names a single call.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

type idKey struct{ name string }

var (
	requestIDKey     = idKey{"request_id"}
	correlationIDKey = idKey{"correlation_id"}
)

// idHeader echoes header back to the caller, generating a UUID when the
// request has none, and stores the value on both the gin and request
// contexts under key.
func idHeader(header string, key idKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(key.name, id)
		c.Header(header, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), key, id))

		c.Next()
	}
}

// RequestID tags every request with X-Request-ID.
func RequestID() gin.HandlerFunc { return idHeader(HeaderRequestID, requestIDKey) }

// CorrelationID tags every request with X-Correlation-ID.
func CorrelationID() gin.HandlerFunc { return idHeader(HeaderCorrelationID, correlationIDKey) }

// GetRequestID returns the id RequestID stored, or "".
func GetRequestID(c *gin.Context) string { return c.GetString(requestIDKey.name) }

// GetCorrelationID returns the id CorrelationID stored, or "".
func GetCorrelationID(c *gin.Context) string { return c.GetString(correlationIDKey.name) }

// ContextWithRequestID returns ctx carrying a request ID for outgoing calls.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithCorrelationID returns ctx carrying a correlation ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// RequestIDFromContext returns the request ID on ctx, or "".
func RequestIDFromContext(ctx context.Context) string { return stringValue(ctx, requestIDKey) }

// CorrelationIDFromContext returns the correlation ID on ctx, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return stringValue(ctx, correlationIDKey)
}

func stringValue(ctx context.Context, key idKey) string {
	if ctx == nil {
		return ""
	}

	s, _ := ctx.Value(key).(string)

	return s
}
