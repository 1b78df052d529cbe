package dto

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

const (
	// internalMessage is the only text an unclassified error ever exposes.
	internalMessage = "an internal error occurred"

	traceIDKey      = "trace_id"
	requestIDHeader = "X-Request-ID"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
// The message is taken from the innermost typed domain error so that step
// prefixes added by the executor do not leak to clients. Unknown errors are
// mapped to 500 with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	var (
		notFound     *domain.NotFoundError
		conflict     *domain.ConflictError
		validation   *domain.ValidationError
		forbidden    *domain.ForbiddenError
		unauthorized *domain.UnauthorizedError
		unavailable  *domain.UnavailableError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, notFound.Error())

	case errors.As(err, &conflict):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, conflict.Error())

	case errors.As(err, &validation):
		resp := NewErrorResponse(ErrorCodeValidation, validation.Error())
		if validation.Field != "" {
			resp.Error.Details = map[string]string{validation.Field: validation.Message}
		}

		return http.StatusBadRequest, resp

	case errors.As(err, &forbidden):
		return http.StatusForbidden, NewErrorResponse(ErrorCodeForbidden, forbidden.Error())

	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized, NewErrorResponse(ErrorCodeUnauthorized, unauthorized.Error())

	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable,
			unavailable.Service+" is temporarily unavailable")
	}

	// Sentinels wrapped without a typed error.
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())
	case domain.IsConflict(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, err.Error())
	case domain.IsValidation(err):
		return http.StatusBadRequest, NewErrorResponse(ErrorCodeValidation, err.Error())
	case domain.IsForbidden(err):
		return http.StatusForbidden, NewErrorResponse(ErrorCodeForbidden, err.Error())
	case domain.IsUnauthorized(err):
		return http.StatusUnauthorized, NewErrorResponse(ErrorCodeUnauthorized, err.Error())
	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, err.Error())
	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, internalMessage)
	}
}

// GetTraceID returns the identifier clients quote in bug reports: the
// OpenTelemetry trace ID when a span is active, else a "trace_id" context
// value, else the X-Request-ID header.
func GetTraceID(c *gin.Context) string {
	if c.Request == nil {
		return ""
	}

	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	if v, ok := c.Get(traceIDKey); ok {
		s, _ := v.(string)
		return s
	}

	return c.GetHeader(requestIDHeader)
}

// HandleError writes the error envelope for err. Internal errors are logged
// with full details; clients only see the generic message.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("internal error",
			slog.String("error", err.Error()),
			slog.String("trace_id", errResp.TraceID),
		)
	}

	c.JSON(status, errResp)
}

// RespondWithErrorCode writes an error response for adapter-level failures
// (malformed JSON, bad path parameters) that never reach the domain.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	errResp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))
	c.JSON(HTTPStatusFromCode(code), errResp)
}

// RespondWithValidationErrors writes a 400 response with field-level validation errors.
func RespondWithValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	errResp := NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", fieldErrors).
		WithTraceID(GetTraceID(c))
	c.JSON(http.StatusBadRequest, errResp)
}

// AbortWithError aborts the handler chain with the envelope for err.
func AbortWithError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)
	c.AbortWithStatusJSON(status, errResp)
}

// AbortWithErrorCode aborts the handler chain with a specific error code.
// Once headers are written only the abort takes effect.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	AbortWithStatus(c, HTTPStatusFromCode(code), code, message)
}

// AbortWithStatus aborts with an explicit status, for the few middleware
// responses whose status differs from the code's default.
func AbortWithStatus(c *gin.Context, status int, code, message string) {
	if c.Writer.Written() {
		c.Abort()
		return
	}

	c.AbortWithStatusJSON(status, NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}
