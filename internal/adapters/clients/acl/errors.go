package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// decodeError reads the API error envelope from body. It returns nil for an
// empty or foreign body, e.g. a proxy's HTML error page.
func decodeError(body io.Reader) *dto.ErrorResponse {
	if body == nil {
		return nil
	}

	var env dto.ErrorResponse
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return nil
	}

	if env.Error.Code == "" && env.Error.Message == "" {
		return nil
	}

	return &env
}

// codeForStatus is the error code a status implies regardless of body.
// Statuses it does not know defer to the code in the envelope.
func codeForStatus(status int) string {
	switch {
	case status == http.StatusNotFound:
		return dto.ErrorCodeNotFound
	case status == http.StatusConflict:
		return dto.ErrorCodeConflict
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return dto.ErrorCodeValidation
	case status == http.StatusUnauthorized:
		return dto.ErrorCodeUnauthorized
	case status == http.StatusForbidden:
		return dto.ErrorCodeForbidden
	case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return dto.ErrorCodeUnavailable
	default:
		return ""
	}
}

// MapHTTPError turns a failed call into a domain error. resp may be nil
// when clientErr is set; entityID is the resource the call addressed and
// ends up in NotFoundError. A 2xx response maps to nil.
func MapHTTPError(resp *http.Response, clientErr error, service, operation, entityID string) error {
	if clientErr != nil {
		return domain.NewUnavailableError(service, transportReason(clientErr, operation))
	}

	if resp == nil {
		return domain.NewUnavailableError(service, "no response received")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	code := codeForStatus(resp.StatusCode)
	message := http.StatusText(resp.StatusCode)

	if resp.StatusCode == http.StatusTooManyRequests {
		message = "rate limit exceeded"
	}

	var details map[string]string

	if env := decodeError(resp.Body); env != nil {
		if code == "" {
			code = env.Error.Code
		}

		if env.Error.Message != "" && resp.StatusCode != http.StatusTooManyRequests {
			message = env.Error.Message
		}

		details = env.Error.Details
	}

	if message == "" {
		message = fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode)
	}

	if code == "" {
		code = dto.ErrorCodeBadRequest
	}

	return fromCode(code, message, details, service, operation, entityID)
}

func transportReason(err error, operation string) string {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return "circuit breaker open during " + operation
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return "max retries exceeded during " + operation
	default:
		return fmt.Sprintf("%s failed: %v", operation, err)
	}
}

func fromCode(code, message string, details map[string]string, service, operation, entityID string) error {
	switch code {
	case dto.ErrorCodeNotFound:
		return domain.NewNotFoundError(service, entityID)
	case dto.ErrorCodeConflict:
		return domain.NewConflictError(service, message)
	case dto.ErrorCodeValidation, dto.ErrorCodeBadRequest:
		if len(details) > 0 {
			return firstFieldError(details)
		}

		return domain.NewValidationError("", message)
	case dto.ErrorCodeForbidden:
		return domain.NewForbiddenError(operation, message)
	case dto.ErrorCodeUnauthorized:
		return domain.NewUnauthorizedError(message)
	default:
		return domain.NewUnavailableError(service, message)
	}
}

// firstFieldError reports the alphabetically first field so the same
// response always maps to the same error.
func firstFieldError(details map[string]string) error {
	field := slices.Min(slices.Collect(maps.Keys(details)))

	return domain.NewValidationError(field, details[field])
}
