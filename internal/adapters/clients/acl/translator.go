package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// BaseAdapter runs requests through the instrumented client and maps every
// failure to a domain error. Embed it in service-specific adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter returns an adapter labelling its errors with serviceName.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{client: client, serviceName: serviceName}
}

// ServiceName is the name mapped errors carry.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Call is one request to the API.
type Call struct {
	Method string
	Path   string

	// Body is encoded as JSON when non-nil.
	Body any

	// Operation and EntityID describe the call in mapped errors.
	Operation string
	EntityID  string
}

// Send executes the call. On success the caller owns the returned body and
// must close it; any status of 400 or above is mapped to a domain error.
func (a *BaseAdapter) Send(ctx context.Context, call Call) (io.ReadCloser, error) {
	var (
		resp *http.Response
		err  error
	)

	switch call.Method {
	case http.MethodGet:
		resp, err = a.client.Get(ctx, call.Path)
	case http.MethodDelete:
		resp, err = a.client.Delete(ctx, call.Path)
	case http.MethodPost, http.MethodPut:
		body, encErr := encodeBody(call.Body)
		if encErr != nil {
			return nil, encErr
		}

		if call.Method == http.MethodPost {
			resp, err = a.client.Post(ctx, call.Path, body)
		} else {
			resp, err = a.client.Put(ctx, call.Path, body)
		}
	default:
		return nil, fmt.Errorf("unsupported method %s", call.Method)
	}

	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, call.Operation, call.EntityID)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, a.serviceName, call.Operation, call.EntityID)
	}

	return resp.Body, nil
}

// Exec sends the call and discards the response body.
func (a *BaseAdapter) Exec(ctx context.Context, call Call) error {
	body, err := a.Send(ctx, call)
	if err != nil {
		return err
	}

	_, _ = io.Copy(io.Discard, body)

	return body.Close()
}

// encodeBody marshals v into a bytes.Reader so the request can be rewound
// on retry.
func encodeBody(v any) (io.Reader, error) {
	if v == nil {
		return bytes.NewReader(nil), nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	return bytes.NewReader(data), nil
}

// DecodeResponse decodes one JSON document from body and closes it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// ValidateRequired rejects an empty argument before any request is sent.
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return domain.NewValidationError(fieldName, "is required")
	}

	return nil
}

// Translator converts one external DTO into a domain value, rejecting
// payloads the domain cannot represent.
type Translator[External any, Domain any] func(ext *External) (Domain, error)

// TranslateSlice translates every item, failing on the first bad one.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}
