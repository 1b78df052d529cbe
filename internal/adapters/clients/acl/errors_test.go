package acl

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestMapHTTPError_Status(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"not found", http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"quote not found"}}`, domain.IsNotFound},
		{"conflict", http.StatusConflict, `{"error":{"code":"CONFLICT","message":"already in that collection"}}`, domain.IsConflict},
		{"bad request", http.StatusBadRequest, `{"error":{"code":"BAD_REQUEST","message":"bad"}}`, domain.IsValidation},
		{"forbidden", http.StatusForbidden, ``, domain.IsForbidden},
		{"unauthorized", http.StatusUnauthorized, `{"error":{"code":"UNAUTHORIZED","message":"invalid credentials"}}`, domain.IsUnauthorized},
		{"rate limited", http.StatusTooManyRequests, ``, domain.IsUnavailable},
		{"server error", http.StatusInternalServerError, `{"error":{"code":"INTERNAL_ERROR"}}`, domain.IsUnavailable},
		{"unavailable", http.StatusServiceUnavailable, ``, domain.IsUnavailable},
		{"timeout code", http.StatusRequestTimeout, `{"error":{"code":"TIMEOUT","message":"slow"}}`, domain.IsUnavailable},
		{"unknown 4xx", http.StatusTeapot, ``, domain.IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(response(tt.status, tt.body), nil, "quotevault-api", "get quote", "q1")

			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected mapping: %v", err)
		})
	}
}

func TestMapHTTPError_NotFoundCarriesID(t *testing.T) {
	err := MapHTTPError(response(http.StatusNotFound, ``), nil, "quotevault-api", "get quote", "q1")

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "q1", nf.ID)
}

func TestMapHTTPError_ConflictKeepsMessage(t *testing.T) {
	err := MapHTTPError(response(http.StatusConflict,
		`{"error":{"code":"CONFLICT","message":"already in that collection"}}`), nil, "quotevault-api", "add", "c1")

	var ce *domain.ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "already in that collection", ce.Reason)
}

func TestMapHTTPError_ValidationPicksFirstField(t *testing.T) {
	body := `{"error":{"code":"VALIDATION_ERROR","message":"invalid","details":{"password":"too short","email":"required"}}}`

	for range 5 {
		err := MapHTTPError(response(http.StatusBadRequest, body), nil, "quotevault-api", "sign up", "")

		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "email", ve.Field)
		assert.Equal(t, "required", ve.Message)
	}
}

func TestMapHTTPError_ClientErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"circuit open", clients.ErrCircuitOpen},
		{"retries exhausted", fmt.Errorf("%w: boom", clients.ErrMaxRetriesExceeded)},
		{"transport", errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(nil, tt.err, "quotevault-api", "get feed", "")
			assert.True(t, domain.IsUnavailable(err))
		})
	}
}

func TestMapHTTPError_SuccessAndNil(t *testing.T) {
	assert.NoError(t, MapHTTPError(response(http.StatusOK, ``), nil, "svc", "op", ""))
	assert.True(t, domain.IsUnavailable(MapHTTPError(nil, nil, "svc", "op", "")))
}

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name     string
		body     io.Reader
		wantCode string
	}{
		{name: "envelope", body: strings.NewReader(`{"error":{"code":"NOT_FOUND","message":"gone"},"traceId":"t"}`), wantCode: "NOT_FOUND"},
		{name: "not json", body: strings.NewReader(`<html>`)},
		{name: "empty object", body: strings.NewReader(`{}`)},
		{name: "nil", body: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeError(tt.body)
			if tt.wantCode == "" {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Error.Code)
		})
	}
}

func TestMapHTTPError_UnknownStatusUsesEnvelopeCode(t *testing.T) {
	err := MapHTTPError(response(http.StatusTeapot, `{"error":{"code":"FORBIDDEN","message":"no"}}`), nil, "svc", "op", "")

	assert.True(t, domain.IsForbidden(err), "got %v", err)
}
