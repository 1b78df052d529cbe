package dto

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type collectionBody struct {
	Name    string `json:"name"    validate:"required,notempty,max=40"`
	QuoteID string `json:"quoteId" validate:"omitempty,notempty"`
	Hidden  string `json:"-"`
}

type reminderBody struct {
	Hour  *int   `json:"hour"  validate:"required,gte=0,lte=23"`
	Theme string `json:"theme" validate:"omitempty,oneof=Classic Ocean"`
	Email string `json:"email" validate:"omitempty,email"`
}

func jsonContext(body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	return c
}

func TestBindAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantErr    error
		wantFields map[string]string
	}{
		{
			name: "valid",
			body: `{"name":"Mornings","quoteId":"q1"}`,
		},
		{
			name:    "malformed json",
			body:    `{"name":`,
			wantErr: ErrBinding,
		},
		{
			name:       "missing name",
			body:       `{}`,
			wantErr:    ErrValidation,
			wantFields: map[string]string{"name": "is required"},
		},
		{
			name:       "blank name",
			body:       `{"name":"   "}`,
			wantErr:    ErrValidation,
			wantFields: map[string]string{"name": "must not be blank"},
		},
		{
			name:       "long name",
			body:       `{"name":"` + strings.Repeat("x", 41) + `"}`,
			wantErr:    ErrValidation,
			wantFields: map[string]string{"name": "must be at most 40 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body collectionBody
			err := BindAndValidate(jsonContext(tt.body), &body)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "Mornings", body.Name)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, ValidationErrors(err))
			}
		})
	}
}

func TestValidationErrors_Messages(t *testing.T) {
	hour := 24

	err := Validate(&reminderBody{Hour: &hour, Theme: "Neon", Email: "nope"})
	require.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, map[string]string{
		"hour":  "must be at most 23",
		"theme": "must be one of: Classic Ocean",
		"email": "must be a valid email address",
	}, ValidationErrors(err))
}

func TestValidationErrors_NonValidatorError(t *testing.T) {
	assert.Empty(t, ValidationErrors(ErrBinding))
}

func TestHTTPStatusFromCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromCode(ErrorCodeValidation))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatusFromCode(ErrorCodeTimeout))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromCode("SOMETHING_ELSE"))
}
