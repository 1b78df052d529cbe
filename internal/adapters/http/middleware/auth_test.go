package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

type authenticatorFunc func(ctx context.Context, token string) (*ports.TokenClaims, error)

func (f authenticatorFunc) Authenticate(ctx context.Context, token string) (*ports.TokenClaims, error) {
	return f(ctx, token)
}

var validClaims = &ports.TokenClaims{
	UserID:    "u1",
	Email:     "ada@example.com",
	TokenID:   "jti",
	ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
}

func fakeAuthenticator() Authenticator {
	return authenticatorFunc(func(_ context.Context, token string) (*ports.TokenClaims, error) {
		switch token {
		case "good":
			return validClaims, nil
		case "revoked":
			return nil, domain.NewUnauthorizedError("token revoked")
		default:
			return nil, domain.NewUnavailableError("redis", "connection refused")
		}
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{name: "bearer", header: "Bearer abc.def", token: "abc.def", ok: true},
		{name: "lowercase scheme", header: "bearer abc", token: "abc", ok: true},
		{name: "missing", header: "", ok: false},
		{name: "basic", header: "Basic dXNlcjpwYXNz", ok: false},
		{name: "empty token", header: "Bearer    ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			token, ok := BearerToken(c)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK},
		{name: "no header", wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeUnauthorized},
		{name: "revoked token", header: "Bearer revoked", wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeUnauthorized},
		{name: "store down", header: "Bearer other", wantStatus: http.StatusServiceUnavailable, wantCode: dto.ErrorCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequireAuth(fakeAuthenticator()))

			var (
				gotUser  string
				gotToken string
				flagUser *ports.FeatureFlagUser
			)

			router.GET("/me", func(c *gin.Context) {
				gotUser = UserID(c)
				gotToken = Token(c)
				flagUser = ports.GetFeatureFlagUser(c.Request.Context())
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantCode == "" {
				assert.Equal(t, "u1", gotUser)
				assert.Equal(t, "good", gotToken)
				require.NotNil(t, flagUser)
				assert.Equal(t, "u1", flagUser.ID)
				assert.Equal(t, "ada@example.com", flagUser.Attributes["email"])
				return
			}

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Empty(t, gotUser, "handler must not run")
		})
	}
}

func TestUserID_WithoutAuth(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, UserID(c))
	assert.Nil(t, GetClaims(c))
}
