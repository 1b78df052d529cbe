package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

const (
	// ContextKeyClaims is the gin context key for the verified token claims.
	ContextKeyClaims = "claims"

	// ContextKeyToken is the gin context key for the raw bearer token.
	ContextKeyToken = "token"

	bearerPrefix = "Bearer "
)

// Authenticator verifies an access token and rejects revoked ones.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*ports.TokenClaims, error)
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}

// RequireAuth rejects requests without a valid bearer token. On success the
// claims are stored on the gin context, the user is attached to the request
// logger and feature flags are evaluated for that user.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			dto.AbortWithStatus(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "authentication required")
			return
		}

		ctx := c.Request.Context()

		claims, err := auth.Authenticate(ctx, token)
		if err != nil {
			if domain.IsUnauthorized(err) {
				dto.AbortWithStatus(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, err.Error())
				return
			}

			logging.FromContext(ctx).WarnContext(ctx, "token check failed", slog.Any("error", err))
			dto.AbortWithStatus(c, http.StatusServiceUnavailable, dto.ErrorCodeUnavailable, "authentication unavailable")

			return
		}

		ctx = logging.WithAttrs(ctx, slog.String("user_id", claims.UserID))
		ctx = ports.WithFeatureFlagUser(ctx, &ports.FeatureFlagUser{
			ID:         claims.UserID,
			Attributes: map[string]any{"email": claims.Email},
		})

		c.Request = c.Request.WithContext(ctx)
		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyToken, token)

		c.Next()
	}
}

// GetClaims returns the claims stored by RequireAuth, or nil.
func GetClaims(c *gin.Context) *ports.TokenClaims {
	if v, exists := c.Get(ContextKeyClaims); exists {
		if claims, ok := v.(*ports.TokenClaims); ok {
			return claims
		}
	}

	return nil
}

// UserID returns the authenticated user's id, or "" outside RequireAuth.
func UserID(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil {
		return claims.UserID
	}

	return ""
}

// Token returns the raw bearer token stored by RequireAuth.
func Token(c *gin.Context) string {
	return c.GetString(ContextKeyToken)
}
