// Package auth issues HS256 access tokens and hashes passwords with bcrypt.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTIssuer implements ports.TokenIssuer.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

// NewJWTIssuer creates an issuer from the auth config. clock may be nil.
func NewJWTIssuer(cfg config.AuthConfig, clock func() time.Time) *JWTIssuer {
	if clock == nil {
		clock = time.Now
	}

	return &JWTIssuer{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
		leeway: cfg.Leeway,
		now:    clock,
	}
}

// Issue signs a new token for user.
func (i *JWTIssuer) Issue(_ context.Context, user *domain.User) (*domain.Session, error) {
	now := i.now()
	expires := now.Add(i.ttl)
	id := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   user.ID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &domain.Session{
		AccessToken: signed,
		TokenID:     id,
		ExpiresAt:   expires.Truncate(time.Second),
		User:        *user,
	}, nil
}

// Parse verifies the signature, issuer and expiry of token.
func (i *JWTIssuer) Parse(_ context.Context, token string) (*ports.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithLeeway(i.leeway),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewUnauthorizedError("token expired")
		}

		return nil, domain.NewUnauthorizedError("invalid token")
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || c.Subject == "" || c.ID == "" {
		return nil, domain.NewUnauthorizedError("invalid token")
	}

	return &ports.TokenClaims{
		UserID:    c.Subject,
		Email:     c.Email,
		TokenID:   c.ID,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
