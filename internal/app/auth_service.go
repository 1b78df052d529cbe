package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

const revokedKeyPrefix = "revoked:"

// RevokedKey returns the denylist key of a signed-out token.
func RevokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}

// errInvalidCredentials is shared by unknown emails and wrong passwords so
// callers cannot tell which accounts exist.
var errInvalidCredentials = domain.NewUnauthorizedError("invalid credentials")

// unknownUserPassword is hashed once to give unknown emails a hash to
// compare against.
const unknownUserPassword = "quotevault-unknown-user"

// AuthService signs users up, in and out.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	store  ports.KeyValueStore
	now    func() time.Time
	logger *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// AuthServiceConfig contains the dependencies of the auth service.
type AuthServiceConfig struct {
	Users  ports.UserRepository // required
	Hasher ports.PasswordHasher // required
	Tokens ports.TokenIssuer    // required
	Store  ports.KeyValueStore  // required
	Clock  func() time.Time
	Logger *slog.Logger
}

// NewAuthService creates the service. It panics when a required dependency
// is missing.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	switch {
	case cfg.Users == nil:
		panic("app: AuthServiceConfig.Users is required")
	case cfg.Hasher == nil:
		panic("app: AuthServiceConfig.Hasher is required")
	case cfg.Tokens == nil:
		panic("app: AuthServiceConfig.Tokens is required")
	case cfg.Store == nil:
		panic("app: AuthServiceConfig.Store is required")
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		users:  cfg.Users,
		hasher: cfg.Hasher,
		tokens: cfg.Tokens,
		store:  cfg.Store,
		now:    now,
		logger: logger.With(slog.String("component", "app.AuthService")),
	}
}

// SignUp creates an account and returns a session for it.
func (s *AuthService) SignUp(ctx context.Context, email, password, fullName string) (*domain.Session, error) {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        normalized,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).InfoContext(ctx, "user signed up", slog.String("user_id", u.ID))

	return s.tokens.Issue(ctx, u)
}

// SignIn checks the credentials and returns a new session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, errInvalidCredentials
	}

	u, err := s.users.ByEmail(ctx, normalized)
	if domain.IsNotFound(err) {
		s.compareUnknown(ctx, password)
		return nil, errInvalidCredentials
	}

	if err != nil {
		return nil, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		logging.FromContext(ctx).InfoContext(ctx, "sign in rejected", slog.String("user_id", u.ID))
		return nil, errInvalidCredentials
	}

	return s.tokens.Issue(ctx, u)
}

// compareUnknown does the hash comparison a known email would get, so an
// unknown email is not rejected measurably faster.
func (s *AuthService) compareUnknown(ctx context.Context, password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(unknownUserPassword)
		if err != nil {
			s.logger.WarnContext(ctx, "hashing unknown-user password", slog.Any("error", err))
			return
		}

		s.dummyHash = hash
	})

	if s.dummyHash != "" {
		_ = s.hasher.Compare(s.dummyHash, password)
	}
}

// SignOut revokes the token until it would have expired anyway.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(ctx, token)
	if err != nil {
		return err
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	return s.store.Set(ctx, RevokedKey(claims.TokenID), claims.UserID, ttl)
}

// Authenticate verifies a bearer token and rejects signed-out ones.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*ports.TokenClaims, error) {
	claims, err := s.tokens.Parse(ctx, token)
	if err != nil {
		return nil, err
	}

	_, err = s.store.Get(ctx, RevokedKey(claims.TokenID))
	switch {
	case err == nil:
		return nil, domain.NewUnauthorizedError("token revoked")
	case domain.IsNotFound(err):
		return claims, nil
	default:
		return nil, err
	}
}

// ChangePassword replaces the user's password.
func (s *AuthService) ChangePassword(ctx context.Context, userID, password, confirm string) error {
	if err := domain.ValidatePasswordChange(password, confirm); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	logging.FromContext(ctx).InfoContext(ctx, "password changed", slog.String("user_id", userID))

	return nil
}
