package app

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

const (
	// AvatarBucket holds uploaded profile pictures.
	AvatarBucket = "avatars"

	// MaxAvatarBytes is the default bound on an uploaded avatar.
	MaxAvatarBytes = 5 << 20

	// MaxFullNameLength bounds the display name.
	MaxFullNameLength = 100

	avatarContentType = "image/jpeg"
)

var jpegMagic = []byte{0xFF, 0xD8, 0xFF}

// AvatarPath returns the object path of an avatar uploaded at t.
func AvatarPath(userID string, t time.Time) string {
	return fmt.Sprintf("public/%s/%d.jpg", userID, t.UnixMilli())
}

// UpdateProfileInput is a profile edit. A nil Avatar keeps the current one.
type UpdateProfileInput struct {
	UserID   string
	FullName string
	Avatar   []byte
}

// Overview is the profile tab: the profile, its collections and favorites.
type Overview struct {
	Profile     *domain.Profile
	Collections []domain.Collection
	Favorites   []domain.Quote
}

// ProfileService reads and edits public profiles.
type ProfileService struct {
	profiles    ports.ProfileRepository
	users       ports.UserRepository
	collections ports.CollectionRepository
	favorites   ports.FavoriteRepository
	storage     ports.ObjectStorage
	executor    *Executor
	maxAvatar   int
	now         func() time.Time
	logger      *slog.Logger
}

// ProfileServiceConfig contains the dependencies of the profile service.
type ProfileServiceConfig struct {
	Profiles    ports.ProfileRepository    // required
	Users       ports.UserRepository       // required
	Collections ports.CollectionRepository // required
	Favorites   ports.FavoriteRepository   // required
	Storage     ports.ObjectStorage        // required
	MaxAvatar   int
	Clock       func() time.Time
	Logger      *slog.Logger
}

// NewProfileService creates the service. It panics when a required
// dependency is missing.
func NewProfileService(cfg ProfileServiceConfig) *ProfileService {
	switch {
	case cfg.Profiles == nil:
		panic("app: ProfileServiceConfig.Profiles is required")
	case cfg.Users == nil:
		panic("app: ProfileServiceConfig.Users is required")
	case cfg.Collections == nil:
		panic("app: ProfileServiceConfig.Collections is required")
	case cfg.Favorites == nil:
		panic("app: ProfileServiceConfig.Favorites is required")
	case cfg.Storage == nil:
		panic("app: ProfileServiceConfig.Storage is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	logger = logger.With(slog.String("component", "app.ProfileService"))

	return &ProfileService{
		profiles:    cfg.Profiles,
		users:       cfg.Users,
		collections: cfg.Collections,
		favorites:   cfg.Favorites,
		storage:     cfg.Storage,
		executor:    NewExecutor(logger),
		maxAvatar:   cmpOr(cfg.MaxAvatar, MaxAvatarBytes),
		now:         now,
		logger:      logger,
	}
}

// Profile returns the user's profile. A user without a saved profile gets
// one built from the account's full name.
func (s *ProfileService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err == nil {
		return p, nil
	}

	if !domain.IsNotFound(err) {
		return nil, err
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return domain.ProfileFromUser(u), nil
}

// Overview loads the profile, the collections newest first and the
// favorites concurrently.
func (s *ProfileService) Overview(ctx context.Context, userID string) (*Overview, error) {
	profile, collections, favorites, err := Parallel3(ctx,
		func(ctx context.Context) (*domain.Profile, error) {
			return s.Profile(ctx, userID)
		},
		func(ctx context.Context) ([]domain.Collection, error) {
			return s.collections.List(ctx, userID, domain.CollectionOrderRecent)
		},
		func(ctx context.Context) ([]domain.Quote, error) {
			return s.favorites.Quotes(ctx, userID)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("loading profile overview: %w", err)
	}

	return &Overview{Profile: profile, Collections: collections, Favorites: favorites}, nil
}

// UpdateProfile saves a new display name and, optionally, a new avatar.
// The avatar is uploaded first; the profile row is only written once its
// public URL is known.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*domain.Profile, error) {
	op := Operation[UpdateProfileInput, string, *domain.Profile, *domain.Profile]{
		Name:     "UpdateProfile",
		Validate: s.validateUpdate,
		Perform:  s.uploadAvatar,
		Verify:   s.verifyAvatar,
		Archive:  s.saveProfile,
		Respond: func(_ context.Context, _ UpdateProfileInput, p *domain.Profile) (*domain.Profile, error) {
			return p, nil
		},
	}

	return Execute(ctx, s.executor, op, in)
}

func (s *ProfileService) validateUpdate(_ context.Context, in UpdateProfileInput) error {
	if in.UserID == "" {
		return domain.NewUnauthorizedError("missing user")
	}

	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return domain.NewValidationError("fullName", "full name is required")
	}

	if utf8.RuneCountInString(name) > MaxFullNameLength {
		return domain.NewValidationError("fullName", "full name is too long")
	}

	if in.Avatar == nil {
		return nil
	}

	if len(in.Avatar) > s.maxAvatar {
		return domain.NewValidationErrorWithValue("avatar", "avatar is too large", len(in.Avatar))
	}

	if !bytes.HasPrefix(in.Avatar, jpegMagic) {
		return domain.NewValidationError("avatar", "avatar must be a JPEG image")
	}

	return nil
}

// uploadAvatar returns the object path, or "" when no avatar was sent.
func (s *ProfileService) uploadAvatar(ctx context.Context, in UpdateProfileInput) (string, error) {
	if in.Avatar == nil {
		return "", nil
	}

	path := AvatarPath(in.UserID, s.now())
	if err := s.storage.Upload(ctx, AvatarBucket, path, in.Avatar, avatarContentType); err != nil {
		return "", err
	}

	return path, nil
}

func (s *ProfileService) verifyAvatar(ctx context.Context, in UpdateProfileInput, path string) (*domain.Profile, error) {
	current, err := s.Profile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	p := &domain.Profile{
		ID:        in.UserID,
		FullName:  strings.TrimSpace(in.FullName),
		AvatarURL: current.AvatarURL,
		UpdatedAt: s.now().UTC(),
	}

	if path == "" {
		return p, nil
	}

	raw := s.storage.PublicURL(AvatarBucket, path)

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, domain.NewUnavailableError("storage", "no public URL for uploaded avatar")
	}

	p.AvatarURL = raw

	return p, nil
}

func (s *ProfileService) saveProfile(ctx context.Context, _ UpdateProfileInput, p *domain.Profile) error {
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return err
	}

	return s.users.UpdateFullName(ctx, p.ID, p.FullName)
}
