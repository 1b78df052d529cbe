package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// UserRepository implements ports.UserRepository and ports.ProfileRepository.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := userModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		CreatedAt:    u.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, "User", u.Email)
	}

	u.CreatedAt = m.CreatedAt

	return nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err, "User", id)
	}

	return m.toDomain(), nil
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error; err != nil {
		return nil, translate(err, "User", email)
	}

	return m.toDomain(), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.update(ctx, id, "password_hash", hash)
}

func (r *UserRepository) UpdateFullName(ctx context.Context, id, fullName string) error {
	return r.update(ctx, id, "full_name", fullName)
}

func (r *UserRepository) update(ctx context.Context, id, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return translate(res.Error, "User", id)
	}

	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("User", id)
	}

	return nil
}

// ProfileRepository implements ports.ProfileRepository.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a profile repository.
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	var m profileModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", userID).Error; err != nil {
		return nil, translate(err, "Profile", userID)
	}

	return &domain.Profile{ID: m.ID, FullName: m.FullName, AvatarURL: m.AvatarURL, UpdatedAt: m.UpdatedAt}, nil
}

// Upsert inserts the profile or overwrites name, avatar and timestamp.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	m := profileModel{ID: p.ID, FullName: p.FullName, AvatarURL: p.AvatarURL, UpdatedAt: p.UpdatedAt}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "avatar_url", "updated_at"}),
		}).
		Create(&m).Error

	return translate(err, "Profile", p.ID)
}
