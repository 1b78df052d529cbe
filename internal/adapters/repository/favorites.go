package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

var onConflictDoNothing = clause.OnConflict{DoNothing: true}

// FavoriteRepository implements ports.FavoriteRepository.
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a favorite repository.
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, quoteID string) error {
	err := r.db.WithContext(ctx).
		Clauses(onConflictDoNothing).
		Create(&favoriteModel{UserID: userID, QuoteID: quoteID}).Error

	return translate(err, "Favorite", quoteID)
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, quoteID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quote_id = ?", userID, quoteID).
		Delete(&favoriteModel{}).Error

	return translate(err, "Favorite", quoteID)
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, quoteID string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&favoriteModel{}).
		Where("user_id = ? AND quote_id = ?", userID, quoteID).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "Favorite", quoteID)
	}

	return count > 0, nil
}

func (r *FavoriteRepository) QuoteIDs(ctx context.Context, userID string) ([]string, error) {
	ids := make([]string, 0)

	err := r.db.WithContext(ctx).
		Model(&favoriteModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("quote_id", &ids).Error
	if err != nil {
		return nil, translate(err, "Favorite", userID)
	}

	return ids, nil
}

func (r *FavoriteRepository) Quotes(ctx context.Context, userID string) ([]domain.Quote, error) {
	var models []quoteModel

	err := r.db.WithContext(ctx).
		Model(&quoteModel{}).
		Select("quotes.*").
		Joins("JOIN favorites ON favorites.quote_id = quotes.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, translate(err, "Favorite", userID)
	}

	return quotesToDomain(models), nil
}
