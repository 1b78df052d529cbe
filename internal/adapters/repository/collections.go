package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// CollectionRepository implements ports.CollectionRepository.
type CollectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository creates a collection repository.
func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

func (r *CollectionRepository) List(ctx context.Context, userID string, order domain.CollectionOrder) ([]domain.Collection, error) {
	orderBy := "created_at DESC"
	if order == domain.CollectionOrderName {
		orderBy = "name ASC"
	}

	var models []collectionModel

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(orderBy).
		Find(&models).Error
	if err != nil {
		return nil, translate(err, "Collection", userID)
	}

	out := make([]domain.Collection, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}

	return out, nil
}

func (r *CollectionRepository) Get(ctx context.Context, userID, id string) (*domain.Collection, error) {
	var m collectionModel

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		return nil, translate(err, "Collection", id)
	}

	c := m.toDomain()

	return &c, nil
}

func (r *CollectionRepository) Create(ctx context.Context, c *domain.Collection) error {
	m := collectionModel{ID: c.ID, UserID: c.UserID, Name: c.Name, CreatedAt: c.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, "Collection", c.ID)
	}

	c.CreatedAt = m.CreatedAt

	return nil
}

func (r *CollectionRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&collectionModel{})
		if res.Error != nil {
			return translate(res.Error, "Collection", id)
		}

		if res.RowsAffected == 0 {
			return domain.NewNotFoundError("Collection", id)
		}

		err := tx.Where("collection_id = ?", id).Delete(&collectionQuoteModel{}).Error

		return translate(err, "Collection", id)
	})
}

func (r *CollectionRepository) AddQuote(ctx context.Context, collectionID, quoteID string) error {
	err := r.db.WithContext(ctx).
		Create(&collectionQuoteModel{CollectionID: collectionID, QuoteID: quoteID}).Error
	if err != nil {
		return translate(err, "CollectionQuote", quoteID)
	}

	return nil
}

func (r *CollectionRepository) RemoveQuote(ctx context.Context, collectionID, quoteID string) error {
	err := r.db.WithContext(ctx).
		Where("collection_id = ? AND quote_id = ?", collectionID, quoteID).
		Delete(&collectionQuoteModel{}).Error

	return translate(err, "CollectionQuote", quoteID)
}

func (r *CollectionRepository) Quotes(ctx context.Context, collectionID string) ([]domain.Quote, error) {
	var models []quoteModel

	err := r.db.WithContext(ctx).
		Model(&quoteModel{}).
		Select("quotes.*").
		Joins("JOIN collection_quotes ON collection_quotes.quote_id = quotes.id").
		Where("collection_quotes.collection_id = ?", collectionID).
		Order("collection_quotes.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, translate(err, "Collection", collectionID)
	}

	return quotesToDomain(models), nil
}
