package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// QuoteRepository implements ports.QuoteRepository.
type QuoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a quote repository.
func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Get(ctx context.Context, id string) (*domain.Quote, error) {
	var m quoteModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Quote", id)
	}

	q := m.toDomain()

	return &q, nil
}

func (r *QuoteRepository) Recent(ctx context.Context, limit int) ([]domain.Quote, error) {
	var models []quoteModel

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, translate(err, "Quote", "recent")
	}

	return quotesToDomain(models), nil
}

func (r *QuoteRepository) Sample(ctx context.Context, limit int) ([]domain.Quote, error) {
	var models []quoteModel
	if err := r.db.WithContext(ctx).Limit(limit).Find(&models).Error; err != nil {
		return nil, translate(err, "Quote", "sample")
	}

	return quotesToDomain(models), nil
}

func (r *QuoteRepository) Search(ctx context.Context, query string, limit int) ([]domain.Quote, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"

	var models []quoteModel

	err := r.db.WithContext(ctx).
		Where(`LOWER(content) LIKE ? ESCAPE '\' OR LOWER(author) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, translate(err, "Quote", "search")
	}

	return quotesToDomain(models), nil
}

func (r *QuoteRepository) ByCategory(ctx context.Context, category string, limit int) ([]domain.Quote, error) {
	var models []quoteModel

	err := r.db.WithContext(ctx).
		Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(category))).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, translate(err, "Quote", category)
	}

	return quotesToDomain(models), nil
}

// Insert stores quotes, skipping ids that already exist.
func (r *QuoteRepository) Insert(ctx context.Context, quotes []domain.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	models := make([]quoteModel, len(quotes))
	for i, q := range quotes {
		models[i] = quoteModel(q)
	}

	err := r.db.WithContext(ctx).
		Clauses(onConflictDoNothing).
		CreateInBatches(models, 100).Error

	return translate(err, "Quote", "batch")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
