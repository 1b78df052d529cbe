package repository

import (
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

type quoteModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Content   string    `gorm:"not null"`
	Author    string    `gorm:"not null;index"`
	Category  string    `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"index"`
}

func (quoteModel) TableName() string { return "quotes" }

func (m *quoteModel) toDomain() domain.Quote {
	return domain.Quote{
		ID:        m.ID,
		Content:   m.Content,
		Author:    m.Author,
		Category:  m.Category,
		CreatedAt: m.CreatedAt,
	}
}

func quotesToDomain(models []quoteModel) []domain.Quote {
	out := make([]domain.Quote, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}

	return out
}

type favoriteModel struct {
	UserID    string `gorm:"primaryKey;size:36"`
	QuoteID   string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
}

func (favoriteModel) TableName() string { return "favorites" }

type collectionModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"not null;index;size:36"`
	Name      string `gorm:"not null;size:60"`
	CreatedAt time.Time
}

func (collectionModel) TableName() string { return "collections" }

func (m *collectionModel) toDomain() domain.Collection {
	return domain.Collection{ID: m.ID, UserID: m.UserID, Name: m.Name, CreatedAt: m.CreatedAt}
}

type collectionQuoteModel struct {
	CollectionID string `gorm:"primaryKey;size:36"`
	QuoteID      string `gorm:"primaryKey;size:36"`
	CreatedAt    time.Time
}

func (collectionQuoteModel) TableName() string { return "collection_quotes" }

type profileModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	FullName  string
	AvatarURL string
	UpdatedAt time.Time
}

func (profileModel) TableName() string { return "profiles" }

type userModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	FullName     string
	CreatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		CreatedAt:    m.CreatedAt,
	}
}
