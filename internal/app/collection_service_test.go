package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/mocks"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newCollectionService(t *testing.T) (*CollectionService, *mocks.MockQuoteRepository, *mocks.MockCollectionRepository) {
	t.Helper()

	quotes := mocks.NewMockQuoteRepository(t)
	collections := mocks.NewMockCollectionRepository(t)

	svc := NewCollectionService(CollectionServiceConfig{
		Quotes:      quotes,
		Collections: collections,
		Clock:       func() time.Time { return fixedNow },
		NewID:       func() string { return "c-new" },
		Logger:      discardLogger(),
	})

	return svc, quotes, collections
}

func TestCollectionService_Create(t *testing.T) {
	t.Run("trims the name", func(t *testing.T) {
		svc, _, collections := newCollectionService(t)

		want := &domain.Collection{ID: "c-new", UserID: "u1", Name: "Stoics", CreatedAt: fixedNow}
		collections.EXPECT().Create(mock.Anything, want).Return(nil)

		c, err := svc.Create(context.Background(), "u1", "  Stoics  ")

		require.NoError(t, err)
		assert.Equal(t, want, c)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		svc, _, _ := newCollectionService(t)

		_, err := svc.Create(context.Background(), "u1", "   ")

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "name", ve.Field)
	})
}

func TestCollectionService_AddQuote(t *testing.T) {
	owned := &domain.Collection{ID: "c1", UserID: "u1", Name: "Stoics"}

	tests := []struct {
		name     string
		setup    func(*mocks.MockQuoteRepository, *mocks.MockCollectionRepository)
		errCheck func(error) bool
		message  string
	}{
		{
			name: "adds",
			setup: func(q *mocks.MockQuoteRepository, c *mocks.MockCollectionRepository) {
				c.EXPECT().Get(mock.Anything, "u1", "c1").Return(owned, nil)
				q.EXPECT().Get(mock.Anything, "q1").Return(&domain.Quote{ID: "q1"}, nil)
				c.EXPECT().AddQuote(mock.Anything, "c1", "q1").Return(nil)
			},
		},
		{
			name: "duplicate",
			setup: func(q *mocks.MockQuoteRepository, c *mocks.MockCollectionRepository) {
				c.EXPECT().Get(mock.Anything, "u1", "c1").Return(owned, nil)
				q.EXPECT().Get(mock.Anything, "q1").Return(&domain.Quote{ID: "q1"}, nil)
				c.EXPECT().AddQuote(mock.Anything, "c1", "q1").Return(domain.NewConflictError("CollectionQuote", "duplicate key"))
			},
			errCheck: domain.IsConflict,
			message:  AlreadyInCollection,
		},
		{
			name: "someone else's collection",
			setup: func(_ *mocks.MockQuoteRepository, c *mocks.MockCollectionRepository) {
				c.EXPECT().Get(mock.Anything, "u1", "c1").Return(nil, domain.NewNotFoundError("Collection", "c1"))
			},
			errCheck: domain.IsNotFound,
		},
		{
			name: "unknown quote",
			setup: func(q *mocks.MockQuoteRepository, c *mocks.MockCollectionRepository) {
				c.EXPECT().Get(mock.Anything, "u1", "c1").Return(owned, nil)
				q.EXPECT().Get(mock.Anything, "q1").Return(nil, domain.NewNotFoundError("Quote", "q1"))
			},
			errCheck: domain.IsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, quotes, collections := newCollectionService(t)
			tt.setup(quotes, collections)

			err := svc.AddQuote(context.Background(), "u1", "c1", "q1")

			if tt.errCheck == nil {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, tt.errCheck(err))

			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestCollectionService_RemoveQuoteAndQuotes(t *testing.T) {
	svc, _, collections := newCollectionService(t)
	owned := &domain.Collection{ID: "c1", UserID: "u1", Name: "Stoics"}

	collections.EXPECT().Get(mock.Anything, "u1", "c1").Return(owned, nil).Twice()
	collections.EXPECT().RemoveQuote(mock.Anything, "c1", "q1").Return(nil)
	collections.EXPECT().Quotes(mock.Anything, "c1").Return(sampleQuotes("q2"), nil)

	require.NoError(t, svc.RemoveQuote(context.Background(), "u1", "c1", "q1"))

	quotes, err := svc.Quotes(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Len(t, quotes, 1)

	_, err = svc.Quotes(context.Background(), "u1", " ")
	assert.True(t, domain.IsValidation(err))
}

func TestCollectionService_ListAndDelete(t *testing.T) {
	svc, _, collections := newCollectionService(t)

	collections.EXPECT().List(mock.Anything, "u1", domain.CollectionOrderName).
		Return([]domain.Collection{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}}, nil)
	collections.EXPECT().Delete(mock.Anything, "u1", "b").Return(nil)

	list, err := svc.List(context.Background(), "u1", domain.CollectionOrderName)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.Delete(context.Background(), "u1", "b"))
}

func TestCollectionService_CreateAndAdd(t *testing.T) {
	t.Run("creates and adds", func(t *testing.T) {
		svc, quotes, collections := newCollectionService(t)

		quotes.EXPECT().Get(mock.Anything, "q1").Return(&domain.Quote{ID: "q1"}, nil)
		collections.EXPECT().Create(mock.Anything, mock.MatchedBy(func(c *domain.Collection) bool {
			return c.ID == "c-new" && c.Name == "Stoics" && c.UserID == "u1"
		})).Return(nil)
		collections.EXPECT().AddQuote(mock.Anything, "c-new", "q1").Return(nil)

		c, err := svc.CreateAndAdd(context.Background(), "u1", "Stoics", "q1")

		require.NoError(t, err)
		assert.Equal(t, "c-new", c.ID)
	})

	t.Run("failed add deletes the new collection", func(t *testing.T) {
		svc, quotes, collections := newCollectionService(t)

		quotes.EXPECT().Get(mock.Anything, "q1").Return(&domain.Quote{ID: "q1"}, nil)
		collections.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
		collections.EXPECT().AddQuote(mock.Anything, "c-new", "q1").
			Return(domain.NewUnavailableError("database", "locked"))
		collections.EXPECT().Delete(mock.Anything, "u1", "c-new").Return(nil)

		c, err := svc.CreateAndAdd(context.Background(), "u1", "Stoics", "q1")

		require.Error(t, err)
		assert.True(t, domain.IsUnavailable(err))
		assert.Contains(t, err.Error(), "add quote")
		assert.Nil(t, c)
	})

	t.Run("failed create adds nothing", func(t *testing.T) {
		svc, quotes, collections := newCollectionService(t)

		quotes.EXPECT().Get(mock.Anything, "q1").Return(&domain.Quote{ID: "q1"}, nil)
		collections.EXPECT().Create(mock.Anything, mock.Anything).
			Return(domain.NewConflictError("Collection", "duplicate key"))

		_, err := svc.CreateAndAdd(context.Background(), "u1", "Stoics", "q1")

		require.Error(t, err)
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("validates before writing", func(t *testing.T) {
		svc, _, _ := newCollectionService(t)

		_, err := svc.CreateAndAdd(context.Background(), "u1", "", "q1")
		assert.True(t, domain.IsValidation(err))
	})
}
