package handlers

import (
	"bytes"
	"image/png"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/adapters/kv"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/mocks"
	"github.com/jsamuelsen/quotevault/internal/render"
)

var seneca = domain.Quote{
	ID:        "q1",
	Content:   "We suffer more often in imagination than in reality.",
	Author:    "Seneca",
	Category:  "Wisdom",
	CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
}

type quoteFixture struct {
	quotes    *mocks.MockQuoteRepository
	favorites *mocks.MockFavoriteRepository
	engine    *gin.Engine
}

func newQuoteFixture(t *testing.T, uid string) *quoteFixture {
	t.Helper()

	f := &quoteFixture{
		quotes:    mocks.NewMockQuoteRepository(t),
		favorites: mocks.NewMockFavoriteRepository(t),
	}

	renderer, err := render.NewRenderer(render.Config{Width: 240, Height: 300})
	require.NoError(t, err)

	quotes := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:    f.quotes,
		Favorites: f.favorites,
		Store:     kv.NewMemoryStore(nil),
		Logger:    discardLogger(),
	})
	share := app.NewShareService(f.quotes, renderer, discardLogger())

	h := NewQuoteHandler(quotes, share)
	f.engine = newEngine(uid, func(rg *gin.RouterGroup) {
		h.RegisterPublicRoutes(rg)
		h.RegisterRoutes(rg)
	})

	return f
}

func TestToQuoteResponses(t *testing.T) {
	t.Run("nil encodes as empty list", func(t *testing.T) {
		got := toQuoteResponses(nil)

		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("copies fields", func(t *testing.T) {
		got := toQuoteResponses([]domain.Quote{seneca})

		require.Len(t, got, 1)
		assert.Equal(t, QuoteResponse{
			ID:        "q1",
			Content:   seneca.Content,
			Author:    "Seneca",
			Category:  "Wisdom",
			CreatedAt: seneca.CreatedAt,
		}, got[0])
	})
}

func TestQuoteHandler_Feed(t *testing.T) {
	f := newQuoteFixture(t, testUser)
	f.quotes.EXPECT().Sample(mock.Anything, app.DefaultFeedSize).Return([]domain.Quote{seneca}, nil)
	f.favorites.EXPECT().QuoteIDs(mock.Anything, testUser).Return(nil, nil)

	w := doRequest(t, f.engine, http.MethodGet, "/api/v1/quotes/feed", nil)

	require.Equal(t, http.StatusOK, w.Code)

	got := decode[FeedResponse](t, w)
	require.Len(t, got.Quotes, 1)
	assert.Equal(t, "q1", got.Quotes[0].ID)
	assert.NotNil(t, got.FavoriteIDs)
	assert.Empty(t, got.FavoriteIDs)
}

func TestQuoteHandler_FeedRequiresUser(t *testing.T) {
	f := newQuoteFixture(t, "")

	w := doRequest(t, f.engine, http.MethodGet, "/api/v1/quotes/feed", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeUnauthorized, errorCode(t, w))
}

func TestQuoteHandler_Search(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setup          func(f *quoteFixture)
		wantIDs        []string
		wantSuggestion string
	}{
		{
			name:  "matches",
			query: "seneca",
			setup: func(f *quoteFixture) {
				f.quotes.EXPECT().Search(mock.Anything, "seneca", app.DefaultSearchLimit).
					Return([]domain.Quote{seneca}, nil)
			},
			wantIDs: []string{"q1"},
		},
		{
			name:  "no match suggests a category",
			query: "motivaton",
			setup: func(f *quoteFixture) {
				f.quotes.EXPECT().Search(mock.Anything, "motivaton", app.DefaultSearchLimit).Return(nil, nil)
			},
			wantIDs:        []string{},
			wantSuggestion: "Motivation",
		},
		{
			name:  "empty query lists recent",
			query: "",
			setup: func(f *quoteFixture) {
				f.quotes.EXPECT().Recent(mock.Anything, app.DefaultSearchLimit).Return([]domain.Quote{seneca}, nil)
			},
			wantIDs: []string{"q1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuoteFixture(t, testUser)
			tt.setup(f)

			w := doRequest(t, f.engine, http.MethodGet, "/api/v1/quotes/search?q="+tt.query, nil)

			require.Equal(t, http.StatusOK, w.Code)

			got := decode[SearchResponse](t, w)
			ids := make([]string, 0, len(got.Quotes))
			for _, q := range got.Quotes {
				ids = append(ids, q.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantSuggestion, got.Suggestion)
		})
	}
}

func TestQuoteHandler_History(t *testing.T) {
	f := newQuoteFixture(t, testUser)
	f.quotes.EXPECT().Search(mock.Anything, mock.Anything, app.DefaultSearchLimit).Return(nil, nil)

	for _, q := range []string{"love", "seneca", "love"} {
		w := doRequest(t, f.engine, http.MethodGet, "/api/v1/quotes/search?q="+q, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(t, f.engine, http.MethodGet, "/api/v1/quotes/search/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"love", "seneca"}, decode[HistoryResponse](t, w).Queries)

	w = doRequest(t, f.engine, http.MethodDelete, "/api/v1/quotes/search/history", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, f.engine, http.MethodGet, "/api/v1/quotes/search/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[HistoryResponse](t, w).Queries)
}

func TestQuoteHandler_GetQuoteByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newQuoteFixture(t, "")
		f.quotes.EXPECT().Get(mock.Anything, "q1").Return(&seneca, nil)

		w := doRequest(t, f.engine, http.MethodGet, "/api/v1/quotes/q1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Seneca", decode[QuoteResponse](t, w).Author)
	})

	t.Run("not found", func(t *testing.T) {
		f := newQuoteFixture(t, "")
		f.quotes.EXPECT().Get(mock.Anything, "missing").Return(nil, domain.NewNotFoundError("quote", "missing"))

		w := doRequest(t, f.engine, http.MethodGet, "/api/v1/quotes/missing", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrorCodeNotFound, errorCode(t, w))
	})
}

func TestQuoteHandler_ListByCategory(t *testing.T) {
	t.Run("normalizes the category", func(t *testing.T) {
		f := newQuoteFixture(t, "")
		f.quotes.EXPECT().ByCategory(mock.Anything, "Wisdom", app.DefaultFeedSize).Return([]domain.Quote{seneca}, nil)

		w := doRequest(t, f.engine, http.MethodGet, "/api/v1/quotes?category=wisdom", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]QuoteResponse](t, w), 1)
	})

	t.Run("missing category", func(t *testing.T) {
		f := newQuoteFixture(t, "")

		w := doRequest(t, f.engine, http.MethodGet, "/api/v1/quotes", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrorCodeValidation, errorCode(t, w))
	})
}

func TestQuoteHandler_ShareText(t *testing.T) {
	f := newQuoteFixture(t, "")
	f.quotes.EXPECT().Get(mock.Anything, "q1").Return(&seneca, nil)

	w := doRequest(t, f.engine, http.MethodGet, "/api/v1/quotes/q1/share/text", nil)

	require.Equal(t, http.StatusOK, w.Code)

	text := decode[ShareTextResponse](t, w).Text
	assert.Contains(t, text, seneca.Content)
	assert.Contains(t, text, "Seneca")
}

func TestQuoteHandler_ShareImage(t *testing.T) {
	t.Run("renders png", func(t *testing.T) {
		f := newQuoteFixture(t, "")
		f.quotes.EXPECT().Get(mock.Anything, "q1").Return(&seneca, nil)

		w := doRequest(t, f.engine, http.MethodGet, "/api/v1/quotes/q1/share?template=neon", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "quote-q1.png")

		img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, 240, img.Bounds().Dx())
	})

	t.Run("unknown template", func(t *testing.T) {
		f := newQuoteFixture(t, "")

		w := doRequest(t, f.engine, http.MethodGet, "/api/v1/quotes/q1/share?template=glitter", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrorCodeValidation, errorCode(t, w))
	})
}

func TestQuoteHandler_Templates(t *testing.T) {
	f := newQuoteFixture(t, "")

	w := doRequest(t, f.engine, http.MethodGet, "/api/v1/templates", nil)

	require.Equal(t, http.StatusOK, w.Code)

	got := decode[[]app.TemplateInfo](t, w)
	require.Len(t, got, len(render.Names()))
	assert.Equal(t, render.Names()[0], got[0].Name)
}
