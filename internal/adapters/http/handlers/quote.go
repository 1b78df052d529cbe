package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/app"
)

// QuoteHandler handles browsing, search and sharing endpoints.
type QuoteHandler struct {
	quotes *app.QuoteService
	share  *app.ShareService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(quotes *app.QuoteService, share *app.ShareService) *QuoteHandler {
	return &QuoteHandler{
		quotes: quotes,
		share:  share,
	}
}

// FeedResponse is the home feed.
type FeedResponse struct {
	Quotes      []QuoteResponse `json:"quotes"`
	FavoriteIDs []string        `json:"favoriteIds"`
}

// SearchResponse carries matches and an optional category suggestion.
type SearchResponse struct {
	Query      string          `json:"query"`
	Quotes     []QuoteResponse `json:"quotes"`
	Suggestion string          `json:"suggestion,omitempty"`
}

// HistoryResponse lists recent searches, newest first.
type HistoryResponse struct {
	Queries []string `json:"queries"`
}

// ShareTextResponse is the plain-text share payload.
type ShareTextResponse struct {
	Text string `json:"text"`
}

// Feed handles GET /api/v1/quotes/feed.
//
// @Summary Home feed
// @Description Returns a shuffled sample of quotes and the caller's favorite IDs
// @Tags quotes
// @Produce json
// @Success 200 {object} FeedResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/quotes/feed [get]
func (h *QuoteHandler) Feed(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	feed, err := h.quotes.Feed(c.Request.Context(), uid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, FeedResponse{
		Quotes:      toQuoteResponses(feed.Quotes),
		FavoriteIDs: feed.FavoriteIDs,
	})
}

// Search handles GET /api/v1/quotes/search?q=.
//
// @Summary Search quotes
// @Description Matches content, author and category. An empty query returns recent quotes.
// @Tags quotes
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} SearchResponse
// @Router /api/v1/quotes/search [get]
func (h *QuoteHandler) Search(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	res, err := h.quotes.Search(c.Request.Context(), uid, c.Query("q"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Query:      res.Query,
		Quotes:     toQuoteResponses(res.Quotes),
		Suggestion: res.Suggestion,
	})
}

// History handles GET /api/v1/quotes/search/history.
func (h *QuoteHandler) History(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	queries, err := h.quotes.History(c.Request.Context(), uid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{Queries: queries})
}

// ClearHistory handles DELETE /api/v1/quotes/search/history.
func (h *QuoteHandler) ClearHistory(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.quotes.ClearHistory(c.Request.Context(), uid); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByCategory handles GET /api/v1/quotes?category=.
func (h *QuoteHandler) ListByCategory(c *gin.Context) {
	quotes, err := h.quotes.ByCategory(c.Request.Context(), c.Query("category"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponses(quotes))
}

// GetQuoteByID handles GET /api/v1/quotes/:id.
//
// @Summary Get a quote by ID
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}

	quote, err := h.quotes.Quote(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// ShareImage handles GET /api/v1/quotes/:id/share?template=.
// The response is a PNG rendered with the chosen template.
func (h *QuoteHandler) ShareImage(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}

	png, err := h.share.Image(c.Request.Context(), id, c.Query("template"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="quote-`+id+`.png"`)
	c.Data(http.StatusOK, "image/png", png)
}

// ShareText handles GET /api/v1/quotes/:id/share/text.
func (h *QuoteHandler) ShareText(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}

	text, err := h.share.Text(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ShareTextResponse{Text: text})
}

// Templates handles GET /api/v1/templates.
func (h *QuoteHandler) Templates(c *gin.Context) {
	c.JSON(http.StatusOK, h.share.Templates())
}

// RegisterPublicRoutes registers the quote routes open to everyone.
func (h *QuoteHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListByCategory)
	quotes.GET("/:id", h.GetQuoteByID)
	quotes.GET("/:id/share", h.ShareImage)
	quotes.GET("/:id/share/text", h.ShareText)

	rg.GET("/templates", h.Templates)
}

// RegisterRoutes registers the quote routes that need a session.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("/feed", h.Feed)
	quotes.GET("/search", h.Search)
	quotes.GET("/search/history", h.History)
	quotes.DELETE("/search/history", h.ClearHistory)
}
