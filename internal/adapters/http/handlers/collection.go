package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// CollectionHandler handles the signed-in user's collections.
type CollectionHandler struct {
	collections *app.CollectionService
}

// NewCollectionHandler creates a new collection handler.
func NewCollectionHandler(collections *app.CollectionService) *CollectionHandler {
	return &CollectionHandler{collections: collections}
}

// CreateCollectionRequest names a new collection.
type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required,notempty"`
}

// AddQuoteRequest adds a quote to a collection.
type AddQuoteRequest struct {
	QuoteID string `json:"quoteId" validate:"required,notempty"`
}

// CreateWithQuoteRequest creates a collection holding one quote.
type CreateWithQuoteRequest struct {
	Name    string `json:"name"    validate:"required,notempty"`
	QuoteID string `json:"quoteId" validate:"required,notempty"`
}

// List handles GET /api/v1/collections?order=name|recent.
func (h *CollectionHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	cols, err := h.collections.List(c.Request.Context(), uid, domain.ParseCollectionOrder(c.Query("order")))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCollectionResponses(cols))
}

// Create handles POST /api/v1/collections.
func (h *CollectionHandler) Create(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req CreateCollectionRequest
	if !bindJSON(c, &req) {
		return
	}

	col, err := h.collections.Create(c.Request.Context(), uid, req.Name)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCollectionResponse(col))
}

// CreateWithQuote handles POST /api/v1/collections/with-quote. Either both
// the collection and its first quote are saved or neither is.
//
// @Summary Create a collection holding a quote
// @Tags collections
// @Accept json
// @Produce json
// @Success 201 {object} CollectionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/collections/with-quote [post]
func (h *CollectionHandler) CreateWithQuote(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req CreateWithQuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	col, err := h.collections.CreateAndAdd(c.Request.Context(), uid, req.Name, req.QuoteID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCollectionResponse(col))
}

// Delete handles DELETE /api/v1/collections/:id.
func (h *CollectionHandler) Delete(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	id, ok := pathParam(c, "id")
	if !ok {
		return
	}

	if err := h.collections.Delete(c.Request.Context(), uid, id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Quotes handles GET /api/v1/collections/:id/quotes.
func (h *CollectionHandler) Quotes(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	id, ok := pathParam(c, "id")
	if !ok {
		return
	}

	quotes, err := h.collections.Quotes(c.Request.Context(), uid, id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponses(quotes))
}

// AddQuote handles POST /api/v1/collections/:id/quotes.
func (h *CollectionHandler) AddQuote(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	id, ok := pathParam(c, "id")
	if !ok {
		return
	}

	var req AddQuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.collections.AddQuote(c.Request.Context(), uid, id, req.QuoteID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveQuote handles DELETE /api/v1/collections/:id/quotes/:quoteId.
func (h *CollectionHandler) RemoveQuote(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	id, ok := pathParam(c, "id")
	if !ok {
		return
	}

	quoteID, ok := pathParam(c, "quoteId")
	if !ok {
		return
	}

	if err := h.collections.RemoveQuote(c.Request.Context(), uid, id, quoteID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers collection routes on the given router group.
func (h *CollectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	collections := rg.Group("/collections")
	collections.GET("", h.List)
	collections.POST("", h.Create)
	collections.POST("/with-quote", h.CreateWithQuote)
	collections.DELETE("/:id", h.Delete)
	collections.GET("/:id/quotes", h.Quotes)
	collections.POST("/:id/quotes", h.AddQuote)
	collections.DELETE("/:id/quotes/:quoteId", h.RemoveQuote)
}
