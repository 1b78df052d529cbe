package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/app"
)

// FavoriteHandler handles the signed-in user's favorites.
type FavoriteHandler struct {
	favorites *app.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(favorites *app.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// FavoriteStateResponse is the state of one favorite after a write.
type FavoriteStateResponse struct {
	QuoteID   string `json:"quoteId"`
	Favorited bool   `json:"favorited"`
}

// FavoriteIDsResponse lists every favorited quote ID.
type FavoriteIDsResponse struct {
	IDs []string `json:"ids"`
}

// List handles GET /api/v1/favorites.
func (h *FavoriteHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	quotes, err := h.favorites.List(c.Request.Context(), uid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponses(quotes))
}

// IDs handles GET /api/v1/favorites/ids.
func (h *FavoriteHandler) IDs(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	ids, err := h.favorites.IDs(c.Request.Context(), uid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, FavoriteIDsResponse{IDs: ids})
}

// Toggle handles POST /api/v1/favorites/:quoteId/toggle.
//
// @Summary Toggle a favorite
// @Description Flips the favorite and returns the state the server now holds
// @Tags favorites
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Success 200 {object} FavoriteStateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/favorites/{quoteId}/toggle [post]
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	quoteID, ok := pathParam(c, "quoteId")
	if !ok {
		return
	}

	on, err := h.favorites.Toggle(c.Request.Context(), uid, quoteID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, FavoriteStateResponse{QuoteID: quoteID, Favorited: on})
}

// Add handles PUT /api/v1/favorites/:quoteId.
func (h *FavoriteHandler) Add(c *gin.Context) {
	h.set(c, true)
}

// Remove handles DELETE /api/v1/favorites/:quoteId.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	h.set(c, false)
}

func (h *FavoriteHandler) set(c *gin.Context, on bool) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	quoteID, ok := pathParam(c, "quoteId")
	if !ok {
		return
	}

	if err := h.favorites.Set(c.Request.Context(), uid, quoteID, on); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, FavoriteStateResponse{QuoteID: quoteID, Favorited: on})
}

// RegisterRoutes registers favorite routes on the given router group.
func (h *FavoriteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	favorites.GET("", h.List)
	favorites.GET("/ids", h.IDs)
	favorites.POST("/:quoteId/toggle", h.Toggle)
	favorites.PUT("/:quoteId", h.Add)
	favorites.DELETE("/:quoteId", h.Remove)
}
