package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/dailyquote"
	"github.com/jsamuelsen/quotevault/internal/navigation"
	"github.com/jsamuelsen/quotevault/internal/widget"
)

// DailyHandler serves the quote of the day and the surfaces built on it:
// the home-screen widget and deep links.
type DailyHandler struct {
	daily   *dailyquote.Service
	widgets *widget.Service
}

// NewDailyHandler creates a new daily handler.
func NewDailyHandler(daily *dailyquote.Service, widgets *widget.Service) *DailyHandler {
	return &DailyHandler{daily: daily, widgets: widgets}
}

// LinkResponse is where a deep link lands.
type LinkResponse struct {
	URL string `json:"url"`
	Tab string `json:"tab"`
}

// Today handles GET /api/v1/daily.
//
// @Summary Quote of the day
// @Description The same quote is returned all day; a new one is picked after midnight
// @Tags daily
// @Produce json
// @Success 200 {object} QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/daily [get]
func (h *DailyHandler) Today(c *gin.Context) {
	q, err := h.daily.Today(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(q))
}

// Widget handles GET /api/v1/widget.
func (h *DailyHandler) Widget(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	card, err := h.widgets.Card(c.Request.Context(), uid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

// ResolveLink handles GET /api/v1/links/resolve?url=.
func (h *DailyHandler) ResolveLink(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("url"))
	if raw == "" {
		dto.RespondWithValidationErrors(c, map[string]string{"url": "is required"})
		return
	}

	target, err := navigation.ParseURL(raw)
	if errors.Is(err, navigation.ErrUnknownLink) {
		dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, err.Error())
		return
	}

	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, LinkResponse{URL: raw, Tab: target.Tab.String()})
}

// RegisterPublicRoutes registers the routes open to everyone.
func (h *DailyHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/daily", h.Today)
	rg.GET("/links/resolve", h.ResolveLink)
}

// RegisterRoutes registers the routes that need a session.
func (h *DailyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/widget", h.Widget)
}
