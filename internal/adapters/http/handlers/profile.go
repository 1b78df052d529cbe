package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/app"
)

// ProfileHandler handles the signed-in user's public profile.
type ProfileHandler struct {
	profiles *app.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// UpdateProfileRequest edits the display name and optionally the avatar.
// Avatar is a base64 JPEG, with or without a data URL prefix.
type UpdateProfileRequest struct {
	FullName string `json:"fullName" validate:"required,notempty,max=100"`
	Avatar   string `json:"avatar"`
}

// OverviewResponse is the profile tab in one call.
type OverviewResponse struct {
	Profile     ProfileResponse      `json:"profile"`
	Collections []CollectionResponse `json:"collections"`
	Favorites   []QuoteResponse      `json:"favorites"`
}

// Get handles GET /api/v1/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	p, err := h.profiles.Profile(c.Request.Context(), uid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(p))
}

// Overview handles GET /api/v1/profile/overview.
func (h *ProfileHandler) Overview(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	o, err := h.profiles.Overview(c.Request.Context(), uid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, OverviewResponse{
		Profile:     toProfileResponse(o.Profile),
		Collections: toCollectionResponses(o.Collections),
		Favorites:   toQuoteResponses(o.Favorites),
	})
}

// Update handles PUT /api/v1/profile.
//
// @Summary Update the profile
// @Description Saves the display name and, when sent, uploads a new JPEG avatar
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	in := app.UpdateProfileInput{UserID: uid, FullName: req.FullName}

	if req.Avatar != "" {
		data, err := decodeAvatar(req.Avatar)
		if err != nil {
			dto.RespondWithValidationErrors(c, map[string]string{"avatar": "must be base64 encoded"})
			return
		}

		in.Avatar = data
	}

	p, err := h.profiles.UpdateProfile(c.Request.Context(), in)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(p))
}

// decodeAvatar accepts plain base64 or a data:image/jpeg;base64, URL.
func decodeAvatar(s string) ([]byte, error) {
	if i := strings.Index(s, ";base64,"); i >= 0 && strings.HasPrefix(s, "data:") {
		s = s[i+len(";base64,"):]
	}

	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}

// RegisterRoutes registers profile routes on the given router group.
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	profile.GET("", h.Get)
	profile.PUT("", h.Update)
	profile.GET("/overview", h.Overview)
}
