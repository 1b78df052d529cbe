package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotevault/internal/app"
)

// AuthHandler handles account and session endpoints.
type AuthHandler struct {
	auth *app.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *app.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignUpRequest creates an account.
type SignUpRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName" validate:"max=100"`
}

// SignInRequest opens a session.
type SignInRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest replaces the signed-in user's password.
type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required"`
	Confirm  string `json:"confirm"  validate:"required"`
}

// SignUp handles POST /api/v1/auth/signup.
//
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.auth.SignUp(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSessionResponse(session))
}

// SignIn handles POST /api/v1/auth/signin.
//
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSessionResponse(session))
}

// SignOut handles POST /api/v1/auth/signout. The presented token is revoked.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.auth.SignOut(c.Request.Context(), middleware.Token(c)); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ChangePassword handles PUT /api/v1/auth/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), uid, req.Password, req.Confirm); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterPublicRoutes registers the unauthenticated auth routes.
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/signup", h.SignUp)
	auth.POST("/signin", h.SignIn)
}

// RegisterRoutes registers the auth routes that need a session.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/signout", h.SignOut)
	auth.PUT("/password", h.ChangePassword)
}
