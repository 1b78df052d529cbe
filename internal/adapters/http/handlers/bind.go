package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/middleware"
)

// bindJSON binds and validates the request body into v. On failure it writes
// the error response and returns false.
func bindJSON(c *gin.Context, v any) bool {
	err := dto.BindAndValidate(c, v)
	if err == nil {
		return true
	}

	if errors.Is(err, dto.ErrBinding) {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "invalid request body")
		return false
	}

	dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))

	return false
}

// pathParam returns a trimmed path parameter, writing a 400 when it is blank.
func pathParam(c *gin.Context, name string) (string, bool) {
	v := strings.TrimSpace(c.Param(name))
	if v == "" {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, name+" is required")
		return "", false
	}

	return v, true
}

// userID returns the authenticated user. Routes using it sit behind
// RequireAuth, so a missing user is a wiring bug and answers 401.
func userID(c *gin.Context) (string, bool) {
	id := middleware.UserID(c)
	if id == "" {
		dto.RespondWithErrorCode(c, dto.ErrorCodeUnauthorized, "authentication required")
		return "", false
	}

	return id, true
}
