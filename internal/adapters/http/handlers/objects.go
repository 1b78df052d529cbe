package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
)

// ObjectFiles resolves stored objects to local files.
type ObjectFiles interface {
	Path(bucket, objectPath string) (string, error)
}

// ObjectHandler serves public objects such as avatars. The URLs it answers
// are the ones the storage adapter hands out.
type ObjectHandler struct {
	files ObjectFiles
}

// NewObjectHandler creates a new object handler.
func NewObjectHandler(files ObjectFiles) *ObjectHandler {
	return &ObjectHandler{files: files}
}

// Serve handles GET /api/v1/objects/:bucket/*path.
func (h *ObjectHandler) Serve(c *gin.Context) {
	bucket := c.Param("bucket")
	objectPath := strings.TrimPrefix(c.Param("path"), "/")

	file, err := h.files.Path(bucket, objectPath)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.File(file)
}

// RegisterRoutes registers object routes on the given router group.
func (h *ObjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/objects/:bucket/*path", h.Serve)
}
