package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopdash/backend/internal/infrastructure/storage"
)

// ExportObjectReader reads exports held in process memory
type ExportObjectReader interface {
	Object(key string) (storage.MemoryObject, bool)
}

// ExportDownloadHandler serves export links when object storage is disabled
type ExportDownloadHandler struct {
	BaseHandler
	objects ExportObjectReader
}

// NewExportDownloadHandler creates a new ExportDownloadHandler
func NewExportDownloadHandler(objects ExportObjectReader) *ExportDownloadHandler {
	return &ExportDownloadHandler{objects: objects}
}

// Download godoc
// @ID           downloadExport
// @Summary      Download an export
// @Description  Serves an export workbook until its link expires
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        key path string true "Object key"
// @Success      200 {file} binary
// @Failure      404 {object} dto.Response
// @Router       /exports/{key} [get]
func (h *ExportDownloadHandler) Download(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	obj, ok := h.objects.Object(key)
	if key == "" || !ok {
		h.NotFound(c, "Export not found or expired")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+key[strings.LastIndex(key, "/")+1:]+`"`)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, obj.ContentType, obj.Body)
}
