package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/ssuzuki/toukidocs/internal/errors"
	"github.com/ssuzuki/toukidocs/internal/middleware"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/services"
)

// ExportHandler handles backup export and restore.
type ExportHandler struct {
	service services.ExportService
}

// NewExportHandler creates a new ExportHandler instance.
func NewExportHandler(service services.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export handles GET /api/v1/export.
func (h *ExportHandler) Export(c *gin.Context) {
	env, err := h.service.Export(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to export state", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="toukidocs-export.json"`)
	c.JSON(http.StatusOK, env)
}

// Import handles POST /api/v1/import. The whole state is replaced.
func (h *ExportHandler) Import(c *gin.Context) {
	var env models.Export
	if err := c.ShouldBindJSON(&env); err != nil {
		apierrors.BadRequest(c, "Invalid export envelope", nil)
		return
	}

	if err := h.service.Import(c.Request.Context(), env); err != nil {
		if errors.Is(err, services.ErrBadEnvelope) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to import state", err)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("State imported via API", map[string]interface{}{
			"sites": len(env.Sites),
		})
	}
	c.Status(http.StatusNoContent)
}
