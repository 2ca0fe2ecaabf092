package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ssuzuki/toukidocs/internal/doctmpl"
	apierrors "github.com/ssuzuki/toukidocs/internal/errors"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/services"
)

// DocumentHandler handles document plan, pick and render requests.
type DocumentHandler struct {
	service services.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler instance.
func NewDocumentHandler(service services.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Plan handles GET /api/v1/sites/:id/plan.
func (h *DocumentHandler) Plan(c *gin.Context) {
	plan, err := h.service.Plan(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSiteNotFound) {
			apierrors.NotFound(c, "案件が見つかりません")
			return
		}
		apierrors.InternalServerError(c, "Failed to resolve document plan", err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// UpdatePick handles PUT /api/v1/sites/:id/picks/:key.
func (h *DocumentHandler) UpdatePick(c *gin.Context) {
	var pick models.Pick
	if err := c.ShouldBindJSON(&pick); err != nil {
		apierrors.BadRequest(c, "Invalid pick document", nil)
		return
	}

	site, err := h.service.UpdatePick(c.Request.Context(), c.Param("id"), c.Param("key"), pick)
	if err != nil {
		if errors.Is(err, services.ErrSiteNotFound) {
			apierrors.NotFound(c, "案件が見つかりません")
			return
		}
		if errors.Is(err, services.ErrEmptySelection) {
			apierrors.BadRequest(c, "選択された対象が存在しません", nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to store pick", err)
		return
	}
	c.JSON(http.StatusOK, site)
}

// RenderRequest carries the render mode flag.
type RenderRequest struct {
	Print bool `form:"print"`
}

// Render handles GET /api/v1/sites/:id/documents/:key.
func (h *DocumentHandler) Render(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	doc, err := h.service.Render(c.Request.Context(), c.Param("id"), c.Param("key"), req.Print)
	if err != nil {
		if errors.Is(err, services.ErrSiteNotFound) {
			apierrors.NotFound(c, "案件が見つかりません")
			return
		}
		apierrors.InternalServerError(c, "Failed to render document", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// BatchRenderResponse is the response of the batch render endpoint.
type BatchRenderResponse struct {
	Documents []doctmpl.Document `json:"documents"`
	Count     int                `json:"count"`
}

// RenderAll handles GET /api/v1/sites/:id/render.
func (h *DocumentHandler) RenderAll(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	docs, err := h.service.RenderAll(c.Request.Context(), c.Param("id"), req.Print)
	if err != nil {
		if errors.Is(err, services.ErrSiteNotFound) {
			apierrors.NotFound(c, "案件が見つかりません")
			return
		}
		apierrors.InternalServerError(c, "Failed to render documents", err)
		return
	}
	c.JSON(http.StatusOK, BatchRenderResponse{
		Documents: docs,
		Count:     len(docs),
	})
}
