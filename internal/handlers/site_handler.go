package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/ssuzuki/toukidocs/internal/errors"
	"github.com/ssuzuki/toukidocs/internal/middleware"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/services"
)

// SiteHandler handles case (site) HTTP requests.
type SiteHandler struct {
	service services.SiteService
}

// NewSiteHandler creates a new SiteHandler instance.
func NewSiteHandler(service services.SiteService) *SiteHandler {
	return &SiteHandler{service: service}
}

// CreateSiteRequest is the body of POST /api/v1/sites.
type CreateSiteRequest struct {
	Name string `json:"name" binding:"max=200"`
}

// SiteListResponse is the response of GET /api/v1/sites.
type SiteListResponse struct {
	Sites        []models.Site `json:"sites"`
	ActiveSiteID string        `json:"activeSiteId"`
	Count        int           `json:"count"`
}

// List handles GET /api/v1/sites.
func (h *SiteHandler) List(c *gin.Context) {
	sites, err := h.service.ListSites(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list sites", err)
		return
	}
	activeID, err := h.service.ActiveSiteID(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to load active site", err)
		return
	}
	c.JSON(http.StatusOK, SiteListResponse{
		Sites:        sites,
		ActiveSiteID: activeID,
		Count:        len(sites),
	})
}

// Get handles GET /api/v1/sites/:id.
func (h *SiteHandler) Get(c *gin.Context) {
	site, err := h.service.GetSite(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSiteNotFound) {
			apierrors.NotFound(c, "案件が見つかりません")
			return
		}
		apierrors.InternalServerError(c, "Failed to load site", err)
		return
	}
	c.JSON(http.StatusOK, site)
}

// Create handles POST /api/v1/sites.
func (h *SiteHandler) Create(c *gin.Context) {
	var req CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	site, err := h.service.CreateSite(c.Request.Context(), req.Name)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to create site", err)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Site created via API", map[string]interface{}{
			"site_id": site.ID,
		})
	}
	c.JSON(http.StatusCreated, site)
}

// Update handles PUT /api/v1/sites/:id. The full case document is
// submitted; the sanitized, reconciled result is returned.
func (h *SiteHandler) Update(c *gin.Context) {
	var site models.Site
	if err := c.ShouldBindJSON(&site); err != nil {
		apierrors.BadRequest(c, "Invalid site document", nil)
		return
	}
	site.ID = c.Param("id")

	stored, err := h.service.UpdateSite(c.Request.Context(), site)
	if err != nil {
		if errors.Is(err, services.ErrSiteNotFound) {
			apierrors.NotFound(c, "案件が見つかりません")
			return
		}
		apierrors.InternalServerError(c, "Failed to update site", err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// Delete handles DELETE /api/v1/sites/:id.
func (h *SiteHandler) Delete(c *gin.Context) {
	err := h.service.DeleteSite(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSiteNotFound) {
			apierrors.NotFound(c, "案件が見つかりません")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete site", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Activate handles PUT /api/v1/sites/:id/activate.
func (h *SiteHandler) Activate(c *gin.Context) {
	err := h.service.SetActiveSiteID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSiteNotFound) {
			apierrors.NotFound(c, "案件が見つかりません")
			return
		}
		apierrors.InternalServerError(c, "Failed to activate site", err)
		return
	}
	c.Status(http.StatusNoContent)
}
