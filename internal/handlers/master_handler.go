package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/ssuzuki/toukidocs/internal/errors"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/services"
)

// MasterHandler handles the contractor and scrivener master records.
type MasterHandler struct {
	service services.MasterService
}

// NewMasterHandler creates a new MasterHandler instance.
func NewMasterHandler(service services.MasterService) *MasterHandler {
	return &MasterHandler{service: service}
}

// ContractorRequest is the body of contractor save requests.
type ContractorRequest struct {
	ID             string `json:"id"`
	Address        string `json:"address" binding:"max=400"`
	TradeName      string `json:"tradeName" binding:"required,max=200"`
	Representative string `json:"representative" binding:"max=200"`
}

// ScrivenerRequest is the body of scrivener save requests.
type ScrivenerRequest struct {
	ID      string `json:"id"`
	Address string `json:"address" binding:"max=400"`
	Name    string `json:"name" binding:"required,max=200"`
}

// ListContractors handles GET /api/v1/contractors.
func (h *MasterHandler) ListContractors(c *gin.Context) {
	list, err := h.service.ListContractors(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list contractors", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contractors": list, "count": len(list)})
}

// SaveContractor handles POST /api/v1/contractors.
func (h *MasterHandler) SaveContractor(c *gin.Context) {
	var req ContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	stored, err := h.service.SaveContractor(c.Request.Context(), models.Contractor{
		ID:             req.ID,
		Address:        req.Address,
		TradeName:      req.TradeName,
		Representative: req.Representative,
	})
	if err != nil {
		apierrors.InternalServerError(c, "Failed to store contractor", err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// DeleteContractor handles DELETE /api/v1/contractors/:id.
func (h *MasterHandler) DeleteContractor(c *gin.Context) {
	if err := h.service.DeleteContractor(c.Request.Context(), c.Param("id")); err != nil {
		apierrors.InternalServerError(c, "Failed to delete contractor", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListScriveners handles GET /api/v1/scriveners.
func (h *MasterHandler) ListScriveners(c *gin.Context) {
	list, err := h.service.ListScriveners(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list scriveners", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scriveners": list, "count": len(list)})
}

// SaveScrivener handles POST /api/v1/scriveners.
func (h *MasterHandler) SaveScrivener(c *gin.Context) {
	var req ScrivenerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	stored, err := h.service.SaveScrivener(c.Request.Context(), models.Scrivener{
		ID:      req.ID,
		Address: req.Address,
		Name:    req.Name,
	})
	if err != nil {
		apierrors.InternalServerError(c, "Failed to store scrivener", err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// DeleteScrivener handles DELETE /api/v1/scriveners/:id.
func (h *MasterHandler) DeleteScrivener(c *gin.Context) {
	if err := h.service.DeleteScrivener(c.Request.Context(), c.Param("id")); err != nil {
		apierrors.InternalServerError(c, "Failed to delete scrivener", err)
		return
	}
	c.Status(http.StatusNoContent)
}
