package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ravelt/retailpos-backend/internal/app/service"
	apperrors "github.com/ravelt/retailpos-backend/internal/errors"
	"github.com/ravelt/retailpos-backend/internal/middleware"
)

type BranchController struct {
	branchService service.BranchService
}

func NewBranchController(branchService service.BranchService) *BranchController {
	return &BranchController{branchService: branchService}
}

type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type UpdateBranchRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// CreateBranch creates a branch owned by the caller
// POST /api/v1/branches
func (ctrl *BranchController) CreateBranch(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid branch creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid branch data")
		return
	}

	branch, err := ctrl.branchService.CreateBranch(req.Name, req.Address, req.Phone, ownerID)
	if err != nil {
		log.Error("Failed to create branch", err, map[string]interface{}{
			"name":     req.Name,
			"owner_id": ownerID,
		})
		apperrors.RespondFromDatabaseError(c, err, "branch")
		return
	}

	log.Info("Branch created successfully", map[string]interface{}{
		"branch_id": branch.ID,
		"owner_id":  ownerID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Branch created successfully",
		"branch":  branch,
	})
}

// GetBranches lists the caller's branches
// GET /api/v1/branches
func (ctrl *BranchController) GetBranches(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	branches, err := ctrl.branchService.GetOwnedBranches(ownerID)
	if err != nil {
		log.Error("Failed to list branches", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"branches": branches,
		"count":    len(branches),
	})
}

// GetBranch returns a single branch
// GET /api/v1/branches/:id
func (ctrl *BranchController) GetBranch(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid branch ID")
		return
	}

	branch, err := ctrl.branchService.GetBranchByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrBranchNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Branch not found")
			return
		}
		log.Error("Failed to fetch branch", err, map[string]interface{}{
			"branch_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"branch": branch,
	})
}

// UpdateBranch updates branch fields
// PUT /api/v1/branches/:id
func (ctrl *BranchController) UpdateBranch(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid branch ID")
		return
	}

	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid branch update request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid branch data")
		return
	}

	branch, err := ctrl.branchService.UpdateBranch(uint(id), service.BranchUpdate{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrBranchNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Branch not found")
			return
		}
		log.Error("Failed to update branch", err, map[string]interface{}{
			"branch_id": id,
		})
		apperrors.RespondFromDatabaseError(c, err, "branch")
		return
	}

	log.Info("Branch updated successfully", map[string]interface{}{
		"branch_id": branch.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Branch updated successfully",
		"branch":  branch,
	})
}

// DeleteBranch removes a branch and everything under it
// DELETE /api/v1/branches/:id
func (ctrl *BranchController) DeleteBranch(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid branch ID")
		return
	}

	if err := ctrl.branchService.DeleteBranch(uint(id)); err != nil {
		if errors.Is(err, service.ErrBranchNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Branch not found")
			return
		}
		log.Error("Failed to delete branch", err, map[string]interface{}{
			"branch_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Branch deleted successfully", map[string]interface{}{
		"branch_id": id,
	})

	c.Status(http.StatusNoContent)
}
