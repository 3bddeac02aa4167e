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

type StoreController struct {
	storeService service.StoreService
}

func NewStoreController(storeService service.StoreService) *StoreController {
	return &StoreController{storeService: storeService}
}

type CreateStoreRequest struct {
	Name          string  `json:"name" binding:"required"`
	Code          string  `json:"code" binding:"required"`
	Address       string  `json:"address"`
	Phone         string  `json:"phone"`
	GovernmentTax float64 `json:"government_tax"`
	ServiceCharge float64 `json:"service_charge"`
	OutletType    string  `json:"outlet_type"`
	WifiSSID      string  `json:"wifi_ssid"`
}

type UpdateStoreRequest struct {
	Name          *string  `json:"name"`
	Code          *string  `json:"code"`
	Address       *string  `json:"address"`
	Phone         *string  `json:"phone"`
	GovernmentTax *float64 `json:"government_tax"`
	ServiceCharge *float64 `json:"service_charge"`
	OutletType    *string  `json:"outlet_type"`
	WifiSSID      *string  `json:"wifi_ssid"`
}

type AddStaffRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type RemoveStaffsRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
}

// CreateStore creates a store under a branch
// POST /api/v1/stores/branch/:branchId
func (ctrl *StoreController) CreateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	branchID, err := strconv.ParseUint(c.Param("branchId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid branch ID")
		return
	}

	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid store creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid store data")
		return
	}

	store, err := ctrl.storeService.CreateStore(service.StoreInput{
		Name:          req.Name,
		Code:          req.Code,
		Address:       req.Address,
		Phone:         req.Phone,
		GovernmentTax: req.GovernmentTax,
		ServiceCharge: req.ServiceCharge,
		OutletType:    req.OutletType,
		WifiSSID:      req.WifiSSID,
	}, uint(branchID), ownerID)
	if err != nil {
		if errors.Is(err, service.ErrBranchNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Branch not found")
			return
		}
		log.Error("Failed to create store", err, map[string]interface{}{
			"name":      req.Name,
			"branch_id": branchID,
		})
		apperrors.RespondFromDatabaseError(c, err, "store")
		return
	}

	log.Info("Store created successfully", map[string]interface{}{
		"store_id":  store.ID,
		"branch_id": branchID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Store created successfully",
		"store":   store,
	})
}

// GetBranchStores lists the stores under a branch
// GET /api/v1/stores/branch/:branchId
func (ctrl *StoreController) GetBranchStores(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	branchID, err := strconv.ParseUint(c.Param("branchId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid branch ID")
		return
	}

	stores, err := ctrl.storeService.GetStoresByBranchID(uint(branchID))
	if err != nil {
		if errors.Is(err, service.ErrBranchNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Branch not found")
			return
		}
		log.Error("Failed to list branch stores", err, map[string]interface{}{
			"branch_id": branchID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stores": stores,
		"count":  len(stores),
	})
}

// GetStore returns a single store
// GET /api/v1/stores/:id
func (ctrl *StoreController) GetStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	store, err := ctrl.storeService.GetStoreByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Store not found")
			return
		}
		log.Error("Failed to fetch store", err, map[string]interface{}{
			"store_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"store": store,
	})
}

// UpdateStore updates store fields
// PUT /api/v1/stores/:id
func (ctrl *StoreController) UpdateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	var req UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid store update request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid store data")
		return
	}

	store, err := ctrl.storeService.UpdateStore(uint(id), service.StoreUpdate{
		Name:          req.Name,
		Code:          req.Code,
		Address:       req.Address,
		Phone:         req.Phone,
		GovernmentTax: req.GovernmentTax,
		ServiceCharge: req.ServiceCharge,
		OutletType:    req.OutletType,
		WifiSSID:      req.WifiSSID,
	})
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Store not found")
			return
		}
		log.Error("Failed to update store", err, map[string]interface{}{
			"store_id": id,
		})
		apperrors.RespondFromDatabaseError(c, err, "store")
		return
	}

	log.Info("Store updated successfully", map[string]interface{}{
		"store_id": store.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Store updated successfully",
		"store":   store,
	})
}

// DeleteStore removes a store, its inventory and staff assignments
// DELETE /api/v1/stores/:id
func (ctrl *StoreController) DeleteStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	if err := ctrl.storeService.DeleteStore(uint(id)); err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Store not found")
			return
		}
		log.Error("Failed to delete store", err, map[string]interface{}{
			"store_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Store deleted successfully", map[string]interface{}{
		"store_id": id,
	})

	c.Status(http.StatusNoContent)
}

// AddStaff assigns a user to a store
// POST /api/v1/stores/:id
func (ctrl *StoreController) AddStaff(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	var req AddStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid staff assignment request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid staff data")
		return
	}

	staff, err := ctrl.storeService.AddStaff(uint(id), req.UserID, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Store not found")
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		if errors.Is(err, service.ErrStaffAlreadyAssigned) {
			apperrors.Conflict(c, apperrors.ResourceConflict, "User is already staff of this store")
			return
		}
		log.Error("Failed to add staff", err, map[string]interface{}{
			"store_id": id,
			"user_id":  req.UserID,
		})
		apperrors.RespondFromDatabaseError(c, err, "staff assignment")
		return
	}

	log.Info("Staff added successfully", map[string]interface{}{
		"store_id": id,
		"user_id":  req.UserID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Staff added successfully",
		"staff":   staff,
	})
}

// GetStaffs lists a store's staff
// GET /api/v1/stores/:id/staffs
func (ctrl *StoreController) GetStaffs(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	staffs, err := ctrl.storeService.GetStaffs(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Store not found")
			return
		}
		log.Error("Failed to list staffs", err, map[string]interface{}{
			"store_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"staffs": staffs,
		"count":  len(staffs),
	})
}

// RemoveStaffs detaches users from a store
// DELETE /api/v1/stores/:id/staffs
func (ctrl *StoreController) RemoveStaffs(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	var req RemoveStaffsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid staff removal request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid staff data")
		return
	}

	removed, err := ctrl.storeService.RemoveStaffs(uint(id), req.UserIDs)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Store not found")
			return
		}
		log.Error("Failed to remove staffs", err, map[string]interface{}{
			"store_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Staffs removed successfully", map[string]interface{}{
		"store_id": id,
		"removed":  removed,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Staffs removed successfully",
		"removed": removed,
	})
}
