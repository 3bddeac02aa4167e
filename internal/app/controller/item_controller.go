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

type ItemController struct {
	itemService service.ItemService
}

func NewItemController(itemService service.ItemService) *ItemController {
	return &ItemController{itemService: itemService}
}

type CreateItemRequest struct {
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price" binding:"required,gt=0"`
	CategoryID uint    `json:"category_id" binding:"required"`
}

type UpdateItemRequest struct {
	Name       *string  `json:"name"`
	Price      *float64 `json:"price" binding:"omitempty,gt=0"`
	CategoryID *uint    `json:"category_id"`
}

// CreateItem creates a catalog item
// POST /api/v1/item
func (ctrl *ItemController) CreateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid item creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid item data")
		return
	}

	item, err := ctrl.itemService.CreateItem(req.Name, req.Price, req.CategoryID)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Category not found")
			return
		}
		log.Error("Failed to create item", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.RespondFromDatabaseError(c, err, "item")
		return
	}

	log.Info("Item created successfully", map[string]interface{}{
		"item_id": item.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item created successfully",
		"item":    item,
	})
}

// GetItems lists all catalog items
// GET /api/v1/item
func (ctrl *ItemController) GetItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	items, err := ctrl.itemService.GetAllItems()
	if err != nil {
		log.Error("Failed to list items", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GetItem returns a single catalog item
// GET /api/v1/item/:id
func (ctrl *ItemController) GetItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid item ID")
		return
	}

	item, err := ctrl.itemService.GetItemByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Item not found")
			return
		}
		log.Error("Failed to fetch item", err, map[string]interface{}{
			"item_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item": item,
	})
}

// UpdateItem updates item fields
// PUT /api/v1/item/:id
func (ctrl *ItemController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid item ID")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid item update request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid item data")
		return
	}

	item, err := ctrl.itemService.UpdateItem(uint(id), service.ItemUpdate{
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Item not found")
			return
		}
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Category not found")
			return
		}
		log.Error("Failed to update item", err, map[string]interface{}{
			"item_id": id,
		})
		apperrors.RespondFromDatabaseError(c, err, "item")
		return
	}

	log.Info("Item updated successfully", map[string]interface{}{
		"item_id": item.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated successfully",
		"item":    item,
	})
}

// DeleteItem removes a catalog item
// DELETE /api/v1/item/:id
func (ctrl *ItemController) DeleteItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid item ID")
		return
	}

	if err := ctrl.itemService.DeleteItem(uint(id)); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Item not found")
			return
		}
		log.Error("Failed to delete item", err, map[string]interface{}{
			"item_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Item deleted successfully", map[string]interface{}{
		"item_id": id,
	})

	c.Status(http.StatusNoContent)
}
