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

type InventoryController struct {
	inventoryService service.InventoryService
}

func NewInventoryController(inventoryService service.InventoryService) *InventoryController {
	return &InventoryController{inventoryService: inventoryService}
}

type CreateInventoryRequest struct {
	StoreID uint   `json:"store_id" binding:"required"`
	Name    string `json:"name"`
}

type UpdateInventoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type LocationRequest struct {
	Aisle string `json:"aisle"`
	Rack  string `json:"rack"`
	Shelf string `json:"shelf"`
}

type LoadItemRequest struct {
	ItemID   uint             `json:"item_id" binding:"required"`
	Quantity int              `json:"quantity" binding:"required,gt=0"`
	Location *LocationRequest `json:"location"`
}

type LoadItemsRequest struct {
	Items []LoadItemRequest `json:"items" binding:"required,min=1,dive"`
}

type BulkLoadRequest struct {
	InventoryID uint              `json:"inventory_id" binding:"required"`
	Items       []LoadItemRequest `json:"items" binding:"required,min=1,dive"`
}

func toItemInputs(items []LoadItemRequest) []service.InventoryItemInput {
	inputs := make([]service.InventoryItemInput, 0, len(items))
	for _, item := range items {
		input := service.InventoryItemInput{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
		}
		if item.Location != nil {
			input.Location = &service.LocationInput{
				Aisle: item.Location.Aisle,
				Rack:  item.Location.Rack,
				Shelf: item.Location.Shelf,
			}
		}
		inputs = append(inputs, input)
	}
	return inputs
}

// CreateInventory creates (or returns) the inventory of a store
// POST /api/v1/inventories
func (ctrl *InventoryController) CreateInventory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid inventory creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid inventory data")
		return
	}

	inventory, err := ctrl.inventoryService.CreateInventory(req.StoreID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Store not found")
			return
		}
		log.Error("Failed to create inventory", err, map[string]interface{}{
			"store_id": req.StoreID,
		})
		apperrors.RespondFromDatabaseError(c, err, "inventory")
		return
	}

	log.Info("Inventory ready", map[string]interface{}{
		"inventory_id": inventory.ID,
		"store_id":     req.StoreID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Inventory created successfully",
		"inventory": inventory,
	})
}

// GetStoreInventory returns the inventory of a store
// GET /api/v1/inventories/store/:storeId
func (ctrl *InventoryController) GetStoreInventory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	storeID, err := strconv.ParseUint(c.Param("storeId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	inventory, err := ctrl.inventoryService.GetInventoryByStoreID(uint(storeID))
	if err != nil {
		if errors.Is(err, service.ErrInventoryNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Inventory not found")
			return
		}
		log.Error("Failed to fetch inventory", err, map[string]interface{}{
			"store_id": storeID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inventory": inventory,
	})
}

// UpdateInventory renames an inventory
// PUT /api/v1/inventories/:id
func (ctrl *InventoryController) UpdateInventory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid inventory ID")
		return
	}

	var req UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid inventory update request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid inventory data")
		return
	}

	inventory, err := ctrl.inventoryService.UpdateInventory(uint(id), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrInventoryNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Inventory not found")
			return
		}
		log.Error("Failed to update inventory", err, map[string]interface{}{
			"inventory_id": id,
		})
		apperrors.RespondFromDatabaseError(c, err, "inventory")
		return
	}

	log.Info("Inventory updated successfully", map[string]interface{}{
		"inventory_id": inventory.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":   "Inventory updated successfully",
		"inventory": inventory,
	})
}

// DeleteInventory removes an inventory together with its items and locations
// DELETE /api/v1/inventories/:id
func (ctrl *InventoryController) DeleteInventory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid inventory ID")
		return
	}

	if err := ctrl.inventoryService.DeleteInventory(uint(id)); err != nil {
		if errors.Is(err, service.ErrInventoryNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Inventory not found")
			return
		}
		log.Error("Failed to delete inventory", err, map[string]interface{}{
			"inventory_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Inventory deleted successfully", map[string]interface{}{
		"inventory_id": id,
	})

	c.Status(http.StatusNoContent)
}

// LoadItems bulk-loads items into an inventory
// POST /api/v1/inventories/:id/items
func (ctrl *InventoryController) LoadItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid inventory ID")
		return
	}

	var req LoadItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid load items request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid items data")
		return
	}

	items, err := ctrl.inventoryService.LoadItems(uint(id), toItemInputs(req.Items))
	if err != nil {
		ctrl.respondLoadError(c, uint(id), err)
		return
	}

	log.Info("Items loaded successfully", map[string]interface{}{
		"inventory_id": id,
		"count":        len(items),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Items loaded successfully",
		"items":   items,
		"count":   len(items),
	})
}

// LoadItemsBulk is the loader variant that names the inventory in the body
// POST /api/v1/item/items/bulk
func (ctrl *InventoryController) LoadItemsBulk(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BulkLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid bulk load request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid items data")
		return
	}

	items, err := ctrl.inventoryService.LoadItems(req.InventoryID, toItemInputs(req.Items))
	if err != nil {
		ctrl.respondLoadError(c, req.InventoryID, err)
		return
	}

	log.Info("Items loaded successfully", map[string]interface{}{
		"inventory_id": req.InventoryID,
		"count":        len(items),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Items loaded successfully",
		"items":   items,
		"count":   len(items),
	})
}

func (ctrl *InventoryController) respondLoadError(c *gin.Context, inventoryID uint, err error) {
	log := middleware.GetLoggerFromContext(c)

	if errors.Is(err, service.ErrInventoryNotFound) {
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Inventory not found")
		return
	}
	if errors.Is(err, service.ErrItemsMissing) {
		log.Warn("Load items failed: unknown item ids", map[string]interface{}{
			"inventory_id": inventoryID,
			"error":        err.Error(),
		})
		apperrors.NotFound(c, apperrors.ResourceNotFound, err.Error())
		return
	}
	log.Error("Failed to load items", err, map[string]interface{}{
		"inventory_id": inventoryID,
	})
	apperrors.RespondFromDatabaseError(c, err, "inventory item")
}

// GetInventoryItems lists every stocked row of an inventory
// GET /api/v1/inventories/:id/items
func (ctrl *InventoryController) GetInventoryItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid inventory ID")
		return
	}

	items, err := ctrl.inventoryService.GetItems(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrInventoryNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Inventory not found")
			return
		}
		log.Error("Failed to list inventory items", err, map[string]interface{}{
			"inventory_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GetItemsByRack lists inventory items stored on a rack
// GET /api/v1/inventories/:id/items/by-rack?rack=
func (ctrl *InventoryController) GetItemsByRack(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid inventory ID")
		return
	}
	rack := c.Query("rack")
	if rack == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "rack query parameter is required")
		return
	}

	items, err := ctrl.inventoryService.GetItemsByRack(uint(id), rack)
	if err != nil {
		if errors.Is(err, service.ErrInventoryNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Inventory not found")
			return
		}
		log.Error("Failed to list items by rack", err, map[string]interface{}{
			"inventory_id": id,
			"rack":         rack,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}
