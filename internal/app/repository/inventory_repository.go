package repository

import (
	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/pkg/logger"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(inventory *model.Inventory) error
	FindByID(id uint) (*model.Inventory, error)
	FindByStoreID(storeID uint) (*model.Inventory, error)
	Update(inventory *model.Inventory) error
	FindItems(inventoryID uint) ([]model.InventoryItem, error)
	FindItem(inventoryID, itemID uint) (*model.InventoryItem, error)
	FindItemsByRack(inventoryID uint, rack string) ([]model.InventoryItem, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(inventory *model.Inventory) error {
	logger.Debug("Creating inventory in database", map[string]interface{}{
		"name":     inventory.Name,
		"store_id": inventory.StoreID,
	})

	if err := r.db.Create(inventory).Error; err != nil {
		logger.Error("Failed to create inventory in database", err, map[string]interface{}{
			"store_id": inventory.StoreID,
		})
		return err
	}
	return nil
}

func (r *inventoryRepository) FindByID(id uint) (*model.Inventory, error) {
	var inventory model.Inventory
	if err := r.db.First(&inventory, id).Error; err != nil {
		return nil, err
	}
	return &inventory, nil
}

func (r *inventoryRepository) FindByStoreID(storeID uint) (*model.Inventory, error) {
	var inventory model.Inventory
	if err := r.db.Preload("Store").Where("store_id = ?", storeID).First(&inventory).Error; err != nil {
		return nil, err
	}
	return &inventory, nil
}

func (r *inventoryRepository) Update(inventory *model.Inventory) error {
	if err := r.db.Save(inventory).Error; err != nil {
		logger.Error("Failed to update inventory in database", err, map[string]interface{}{
			"inventory_id": inventory.ID,
		})
		return err
	}
	return nil
}

func (r *inventoryRepository) FindItems(inventoryID uint) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.
		Preload("Item").
		Preload("Location").
		Where("inventory_id = ?", inventoryID).
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find inventory items", err, map[string]interface{}{
			"inventory_id": inventoryID,
		})
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) FindItem(inventoryID, itemID uint) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.
		Preload("Item").
		Preload("Location").
		Where("inventory_id = ? AND item_id = ?", inventoryID, itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) FindItemsByRack(inventoryID uint, rack string) ([]model.InventoryItem, error) {
	logger.Debug("Finding inventory items by rack", map[string]interface{}{
		"inventory_id": inventoryID,
		"rack":         rack,
	})

	var items []model.InventoryItem
	err := r.db.
		Joins("JOIN locations ON locations.inventory_item_id = inventory_items.id").
		Where("inventory_items.inventory_id = ? AND locations.rack = ?", inventoryID, rack).
		Preload("Item").
		Preload("Location").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find inventory items by rack", err, map[string]interface{}{
			"inventory_id": inventoryID,
			"rack":         rack,
		})
		return nil, err
	}
	return items, nil
}
