package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/internal/app/repository"
	"github.com/ravelt/retailpos-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInventoryNotFound = errors.New("inventory not found")
)

// MissingItemsError names the item ids a bulk load referenced but that do not
// exist. It matches ErrItemsMissing under errors.Is.
type MissingItemsError struct {
	IDs []uint
}

var ErrItemsMissing = errors.New("one or more items not found")

func (e *MissingItemsError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("one or more items not found: IDs %s", strings.Join(parts, ", "))
}

func (e *MissingItemsError) Is(target error) bool {
	return target == ErrItemsMissing
}

// LocationInput is the optional shelf placement of a loaded inventory item.
type LocationInput struct {
	Aisle string
	Rack  string
	Shelf string
}

// InventoryItemInput is one line of a bulk (or single) inventory load.
type InventoryItemInput struct {
	ItemID   uint
	Quantity int
	Location *LocationInput
}

type InventoryService interface {
	CreateInventory(storeID uint, name string) (*model.Inventory, error)
	GetInventoryByStoreID(storeID uint) (*model.Inventory, error)
	UpdateInventory(id uint, name string) (*model.Inventory, error)
	DeleteInventory(id uint) error
	LoadItems(inventoryID uint, inputs []InventoryItemInput) ([]model.InventoryItem, error)
	GetItems(inventoryID uint) ([]model.InventoryItem, error)
	GetItemsByRack(inventoryID uint, rack string) ([]model.InventoryItem, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	itemRepo      repository.ItemRepository
	db            *gorm.DB
}

func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	itemRepo repository.ItemRepository,
	db *gorm.DB,
) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		itemRepo:      itemRepo,
		db:            db,
	}
}

// CreateInventory creates the inventory of a store. An existing inventory is
// returned as-is so repeated creation stays idempotent. When no name is given
// one is derived from the store name.
func (s *inventoryService) CreateInventory(storeID uint, name string) (*model.Inventory, error) {
	existing, err := s.inventoryRepo.FindByStoreID(storeID)
	if err == nil {
		logger.Info("Inventory already exists for store, returning existing record", map[string]interface{}{
			"store_id":     storeID,
			"inventory_id": existing.ID,
		})
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if name == "" {
		var store model.Store
		if err := s.db.First(&store, storeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStoreNotFound
			}
			return nil, err
		}
		if strings.Contains(strings.ToLower(store.Name), " inventory") {
			name = store.Name
		} else {
			name = store.Name + " Inventory"
		}
	}

	inventory := &model.Inventory{
		Name:    name,
		StoreID: storeID,
	}
	if err := s.inventoryRepo.Create(inventory); err != nil {
		return nil, err
	}

	logger.Info("Inventory created successfully", map[string]interface{}{
		"inventory_id": inventory.ID,
		"store_id":     storeID,
		"name":         name,
	})
	return inventory, nil
}

func (s *inventoryService) GetInventoryByStoreID(storeID uint) (*model.Inventory, error) {
	inventory, err := s.inventoryRepo.FindByStoreID(storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return inventory, nil
}

func (s *inventoryService) UpdateInventory(id uint, name string) (*model.Inventory, error) {
	inventory, err := s.inventoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}

	inventory.Name = name
	if err := s.inventoryRepo.Update(inventory); err != nil {
		return nil, err
	}
	return inventory, nil
}

// DeleteInventory removes an inventory with all its items and their
// locations, dependents first, in one database transaction.
func (s *inventoryService) DeleteInventory(id uint) error {
	logger.Info("Deleting inventory with cascade", map[string]interface{}{
		"inventory_id": id,
	})

	if _, err := s.inventoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInventoryNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return cascadeDeleteInventory(tx, id)
	})
}

// cascadeDeleteInventory is shared with the store and branch cascades, which
// call it inside their own transactions.
func cascadeDeleteInventory(tx *gorm.DB, inventoryID uint) error {
	itemIDs := tx.Model(&model.InventoryItem{}).
		Select("id").
		Where("inventory_id = ?", inventoryID)

	if err := tx.Where("inventory_item_id IN (?)", itemIDs).Delete(&model.Location{}).Error; err != nil {
		return err
	}
	if err := tx.Where("inventory_id = ?", inventoryID).Delete(&model.InventoryItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Inventory{}, inventoryID).Error
}

// LoadItems inserts or updates inventory items in bulk. Every referenced item
// must already exist; a missing id fails the whole batch. Duplicate
// (inventory, item) pairs follow the upsert-increment policy: quantity is
// added to the existing row and a supplied location replaces the stored one.
func (s *inventoryService) LoadItems(inventoryID uint, inputs []InventoryItemInput) ([]model.InventoryItem, error) {
	logger.Info("Loading inventory items", map[string]interface{}{
		"inventory_id": inventoryID,
		"input_count":  len(inputs),
	})

	if _, err := s.inventoryRepo.FindByID(inventoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}

	uniqueIDs := make([]uint, 0, len(inputs))
	seen := make(map[uint]bool, len(inputs))
	for _, input := range inputs {
		if !seen[input.ItemID] {
			seen[input.ItemID] = true
			uniqueIDs = append(uniqueIDs, input.ItemID)
		}
	}

	existingItems, err := s.itemRepo.FindByIDs(uniqueIDs)
	if err != nil {
		return nil, err
	}
	if len(existingItems) != len(uniqueIDs) {
		found := make(map[uint]bool, len(existingItems))
		for _, item := range existingItems {
			found[item.ID] = true
		}
		var missing []uint
		for _, id := range uniqueIDs {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		logger.Warn("Bulk load rejected: unknown item ids", map[string]interface{}{
			"inventory_id": inventoryID,
			"missing_ids":  missing,
		})
		return nil, &MissingItemsError{IDs: missing}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, input := range inputs {
			if _, err := upsertInventoryItem(tx, inventoryID, input); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to load inventory items", err, map[string]interface{}{
			"inventory_id": inventoryID,
		})
		return nil, err
	}

	results := make([]model.InventoryItem, 0, len(inputs))
	for _, input := range inputs {
		item, err := s.inventoryRepo.FindItem(inventoryID, input.ItemID)
		if err != nil {
			return nil, err
		}
		results = append(results, *item)
	}

	logger.Info("Inventory items loaded successfully", map[string]interface{}{
		"inventory_id": inventoryID,
		"count":        len(results),
	})
	return results, nil
}

// GetItems lists every stocked row of an inventory.
func (s *inventoryService) GetItems(inventoryID uint) ([]model.InventoryItem, error) {
	if _, err := s.inventoryRepo.FindByID(inventoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return s.inventoryRepo.FindItems(inventoryID)
}

func upsertInventoryItem(tx *gorm.DB, inventoryID uint, input InventoryItemInput) (uint, error) {
	var existing model.InventoryItem
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("inventory_id = ? AND item_id = ?", inventoryID, input.ItemID).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		created := model.InventoryItem{
			InventoryID: inventoryID,
			ItemID:      input.ItemID,
			Quantity:    input.Quantity,
		}
		if input.Location != nil {
			created.Location = &model.Location{
				Aisle: input.Location.Aisle,
				Rack:  input.Location.Rack,
				Shelf: input.Location.Shelf,
			}
		}
		if err := tx.Create(&created).Error; err != nil {
			return 0, err
		}
		return created.ID, nil
	}
	if err != nil {
		return 0, err
	}

	err = tx.Model(&model.InventoryItem{}).
		Where("id = ?", existing.ID).
		Update("quantity", gorm.Expr("quantity + ?", input.Quantity)).Error
	if err != nil {
		return 0, err
	}

	if input.Location != nil {
		location := model.Location{
			InventoryItemID: existing.ID,
			Aisle:           input.Location.Aisle,
			Rack:            input.Location.Rack,
			Shelf:           input.Location.Shelf,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "inventory_item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"aisle", "rack", "shelf"}),
		}).Create(&location).Error
		if err != nil {
			return 0, err
		}
	}

	return existing.ID, nil
}

func (s *inventoryService) GetItemsByRack(inventoryID uint, rack string) ([]model.InventoryItem, error) {
	if _, err := s.inventoryRepo.FindByID(inventoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return s.inventoryRepo.FindItemsByRack(inventoryID, rack)
}
