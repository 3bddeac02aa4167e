package repository

import (
	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/pkg/logger"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(item *model.Item) error
	FindAll() ([]model.Item, error)
	FindByID(id uint) (*model.Item, error)
	FindByIDs(ids []uint) ([]model.Item, error)
	Update(item *model.Item) error
	Delete(id uint) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(item *model.Item) error {
	logger.Debug("Creating item in database", map[string]interface{}{
		"name":        item.Name,
		"price":       item.Price,
		"category_id": item.CategoryID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create item in database", err, map[string]interface{}{
			"name": item.Name,
		})
		return err
	}
	return nil
}

func (r *itemRepository) FindAll() ([]model.Item, error) {
	var items []model.Item
	if err := r.db.Preload("Category").Find(&items).Error; err != nil {
		logger.Error("Failed to find items", err)
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) FindByID(id uint) (*model.Item, error) {
	var item model.Item
	if err := r.db.Preload("Category").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) FindByIDs(ids []uint) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		logger.Error("Failed to find items by ids", err, map[string]interface{}{
			"ids": ids,
		})
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) Update(item *model.Item) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update item in database", err, map[string]interface{}{
			"item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *itemRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Item{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete item from database", result.Error, map[string]interface{}{
			"item_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
