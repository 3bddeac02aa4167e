package service

import (
	"errors"

	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/internal/app/repository"
	"github.com/ravelt/retailpos-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrItemNotFound = errors.New("item not found")

// ItemUpdate carries the partial field set of an item update. Nil fields are
// left untouched.
type ItemUpdate struct {
	Name       *string
	Price      *float64
	CategoryID *uint
}

type ItemService interface {
	CreateItem(name string, price float64, categoryID uint) (*model.Item, error)
	GetAllItems() ([]model.Item, error)
	GetItemByID(id uint) (*model.Item, error)
	UpdateItem(id uint, update ItemUpdate) (*model.Item, error)
	DeleteItem(id uint) error
}

type itemService struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
}

func NewItemService(itemRepo repository.ItemRepository, categoryRepo repository.CategoryRepository) ItemService {
	return &itemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *itemService) CreateItem(name string, price float64, categoryID uint) (*model.Item, error) {
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	item := &model.Item{
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
	}
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Item created successfully", map[string]interface{}{
		"item_id":     item.ID,
		"name":        name,
		"category_id": categoryID,
	})
	return item, nil
}

func (s *itemService) GetAllItems() ([]model.Item, error) {
	return s.itemRepo.FindAll()
}

func (s *itemService) GetItemByID(id uint) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) UpdateItem(id uint, update ItemUpdate) (*model.Item, error) {
	item, err := s.GetItemByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*update.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		item.CategoryID = *update.CategoryID
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) DeleteItem(id uint) error {
	err := s.itemRepo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrItemNotFound
	}
	return err
}
