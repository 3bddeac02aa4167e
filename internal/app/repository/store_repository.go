package repository

import (
	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/pkg/logger"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(store *model.Store) error
	FindByID(id uint) (*model.Store, error)
	FindByBranchID(branchID uint) ([]model.Store, error)
	Update(store *model.Store) error
	AddStaff(staff *model.StoreStaff) error
	FindStaffs(storeID uint) ([]model.StoreStaff, error)
	RemoveStaffs(storeID uint, userIDs []uint) (int64, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *model.Store) error {
	logger.Debug("Creating store in database", map[string]interface{}{
		"name":      store.Name,
		"code":      store.Code,
		"branch_id": store.BranchID,
		"owner_id":  store.OwnerID,
	})

	if err := r.db.Create(store).Error; err != nil {
		logger.Error("Failed to create store in database", err, map[string]interface{}{
			"name": store.Name,
			"code": store.Code,
		})
		return err
	}
	return nil
}

func (r *storeRepository) FindByID(id uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.Preload("Branch").Preload("Inventory").First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByBranchID(branchID uint) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.
		Preload("Owner").
		Preload("Branch").
		Preload("Inventory").
		Where("branch_id = ?", branchID).
		Find(&stores).Error
	if err != nil {
		logger.Error("Failed to find stores by branch", err, map[string]interface{}{
			"branch_id": branchID,
		})
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) Update(store *model.Store) error {
	if err := r.db.Save(store).Error; err != nil {
		logger.Error("Failed to update store in database", err, map[string]interface{}{
			"store_id": store.ID,
		})
		return err
	}
	return nil
}

func (r *storeRepository) AddStaff(staff *model.StoreStaff) error {
	logger.Debug("Adding staff to store", map[string]interface{}{
		"store_id": staff.StoreID,
		"user_id":  staff.UserID,
		"role":     staff.Role,
	})

	if err := r.db.Create(staff).Error; err != nil {
		logger.Error("Failed to add staff to store", err, map[string]interface{}{
			"store_id": staff.StoreID,
			"user_id":  staff.UserID,
		})
		return err
	}
	return nil
}

func (r *storeRepository) FindStaffs(storeID uint) ([]model.StoreStaff, error) {
	var staffs []model.StoreStaff
	if err := r.db.Preload("User").Where("store_id = ?", storeID).Find(&staffs).Error; err != nil {
		logger.Error("Failed to find store staffs", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}
	return staffs, nil
}

func (r *storeRepository) RemoveStaffs(storeID uint, userIDs []uint) (int64, error) {
	result := r.db.
		Where("store_id = ? AND user_id IN ?", storeID, userIDs).
		Delete(&model.StoreStaff{})
	if result.Error != nil {
		logger.Error("Failed to remove staffs from store", result.Error, map[string]interface{}{
			"store_id": storeID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
