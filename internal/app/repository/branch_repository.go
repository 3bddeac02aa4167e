package repository

import (
	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/pkg/logger"
	"gorm.io/gorm"
)

type BranchRepository interface {
	Create(branch *model.Branch) error
	FindByID(id uint) (*model.Branch, error)
	FindByOwnerID(ownerID uint) ([]model.Branch, error)
	Update(branch *model.Branch) error
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(branch *model.Branch) error {
	logger.Debug("Creating branch in database", map[string]interface{}{
		"name":     branch.Name,
		"owner_id": branch.OwnerID,
	})

	if err := r.db.Create(branch).Error; err != nil {
		logger.Error("Failed to create branch in database", err, map[string]interface{}{
			"name": branch.Name,
		})
		return err
	}
	return nil
}

func (r *branchRepository) FindByID(id uint) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.Preload("Owner").First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) FindByOwnerID(ownerID uint) ([]model.Branch, error) {
	var branches []model.Branch
	if err := r.db.Where("owner_id = ?", ownerID).Find(&branches).Error; err != nil {
		logger.Error("Failed to find branches by owner", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return nil, err
	}
	return branches, nil
}

func (r *branchRepository) Update(branch *model.Branch) error {
	if err := r.db.Save(branch).Error; err != nil {
		logger.Error("Failed to update branch in database", err, map[string]interface{}{
			"branch_id": branch.ID,
		})
		return err
	}
	return nil
}
