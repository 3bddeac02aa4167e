package service

import (
	"errors"

	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/internal/app/repository"
	"github.com/ravelt/retailpos-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrBranchNotFound = errors.New("branch not found")

// BranchUpdate carries the partial field set of a branch update.
type BranchUpdate struct {
	Name    *string
	Address *string
	Phone   *string
}

type BranchService interface {
	CreateBranch(name, address, phone string, ownerID uint) (*model.Branch, error)
	GetBranchByID(id uint) (*model.Branch, error)
	GetOwnedBranches(ownerID uint) ([]model.Branch, error)
	UpdateBranch(id uint, update BranchUpdate) (*model.Branch, error)
	DeleteBranch(id uint) error
}

type branchService struct {
	branchRepo repository.BranchRepository
	db         *gorm.DB
}

func NewBranchService(branchRepo repository.BranchRepository, db *gorm.DB) BranchService {
	return &branchService{
		branchRepo: branchRepo,
		db:         db,
	}
}

func (s *branchService) CreateBranch(name, address, phone string, ownerID uint) (*model.Branch, error) {
	branch := &model.Branch{
		Name:    name,
		Address: address,
		Phone:   phone,
		OwnerID: ownerID,
	}
	if err := s.branchRepo.Create(branch); err != nil {
		return nil, err
	}

	logger.Info("Branch created successfully", map[string]interface{}{
		"branch_id": branch.ID,
		"name":      name,
		"owner_id":  ownerID,
	})
	return branch, nil
}

func (s *branchService) GetBranchByID(id uint) (*model.Branch, error) {
	branch, err := s.branchRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}
	return branch, nil
}

func (s *branchService) GetOwnedBranches(ownerID uint) ([]model.Branch, error) {
	return s.branchRepo.FindByOwnerID(ownerID)
}

func (s *branchService) UpdateBranch(id uint, update BranchUpdate) (*model.Branch, error) {
	branch, err := s.GetBranchByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		branch.Name = *update.Name
	}
	if update.Address != nil {
		branch.Address = *update.Address
	}
	if update.Phone != nil {
		branch.Phone = *update.Phone
	}

	if err := s.branchRepo.Update(branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// DeleteBranch removes a branch and everything under it: for every store in
// the branch the store cascade runs (inventory, inventory items, locations,
// staff assignments), then the branch row itself is removed. One database
// transaction covers the whole chain.
func (s *branchService) DeleteBranch(id uint) error {
	logger.Info("Deleting branch with cascade", map[string]interface{}{
		"branch_id": id,
	})

	if _, err := s.GetBranchByID(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var stores []model.Store
		if err := tx.Where("branch_id = ?", id).Find(&stores).Error; err != nil {
			return err
		}

		for _, store := range stores {
			if err := cascadeDeleteStore(tx, store.ID); err != nil {
				return err
			}
		}

		return tx.Delete(&model.Branch{}, id).Error
	})
}
