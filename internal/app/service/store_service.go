package service

import (
	"errors"

	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/internal/app/repository"
	"github.com/ravelt/retailpos-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrStaffAlreadyAssigned = errors.New("user is already staff of this store")

// StoreInput carries the fields of a store creation request.
type StoreInput struct {
	Name          string
	Code          string
	Address       string
	Phone         string
	GovernmentTax float64
	ServiceCharge float64
	OutletType    string
	WifiSSID      string
}

// StoreUpdate carries the partial field set of a store update.
type StoreUpdate struct {
	Name          *string
	Code          *string
	Address       *string
	Phone         *string
	GovernmentTax *float64
	ServiceCharge *float64
	OutletType    *string
	WifiSSID      *string
}

type StoreService interface {
	CreateStore(input StoreInput, branchID, ownerID uint) (*model.Store, error)
	GetStoreByID(id uint) (*model.Store, error)
	GetStoresByBranchID(branchID uint) ([]model.Store, error)
	UpdateStore(id uint, update StoreUpdate) (*model.Store, error)
	DeleteStore(id uint) error
	AddStaff(storeID, userID uint, role string) (*model.StoreStaff, error)
	GetStaffs(storeID uint) ([]model.StoreStaff, error)
	RemoveStaffs(storeID uint, userIDs []uint) (int64, error)
}

type storeService struct {
	storeRepo  repository.StoreRepository
	branchRepo repository.BranchRepository
	userRepo   repository.UserRepository
	db         *gorm.DB
}

func NewStoreService(
	storeRepo repository.StoreRepository,
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
) StoreService {
	return &storeService{
		storeRepo:  storeRepo,
		branchRepo: branchRepo,
		userRepo:   userRepo,
		db:         db,
	}
}

// CreateStore creates a store under a branch together with its paired
// inventory. The inventory is nested in the same create so a store is never
// left without one.
func (s *storeService) CreateStore(input StoreInput, branchID, ownerID uint) (*model.Store, error) {
	if _, err := s.branchRepo.FindByID(branchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}

	store := &model.Store{
		Name:          input.Name,
		Code:          input.Code,
		Address:       input.Address,
		Phone:         input.Phone,
		GovernmentTax: input.GovernmentTax,
		ServiceCharge: input.ServiceCharge,
		OutletType:    input.OutletType,
		WifiSSID:      input.WifiSSID,
		BranchID:      branchID,
		OwnerID:       ownerID,
		Inventory: &model.Inventory{
			Name: input.Name + " Inventory",
		},
	}

	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}

	logger.Info("Store created successfully with paired inventory", map[string]interface{}{
		"store_id":     store.ID,
		"inventory_id": store.Inventory.ID,
		"branch_id":    branchID,
		"code":         store.Code,
	})
	return store, nil
}

func (s *storeService) GetStoreByID(id uint) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

func (s *storeService) GetStoresByBranchID(branchID uint) ([]model.Store, error) {
	if _, err := s.branchRepo.FindByID(branchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}
	return s.storeRepo.FindByBranchID(branchID)
}

func (s *storeService) UpdateStore(id uint, update StoreUpdate) (*model.Store, error) {
	store, err := s.GetStoreByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		store.Name = *update.Name
	}
	if update.Code != nil {
		store.Code = *update.Code
	}
	if update.Address != nil {
		store.Address = *update.Address
	}
	if update.Phone != nil {
		store.Phone = *update.Phone
	}
	if update.GovernmentTax != nil {
		store.GovernmentTax = *update.GovernmentTax
	}
	if update.ServiceCharge != nil {
		store.ServiceCharge = *update.ServiceCharge
	}
	if update.OutletType != nil {
		store.OutletType = *update.OutletType
	}
	if update.WifiSSID != nil {
		store.WifiSSID = *update.WifiSSID
	}

	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}
	return store, nil
}

// DeleteStore removes a store, its inventory cascade and its staff
// assignments in one database transaction. Recorded transactions are kept;
// closing a store does not erase its sales history.
func (s *storeService) DeleteStore(id uint) error {
	logger.Info("Deleting store with cascade", map[string]interface{}{
		"store_id": id,
	})

	if _, err := s.GetStoreByID(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return cascadeDeleteStore(tx, id)
	})
}

// cascadeDeleteStore is shared with the branch cascade.
func cascadeDeleteStore(tx *gorm.DB, storeID uint) error {
	var inventory model.Inventory
	err := tx.Where("store_id = ?", storeID).First(&inventory).Error
	if err == nil {
		if err := cascadeDeleteInventory(tx, inventory.ID); err != nil {
			return err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := tx.Where("store_id = ?", storeID).Delete(&model.StoreStaff{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Store{}, storeID).Error
}

func (s *storeService) AddStaff(storeID, userID uint, role string) (*model.StoreStaff, error) {
	if _, err := s.GetStoreByID(storeID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	staff := &model.StoreStaff{
		StoreID: storeID,
		UserID:  userID,
		Role:    role,
	}
	if err := s.storeRepo.AddStaff(staff); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStaffAlreadyAssigned
		}
		return nil, err
	}

	logger.Info("Staff added to store", map[string]interface{}{
		"store_id": storeID,
		"user_id":  userID,
		"role":     role,
	})
	return staff, nil
}

func (s *storeService) GetStaffs(storeID uint) ([]model.StoreStaff, error) {
	if _, err := s.GetStoreByID(storeID); err != nil {
		return nil, err
	}
	return s.storeRepo.FindStaffs(storeID)
}

func (s *storeService) RemoveStaffs(storeID uint, userIDs []uint) (int64, error) {
	if _, err := s.GetStoreByID(storeID); err != nil {
		return 0, err
	}
	return s.storeRepo.RemoveStaffs(storeID, userIDs)
}
