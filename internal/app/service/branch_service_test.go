package service

import (
	"testing"

	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/internal/app/repository"
	"github.com/ravelt/retailpos-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBranchServiceTest(t *testing.T) (BranchService, StoreService, *gorm.DB, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	branchRepo := repository.NewBranchRepository(testDB)
	storeRepo := repository.NewStoreRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	branchService := NewBranchService(branchRepo, testDB)
	storeService := NewStoreService(storeRepo, branchRepo, userRepo, testDB)

	owner := &model.User{
		Email:        "owner@example.com",
		Username:     "owner",
		PasswordHash: "hash",
		Fullname:     "Branch Owner",
		Role:         model.RoleAdmin,
	}
	testDB.Create(owner)

	return branchService, storeService, testDB, owner
}

func TestBranchService_CreateBranch(t *testing.T) {
	branchService, _, _, owner := setupBranchServiceTest(t)

	branch, err := branchService.CreateBranch("North Branch", "3 North Road", "555-0200", owner.ID)
	require.NoError(t, err)
	assert.NotZero(t, branch.ID)
	assert.Equal(t, owner.ID, branch.OwnerID)
}

func TestBranchService_CreateBranch_DuplicateName(t *testing.T) {
	branchService, _, _, owner := setupBranchServiceTest(t)

	_, err := branchService.CreateBranch("North Branch", "3 North Road", "", owner.ID)
	require.NoError(t, err)

	_, err = branchService.CreateBranch("North Branch", "4 Other Road", "", owner.ID)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestBranchService_GetOwnedBranches(t *testing.T) {
	branchService, _, testDB, owner := setupBranchServiceTest(t)

	other := &model.User{
		Email: "other@example.com", Username: "other", PasswordHash: "hash",
		Fullname: "Other Admin", Role: model.RoleAdmin,
	}
	testDB.Create(other)

	_, err := branchService.CreateBranch("Mine A", "1 Street", "", owner.ID)
	require.NoError(t, err)
	_, err = branchService.CreateBranch("Mine B", "2 Street", "", owner.ID)
	require.NoError(t, err)
	_, err = branchService.CreateBranch("Theirs", "3 Street", "", other.ID)
	require.NoError(t, err)

	branches, err := branchService.GetOwnedBranches(owner.ID)
	require.NoError(t, err)
	assert.Len(t, branches, 2)
}

func TestBranchService_UpdateBranch_PartialFields(t *testing.T) {
	branchService, _, _, owner := setupBranchServiceTest(t)

	branch, err := branchService.CreateBranch("North Branch", "3 North Road", "555-0200", owner.ID)
	require.NoError(t, err)

	newPhone := "555-0299"
	updated, err := branchService.UpdateBranch(branch.ID, BranchUpdate{Phone: &newPhone})
	require.NoError(t, err)
	assert.Equal(t, "North Branch", updated.Name)
	assert.Equal(t, "555-0299", updated.Phone)
}

func TestBranchService_DeleteBranch_CascadesThroughStores(t *testing.T) {
	branchService, storeService, testDB, owner := setupBranchServiceTest(t)

	branch, err := branchService.CreateBranch("North Branch", "3 North Road", "", owner.ID)
	require.NoError(t, err)

	storeA, err := storeService.CreateStore(StoreInput{Name: "Shop A", Code: "A-1"}, branch.ID, owner.ID)
	require.NoError(t, err)
	_, err = storeService.CreateStore(StoreInput{Name: "Shop B", Code: "B-1"}, branch.ID, owner.ID)
	require.NoError(t, err)

	category := &model.Category{Name: "Groceries"}
	testDB.Create(category)
	item := &model.Item{Name: "Milk 1L", Price: 1.80, CategoryID: category.ID}
	testDB.Create(item)
	inventoryItem := &model.InventoryItem{
		InventoryID: storeA.Inventory.ID,
		ItemID:      item.ID,
		Quantity:    10,
	}
	testDB.Create(inventoryItem)
	testDB.Create(&model.Location{InventoryItemID: inventoryItem.ID, Rack: "R1"})

	require.NoError(t, branchService.DeleteBranch(branch.ID))

	var stores, inventories, inventoryItems, locations int64
	testDB.Model(&model.Store{}).Count(&stores)
	testDB.Model(&model.Inventory{}).Count(&inventories)
	testDB.Model(&model.InventoryItem{}).Count(&inventoryItems)
	testDB.Model(&model.Location{}).Count(&locations)
	assert.Equal(t, int64(0), stores)
	assert.Equal(t, int64(0), inventories)
	assert.Equal(t, int64(0), inventoryItems)
	assert.Equal(t, int64(0), locations)

	_, err = branchService.GetBranchByID(branch.ID)
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestBranchService_DeleteBranch_NotFound(t *testing.T) {
	branchService, _, _, _ := setupBranchServiceTest(t)

	err := branchService.DeleteBranch(9999)
	assert.ErrorIs(t, err, ErrBranchNotFound)
}
