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

func setupStoreServiceTest(t *testing.T) (StoreService, *gorm.DB, *model.User, *model.Branch) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	storeRepo := repository.NewStoreRepository(testDB)
	branchRepo := repository.NewBranchRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	storeService := NewStoreService(storeRepo, branchRepo, userRepo, testDB)

	owner := &model.User{
		Email:        "owner@example.com",
		Username:     "owner",
		PasswordHash: "hash",
		Fullname:     "Store Owner",
		Role:         model.RoleAdmin,
	}
	testDB.Create(owner)

	branch := &model.Branch{Name: "Test Branch", Address: "1 Test Street", OwnerID: owner.ID}
	testDB.Create(branch)

	return storeService, testDB, owner, branch
}

func TestStoreService_CreateStore_PairsInventory(t *testing.T) {
	storeService, testDB, owner, branch := setupStoreServiceTest(t)

	store, err := storeService.CreateStore(StoreInput{
		Name:          "Corner Shop",
		Code:          "CS-001",
		Address:       "2 Side Street",
		GovernmentTax: 0.10,
	}, branch.ID, owner.ID)
	require.NoError(t, err)
	assert.NotZero(t, store.ID)
	assert.Equal(t, branch.ID, store.BranchID)
	assert.Equal(t, owner.ID, store.OwnerID)

	require.NotNil(t, store.Inventory)
	assert.Equal(t, "Corner Shop Inventory", store.Inventory.Name)

	var inventory model.Inventory
	require.NoError(t, testDB.Where("store_id = ?", store.ID).First(&inventory).Error)
	assert.Equal(t, store.Inventory.ID, inventory.ID)
}

func TestStoreService_CreateStore_DuplicateCode(t *testing.T) {
	storeService, _, owner, branch := setupStoreServiceTest(t)

	_, err := storeService.CreateStore(StoreInput{Name: "Shop A", Code: "DUP-1"}, branch.ID, owner.ID)
	require.NoError(t, err)

	_, err = storeService.CreateStore(StoreInput{Name: "Shop B", Code: "DUP-1"}, branch.ID, owner.ID)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestStoreService_CreateStore_UnknownBranch(t *testing.T) {
	storeService, _, owner, _ := setupStoreServiceTest(t)

	_, err := storeService.CreateStore(StoreInput{Name: "Orphan", Code: "ORP-1"}, 9999, owner.ID)
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestStoreService_GetStoresByBranchID(t *testing.T) {
	storeService, _, owner, branch := setupStoreServiceTest(t)

	for _, code := range []string{"S-1", "S-2"} {
		_, err := storeService.CreateStore(StoreInput{Name: "Store " + code, Code: code}, branch.ID, owner.ID)
		require.NoError(t, err)
	}

	stores, err := storeService.GetStoresByBranchID(branch.ID)
	require.NoError(t, err)
	assert.Len(t, stores, 2)

	_, err = storeService.GetStoresByBranchID(9999)
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestStoreService_UpdateStore_PartialFields(t *testing.T) {
	storeService, _, owner, branch := setupStoreServiceTest(t)

	store, err := storeService.CreateStore(StoreInput{
		Name: "Corner Shop", Code: "CS-001", Phone: "555-0100",
	}, branch.ID, owner.ID)
	require.NoError(t, err)

	newName := "Corner Shop East"
	newTax := 0.12
	updated, err := storeService.UpdateStore(store.ID, StoreUpdate{
		Name:          &newName,
		GovernmentTax: &newTax,
	})
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop East", updated.Name)
	assert.Equal(t, 0.12, updated.GovernmentTax)
	assert.Equal(t, "CS-001", updated.Code)
	assert.Equal(t, "555-0100", updated.Phone)
}

func TestStoreService_DeleteStore_Cascades(t *testing.T) {
	storeService, testDB, owner, branch := setupStoreServiceTest(t)

	store, err := storeService.CreateStore(StoreInput{Name: "Corner Shop", Code: "CS-001"}, branch.ID, owner.ID)
	require.NoError(t, err)

	// Stock the inventory and assign staff so the cascade has work to do.
	category := &model.Category{Name: "Groceries"}
	testDB.Create(category)
	item := &model.Item{Name: "Milk 1L", Price: 1.80, CategoryID: category.ID}
	testDB.Create(item)
	inventoryItem := &model.InventoryItem{
		InventoryID: store.Inventory.ID,
		ItemID:      item.ID,
		Quantity:    10,
	}
	testDB.Create(inventoryItem)
	testDB.Create(&model.Location{InventoryItemID: inventoryItem.ID, Aisle: "A1", Rack: "R1", Shelf: "S1"})

	staff := &model.User{
		Email: "staff@example.com", Username: "staff", PasswordHash: "hash",
		Fullname: "Staff Member", Role: model.RoleCashier,
	}
	testDB.Create(staff)
	_, err = storeService.AddStaff(store.ID, staff.ID, string(model.RoleCashier))
	require.NoError(t, err)

	require.NoError(t, storeService.DeleteStore(store.ID))

	var locations, inventoryItems, inventories, staffs int64
	testDB.Model(&model.Location{}).Count(&locations)
	testDB.Model(&model.InventoryItem{}).Count(&inventoryItems)
	testDB.Model(&model.Inventory{}).Count(&inventories)
	testDB.Model(&model.StoreStaff{}).Count(&staffs)
	assert.Equal(t, int64(0), locations)
	assert.Equal(t, int64(0), inventoryItems)
	assert.Equal(t, int64(0), inventories)
	assert.Equal(t, int64(0), staffs)

	_, err = storeService.GetStoreByID(store.ID)
	assert.ErrorIs(t, err, ErrStoreNotFound)

	// The staff account itself survives.
	var userCount int64
	testDB.Model(&model.User{}).Count(&userCount)
	assert.Equal(t, int64(2), userCount)
}

func TestStoreService_DeleteStore_KeepsTransactions(t *testing.T) {
	storeService, testDB, owner, branch := setupStoreServiceTest(t)

	store, err := storeService.CreateStore(StoreInput{Name: "Corner Shop", Code: "CS-001"}, branch.ID, owner.ID)
	require.NoError(t, err)

	testDB.Create(&model.Transaction{StoreID: store.ID, CashierID: owner.ID, Total: 12.30})

	require.NoError(t, storeService.DeleteStore(store.ID))

	var count int64
	testDB.Model(&model.Transaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestStoreService_Staffs(t *testing.T) {
	storeService, testDB, owner, branch := setupStoreServiceTest(t)

	store, err := storeService.CreateStore(StoreInput{Name: "Corner Shop", Code: "CS-001"}, branch.ID, owner.ID)
	require.NoError(t, err)

	staff := &model.User{
		Email: "staff@example.com", Username: "staff", PasswordHash: "hash",
		Fullname: "Staff Member", Role: model.RoleCashier,
	}
	testDB.Create(staff)

	assigned, err := storeService.AddStaff(store.ID, staff.ID, string(model.RoleCashier))
	require.NoError(t, err)
	assert.Equal(t, store.ID, assigned.StoreID)

	// Assigning the same user twice conflicts.
	_, err = storeService.AddStaff(store.ID, staff.ID, string(model.RoleCashier))
	assert.ErrorIs(t, err, ErrStaffAlreadyAssigned)

	staffs, err := storeService.GetStaffs(store.ID)
	require.NoError(t, err)
	require.Len(t, staffs, 1)
	assert.Equal(t, staff.ID, staffs[0].UserID)
	assert.Equal(t, staff.Email, staffs[0].User.Email)

	removed, err := storeService.RemoveStaffs(store.ID, []uint{staff.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	staffs, err = storeService.GetStaffs(store.ID)
	require.NoError(t, err)
	assert.Len(t, staffs, 0)
}

func TestStoreService_AddStaff_UnknownUser(t *testing.T) {
	storeService, _, owner, branch := setupStoreServiceTest(t)

	store, err := storeService.CreateStore(StoreInput{Name: "Corner Shop", Code: "CS-001"}, branch.ID, owner.ID)
	require.NoError(t, err)

	_, err = storeService.AddStaff(store.ID, 9999, string(model.RoleCashier))
	assert.ErrorIs(t, err, ErrUserNotFound)
}
