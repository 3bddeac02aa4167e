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

func setupCategoryServiceTest(t *testing.T) (CategoryService, ItemService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	categoryRepo := repository.NewCategoryRepository(testDB)
	itemRepo := repository.NewItemRepository(testDB)
	categoryService := NewCategoryService(categoryRepo, testDB)
	itemService := NewItemService(itemRepo, categoryRepo)

	return categoryService, itemService, testDB
}

func TestCategoryService_CreateCategory(t *testing.T) {
	categoryService, _, _ := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Beverages")
	require.NoError(t, err)
	assert.NotZero(t, category.ID)
	assert.Equal(t, "Beverages", category.Name)
}

func TestCategoryService_CreateCategory_DuplicateName(t *testing.T) {
	categoryService, _, _ := setupCategoryServiceTest(t)

	_, err := categoryService.CreateCategory("Beverages")
	require.NoError(t, err)

	_, err = categoryService.CreateCategory("Beverages")
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCategoryService_GetItemsByCategory(t *testing.T) {
	categoryService, itemService, _ := setupCategoryServiceTest(t)

	beverages, err := categoryService.CreateCategory("Beverages")
	require.NoError(t, err)
	snacks, err := categoryService.CreateCategory("Snacks")
	require.NoError(t, err)

	_, err = itemService.CreateItem("Cola", 1.50, beverages.ID)
	require.NoError(t, err)
	_, err = itemService.CreateItem("Juice", 2.80, beverages.ID)
	require.NoError(t, err)
	_, err = itemService.CreateItem("Crisps", 1.20, snacks.ID)
	require.NoError(t, err)

	items, err := categoryService.GetItemsByCategory(beverages.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = categoryService.GetItemsByCategory(9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	categoryService, _, _ := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Beverages")
	require.NoError(t, err)

	updated, err := categoryService.UpdateCategory(category.ID, "Drinks")
	require.NoError(t, err)
	assert.Equal(t, "Drinks", updated.Name)
}

func TestCategoryService_DeleteCategory_CascadesItems(t *testing.T) {
	categoryService, itemService, testDB := setupCategoryServiceTest(t)

	beverages, err := categoryService.CreateCategory("Beverages")
	require.NoError(t, err)
	snacks, err := categoryService.CreateCategory("Snacks")
	require.NoError(t, err)

	_, err = itemService.CreateItem("Cola", 1.50, beverages.ID)
	require.NoError(t, err)
	kept, err := itemService.CreateItem("Crisps", 1.20, snacks.ID)
	require.NoError(t, err)

	require.NoError(t, categoryService.DeleteCategory(beverages.ID))

	_, err = categoryService.GetCategoryByID(beverages.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	var count int64
	testDB.Model(&model.Item{}).Count(&count)
	assert.Equal(t, int64(1), count)

	survivor, err := itemService.GetItemByID(kept.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crisps", survivor.Name)
}

func TestCategoryService_DeleteCategory_NotFound(t *testing.T) {
	categoryService, _, _ := setupCategoryServiceTest(t)

	err := categoryService.DeleteCategory(9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestItemService_CreateItem_UnknownCategory(t *testing.T) {
	_, itemService, _ := setupCategoryServiceTest(t)

	_, err := itemService.CreateItem("Orphan", 1.00, 9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestItemService_UpdateItem_PartialFields(t *testing.T) {
	categoryService, itemService, _ := setupCategoryServiceTest(t)

	beverages, err := categoryService.CreateCategory("Beverages")
	require.NoError(t, err)
	item, err := itemService.CreateItem("Cola", 1.50, beverages.ID)
	require.NoError(t, err)

	newPrice := 1.75
	updated, err := itemService.UpdateItem(item.ID, ItemUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "Cola", updated.Name)
	assert.Equal(t, 1.75, updated.Price)

	badCategory := uint(9999)
	_, err = itemService.UpdateItem(item.ID, ItemUpdate{CategoryID: &badCategory})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestItemService_DeleteItem(t *testing.T) {
	categoryService, itemService, _ := setupCategoryServiceTest(t)

	beverages, err := categoryService.CreateCategory("Beverages")
	require.NoError(t, err)
	item, err := itemService.CreateItem("Cola", 1.50, beverages.ID)
	require.NoError(t, err)

	require.NoError(t, itemService.DeleteItem(item.ID))

	_, err = itemService.GetItemByID(item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	err = itemService.DeleteItem(9999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
