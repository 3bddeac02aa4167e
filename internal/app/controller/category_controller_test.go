package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/internal/app/repository"
	"github.com/ravelt/retailpos-backend/internal/app/service"
	"github.com/ravelt/retailpos-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoryControllerTest(t *testing.T) (*gin.Engine, *model.Category) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	categoryRepo := repository.NewCategoryRepository(testDB)
	categoryService := service.NewCategoryService(categoryRepo, testDB)
	ctrl := NewCategoryController(categoryService)

	router := gin.New()
	categories := router.Group("/categories")
	{
		categories.GET("", ctrl.GetCategories)
		categories.GET("/:id", ctrl.GetCategory)
		categories.GET("/:id/items", ctrl.GetCategoryItems)
	}

	category := &model.Category{Name: "Beverages"}
	require.NoError(t, testDB.Create(category).Error)

	return router, category
}

func TestCategoryController_GetCategory_Success(t *testing.T) {
	router, category := setupCategoryControllerTest(t)

	req := httptest.NewRequest("GET", "/categories/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	fetched, ok := response["category"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, category.Name, fetched["name"])
	assert.EqualValues(t, category.ID, fetched["id"])
}

func TestCategoryController_GetCategory_NotFound(t *testing.T) {
	router, _ := setupCategoryControllerTest(t)

	req := httptest.NewRequest("GET", "/categories/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Category not found")
}

func TestCategoryController_GetCategory_InvalidID(t *testing.T) {
	router, _ := setupCategoryControllerTest(t)

	req := httptest.NewRequest("GET", "/categories/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
