package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/internal/app/repository"
	"github.com/ravelt/retailpos-backend/internal/app/service"
	"github.com/ravelt/retailpos-backend/internal/db"
	"github.com/ravelt/retailpos-backend/internal/middleware"
	"github.com/ravelt/retailpos-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTransactionControllerTest(t *testing.T) (*gin.Engine, *model.User, *model.Store, *model.Item, string) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	transactionRepo := repository.NewTransactionRepository(testDB)
	inventoryRepo := repository.NewInventoryRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	transactionService := service.NewTransactionService(transactionRepo, inventoryRepo, userRepo, testDB)

	ctrl := NewTransactionController(transactionService)
	authMiddleware := middleware.NewAuthMiddleware(testControllerSecret, testDB)

	router := gin.New()
	transactions := router.Group("/transactions")
	transactions.Use(authMiddleware.Authenticate())
	{
		transactions.POST("",
			authMiddleware.RequireRole("ADMIN", "MANAGER", "CASHIER"),
			ctrl.CreateTransaction,
		)
		transactions.GET("/store/:storeId",
			authMiddleware.RequireRole("ADMIN", "MANAGER", "CASHIER"),
			ctrl.GetStoreTransactions,
		)
	}

	cashier := &model.User{
		Email:        "cashier@example.com",
		Username:     "cashier",
		PasswordHash: "hash",
		Fullname:     "Till Operator",
		Role:         model.RoleCashier,
	}
	require.NoError(t, testDB.Create(cashier).Error)

	branch := &model.Branch{Name: "Test Branch", Address: "1 Test Street", OwnerID: cashier.ID}
	require.NoError(t, testDB.Create(branch).Error)

	store := &model.Store{Name: "Test Store", Code: "TST-001", BranchID: branch.ID, OwnerID: cashier.ID}
	require.NoError(t, testDB.Create(store).Error)

	inventory := &model.Inventory{Name: "Test Store Inventory", StoreID: store.ID}
	require.NoError(t, testDB.Create(inventory).Error)

	category := &model.Category{Name: "Beverages"}
	require.NoError(t, testDB.Create(category).Error)

	item := &model.Item{Name: "Sparkling Water", Price: 2.50, CategoryID: category.ID}
	require.NoError(t, testDB.Create(item).Error)

	require.NoError(t, testDB.Create(&model.InventoryItem{
		InventoryID: inventory.ID,
		ItemID:      item.ID,
		Quantity:    10,
	}).Error)

	token, err := util.GenerateAccessToken(cashier.ID, cashier.Email, string(cashier.Role), testControllerSecret, 15*time.Minute)
	require.NoError(t, err)

	return router, cashier, store, item, token
}

func TestTransactionController_CreateTransaction_Success(t *testing.T) {
	router, _, store, item, token := setupTransactionControllerTest(t)

	w := postJSON(t, router, "/transactions", CreateTransactionRequest{
		StoreID: store.ID,
		Items:   []SaleLineRequest{{ItemID: item.ID, Quantity: 3}},
	}, token)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	transaction, ok := response["transaction"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 7.50, transaction["total"], 0.0001)
}

func TestTransactionController_CreateTransaction_InsufficientStock(t *testing.T) {
	router, _, store, item, token := setupTransactionControllerTest(t)

	w := postJSON(t, router, "/transactions", CreateTransactionRequest{
		StoreID: store.ID,
		Items:   []SaleLineRequest{{ItemID: item.ID, Quantity: 20}},
	}, token)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "STOCK_INSUFFICIENT", response["error"])
	assert.EqualValues(t, item.ID, response["item_id"])
	assert.EqualValues(t, 20, response["requested"])
	assert.EqualValues(t, 10, response["available"])
}

func TestTransactionController_CreateTransaction_UnknownStore(t *testing.T) {
	router, _, _, item, token := setupTransactionControllerTest(t)

	w := postJSON(t, router, "/transactions", CreateTransactionRequest{
		StoreID: 9999,
		Items:   []SaleLineRequest{{ItemID: item.ID, Quantity: 1}},
	}, token)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactionController_CreateTransaction_EmptyItems(t *testing.T) {
	router, _, store, _, token := setupTransactionControllerTest(t)

	w := postJSON(t, router, "/transactions", CreateTransactionRequest{
		StoreID: store.ID,
		Items:   []SaleLineRequest{},
	}, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransactionController_GetStoreTransactions(t *testing.T) {
	router, _, store, item, cashierToken := setupTransactionControllerTest(t)

	w := postJSON(t, router, "/transactions", CreateTransactionRequest{
		StoreID: store.ID,
		Items:   []SaleLineRequest{{ItemID: item.ID, Quantity: 2}},
	}, cashierToken)
	require.Equal(t, http.StatusCreated, w.Code)

	// Every store role may browse the listing.
	for _, role := range []string{"ADMIN", "MANAGER", "CASHIER"} {
		token, err := util.GenerateAccessToken(99, "staff@example.com", role, testControllerSecret, 15*time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/transactions/store/1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.EqualValues(t, 1, response["count"])
	}
}

func TestTransactionController_GetStoreTransactions_BadDate(t *testing.T) {
	router, _, _, _, _ := setupTransactionControllerTest(t)

	managerToken, err := util.GenerateAccessToken(99, "manager@example.com", "MANAGER", testControllerSecret, 15*time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/transactions/store/1?start_date=01-02-2026", nil)
	req.Header.Set("Authorization", "Bearer "+managerToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
