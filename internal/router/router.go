package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ravelt/retailpos-backend/config"
	"github.com/ravelt/retailpos-backend/internal/app/controller"
	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/internal/middleware"
)

type Router struct {
	userController        *controller.UserController
	branchController      *controller.BranchController
	storeController       *controller.StoreController
	inventoryController   *controller.InventoryController
	itemController        *controller.ItemController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	authMiddleware        *middleware.AuthMiddleware
	config                *config.Config
}

func NewRouter(
	userController *controller.UserController,
	branchController *controller.BranchController,
	storeController *controller.StoreController,
	inventoryController *controller.InventoryController,
	itemController *controller.ItemController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		userController:        userController,
		branchController:      branchController,
		storeController:       storeController,
		inventoryController:   inventoryController,
		itemController:        itemController,
		categoryController:    categoryController,
		transactionController: transactionController,
		authMiddleware:        authMiddleware,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "RetailPOS API is running",
		})
	})

	admin := string(model.RoleAdmin)
	manager := string(model.RoleManager)
	cashier := string(model.RoleCashier)

	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", r.userController.Signup)
			users.POST("/login", r.userController.Login)
			users.POST("/refresh", r.userController.Refresh)

			users.POST("/staff",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin, manager),
				r.userController.CreateStaff,
			)
			users.GET("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin, manager),
				r.userController.GetUsers,
			)
			users.GET("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin, manager),
				r.userController.GetUser,
			)
			users.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.userController.UpdateUser,
			)
			users.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.userController.DeleteUser,
			)
		}

		branches := v1.Group("/branches")
		branches.Use(r.authMiddleware.Authenticate())
		{
			branches.POST("",
				r.authMiddleware.RequireRole(admin),
				r.branchController.CreateBranch,
			)
			branches.GET("", r.branchController.GetBranches)
			branches.GET("/:id", r.branchController.GetBranch)
			branches.PUT("/:id",
				r.authMiddleware.RequireRole(admin),
				r.authMiddleware.RequireOwnership("branch", "id"),
				r.branchController.UpdateBranch,
			)
			branches.DELETE("/:id",
				r.authMiddleware.RequireRole(admin),
				r.authMiddleware.RequireOwnership("branch", "id"),
				r.branchController.DeleteBranch,
			)
		}

		stores := v1.Group("/stores")
		stores.Use(r.authMiddleware.Authenticate())
		{
			stores.POST("/branch/:branchId",
				r.authMiddleware.RequireRole(admin),
				r.authMiddleware.RequireOwnership("branch", "branchId"),
				r.storeController.CreateStore,
			)
			stores.GET("/branch/:branchId", r.storeController.GetBranchStores)
			stores.GET("/:id", r.storeController.GetStore)
			stores.PUT("/:id",
				r.authMiddleware.RequireRole(admin, manager),
				r.storeController.UpdateStore,
			)
			stores.DELETE("/:id",
				r.authMiddleware.RequireRole(admin),
				r.authMiddleware.RequireOwnership("store", "id"),
				r.storeController.DeleteStore,
			)
			stores.POST("/:id",
				r.authMiddleware.RequireRole(admin, manager),
				r.storeController.AddStaff,
			)
			stores.GET("/:id/staffs",
				r.authMiddleware.RequireRole(admin, manager),
				r.storeController.GetStaffs,
			)
			stores.DELETE("/:id/staffs",
				r.authMiddleware.RequireRole(admin, manager),
				r.storeController.RemoveStaffs,
			)
		}

		inventories := v1.Group("/inventories")
		inventories.Use(r.authMiddleware.Authenticate())
		{
			inventories.POST("",
				r.authMiddleware.RequireRole(admin, manager),
				r.inventoryController.CreateInventory,
			)
			inventories.GET("/store/:storeId", r.inventoryController.GetStoreInventory)
			inventories.PUT("/:id",
				r.authMiddleware.RequireRole(admin, manager),
				r.inventoryController.UpdateInventory,
			)
			inventories.DELETE("/:id",
				r.authMiddleware.RequireRole(admin),
				r.inventoryController.DeleteInventory,
			)
			inventories.POST("/:id/items",
				r.authMiddleware.RequireRole(admin, manager),
				r.inventoryController.LoadItems,
			)
			inventories.GET("/:id/items", r.inventoryController.GetInventoryItems)
			inventories.GET("/:id/items/by-rack", r.inventoryController.GetItemsByRack)
		}

		item := v1.Group("/item")
		item.Use(r.authMiddleware.Authenticate())
		{
			item.POST("",
				r.authMiddleware.RequireRole(admin, manager),
				r.itemController.CreateItem,
			)
			item.POST("/items/bulk",
				r.authMiddleware.RequireRole(admin, manager),
				r.inventoryController.LoadItemsBulk,
			)
			item.GET("", r.itemController.GetItems)
			item.GET("/:id", r.itemController.GetItem)
			item.PUT("/:id",
				r.authMiddleware.RequireRole(admin, manager),
				r.itemController.UpdateItem,
			)
			item.DELETE("/:id",
				r.authMiddleware.RequireRole(admin),
				r.itemController.DeleteItem,
			)
		}

		categories := v1.Group("/categories")
		categories.Use(r.authMiddleware.Authenticate())
		{
			categories.POST("",
				r.authMiddleware.RequireRole(admin, manager),
				r.categoryController.CreateCategory,
			)
			categories.GET("", r.categoryController.GetCategories)
			categories.GET("/:id", r.categoryController.GetCategory)
			categories.GET("/:id/items", r.categoryController.GetCategoryItems)
			categories.PUT("/:id",
				r.authMiddleware.RequireRole(admin, manager),
				r.categoryController.UpdateCategory,
			)
			categories.DELETE("/:id",
				r.authMiddleware.RequireRole(admin),
				r.categoryController.DeleteCategory,
			)
		}

		transactions := v1.Group("/transactions")
		transactions.Use(r.authMiddleware.Authenticate())
		{
			transactions.POST("",
				r.authMiddleware.RequireRole(admin, manager, cashier),
				r.transactionController.CreateTransaction,
			)
			transactions.GET("/store/:storeId",
				r.authMiddleware.RequireRole(admin, manager, cashier),
				r.transactionController.GetStoreTransactions,
			)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
