package main

import (
	"fmt"
	"log"

	"github.com/ravelt/retailpos-backend/config"
	"github.com/ravelt/retailpos-backend/internal/app/repository"
	"github.com/ravelt/retailpos-backend/internal/app/service"
	"github.com/ravelt/retailpos-backend/internal/db"
)

// Seeds a demo dataset: an admin account, one branch with one store, a small
// item catalog and a stocked inventory. Intended for local development.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	gormDB := db.GetDB()
	userRepo := repository.NewUserRepository(gormDB)
	branchRepo := repository.NewBranchRepository(gormDB)
	storeRepo := repository.NewStoreRepository(gormDB)
	inventoryRepo := repository.NewInventoryRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	branchService := service.NewBranchService(branchRepo, gormDB)
	storeService := service.NewStoreService(storeRepo, branchRepo, userRepo, gormDB)
	inventoryService := service.NewInventoryService(inventoryRepo, itemRepo, gormDB)
	categoryService := service.NewCategoryService(categoryRepo, gormDB)
	itemService := service.NewItemService(itemRepo, categoryRepo)

	admin, _, err := authService.Signup(service.SignupInput{
		Email:    "admin@retailpos.local",
		Username: "admin",
		Password: "admin123",
		Fullname: "Demo Admin",
	})
	if err != nil {
		log.Fatal("Failed to create demo admin:", err)
	}
	fmt.Printf("Created admin account %s (id %d)\n", admin.Email, admin.ID)

	branch, err := branchService.CreateBranch("Downtown Branch", "1 Main Street", "555-0100", admin.ID)
	if err != nil {
		log.Fatal("Failed to create demo branch:", err)
	}
	fmt.Printf("Created branch %q (id %d)\n", branch.Name, branch.ID)

	store, err := storeService.CreateStore(service.StoreInput{
		Name:          "Main Street Store",
		Code:          "MSS-001",
		Address:       "1 Main Street",
		Phone:         "555-0101",
		GovernmentTax: 0.10,
		ServiceCharge: 0.05,
		OutletType:    "retail",
	}, branch.ID, admin.ID)
	if err != nil {
		log.Fatal("Failed to create demo store:", err)
	}
	fmt.Printf("Created store %q (id %d) with inventory %d\n", store.Name, store.ID, store.Inventory.ID)

	categories := map[string][]struct {
		name  string
		price float64
	}{
		"Beverages": {
			{"Still Water 500ml", 1.50},
			{"Orange Juice 1L", 3.80},
			{"Cold Brew Coffee", 4.20},
		},
		"Snacks": {
			{"Salted Crisps", 2.10},
			{"Chocolate Bar", 1.90},
		},
		"Household": {
			{"Dish Soap", 3.40},
			{"Paper Towels", 5.60},
		},
	}

	var itemInputs []service.InventoryItemInput
	rack := 1
	for categoryName, items := range categories {
		category, err := categoryService.CreateCategory(categoryName)
		if err != nil {
			log.Fatal("Failed to create category:", err)
		}
		for shelf, it := range items {
			item, err := itemService.CreateItem(it.name, it.price, category.ID)
			if err != nil {
				log.Fatal("Failed to create item:", err)
			}
			itemInputs = append(itemInputs, service.InventoryItemInput{
				ItemID:   item.ID,
				Quantity: 50,
				Location: &service.LocationInput{
					Aisle: "A1",
					Rack:  fmt.Sprintf("R%d", rack),
					Shelf: fmt.Sprintf("S%d", shelf+1),
				},
			})
		}
		rack++
	}
	fmt.Printf("Created %d catalog items in %d categories\n", len(itemInputs), len(categories))

	loaded, err := inventoryService.LoadItems(store.Inventory.ID, itemInputs)
	if err != nil {
		log.Fatal("Failed to stock inventory:", err)
	}
	fmt.Printf("Stocked %d inventory items\n", len(loaded))

	fmt.Println("Seed completed successfully!")
}
