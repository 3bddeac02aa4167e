package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/internal/app/repository"
	"github.com/ravelt/retailpos-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrStoreNotFound     = errors.New("store not found")
	ErrCashierNotFound   = errors.New("cashier not found")
	ErrEmptySale         = errors.New("sale contains no items")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports which item could not be sold. It matches
// ErrInsufficientStock under errors.Is.
type InsufficientStockError struct {
	ItemID    uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item ID %d: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// SaleLine is one sold item of an incoming sale.
type SaleLine struct {
	ItemID   uint
	Quantity int
}

type TransactionService interface {
	ProcessTransaction(storeID, cashierID uint, lines []SaleLine) (*model.Transaction, error)
	GetTransactionsByStore(storeID uint, startDate, endDate *time.Time) ([]model.Transaction, error)
}

type transactionService struct {
	transactionRepo repository.TransactionRepository
	inventoryRepo   repository.InventoryRepository
	userRepo        repository.UserRepository
	db              *gorm.DB
}

func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	inventoryRepo repository.InventoryRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
) TransactionService {
	return &transactionService{
		transactionRepo: transactionRepo,
		inventoryRepo:   inventoryRepo,
		userRepo:        userRepo,
		db:              db,
	}
}

// ProcessTransaction deducts every sold line from the store's inventory and
// records the transaction with its cart items, all inside one database
// transaction. Any failing line aborts the whole sale.
func (s *transactionService) ProcessTransaction(storeID, cashierID uint, lines []SaleLine) (*model.Transaction, error) {
	logger.Info("Processing sale transaction", map[string]interface{}{
		"store_id":   storeID,
		"cashier_id": cashierID,
		"line_count": len(lines),
	})

	if len(lines) == 0 {
		return nil, ErrEmptySale
	}

	inventory, err := s.inventoryRepo.FindByStoreID(storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Sale rejected: store has no inventory", map[string]interface{}{
				"store_id": storeID,
			})
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	if _, err := s.userRepo.FindByID(cashierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Sale rejected: cashier does not exist", map[string]interface{}{
				"cashier_id": cashierID,
			})
			return nil, ErrCashierNotFound
		}
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during sale processing, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"store_id": storeID,
			})
		}
	}()

	var (
		total     float64
		cartItems []model.CartItem
	)

	for _, line := range lines {
		var inventoryItem model.InventoryItem
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("inventory_id = ? AND item_id = ?", inventory.ID, line.ItemID).
			First(&inventoryItem).Error
		if err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Sale rejected: item not stocked in inventory", map[string]interface{}{
					"inventory_id": inventory.ID,
					"item_id":      line.ItemID,
				})
				return nil, &InsufficientStockError{ItemID: line.ItemID, Requested: line.Quantity, Available: 0}
			}
			logger.Error("Failed to fetch inventory item during sale", err, map[string]interface{}{
				"inventory_id": inventory.ID,
				"item_id":      line.ItemID,
			})
			return nil, err
		}

		if inventoryItem.Quantity < line.Quantity {
			tx.Rollback()
			logger.Warn("Sale rejected: insufficient stock", map[string]interface{}{
				"inventory_id": inventory.ID,
				"item_id":      line.ItemID,
				"requested":    line.Quantity,
				"available":    inventoryItem.Quantity,
			})
			return nil, &InsufficientStockError{
				ItemID:    line.ItemID,
				Requested: line.Quantity,
				Available: inventoryItem.Quantity,
			}
		}

		var item model.Item
		if err := tx.First(&item, line.ItemID).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to fetch item during sale", err, map[string]interface{}{
				"item_id": line.ItemID,
			})
			return nil, err
		}

		// The row is locked, but the decrement is still guarded so a quantity
		// can never go negative even without lock support.
		result := tx.Model(&model.InventoryItem{}).
			Where("id = ? AND quantity >= ?", inventoryItem.ID, line.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", line.Quantity))
		if result.Error != nil {
			tx.Rollback()
			logger.Error("Failed to deduct stock during sale", result.Error, map[string]interface{}{
				"inventory_item_id": inventoryItem.ID,
			})
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return nil, &InsufficientStockError{
				ItemID:    line.ItemID,
				Requested: line.Quantity,
				Available: inventoryItem.Quantity,
			}
		}

		cartItems = append(cartItems, model.CartItem{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
		total += item.Price * float64(line.Quantity)
	}

	transaction := &model.Transaction{
		StoreID:   storeID,
		CashierID: cashierID,
		Total:     total,
		Items:     cartItems,
	}

	if err := tx.Create(transaction).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create transaction record", err, map[string]interface{}{
			"store_id": storeID,
			"total":    total,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit sale transaction", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}

	logger.Info("Sale transaction processed successfully", map[string]interface{}{
		"transaction_id": transaction.ID,
		"store_id":       storeID,
		"cashier_id":     cashierID,
		"total":          total,
		"line_count":     len(cartItems),
	})

	return s.transactionRepo.FindByID(transaction.ID)
}

func (s *transactionService) GetTransactionsByStore(storeID uint, startDate, endDate *time.Time) ([]model.Transaction, error) {
	logger.Debug("Fetching transactions for store", map[string]interface{}{
		"store_id": storeID,
	})

	transactions, err := s.transactionRepo.FindByStore(repository.TransactionFilter{
		StoreID:   storeID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		logger.Error("Failed to fetch transactions for store", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}

	logger.Info("Transactions fetched successfully", map[string]interface{}{
		"store_id": storeID,
		"count":    len(transactions),
	})
	return transactions, nil
}
