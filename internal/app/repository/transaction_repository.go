package repository

import (
	"time"

	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/pkg/logger"
	"gorm.io/gorm"
)

// TransactionFilter bounds a store's transaction listing. Both bounds are
// inclusive when set.
type TransactionFilter struct {
	StoreID   uint
	StartDate *time.Time
	EndDate   *time.Time
}

type TransactionRepository interface {
	FindByID(id uint) (*model.Transaction, error)
	FindByStore(filter TransactionFilter) ([]model.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) FindByID(id uint) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.
		Preload("Store").
		Preload("Cashier").
		Preload("Items.Item").
		First(&transaction, id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepository) FindByStore(filter TransactionFilter) ([]model.Transaction, error) {
	logger.Debug("Finding transactions by store", map[string]interface{}{
		"store_id":   filter.StoreID,
		"start_date": filter.StartDate,
		"end_date":   filter.EndDate,
	})

	query := r.db.
		Preload("Store").
		Preload("Cashier").
		Preload("Items.Item").
		Where("store_id = ?", filter.StoreID)

	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	var transactions []model.Transaction
	if err := query.Order("created_at DESC").Find(&transactions).Error; err != nil {
		logger.Error("Failed to find transactions by store", err, map[string]interface{}{
			"store_id": filter.StoreID,
		})
		return nil, err
	}
	return transactions, nil
}
