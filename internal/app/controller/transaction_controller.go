package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ravelt/retailpos-backend/internal/app/service"
	apperrors "github.com/ravelt/retailpos-backend/internal/errors"
	"github.com/ravelt/retailpos-backend/internal/middleware"
)

type TransactionController struct {
	transactionService service.TransactionService
}

func NewTransactionController(transactionService service.TransactionService) *TransactionController {
	return &TransactionController{transactionService: transactionService}
}

type SaleLineRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gt=0"`
}

type CreateTransactionRequest struct {
	StoreID uint              `json:"store_id" binding:"required"`
	Items   []SaleLineRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateTransaction records a sale and deducts stock
// POST /api/v1/transactions
func (ctrl *TransactionController) CreateTransaction(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cashierID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid transaction request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid transaction data")
		return
	}

	lines := make([]service.SaleLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.SaleLine{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
		})
	}

	transaction, err := ctrl.transactionService.ProcessTransaction(req.StoreID, cashierID, lines)
	if err != nil {
		if errors.Is(err, service.ErrEmptySale) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Transaction must contain at least one item")
			return
		}
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Store not found")
			return
		}
		if errors.Is(err, service.ErrCashierNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Cashier not found")
			return
		}
		var stockErr *service.InsufficientStockError
		if errors.As(err, &stockErr) {
			log.Warn("Transaction rejected: insufficient stock", map[string]interface{}{
				"store_id":  req.StoreID,
				"item_id":   stockErr.ItemID,
				"requested": stockErr.Requested,
				"available": stockErr.Available,
			})
			c.JSON(http.StatusConflict, gin.H{
				"error":     apperrors.StockInsufficient,
				"message":   stockErr.Error(),
				"item_id":   stockErr.ItemID,
				"requested": stockErr.Requested,
				"available": stockErr.Available,
			})
			return
		}
		log.Error("Failed to process transaction", err, map[string]interface{}{
			"store_id":   req.StoreID,
			"cashier_id": cashierID,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Transaction recorded successfully", map[string]interface{}{
		"transaction_id": transaction.ID,
		"store_id":       req.StoreID,
		"cashier_id":     cashierID,
		"total":          transaction.Total,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transaction recorded successfully",
		"transaction": transaction,
	})
}

// GetStoreTransactions lists a store's transactions, optionally date-filtered
// GET /api/v1/transactions/store/:storeId?start_date=2026-01-01&end_date=2026-01-31
func (ctrl *TransactionController) GetStoreTransactions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	storeID, err := strconv.ParseUint(c.Param("storeId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid store ID")
		return
	}

	var startDate, endDate *time.Time
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "start_date must be in YYYY-MM-DD format")
			return
		}
		startDate = &parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "end_date must be in YYYY-MM-DD format")
			return
		}
		// Include the whole end day.
		endOfDay := parsed.Add(24*time.Hour - time.Nanosecond)
		endDate = &endOfDay
	}

	transactions, err := ctrl.transactionService.GetTransactionsByStore(uint(storeID), startDate, endDate)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Store not found")
			return
		}
		log.Error("Failed to list transactions", err, map[string]interface{}{
			"store_id": storeID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"count":        len(transactions),
	})
}
