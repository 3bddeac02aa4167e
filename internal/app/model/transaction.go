package model

import (
	"time"

	"gorm.io/gorm"
)

// Transaction is a recorded point-of-sale event. Creating one deducts stock
// and produces one CartItem per sold line.
type Transaction struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	StoreID   uint           `gorm:"not null;index" json:"store_id"`
	CashierID uint           `gorm:"not null;index" json:"cashier_id"`
	Total     float64        `gorm:"not null" json:"total"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Store   Store      `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Cashier User       `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`
	Items   []CartItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// CartItem records one sold line of a transaction.
type CartItem struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TransactionID uint      `gorm:"not null;index" json:"transaction_id"`
	ItemID        uint      `gorm:"not null;index" json:"item_id"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	CreatedAt     time.Time `json:"created_at"`

	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	Item        Item        `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
