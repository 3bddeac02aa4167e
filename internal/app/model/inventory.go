package model

import (
	"time"

	"gorm.io/gorm"
)

// Inventory is the stock ledger of a store. The unique index on StoreID
// enforces the one-inventory-per-store relationship.
type Inventory struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	StoreID   uint           `gorm:"uniqueIndex;not null" json:"store_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Store Store           `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Items []InventoryItem `gorm:"foreignKey:InventoryID" json:"items,omitempty"`
}

func (Inventory) TableName() string {
	return "inventories"
}

// InventoryItem records how many units of an item an inventory holds.
// Rows are hard-deleted so the composite unique index stays authoritative
// for the upsert path.
type InventoryItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	InventoryID uint      `gorm:"not null;index:idx_inventory_item,unique" json:"inventory_id"`
	ItemID      uint      `gorm:"not null;index:idx_inventory_item,unique" json:"item_id"`
	Quantity    int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Inventory Inventory `gorm:"foreignKey:InventoryID" json:"-"`
	Item      Item      `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Location  *Location `gorm:"foreignKey:InventoryItemID" json:"location,omitempty"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// Location describes the physical placement of one inventory item.
type Location struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	InventoryItemID uint      `gorm:"uniqueIndex;not null" json:"inventory_item_id"`
	Aisle           string    `gorm:"type:varchar(50)" json:"aisle"`
	Rack            string    `gorm:"type:varchar(50);index" json:"rack"`
	Shelf           string    `gorm:"type:varchar(50)" json:"shelf"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Location) TableName() string {
	return "locations"
}
