package model

import (
	"time"

	"gorm.io/gorm"
)

type Store struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"uniqueIndex;not null" json:"name"`
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`
	Address       string         `gorm:"type:text" json:"address"`
	Phone         string         `gorm:"type:varchar(30)" json:"phone"`
	GovernmentTax float64        `gorm:"default:0" json:"government_tax"`
	ServiceCharge float64        `gorm:"default:0" json:"service_charge"`
	OutletType    string         `gorm:"type:varchar(50)" json:"outlet_type"`
	WifiSSID      string         `gorm:"type:varchar(100)" json:"wifi_ssid"`
	BranchID      uint           `gorm:"not null;index" json:"branch_id"`
	OwnerID       uint           `gorm:"not null;index" json:"owner_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Branch    Branch       `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Owner     User         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Inventory *Inventory   `gorm:"foreignKey:StoreID" json:"inventory,omitempty"`
	Staffs    []StoreStaff `gorm:"foreignKey:StoreID" json:"staffs,omitempty"`
}

func (Store) TableName() string {
	return "stores"
}

// StoreStaff joins a user to a store with a store-scoped role.
type StoreStaff struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StoreID   uint      `gorm:"not null;index:idx_store_staff,unique" json:"store_id"`
	UserID    uint      `gorm:"not null;index:idx_store_staff,unique" json:"user_id"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	Store Store `gorm:"foreignKey:StoreID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (StoreStaff) TableName() string {
	return "store_staffs"
}
