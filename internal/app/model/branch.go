package model

import (
	"time"

	"gorm.io/gorm"
)

type Branch struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Address   string         `gorm:"not null" json:"address"`
	Phone     string         `gorm:"type:varchar(30)" json:"phone"`
	OwnerID   uint           `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Owner  User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Stores []Store `gorm:"foreignKey:BranchID" json:"stores,omitempty"`
}

func (Branch) TableName() string {
	return "branches"
}
