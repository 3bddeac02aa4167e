package model

import (
	"time"

	"gorm.io/gorm"
)

// Item is a product definition, independent of any specific store.
type Item struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"uniqueIndex;not null" json:"name"`
	Price      float64        `gorm:"not null" json:"price"`
	CategoryID uint           `gorm:"not null;index" json:"category_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Item) TableName() string {
	return "items"
}
