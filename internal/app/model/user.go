package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleManager UserRole = "MANAGER"
	RoleCashier UserRole = "CASHIER"
)

// ValidStaffRole reports whether a role may be assigned through staff creation.
// ADMIN accounts are only created through signup.
func ValidStaffRole(role UserRole) bool {
	return role == RoleManager || role == RoleCashier
}

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Fullname     string         `gorm:"not null" json:"fullname"`
	Role         UserRole       `gorm:"type:varchar(20);default:'CASHIER'" json:"role"`
	ManagerID    *uint          `gorm:"index" json:"manager_id,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Manager *User  `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Staff   []User `gorm:"foreignKey:ManagerID" json:"staff,omitempty"`
}

func (User) TableName() string {
	return "users"
}
