package domain

import "time"

// StartingBalance is the number of diamonds credited to every new account.
const StartingBalance int64 = 1000

// User Model
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FirstName     string    `gorm:"size:50;not null" json:"firstName"`
	LastName      string    `gorm:"size:50;not null" json:"lastName"`
	Username      string    `gorm:"size:30;uniqueIndex;not null" json:"username"` // Unique username
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`            // Unique, stored lowercase
	Password      string    `gorm:"not null" json:"-"`                            // Hashed password, never serialized
	WalletBalance int64     `gorm:"not null;default:1000" json:"walletBalance"`   // Balance in diamonds, never negative
	IsActive      bool      `gorm:"not null;default:true" json:"isActive"`
	LastLogin     time.Time `json:"lastLogin"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
