package model

import (
	"time"
)

// Account represents the database model for accounts
type Account struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"not null;size:100"`
	Phone        string    `gorm:"uniqueIndex;not null;size:20"`
	Balance      int64     `gorm:"not null;default:0"`
	TotalIncome  int64     `gorm:"not null;default:0"`
	TeamIncome   int64     `gorm:"not null;default:0"`
	RabatIncome  int64     `gorm:"not null;default:0"`
	ReferralCode string    `gorm:"uniqueIndex;not null;size:16"`
	ReferredBy   string    `gorm:"index;size:16"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
