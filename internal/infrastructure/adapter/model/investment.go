package model

import (
	"time"
)

// Investment represents the database model for investments
type Investment struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement"`
	OrderID       string     `gorm:"uniqueIndex;not null;size:64"`
	UserID        uint64     `gorm:"not null;index"`
	ProductID     uint64     `gorm:"not null;index"`
	Amount        int64      `gorm:"not null"`
	DailyIncome   int64      `gorm:"not null"`
	Validity      int        `gorm:"not null"`
	DaysRemaining int        `gorm:"not null"`
	TotalEarned   int64      `gorm:"not null;default:0"`
	Status        string     `gorm:"not null;size:20;index"`
	LastClaimedAt *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	Account Account `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Investment
func (Investment) TableName() string {
	return "investments"
}
