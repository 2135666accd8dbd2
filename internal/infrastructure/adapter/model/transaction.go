package model

import (
	"time"
)

// Transaction represents the database model for the append-only ledger
type Transaction struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Reference   string    `gorm:"uniqueIndex;not null;size:64"`
	UserID      uint64    `gorm:"not null;index"`
	Type        string    `gorm:"not null;size:20;index"`
	Amount      int64     `gorm:"not null"`
	Status      string    `gorm:"not null;size:20"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;index"`

	Account Account `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
