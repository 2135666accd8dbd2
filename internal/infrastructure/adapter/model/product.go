package model

import (
	"time"
)

// Product represents the database model for the investment catalog
type Product struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"not null;size:100"`
	Price       int64     `gorm:"not null"`
	DailyIncome int64     `gorm:"not null"`
	Validity    int       `gorm:"not null"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}
