package migration

import (
	"gorm.io/gorm"

	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/model"
)

// Default product catalog seeded on first boot
var defaultProducts = []model.Product{
	{Name: "Starter", Price: 100000, DailyIncome: 4000, Validity: 30, Active: true},
	{Name: "Silver", Price: 500000, DailyIncome: 20000, Validity: 30, Active: true},
	{Name: "Gold", Price: 1500000, DailyIncome: 65000, Validity: 45, Active: true},
	{Name: "Platinum", Price: 5000000, DailyIncome: 230000, Validity: 60, Active: true},
}

// SeedDefaultProducts inserts the default catalog if it is empty
func SeedDefaultProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range defaultProducts {
		if err := db.Create(&defaultProducts[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
