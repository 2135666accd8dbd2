package entity

import "time"

// Product is an entry in the investment product catalog. The engine only
// reads the catalog; product administration lives outside this service.
type Product struct {
	ID          uint64    // Unique identifier for the product
	Name        string    // Display name
	Price       int64     // Purchase price (investment principal)
	DailyIncome int64     // Fixed payout per claimed day
	Validity    int       // Total payout days
	Active      bool      // Whether the product is purchasable
	CreatedAt   time.Time // When the product was created
	UpdatedAt   time.Time // When the product was last updated
}
