package persistence

import (
	"context"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
)

// ProductRepository defines read access to the investment product catalog
type ProductRepository interface {
	// GetByID retrieves an active product by ID
	//
	// Possible errors:
	// - ErrProductNotFound: If the product doesn't exist or is inactive
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Product, error)

	// ListActive returns all purchasable products
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListActive(ctx context.Context) ([]*entity.Product, error)
}
