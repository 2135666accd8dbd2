package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/model"
)

// ProductRepository implements persistence.ProductRepository using GORM
type ProductRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(db *gorm.DB, logger coreport.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

func modelToProduct(m *model.Product) *entity.Product {
	return &entity.Product{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		DailyIncome: m.DailyIncome,
		Validity:    m.Validity,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// GetByID retrieves an active product by ID; inactive products are treated
// as not found so they cannot be purchased
func (r *ProductRepository) GetByID(ctx context.Context, id uint64) (*entity.Product, error) {
	var productModel model.Product
	result := r.db.WithContext(ctx).Where("id = ? AND active = ?", id, true).First(&productModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return modelToProduct(&productModel), nil
}

// ListActive returns all purchasable products
func (r *ProductRepository) ListActive(ctx context.Context) ([]*entity.Product, error) {
	var productModels []model.Product
	result := r.db.WithContext(ctx).Where("active = ?", true).Order("price ASC").Find(&productModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	products := make([]*entity.Product, 0, len(productModels))
	for i := range productModels {
		products = append(products, modelToProduct(&productModels[i]))
	}
	return products, nil
}
