package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/model"
)

// InvestmentRepository implements persistence.InvestmentRepository using GORM
type InvestmentRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewInvestmentRepository creates a new InvestmentRepository instance
func NewInvestmentRepository(db *gorm.DB, logger coreport.Logger) *InvestmentRepository {
	return &InvestmentRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func modelToInvestment(m *model.Investment) *entity.Investment {
	return &entity.Investment{
		ID:            m.ID,
		OrderID:       m.OrderID,
		UserID:        m.UserID,
		ProductID:     m.ProductID,
		Amount:        m.Amount,
		DailyIncome:   m.DailyIncome,
		Validity:      m.Validity,
		DaysRemaining: m.DaysRemaining,
		TotalEarned:   m.TotalEarned,
		Status:        entity.InvestmentStatus(m.Status),
		LastClaimedAt: m.LastClaimedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func investmentToModel(i *entity.Investment) model.Investment {
	return model.Investment{
		ID:            i.ID,
		OrderID:       i.OrderID,
		UserID:        i.UserID,
		ProductID:     i.ProductID,
		Amount:        i.Amount,
		DailyIncome:   i.DailyIncome,
		Validity:      i.Validity,
		DaysRemaining: i.DaysRemaining,
		TotalEarned:   i.TotalEarned,
		Status:        string(i.Status),
		LastClaimedAt: i.LastClaimedAt,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func (r *InvestmentRepository) handleDatabaseError(operation string, err error, investmentID uint64) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"investment_id": investmentID,
		"error":         err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrInvestmentNotFound
	}
	if r.errorClassifier.IsLockError(err) {
		return fmt.Errorf("%w: %s", errs.ErrLockConflict, err.Error())
	}
	if r.errorClassifier.IsConstraintError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new investment and backfills the generated ID
func (r *InvestmentRepository) Create(ctx context.Context, investment *entity.Investment) error {
	investmentModel := investmentToModel(investment)

	result := r.db.WithContext(ctx).Create(&investmentModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating investment", result.Error, 0)
	}

	investment.ID = investmentModel.ID
	return nil
}

// GetByID retrieves an investment by ID
func (r *InvestmentRepository) GetByID(ctx context.Context, id uint64) (*entity.Investment, error) {
	var investmentModel model.Investment
	result := r.db.WithContext(ctx).First(&investmentModel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrInvestmentNotFound
		}
		return nil, r.handleDatabaseError("getting investment", result.Error, id)
	}
	return modelToInvestment(&investmentModel), nil
}

// GetByIDForUpdate retrieves an investment under FOR UPDATE. The row stays
// locked until the surrounding transaction commits or rolls back, which
// serializes same-day claims on the same investment.
func (r *InvestmentRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Investment, error) {
	var investmentModel model.Investment
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&investmentModel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrInvestmentNotFound
		}
		return nil, r.handleDatabaseError("locking investment", result.Error, id)
	}
	return modelToInvestment(&investmentModel), nil
}

// ListActiveByUser returns the user's active investments, oldest first
func (r *InvestmentRepository) ListActiveByUser(ctx context.Context, userID uint64) ([]*entity.Investment, error) {
	var investmentModels []model.Investment
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entity.InvestmentActive)).
		Order("id ASC").
		Find(&investmentModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing active investments", result.Error, 0)
	}

	investments := make([]*entity.Investment, 0, len(investmentModels))
	for i := range investmentModels {
		investments = append(investments, modelToInvestment(&investmentModels[i]))
	}
	return investments, nil
}

// Update persists claim-state changes
func (r *InvestmentRepository) Update(ctx context.Context, investment *entity.Investment) error {
	result := r.db.WithContext(ctx).Model(&model.Investment{}).
		Where("id = ?", investment.ID).
		Updates(map[string]any{
			"total_earned":    investment.TotalEarned,
			"days_remaining":  investment.DaysRemaining,
			"status":          string(investment.Status),
			"last_claimed_at": investment.LastClaimedAt,
			"updated_at":      investment.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating investment", result.Error, investment.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrInvestmentNotFound
	}
	return nil
}
