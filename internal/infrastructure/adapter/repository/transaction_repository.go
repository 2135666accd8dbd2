package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func modelToTransaction(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		Reference:   m.Reference,
		UserID:      m.UserID,
		Type:        entity.TransactionType(m.Type),
		Amount:      m.Amount,
		Status:      entity.TransactionStatus(m.Status),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

// Create appends a ledger row and backfills the generated ID
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.Transaction{
		Reference:   transaction.Reference,
		UserID:      transaction.UserID,
		Type:        string(transaction.Type),
		Amount:      transaction.Amount,
		Status:      string(transaction.Status),
		Description: transaction.Description,
		CreatedAt:   transaction.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&transactionModel)
	if result.Error != nil {
		if r.errorClassifier.IsConstraintError(result.Error) {
			r.logger.Error("Ledger constraint violated", map[string]any{
				"reference": transaction.Reference,
				"user_id":   transaction.UserID,
				"error":     result.Error.Error(),
			})
			return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, result.Error.Error())
		}
		r.logger.Error("Failed to create transaction", map[string]any{
			"reference": transaction.Reference,
			"user_id":   transaction.UserID,
			"error":     result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transaction.ID = transactionModel.ID
	return nil
}

// ListByUser retrieves the user's transactions, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.Transaction, error) {
	var transactionModels []model.Transaction

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	result := query.Find(&transactionModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transactions := make([]*entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, modelToTransaction(&transactionModels[i]))
	}
	return transactions, nil
}
