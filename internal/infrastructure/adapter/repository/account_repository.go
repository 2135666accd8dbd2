package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/model"
)

// AccountRepository implements persistence.AccountRepository using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts an account model to a domain entity
func modelToAccount(m *model.Account) *entity.Account {
	return &entity.Account{
		ID:           m.ID,
		Name:         m.Name,
		Phone:        m.Phone,
		Balance:      m.Balance,
		TotalIncome:  m.TotalIncome,
		TeamIncome:   m.TeamIncome,
		RabatIncome:  m.RabatIncome,
		ReferralCode: m.ReferralCode,
		ReferredBy:   m.ReferredBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation string, err error, accountID uint64) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"account_id": accountID,
		"error":      err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrAccountNotFound
	}
	if r.errorClassifier.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), "referral_code") {
			return errs.ErrDuplicateReferralCode
		}
		return errs.ErrDuplicateAccount
	}
	if r.errorClassifier.IsLockError(err) {
		return fmt.Errorf("%w: %s", errs.ErrLockConflict, err.Error())
	}
	if r.errorClassifier.IsConstraintError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*entity.Account, error) {
	var accountModel model.Account
	result := r.db.WithContext(ctx).First(&accountModel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		return nil, r.handleDatabaseError("getting account", result.Error, id)
	}
	return modelToAccount(&accountModel), nil
}

// GetByReferralCode retrieves the account owning the given referral code
func (r *AccountRepository) GetByReferralCode(ctx context.Context, code string) (*entity.Account, error) {
	var accountModel model.Account
	result := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		return nil, r.handleDatabaseError("getting account by referral code", result.Error, 0)
	}
	return modelToAccount(&accountModel), nil
}

// Create creates a new account and backfills the generated ID
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := model.Account{
		Name:         account.Name,
		Phone:        account.Phone,
		Balance:      account.Balance,
		TotalIncome:  account.TotalIncome,
		TeamIncome:   account.TeamIncome,
		RabatIncome:  account.RabatIncome,
		ReferralCode: account.ReferralCode,
		ReferredBy:   account.ReferredBy,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&accountModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating account", result.Error, 0)
	}

	account.ID = accountModel.ID
	r.logger.Info("Account created", map[string]any{
		"account_id":    account.ID,
		"referral_code": account.ReferralCode,
	})
	return nil
}

// IncrementFields atomically adds the delta to the account's ledger columns
// in one UPDATE. The increments happen entirely at the store so concurrent
// reward credits to the same ancestor cannot lose updates.
func (r *AccountRepository) IncrementFields(ctx context.Context, id uint64, delta entity.BalanceDelta) error {
	updates := map[string]any{
		"updated_at": r.timeProvider.Now(),
	}
	if delta.Balance != 0 {
		updates["balance"] = gorm.Expr("balance + ?", delta.Balance)
	}
	if delta.TotalIncome != 0 {
		updates["total_income"] = gorm.Expr("total_income + ?", delta.TotalIncome)
	}
	if delta.TeamIncome != 0 {
		updates["team_income"] = gorm.Expr("team_income + ?", delta.TeamIncome)
	}
	if delta.RabatIncome != 0 {
		updates["rabat_income"] = gorm.Expr("rabat_income + ?", delta.RabatIncome)
	}

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return r.handleDatabaseError("incrementing account fields", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}

	r.logger.Debug("Account fields incremented", map[string]any{
		"account_id":   id,
		"balance":      delta.Balance,
		"total_income": delta.TotalIncome,
		"team_income":  delta.TeamIncome,
		"rabat_income": delta.RabatIncome,
	})
	return nil
}

// DebitBalance atomically subtracts amount, guarded so the balance can never
// go negative: the WHERE clause makes an underfunded debit touch zero rows.
func (r *AccountRepository) DebitBalance(ctx context.Context, id uint64, amount int64) error {
	if amount <= 0 {
		return errs.ErrInvalidAmount
	}

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ? AND balance >= ?", id, amount).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("debiting balance", result.Error, id)
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing account from an underfunded one
		account, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		r.logger.Warn("Insufficient balance for debit", map[string]any{
			"account_id":      id,
			"amount":          amount,
			"current_balance": account.Balance,
		})
		return errs.NewInsufficientBalanceError(id, amount, account.Balance)
	}

	r.logger.Debug("Balance debited", map[string]any{
		"account_id": id,
		"amount":     amount,
	})
	return nil
}
