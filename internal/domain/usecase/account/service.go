package account

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	"github.com/aryaseta/reward-engine/internal/domain/port/persistence"
)

const (
	referralCodeLength   = 8
	referralCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// How many collisions we tolerate before giving up on code generation
	maxCodeAttempts = 5
)

// Service implements account lifecycle and the simple ledger flows
// (recharge, withdraw request, balance and history reads)
type Service struct {
	uow          persistence.UnitOfWork
	accounts     persistence.AccountRepository
	transactions persistence.TransactionRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the account service
func NewService(
	uow persistence.UnitOfWork,
	accounts persistence.AccountRepository,
	transactions persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		accounts:     accounts,
		transactions: transactions,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CreateAccount registers an account with a fresh unique referral code.
// An unknown referredBy code is dropped with a warning and the account is
// still created as a chain root; lenient, matching chain truncation.
func (s *Service) CreateAccount(ctx context.Context, name, phone, referredBy string) (*entity.Account, error) {
	if referredBy != "" {
		if _, err := s.accounts.GetByReferralCode(ctx, referredBy); err != nil {
			if !errs.IsNotFoundError(err) {
				return nil, fmt.Errorf("validate upline code: %w", err)
			}
			s.logger.Warn("Unknown upline referral code, registering as chain root", map[string]any{
				"phone":       phone,
				"referred_by": referredBy,
			})
			referredBy = ""
		}
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateReferralCode()
		if err != nil {
			return nil, fmt.Errorf("%w: generate referral code: %s", errs.ErrInternalServer, err.Error())
		}

		acc, err := entity.NewAccount(name, phone, code, referredBy, s.timeProvider)
		if err != nil {
			return nil, err
		}

		if err := s.accounts.Create(ctx, acc); err != nil {
			if errors.Is(err, errs.ErrDuplicateReferralCode) {
				continue
			}
			return nil, err
		}

		s.logger.Info("Account created", map[string]any{
			"account_id":    acc.ID,
			"referral_code": acc.ReferralCode,
			"has_upline":    acc.HasUpline(),
		})
		return acc, nil
	}
	return nil, errs.ErrDuplicateReferralCode
}

// GetBalance returns the account's current ledger snapshot
func (s *Service) GetBalance(ctx context.Context, userID uint64) (*entity.Account, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	return s.accounts.GetByID(ctx, userID)
}

// ListTransactions returns the account's ledger history, newest first
func (s *Service) ListTransactions(ctx context.Context, userID uint64, limit int) ([]*entity.Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	return s.transactions.ListByUser(ctx, userID, limit)
}

// Recharge credits the account balance and writes the paired success row
func (s *Service) Recharge(ctx context.Context, userID uint64, amount int64) (*entity.Transaction, error) {
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin recharge transaction: %w", err)
	}

	accounts := s.uow.GetAccountRepository(txCtx)
	transactions := s.uow.GetTransactionRepository(txCtx)

	if err := accounts.IncrementFields(txCtx, userID, entity.BalanceDelta{Balance: amount}); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("credit recharge: %w", err)
	}

	auditRow, err := entity.NewTransaction(
		uuid.NewString(),
		userID,
		entity.TypeRecharge,
		amount,
		entity.StatusSuccess,
		"Balance recharge",
		s.timeProvider,
	)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := transactions.Create(txCtx, auditRow); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("write recharge transaction: %w", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("commit recharge: %w", err)
	}

	s.logger.Info("Balance recharged", map[string]any{
		"account_id": userID,
		"amount":     amount,
	})
	return auditRow, nil
}

// RequestWithdraw debits the balance immediately and leaves the withdraw row
// pending; approval happens outside this service
func (s *Service) RequestWithdraw(ctx context.Context, userID uint64, amount int64) (*entity.Transaction, error) {
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin withdraw transaction: %w", err)
	}

	accounts := s.uow.GetAccountRepository(txCtx)
	transactions := s.uow.GetTransactionRepository(txCtx)

	if err := accounts.DebitBalance(txCtx, userID, amount); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	auditRow, err := entity.NewTransaction(
		uuid.NewString(),
		userID,
		entity.TypeWithdraw,
		amount,
		entity.StatusPending,
		"Withdraw request",
		s.timeProvider,
	)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := transactions.Create(txCtx, auditRow); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("write withdraw transaction: %w", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("commit withdraw: %w", err)
	}

	s.logger.Info("Withdraw requested", map[string]any{
		"account_id": userID,
		"amount":     amount,
		"reference":  auditRow.Reference,
	})
	return auditRow, nil
}

// generateReferralCode builds a short random code from an alphabet without
// easily-confused characters
func generateReferralCode() (string, error) {
	buf := make([]byte, referralCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = referralCodeAlphabet[int(b)%len(referralCodeAlphabet)]
	}
	return string(buf), nil
}
