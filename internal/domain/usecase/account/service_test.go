package account

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coremocks "github.com/aryaseta/reward-engine/mocks/port/core"
	persistencemocks "github.com/aryaseta/reward-engine/mocks/port/persistence"
)

// relaxedLogger accepts any log call without asserting on it
func relaxedLogger() *coremocks.MockLogger {
	logger := new(coremocks.MockLogger)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()
	return logger
}

type accountFixture struct {
	accounts     *persistencemocks.MockAccountRepository
	transactions *persistencemocks.MockTransactionRepository
	txAccounts   *persistencemocks.MockAccountRepository
	txLedger     *persistencemocks.MockTransactionRepository
	uow          *persistencemocks.MockUnitOfWork
	service      *Service
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	fixedTime := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	f := &accountFixture{
		accounts:     new(persistencemocks.MockAccountRepository),
		transactions: new(persistencemocks.MockTransactionRepository),
		txAccounts:   new(persistencemocks.MockAccountRepository),
		txLedger:     new(persistencemocks.MockTransactionRepository),
		uow:          new(persistencemocks.MockUnitOfWork),
	}
	f.uow.On("GetAccountRepository", mock.Anything).Return(f.txAccounts).Maybe()
	f.uow.On("GetTransactionRepository", mock.Anything).Return(f.txLedger).Maybe()

	f.service = NewService(f.uow, f.accounts, f.transactions, mockTime, relaxedLogger())
	return f
}

// validReferralCode checks the shape of a generated code
func validReferralCode(code string) bool {
	if len(code) != referralCodeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(referralCodeAlphabet, r) {
			return false
		}
	}
	return true
}

func TestService_CreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Chain root gets a fresh referral code", func(t *testing.T) {
		f := newAccountFixture(t)
		f.accounts.On("Create", ctx, mock.MatchedBy(func(acc *entity.Account) bool {
			return acc.Name == "Budi" &&
				acc.Phone == "0812000111" &&
				acc.ReferredBy == "" &&
				validReferralCode(acc.ReferralCode)
		})).Return(nil).Once()

		acc, err := f.service.CreateAccount(ctx, "Budi", "0812000111", "")

		require.NoError(t, err)
		assert.False(t, acc.HasUpline())
		f.accounts.AssertNotCalled(t, "GetByReferralCode", mock.Anything, mock.Anything)
	})

	t.Run("Known upline code is kept", func(t *testing.T) {
		f := newAccountFixture(t)
		upline := &entity.Account{ID: 2, Name: "Sari", ReferralCode: "UPLN0001"}
		f.accounts.On("GetByReferralCode", ctx, "UPLN0001").Return(upline, nil)
		f.accounts.On("Create", ctx, mock.MatchedBy(func(acc *entity.Account) bool {
			return acc.ReferredBy == "UPLN0001"
		})).Return(nil).Once()

		acc, err := f.service.CreateAccount(ctx, "Budi", "0812000111", "UPLN0001")

		require.NoError(t, err)
		assert.True(t, acc.HasUpline())
	})

	t.Run("Unknown upline code registers a chain root", func(t *testing.T) {
		f := newAccountFixture(t)
		f.accounts.On("GetByReferralCode", ctx, "GONE0001").Return(nil, errs.ErrAccountNotFound)
		f.accounts.On("Create", ctx, mock.MatchedBy(func(acc *entity.Account) bool {
			return acc.ReferredBy == ""
		})).Return(nil).Once()

		acc, err := f.service.CreateAccount(ctx, "Budi", "0812000111", "GONE0001")

		require.NoError(t, err)
		assert.False(t, acc.HasUpline())
	})

	t.Run("Referral code collision is retried", func(t *testing.T) {
		f := newAccountFixture(t)
		f.accounts.On("Create", ctx, mock.Anything).Return(errs.ErrDuplicateReferralCode).Once()
		f.accounts.On("Create", ctx, mock.Anything).Return(nil).Once()

		acc, err := f.service.CreateAccount(ctx, "Budi", "0812000111", "")

		require.NoError(t, err)
		assert.NotNil(t, acc)
		f.accounts.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("Duplicate phone is not retried", func(t *testing.T) {
		f := newAccountFixture(t)
		f.accounts.On("Create", ctx, mock.Anything).Return(errs.ErrDuplicateAccount).Once()

		acc, err := f.service.CreateAccount(ctx, "Budi", "0812000111", "")

		assert.Nil(t, acc)
		assert.True(t, errs.IsDuplicateAccountError(err))
		f.accounts.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("Missing name is rejected", func(t *testing.T) {
		f := newAccountFixture(t)

		acc, err := f.service.CreateAccount(ctx, "", "0812000111", "")

		assert.Nil(t, acc)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		f.accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_GetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the ledger snapshot", func(t *testing.T) {
		f := newAccountFixture(t)
		acc := &entity.Account{ID: 7, Balance: 120000, TotalIncome: 20000, TeamIncome: 15000, RabatIncome: 5000}
		f.accounts.On("GetByID", ctx, uint64(7)).Return(acc, nil)

		got, err := f.service.GetBalance(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, acc, got)
	})

	t.Run("Zero ID is rejected", func(t *testing.T) {
		f := newAccountFixture(t)

		got, err := f.service.GetBalance(ctx, 0)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, errs.ErrInvalidAccountID)
	})
}

func TestService_Recharge(t *testing.T) {
	ctx := context.Background()

	t.Run("Recharge credits balance and writes a success row", func(t *testing.T) {
		f := newAccountFixture(t)
		f.uow.On("Begin", ctx).Return(ctx, nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.txAccounts.On("IncrementFields", ctx, uint64(7), entity.BalanceDelta{Balance: 50000}).Return(nil).Once()
		f.txLedger.On("Create", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Type == entity.TypeRecharge &&
				tx.Amount == 50000 &&
				tx.Status == entity.StatusSuccess
		})).Return(nil).Once()

		tx, err := f.service.Recharge(ctx, 7, 50000)

		require.NoError(t, err)
		assert.Equal(t, entity.TypeRecharge, tx.Type)
		f.uow.AssertExpectations(t)
	})

	t.Run("Non-positive amount is rejected", func(t *testing.T) {
		f := newAccountFixture(t)

		tx, err := f.service.Recharge(ctx, 7, 0)

		assert.Nil(t, tx)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("Unknown account rolls back", func(t *testing.T) {
		f := newAccountFixture(t)
		f.uow.On("Begin", ctx).Return(ctx, nil).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()
		f.txAccounts.On("IncrementFields", ctx, uint64(99), mock.Anything).Return(errs.ErrAccountNotFound).Once()

		tx, err := f.service.Recharge(ctx, 99, 50000)

		assert.Nil(t, tx)
		assert.True(t, errs.IsAccountNotFoundError(err))
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestService_RequestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("Withdraw debits immediately and stays pending", func(t *testing.T) {
		f := newAccountFixture(t)
		f.uow.On("Begin", ctx).Return(ctx, nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.txAccounts.On("DebitBalance", ctx, uint64(7), int64(30000)).Return(nil).Once()
		f.txLedger.On("Create", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Type == entity.TypeWithdraw &&
				tx.Amount == 30000 &&
				tx.Status == entity.StatusPending
		})).Return(nil).Once()

		tx, err := f.service.RequestWithdraw(ctx, 7, 30000)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, tx.Status)
		f.uow.AssertExpectations(t)
	})

	t.Run("Insufficient balance rolls back without a ledger row", func(t *testing.T) {
		f := newAccountFixture(t)
		f.uow.On("Begin", ctx).Return(ctx, nil).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()
		f.txAccounts.On("DebitBalance", ctx, uint64(7), int64(900000)).
			Return(errs.NewInsufficientBalanceError(7, 900000, 120000)).Once()

		tx, err := f.service.RequestWithdraw(ctx, 7, 900000)

		assert.Nil(t, tx)
		assert.True(t, errs.IsInsufficientBalanceError(err))
		f.txLedger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_ListTransactions(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	history := []*entity.Transaction{
		{ID: 2, Type: entity.TypeIncome, Amount: 4000},
		{ID: 1, Type: entity.TypeRecharge, Amount: 100000},
	}
	f.transactions.On("ListByUser", ctx, uint64(7), 20).Return(history, nil)

	got, err := f.service.ListTransactions(ctx, 7, 20)

	require.NoError(t, err)
	assert.Equal(t, history, got)
}
