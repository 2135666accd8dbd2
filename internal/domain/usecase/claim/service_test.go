package claim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	"github.com/aryaseta/reward-engine/internal/domain/usecase/reward"
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

// claimFixture wires a claim Service whose rabat distribution sees the
// claiming user as a chain root unless a test overrides the account lookup
type claimFixture struct {
	accounts     *persistencemocks.MockAccountRepository
	investments  *persistencemocks.MockInvestmentRepository
	txAccounts   *persistencemocks.MockAccountRepository
	txInvest     *persistencemocks.MockInvestmentRepository
	transactions *persistencemocks.MockTransactionRepository
	uow          *persistencemocks.MockUnitOfWork
	service      *Service
}

func newClaimFixture(t *testing.T, now time.Time) *claimFixture {
	t.Helper()

	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(now)

	f := &claimFixture{
		accounts:     new(persistencemocks.MockAccountRepository),
		investments:  new(persistencemocks.MockInvestmentRepository),
		txAccounts:   new(persistencemocks.MockAccountRepository),
		txInvest:     new(persistencemocks.MockInvestmentRepository),
		transactions: new(persistencemocks.MockTransactionRepository),
		uow:          new(persistencemocks.MockUnitOfWork),
	}
	f.uow.On("GetAccountRepository", mock.Anything).Return(f.txAccounts).Maybe()
	f.uow.On("GetInvestmentRepository", mock.Anything).Return(f.txInvest).Maybe()
	f.uow.On("GetTransactionRepository", mock.Anything).Return(f.transactions).Maybe()

	logger := relaxedLogger()
	rewards := reward.NewService(f.accounts, f.uow, mockTime, logger)

	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	f.service = NewService(f.uow, f.investments, rewards, loc, mockTime, logger)
	return f
}

func newClaimableInvestment(id, userID uint64) *entity.Investment {
	return &entity.Investment{
		ID:            id,
		OrderID:       "order-1",
		UserID:        userID,
		ProductID:     1,
		Amount:        100000,
		DailyIncome:   4000,
		Validity:      30,
		DaysRemaining: 10,
		TotalEarned:   80000,
		Status:        entity.InvestmentActive,
	}
}

func TestService_ClaimDaily(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("Claim credits owner and advances the investment", func(t *testing.T) {
		f := newClaimFixture(t, now)
		investment := newClaimableInvestment(5, 7)

		f.investments.On("GetByID", ctx, uint64(5)).Return(investment, nil)
		f.uow.On("Begin", ctx).Return(ctx, nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.txInvest.On("GetByIDForUpdate", ctx, uint64(5)).Return(investment, nil).Once()
		f.txAccounts.On("IncrementFields", ctx, uint64(7), entity.IncomeDelta(4000)).Return(nil).Once()
		f.txInvest.On("Update", ctx, investment).Return(nil).Once()
		f.transactions.On("Create", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.UserID == 7 &&
				tx.Type == entity.TypeIncome &&
				tx.Amount == 4000 &&
				tx.Description == "Daily income, day 21 of 30"
		})).Return(nil).Once()

		// Rabat distribution sees a chain root and pays nothing
		f.accounts.On("GetByID", ctx, uint64(7)).Return(&entity.Account{ID: 7, Name: "Budi", ReferralCode: "BUDI0001"}, nil)

		result, err := f.service.ClaimDaily(ctx, 7, 5)

		require.NoError(t, err)
		assert.Equal(t, uint64(5), result.InvestmentID)
		assert.Equal(t, int64(4000), result.Amount)
		assert.False(t, result.Completed)
		require.NotNil(t, result.Rewards)
		assert.Empty(t, result.Rewards.Rewards)

		assert.Equal(t, 9, investment.DaysRemaining)
		assert.Equal(t, int64(84000), investment.TotalEarned)
		f.uow.AssertExpectations(t)
		f.transactions.AssertExpectations(t)
	})

	t.Run("Last day completes the investment", func(t *testing.T) {
		f := newClaimFixture(t, now)
		investment := newClaimableInvestment(5, 7)
		investment.DaysRemaining = 1

		f.investments.On("GetByID", ctx, uint64(5)).Return(investment, nil)
		f.uow.On("Begin", ctx).Return(ctx, nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.txInvest.On("GetByIDForUpdate", ctx, uint64(5)).Return(investment, nil).Once()
		f.txAccounts.On("IncrementFields", ctx, uint64(7), mock.Anything).Return(nil).Once()
		f.txInvest.On("Update", ctx, investment).Return(nil).Once()
		f.transactions.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.accounts.On("GetByID", ctx, uint64(7)).Return(&entity.Account{ID: 7, Name: "Budi", ReferralCode: "BUDI0001"}, nil)

		result, err := f.service.ClaimDaily(ctx, 7, 5)

		require.NoError(t, err)
		assert.True(t, result.Completed)
		assert.Equal(t, entity.InvestmentCompleted, investment.Status)
	})

	t.Run("Foreign investment is rejected before any mutation", func(t *testing.T) {
		f := newClaimFixture(t, now)
		f.investments.On("GetByID", ctx, uint64(5)).Return(newClaimableInvestment(5, 99), nil)

		result, err := f.service.ClaimDaily(ctx, 7, 5)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInvestmentNotOwned)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("Second claim on the same day is rejected", func(t *testing.T) {
		f := newClaimFixture(t, now)
		investment := newClaimableInvestment(5, 7)
		earlier := now.Add(-2 * time.Hour)
		investment.LastClaimedAt = &earlier

		f.investments.On("GetByID", ctx, uint64(5)).Return(investment, nil)

		result, err := f.service.ClaimDaily(ctx, 7, 5)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrAlreadyClaimedToday)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("Competing claim committed first is caught under the row lock", func(t *testing.T) {
		f := newClaimFixture(t, now)

		// The first read races against another claim and still sees the
		// investment as never claimed, so the cheap gate check passes
		stale := newClaimableInvestment(5, 7)
		f.investments.On("GetByID", ctx, uint64(5)).Return(stale, nil)

		// The locked re-read sees the competing claim's commit
		claimed := newClaimableInvestment(5, 7)
		earlier := now.Add(-1 * time.Minute)
		claimed.LastClaimedAt = &earlier
		claimed.DaysRemaining = 9
		claimed.TotalEarned = 84000

		f.uow.On("Begin", ctx).Return(ctx, nil).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()
		f.txInvest.On("GetByIDForUpdate", ctx, uint64(5)).Return(claimed, nil).Once()

		result, err := f.service.ClaimDaily(ctx, 7, 5)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrAlreadyClaimedToday)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.txAccounts.AssertNotCalled(t, "IncrementFields", mock.Anything, mock.Anything, mock.Anything)
		f.txInvest.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Rabat failure never takes back the claim", func(t *testing.T) {
		f := newClaimFixture(t, now)
		investment := newClaimableInvestment(5, 7)

		f.investments.On("GetByID", ctx, uint64(5)).Return(investment, nil)
		f.uow.On("Begin", ctx).Return(ctx, nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.txInvest.On("GetByIDForUpdate", ctx, uint64(5)).Return(investment, nil).Once()
		f.txAccounts.On("IncrementFields", ctx, uint64(7), mock.Anything).Return(nil).Once()
		f.txInvest.On("Update", ctx, investment).Return(nil).Once()
		f.transactions.On("Create", ctx, mock.Anything).Return(nil).Once()

		// Chain resolution blows up after the claim committed
		f.accounts.On("GetByID", ctx, uint64(7)).Return(nil, errs.ErrDatabaseConnection)

		result, err := f.service.ClaimDaily(ctx, 7, 5)

		require.NoError(t, err)
		assert.Equal(t, int64(4000), result.Amount)
		assert.Nil(t, result.Rewards)
	})

	t.Run("Failed credit rolls back and leaves no claim", func(t *testing.T) {
		f := newClaimFixture(t, now)
		investment := newClaimableInvestment(5, 7)

		f.investments.On("GetByID", ctx, uint64(5)).Return(investment, nil)
		f.uow.On("Begin", ctx).Return(ctx, nil).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()
		f.txInvest.On("GetByIDForUpdate", ctx, uint64(5)).Return(investment, nil).Once()
		f.txAccounts.On("IncrementFields", ctx, uint64(7), mock.Anything).Return(errs.ErrDatabaseConnection).Once()

		result, err := f.service.ClaimDaily(ctx, 7, 5)

		assert.Nil(t, result)
		assert.Error(t, err)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestService_ClaimAll(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("Eligible investments are claimed, ineligible ones skipped", func(t *testing.T) {
		f := newClaimFixture(t, now)

		eligible := newClaimableInvestment(5, 7)
		claimedToday := newClaimableInvestment(6, 7)
		earlier := now.Add(-1 * time.Hour)
		claimedToday.LastClaimedAt = &earlier

		f.investments.On("ListActiveByUser", ctx, uint64(7)).Return([]*entity.Investment{eligible, claimedToday}, nil)
		f.investments.On("GetByID", ctx, uint64(5)).Return(eligible, nil)
		f.investments.On("GetByID", ctx, uint64(6)).Return(claimedToday, nil)

		f.uow.On("Begin", ctx).Return(ctx, nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.txInvest.On("GetByIDForUpdate", ctx, uint64(5)).Return(eligible, nil).Once()
		f.txAccounts.On("IncrementFields", ctx, uint64(7), mock.Anything).Return(nil).Once()
		f.txInvest.On("Update", ctx, eligible).Return(nil).Once()
		f.transactions.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.accounts.On("GetByID", ctx, uint64(7)).Return(&entity.Account{ID: 7, Name: "Budi", ReferralCode: "BUDI0001"}, nil)

		batch, err := f.service.ClaimAll(ctx, 7)

		require.NoError(t, err)
		require.Len(t, batch.Claimed, 1)
		assert.Equal(t, uint64(5), batch.Claimed[0].InvestmentID)
		assert.Equal(t, int64(4000), batch.TotalIncome)
		assert.Equal(t, 1, batch.Skipped)
	})

	t.Run("No active investments yields an empty batch", func(t *testing.T) {
		f := newClaimFixture(t, now)
		f.investments.On("ListActiveByUser", ctx, uint64(7)).Return([]*entity.Investment{}, nil)

		batch, err := f.service.ClaimAll(ctx, 7)

		require.NoError(t, err)
		assert.Empty(t, batch.Claimed)
		assert.Zero(t, batch.TotalIncome)
		assert.Zero(t, batch.Skipped)
	})

	t.Run("List failure aborts the batch", func(t *testing.T) {
		f := newClaimFixture(t, now)
		f.investments.On("ListActiveByUser", ctx, uint64(7)).Return(nil, errs.ErrDatabaseConnection)

		batch, err := f.service.ClaimAll(ctx, 7)

		assert.Nil(t, batch)
		assert.Error(t, err)
	})
}
