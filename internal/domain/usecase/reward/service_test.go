package reward

import (
	"context"
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

// rewardFixture wires a Service over mocks for one three-level chain
type rewardFixture struct {
	accounts     *persistencemocks.MockAccountRepository
	txAccounts   *persistencemocks.MockAccountRepository
	transactions *persistencemocks.MockTransactionRepository
	uow          *persistencemocks.MockUnitOfWork
	service      *Service
}

func newRewardFixture(t *testing.T) *rewardFixture {
	t.Helper()

	fixedTime := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	f := &rewardFixture{
		accounts:     new(persistencemocks.MockAccountRepository),
		txAccounts:   new(persistencemocks.MockAccountRepository),
		transactions: new(persistencemocks.MockTransactionRepository),
		uow:          new(persistencemocks.MockUnitOfWork),
	}
	f.uow.On("GetAccountRepository", mock.Anything).Return(f.txAccounts).Maybe()
	f.uow.On("GetTransactionRepository", mock.Anything).Return(f.transactions).Maybe()
	f.service = NewService(f.accounts, f.uow, mockTime, relaxedLogger())
	return f
}

// stubChain registers a subject with a full A/B/C upline
func (f *rewardFixture) stubChain(ctx context.Context) {
	subject := chainAccount(1, "Budi", "SUBJ0001", "AAAA0001")
	levelA := chainAccount(2, "Ancestor A", "AAAA0001", "BBBB0001")
	levelB := chainAccount(3, "Ancestor B", "BBBB0001", "CCCC0001")
	levelC := chainAccount(4, "Ancestor C", "CCCC0001", "")

	f.accounts.On("GetByID", ctx, uint64(1)).Return(subject, nil)
	f.accounts.On("GetByReferralCode", ctx, "AAAA0001").Return(levelA, nil)
	f.accounts.On("GetByReferralCode", ctx, "BBBB0001").Return(levelB, nil)
	f.accounts.On("GetByReferralCode", ctx, "CCCC0001").Return(levelC, nil)
}

func TestService_ProcessReward_Commission(t *testing.T) {
	ctx := context.Background()
	f := newRewardFixture(t)
	f.stubChain(ctx)

	f.uow.On("Begin", ctx).Return(ctx, nil).Times(3)
	f.uow.On("Commit", ctx).Return(nil).Times(3)

	f.txAccounts.On("IncrementFields", ctx, uint64(2), entity.RewardDelta(entity.EventCommission, 50000)).Return(nil).Once()
	f.txAccounts.On("IncrementFields", ctx, uint64(3), entity.RewardDelta(entity.EventCommission, 15000)).Return(nil).Once()
	f.txAccounts.On("IncrementFields", ctx, uint64(4), entity.RewardDelta(entity.EventCommission, 10000)).Return(nil).Once()

	f.transactions.On("Create", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
		return tx.Type == entity.TypeCommission && tx.Status == entity.StatusSuccess
	})).Return(nil).Times(3)

	summary, err := f.service.ProcessReward(ctx, 1, 500000, entity.EventCommission)

	require.NoError(t, err)
	require.Len(t, summary.Rewards, 3)
	assert.Empty(t, summary.Failures)
	assert.Equal(t, int64(75000), summary.TotalDistributed)
	assert.Equal(t, int64(50000), summary.Rewards[0].Reward)
	assert.Equal(t, int64(15000), summary.Rewards[1].Reward)
	assert.Equal(t, int64(10000), summary.Rewards[2].Reward)

	f.txAccounts.AssertExpectations(t)
	f.transactions.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

func TestService_ProcessReward_Rabat(t *testing.T) {
	ctx := context.Background()
	f := newRewardFixture(t)
	f.stubChain(ctx)

	f.uow.On("Begin", ctx).Return(ctx, nil).Times(3)
	f.uow.On("Commit", ctx).Return(nil).Times(3)

	f.txAccounts.On("IncrementFields", ctx, uint64(2), entity.RewardDelta(entity.EventRabat, 1000)).Return(nil).Once()
	f.txAccounts.On("IncrementFields", ctx, uint64(3), entity.RewardDelta(entity.EventRabat, 600)).Return(nil).Once()
	f.txAccounts.On("IncrementFields", ctx, uint64(4), entity.RewardDelta(entity.EventRabat, 400)).Return(nil).Once()

	f.transactions.On("Create", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
		return tx.Type == entity.TypeRabat
	})).Return(nil).Times(3)

	summary, err := f.service.ProcessReward(ctx, 1, 20000, entity.EventRabat)

	require.NoError(t, err)
	assert.Equal(t, int64(2000), summary.TotalDistributed)
	f.txAccounts.AssertExpectations(t)
}

func TestService_ProcessReward_PartialFailure(t *testing.T) {
	ctx := context.Background()
	f := newRewardFixture(t)
	f.stubChain(ctx)

	// Level B's commit fails; A and C must still be paid
	f.uow.On("Begin", ctx).Return(ctx, nil).Times(3)
	f.uow.On("Commit", ctx).Return(nil).Times(2)
	f.uow.On("Rollback", ctx).Return(nil).Once()

	f.txAccounts.On("IncrementFields", ctx, uint64(2), mock.Anything).Return(nil).Once()
	f.txAccounts.On("IncrementFields", ctx, uint64(3), mock.Anything).Return(errs.ErrDatabaseConnection).Once()
	f.txAccounts.On("IncrementFields", ctx, uint64(4), mock.Anything).Return(nil).Once()

	f.transactions.On("Create", ctx, mock.Anything).Return(nil).Times(2)

	summary, err := f.service.ProcessReward(ctx, 1, 500000, entity.EventCommission)

	require.NoError(t, err)
	require.Len(t, summary.Rewards, 2)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, entity.LevelB, summary.Failures[0].Level)
	assert.Equal(t, uint64(3), summary.Failures[0].AncestorID)
	assert.Equal(t, int64(60000), summary.TotalDistributed)

	f.uow.AssertExpectations(t)
}

func TestService_ProcessReward_ZeroRewardsSkipped(t *testing.T) {
	ctx := context.Background()
	f := newRewardFixture(t)
	f.stubChain(ctx)

	// 10 * 10% = 1 for level A; 10 * 3% and 10 * 2% floor to zero
	f.uow.On("Begin", ctx).Return(ctx, nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.txAccounts.On("IncrementFields", ctx, uint64(2), entity.RewardDelta(entity.EventCommission, 1)).Return(nil).Once()
	f.transactions.On("Create", ctx, mock.Anything).Return(nil).Once()

	summary, err := f.service.ProcessReward(ctx, 1, 10, entity.EventCommission)

	require.NoError(t, err)
	require.Len(t, summary.Rewards, 1)
	assert.Empty(t, summary.Failures)
	assert.Equal(t, int64(1), summary.TotalDistributed)
	f.txAccounts.AssertNotCalled(t, "IncrementFields", ctx, uint64(3), mock.Anything)
	f.txAccounts.AssertNotCalled(t, "IncrementFields", ctx, uint64(4), mock.Anything)
}

func TestService_ProcessReward_ChainRootDistributesNothing(t *testing.T) {
	ctx := context.Background()
	f := newRewardFixture(t)
	f.accounts.On("GetByID", ctx, uint64(1)).Return(chainAccount(1, "Root", "ROOT0001", ""), nil)

	summary, err := f.service.ProcessReward(ctx, 1, 500000, entity.EventCommission)

	require.NoError(t, err)
	assert.Empty(t, summary.Rewards)
	assert.Zero(t, summary.TotalDistributed)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestService_ProcessReward_ResolutionFailureAborts(t *testing.T) {
	ctx := context.Background()
	f := newRewardFixture(t)
	f.accounts.On("GetByID", ctx, uint64(1)).Return(nil, errs.ErrDatabaseConnection)

	summary, err := f.service.ProcessReward(ctx, 1, 500000, entity.EventCommission)

	assert.Nil(t, summary)
	assert.True(t, errs.IsChainResolutionError(err))
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestService_ProcessReward_InvalidInput(t *testing.T) {
	ctx := context.Background()
	f := newRewardFixture(t)

	t.Run("Non-positive base amount", func(t *testing.T) {
		summary, err := f.service.ProcessReward(ctx, 1, 0, entity.EventCommission)

		assert.Nil(t, summary)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Unknown event type", func(t *testing.T) {
		summary, err := f.service.ProcessReward(ctx, 1, 1000, entity.RewardEvent("bonus"))

		assert.Nil(t, summary)
		assert.ErrorIs(t, err, errs.ErrInvalidEventType)
	})

	f.accounts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
