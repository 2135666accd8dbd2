package reward

import (
	"context"

	"github.com/google/uuid"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	"github.com/aryaseta/reward-engine/internal/domain/port/persistence"
)

// Applicator commits one ancestor's reward: the atomic balance and income
// bucket increments plus the paired audit row, inside one unit of work
type Applicator struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewApplicator creates a new Applicator
func NewApplicator(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider, logger coreport.Logger) *Applicator {
	return &Applicator{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Apply credits the ancestor and writes its success-status transaction row.
// The increment is a store-level atomic add, so concurrent distributions
// crediting the same ancestor cannot lose updates. Returns an
// AncestorUpdateError when the commit fails; callers skip to the next
// ancestor rather than aborting the distribution.
func (a *Applicator) Apply(
	ctx context.Context,
	ancestor entity.Ancestor,
	event entity.RewardEvent,
	reward int64,
	triggeredBy string,
) (*entity.RewardResult, error) {
	account := ancestor.Account

	txCtx, err := a.uow.Begin(ctx)
	if err != nil {
		return nil, errs.NewAncestorUpdateError(string(ancestor.Level), account.ID, string(event), reward, err)
	}

	accounts := a.uow.GetAccountRepository(txCtx)
	transactions := a.uow.GetTransactionRepository(txCtx)

	if err := accounts.IncrementFields(txCtx, account.ID, entity.RewardDelta(event, reward)); err != nil {
		_ = a.uow.Rollback(txCtx)
		return nil, errs.NewAncestorUpdateError(string(ancestor.Level), account.ID, string(event), reward, err)
	}

	auditRow, err := entity.NewRewardTransaction(
		uuid.NewString(),
		account.ID,
		event,
		reward,
		ancestor.Level,
		RatePercent(event, ancestor.Level),
		triggeredBy,
		a.timeProvider,
	)
	if err != nil {
		_ = a.uow.Rollback(txCtx)
		return nil, errs.NewAncestorUpdateError(string(ancestor.Level), account.ID, string(event), reward, err)
	}

	if err := transactions.Create(txCtx, auditRow); err != nil {
		_ = a.uow.Rollback(txCtx)
		return nil, errs.NewAncestorUpdateError(string(ancestor.Level), account.ID, string(event), reward, err)
	}

	if err := a.uow.Commit(txCtx); err != nil {
		_ = a.uow.Rollback(txCtx)
		return nil, errs.NewAncestorUpdateError(string(ancestor.Level), account.ID, string(event), reward, err)
	}

	a.logger.Info("Ancestor reward credited", map[string]any{
		"ancestor_id": account.ID,
		"level":       string(ancestor.Level),
		"event":       string(event),
		"reward":      reward,
	})

	return &entity.RewardResult{
		Level:        ancestor.Level,
		AncestorID:   account.ID,
		AncestorName: account.Name,
		Reward:       reward,
	}, nil
}
