package reward

import (
	"context"
	"errors"
	"fmt"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	"github.com/aryaseta/reward-engine/internal/domain/port/persistence"
)

// Service is the single entry point of the reward engine. For one triggering
// financial event it resolves the upline, computes tiered rewards and applies
// them ancestor by ancestor in chain order.
type Service struct {
	resolver   *ChainResolver
	applicator *Applicator
	logger     coreport.Logger
}

// NewService wires the resolver and applicator over shared persistence ports
func NewService(
	accounts persistence.AccountRepository,
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		resolver:   NewChainResolver(accounts, logger),
		applicator: NewApplicator(uow, timeProvider, logger),
		logger:     logger,
	}
}

// ProcessReward distributes the tiered rewards for one purchase (commission)
// or one daily claim (rabat).
//
// The triggering financial action has already committed by the time this
// runs; distribution is best-effort relative to it. A store failure during
// chain resolution aborts the whole distribution with no partial credits.
// A failure on one ancestor is recorded in the summary and the remaining
// chain is still processed. Zero-amount rewards write nothing.
func (s *Service) ProcessReward(
	ctx context.Context,
	triggeringUserID uint64,
	baseAmount int64,
	event entity.RewardEvent,
) (*entity.RewardSummary, error) {
	if baseAmount <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if !entity.IsValidRewardEvent(string(event)) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidEventType, event)
	}

	subject, chain, err := s.resolver.Resolve(ctx, triggeringUserID)
	if err != nil {
		s.logger.Error("Reward distribution aborted, chain unresolved", map[string]any{
			"user_id":     triggeringUserID,
			"event":       string(event),
			"base_amount": baseAmount,
			"error":       err.Error(),
		})
		return nil, err
	}

	summary := &entity.RewardSummary{
		Event:   event,
		Rewards: make([]entity.RewardResult, 0, len(chain)),
	}

	// Ancestors are paid strictly in chain order A -> B -> C
	for _, ancestor := range chain {
		amount := Calculate(event, baseAmount, ancestor.Level)
		if amount == 0 {
			s.logger.Debug("Zero reward, ancestor skipped", map[string]any{
				"ancestor_id": ancestor.Account.ID,
				"level":       string(ancestor.Level),
				"base_amount": baseAmount,
			})
			continue
		}

		result, err := s.applicator.Apply(ctx, ancestor, event, amount, subject.Name)
		if err != nil {
			// One ancestor's failure must not block the others
			logFields := map[string]any{"user_id": triggeringUserID}
			var updateErr *errs.AncestorUpdateError
			if errors.As(err, &updateErr) {
				for k, v := range updateErr.LogFields() {
					logFields[k] = v
				}
			} else {
				logFields["error"] = err.Error()
			}
			s.logger.Error("Ancestor not rewarded, continuing chain", logFields)

			summary.Failures = append(summary.Failures, entity.RewardFailure{
				Level:      ancestor.Level,
				AncestorID: ancestor.Account.ID,
				Reason:     err.Error(),
			})
			continue
		}

		summary.Rewards = append(summary.Rewards, *result)
		summary.TotalDistributed += result.Reward
	}

	s.logger.Info("Reward distribution finished", map[string]any{
		"user_id":           triggeringUserID,
		"event":             string(event),
		"base_amount":       baseAmount,
		"rewarded":          len(summary.Rewards),
		"failed":            len(summary.Failures),
		"total_distributed": summary.TotalDistributed,
	})
	return summary, nil
}
