package claim

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	"github.com/aryaseta/reward-engine/internal/domain/port/persistence"
	"github.com/aryaseta/reward-engine/internal/domain/usecase/reward"
)

// Result describes one successful daily claim
type Result struct {
	InvestmentID uint64                `json:"investmentId"`
	Amount       int64                 `json:"amount"`
	Completed    bool                  `json:"completed"`
	Rewards      *entity.RewardSummary `json:"rewards,omitempty"`
}

// BatchResult aggregates a claim-all run; per-investment failures are
// reported, never propagated, so one bad investment cannot block the rest
type BatchResult struct {
	Claimed     []Result `json:"claimed"`
	TotalIncome int64    `json:"totalIncome"`
	Skipped     int      `json:"skipped"`
}

// Service implements the daily income claim flows
type Service struct {
	uow          persistence.UnitOfWork
	investments  persistence.InvestmentRepository
	gate         *Gate
	rewards      *reward.Service
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the claim service bound to the business timezone
func NewService(
	uow persistence.UnitOfWork,
	investments persistence.InvestmentRepository,
	rewards *reward.Service,
	location *time.Location,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		investments:  investments,
		gate:         NewGate(location, timeProvider),
		rewards:      rewards,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ClaimDaily credits one investment's daily income to its owner.
//
// Eligibility is checked twice: once on a plain read so ineligible claims
// are rejected without opening a transaction, and again on a FOR UPDATE
// re-read inside the unit of work, where the row lock makes the check
// authoritative against concurrent claims of the same investment. The
// credit, the investment state advance and the income audit row commit in
// one unit of work; only after that commit does rabat distribution run,
// best-effort, so a reward failure can never take back the investor's own
// income.
func (s *Service) ClaimDaily(ctx context.Context, userID, investmentID uint64) (*Result, error) {
	investment, err := s.investments.GetByID(ctx, investmentID)
	if err != nil {
		return nil, fmt.Errorf("load investment: %w", err)
	}
	if investment.UserID != userID {
		return nil, errs.ErrInvestmentNotOwned
	}

	if err := s.gate.CanClaim(investment); err != nil {
		return nil, err
	}

	investment, err = s.creditOwner(ctx, investmentID)
	if err != nil {
		return nil, err
	}

	amount := investment.DailyIncome
	result := &Result{
		InvestmentID: investment.ID,
		Amount:       amount,
		Completed:    !investment.IsActive(),
	}

	// Fire-and-forget relative to the claim: a distribution failure degrades
	// to "referrer under-paid", never to a lost claim
	summary, err := s.rewards.ProcessReward(ctx, userID, amount, entity.EventRabat)
	if err != nil {
		s.logger.Error("Rabat distribution failed after claim", map[string]any{
			"user_id":       userID,
			"investment_id": investment.ID,
			"amount":        amount,
			"error":         err.Error(),
		})
	} else {
		result.Rewards = summary
	}

	return result, nil
}

// ClaimAll claims every eligible active investment owned by the user,
// sequentially and independently
func (s *Service) ClaimAll(ctx context.Context, userID uint64) (*BatchResult, error) {
	investments, err := s.investments.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list active investments: %w", err)
	}

	batch := &BatchResult{Claimed: make([]Result, 0, len(investments))}
	for _, investment := range investments {
		result, err := s.ClaimDaily(ctx, userID, investment.ID)
		if err != nil {
			batch.Skipped++
			if errs.IsClaimNotEligibleError(err) {
				continue
			}
			s.logger.Error("Claim failed in batch, continuing", map[string]any{
				"user_id":       userID,
				"investment_id": investment.ID,
				"error":         err.Error(),
			})
			continue
		}
		batch.Claimed = append(batch.Claimed, *result)
		batch.TotalIncome += result.Amount
	}

	s.logger.Info("Batch claim finished", map[string]any{
		"user_id":      userID,
		"claimed":      len(batch.Claimed),
		"skipped":      batch.Skipped,
		"total_income": batch.TotalIncome,
	})
	return batch, nil
}

// creditOwner commits the investor's own income: balance + total_income
// increments, investment state advance, and the paired income audit row.
// The locked re-read is what holds the once-per-calendar-day invariant: a
// competing claim that committed first is visible here and fails the gate.
func (s *Service) creditOwner(ctx context.Context, investmentID uint64) (*entity.Investment, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin claim transaction: %w", err)
	}

	accounts := s.uow.GetAccountRepository(txCtx)
	investments := s.uow.GetInvestmentRepository(txCtx)
	transactions := s.uow.GetTransactionRepository(txCtx)

	investment, err := investments.GetByIDForUpdate(txCtx, investmentID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("lock investment: %w", err)
	}
	if err := s.gate.CanClaim(investment); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	amount := investment.DailyIncome
	if err := accounts.IncrementFields(txCtx, investment.UserID, entity.IncomeDelta(amount)); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("credit daily income: %w", err)
	}

	if err := investment.ApplyDailyClaim(s.timeProvider); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := investments.Update(txCtx, investment); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("advance investment state: %w", err)
	}

	description := fmt.Sprintf("Daily income, day %d of %d", investment.Validity-investment.DaysRemaining, investment.Validity)
	auditRow, err := entity.NewTransaction(
		uuid.NewString(),
		investment.UserID,
		entity.TypeIncome,
		amount,
		entity.StatusSuccess,
		description,
		s.timeProvider,
	)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := transactions.Create(txCtx, auditRow); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("write income transaction: %w", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("commit claim: %w", err)
	}

	s.logger.Info("Daily income claimed", map[string]any{
		"user_id":        investment.UserID,
		"investment_id":  investment.ID,
		"amount":         amount,
		"days_remaining": investment.DaysRemaining,
		"status":         string(investment.Status),
	})
	return investment, nil
}
