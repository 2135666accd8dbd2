package invest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	"github.com/aryaseta/reward-engine/internal/domain/port/persistence"
	"github.com/aryaseta/reward-engine/internal/domain/usecase/reward"
)

// PurchaseResult describes one committed purchase
type PurchaseResult struct {
	Investment *entity.Investment    `json:"investment"`
	Rewards    *entity.RewardSummary `json:"rewards,omitempty"`
}

// Service implements the product purchase flow
type Service struct {
	uow          persistence.UnitOfWork
	products     persistence.ProductRepository
	rewards      *reward.Service
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the purchase service
func NewService(
	uow persistence.UnitOfWork,
	products persistence.ProductRepository,
	rewards *reward.Service,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		products:     products,
		rewards:      rewards,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Purchase debits the buyer, creates the investment and writes the invest
// audit row in one unit of work. Commission distribution runs only after
// that commit and is best-effort: a reward failure leaves the purchase
// untouched, never the reverse.
func (s *Service) Purchase(ctx context.Context, userID, productID uint64) (*PurchaseResult, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}

	investment, err := s.createInvestment(ctx, userID, product)
	if err != nil {
		return nil, err
	}

	result := &PurchaseResult{Investment: investment}

	summary, err := s.rewards.ProcessReward(ctx, userID, product.Price, entity.EventCommission)
	if err != nil {
		s.logger.Error("Commission distribution failed after purchase", map[string]any{
			"user_id":    userID,
			"product_id": productID,
			"amount":     product.Price,
			"error":      err.Error(),
		})
	} else {
		result.Rewards = summary
	}

	return result, nil
}

// ListProducts returns the purchasable catalog
func (s *Service) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return s.products.ListActive(ctx)
}

// createInvestment commits the financial core of the purchase: conditional
// balance debit, investment creation and the paired invest transaction
func (s *Service) createInvestment(ctx context.Context, userID uint64, product *entity.Product) (*entity.Investment, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin purchase transaction: %w", err)
	}

	accounts := s.uow.GetAccountRepository(txCtx)
	investments := s.uow.GetInvestmentRepository(txCtx)
	transactions := s.uow.GetTransactionRepository(txCtx)

	if err := accounts.DebitBalance(txCtx, userID, product.Price); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	investment, err := entity.NewInvestment(uuid.NewString(), userID, product, s.timeProvider)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := investments.Create(txCtx, investment); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("create investment: %w", err)
	}

	auditRow, err := entity.NewTransaction(
		uuid.NewString(),
		userID,
		entity.TypeInvest,
		product.Price,
		entity.StatusSuccess,
		fmt.Sprintf("Purchased %s", product.Name),
		s.timeProvider,
	)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := transactions.Create(txCtx, auditRow); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("write invest transaction: %w", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("commit purchase: %w", err)
	}

	s.logger.Info("Investment purchased", map[string]any{
		"user_id":       userID,
		"product_id":    product.ID,
		"investment_id": investment.ID,
		"order_id":      investment.OrderID,
		"amount":        product.Price,
	})
	return investment, nil
}
