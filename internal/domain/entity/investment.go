package entity

import (
	"time"

	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
)

// InvestmentStatus defines possible status values for an investment
type InvestmentStatus string

// Investment statuses; completed is terminal
const (
	InvestmentActive    InvestmentStatus = "active"
	InvestmentCompleted InvestmentStatus = "completed"
)

// Investment represents one purchased product paying fixed daily income
// over a fixed validity period
type Investment struct {
	ID            uint64           // Unique identifier for the investment
	OrderID       string           // External reference assigned at purchase
	UserID        uint64           // Owning account
	ProductID     uint64           // Purchased product
	Amount        int64            // Principal paid
	DailyIncome   int64            // Fixed payout per claimed day
	Validity      int              // Total payout days
	DaysRemaining int              // Unclaimed days left
	TotalEarned   int64            // Cumulative claimed payouts
	Status        InvestmentStatus // active or completed
	LastClaimedAt *time.Time       // When the last daily claim happened (nullable)
	CreatedAt     time.Time        // When the investment was created
	UpdatedAt     time.Time        // When the investment was last updated
}

// NewInvestment creates an active investment from a purchased product
func NewInvestment(orderID string, userID uint64, product *Product, timeProvider coreport.TimeProvider) (*Investment, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if orderID == "" {
		return nil, errs.ErrInvalidRequest
	}
	if product.Price <= 0 || product.DailyIncome <= 0 || product.Validity <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	now := timeProvider.Now()
	return &Investment{
		OrderID:       orderID,
		UserID:        userID,
		ProductID:     product.ID,
		Amount:        product.Price,
		DailyIncome:   product.DailyIncome,
		Validity:      product.Validity,
		DaysRemaining: product.Validity,
		Status:        InvestmentActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsActive reports whether the investment can still pay out
func (i *Investment) IsActive() bool {
	return i.Status == InvestmentActive
}

// ApplyDailyClaim advances the investment state for one successful claim:
// earnings grow by one daily income, one day is consumed, and reaching zero
// days moves the investment to its terminal completed status.
func (i *Investment) ApplyDailyClaim(timeProvider coreport.TimeProvider) error {
	if !i.IsActive() {
		return errs.ErrInvestmentCompleted
	}

	now := timeProvider.Now()
	i.TotalEarned += i.DailyIncome
	i.DaysRemaining--
	i.LastClaimedAt = &now
	i.UpdatedAt = now

	if i.DaysRemaining <= 0 {
		i.DaysRemaining = 0
		i.Status = InvestmentCompleted
	}
	return nil
}
