package persistence

import (
	"context"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
)

// InvestmentRepository defines essential methods to interact with investment data
type InvestmentRepository interface {
	// Create saves a new investment created by a purchase
	//
	// Possible errors:
	// - ErrAccountNotFound: If the owning account does not exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, investment *entity.Investment) error

	// GetByID retrieves an investment by ID
	//
	// Possible errors:
	// - ErrInvestmentNotFound: If investment with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Investment, error)

	// GetByIDForUpdate retrieves an investment by ID holding an exclusive
	// row lock until the surrounding unit of work ends. Concurrent claimants
	// of the same investment queue behind the lock, so the caller's
	// eligibility check on the returned state is authoritative. Only
	// meaningful inside a unit of work.
	//
	// Possible errors:
	// - ErrInvestmentNotFound: If investment with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Investment, error)

	// ListActiveByUser returns all active investments owned by the user,
	// oldest first. Used by the batch claim flow.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListActiveByUser(ctx context.Context, userID uint64) ([]*entity.Investment, error)

	// Update persists claim-state changes (total_earned, days_remaining,
	// last_claimed_at, status)
	//
	// Possible errors:
	// - ErrInvestmentNotFound: If investment doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, investment *entity.Investment) error
}
