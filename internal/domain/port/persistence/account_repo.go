package persistence

import (
	"context"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
)

// AccountRepository defines essential methods to interact with account data
type AccountRepository interface {
	// GetByID retrieves an account by ID
	//
	// Possible errors:
	// - ErrAccountNotFound: If account with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Account, error)

	// GetByReferralCode retrieves the account owning the given referral code.
	// Used by the chain resolver to walk the upline.
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account owns the code
	// - ErrDatabaseConnection: If database connection fails
	GetByReferralCode(ctx context.Context, code string) (*entity.Account, error)

	// Create creates a new account
	//
	// Possible errors:
	// - ErrDuplicateAccount: If the phone number is already registered
	// - ErrDuplicateReferralCode: If the generated referral code collides
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, account *entity.Account) error

	// IncrementFields atomically adds the delta values to the account's
	// balance and income buckets in a single UPDATE. Never read-modify-write;
	// this is what keeps concurrent reward credits to the same ancestor safe.
	//
	// Possible errors:
	// - ErrAccountNotFound: If account doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	IncrementFields(ctx context.Context, id uint64, delta entity.BalanceDelta) error

	// DebitBalance atomically subtracts amount from the account's balance,
	// failing without mutation if the balance would go negative.
	//
	// Possible errors:
	// - ErrAccountNotFound: If account doesn't exist
	// - ErrInsufficientBalance: If balance is lower than amount
	// - ErrDatabaseConnection: If database connection fails
	DebitBalance(ctx context.Context, id uint64, amount int64) error
}
