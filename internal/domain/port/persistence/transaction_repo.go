package persistence

import (
	"context"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
)

// TransactionRepository defines essential methods to interact with the
// append-only transaction ledger
type TransactionRepository interface {
	// Create appends a transaction record. Every balance mutation must be
	// paired with exactly one transaction row.
	//
	// Possible errors:
	// - ErrConstraintViolation: If the reference collides or the account is missing
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// ListByUser retrieves the user's transactions, newest first,
	// capped at limit (0 means no cap)
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.Transaction, error)
}
