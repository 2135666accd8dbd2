package entity

import (
	"fmt"
	"time"

	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
)

// TransactionType categorizes what moved the balance
type TransactionType string

// Transaction types
const (
	TypeRecharge   TransactionType = "recharge"
	TypeWithdraw   TransactionType = "withdraw"
	TypeInvest     TransactionType = "invest"
	TypeIncome     TransactionType = "income"
	TypeCommission TransactionType = "commission"
	TypeRabat      TransactionType = "rabat"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// Transaction statuses
const (
	StatusPending  TransactionStatus = "pending"
	StatusSuccess  TransactionStatus = "success"
	StatusRejected TransactionStatus = "rejected"
)

// Transaction is an append-only audit record. Every balance mutation is
// paired with exactly one of these rows.
type Transaction struct {
	ID          uint64            // Unique identifier for the transaction
	Reference   string            // External reference (uuid) for reconciliation
	UserID      uint64            // Account the row belongs to
	Type        TransactionType   // What kind of movement this was
	Amount      int64             // Moved amount, always positive
	Status      TransactionStatus // pending, success or rejected
	Description string            // User-facing audit trail text
	CreatedAt   time.Time         // When the transaction was recorded
}

// NewTransaction creates a transaction row with basic validation
func NewTransaction(
	reference string,
	userID uint64,
	txType TransactionType,
	amount int64,
	status TransactionStatus,
	description string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if reference == "" {
		return nil, errs.ErrInvalidRequest
	}
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if !isValidTransactionType(txType) {
		return nil, fmt.Errorf("%w: unknown transaction type %s", errs.ErrInvalidRequest, txType)
	}

	return &Transaction{
		Reference:   reference,
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Status:      status,
		Description: description,
		CreatedAt:   timeProvider.Now(),
	}, nil
}

// NewRewardTransaction creates the success-status audit row written when the
// applicator credits an ancestor. The description names the level, the rate
// and the triggering downline user.
func NewRewardTransaction(
	reference string,
	ancestorID uint64,
	event RewardEvent,
	reward int64,
	level Level,
	ratePercent string,
	triggeredBy string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	description := fmt.Sprintf("Level %s %s (%s) from %s", level, event, ratePercent, triggeredBy)
	return NewTransaction(reference, ancestorID, TransactionType(event), reward, StatusSuccess, description, timeProvider)
}

// IsCredit returns true if this transaction increased the balance
func (t *Transaction) IsCredit() bool {
	switch t.Type {
	case TypeRecharge, TypeIncome, TypeCommission, TypeRabat:
		return true
	default:
		return false
	}
}

// isValidTransactionType validates if the transaction type is allowed
func isValidTransactionType(txType TransactionType) bool {
	switch txType {
	case TypeRecharge, TypeWithdraw, TypeInvest, TypeIncome, TypeCommission, TypeRabat:
		return true
	}
	return false
}
