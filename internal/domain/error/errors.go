package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidAccountID    = 4003
	CodeDuplicateAccount    = 4004
	CodeConstraintViolation = 4005
	CodeClaimNotEligible    = 4006
	CodeAccountNotFound     = 4040
	CodeProductNotFound     = 4041
	CodeInvestmentNotFound  = 4042

	// 5xxx - Server errors
	CodeInternalServer  = 5000
	CodeChainResolution = 5001
	CodeAncestorUpdate  = 5002
	CodeLockConflict    = 5003
)

// Base error types
var (
	// ErrInsufficientBalance is returned when an account has insufficient funds
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when a monetary amount is zero or negative
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidAccountID is returned when the account ID is not a positive integer
	ErrInvalidAccountID = errors.New("account ID must be positive")

	// ErrInvalidEventType is returned when the reward event type is unknown
	ErrInvalidEventType = errors.New("invalid reward event type")

	// ErrAccountNotFound is returned when the requested account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrProductNotFound is returned when the requested product doesn't exist or is inactive
	ErrProductNotFound = errors.New("product not found")

	// ErrInvestmentNotFound is returned when the requested investment doesn't exist
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrInvestmentNotOwned is returned when an investment belongs to a different account
	ErrInvestmentNotOwned = errors.New("investment does not belong to this account")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateAccount is returned when creating an account that already exists
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrDuplicateReferralCode is returned when a generated referral code collides
	ErrDuplicateReferralCode = errors.New("referral code already taken")

	// ErrAlreadyClaimedToday is returned when an investment was already claimed
	// on the current business-timezone calendar day
	ErrAlreadyClaimedToday = errors.New("daily income already claimed today")

	// ErrInvestmentCompleted is returned when claiming a completed investment
	ErrInvestmentCompleted = errors.New("investment has completed its validity period")

	// ErrChainResolution is returned when the upline walk fails because the
	// store is unreachable; no rewards are attempted for the triggering event
	ErrChainResolution = errors.New("referral chain resolution failed")

	// ErrAncestorUpdate is returned when a single ancestor's reward could not
	// be committed; remaining ancestors are still processed
	ErrAncestorUpdate = errors.New("ancestor reward update failed")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrLockConflict is returned when a row lock or serialization conflict
	// aborts a statement; safe for the caller to retry
	ErrLockConflict = errors.New("database lock conflict")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidAccountID):
		return CodeInvalidAccountID
	case errors.Is(err, ErrDuplicateAccount):
		return CodeDuplicateAccount
	case errors.Is(err, ErrAlreadyClaimedToday), errors.Is(err, ErrInvestmentCompleted):
		return CodeClaimNotEligible
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrProductNotFound):
		return CodeProductNotFound
	case errors.Is(err, ErrInvestmentNotFound), errors.Is(err, ErrInvestmentNotOwned):
		return CodeInvestmentNotFound
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrChainResolution):
		return CodeChainResolution
	case errors.Is(err, ErrAncestorUpdate):
		return CodeAncestorUpdate
	case errors.Is(err, ErrLockConflict):
		return CodeLockConflict
	default:
		return CodeInternalServer
	}
}

// ChainResolutionError carries context about a failed upline walk
type ChainResolutionError struct {
	UserID uint64
	Depth  int
	Err    error
}

// Error implements the error interface for ChainResolutionError
func (e *ChainResolutionError) Error() string {
	return fmt.Sprintf("chain resolution failed for user %d at depth %d: %v",
		e.UserID, e.Depth, e.Err)
}

// Unwrap returns the underlying error
func (e *ChainResolutionError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrChainResolution
func (e *ChainResolutionError) Is(target error) bool {
	return target == ErrChainResolution
}

// LogFields returns a map of fields for structured logging
func (e *ChainResolutionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "chain_resolution",
		"user_id":    e.UserID,
		"depth":      e.Depth,
		"error":      e.Err.Error(),
		"error_code": CodeChainResolution,
	}
}

// NewChainResolutionError creates a new chain resolution error
func NewChainResolutionError(userID uint64, depth int, err error) error {
	return &ChainResolutionError{UserID: userID, Depth: depth, Err: err}
}

// AncestorUpdateError describes a single ancestor's failed reward commit
type AncestorUpdateError struct {
	Level      string
	AncestorID uint64
	Event      string
	Reward     int64
	Err        error
}

// Error implements the error interface for AncestorUpdateError
func (e *AncestorUpdateError) Error() string {
	return fmt.Sprintf("reward update failed for level %s ancestor %d (%s, amount %d): %v",
		e.Level, e.AncestorID, e.Event, e.Reward, e.Err)
}

// Unwrap returns the underlying error
func (e *AncestorUpdateError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrAncestorUpdate
func (e *AncestorUpdateError) Is(target error) bool {
	return target == ErrAncestorUpdate
}

// LogFields returns a map of fields for structured logging
func (e *AncestorUpdateError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "ancestor_update",
		"level":       e.Level,
		"ancestor_id": e.AncestorID,
		"event":       e.Event,
		"reward":      e.Reward,
		"error":       e.Err.Error(),
		"error_code":  CodeAncestorUpdate,
	}
}

// NewAncestorUpdateError creates a new ancestor update error
func NewAncestorUpdateError(level string, ancestorID uint64, event string, reward int64, err error) error {
	return &AncestorUpdateError{
		Level:      level,
		AncestorID: ancestorID,
		Event:      event,
		Reward:     reward,
		Err:        err,
	}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	AccountID   uint64
	Amount      int64
	CurrBalance int64
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for account %d: required %d, available %d",
		e.AccountID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"account_id":      e.AccountID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(accountID uint64, amount, currentBalance int64) error {
	return &InsufficientBalanceError{
		AccountID:   accountID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// IsClaimNotEligibleError checks if the error blocks a daily claim
func IsClaimNotEligibleError(err error) bool {
	return errors.Is(err, ErrAlreadyClaimedToday) || errors.Is(err, ErrInvestmentCompleted)
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsAccountNotFoundError checks if the error is an account not found error
func IsAccountNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrInvestmentNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsDuplicateAccountError checks if the error is a duplicate account error
func IsDuplicateAccountError(err error) bool {
	return errors.Is(err, ErrDuplicateAccount)
}

// IsChainResolutionError checks if the error aborted an upline walk
func IsChainResolutionError(err error) bool {
	return errors.Is(err, ErrChainResolution)
}

// IsAncestorUpdateError checks if the error is a per-ancestor reward failure
func IsAncestorUpdateError(err error) bool {
	return errors.Is(err, ErrAncestorUpdate)
}
