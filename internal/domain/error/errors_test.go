package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientBalance", ErrInsufficientBalance, 4001},
		{"InvalidAmount", ErrInvalidAmount, 4002},
		{"InvalidAccountID", ErrInvalidAccountID, 4003},
		{"DuplicateAccount", ErrDuplicateAccount, 4004},
		{"ConstraintViolation", ErrConstraintViolation, 4005},
		{"AlreadyClaimedToday", ErrAlreadyClaimedToday, 4006},
		{"InvestmentCompleted", ErrInvestmentCompleted, 4006},
		{"AccountNotFound", ErrAccountNotFound, 4040},
		{"ProductNotFound", ErrProductNotFound, 4041},
		{"InvestmentNotFound", ErrInvestmentNotFound, 4042},
		{"InvestmentNotOwned", ErrInvestmentNotOwned, 4042},
		{"ChainResolution", ErrChainResolution, 5001},
		{"AncestorUpdate", ErrAncestorUpdate, 5002},
		{"LockConflict", ErrLockConflict, 5003},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidAccountID), 4003},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestChainResolutionError(t *testing.T) {
	baseErr := ErrDatabaseConnection
	chainErr := NewChainResolutionError(123, 2, baseErr)

	expected := "chain resolution failed for user 123 at depth 2: database connection error"
	if chainErr.Error() != expected {
		t.Errorf("ChainResolutionError.Error() = %s, want %s", chainErr.Error(), expected)
	}

	if !errors.Is(chainErr, ErrChainResolution) {
		t.Error("errors.Is(chainErr, ErrChainResolution) = false, want true")
	}
	if !errors.Is(chainErr, baseErr) {
		t.Error("errors.Is(chainErr, baseErr) = false, want true")
	}
	if !IsChainResolutionError(chainErr) {
		t.Error("IsChainResolutionError(chainErr) = false, want true")
	}
}

func TestAncestorUpdateError(t *testing.T) {
	baseErr := ErrConstraintViolation
	updateErr := NewAncestorUpdateError("B", 456, "commission", 15000, baseErr)

	expected := "reward update failed for level B ancestor 456 (commission, amount 15000): database constraint violation"
	if updateErr.Error() != expected {
		t.Errorf("AncestorUpdateError.Error() = %s, want %s", updateErr.Error(), expected)
	}

	if !errors.Is(updateErr, ErrAncestorUpdate) {
		t.Error("errors.Is(updateErr, ErrAncestorUpdate) = false, want true")
	}
	if !errors.Is(updateErr, baseErr) {
		t.Error("errors.Is(updateErr, baseErr) = false, want true")
	}

	var typed *AncestorUpdateError
	if !errors.As(updateErr, &typed) {
		t.Fatal("errors.As(updateErr, *AncestorUpdateError) = false, want true")
	}
	fields := typed.LogFields()
	if fields["ancestor_id"] != uint64(456) || fields["level"] != "B" {
		t.Errorf("LogFields() = %v, missing ancestor context", fields)
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	balErr := NewInsufficientBalanceError(789, 100000, 25000)

	expected := "insufficient balance for account 789: required 100000, available 25000"
	if balErr.Error() != expected {
		t.Errorf("InsufficientBalanceError.Error() = %s, want %s", balErr.Error(), expected)
	}

	if !errors.Is(balErr, ErrInsufficientBalance) {
		t.Error("errors.Is(balErr, ErrInsufficientBalance) = false, want true")
	}
	if !IsInsufficientBalanceError(balErr) {
		t.Error("IsInsufficientBalanceError(balErr) = false, want true")
	}
}

func TestIsNotFoundError(t *testing.T) {
	notFound := []error{ErrNotFound, ErrAccountNotFound, ErrProductNotFound, ErrInvestmentNotFound, ErrTransactionNotFound}
	for _, err := range notFound {
		if !IsNotFoundError(err) {
			t.Errorf("IsNotFoundError(%v) = false, want true", err)
		}
	}
	if IsNotFoundError(ErrInsufficientBalance) {
		t.Error("IsNotFoundError(ErrInsufficientBalance) = true, want false")
	}
}

func TestIsClaimNotEligibleError(t *testing.T) {
	if !IsClaimNotEligibleError(ErrAlreadyClaimedToday) {
		t.Error("IsClaimNotEligibleError(ErrAlreadyClaimedToday) = false, want true")
	}
	if !IsClaimNotEligibleError(ErrInvestmentCompleted) {
		t.Error("IsClaimNotEligibleError(ErrInvestmentCompleted) = false, want true")
	}
	if IsClaimNotEligibleError(ErrInvestmentNotFound) {
		t.Error("IsClaimNotEligibleError(ErrInvestmentNotFound) = true, want false")
	}
}
