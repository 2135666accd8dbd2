package entity

import (
	"time"

	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
)

// Account represents a user account with its balance and income ledgers.
// All monetary values are whole currency units stored as int64.
type Account struct {
	ID           uint64    // Unique identifier for the account
	Name         string    // Display name, shown in reward transaction descriptions
	Phone        string    // Unique login handle
	Balance      int64     // Spendable funds
	TotalIncome  int64     // Cumulative credited income of any type, never decremented
	TeamIncome   int64     // Cumulative commission rewards received as an ancestor
	RabatIncome  int64     // Cumulative rabat rewards received as an ancestor
	ReferralCode string    // Unique code assigned at creation, used as others' ReferredBy
	ReferredBy   string    // Referral code of the direct upline, empty at a chain root
	CreatedAt    time.Time // When the account was created
	UpdatedAt    time.Time // When the account was last updated
}

// NewAccount creates a new account with a zeroed ledger
func NewAccount(name, phone, referralCode, referredBy string, timeProvider coreport.TimeProvider) (*Account, error) {
	if name == "" || phone == "" {
		return nil, errs.ErrInvalidRequest
	}
	if referralCode == "" {
		return nil, errs.ErrInvalidRequest
	}

	now := timeProvider.Now()
	return &Account{
		Name:         name,
		Phone:        phone,
		ReferralCode: referralCode,
		ReferredBy:   referredBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// HasUpline reports whether the account points at a direct referrer
func (a *Account) HasUpline() bool {
	return a.ReferredBy != ""
}

// CanDebit checks if the account has enough balance for a deduction
func (a *Account) CanDebit(amount int64) bool {
	return a.Balance >= amount
}

// BalanceDelta describes an atomic increment applied to an account's
// balance and income buckets in one store-level operation
type BalanceDelta struct {
	Balance     int64
	TotalIncome int64
	TeamIncome  int64
	RabatIncome int64
}

// RewardDelta builds the delta for crediting a reward of the given event
// type: balance and total_income always grow, plus the matching bucket
func RewardDelta(event RewardEvent, reward int64) BalanceDelta {
	delta := BalanceDelta{
		Balance:     reward,
		TotalIncome: reward,
	}
	switch event {
	case EventCommission:
		delta.TeamIncome = reward
	case EventRabat:
		delta.RabatIncome = reward
	}
	return delta
}

// IncomeDelta builds the delta for crediting an owner's own daily income
func IncomeDelta(amount int64) BalanceDelta {
	return BalanceDelta{
		Balance:     amount,
		TotalIncome: amount,
	}
}
