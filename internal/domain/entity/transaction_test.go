package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coremocks "github.com/aryaseta/reward-engine/mocks/port/core"
)

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Valid transaction creation", func(t *testing.T) {
		tx, err := NewTransaction("ref-1", 7, TypeRecharge, 50000, StatusSuccess, "Balance recharge", mockTime)

		require.NoError(t, err)
		assert.Equal(t, "ref-1", tx.Reference)
		assert.Equal(t, uint64(7), tx.UserID)
		assert.Equal(t, TypeRecharge, tx.Type)
		assert.Equal(t, int64(50000), tx.Amount)
		assert.Equal(t, StatusSuccess, tx.Status)
		assert.Equal(t, fixedTime, tx.CreatedAt)
	})

	t.Run("Zero user ID should return error", func(t *testing.T) {
		tx, err := NewTransaction("ref-1", 0, TypeRecharge, 50000, StatusSuccess, "", mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidAccountID)
		assert.Nil(t, tx)
	})

	t.Run("Empty reference should return error", func(t *testing.T) {
		tx, err := NewTransaction("", 7, TypeRecharge, 50000, StatusSuccess, "", mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		assert.Nil(t, tx)
	})

	t.Run("Non-positive amount should return error", func(t *testing.T) {
		for _, amount := range []int64{0, -1} {
			tx, err := NewTransaction("ref-1", 7, TypeRecharge, amount, StatusSuccess, "", mockTime)

			assert.ErrorIs(t, err, errs.ErrInvalidAmount)
			assert.Nil(t, tx)
		}
	})

	t.Run("Unknown type should return error", func(t *testing.T) {
		tx, err := NewTransaction("ref-1", 7, TransactionType("bonus"), 50000, StatusSuccess, "", mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		assert.Nil(t, tx)
	})
}

func TestNewRewardTransaction(t *testing.T) {
	fixedTime := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	tx, err := NewRewardTransaction("ref-9", 42, EventCommission, 50000, LevelA, "10%", "Budi", mockTime)

	require.NoError(t, err)
	assert.Equal(t, uint64(42), tx.UserID)
	assert.Equal(t, TypeCommission, tx.Type)
	assert.Equal(t, int64(50000), tx.Amount)
	assert.Equal(t, StatusSuccess, tx.Status)
	assert.Equal(t, "Level A commission (10%) from Budi", tx.Description)
}

func TestTransactionIsCredit(t *testing.T) {
	credits := []TransactionType{TypeRecharge, TypeIncome, TypeCommission, TypeRabat}
	debits := []TransactionType{TypeWithdraw, TypeInvest}

	for _, txType := range credits {
		assert.True(t, (&Transaction{Type: txType}).IsCredit(), string(txType))
	}
	for _, txType := range debits {
		assert.False(t, (&Transaction{Type: txType}).IsCredit(), string(txType))
	}
}
