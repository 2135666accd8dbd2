package claim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coremocks "github.com/aryaseta/reward-engine/mocks/port/core"
)

func jakartaLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return loc
}

func gateAt(t *testing.T, now time.Time) *Gate {
	t.Helper()
	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(now)
	return NewGate(jakartaLocation(t), mockTime)
}

func activeInvestment(lastClaimedAt *time.Time) *entity.Investment {
	return &entity.Investment{
		ID:            1,
		UserID:        7,
		DailyIncome:   4000,
		DaysRemaining: 10,
		Status:        entity.InvestmentActive,
		LastClaimedAt: lastClaimedAt,
	}
}

func TestGate_CanClaim(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("Never-claimed investment is eligible", func(t *testing.T) {
		gate := gateAt(t, now)

		assert.NoError(t, gate.CanClaim(activeInvestment(nil)))
	})

	t.Run("Claimed yesterday is eligible", func(t *testing.T) {
		gate := gateAt(t, now)
		yesterday := now.Add(-24 * time.Hour)

		assert.NoError(t, gate.CanClaim(activeInvestment(&yesterday)))
	})

	t.Run("Claimed today is rejected", func(t *testing.T) {
		gate := gateAt(t, now)
		earlier := now.Add(-2 * time.Hour)

		assert.ErrorIs(t, gate.CanClaim(activeInvestment(&earlier)), errs.ErrAlreadyClaimedToday)
	})

	t.Run("Completed investment is rejected even when the date passes", func(t *testing.T) {
		gate := gateAt(t, now)
		inv := activeInvestment(nil)
		inv.Status = entity.InvestmentCompleted

		assert.ErrorIs(t, gate.CanClaim(inv), errs.ErrInvestmentCompleted)
	})

	t.Run("Calendar day flips at midnight, not after 24 hours", func(t *testing.T) {
		// 23:30 and 00:30 Jakarta time are different claim days an hour apart
		claimed := time.Date(2024, 3, 15, 16, 30, 0, 0, time.UTC) // 23:30 Mar 15 in Jakarta
		current := time.Date(2024, 3, 15, 17, 30, 0, 0, time.UTC) // 00:30 Mar 16 in Jakarta
		gate := gateAt(t, current)

		assert.NoError(t, gate.CanClaim(activeInvestment(&claimed)))
	})

	t.Run("Same business day across a UTC date difference is rejected", func(t *testing.T) {
		// 23:00 UTC Mar 14 and 02:00 UTC Mar 15 are both Mar 15 in Jakarta
		claimed := time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC)
		current := time.Date(2024, 3, 15, 2, 0, 0, 0, time.UTC)
		gate := gateAt(t, current)

		assert.ErrorIs(t, gate.CanClaim(activeInvestment(&claimed)), errs.ErrAlreadyClaimedToday)
	})
}

func TestSameBusinessDay(t *testing.T) {
	loc := jakartaLocation(t)

	a := time.Date(2024, 3, 15, 0, 0, 0, 0, loc)
	b := time.Date(2024, 3, 15, 23, 59, 59, 0, loc)
	c := time.Date(2024, 3, 16, 0, 0, 0, 0, loc)

	assert.True(t, SameBusinessDay(a, b, loc))
	assert.False(t, SameBusinessDay(b, c, loc))
}
