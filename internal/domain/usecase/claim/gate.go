package claim

import (
	"time"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
	errs "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
)

// Gate enforces the once-per-calendar-day claim rule. The boundary is a
// calendar date in one configured business timezone, not a rolling 24-hour
// window: 23:59 and 00:01 the next minute are two different claim days.
type Gate struct {
	location     *time.Location
	timeProvider coreport.TimeProvider
}

// NewGate creates a gate bound to the business timezone
func NewGate(location *time.Location, timeProvider coreport.TimeProvider) *Gate {
	return &Gate{
		location:     location,
		timeProvider: timeProvider,
	}
}

// CanClaim reports whether the investment is claimable right now. Eligibility
// requires both an active status and no prior claim on today's business date;
// a completed investment is rejected even when the date check would pass.
func (g *Gate) CanClaim(investment *entity.Investment) error {
	if !investment.IsActive() {
		return errs.ErrInvestmentCompleted
	}
	if investment.LastClaimedAt == nil {
		return nil
	}
	if SameBusinessDay(*investment.LastClaimedAt, g.timeProvider.Now(), g.location) {
		return errs.ErrAlreadyClaimedToday
	}
	return nil
}

// SameBusinessDay reports whether two instants fall on the same calendar
// date in the given location
func SameBusinessDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
