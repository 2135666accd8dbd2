package reward

import (
	"github.com/shopspring/decimal"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
)

// Fixed rate tables. Commission rates apply to the purchase amount,
// rabat rates to the claimed daily income. Not user-configurable.
var (
	commissionRates = map[entity.Level]decimal.Decimal{
		entity.LevelA: decimal.New(10, -2), // 10%
		entity.LevelB: decimal.New(3, -2),  // 3%
		entity.LevelC: decimal.New(2, -2),  // 2%
	}

	rabatRates = map[entity.Level]decimal.Decimal{
		entity.LevelA: decimal.New(5, -2), // 5%
		entity.LevelB: decimal.New(3, -2), // 3%
		entity.LevelC: decimal.New(2, -2), // 2%
	}
)

// rateFor returns the rate for the event type and level, or zero for
// unknown combinations
func rateFor(event entity.RewardEvent, level entity.Level) decimal.Decimal {
	var table map[entity.Level]decimal.Decimal
	switch event {
	case entity.EventCommission:
		table = commissionRates
	case entity.EventRabat:
		table = rabatRates
	default:
		return decimal.Zero
	}
	return table[level]
}

// Calculate computes the reward for one ancestor: floor(baseAmount * rate).
// Flooring is deliberate; rewards are integer currency units and the payout
// must never exceed what the rate table implies in aggregate. A zero result
// is valid and means the ancestor is skipped entirely.
func Calculate(event entity.RewardEvent, baseAmount int64, level entity.Level) int64 {
	if baseAmount <= 0 {
		return 0
	}
	rate := rateFor(event, level)
	if rate.IsZero() {
		return 0
	}
	return decimal.NewFromInt(baseAmount).Mul(rate).Floor().IntPart()
}

// RatePercent renders the applicable rate as a human-readable percentage,
// used in reward transaction descriptions (e.g. "10%")
func RatePercent(event entity.RewardEvent, level entity.Level) string {
	rate := rateFor(event, level)
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
