package entity

// Level identifies an ancestor's generation in the referral chain
type Level string

// Referral chain levels; rewards never reach beyond the third generation
const (
	LevelA Level = "A"
	LevelB Level = "B"
	LevelC Level = "C"
)

// MaxChainDepth is the fixed business rule for how far up the chain rewards
// are paid. It also doubles as the loop bound that makes cyclic referred_by
// data (corruption) harmless.
const MaxChainDepth = 3

// ChainLevels lists the levels in payout order
var ChainLevels = [MaxChainDepth]Level{LevelA, LevelB, LevelC}

// RewardEvent selects which rate table a reward distribution uses
type RewardEvent string

// Reward event types
const (
	// EventCommission is the one-time reward triggered by a downline purchase
	EventCommission RewardEvent = "commission"
	// EventRabat is the recurring reward triggered by a downline daily claim
	EventRabat RewardEvent = "rabat"
)

// IsValidRewardEvent validates if the reward event is allowed
func IsValidRewardEvent(event string) bool {
	return event == string(EventCommission) || event == string(EventRabat)
}

// Ancestor pairs a resolved upline account with its chain level
type Ancestor struct {
	Level   Level
	Account *Account
}

// RewardResult records one successfully credited ancestor
type RewardResult struct {
	Level        Level  `json:"level"`
	AncestorID   uint64 `json:"ancestorId"`
	AncestorName string `json:"ancestorName"`
	Reward       int64  `json:"reward"`
}

// RewardFailure records an ancestor that could not be credited; the
// distribution carries on and reports it as a partial outcome
type RewardFailure struct {
	Level      Level  `json:"level"`
	AncestorID uint64 `json:"ancestorId"`
	Reason     string `json:"reason"`
}

// RewardSummary aggregates one distribution run over the resolved chain
type RewardSummary struct {
	Event            RewardEvent     `json:"event"`
	Rewards          []RewardResult  `json:"rewards"`
	Failures         []RewardFailure `json:"failures,omitempty"`
	TotalDistributed int64           `json:"totalDistributed"`
}
