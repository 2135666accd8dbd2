package dto

// RewardResultResponse describes one ancestor credit inside a distribution
type RewardResultResponse struct {
	Level        string `json:"level"`
	AncestorID   uint64 `json:"ancestorId"`
	AncestorName string `json:"ancestorName"`
	Reward       int64  `json:"reward"`
}

// RewardFailureResponse describes one ancestor that could not be credited
type RewardFailureResponse struct {
	Level      string `json:"level"`
	AncestorID uint64 `json:"ancestorId"`
	Reason     string `json:"reason"`
}

// RewardSummaryResponse aggregates the outcome of one reward distribution
type RewardSummaryResponse struct {
	Event            string                  `json:"event"`
	Rewards          []RewardResultResponse  `json:"rewards"`
	Failures         []RewardFailureResponse `json:"failures,omitempty"`
	TotalDistributed int64                   `json:"totalDistributed"`
}
