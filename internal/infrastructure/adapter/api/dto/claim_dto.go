package dto

// ClaimRequest identifies the claiming account for an investment claim
type ClaimRequest struct {
	UserID uint64 `json:"userId" binding:"required"`
}

// ClaimResponse represents the API response for one claimed investment
type ClaimResponse struct {
	InvestmentID uint64                 `json:"investmentId"`
	Amount       int64                  `json:"amount"`
	Completed    bool                   `json:"completed"`
	Rewards      *RewardSummaryResponse `json:"rewards,omitempty"`
}

// ClaimAllResponse represents the API response for a claim-all run
type ClaimAllResponse struct {
	Claimed     []ClaimResponse `json:"claimed"`
	TotalIncome int64           `json:"totalIncome"`
	Skipped     int             `json:"skipped"`
}
