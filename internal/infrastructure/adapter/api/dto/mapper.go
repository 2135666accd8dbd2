package dto

import (
	"time"

	"github.com/aryaseta/reward-engine/internal/domain/entity"
)

// NewRewardSummaryResponse maps a distribution summary to its API shape
func NewRewardSummaryResponse(summary *entity.RewardSummary) *RewardSummaryResponse {
	if summary == nil {
		return nil
	}

	resp := &RewardSummaryResponse{
		Event:            string(summary.Event),
		Rewards:          make([]RewardResultResponse, 0, len(summary.Rewards)),
		TotalDistributed: summary.TotalDistributed,
	}
	for _, r := range summary.Rewards {
		resp.Rewards = append(resp.Rewards, RewardResultResponse{
			Level:        string(r.Level),
			AncestorID:   r.AncestorID,
			AncestorName: r.AncestorName,
			Reward:       r.Reward,
		})
	}
	for _, f := range summary.Failures {
		resp.Failures = append(resp.Failures, RewardFailureResponse{
			Level:      string(f.Level),
			AncestorID: f.AncestorID,
			Reason:     f.Reason,
		})
	}
	return resp
}

// NewInvestmentResponse maps an investment to its API shape
func NewInvestmentResponse(investment *entity.Investment) InvestmentResponse {
	return InvestmentResponse{
		InvestmentID:  investment.ID,
		OrderID:       investment.OrderID,
		ProductID:     investment.ProductID,
		Amount:        investment.Amount,
		DailyIncome:   investment.DailyIncome,
		DaysRemaining: investment.DaysRemaining,
		TotalEarned:   investment.TotalEarned,
		Status:        string(investment.Status),
	}
}

// NewTransactionResponse maps a transaction row to its API shape
func NewTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		Reference:   tx.Reference,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Status:      string(tx.Status),
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}
