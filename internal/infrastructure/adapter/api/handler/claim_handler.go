package handler

import (
	"errors"
	"net/http"
	"strconv"

	domainerr "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	claimUseCase "github.com/aryaseta/reward-engine/internal/domain/usecase/claim"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ClaimHandler handles daily income claim HTTP requests
type ClaimHandler struct {
	claimService *claimUseCase.Service
	logger       coreport.Logger
}

// NewClaimHandler creates a new claim handler instance
func NewClaimHandler(
	claimService *claimUseCase.Service,
	logger coreport.Logger,
) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
		logger:       logger,
	}
}

// ClaimDaily handles the POST /investment/:investmentId/claim endpoint
func (h *ClaimHandler) ClaimDaily(c *gin.Context) {
	investmentID, err := strconv.ParseUint(c.Param("investmentId"), 10, 64)
	if err != nil || investmentID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid investment ID format",
		})
		return
	}

	var req dto.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.claimService.ClaimDaily(c.Request.Context(), req.UserID, investmentID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMessage := "Internal server error"

		switch {
		case errors.Is(err, domainerr.ErrInvestmentNotOwned):
			statusCode = http.StatusForbidden
			errorMessage = "Investment belongs to another account"
		case domainerr.IsNotFoundError(err):
			statusCode = http.StatusNotFound
			errorMessage = "Investment not found"
		case domainerr.IsClaimNotEligibleError(err):
			statusCode = http.StatusConflict
			errorMessage = claimIneligibleMessage(err)
		}

		h.logger.Error("Error claiming daily income", map[string]any{
			"user_id":       req.UserID,
			"investment_id": investmentID,
			"error":         err.Error(),
		})
		c.JSON(statusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: errorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, dto.ClaimResponse{
		InvestmentID: result.InvestmentID,
		Amount:       result.Amount,
		Completed:    result.Completed,
		Rewards:      dto.NewRewardSummaryResponse(result.Rewards),
	})
}

// ClaimAll handles the POST /account/:userId/claim-all endpoint
func (h *ClaimHandler) ClaimAll(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	result, err := h.claimService.ClaimAll(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMessage := "Internal server error"

		if domainerr.IsAccountNotFoundError(err) {
			statusCode = http.StatusNotFound
			errorMessage = "Account not found"
		}

		h.logger.Error("Error claiming all investments", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(statusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: errorMessage,
		})
		return
	}

	resp := dto.ClaimAllResponse{
		Claimed:     make([]dto.ClaimResponse, 0, len(result.Claimed)),
		TotalIncome: result.TotalIncome,
		Skipped:     result.Skipped,
	}
	for _, claimed := range result.Claimed {
		resp.Claimed = append(resp.Claimed, dto.ClaimResponse{
			InvestmentID: claimed.InvestmentID,
			Amount:       claimed.Amount,
			Completed:    claimed.Completed,
			Rewards:      dto.NewRewardSummaryResponse(claimed.Rewards),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// claimIneligibleMessage distinguishes the two gate rejections
func claimIneligibleMessage(err error) string {
	if errors.Is(err, domainerr.ErrAlreadyClaimedToday) {
		return "Daily income already claimed today"
	}
	return "Investment already completed"
}
