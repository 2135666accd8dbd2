package handler

import (
	"errors"
	"net/http"
	"strconv"

	domainerr "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	accountUseCase "github.com/aryaseta/reward-engine/internal/domain/usecase/account"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService *accountUseCase.Service
	logger         coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(
	accountService *accountUseCase.Service,
	logger coreport.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// CreateAccount handles the POST /account endpoint
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid account request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req.Name, req.Phone, req.ReferredBy)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMessage := "Internal server error"

		switch {
		case domainerr.IsDuplicateAccountError(err):
			statusCode = http.StatusConflict
			errorMessage = "Phone number already registered"
		case errors.Is(err, domainerr.ErrInvalidRequest):
			statusCode = http.StatusBadRequest
			errorMessage = "Invalid account details"
		}

		h.logger.Error("Error creating account", map[string]any{
			"phone": req.Phone,
			"error": err.Error(),
		})
		c.JSON(statusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: errorMessage,
		})
		return
	}

	c.JSON(http.StatusCreated, dto.AccountResponse{
		UserID:       account.ID,
		Name:         account.Name,
		Phone:        account.Phone,
		ReferralCode: account.ReferralCode,
		ReferredBy:   account.ReferredBy,
	})
}

// GetBalance handles the GET /account/:userId/balance endpoint
func (h *AccountHandler) GetBalance(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMessage := "Internal server error"

		if domainerr.IsAccountNotFoundError(err) {
			statusCode = http.StatusNotFound
			errorMessage = "Account not found"
		}

		h.logger.Error("Error getting account balance", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(statusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: errorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:      account.ID,
		Balance:     account.Balance,
		TotalIncome: account.TotalIncome,
		TeamIncome:  account.TeamIncome,
		RabatIncome: account.RabatIncome,
	})
}

// ListTransactions handles the GET /account/:userId/transactions endpoint
func (h *AccountHandler) ListTransactions(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid limit parameter",
			})
			return
		}
		limit = parsed
	}

	transactions, err := h.accountService.ListTransactions(c.Request.Context(), userID, limit)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMessage := "Internal server error"

		if domainerr.IsAccountNotFoundError(err) {
			statusCode = http.StatusNotFound
			errorMessage = "Account not found"
		}

		h.logger.Error("Error listing transactions", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(statusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: errorMessage,
		})
		return
	}

	resp := dto.TransactionListResponse{
		UserID:       userID,
		Transactions: make([]dto.TransactionResponse, 0, len(transactions)),
	}
	for _, tx := range transactions {
		resp.Transactions = append(resp.Transactions, dto.NewTransactionResponse(tx))
	}
	c.JSON(http.StatusOK, resp)
}

// Recharge handles the POST /account/:userId/recharge endpoint
func (h *AccountHandler) Recharge(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	tx, err := h.accountService.Recharge(c.Request.Context(), userID, req.Amount)
	if err != nil {
		h.respondMutationError(c, userID, "recharge", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(tx))
}

// Withdraw handles the POST /account/:userId/withdraw endpoint
func (h *AccountHandler) Withdraw(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	tx, err := h.accountService.RequestWithdraw(c.Request.Context(), userID, req.Amount)
	if err != nil {
		h.respondMutationError(c, userID, "withdraw", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(tx))
}

// respondMutationError maps balance mutation failures to HTTP responses
func (h *AccountHandler) respondMutationError(c *gin.Context, userID uint64, operation string, err error) {
	statusCode := http.StatusInternalServerError
	errorMessage := "Internal server error"

	switch {
	case domainerr.IsAccountNotFoundError(err):
		statusCode = http.StatusNotFound
		errorMessage = "Account not found"
	case domainerr.IsInsufficientBalanceError(err):
		statusCode = http.StatusUnprocessableEntity
		errorMessage = "Insufficient balance"
	case errors.Is(err, domainerr.ErrInvalidAmount):
		statusCode = http.StatusBadRequest
		errorMessage = "Amount must be positive"
	}

	h.logger.Error("Error processing balance mutation", map[string]any{
		"user_id":   userID,
		"operation": operation,
		"error":     err.Error(),
	})
	c.JSON(statusCode, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: errorMessage,
	})
}

// parseUserID extracts and validates the userId path parameter, writing the
// error response itself when the value is malformed
func parseUserID(c *gin.Context) (uint64, bool) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAccountID),
			Message: "Invalid user ID format",
		})
		return 0, false
	}
	return userID, true
}
