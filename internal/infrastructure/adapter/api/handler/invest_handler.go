package handler

import (
	"net/http"

	domainerr "github.com/aryaseta/reward-engine/internal/domain/error"
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	investUseCase "github.com/aryaseta/reward-engine/internal/domain/usecase/invest"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// InvestHandler handles product catalog and purchase HTTP requests
type InvestHandler struct {
	investService *investUseCase.Service
	logger        coreport.Logger
}

// NewInvestHandler creates a new invest handler instance
func NewInvestHandler(
	investService *investUseCase.Service,
	logger coreport.Logger,
) *InvestHandler {
	return &InvestHandler{
		investService: investService,
		logger:        logger,
	}
}

// ListProducts handles the GET /products endpoint
func (h *InvestHandler) ListProducts(c *gin.Context) {
	products, err := h.investService.ListProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("Error listing products", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Internal server error",
		})
		return
	}

	resp := dto.ProductListResponse{
		Products: make([]dto.ProductResponse, 0, len(products)),
	}
	for _, p := range products {
		resp.Products = append(resp.Products, dto.ProductResponse{
			ProductID:   p.ID,
			Name:        p.Name,
			Price:       p.Price,
			DailyIncome: p.DailyIncome,
			Validity:    p.Validity,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Purchase handles the POST /account/:userId/invest endpoint
func (h *InvestHandler) Purchase(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.investService.Purchase(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMessage := "Internal server error"

		switch {
		case domainerr.IsAccountNotFoundError(err):
			statusCode = http.StatusNotFound
			errorMessage = "Account not found"
		case domainerr.IsNotFoundError(err):
			statusCode = http.StatusNotFound
			errorMessage = "Product not found"
		case domainerr.IsInsufficientBalanceError(err):
			statusCode = http.StatusUnprocessableEntity
			errorMessage = "Insufficient balance"
		}

		h.logger.Error("Error purchasing product", map[string]any{
			"user_id":    userID,
			"product_id": req.ProductID,
			"error":      err.Error(),
		})
		c.JSON(statusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: errorMessage,
		})
		return
	}

	c.JSON(http.StatusCreated, dto.PurchaseResponse{
		Investment: dto.NewInvestmentResponse(result.Investment),
		Rewards:    dto.NewRewardSummaryResponse(result.Rewards),
	})
}
