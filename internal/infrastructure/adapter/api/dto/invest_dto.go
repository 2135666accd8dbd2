package dto

// PurchaseRequest represents the API request for buying a product
type PurchaseRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
}

// InvestmentResponse represents one investment in API responses
type InvestmentResponse struct {
	InvestmentID  uint64 `json:"investmentId"`
	OrderID       string `json:"orderId"`
	ProductID     uint64 `json:"productId"`
	Amount        int64  `json:"amount"`
	DailyIncome   int64  `json:"dailyIncome"`
	DaysRemaining int    `json:"daysRemaining"`
	TotalEarned   int64  `json:"totalEarned"`
	Status        string `json:"status"`
}

// PurchaseResponse represents the API response for a committed purchase
type PurchaseResponse struct {
	Investment InvestmentResponse     `json:"investment"`
	Rewards    *RewardSummaryResponse `json:"rewards,omitempty"`
}

// ProductResponse represents one catalog product
type ProductResponse struct {
	ProductID   uint64 `json:"productId"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	DailyIncome int64  `json:"dailyIncome"`
	Validity    int    `json:"validity"`
}

// ProductListResponse wraps the active product catalog
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}
