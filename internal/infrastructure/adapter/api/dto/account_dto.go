package dto

// CreateAccountRequest represents the API request for registering an account
type CreateAccountRequest struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	ReferredBy string `json:"referredBy"`
}

// AccountResponse represents the API response for a created account
type AccountResponse struct {
	UserID       uint64 `json:"userId"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referralCode"`
	ReferredBy   string `json:"referredBy,omitempty"`
}

// BalanceResponse represents the API response for an account balance lookup
type BalanceResponse struct {
	UserID      uint64 `json:"userId"`
	Balance     int64  `json:"balance"`
	TotalIncome int64  `json:"totalIncome"`
	TeamIncome  int64  `json:"teamIncome"`
	RabatIncome int64  `json:"rabatIncome"`
}

// AmountRequest represents a recharge or withdraw request body
type AmountRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// TransactionResponse represents one row of an account's transaction history
type TransactionResponse struct {
	Reference   string `json:"reference"`
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// TransactionListResponse wraps an account's transaction history
type TransactionListResponse struct {
	UserID       uint64                `json:"userId"`
	Transactions []TransactionResponse `json:"transactions"`
}
