package routes

import (
	coreport "github.com/aryaseta/reward-engine/internal/domain/port/core"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/api/handler"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	accountHandler *handler.AccountHandler,
	investHandler *handler.InvestHandler,
	claimHandler *handler.ClaimHandler,
) {
	// Product catalog
	router.GET("/products", investHandler.ListProducts)

	// Account routes
	accountRoutes := router.Group("/account")
	{
		accountRoutes.POST("", accountHandler.CreateAccount)
		accountRoutes.GET("/:userId/balance", accountHandler.GetBalance)
		accountRoutes.GET("/:userId/transactions", accountHandler.ListTransactions)
		accountRoutes.POST("/:userId/recharge", accountHandler.Recharge)
		accountRoutes.POST("/:userId/withdraw", accountHandler.Withdraw)
		accountRoutes.POST("/:userId/invest", investHandler.Purchase)
		accountRoutes.POST("/:userId/claim-all", claimHandler.ClaimAll)
	}

	// Investment routes
	investmentRoutes := router.Group("/investment")
	{
		investmentRoutes.POST("/:investmentId/claim", claimHandler.ClaimDaily)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
