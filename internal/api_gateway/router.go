package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paise-ledger/internal/api_gateway/handler"
	"github.com/paise-ledger/internal/api_gateway/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
) {
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Account operations
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("/:account_no", accountHandler.GetByAccountNo)
			accounts.POST("/:account_no/deposit", transactionHandler.Deposit)
			accounts.POST("/:account_no/withdraw", transactionHandler.Withdraw)
			accounts.GET("/:account_no/transactions", transactionHandler.List)
			accounts.GET("/:account_no/statement", transactionHandler.Statement)
		}

		// Transfer operations
		v1.POST("/transfers", transactionHandler.Transfer)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
