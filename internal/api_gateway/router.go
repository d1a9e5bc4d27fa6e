package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retail-ledger-engine/internal/api_gateway/handler"
	"github.com/retail-ledger-engine/internal/api_gateway/middleware"
)

// handlers groups the HTTP handlers the router mounts
type handlers struct {
	accounts  *handler.AccountHandler
	ledger    *handler.LedgerHandler
	stock     *handler.StockHandler
	sequences *handler.SequenceHandler
	audit     *handler.AuditHandler
	commands  *handler.CommandHandler
}

// setupRouter configures API routes and middleware for the application
func setupRouter(logger *slog.Logger, r *gin.Engine, h handlers) {
	// Correlation and actor run before the logger so its entries carry both
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Actor())
	r.Use(middleware.Logger(logger))

	v1 := r.Group("/api/v1")
	{
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", h.accounts.Create)
			accounts.GET("", h.accounts.List)
			accounts.GET("/:id", h.accounts.GetByID)
			accounts.PUT("/:id/default", h.accounts.SetDefault)
		}

		bankAccounts := v1.Group("/bank-accounts")
		{
			bankAccounts.POST("", h.accounts.CreateBankAccount)
			bankAccounts.GET("/:id", h.accounts.GetBankAccount)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.POST("", h.ledger.CreateTransaction)
			transactions.GET("/:id", h.ledger.GetTransaction)
			transactions.PUT("/:id", h.ledger.UpdateTransaction)
			transactions.DELETE("/:id", h.ledger.DeleteTransaction)
		}

		bankTransactions := v1.Group("/bank-transactions")
		{
			bankTransactions.POST("", h.ledger.CreateBankTransaction)
			bankTransactions.GET("/:id", h.ledger.GetBankTransaction)
			bankTransactions.PUT("/:id", h.ledger.UpdateBankTransaction)
			bankTransactions.DELETE("/:id", h.ledger.DeleteBankTransaction)
		}

		swaps := v1.Group("/swaps")
		{
			swaps.POST("", h.ledger.CreateSwap)
			swaps.GET("/:id", h.ledger.GetSwap)
			swaps.PUT("/:id", h.ledger.UpdateSwap)
			swaps.DELETE("/:id", h.ledger.DeleteSwap)
		}

		movements := v1.Group("/stock-movements")
		{
			movements.POST("", h.stock.Create)
			movements.PUT("/:id", h.stock.Update)
			movements.DELETE("/:id", h.stock.Delete)
		}

		sequences := v1.Group("/sequences")
		{
			sequences.POST("/sync", h.sequences.Sync)
			sequences.POST("/:namespace/next", h.sequences.Next)
		}

		v1.GET("/audit/:entityType/:id", h.audit.ListByEntity)
		v1.POST("/commands", h.commands.Submit)
		v1.GET("/commands/:id/event", h.audit.GetCommandEvent)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
