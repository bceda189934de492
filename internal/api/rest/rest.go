package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-staker/internal/api/middleware"
	"github.com/feral-file/ff-staker/internal/metrics"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check and metrics endpoints (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Ledger calls (the JWT subject is the caller)
		v1.POST("/stakes", middleware.CallerAuth(authCfg), handler.Stake)
		v1.POST("/harvests", middleware.CallerAuth(authCfg), handler.Harvest)

		// Stake reads (public read access)
		v1.GET("/stakes/:item_id", handler.GetStakeRecord)
		v1.GET("/owners/:address/stakes", handler.ListOwnerStakes)
		v1.GET("/owners/:address/stakes/status", handler.GetStakeStatuses)
		v1.GET("/owners/:address/stakes/:item_id", handler.GetStakeStatus)

		// Reward reads (public read access)
		v1.GET("/rewards/:address", handler.GetRewardBalance)
		v1.GET("/pool", handler.GetPool)

		// Journal (public read access)
		v1.GET("/journal", handler.GetJournal)

		// Administrative endpoints (requires API key authentication only)
		v1.POST("/admin/withdrawals", middleware.APIKeyAuth(authCfg), handler.Withdraw)
		v1.POST("/admin/deposits", middleware.APIKeyAuth(authCfg), handler.Deposit)
	}
}
