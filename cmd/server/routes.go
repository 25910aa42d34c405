package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/galewarning/treetracker-wallet-api/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	transferHandler *handlers.TransferHandler
	tokenHandler    *handlers.TokenHandler
	trustHandler    *handlers.TrustHandler
	authMiddleware  gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth route (public)
		v1.POST("/auth", d.authHandler.Login)

		// Transfer routes (protected)
		transfers := v1.Group("/transfers")
		transfers.Use(d.authMiddleware)
		{
			transfers.POST("", d.transferHandler.CreateTransfer)
			transfers.GET("", d.transferHandler.ListTransfers)
			transfers.GET("/:id", d.transferHandler.GetTransfer)
			transfers.POST("/:id/accept", d.transferHandler.AcceptTransfer)
			transfers.POST("/:id/decline", d.transferHandler.DeclineTransfer)
			transfers.POST("/:id/fulfill", d.transferHandler.FulfillTransfer)
			transfers.DELETE("/:id", d.transferHandler.CancelTransfer)
			transfers.GET("/:id/tokens", d.transferHandler.ListTransferTokens)
		}

		// Token routes (protected)
		tokens := v1.Group("/tokens")
		tokens.Use(d.authMiddleware)
		{
			tokens.GET("", d.tokenHandler.ListTokens)
			tokens.GET("/:id", d.tokenHandler.GetToken)
			tokens.GET("/:id/transactions", d.tokenHandler.ListTokenTransactions)
		}

		// Trust relationship routes (protected)
		trust := v1.Group("/trust_relationships")
		trust.Use(d.authMiddleware)
		{
			trust.POST("", d.trustHandler.RequestTrust)
			trust.POST("/:id/accept", d.trustHandler.AcceptTrust)
			trust.GET("", d.trustHandler.ListTrustRelationships)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "treetracker-wallet-api",
			"version": "0.1.0",
		})
	})
}
