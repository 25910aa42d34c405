package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/galewarning/treetracker-wallet-api/pkg/jwt"
	"github.com/galewarning/treetracker-wallet-api/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// WalletIDKey is the context key for the authenticated wallet id
	WalletIDKey = "walletId"
	// WalletNameKey is the context key for the authenticated wallet name
	WalletNameKey = "walletName"
)

// AuthMiddleware resolves the bearer token to the acting wallet. Every
// authenticated handler reads the wallet from the request context; there
// is no other source of identity.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug(c.Request.Context(), "token validation failed")
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(WalletIDKey, claims.WalletID)
		c.Set(WalletNameKey, claims.WalletName)

		c.Next()
	}
}

// GetWalletID gets the acting wallet id from context
func GetWalletID(c *gin.Context) (uuid.UUID, bool) {
	walletID, exists := c.Get(WalletIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return walletID.(uuid.UUID), true
}

// GetWalletName gets the acting wallet name from context
func GetWalletName(c *gin.Context) (string, bool) {
	name, exists := c.Get(WalletNameKey)
	if !exists {
		return "", false
	}
	return name.(string), true
}
