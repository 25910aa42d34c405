package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "github.com/galewarning/treetracker-wallet-api/internal/domain/errors"
	"github.com/galewarning/treetracker-wallet-api/internal/interfaces/http/response"
	"github.com/galewarning/treetracker-wallet-api/internal/usecases"
	"github.com/galewarning/treetracker-wallet-api/pkg/logger"
	"github.com/galewarning/treetracker-wallet-api/pkg/redis"
)

const sessionTTL = 7 * 24 * time.Hour

type AuthService interface {
	Login(ctx context.Context, walletName, password string) (*usecases.LoginOutput, error)
}

type AuthHandler struct {
	usecase      AuthService
	sessionStore *redis.SessionStore
}

func NewAuthHandler(usecase AuthService, sessionStore *redis.SessionStore) *AuthHandler {
	return &AuthHandler{usecase: usecase, sessionStore: sessionStore}
}

type LoginRequest struct {
	Wallet   string `json:"wallet" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a wallet and issues bearer tokens
// POST /auth
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.InvalidArgument(err.Error()))
		return
	}

	out, err := h.usecase.Login(c.Request.Context(), req.Wallet, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.sessionStore != nil {
		session := &redis.SessionData{
			WalletID:     out.Wallet.ID.String(),
			AccessToken:  out.Tokens.AccessToken,
			RefreshToken: out.Tokens.RefreshToken,
		}
		if err := h.sessionStore.CreateSession(c.Request.Context(), out.Wallet.ID.String(), session, sessionTTL); err != nil {
			// Login still succeeds on a session write failure; the bearer
			// token alone is enough to use the API.
			logger.Warn(c.Request.Context(), "session write failed", zap.Error(err))
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"wallet": gin.H{
			"id":   out.Wallet.ID,
			"name": out.Wallet.Name,
		},
		"token":        out.Tokens.AccessToken,
		"refreshToken": out.Tokens.RefreshToken,
	})
}
