package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	domainerrors "github.com/galewarning/treetracker-wallet-api/internal/domain/errors"
	"github.com/galewarning/treetracker-wallet-api/internal/interfaces/http/middleware"
	"github.com/galewarning/treetracker-wallet-api/internal/interfaces/http/response"
	"github.com/galewarning/treetracker-wallet-api/pkg/utils"
)

type TokenService interface {
	ListTokens(ctx context.Context, actingWallet uuid.UUID, walletName string, limit, offset int) ([]*entities.Token, int, error)
	GetToken(ctx context.Context, actingWallet, tokenID uuid.UUID) (*entities.Token, error)
	ListTokenTransactions(ctx context.Context, actingWallet, tokenID uuid.UUID, limit, offset int) ([]*entities.Transaction, int, error)
}

type TokenHandler struct {
	usecase TokenService
}

func NewTokenHandler(usecase TokenService) *TokenHandler {
	return &TokenHandler{usecase: usecase}
}

// ListTokens lists the acting wallet's tokens
// GET /tokens
func (h *TokenHandler) ListTokens(c *gin.Context) {
	actingWallet, ok := middleware.GetWalletID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	params := utils.GetPaginationParams(limit, offset)

	tokens, total, err := h.usecase.ListTokens(c.Request.Context(), actingWallet, c.Query("wallet"), params.Limit, params.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"tokens":     tokens,
		"pagination": utils.CalculateMeta(total, params.Limit, params.Offset),
	})
}

// GetToken returns one token custodied by the acting wallet
// GET /tokens/:id
func (h *TokenHandler) GetToken(c *gin.Context) {
	actingWallet, ok := middleware.GetWalletID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	tokenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.InvalidArgument("invalid token ID"))
		return
	}

	token, err := h.usecase.GetToken(c.Request.Context(), actingWallet, tokenID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, token)
}

// ListTokenTransactions returns a token's custody history, newest first
// GET /tokens/:id/transactions
func (h *TokenHandler) ListTokenTransactions(c *gin.Context) {
	actingWallet, ok := middleware.GetWalletID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	tokenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.InvalidArgument("invalid token ID"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	params := utils.GetPaginationParams(limit, offset)

	history, total, err := h.usecase.ListTokenTransactions(c.Request.Context(), actingWallet, tokenID, params.Limit, params.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"history":    history,
		"pagination": utils.CalculateMeta(total, params.Limit, params.Offset),
	})
}
