package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	domainerrors "github.com/galewarning/treetracker-wallet-api/internal/domain/errors"
	"github.com/galewarning/treetracker-wallet-api/internal/interfaces/http/middleware"
	"github.com/galewarning/treetracker-wallet-api/internal/interfaces/http/response"
	"github.com/galewarning/treetracker-wallet-api/internal/usecases"
	"github.com/galewarning/treetracker-wallet-api/pkg/utils"
)

type TransferService interface {
	InitiateTransfer(ctx context.Context, actingWallet uuid.UUID, input usecases.InitiateTransferInput) (*entities.Transfer, error)
	AcceptTransfer(ctx context.Context, actingWallet, transferID uuid.UUID) (*entities.Transfer, error)
	DeclineTransfer(ctx context.Context, actingWallet, transferID uuid.UUID) (*entities.Transfer, error)
	CancelTransfer(ctx context.Context, actingWallet, transferID uuid.UUID) (*entities.Transfer, error)
	FulfillTransfer(ctx context.Context, actingWallet, transferID uuid.UUID) (*entities.Transfer, error)
	GetTransfer(ctx context.Context, actingWallet, transferID uuid.UUID) (*entities.Transfer, error)
	ListTransfers(ctx context.Context, actingWallet uuid.UUID, input usecases.ListTransfersInput) ([]*entities.Transfer, int, error)
	ListTransferTokens(ctx context.Context, actingWallet, transferID uuid.UUID, limit, offset int) ([]*entities.Token, error)
}

type TransferHandler struct {
	usecase TransferService
}

func NewTransferHandler(usecase TransferService) *TransferHandler {
	return &TransferHandler{usecase: usecase}
}

type CreateTransferRequest struct {
	Direction          string      `json:"direction" binding:"required"`
	CounterpartyWallet string      `json:"counterpartyWallet" binding:"required"`
	Tokens             []uuid.UUID `json:"tokens"`
	BundleSize         int         `json:"bundleSize"`
}

// transferJSON renders a transfer with its derived token count
func transferJSON(t *entities.Transfer) gin.H {
	return gin.H{
		"id":             t.ID,
		"initiatorId":    t.InitiatorID,
		"counterpartyId": t.CounterpartyID,
		"direction":      t.Direction,
		"state":          t.State,
		"tokens":         t.Tokens,
		"bundleSize":     t.BundleSize,
		"resolvedTokens": t.ResolvedTokens,
		"tokenCount":     t.TokenCount(),
		"createdAt":      t.CreatedAt,
		"updatedAt":      t.UpdatedAt,
		"closedAt":       t.ClosedAt,
	}
}

// CreateTransfer initiates a transfer
// POST /transfers
func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	actingWallet, ok := middleware.GetWalletID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.InvalidArgument(err.Error()))
		return
	}

	transfer, err := h.usecase.InitiateTransfer(c.Request.Context(), actingWallet, usecases.InitiateTransferInput{
		Direction:          entities.TransferDirection(req.Direction),
		CounterpartyWallet: req.CounterpartyWallet,
		Tokens:             req.Tokens,
		BundleSize:         req.BundleSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, transferJSON(transfer))
}

// AcceptTransfer accepts a requested transfer
// POST /transfers/:id/accept
func (h *TransferHandler) AcceptTransfer(c *gin.Context) {
	h.transition(c, h.usecase.AcceptTransfer)
}

// DeclineTransfer declines a pending transfer
// POST /transfers/:id/decline
func (h *TransferHandler) DeclineTransfer(c *gin.Context) {
	h.transition(c, h.usecase.DeclineTransfer)
}

// CancelTransfer cancels a pending transfer
// DELETE /transfers/:id
func (h *TransferHandler) CancelTransfer(c *gin.Context) {
	h.transition(c, h.usecase.CancelTransfer)
}

// FulfillTransfer executes the custody change of an accepted transfer
// POST /transfers/:id/fulfill
func (h *TransferHandler) FulfillTransfer(c *gin.Context) {
	h.transition(c, h.usecase.FulfillTransfer)
}

func (h *TransferHandler) transition(c *gin.Context, op func(ctx context.Context, acting, id uuid.UUID) (*entities.Transfer, error)) {
	actingWallet, ok := middleware.GetWalletID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.InvalidArgument("invalid transfer ID"))
		return
	}

	transfer, err := op(c.Request.Context(), actingWallet, transferID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, transferJSON(transfer))
}

// GetTransfer returns one transfer the acting wallet participates in
// GET /transfers/:id
func (h *TransferHandler) GetTransfer(c *gin.Context) {
	actingWallet, ok := middleware.GetWalletID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.InvalidArgument("invalid transfer ID"))
		return
	}

	transfer, err := h.usecase.GetTransfer(c.Request.Context(), actingWallet, transferID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, transferJSON(transfer))
}

// ListTransfers lists transfers involving the acting wallet
// GET /transfers
func (h *TransferHandler) ListTransfers(c *gin.Context) {
	actingWallet, ok := middleware.GetWalletID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	// The wallet filter may only name the acting wallet; listings are
	// always scoped to the caller.
	if wallet := c.Query("wallet"); wallet != "" {
		name, _ := middleware.GetWalletName(c)
		if wallet != name {
			response.Error(c, domainerrors.Forbidden("cannot list another wallet's transfers"))
			return
		}
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	params := utils.GetPaginationParams(limit, offset)

	input := usecases.ListTransfersInput{
		Limit:  params.Limit,
		Offset: params.Offset,
	}

	if s := c.Query("state"); s != "" {
		state := entities.TransferState(s)
		input.State = &state
	}
	if s := c.Query("since"); s != "" {
		since, err := time.Parse(time.RFC3339, s)
		if err != nil {
			response.Error(c, domainerrors.InvalidArgument("since must be RFC3339"))
			return
		}
		input.Since = &since
	}
	if s := c.Query("until"); s != "" {
		until, err := time.Parse(time.RFC3339, s)
		if err != nil {
			response.Error(c, domainerrors.InvalidArgument("until must be RFC3339"))
			return
		}
		input.Until = &until
	}

	transfers, total, err := h.usecase.ListTransfers(c.Request.Context(), actingWallet, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	views := make([]gin.H, 0, len(transfers))
	for _, t := range transfers {
		views = append(views, transferJSON(t))
	}

	response.Success(c, http.StatusOK, gin.H{
		"transfers":  views,
		"pagination": utils.CalculateMeta(total, params.Limit, params.Offset),
	})
}

// ListTransferTokens lists the tokens attached to a transfer
// GET /transfers/:id/tokens
func (h *TransferHandler) ListTransferTokens(c *gin.Context) {
	actingWallet, ok := middleware.GetWalletID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.InvalidArgument("invalid transfer ID"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	params := utils.GetPaginationParams(limit, offset)

	tokens, err := h.usecase.ListTransferTokens(c.Request.Context(), actingWallet, transferID, params.Limit, params.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"tokens": tokens,
	})
}
