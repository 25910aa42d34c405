package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	domainerrors "github.com/galewarning/treetracker-wallet-api/internal/domain/errors"
	"github.com/galewarning/treetracker-wallet-api/internal/interfaces/http/middleware"
	"github.com/galewarning/treetracker-wallet-api/internal/interfaces/http/response"
)

type TrustService interface {
	RequestTrust(ctx context.Context, actingWallet uuid.UUID, targetWalletName, requestType string) (*entities.TrustRelationship, error)
	AcceptTrust(ctx context.Context, actingWallet, relationshipID uuid.UUID) (*entities.TrustRelationship, error)
	ListTrustRelationships(ctx context.Context, actingWallet uuid.UUID) ([]*entities.TrustRelationship, error)
}

type TrustHandler struct {
	usecase TrustService
}

func NewTrustHandler(usecase TrustService) *TrustHandler {
	return &TrustHandler{usecase: usecase}
}

type CreateTrustRequest struct {
	TargetWallet string `json:"targetWallet" binding:"required"`
	RequestType  string `json:"requestType" binding:"required"`
}

// RequestTrust creates a trust relationship request
// POST /trust_relationships
func (h *TrustHandler) RequestTrust(c *gin.Context) {
	actingWallet, ok := middleware.GetWalletID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var req CreateTrustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.InvalidArgument(err.Error()))
		return
	}

	rel, err := h.usecase.RequestTrust(c.Request.Context(), actingWallet, req.TargetWallet, req.RequestType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, rel)
}

// AcceptTrust activates a requested trust relationship
// POST /trust_relationships/:id/accept
func (h *TrustHandler) AcceptTrust(c *gin.Context) {
	actingWallet, ok := middleware.GetWalletID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	relID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.InvalidArgument("invalid trust relationship ID"))
		return
	}

	rel, err := h.usecase.AcceptTrust(c.Request.Context(), actingWallet, relID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, rel)
}

// ListTrustRelationships lists relationships involving the acting wallet
// GET /trust_relationships
func (h *TrustHandler) ListTrustRelationships(c *gin.Context) {
	actingWallet, ok := middleware.GetWalletID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	rels, err := h.usecase.ListTrustRelationships(c.Request.Context(), actingWallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"trust_relationships": rels,
	})
}
