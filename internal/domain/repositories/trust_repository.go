package repositories

import (
	"context"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	"github.com/google/uuid"
)

// TrustRepository persists directional trust relationships
type TrustRepository interface {
	Create(ctx context.Context, rel *entities.TrustRelationship) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TrustRelationship, error)

	// HasActiveTrust reports whether an active grant of any of the given
	// types exists from source to target. Direction-sensitive.
	HasActiveTrust(ctx context.Context, sourceWallet, targetWallet uuid.UUID, types []entities.TrustType) (bool, error)

	// ExistsOpen reports whether a requested or active relationship already
	// exists for the exact (source, target, type) triple.
	ExistsOpen(ctx context.Context, sourceWallet, targetWallet uuid.UUID, trustType entities.TrustType) (bool, error)

	UpdateState(ctx context.Context, id uuid.UUID, state entities.TrustState) error
	ListByWallet(ctx context.Context, walletID uuid.UUID) ([]*entities.TrustRelationship, error)
}
