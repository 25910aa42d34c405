package repositories

import (
	"context"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	"github.com/google/uuid"
)

// TokenRepository defines token registry operations
type TokenRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Token, error)
	ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entities.Token, int, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID, limit, offset int) ([]*entities.Token, error)

	// ResolveTokens turns a selector into the concrete token ids to move,
	// restricted to tokens currently custodied by walletID. Bundle selection
	// is deterministic (ascending id). When called inside a unit-of-work
	// transaction the matched rows are locked until commit.
	// Returns ErrInsufficientTokens when the selector cannot be satisfied.
	ResolveTokens(ctx context.Context, walletID uuid.UUID, selector entities.TokenSelector) ([]uuid.UUID, error)

	// TransferCustody moves every token in ids from one wallet to another.
	// The write is guarded on the current custodian; if any token is no
	// longer held by fromWallet the whole call fails with ErrCustodyConflict.
	TransferCustody(ctx context.Context, ids []uuid.UUID, fromWallet, toWallet uuid.UUID) error
}
