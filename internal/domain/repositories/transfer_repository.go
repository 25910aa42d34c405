package repositories

import (
	"context"
	"time"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	"github.com/google/uuid"
)

// TransferFilter narrows transfer listings. WalletID matches transfers
// where the wallet is initiator or counterparty.
type TransferFilter struct {
	WalletID *uuid.UUID
	State    *entities.TransferState
	Since    *time.Time
	Until    *time.Time
}

// TransferRepository persists transfer records
type TransferRepository interface {
	Create(ctx context.Context, transfer *entities.Transfer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transfer, error)

	// TransitionState moves a transfer from one of the given states to the
	// target state. Returns false (and no error) when the record was not in
	// any of the from states, so concurrent conflicting transitions have
	// exactly one winner.
	TransitionState(ctx context.Context, id uuid.UUID, from []entities.TransferState, to entities.TransferState) (bool, error)

	// SetFulfilled stamps the fulfilled state and records the resolved
	// token set, guarded on the accepted state like TransitionState.
	SetFulfilled(ctx context.Context, id uuid.UUID, resolved []uuid.UUID) (bool, error)

	// ListByFilter returns one page plus a total count computed over the
	// same predicate within one consistent read.
	ListByFilter(ctx context.Context, filter TransferFilter, limit, offset int) ([]*entities.Transfer, int, error)

	GetStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entities.Transfer, error)
	CancelTransfers(ctx context.Context, ids []uuid.UUID) error
}
