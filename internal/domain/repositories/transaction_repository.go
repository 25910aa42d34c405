package repositories

import (
	"context"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	"github.com/google/uuid"
)

// TransactionRepository persists custody-change history
type TransactionRepository interface {
	CreateBatch(ctx context.Context, transactions []*entities.Transaction) error
	ListByToken(ctx context.Context, tokenID uuid.UUID, limit, offset int) ([]*entities.Transaction, int, error)
}
