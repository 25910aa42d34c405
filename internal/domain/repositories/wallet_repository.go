package repositories

import (
	"context"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	"github.com/google/uuid"
)

// WalletRepository defines wallet data operations
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error)
	GetByName(ctx context.Context, name string) (*entities.Wallet, error)
}
