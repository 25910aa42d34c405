package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	domainerrors "github.com/galewarning/treetracker-wallet-api/internal/domain/errors"
	"github.com/galewarning/treetracker-wallet-api/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WalletRepositoryImpl implements WalletRepository
type WalletRepositoryImpl struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepositoryImpl {
	return &WalletRepositoryImpl{db: db}
}

func (r *WalletRepositoryImpl) Create(ctx context.Context, wallet *entities.Wallet) error {
	m := &models.Wallet{
		ID:           wallet.ID,
		Name:         wallet.Name,
		PasswordHash: wallet.PasswordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *WalletRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *WalletRepositoryImpl) GetByName(ctx context.Context, name string) (*entities.Wallet, error) {
	var m models.Wallet
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *WalletRepositoryImpl) toEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:           m.ID,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
