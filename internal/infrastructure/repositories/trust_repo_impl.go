package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	domainerrors "github.com/galewarning/treetracker-wallet-api/internal/domain/errors"
	"github.com/galewarning/treetracker-wallet-api/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrustRepositoryImpl implements TrustRepository
type TrustRepositoryImpl struct {
	db *gorm.DB
}

func NewTrustRepository(db *gorm.DB) *TrustRepositoryImpl {
	return &TrustRepositoryImpl{db: db}
}

func (r *TrustRepositoryImpl) Create(ctx context.Context, rel *entities.TrustRelationship) error {
	m := &models.TrustRelationship{
		ID:             rel.ID,
		SourceWalletID: rel.SourceWalletID,
		TargetWalletID: rel.TargetWalletID,
		Type:           string(rel.Type),
		State:          string(rel.State),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		// The uq_trust_open partial index rejects a second non-cancelled
		// row for the same (source, target, type), closing the window
		// between the usecase's duplicate check and this insert.
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateRequest
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func (r *TrustRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.TrustRelationship, error) {
	var m models.TrustRelationship
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TrustRepositoryImpl) HasActiveTrust(ctx context.Context, sourceWallet, targetWallet uuid.UUID, types []entities.TrustType) (bool, error) {
	typeStrings := make([]string, 0, len(types))
	for _, t := range types {
		typeStrings = append(typeStrings, string(t))
	}

	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.TrustRelationship{}).
		Where("source_wallet_id = ? AND target_wallet_id = ? AND type IN ? AND state = ?",
			sourceWallet, targetWallet, typeStrings, string(entities.TrustStateActive)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TrustRepositoryImpl) ExistsOpen(ctx context.Context, sourceWallet, targetWallet uuid.UUID, trustType entities.TrustType) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.TrustRelationship{}).
		Where("source_wallet_id = ? AND target_wallet_id = ? AND type = ? AND state IN ?",
			sourceWallet, targetWallet, string(trustType), []string{
				string(entities.TrustStateRequested),
				string(entities.TrustStateActive),
			}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TrustRepositoryImpl) UpdateState(ctx context.Context, id uuid.UUID, state entities.TrustState) error {
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.TrustRelationship{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"state":      string(state),
			"updated_at": time.Now(),
		}).Error
}

func (r *TrustRepositoryImpl) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]*entities.TrustRelationship, error) {
	var ms []models.TrustRelationship
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("source_wallet_id = ? OR target_wallet_id = ?", walletID, walletID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	rels := make([]*entities.TrustRelationship, 0, len(ms))
	for _, m := range ms {
		model := m
		rels = append(rels, r.toEntity(&model))
	}
	return rels, nil
}

func (r *TrustRepositoryImpl) toEntity(m *models.TrustRelationship) *entities.TrustRelationship {
	return &entities.TrustRelationship{
		ID:             m.ID,
		SourceWalletID: m.SourceWalletID,
		TargetWalletID: m.TargetWalletID,
		Type:           entities.TrustType(m.Type),
		State:          entities.TrustState(m.State),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
