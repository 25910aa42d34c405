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
	"gorm.io/gorm/clause"
)

// TokenRepositoryImpl implements TokenRepository
type TokenRepositoryImpl struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepositoryImpl {
	return &TokenRepositoryImpl{db: db}
}

func (r *TokenRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Token, error) {
	var m models.Token
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// tokenPage carries the windowed total alongside each page row so the
// count and the page come from one statement.
type tokenPage struct {
	models.Token `gorm:"embedded"`
	TotalCount   int64 `gorm:"column:total_count"`
}

func (r *TokenRepositoryImpl) ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entities.Token, int, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var rows []tokenPage
	if err := db.Model(&models.Token{}).
		Select("tokens.*, count(*) OVER() AS total_count").
		Where("wallet_id = ?", walletID).
		Order("id ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	if len(rows) == 0 {
		// The offset landed past the last row, so no row carried the
		// window total.
		var total int64
		if err := db.Model(&models.Token{}).Where("wallet_id = ?", walletID).Count(&total).Error; err != nil {
			return nil, 0, err
		}
		return []*entities.Token{}, int(total), nil
	}

	tokens := make([]*entities.Token, 0, len(rows))
	for _, row := range rows {
		model := row.Token
		tokens = append(tokens, r.toEntity(&model))
	}
	return tokens, int(rows[0].TotalCount), nil
}

func (r *TokenRepositoryImpl) GetByIDs(ctx context.Context, ids []uuid.UUID, limit, offset int) ([]*entities.Token, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ms []models.Token
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	tokens := make([]*entities.Token, 0, len(ms))
	for _, m := range ms {
		model := m
		tokens = append(tokens, r.toEntity(&model))
	}
	return tokens, nil
}

// ResolveTokens resolves a selector against the wallet's current holdings.
// Inside a unit of work on postgres the matched rows are locked with
// SELECT ... FOR UPDATE so racing fulfillments serialize; sqlite (tests)
// has no row locks.
func (r *TokenRepositoryImpl) ResolveTokens(ctx context.Context, walletID uuid.UUID, selector entities.TokenSelector) ([]uuid.UUID, error) {
	if err := selector.Validate(); err != nil {
		return nil, domainerrors.ErrInvalidArgument
	}

	db := GetDB(ctx, r.db).WithContext(ctx)
	if InTransaction(ctx) && db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ms []models.Token
	if selector.IsBundle() {
		// Deterministic ascending-id selection keeps retries idempotent.
		if err := db.Where("wallet_id = ?", walletID).
			Order("id ASC").
			Limit(selector.BundleSize).
			Find(&ms).Error; err != nil {
			return nil, err
		}
		if len(ms) < selector.BundleSize {
			return nil, domainerrors.ErrInsufficientTokens
		}
		ids := make([]uuid.UUID, 0, len(ms))
		for _, m := range ms {
			ids = append(ids, m.ID)
		}
		return ids, nil
	}

	if err := db.Where("id IN ? AND wallet_id = ?", selector.Tokens, walletID).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	if len(ms) != len(selector.Tokens) {
		return nil, domainerrors.ErrInsufficientTokens
	}
	// Preserve the order the caller asked for.
	return selector.Tokens, nil
}

// TransferCustody moves the tokens with a custodian-guarded update. If
// another committed transaction already moved any of them, fewer rows
// match than requested and the call reports a custody conflict.
func (r *TokenRepositoryImpl) TransferCustody(ctx context.Context, ids []uuid.UUID, fromWallet, toWallet uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	res := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Token{}).
		Where("id IN ? AND wallet_id = ?", ids, fromWallet).
		Updates(map[string]interface{}{
			"wallet_id":  toWallet,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(len(ids)) {
		return domainerrors.ErrCustodyConflict
	}
	return nil
}

func (r *TokenRepositoryImpl) toEntity(m *models.Token) *entities.Token {
	return &entities.Token{
		ID:        m.ID,
		WalletID:  m.WalletID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
