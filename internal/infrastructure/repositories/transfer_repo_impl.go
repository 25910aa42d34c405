package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	domainerrors "github.com/galewarning/treetracker-wallet-api/internal/domain/errors"
	domainRepos "github.com/galewarning/treetracker-wallet-api/internal/domain/repositories"
	"github.com/galewarning/treetracker-wallet-api/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// TransferRepositoryImpl implements TransferRepository
type TransferRepositoryImpl struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepositoryImpl {
	return &TransferRepositoryImpl{db: db}
}

func (r *TransferRepositoryImpl) Create(ctx context.Context, transfer *entities.Transfer) error {
	requested, err := marshalTokenIDs(transfer.Tokens)
	if err != nil {
		return err
	}

	m := &models.Transfer{
		ID:              transfer.ID,
		InitiatorID:     transfer.InitiatorID,
		CounterpartyID:  transfer.CounterpartyID,
		Direction:       string(transfer.Direction),
		State:           string(transfer.State),
		RequestedTokens: requested,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if transfer.BundleSize > 0 {
		m.BundleSize = null.IntFrom(transfer.BundleSize)
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *TransferRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transfer, error) {
	var m models.Transfer
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// TransitionState performs a state-guarded update. A false return means
// the record was not in any of the from states when the write ran, so the
// caller lost the race (or requested an illegal transition).
func (r *TransferRepositoryImpl) TransitionState(ctx context.Context, id uuid.UUID, from []entities.TransferState, to entities.TransferState) (bool, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"state":      string(to),
		"updated_at": now,
	}
	if to.IsTerminal() {
		updates["closed_at"] = now
	}

	res := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transfer{}).
		Where("id = ? AND state IN ?", id, stateStrings(from)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *TransferRepositoryImpl) SetFulfilled(ctx context.Context, id uuid.UUID, resolved []uuid.UUID) (bool, error) {
	resolvedJSON, err := marshalTokenIDs(resolved)
	if err != nil {
		return false, err
	}

	now := time.Now()
	res := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transfer{}).
		Where("id = ? AND state = ?", id, string(entities.TransferStateAccepted)).
		Updates(map[string]interface{}{
			"state":           string(entities.TransferStateFulfilled),
			"resolved_tokens": resolvedJSON,
			"closed_at":       now,
			"updated_at":      now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// transferPage carries the windowed total alongside each page row so the
// count and the page come from one statement.
type transferPage struct {
	models.Transfer `gorm:"embedded"`
	TotalCount      int64 `gorm:"column:total_count"`
}

func (r *TransferRepositoryImpl) ListByFilter(ctx context.Context, filter domainRepos.TransferFilter, limit, offset int) ([]*entities.Transfer, int, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	filtered := func() *gorm.DB {
		query := db.Model(&models.Transfer{})
		if filter.WalletID != nil {
			query = query.Where("initiator_id = ? OR counterparty_id = ?", *filter.WalletID, *filter.WalletID)
		}
		if filter.State != nil {
			query = query.Where("state = ?", string(*filter.State))
		}
		if filter.Since != nil {
			query = query.Where("created_at >= ?", *filter.Since)
		}
		if filter.Until != nil {
			query = query.Where("created_at <= ?", *filter.Until)
		}
		return query
	}

	var rows []transferPage
	if err := filtered().
		Select("transfers.*, count(*) OVER() AS total_count").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	if len(rows) == 0 {
		// The offset landed past the last row, so no row carried the
		// window total.
		var total int64
		if err := filtered().Count(&total).Error; err != nil {
			return nil, 0, err
		}
		return []*entities.Transfer{}, int(total), nil
	}

	transfers := make([]*entities.Transfer, 0, len(rows))
	for _, row := range rows {
		model := row.Transfer
		e, err := r.toEntity(&model)
		if err != nil {
			return nil, 0, err
		}
		transfers = append(transfers, e)
	}
	return transfers, int(rows[0].TotalCount), nil
}

func (r *TransferRepositoryImpl) GetStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entities.Transfer, error) {
	var ms []models.Transfer
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("state IN ? AND created_at < ?", []string{
			string(entities.TransferStateRequested),
			string(entities.TransferStateAccepted),
		}, olderThan).
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	transfers := make([]*entities.Transfer, 0, len(ms))
	for _, m := range ms {
		model := m
		e, err := r.toEntity(&model)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, e)
	}
	return transfers, nil
}

func (r *TransferRepositoryImpl) CancelTransfers(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now()
	// Guarded on pending states so a transfer fulfilled between the sweep's
	// read and this write is left alone.
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transfer{}).
		Where("id IN ? AND state IN ?", ids, []string{
			string(entities.TransferStateRequested),
			string(entities.TransferStateAccepted),
		}).
		Updates(map[string]interface{}{
			"state":      string(entities.TransferStateCancelled),
			"closed_at":  now,
			"updated_at": now,
		}).Error
}

func (r *TransferRepositoryImpl) toEntity(m *models.Transfer) (*entities.Transfer, error) {
	requested, err := unmarshalTokenIDs(m.RequestedTokens)
	if err != nil {
		return nil, err
	}
	resolved, err := unmarshalTokenIDs(m.ResolvedTokens)
	if err != nil {
		return nil, err
	}

	return &entities.Transfer{
		ID:             m.ID,
		InitiatorID:    m.InitiatorID,
		CounterpartyID: m.CounterpartyID,
		Direction:      entities.TransferDirection(m.Direction),
		State:          entities.TransferState(m.State),
		Tokens:         requested,
		BundleSize:     m.BundleSize.Int,
		ResolvedTokens: resolved,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		ClosedAt:       m.ClosedAt,
	}, nil
}

func marshalTokenIDs(ids []uuid.UUID) (null.String, error) {
	if len(ids) == 0 {
		return null.String{}, nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return null.String{}, err
	}
	return null.StringFrom(string(data)), nil
}

func unmarshalTokenIDs(s null.String) ([]uuid.UUID, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(s.String), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func stateStrings(states []entities.TransferState) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, string(s))
	}
	return out
}
