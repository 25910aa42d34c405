package repositories

import (
	"context"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	"github.com/galewarning/treetracker-wallet-api/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionRepositoryImpl implements TransactionRepository
type TransactionRepositoryImpl struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepositoryImpl {
	return &TransactionRepositoryImpl{db: db}
}

func (r *TransactionRepositoryImpl) CreateBatch(ctx context.Context, transactions []*entities.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	ms := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		ms = append(ms, models.Transaction{
			ID:             tx.ID,
			TokenID:        tx.TokenID,
			TransferID:     tx.TransferID,
			SourceWalletID: tx.SourceWalletID,
			DestWalletID:   tx.DestWalletID,
			ProcessedAt:    tx.ProcessedAt,
		})
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(&ms).Error
}

// transactionPage carries the windowed total alongside each page row so
// the count and the page come from one statement.
type transactionPage struct {
	models.Transaction `gorm:"embedded"`
	TotalCount         int64 `gorm:"column:total_count"`
}

func (r *TransactionRepositoryImpl) ListByToken(ctx context.Context, tokenID uuid.UUID, limit, offset int) ([]*entities.Transaction, int, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var rows []transactionPage
	if err := db.Model(&models.Transaction{}).
		Select("transactions.*, count(*) OVER() AS total_count").
		Where("token_id = ?", tokenID).
		Order("processed_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	if len(rows) == 0 {
		// The offset landed past the last row, so no row carried the
		// window total.
		var total int64
		if err := db.Model(&models.Transaction{}).Where("token_id = ?", tokenID).Count(&total).Error; err != nil {
			return nil, 0, err
		}
		return []*entities.Transaction{}, int(total), nil
	}

	txs := make([]*entities.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, &entities.Transaction{
			ID:             row.ID,
			TokenID:        row.TokenID,
			TransferID:     row.TransferID,
			SourceWalletID: row.SourceWalletID,
			DestWalletID:   row.DestWalletID,
			ProcessedAt:    row.ProcessedAt,
		})
	}
	return txs, int(rows[0].TotalCount), nil
}
