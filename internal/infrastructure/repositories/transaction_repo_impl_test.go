package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
)

func TestTransactionRepository_CreateBatchAndListByToken(t *testing.T) {
	db := newTestDB(t)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	tokenID := uuid.New()
	transferID := uuid.New()
	source := uuid.New()
	dest := uuid.New()

	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	require.NoError(t, repo.CreateBatch(ctx, []*entities.Transaction{
		{ID: uuid.New(), TokenID: tokenID, TransferID: transferID, SourceWalletID: source, DestWalletID: dest, ProcessedAt: older},
		{ID: uuid.New(), TokenID: tokenID, TransferID: uuid.New(), SourceWalletID: dest, DestWalletID: source, ProcessedAt: newer},
		{ID: uuid.New(), TokenID: uuid.New(), TransferID: transferID, SourceWalletID: source, DestWalletID: dest, ProcessedAt: newer},
	}))

	txs, total, err := repo.ListByToken(ctx, tokenID, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, txs, 2)
	// Newest custody change first.
	require.True(t, txs[0].ProcessedAt.After(txs[1].ProcessedAt))

	txs, total, err = repo.ListByToken(ctx, tokenID, 1, 0)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, txs, 1)

	// An offset past the last row returns an empty page with the total intact.
	txs, total, err = repo.ListByToken(ctx, tokenID, 10, 5)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Empty(t, txs)
}

func TestTransactionRepository_CreateBatchEmptyNoop(t *testing.T) {
	db := newTestDB(t)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)

	require.NoError(t, repo.CreateBatch(context.Background(), nil))
}
