package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createTokenTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE tokens (
		id TEXT PRIMARY KEY,
		wallet_id TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTransferTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transfers (
		id TEXT PRIMARY KEY,
		initiator_id TEXT NOT NULL,
		counterparty_id TEXT NOT NULL,
		direction TEXT NOT NULL,
		state TEXT NOT NULL,
		requested_tokens TEXT,
		bundle_size INTEGER,
		resolved_tokens TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		closed_at DATETIME
	);`)
}

func createTrustRelationshipTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE trust_relationships (
		id TEXT PRIMARY KEY,
		source_wallet_id TEXT NOT NULL,
		target_wallet_id TEXT NOT NULL,
		type TEXT NOT NULL,
		state TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_trust_open
		ON trust_relationships (source_wallet_id, target_wallet_id, type)
		WHERE state <> 'cancelled';`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		token_id TEXT NOT NULL,
		transfer_id TEXT NOT NULL,
		source_wallet_id TEXT NOT NULL,
		dest_wallet_id TEXT NOT NULL,
		processed_at DATETIME NOT NULL
	);`)
}
