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

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL,
		phone_number TEXT,
		country TEXT,
		last_login_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createStructureTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE structures (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		parent_id TEXT,
		hierarchy_level INTEGER NOT NULL DEFAULT 0,
		created_by TEXT NOT NULL,
		base_currency TEXT NOT NULL,
		total_called REAL NOT NULL DEFAULT 0,
		total_distributed REAL NOT NULL DEFAULT 0,
		total_invested REAL NOT NULL DEFAULT 0,
		management_fee REAL NOT NULL DEFAULT 0,
		carried_interest REAL NOT NULL DEFAULT 0,
		documents TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createInvestmentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE investments (
		id TEXT PRIMARY KEY,
		structure_id TEXT NOT NULL,
		investor_id TEXT NOT NULL,
		amount REAL NOT NULL,
		currency TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createSmartContractTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE smart_contracts (
		id TEXT PRIMARY KEY,
		structure_id TEXT NOT NULL,
		name TEXT NOT NULL,
		symbol TEXT NOT NULL,
		contract_type TEXT NOT NULL,
		max_supply INTEGER NOT NULL DEFAULT 0,
		token_value REAL NOT NULL DEFAULT 0,
		network TEXT NOT NULL,
		status TEXT NOT NULL,
		deployed_by TEXT NOT NULL,
		contract_address TEXT,
		transaction_hash TEXT,
		block_number INTEGER,
		deployed_at DATETIME,
		error_message TEXT,
		failed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
