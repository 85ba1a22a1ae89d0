package db

import (
	"math/big"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/goran-ethernal/NomadIndexer/pkg/config"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/require"
)

const testMigration = `
-- +migrate Down
DROP TABLE IF EXISTS /*dbprefix*/things;

-- +migrate Up
CREATE TABLE /*dbprefix*/things (
    id       INTEGER PRIMARY KEY,
    hash     TEXT,
    owner    TEXT,
    amount   TEXT
);
`

type thing struct {
	ID     int64          `meddler:"id,pk"`
	Hash   *common.Hash   `meddler:"hash,hash"`
	Owner  common.Address `meddler:"owner,address"`
	Amount *big.Int       `meddler:"amount,bigint"`
}

func newTestSQLite(t *testing.T) *config.DatabaseConfig {
	t.Helper()

	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")}
	cfg.ApplyDefaults()
	return &cfg
}

func TestNewSQLiteDBFromConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		journalMode string
	}{
		{name: "WAL", journalMode: "WAL"},
		{name: "NonWAL", journalMode: "TRUNCATE"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := newTestSQLite(t)
			cfg.JournalMode = tc.journalMode

			sqlDB, err := NewSQLiteDBFromConfig(*cfg)
			require.NoError(t, err)
			defer sqlDB.Close()

			var mode string
			require.NoError(t, sqlDB.QueryRow("PRAGMA journal_mode").Scan(&mode))
			require.Equal(t, tc.journalMode, strings.ToUpper(mode))
		})
	}
}

func TestRunMigrations_UpAndDown(t *testing.T) {
	t.Parallel()

	sqlDB, err := NewSQLiteDBFromConfig(*newTestSQLite(t))
	require.NoError(t, err)
	defer sqlDB.Close()

	log := logger.NewNopLogger()
	migs := []Migration{{ID: "001_things.sql", SQL: testMigration, Prefix: "t_"}}

	require.NoError(t, RunMigrationsDB(log, sqlDB, SQLite, migs))

	_, err = sqlDB.Exec("INSERT INTO t_things (hash) VALUES ('0x01')")
	require.NoError(t, err)

	// second run is a no-op
	n, err := RunMigrationsDBExtended(log, sqlDB, SQLite, migs, migrate.Up, NoLimitMigrations)
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = RunMigrationsDBExtended(log, sqlDB, SQLite, migs, migrate.Down, 1)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = sqlDB.Exec("SELECT 1 FROM t_things")
	require.Error(t, err)
}

func TestRunMigrations_MissingSeparator(t *testing.T) {
	t.Parallel()

	sqlDB, err := NewSQLiteDBFromConfig(*newTestSQLite(t))
	require.NoError(t, err)
	defer sqlDB.Close()

	err = RunMigrationsDB(logger.NewNopLogger(), sqlDB, SQLite,
		[]Migration{{ID: "bad.sql", SQL: "CREATE TABLE x (id INTEGER);"}})
	require.ErrorContains(t, err, "missing")
}

func TestMeddlers_RoundTrip(t *testing.T) {
	t.Parallel()

	sqlDB, err := NewSQLiteDBFromConfig(*newTestSQLite(t))
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, RunMigrationsDB(logger.NewNopLogger(), sqlDB, SQLite,
		[]Migration{{ID: "001_things.sql", SQL: testMigration}}))

	hash := common.HexToHash("0xabc")
	amount, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	full := &thing{Hash: &hash, Owner: common.HexToAddress("0x1234"), Amount: amount}
	empty := &thing{}

	require.NoError(t, SQLite.Meddler.Insert(sqlDB, "things", full))
	require.NoError(t, SQLite.Meddler.Insert(sqlDB, "things", empty))

	var got thing
	require.NoError(t, SQLite.Meddler.QueryRow(sqlDB, &got, "SELECT * FROM things WHERE id = ?", full.ID))
	require.Equal(t, hash, *got.Hash)
	require.Equal(t, full.Owner, got.Owner)
	require.Equal(t, 0, amount.Cmp(got.Amount))

	got = thing{}
	require.NoError(t, SQLite.Meddler.QueryRow(sqlDB, &got, "SELECT * FROM things WHERE id = ?", empty.ID))
	require.Nil(t, got.Hash)
	require.Nil(t, got.Amount)
}

func TestDialect_Rebind(t *testing.T) {
	t.Parallel()

	query := "SELECT * FROM messages WHERE origin = ? AND root = ? LIMIT ?"

	require.Equal(t, query, SQLite.Rebind(query))
	require.Equal(t, "SELECT * FROM messages WHERE origin = $1 AND root = $2 LIMIT $3", Postgres.Rebind(query))
	require.Equal(t, "?", SQLite.Placeholder(4))
	require.Equal(t, "$4", Postgres.Placeholder(4))
}
