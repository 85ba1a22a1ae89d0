package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goran-ethernal/NomadIndexer/internal/db"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/goran-ethernal/NomadIndexer/internal/metrics"
	"github.com/goran-ethernal/NomadIndexer/internal/migrations"
	"github.com/goran-ethernal/NomadIndexer/pkg/config"
	"github.com/goran-ethernal/NomadIndexer/pkg/store"
)

const defaultUpdateConcurrency = 10

var _ store.Store = (*SQLStore)(nil)

// SQLStore implements the message store, the checkpoint KV and the raw event log
// on top of SQLite or PostgreSQL.
type SQLStore struct {
	db      *sql.DB
	dialect db.Dialect
	log     *logger.Logger

	updateConcurrency int
}

// New opens the configured database, brings its schema up to date and returns the store.
func New(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (*SQLStore, error) {
	sqlDB, dialect, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Driver, err)
	}

	if err := migrations.Run(log, sqlDB, dialect); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate %s store: %w", cfg.Driver, err)
	}

	return NewFromDB(sqlDB, dialect, cfg.UpdateConcurrency, log), nil
}

// NewFromDB wraps an already migrated database.
func NewFromDB(sqlDB *sql.DB, dialect db.Dialect, updateConcurrency int, log *logger.Logger) *SQLStore {
	if updateConcurrency < 1 {
		updateConcurrency = defaultUpdateConcurrency
	}

	return &SQLStore{
		db:                sqlDB,
		dialect:           dialect,
		log:               log,
		updateConcurrency: updateConcurrency,
	}
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// observe records one request of the given type.
func (s *SQLStore) observe(requestType string, start time.Time, errp *error) {
	metrics.DBRequestInc(requestType)
	metrics.DBRequestDuration(requestType, time.Since(start))
	if err := *errp; err != nil && !errors.Is(err, store.ErrNotFound) {
		metrics.DBErrorsInc(requestType)
	}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertIgnore inserts row into table unless a row with the same primary key exists.
// insertIgnore inserts row unless its key exists and reports whether a row was created.
func (s *SQLStore) insertIgnore(ctx context.Context, exec execer, table string, row any) (bool, error) {
	columns, err := s.dialect.Meddler.ColumnsQuoted(row, true)
	if err != nil {
		return false, err
	}
	placeholders, err := s.dialect.Meddler.PlaceholdersString(row, true)
	if err != nil {
		return false, err
	}
	values, err := s.dialect.Meddler.Values(row, true)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING", table, columns, placeholders)
	res, err := exec.ExecContext(ctx, query, values...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// updateByKey overwrites every column of row except keyColumn, matching on keyColumn.
func (s *SQLStore) updateByKey(ctx context.Context, table, keyColumn string, row any) (int64, error) {
	columns, err := s.dialect.Meddler.Columns(row, true)
	if err != nil {
		return 0, err
	}
	values, err := s.dialect.Meddler.Values(row, true)
	if err != nil {
		return 0, err
	}

	q := s.dialect.Meddler.Quote
	sets := make([]string, 0, len(columns))
	args := make([]any, 0, len(values))
	var key any
	for i, col := range columns {
		if col == keyColumn {
			key = values[i]
			continue
		}
		args = append(args, values[i])
		sets = append(sets, fmt.Sprintf("%s%s%s = %s", q, col, q, s.dialect.Placeholder(len(args))))
	}
	if key == nil {
		return 0, fmt.Errorf("row of %s has no %s column", table, keyColumn)
	}
	args = append(args, key)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		table, strings.Join(sets, ", "), keyColumn, s.dialect.Placeholder(len(args)))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
