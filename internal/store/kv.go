package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetKeyPair reads one value of a namespace.
func (s *SQLStore) GetKeyPair(ctx context.Context, namespace, key string) (value string, found bool, err error) {
	defer s.observe("get_key_pair", time.Now(), &err)

	err = s.db.QueryRowContext(ctx,
		s.dialect.Rebind("SELECT value FROM kv_storage WHERE namespace = ? AND key = ?"), namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s/%s: %w", namespace, key, err)
	}
	return value, true, nil
}

// SetKeyPair inserts or replaces one value of a namespace.
func (s *SQLStore) SetKeyPair(ctx context.Context, namespace, key, value string) (err error) {
	defer s.observe("set_key_pair", time.Now(), &err)

	const query = `
		INSERT INTO kv_storage (namespace, key, value) VALUES (?, ?, ?)
		ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value
	`
	if _, err = s.db.ExecContext(ctx, s.dialect.Rebind(query), namespace, key, value); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", namespace, key, err)
	}
	return nil
}

// GetAllKeyPairs returns every value of a namespace.
func (s *SQLStore) GetAllKeyPairs(ctx context.Context, namespace string) (pairs map[string]string, err error) {
	defer s.observe("get_all_key_pairs", time.Now(), &err)

	rows, err := s.db.QueryContext(ctx,
		s.dialect.Rebind("SELECT key, value FROM kv_storage WHERE namespace = ?"), namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to read namespace %s: %w", namespace, err)
	}
	defer rows.Close()

	pairs = make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan %s pair: %w", namespace, err)
		}
		pairs[k] = v
	}

	return pairs, rows.Err()
}
