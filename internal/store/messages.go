package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/NomadIndexer/internal/message"
	"github.com/goran-ethernal/NomadIndexer/pkg/store"
	"github.com/remeh/sizedwaitgroup"
)

// Insert adds messages in one transaction. Messages already stored are left untouched.
func (s *SQLStore) Insert(ctx context.Context, msgs []*message.NomadMessage) (inserted int, err error) {
	if len(msgs) == 0 {
		return 0, nil
	}
	defer s.observe("insert", time.Now(), &err)

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		inserted = 0
		for _, m := range msgs {
			created, err := s.insertIgnore(ctx, tx, messagesTable, toDBMessage(m))
			if err != nil {
				return fmt.Errorf("failed to insert %s: %w", m.MessageHash.Hex(), err)
			}
			if created {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// Update writes every message back with at most updateConcurrency writes in flight.
// All writes are attempted; the first error is returned once they finish.
func (s *SQLStore) Update(ctx context.Context, msgs []*message.NomadMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	var (
		mu       sync.Mutex
		firstErr error
	)
	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	swg := sizedwaitgroup.New(s.updateConcurrency)
	for _, m := range msgs {
		if err := swg.AddWithContext(ctx); err != nil {
			setErr(err)
			break
		}

		go func(m *message.NomadMessage) {
			defer swg.Done()
			if err := s.updateOne(ctx, m); err != nil {
				setErr(err)
			}
		}(m)
	}
	swg.Wait()

	return firstErr
}

func (s *SQLStore) updateOne(ctx context.Context, m *message.NomadMessage) (err error) {
	defer s.observe("update", time.Now(), &err)

	n, err := s.updateByKey(ctx, messagesTable, "message_hash", toDBMessage(m))
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", m.MessageHash.Hex(), err)
	}
	if n == 0 {
		s.log.Warnf("update of %s matched no stored message", m.MessageHash.Hex())
	}
	return nil
}

// GetByHash returns the message with the given hash.
func (s *SQLStore) GetByHash(ctx context.Context, hash common.Hash) (m *message.NomadMessage, err error) {
	defer s.observe("get_by_hash", time.Now(), &err)

	return s.queryOne(ctx, "SELECT * FROM messages WHERE message_hash = ?", hash.Hex())
}

// GetByTx returns the messages sent in the given transaction.
func (s *SQLStore) GetByTx(ctx context.Context, tx common.Hash) (msgs []*message.NomadMessage, err error) {
	defer s.observe("get_by_tx", time.Now(), &err)

	return s.queryAll(ctx, "SELECT * FROM messages WHERE tx = ? ORDER BY dispatch_block ASC", tx.Hex())
}

// GetMany returns one page of messages matching the filter, newest dispatch first.
func (s *SQLStore) GetMany(ctx context.Context, filter store.MessageFilter) (msgs []*message.NomadMessage, err error) {
	defer s.observe("get_many", time.Now(), &err)

	where, args := filterClause(filter)
	size := filter.Size
	if size <= 0 {
		size = store.DefaultPageSize
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	args = append(args, size, (page-1)*size)

	query := "SELECT * FROM messages" + where + " ORDER BY dispatch_block DESC, message_hash ASC LIMIT ? OFFSET ?"
	return s.queryAll(ctx, query, args...)
}

// Count returns the number of messages matching the filter, ignoring paging.
func (s *SQLStore) Count(ctx context.Context, filter store.MessageFilter) (n int, err error) {
	defer s.observe("count", time.Now(), &err)

	where, args := filterClause(filter)
	err = s.db.QueryRowContext(ctx, s.dialect.Rebind("SELECT COUNT(*) FROM messages"+where), args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return n, nil
}

// GetByOriginAndRoot returns the messages committed under root on origin.
func (s *SQLStore) GetByOriginAndRoot(ctx context.Context, origin uint32,
	root common.Hash) (msgs []*message.NomadMessage, err error) {
	defer s.observe("get_by_origin_and_root", time.Now(), &err)

	return s.queryAll(ctx, "SELECT * FROM messages WHERE origin = ? AND root = ? ORDER BY nonce ASC", origin, root.Hex())
}

// GetByOriginAndNonce returns the message with the given nonce on origin.
func (s *SQLStore) GetByOriginAndNonce(ctx context.Context, origin, nonce uint32) (m *message.NomadMessage, err error) {
	defer s.observe("get_by_origin_and_nonce", time.Now(), &err)

	return s.queryOne(ctx, "SELECT * FROM messages WHERE origin = ? AND nonce = ?", origin, nonce)
}

// GetBySendValues returns the transfer a bridge router Send produced.
func (s *SQLStore) GetBySendValues(ctx context.Context, destination uint32, recipient common.Hash,
	amount *big.Int, dispatchBlock uint64) (m *message.NomadMessage, err error) {
	defer s.observe("get_by_send_values", time.Now(), &err)

	if amount == nil {
		return nil, store.ErrNotFound
	}

	const query = `
		SELECT * FROM messages
		WHERE destination = ? AND transfer_recipient = ? AND amount = ? AND dispatch_block = ?
		ORDER BY nonce ASC
		LIMIT 1
	`
	return s.queryOne(ctx, query, destination, recipient.Hex(), amount.String(), dispatchBlock)
}

// CountByState counts the messages of origin per state. States without messages are zero.
func (s *SQLStore) CountByState(ctx context.Context, origin uint32) (counts map[message.State]int, err error) {
	defer s.observe("count_by_state", time.Now(), &err)

	rows, err := s.db.QueryContext(ctx,
		s.dialect.Rebind("SELECT state, COUNT(*) FROM messages WHERE origin = ? GROUP BY state"), origin)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages by state: %w", err)
	}
	defer rows.Close()

	counts = make(map[message.State]int, len(message.AllStates))
	for _, st := range message.AllStates {
		counts[st] = 0
	}

	for rows.Next() {
		var (
			st int
			n  int
		)
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("failed to scan state count: %w", err)
		}
		counts[message.State(st)] = n
	}

	return counts, rows.Err()
}

func (s *SQLStore) queryOne(ctx context.Context, query string, args ...any) (*message.NomadMessage, error) {
	msgs, err := s.queryAll(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, store.ErrNotFound
	}
	return msgs[0], nil
}

func (s *SQLStore) queryAll(ctx context.Context, query string, args ...any) ([]*message.NomadMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []*dbMessage
	if err := s.dialect.Meddler.QueryAll(s.db, &rows, s.dialect.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}

	return toMessages(rows)
}

// filterClause builds the WHERE clause of a filter with ? placeholders.
func filterClause(f store.MessageFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.Origin != nil {
		conds = append(conds, "origin = ?")
		args = append(args, *f.Origin)
	}
	if f.Destination != nil {
		conds = append(conds, "destination = ?")
		args = append(args, *f.Destination)
	}
	if f.Sender != nil {
		conds = append(conds, "sender = ?")
		args = append(args, f.Sender.Hex())
	}
	if f.Recipient != nil {
		conds = append(conds, "transfer_recipient = ?")
		args = append(args, f.Recipient.Hex())
	}
	if f.State != nil {
		conds = append(conds, "state = ?")
		args = append(args, int(*f.State))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
