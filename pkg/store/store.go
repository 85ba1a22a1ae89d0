package store

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/NomadIndexer/internal/event"
	"github.com/goran-ethernal/NomadIndexer/internal/message"
)

// ErrNotFound is returned by single row lookups that match nothing.
var ErrNotFound = errors.New("not found")

// Default page size of GetMany.
const DefaultPageSize = 15

// MessageFilter narrows GetMany and Count. Nil fields match everything.
type MessageFilter struct {
	Origin      *uint32
	Destination *uint32
	// Sender is the account that called the bridge router.
	Sender *common.Address
	// Recipient is the padded transfer recipient.
	Recipient *common.Hash
	State     *message.State

	// Page is 1-based; Size defaults to DefaultPageSize.
	Page int
	Size int
}

// MessageStore persists reconciled messages.
type MessageStore interface {
	// Insert adds messages, ignoring those whose hash already exists.
	// It returns how many rows were created.
	Insert(ctx context.Context, msgs []*message.NomadMessage) (int, error)

	// Update overwrites the stored row of every message, keyed by message hash.
	Update(ctx context.Context, msgs []*message.NomadMessage) error

	// GetByHash returns ErrNotFound when the message is unknown.
	GetByHash(ctx context.Context, hash common.Hash) (*message.NomadMessage, error)

	// GetByTx returns messages whose bridge send happened in tx.
	GetByTx(ctx context.Context, tx common.Hash) ([]*message.NomadMessage, error)

	GetMany(ctx context.Context, filter MessageFilter) ([]*message.NomadMessage, error)
	Count(ctx context.Context, filter MessageFilter) (int, error)

	// GetByOriginAndRoot returns messages committed under root on their origin.
	GetByOriginAndRoot(ctx context.Context, origin uint32, root common.Hash) ([]*message.NomadMessage, error)

	// GetByOriginAndNonce returns ErrNotFound when no message matches.
	GetByOriginAndNonce(ctx context.Context, origin, nonce uint32) (*message.NomadMessage, error)

	// GetBySendValues finds the transfer a bridge router Send belongs to.
	GetBySendValues(ctx context.Context, destination uint32, recipient common.Hash,
		amount *big.Int, dispatchBlock uint64) (*message.NomadMessage, error)

	// CountByState counts messages of one origin per state.
	CountByState(ctx context.Context, origin uint32) (map[message.State]int, error)
}

// KVStore is a namespaced key value table used for checkpoints.
type KVStore interface {
	GetKeyPair(ctx context.Context, namespace, key string) (value string, found bool, err error)
	SetKeyPair(ctx context.Context, namespace, key, value string) error
	GetAllKeyPairs(ctx context.Context, namespace string) (map[string]string, error)
}

// EventLog keeps every fetched event so processing can be replayed.
type EventLog interface {
	// StoreEvents is idempotent by event unique hash.
	StoreEvents(ctx context.Context, events []*event.NomadEvent) error

	// AllEvents returns the stored events of a domain, marked as loaded from storage.
	AllEvents(ctx context.Context, domain uint32) ([]*event.NomadEvent, error)
}

// Store is the full persistence layer.
type Store interface {
	MessageStore
	KVStore
	EventLog

	Close() error
}
