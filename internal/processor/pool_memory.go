package processor

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/lru"
	"github.com/goran-ethernal/NomadIndexer/internal/event"
	"github.com/goran-ethernal/NomadIndexer/internal/metrics"
)

const (
	DefaultPoolRetention  = 24 * time.Hour
	DefaultPoolMaxEntries = 100_000
)

var _ EventPool = (*MemoryPool)(nil)

// parked holds the events of one pool key. Single kinds keep one event.
type parked struct {
	events []*event.NomadEvent
	at     time.Time
}

// MemoryPool keeps parked events in process memory. Keys are dropped once they
// are older than the retention window, and each kind holds at most maxEntries
// keys, evicting the least recently stored one.
type MemoryPool struct {
	mu        sync.RWMutex
	kinds     map[poolKind]*lru.BasicLRU[string, *parked]
	retention time.Duration
	nowFn     func() time.Time
}

// NewMemoryPool creates a memory pool. Non-positive arguments fall back to defaults.
func NewMemoryPool(retention time.Duration, maxEntries int) *MemoryPool {
	if retention <= 0 {
		retention = DefaultPoolRetention
	}
	if maxEntries <= 0 {
		maxEntries = DefaultPoolMaxEntries
	}

	kinds := make(map[poolKind]*lru.BasicLRU[string, *parked])
	for _, k := range []poolKind{kindSend, kindUpdate, kindRelay, kindReceive, kindProcess} {
		c := lru.NewBasicLRU[string, *parked](maxEntries)
		kinds[k] = &c
	}

	return &MemoryPool{kinds: kinds, retention: retention, nowFn: time.Now}
}

func (p *MemoryPool) Store(_ context.Context, ev *event.NomadEvent) error {
	kind, key, ok := poolKey(ev)
	if !ok {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.nowFn()
	c := p.kinds[kind]
	p.expire(c, now)

	entry, exists := c.Peek(key)
	if exists && kind.isList() {
		h := ev.UniqueHash()
		for _, existing := range entry.events {
			if existing.UniqueHash() == h {
				return nil
			}
		}
		entry = &parked{events: append(entry.events, ev)}
	} else {
		entry = &parked{events: []*event.NomadEvent{ev}}
	}
	entry.at = now
	c.Add(key, entry)

	metrics.PooledEventsInc(string(ev.EventType))
	return nil
}

// expire drops the keys stored before the retention window, oldest first.
func (p *MemoryPool) expire(c *lru.BasicLRU[string, *parked], now time.Time) {
	for {
		_, entry, ok := c.GetOldest()
		if !ok || now.Sub(entry.at) <= p.retention {
			return
		}
		c.RemoveOldest()
	}
}

func (p *MemoryPool) lookup(kind poolKind, key string) []*event.NomadEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()

	entry, ok := p.kinds[kind].Peek(key)
	if !ok || p.nowFn().Sub(entry.at) > p.retention {
		return nil
	}
	return append([]*event.NomadEvent(nil), entry.events...)
}

func (p *MemoryPool) get(kind poolKind, key string) *event.NomadEvent {
	evs := p.lookup(kind, key)
	if len(evs) == 0 {
		return nil
	}
	return evs[0]
}

// Len returns the number of keys parked for every kind.
func (p *MemoryPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n := 0
	for _, c := range p.kinds {
		n += c.Len()
	}
	return n
}

func (p *MemoryPool) Send(_ context.Context, destination uint32, recipient common.Hash,
	amount *big.Int, block uint64) (*event.NomadEvent, error) {
	return p.get(kindSend, sendKey(destination, recipient, amount, block)), nil
}

func (p *MemoryPool) Updates(_ context.Context, origin uint32, root common.Hash) ([]*event.NomadEvent, error) {
	return p.lookup(kindUpdate, rootKey(origin, root)), nil
}

func (p *MemoryPool) Relays(_ context.Context, origin uint32, root common.Hash) ([]*event.NomadEvent, error) {
	return p.lookup(kindRelay, rootKey(origin, root)), nil
}

func (p *MemoryPool) Receive(_ context.Context, origin, nonce uint32) (*event.NomadEvent, error) {
	return p.get(kindReceive, receiveKey(origin, nonce)), nil
}

func (p *MemoryPool) Process(_ context.Context, messageHash common.Hash) (*event.NomadEvent, error) {
	return p.get(kindProcess, messageHash.Hex()), nil
}
