package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/NomadIndexer/internal/event"
	"github.com/goran-ethernal/NomadIndexer/internal/metrics"
	"github.com/redis/go-redis/v9"
)

var _ EventPool = (*RedisPool)(nil)

// RedisPool keeps parked events in redis so they survive restarts and can be shared.
// Single events live in one key each, update and relay lists in one set per root.
// Every key expires after the retention window.
type RedisPool struct {
	rdb       *redis.Client
	prefix    string
	retention time.Duration
}

// NewRedisPool connects to the redis server at url. A non-positive retention
// falls back to DefaultPoolRetention.
func NewRedisPool(ctx context.Context, url, prefix string, retention time.Duration) (*RedisPool, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if retention <= 0 {
		retention = DefaultPoolRetention
	}

	return &RedisPool{rdb: rdb, prefix: prefix, retention: retention}, nil
}

func (p *RedisPool) Close() error {
	return p.rdb.Close()
}

func (p *RedisPool) itemKey(kind poolKind, key string) string {
	return fmt.Sprintf("%s:pool:%s:%s", p.prefix, kind, key)
}

func (p *RedisPool) Store(ctx context.Context, ev *event.NomadEvent) error {
	kind, key, ok := poolKey(ev)
	if !ok {
		return nil
	}

	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", ev, err)
	}

	itemKey := p.itemKey(kind, key)
	if kind.isList() {
		_, err = p.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SAdd(ctx, itemKey, value)
			pipe.Expire(ctx, itemKey, p.retention)
			return nil
		})
	} else {
		err = p.rdb.Set(ctx, itemKey, value, p.retention).Err()
	}
	if err != nil {
		return fmt.Errorf("failed to pool %s: %w", ev, err)
	}

	metrics.PooledEventsInc(string(ev.EventType))
	return nil
}

func (p *RedisPool) get(ctx context.Context, kind poolKind, key string) (*event.NomadEvent, error) {
	raw, err := p.rdb.Get(ctx, p.itemKey(kind, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s failed: %w", kind, err)
	}

	ev := new(event.NomadEvent)
	if err := json.Unmarshal(raw, ev); err != nil {
		return nil, fmt.Errorf("pooled %s event %s is malformed: %w", kind, key, err)
	}
	return ev, nil
}

func (p *RedisPool) list(ctx context.Context, kind poolKind, key string) ([]*event.NomadEvent, error) {
	members, err := p.rdb.SMembers(ctx, p.itemKey(kind, key)).Result()
	if err != nil {
		return nil, fmt.Errorf("smembers %s failed: %w", kind, err)
	}

	events := make([]*event.NomadEvent, 0, len(members))
	for _, m := range members {
		ev := new(event.NomadEvent)
		if err := json.Unmarshal([]byte(m), ev); err != nil {
			return nil, fmt.Errorf("pooled %s event %s is malformed: %w", kind, key, err)
		}
		events = append(events, ev)
	}
	events = event.Dedup(events)
	event.Sort(events)
	return events, nil
}

func (p *RedisPool) Send(ctx context.Context, destination uint32, recipient common.Hash,
	amount *big.Int, block uint64) (*event.NomadEvent, error) {
	return p.get(ctx, kindSend, sendKey(destination, recipient, amount, block))
}

func (p *RedisPool) Updates(ctx context.Context, origin uint32, root common.Hash) ([]*event.NomadEvent, error) {
	return p.list(ctx, kindUpdate, rootKey(origin, root))
}

func (p *RedisPool) Relays(ctx context.Context, origin uint32, root common.Hash) ([]*event.NomadEvent, error) {
	return p.list(ctx, kindRelay, rootKey(origin, root))
}

func (p *RedisPool) Receive(ctx context.Context, origin, nonce uint32) (*event.NomadEvent, error) {
	return p.get(ctx, kindReceive, receiveKey(origin, nonce))
}

func (p *RedisPool) Process(ctx context.Context, messageHash common.Hash) (*event.NomadEvent, error) {
	return p.get(ctx, kindProcess, messageHash.Hex())
}
