package poller

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/NomadIndexer/internal/event"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/goran-ethernal/NomadIndexer/internal/metrics"
	irpc "github.com/goran-ethernal/NomadIndexer/internal/rpc"
	"github.com/goran-ethernal/NomadIndexer/pkg/config"
	"github.com/goran-ethernal/NomadIndexer/pkg/rpc"
	"github.com/goran-ethernal/NomadIndexer/pkg/store"
)

// CheckpointNamespace is the KV namespace holding stream checkpoints.
const CheckpointNamespace = "poller"

// Checkpoints stores the last indexed block of every stream.
type Checkpoints interface {
	GetUint64(key string) (uint64, bool, error)
	SetUint64(ctx context.Context, key string, value uint64) error
}

// Batch is the result of one poll of a domain.
type Batch struct {
	Domain uint32
	Head   uint64
	Events []*event.NomadEvent
}

// Poller fetches the Nomad events of one domain.
type Poller struct {
	domain      config.DomainConfig
	cfg         config.PollerConfig
	client      rpc.ChainClient
	events      store.EventLog
	checkpoints Checkpoints
	decoder     *event.Decoder
	streams     []Stream
	log         *logger.Logger

	lastIndexed atomic.Uint64
}

// New creates a poller for the given domain.
func New(
	domain config.DomainConfig,
	cfg config.PollerConfig,
	client rpc.ChainClient,
	events store.EventLog,
	checkpoints Checkpoints,
	log *logger.Logger,
) (*Poller, error) {
	if client == nil || events == nil || checkpoints == nil {
		return nil, errors.New("poller requires a chain client, an event log and checkpoints")
	}
	decoder, err := event.NewDecoder()
	if err != nil {
		return nil, err
	}

	return &Poller{
		domain:      domain,
		cfg:         cfg,
		client:      client,
		events:      events,
		checkpoints: checkpoints,
		decoder:     decoder,
		streams:     StreamsOf(domain),
		log:         log,
	}, nil
}

// Domain returns the id of the polled domain.
func (p *Poller) Domain() uint32 {
	return p.domain.ID
}

// Streams returns the streams polled on the domain.
func (p *Poller) Streams() []Stream {
	return slices.Clone(p.streams)
}

// LastIndexed returns the head reached by the last successful poll.
func (p *Poller) LastIndexed() uint64 {
	return p.lastIndexed.Load()
}

// Poll fetches every stream from its checkpoint up to the current head.
// Pages are stored in the event log and checkpointed one at a time, so on error
// the returned batch still holds the events of the pages already checkpointed.
func (p *Poller) Poll(ctx context.Context) (*Batch, error) {
	start := time.Now()
	defer func() { metrics.PollDurationLog(p.domain.ID, time.Since(start)) }()

	batch := &Batch{Domain: p.domain.ID}

	head, err := p.client.BlockNumber(ctx)
	if err != nil {
		metrics.PollFailuresInc(p.domain.ID)
		return batch, fmt.Errorf("failed to get head of domain %d: %w", p.domain.ID, err)
	}
	batch.Head = head

	tick := newTickCache()
	var pollErr error
	for _, s := range p.streams {
		evs, err := p.pollStream(ctx, s, head, tick)
		batch.Events = append(batch.Events, evs...)
		if err != nil {
			pollErr = fmt.Errorf("failed to poll %s on domain %d: %w", s.EventType, p.domain.ID, err)
			break
		}
	}

	batch.Events = event.Dedup(batch.Events)
	event.Sort(batch.Events)

	if pollErr != nil {
		metrics.PollFailuresInc(p.domain.ID)
		return batch, pollErr
	}

	p.lastIndexed.Store(head)
	metrics.LastIndexedBlockSet(p.domain.ID, head)

	p.log.Debugf("polled domain %d up to block %d, %d events", p.domain.ID, head, len(batch.Events))
	return batch, nil
}

func (p *Poller) pollStream(ctx context.Context, s Stream, head uint64, tick *tickCache) ([]*event.NomadEvent, error) {
	key := s.Key(p.domain.ID)

	from, ok, err := p.checkpoints.GetUint64(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		from = p.domain.StartBlock
	}
	if from >= head {
		return nil, nil
	}

	var collected []*event.NomadEvent
	for _, r := range SplitRange(from, head, p.domain.PageSize) {
		evs, err := p.fetchPage(ctx, s, r, tick)
		if err != nil {
			return collected, err
		}

		if err := p.events.StoreEvents(ctx, evs); err != nil {
			return collected, fmt.Errorf("failed to store events of blocks %d-%d: %w", r.From, r.To, err)
		}
		if err := p.checkpoints.SetUint64(ctx, key, r.To); err != nil {
			return collected, fmt.Errorf("failed to checkpoint %s at %d: %w", key, r.To, err)
		}

		metrics.EventsFetchedInc(p.domain.ID, string(s.EventType), len(evs))
		collected = append(collected, evs...)
	}

	return collected, nil
}

func (p *Poller) fetchPage(ctx context.Context, s Stream, r Range, tick *tickCache) ([]*event.NomadEvent, error) {
	logs, err := p.fetchLogs(ctx, s, r.From, r.To)
	if err != nil {
		return nil, err
	}

	payloads := make([]event.Payload, len(logs))
	blocks := make([]uint64, 0, len(logs))
	txs := make([]common.Hash, 0, len(logs))
	for i, l := range logs {
		if l.Removed {
			continue
		}
		payload, err := p.decoder.Decode(s.EventType, l)
		if err != nil {
			p.log.Warnf("dropping undecodable %s log %d of tx %s: %v", s.EventType, l.Index, l.TxHash.Hex(), err)
			continue
		}
		payloads[i] = payload
		blocks = append(blocks, l.BlockNumber)
		txs = append(txs, l.TxHash)
	}

	if err := tick.loadTimestamps(ctx, p.client, blocks); err != nil {
		return nil, fmt.Errorf("failed to get block timestamps: %w", err)
	}
	if !p.cfg.SkipReceipts {
		if err := tick.loadGas(ctx, p.client, txs); err != nil {
			return nil, fmt.Errorf("failed to get receipts: %w", err)
		}
	}

	skew := p.skew(s.EventType)
	evs := make([]*event.NomadEvent, 0, len(blocks))
	for i, l := range logs {
		if payloads[i] == nil {
			continue
		}
		ts := int64(tick.timestamps[l.BlockNumber])*1000 - skew
		ev, err := event.New(p.domain.ID, s.ReplicaOrigin, payloads[i], l.BlockNumber, l.Index,
			l.TxHash, tick.gas[l.TxHash], ts, event.SourceFetch)
		if err != nil {
			p.log.Warnf("dropping %s log %d of tx %s: %v", s.EventType, l.Index, l.TxHash.Hex(), err)
			continue
		}
		evs = append(evs, ev)
	}

	return evs, nil
}

// fetchLogs gets the logs of [from, to], splitting the range while the provider
// reports too many results.
func (p *Poller) fetchLogs(ctx context.Context, s Stream, from, to uint64) ([]types.Log, error) {
	topic, err := p.decoder.Topic(s.EventType)
	if err != nil {
		return nil, err
	}

	logs, err := p.client.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{s.Contract},
		Topics:    [][]common.Hash{{topic}},
	})
	if err == nil {
		return logs, nil
	}

	tooMany, data := irpc.IsTooManyResultsError(err)
	if !tooMany {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("cannot split range further, single block %d has too many logs: %w", from, err)
	}

	split := from + (to-from)/2
	if suggestedFrom, suggestedTo, ok := irpc.ParseSuggestedBlockRange(data); ok &&
		suggestedFrom == from && suggestedTo >= from && suggestedTo < to {
		split = suggestedTo
	}
	p.log.Infof("too many logs in blocks %d-%d, splitting at %d", from, to, split)

	first, err := p.fetchLogs(ctx, s, from, split)
	if err != nil {
		return nil, err
	}
	second, err := p.fetchLogs(ctx, s, split+1, to)
	if err != nil {
		return nil, err
	}
	return append(first, second...), nil
}

// skew is subtracted from the timestamps of events emitted on the sending side.
func (p *Poller) skew(t event.EventType) int64 {
	if t.ContractType() == event.ContractHome || t == event.BridgeSend {
		return p.cfg.TimestampSkew.Milliseconds()
	}
	return 0
}

// tickCache memoizes block timestamps and receipt gas for the duration of one poll.
type tickCache struct {
	timestamps map[uint64]uint64
	gas        map[common.Hash]uint64
}

func newTickCache() *tickCache {
	return &tickCache{
		timestamps: make(map[uint64]uint64),
		gas:        make(map[common.Hash]uint64),
	}
}

func (c *tickCache) loadTimestamps(ctx context.Context, client rpc.ChainClient, blocks []uint64) error {
	var missing []uint64
	queued := make(map[uint64]struct{})
	for _, b := range blocks {
		if _, ok := c.timestamps[b]; ok {
			continue
		}
		if _, ok := queued[b]; !ok {
			queued[b] = struct{}{}
			missing = append(missing, b)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	ts, err := client.BlockTimestamps(ctx, missing)
	if err != nil {
		return err
	}
	for _, b := range missing {
		t, ok := ts[b]
		if !ok {
			return fmt.Errorf("no timestamp returned for block %d", b)
		}
		c.timestamps[b] = t
	}
	return nil
}

func (c *tickCache) loadGas(ctx context.Context, client rpc.ChainClient, txs []common.Hash) error {
	for _, tx := range txs {
		if _, ok := c.gas[tx]; ok {
			continue
		}
		gas, err := client.ReceiptGasUsed(ctx, tx)
		if err != nil {
			return err
		}
		c.gas[tx] = gas
	}
	return nil
}
