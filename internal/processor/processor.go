package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/NomadIndexer/internal/event"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/goran-ethernal/NomadIndexer/internal/message"
	"github.com/goran-ethernal/NomadIndexer/internal/metrics"
	"github.com/goran-ethernal/NomadIndexer/internal/seen"
	"github.com/goran-ethernal/NomadIndexer/pkg/store"
)

// Processor applies events to the stored messages.
type Processor struct {
	store store.MessageStore
	pool  EventPool
	seen  *seen.MsgSync
	log   *logger.Logger
}

// New creates a processor. A nil pool falls back to an in-memory one.
func New(s store.MessageStore, pool EventPool, cache *seen.MsgSync, log *logger.Logger) (*Processor, error) {
	if s == nil {
		return nil, errors.New("processor requires a message store")
	}
	if pool == nil {
		pool = NewMemoryPool(0, 0)
	}
	if cache == nil {
		cache = seen.New(0, 0, 0, log)
	}

	return &Processor{store: s, pool: pool, seen: cache, log: log}, nil
}

// Consume applies events in order. It returns how many events were applied;
// on error the event at that index and the ones after it were not.
func (p *Processor) Consume(ctx context.Context, events []*event.NomadEvent) (int, error) {
	for i, ev := range events {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := p.consume(ctx, ev); err != nil {
			return i, fmt.Errorf("failed to apply %s: %w", ev, err)
		}
	}
	return len(events), nil
}

func (p *Processor) consume(ctx context.Context, ev *event.NomadEvent) error {
	switch ev.EventType {
	case event.HomeDispatch:
		return p.dispatched(ctx, ev)
	case event.HomeUpdate:
		return p.updated(ctx, ev)
	case event.ReplicaUpdate:
		return p.relayed(ctx, ev)
	case event.ReplicaProcess:
		return p.processed(ctx, ev)
	case event.BridgeSend:
		return p.sent(ctx, ev)
	case event.BridgeReceive:
		return p.received(ctx, ev)
	default:
		return fmt.Errorf("%w: %s", event.ErrUnknownEventType, ev.EventType)
	}
}

func (p *Processor) dispatched(ctx context.Context, ev *event.NomadEvent) (err error) {
	m, err := message.FromDispatch(ev)
	if err != nil {
		return err
	}

	if p.seen.Seen(m.MessageHash, seen.Dispatched) {
		return nil
	}
	defer p.forgetOnError(m.MessageHash, seen.Dispatched, &err)

	reached := stages{message.Dispatched}
	if err := p.applyPooled(ctx, m, &reached); err != nil {
		return err
	}

	p.log.Debugf("inserting %s", m)
	n, err := p.store.Insert(ctx, []*message.NomadMessage{m})
	if err != nil {
		return err
	}
	if n == 0 {
		p.log.Debugf("%s is already stored", m)
		return nil
	}

	p.record(m, reached)
	return nil
}

func (p *Processor) updated(ctx context.Context, ev *event.NomadEvent) error {
	u, ok := ev.Data.(event.Update)
	if !ok {
		return event.ErrWrongEventType
	}

	if err := p.pool.Store(ctx, ev); err != nil {
		return err
	}

	msgs, err := p.store.GetByOriginAndRoot(ctx, ev.Domain, u.OldRoot)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		p.log.Debugf("no message committed under root %s on domain %d yet", u.OldRoot.Hex(), ev.Domain)
		return nil
	}

	return p.applyToAll(ctx, msgs, func(m *message.NomadMessage, reached *stages) bool {
		if m.Checkbox.Updated {
			return false
		}
		reached.add(m.Update(ev), message.Updated)
		return true
	})
}

func (p *Processor) relayed(ctx context.Context, ev *event.NomadEvent) error {
	u, ok := ev.Data.(event.Update)
	if !ok {
		return event.ErrWrongEventType
	}

	if err := p.pool.Store(ctx, ev); err != nil {
		return err
	}

	msgs, err := p.store.GetByOriginAndRoot(ctx, ev.ReplicaOrigin, u.OldRoot)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		p.log.Debugf("no message committed under root %s on domain %d yet", u.OldRoot.Hex(), ev.ReplicaOrigin)
		return nil
	}

	return p.applyToAll(ctx, msgs, func(m *message.NomadMessage, reached *stages) bool {
		if m.Checkbox.Relayed {
			return false
		}
		reached.add(m.Relay(ev), message.Relayed)
		return true
	})
}

func (p *Processor) processed(ctx context.Context, ev *event.NomadEvent) (err error) {
	pr, ok := ev.Data.(event.Process)
	if !ok {
		return event.ErrWrongEventType
	}

	if p.seen.Seen(pr.MessageHash, seen.Processed) {
		return nil
	}
	defer p.forgetOnError(pr.MessageHash, seen.Processed, &err)

	m, err := p.store.GetByHash(ctx, pr.MessageHash)
	if errors.Is(err, store.ErrNotFound) {
		p.log.Debugf("process of unknown message %s, pooling", pr.MessageHash.Hex())
		return p.pool.Store(ctx, ev)
	}
	if err != nil {
		return err
	}

	if m.Checkbox.Processed {
		return nil
	}
	var reached stages
	reached.add(m.Process(ev), message.Processed)

	return p.writeBack(ctx, m, reached)
}

func (p *Processor) sent(ctx context.Context, ev *event.NomadEvent) error {
	s, ok := ev.Data.(event.Send)
	if !ok {
		return event.ErrWrongEventType
	}

	m, err := p.store.GetBySendValues(ctx, s.ToDomain, s.ToID, s.Amount, ev.Block)
	if errors.Is(err, store.ErrNotFound) {
		p.log.Debugf("send to %s on domain %d has no message yet, pooling", s.ToID.Hex(), s.ToDomain)
		return p.pool.Store(ctx, ev)
	}
	if err != nil {
		return err
	}

	if m.Checkbox.Sent {
		return nil
	}
	m.Send(ev)

	return p.writeBack(ctx, m, nil)
}

func (p *Processor) received(ctx context.Context, ev *event.NomadEvent) error {
	origin, nonce, err := ev.OriginAndNonce()
	if err != nil {
		return err
	}

	m, err := p.store.GetByOriginAndNonce(ctx, origin, nonce)
	if errors.Is(err, store.ErrNotFound) {
		p.log.Debugf("receive of unknown message %d:%d, pooling", origin, nonce)
		return p.pool.Store(ctx, ev)
	}
	if err != nil {
		return err
	}

	if m.Checkbox.Received {
		return nil
	}
	var reached stages
	reached.add(m.Receive(ev), message.Received)

	return p.writeBack(ctx, m, reached)
}

// stages collects the states a message moved to. They are recorded once the
// message is written.
type stages []message.State

func (s *stages) add(moved bool, state message.State) {
	if moved {
		*s = append(*s, state)
	}
}

// applyToAll runs apply on every message and writes back the ones it changed.
func (p *Processor) applyToAll(ctx context.Context, msgs []*message.NomadMessage,
	apply func(m *message.NomadMessage, reached *stages) bool) error {
	changed := make([]*message.NomadMessage, 0, len(msgs))
	reached := make([]stages, 0, len(msgs))
	for _, m := range msgs {
		var r stages
		if !apply(m, &r) {
			continue
		}
		if err := p.applyPooled(ctx, m, &r); err != nil {
			return err
		}
		changed = append(changed, m)
		reached = append(reached, r)
	}
	if len(changed) == 0 {
		return nil
	}

	if err := p.store.Update(ctx, changed); err != nil {
		return err
	}
	for i, m := range changed {
		p.record(m, reached[i])
	}
	return nil
}

func (p *Processor) writeBack(ctx context.Context, m *message.NomadMessage, reached stages) error {
	if err := p.applyPooled(ctx, m, &reached); err != nil {
		return err
	}
	if err := p.store.Update(ctx, []*message.NomadMessage{m}); err != nil {
		return err
	}

	p.record(m, reached)
	return nil
}

// applyPooled applies every parked event that belongs to m and was not applied yet.
func (p *Processor) applyPooled(ctx context.Context, m *message.NomadMessage, reached *stages) error {
	if !m.Checkbox.Sent && m.IsTransfer() {
		ev, err := p.pool.Send(ctx, m.Destination, m.Transfer.Recipient, m.Transfer.Amount, m.DispatchBlock)
		if err != nil {
			return err
		}
		if ev != nil {
			m.Send(ev)
		}
	}

	if !m.Checkbox.Updated {
		evs, err := p.pool.Updates(ctx, m.Origin, m.Root)
		if err != nil {
			return err
		}
		for _, ev := range evs {
			reached.add(m.Update(ev), message.Updated)
		}
	}

	if !m.Checkbox.Relayed {
		evs, err := p.pool.Relays(ctx, m.Origin, m.Root)
		if err != nil {
			return err
		}
		for _, ev := range evs {
			reached.add(m.Relay(ev), message.Relayed)
		}
	}

	if !m.Checkbox.Received && m.IsTransfer() {
		ev, err := p.pool.Receive(ctx, m.Origin, m.Nonce)
		if err != nil {
			return err
		}
		if ev != nil {
			reached.add(m.Receive(ev), message.Received)
		}
	}

	if !m.Checkbox.Processed {
		ev, err := p.pool.Process(ctx, m.MessageHash)
		if err != nil {
			return err
		}
		if ev != nil {
			reached.add(m.Process(ev), message.Processed)
		}
	}

	return nil
}

// record emits the metrics of the stages a written message reached.
// Updated and Relayed are counted once per message hash while it stays in the
// recent event cache; Processed is marked so a later Process event is skipped.
func (p *Processor) record(m *message.NomadMessage, reached stages) {
	for _, s := range reached {
		switch s {
		case message.Updated:
			if p.seen.Seen(m.MessageHash, seen.Updated) {
				continue
			}
		case message.Relayed:
			if p.seen.Seen(m.MessageHash, seen.Relayed) {
				continue
			}
		case message.Processed:
			p.seen.Seen(m.MessageHash, seen.Processed)
		}
		p.reached(m, s)
	}
}

// reached records the metrics of a state transition.
func (p *Processor) reached(m *message.NomadMessage, s message.State) {
	var (
		latency int64
		ok      bool
		gas     uint64
	)

	switch s {
	case message.Dispatched:
		gas = m.GasUsed.Dispatch
	case message.Updated:
		latency, ok = m.Timings.ToUpdate()
		gas = m.GasUsed.Update
	case message.Relayed:
		latency, ok = m.Timings.ToRelay()
		gas = m.GasUsed.Relay
	case message.Received:
		latency, ok = m.Timings.ToReceive()
		gas = m.GasUsed.Receive
	case message.Processed:
		latency, ok = m.Timings.ToProcess()
		gas = m.GasUsed.Process
	}

	metrics.StageReached(s.String(), m.Origin, m.Destination, latency, ok, gas)
	p.log.Debugw("message reached stage", "hash", m.MessageHash.Hex(), "stage", s.String())
}

func (p *Processor) forgetOnError(hash common.Hash, stage seen.Stage, errp *error) {
	if *errp != nil {
		p.seen.Forget(hash, stage)
	}
}
