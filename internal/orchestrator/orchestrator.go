package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/goran-ethernal/NomadIndexer/internal/common"
	"github.com/goran-ethernal/NomadIndexer/internal/event"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/goran-ethernal/NomadIndexer/internal/message"
	"github.com/goran-ethernal/NomadIndexer/internal/metrics"
	"github.com/goran-ethernal/NomadIndexer/internal/poller"
	"github.com/goran-ethernal/NomadIndexer/internal/retry"
	"github.com/goran-ethernal/NomadIndexer/pkg/config"
	"github.com/goran-ethernal/NomadIndexer/pkg/store"
	"golang.org/x/sync/errgroup"
)

// DomainPoller fetches the events of one domain.
type DomainPoller interface {
	Domain() uint32
	Poll(ctx context.Context) (*poller.Batch, error)
	LastIndexed() uint64
}

// Consumer applies events in order and reports how many it applied.
type Consumer interface {
	Consume(ctx context.Context, events []*event.NomadEvent) (int, error)
}

// Store is the persistence the orchestrator reads from.
type Store interface {
	store.EventLog
	Count(ctx context.Context, filter store.MessageFilter) (int, error)
	CountByState(ctx context.Context, origin uint32) (map[message.State]int, error)
}

// Domain pairs a poller with the failure counter of its RPC client.
type Domain struct {
	Poller   DomainPoller
	Failures *retry.FailureCounter
}

// DomainStatus is the health summary of one domain.
type DomainStatus struct {
	LastIndexedBlock        uint64 `json:"lastIndexedBlock"`
	MessageCount            int    `json:"messageCount"`
	RPCFailureCountInWindow int    `json:"rpcFailureCountInWindow"`
}

// Orchestrator polls every domain each cycle and feeds the events to the consumer.
type Orchestrator struct {
	domains  map[uint32]Domain
	ids      []uint32
	consumer Consumer
	store    Store
	cfg      config.PollerConfig
	log      *logger.Logger

	mu     sync.Mutex
	queued []*event.NomadEvent
}

// New creates an orchestrator over the given domains.
func New(domains []Domain, consumer Consumer, s Store, cfg config.PollerConfig, log *logger.Logger) (*Orchestrator, error) {
	if consumer == nil || s == nil {
		return nil, errors.New("orchestrator requires a consumer and a store")
	}
	if len(domains) == 0 {
		return nil, errors.New("orchestrator requires at least one domain")
	}

	o := &Orchestrator{
		domains:  make(map[uint32]Domain, len(domains)),
		consumer: consumer,
		store:    s,
		cfg:      cfg,
		log:      log,
	}
	for _, d := range domains {
		if d.Poller == nil {
			return nil, errors.New("domain without a poller")
		}
		id := d.Poller.Domain()
		if _, dup := o.domains[id]; dup {
			return nil, fmt.Errorf("domain %d registered twice", id)
		}
		o.domains[id] = d
		o.ids = append(o.ids, id)
	}
	slices.Sort(o.ids)

	return o, nil
}

// Domains returns the ids of the orchestrated domains in ascending order.
func (o *Orchestrator) Domains() []uint32 {
	return slices.Clone(o.ids)
}

// Init replays the stored events of every domain through the consumer.
func (o *Orchestrator) Init(ctx context.Context) error {
	if o.cfg.SkipReplay {
		o.log.Info("skipping replay of stored events")
		return nil
	}

	var all []*event.NomadEvent
	for _, id := range o.ids {
		evs, err := o.store.AllEvents(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load stored events of domain %d: %w", id, err)
		}
		all = append(all, evs...)
	}

	all = event.Dedup(all)
	event.Sort(all)

	start := time.Now()
	n, err := o.consumer.Consume(ctx, all)
	if err != nil {
		return fmt.Errorf("replay stopped after %d of %d events: %w", n, len(all), err)
	}

	o.log.Infof("replayed %d stored events in %s", n, time.Since(start))
	o.publishStats(ctx)
	return nil
}

// Run indexes every poller interval until ctx is done.
func (o *Orchestrator) Run(ctx context.Context) error {
	interval := o.cfg.Interval.Duration
	if interval <= 0 {
		interval = 5 * time.Second //nolint:mnd
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		o.tick(ctx)

		select {
		case <-ctx.Done():
			o.log.Info("orchestrator stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (o *Orchestrator) tick(ctx context.Context) {
	err := o.IndexAll(ctx)
	metrics.ComponentHealthSet(common.ComponentOrchestrator, err == nil)
	if err != nil && ctx.Err() == nil {
		metrics.ErrorsInc(common.ComponentOrchestrator, "error")
		o.log.Errorw("indexing cycle failed", "error", err)
	}
}

// IndexAll polls all domains in parallel, then applies the merged events.
// A failing domain does not hold back the others. Events the consumer could
// not apply are kept for the next call.
func (o *Orchestrator) IndexAll(ctx context.Context) error {
	batches := make([]*poller.Batch, len(o.ids))

	var g errgroup.Group
	for i, id := range o.ids {
		p := o.domains[id].Poller
		g.Go(func() error {
			batch, err := p.Poll(ctx)
			if err != nil {
				o.log.Warnw("polling failed", "domain", id, "error", err)
			}
			batches[i] = batch
			return nil
		})
	}
	_ = g.Wait()

	o.mu.Lock()
	defer o.mu.Unlock()

	events := o.queued
	for _, b := range batches {
		if b != nil {
			events = append(events, b.Events...)
		}
	}
	if len(events) == 0 {
		return nil
	}

	events = event.Dedup(events)
	event.Sort(events)

	n, err := o.consumer.Consume(ctx, events)
	o.queued = slices.Clone(events[n:])
	if n > 0 {
		o.publishStats(ctx)
	}
	if err != nil {
		return fmt.Errorf("%d events left queued: %w", len(o.queued), err)
	}

	o.log.Debugf("applied %d events", n)
	return nil
}

// Queued returns how many events wait to be applied.
func (o *Orchestrator) Queued() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.queued)
}

func (o *Orchestrator) publishStats(ctx context.Context) {
	for _, id := range o.ids {
		counts, err := o.store.CountByState(ctx, id)
		if err != nil {
			o.log.Warnw("failed to count messages", "domain", id, "error", err)
			continue
		}
		for state, c := range counts {
			metrics.NumberMessagesSet(state.String(), id, c)
		}
	}
}

// LastIndexed returns the block the domain was indexed up to.
func (o *Orchestrator) LastIndexed(domain uint32) (uint64, bool) {
	d, ok := o.domains[domain]
	if !ok {
		return 0, false
	}
	return d.Poller.LastIndexed(), true
}

// FailureCount returns the RPC failures of the domain within the failure window.
func (o *Orchestrator) FailureCount(domain uint32) int {
	d, ok := o.domains[domain]
	if !ok || d.Failures == nil {
		return 0
	}
	return d.Failures.Num()
}

// Status summarizes every domain.
func (o *Orchestrator) Status(ctx context.Context) (map[uint32]DomainStatus, error) {
	status := make(map[uint32]DomainStatus, len(o.ids))
	for _, id := range o.ids {
		origin := id
		count, err := o.store.Count(ctx, store.MessageFilter{Origin: &origin})
		if err != nil {
			return nil, fmt.Errorf("failed to count messages of domain %d: %w", id, err)
		}

		last, _ := o.LastIndexed(id)
		status[id] = DomainStatus{
			LastIndexedBlock:        last,
			MessageCount:            count,
			RPCFailureCountInWindow: o.FailureCount(id),
		}
	}
	return status, nil
}
