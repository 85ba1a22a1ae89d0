package seen

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/lru"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/goran-ethernal/NomadIndexer/internal/metrics"
)

const (
	DefaultRetention  = 2 * time.Hour
	DefaultCleanEvery = 20
	DefaultMaxEntries = 100_000
)

// Stage is a lifecycle step tracked by MsgSync.
type Stage int

const (
	Dispatched Stage = iota
	Updated
	Relayed
	Processed
)

func (s Stage) String() string {
	switch s {
	case Dispatched:
		return "dispatched"
	case Updated:
		return "updated"
	case Relayed:
		return "relayed"
	case Processed:
		return "processed"
	default:
		return "unknown"
	}
}

type entry struct {
	stages  [4]bool
	touched time.Time
}

// MsgSync remembers which stages were recently applied to a message.
// It holds at most maxEntries messages, evicting the least recently touched,
// and sweeps entries untouched for longer than retention every cleanEvery calls.
// It is advisory: a miss only costs a store lookup.
type MsgSync struct {
	mu         sync.Mutex
	entries    lru.BasicLRU[common.Hash, *entry]
	retention  time.Duration
	cleanEvery int
	calls      int
	nowFn      func() time.Time
	log        *logger.Logger
}

// New creates a MsgSync. Non-positive arguments fall back to defaults.
func New(retention time.Duration, cleanEvery, maxEntries int, log *logger.Logger) *MsgSync {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if cleanEvery <= 0 {
		cleanEvery = DefaultCleanEvery
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &MsgSync{
		entries:    lru.NewBasicLRU[common.Hash, *entry](maxEntries),
		retention:  retention,
		cleanEvery: cleanEvery,
		nowFn:      time.Now,
		log:        log,
	}
}

// Seen marks the stage for the message and returns whether it was already marked.
func (s *MsgSync) Seen(hash common.Hash, stage Stage) bool {
	if stage < Dispatched || stage > Processed {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn()

	s.calls++
	if s.calls >= s.cleanEvery {
		s.calls = 0
		s.clean(now)
	}

	e, ok := s.entries.Get(hash)
	if !ok {
		e = &entry{}
		if s.entries.Add(hash, e) {
			s.log.Debugw("cache full, evicted least recently touched entry", "size", s.entries.Len())
		}
	}
	e.touched = now

	prev := e.stages[stage]
	e.stages[stage] = true

	metrics.DedupCacheSizeSet(s.entries.Len())

	return prev
}

// clean evicts entries untouched for longer than the retention window.
// Entries are ordered by last touch, so the sweep stops at the first fresh one.
func (s *MsgSync) clean(now time.Time) {
	evicted := 0
	for {
		_, e, ok := s.entries.GetOldest()
		if !ok || now.Sub(e.touched) <= s.retention {
			break
		}
		s.entries.RemoveOldest()
		evicted++
	}
	if evicted > 0 {
		s.log.Debugw("evicted stale entries", "evicted", evicted, "remaining", s.entries.Len())
	}
}

// Forget clears the stage of a message, so a later Seen for it reports false.
func (s *MsgSync) Forget(hash common.Hash, stage Stage) {
	if stage < Dispatched || stage > Processed {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries.Peek(hash); ok {
		e.stages[stage] = false
	}
}

// Len returns the number of tracked messages.
func (s *MsgSync) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Len()
}
