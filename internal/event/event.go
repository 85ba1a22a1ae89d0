package event

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// NomadEvent is one decoded contract event together with its chain metadata.
type NomadEvent struct {
	Domain        uint32
	EventType     EventType
	ContractType  ContractType
	ReplicaOrigin uint32 // 0 unless ContractType is replica
	Block         uint64
	LogIndex      uint
	Tx            common.Hash
	GasUsed       uint64 // 0 when receipts are not fetched
	Source        Source
	TS            int64 // unix milliseconds
	Data          Payload
}

// New builds an event and checks that the payload belongs to the event type.
func New(domain uint32, replicaOrigin uint32, data Payload, block uint64, logIndex uint,
	tx common.Hash, gasUsed uint64, ts int64, source Source) (*NomadEvent, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil payload", ErrUnknownEventType)
	}

	t := data.EventType()
	ct := t.ContractType()
	if ct == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventType, t)
	}
	if ct != ContractReplica {
		replicaOrigin = 0
	}

	return &NomadEvent{
		Domain:        domain,
		EventType:     t,
		ContractType:  ct,
		ReplicaOrigin: replicaOrigin,
		Block:         block,
		LogIndex:      logIndex,
		Tx:            tx,
		GasUsed:       gasUsed,
		Source:        source,
		TS:            ts,
		Data:          data,
	}, nil
}

// UniqueHash identifies the event across fetches and restarts.
// Source and TS are excluded so the same chain event hashes identically
// whether it came from RPC or from storage.
func (e *NomadEvent) UniqueHash() common.Hash {
	parts := []string{
		strconv.FormatUint(uint64(e.Domain), 10),
		string(e.EventType),
		string(e.ContractType),
		strconv.FormatUint(uint64(e.ReplicaOrigin), 10),
		strconv.FormatUint(e.Block, 10),
		strconv.FormatUint(uint64(e.LogIndex), 10),
		e.Tx.Hex(),
		strconv.FormatUint(e.GasUsed, 10),
	}
	if e.Data != nil {
		parts = append(parts, e.Data.canonical()...)
	}

	return crypto.Keccak256Hash([]byte(strings.Join(parts, "|")))
}

// DestinationAndNonce returns the destination domain and nonce of a dispatch.
func (e *NomadEvent) DestinationAndNonce() (destination uint32, nonce uint32, err error) {
	d, ok := e.Data.(Dispatch)
	if e.EventType != HomeDispatch || !ok {
		return 0, 0, fmt.Errorf("%w: destinationAndNonce requires %s, got %s", ErrWrongEventType, HomeDispatch, e.EventType)
	}

	destination, nonce = SplitPacked(d.DestinationAndNonce)
	return destination, nonce, nil
}

// OriginAndNonce returns the origin domain and nonce of a bridge receive.
func (e *NomadEvent) OriginAndNonce() (origin uint32, nonce uint32, err error) {
	r, ok := e.Data.(Receive)
	if e.EventType != BridgeReceive || !ok {
		return 0, 0, fmt.Errorf("%w: originAndNonce requires %s, got %s", ErrWrongEventType, BridgeReceive, e.EventType)
	}

	origin, nonce = SplitPacked(r.OriginAndNonce)
	return origin, nonce, nil
}

// Less orders events by timestamp, then event type, then block, then log index.
func Less(a, b *NomadEvent) bool {
	if a.TS != b.TS {
		return a.TS < b.TS
	}
	if oa, ob := a.EventType.Order(), b.EventType.Order(); oa != ob {
		return oa < ob
	}
	if a.Block != b.Block {
		return a.Block < b.Block
	}
	return a.LogIndex < b.LogIndex
}

// Sort orders events in place, keeping the relative order of equal events.
func Sort(events []*NomadEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return Less(events[i], events[j])
	})
}

// Dedup drops events whose UniqueHash was already seen earlier in the slice.
func Dedup(events []*NomadEvent) []*NomadEvent {
	seen := make(map[common.Hash]struct{}, len(events))
	out := events[:0]
	for _, e := range events {
		h := e.UniqueHash()
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, e)
	}
	return out
}

func (e *NomadEvent) String() string {
	return fmt.Sprintf("%s@%d[%d] block=%d tx=%s", e.EventType, e.Domain, e.LogIndex, e.Block, e.Tx.Hex())
}
