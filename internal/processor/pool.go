package processor

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/NomadIndexer/internal/event"
)

// EventPool parks events whose message is not stored yet.
// Update and relay events are kept per root since one root commits many messages.
type EventPool interface {
	Store(ctx context.Context, ev *event.NomadEvent) error

	Send(ctx context.Context, destination uint32, recipient common.Hash, amount *big.Int, block uint64) (*event.NomadEvent, error)
	Updates(ctx context.Context, origin uint32, root common.Hash) ([]*event.NomadEvent, error)
	Relays(ctx context.Context, origin uint32, root common.Hash) ([]*event.NomadEvent, error)
	Receive(ctx context.Context, origin, nonce uint32) (*event.NomadEvent, error)
	Process(ctx context.Context, messageHash common.Hash) (*event.NomadEvent, error)
}

type poolKind string

const (
	kindSend    poolKind = "send"
	kindUpdate  poolKind = "update"
	kindRelay   poolKind = "relay"
	kindReceive poolKind = "receive"
	kindProcess poolKind = "process"
)

// isList reports whether the kind keeps every event of a key instead of the last one.
func (k poolKind) isList() bool {
	return k == kindUpdate || k == kindRelay
}

func sendKey(destination uint32, recipient common.Hash, amount *big.Int, block uint64) string {
	return fmt.Sprintf("%d;%s;%s;%d", destination, recipient.Hex(), amount, block)
}

func rootKey(origin uint32, root common.Hash) string {
	return fmt.Sprintf("%d;%s", origin, root.Hex())
}

func receiveKey(origin, nonce uint32) string {
	return fmt.Sprintf("%d;%d", origin, nonce)
}

// poolKey returns where an event is parked. Events of other types are not pooled.
func poolKey(ev *event.NomadEvent) (poolKind, string, bool) {
	switch d := ev.Data.(type) {
	case event.Send:
		return kindSend, sendKey(d.ToDomain, d.ToID, d.Amount, ev.Block), true
	case event.Update:
		if ev.EventType == event.ReplicaUpdate {
			return kindRelay, rootKey(d.HomeDomain, d.OldRoot), true
		}
		return kindUpdate, rootKey(d.HomeDomain, d.OldRoot), true
	case event.Receive:
		origin, nonce := event.SplitPacked(d.OriginAndNonce)
		return kindReceive, receiveKey(origin, nonce), true
	case event.Process:
		return kindProcess, d.MessageHash.Hex(), true
	default:
		return "", "", false
	}
}
