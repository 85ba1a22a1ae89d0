package event

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	// ErrWrongEventType is returned by accessors that only apply to one event type.
	ErrWrongEventType = errors.New("wrong event type")

	// ErrUnknownEventType is returned when decoding an unsupported event type.
	ErrUnknownEventType = errors.New("unknown event type")
)

// EventType identifies one of the Nomad events the indexer follows.
type EventType string

const (
	HomeDispatch   EventType = "homeDispatch"
	HomeUpdate     EventType = "homeUpdate"
	ReplicaUpdate  EventType = "replicaUpdate"
	ReplicaProcess EventType = "replicaProcess"
	BridgeSend     EventType = "bridgeRouterSend"
	BridgeReceive  EventType = "bridgeRouterReceive"
)

// AllEventTypes lists every event type in processing order.
var AllEventTypes = []EventType{HomeDispatch, BridgeSend, HomeUpdate, ReplicaUpdate, ReplicaProcess, BridgeReceive}

// Order ranks event types that share a timestamp. A dispatch is applied before anything referring to it.
func (t EventType) Order() int {
	switch t {
	case HomeDispatch:
		return 0
	case BridgeSend:
		return 1
	case HomeUpdate:
		return 2
	case ReplicaUpdate:
		return 3
	case ReplicaProcess:
		return 4
	case BridgeReceive:
		return 5
	default:
		return len(AllEventTypes)
	}
}

// ContractType returns the contract emitting events of this type.
func (t EventType) ContractType() ContractType {
	switch t {
	case HomeDispatch, HomeUpdate:
		return ContractHome
	case ReplicaUpdate, ReplicaProcess:
		return ContractReplica
	case BridgeSend, BridgeReceive:
		return ContractBridgeRouter
	default:
		return ""
	}
}

// ContractType identifies the emitting contract.
type ContractType string

const (
	ContractHome         ContractType = "home"
	ContractReplica      ContractType = "replica"
	ContractBridgeRouter ContractType = "bridgeRouter"
)

// Source tells whether an event was just fetched from a chain or reloaded from storage.
type Source string

const (
	SourceFetch   Source = "fetch"
	SourceStorage Source = "storage"
)

// Payload is the event type specific part of a NomadEvent.
type Payload interface {
	EventType() EventType

	// canonical returns the payload fields as strings in the fixed hashing order
	canonical() []string
}

const undefined = "undefined"

// Dispatch is emitted by Home when a message is enqueued.
type Dispatch struct {
	MessageHash         common.Hash   `json:"messageHash"`
	LeafIndex           *big.Int      `json:"leafIndex"`
	DestinationAndNonce uint64        `json:"destinationAndNonce"`
	CommittedRoot       common.Hash   `json:"committedRoot"`
	Message             hexutil.Bytes `json:"message"`
}

func (Dispatch) EventType() EventType { return HomeDispatch }

func (d Dispatch) canonical() []string {
	return []string{
		d.MessageHash.Hex(),
		bigString(d.LeafIndex),
		strconv.FormatUint(d.DestinationAndNonce, 10),
		d.CommittedRoot.Hex(),
		hexutil.Encode(d.Message),
	}
}

// Update is emitted by Home and every Replica when a new root is signed.
// The same shape is used for HomeUpdate and ReplicaUpdate.
type Update struct {
	HomeDomain uint32        `json:"homeDomain"`
	OldRoot    common.Hash   `json:"oldRoot"`
	NewRoot    common.Hash   `json:"newRoot"`
	Signature  hexutil.Bytes `json:"signature"`

	replica bool
}

// NewHomeUpdate returns the payload of a HomeUpdate event.
func NewHomeUpdate(homeDomain uint32, oldRoot, newRoot common.Hash, signature []byte) Update {
	return Update{HomeDomain: homeDomain, OldRoot: oldRoot, NewRoot: newRoot, Signature: signature}
}

// NewReplicaUpdate returns the payload of a ReplicaUpdate event.
func NewReplicaUpdate(homeDomain uint32, oldRoot, newRoot common.Hash, signature []byte) Update {
	return Update{HomeDomain: homeDomain, OldRoot: oldRoot, NewRoot: newRoot, Signature: signature, replica: true}
}

func (u Update) EventType() EventType {
	if u.replica {
		return ReplicaUpdate
	}
	return HomeUpdate
}

func (u Update) canonical() []string {
	return []string{
		strconv.FormatUint(uint64(u.HomeDomain), 10),
		u.OldRoot.Hex(),
		u.NewRoot.Hex(),
		hexutil.Encode(u.Signature),
	}
}

// Process is emitted by a Replica when a message is handled on its destination.
// ReturnData holds the keccak256 of the handler return data, as indexed by the contract.
type Process struct {
	MessageHash common.Hash   `json:"messageHash"`
	Success     bool          `json:"success"`
	ReturnData  hexutil.Bytes `json:"returnData"`
}

func (Process) EventType() EventType { return ReplicaProcess }

func (p Process) canonical() []string {
	return []string{p.MessageHash.Hex(), strconv.FormatBool(p.Success), hexutil.Encode(p.ReturnData)}
}

// Send is emitted by the BridgeRouter on the origin chain of a token transfer.
type Send struct {
	Token                common.Address `json:"token"`
	From                 common.Address `json:"from"`
	ToDomain             uint32         `json:"toDomain"`
	ToID                 common.Hash    `json:"toId"`
	Amount               *big.Int       `json:"amount"`
	FastLiquidityEnabled bool           `json:"fastLiquidityEnabled"`
}

func (Send) EventType() EventType { return BridgeSend }

func (s Send) canonical() []string {
	return []string{
		s.Token.Hex(),
		s.From.Hex(),
		strconv.FormatUint(uint64(s.ToDomain), 10),
		s.ToID.Hex(),
		bigString(s.Amount),
		strconv.FormatBool(s.FastLiquidityEnabled),
	}
}

// Receive is emitted by the BridgeRouter on the destination chain of a token transfer.
type Receive struct {
	OriginAndNonce    uint64          `json:"originAndNonce"`
	Token             common.Address  `json:"token"`
	Recipient         common.Address  `json:"recipient"`
	LiquidityProvider *common.Address `json:"liquidityProvider,omitempty"`
	Amount            *big.Int        `json:"amount"`
}

func (Receive) EventType() EventType { return BridgeReceive }

func (r Receive) canonical() []string {
	lp := undefined
	if r.LiquidityProvider != nil && *r.LiquidityProvider != (common.Address{}) {
		lp = r.LiquidityProvider.Hex()
	}

	return []string{
		strconv.FormatUint(r.OriginAndNonce, 10),
		r.Token.Hex(),
		r.Recipient.Hex(),
		lp,
		bigString(r.Amount),
	}
}

func bigString(v *big.Int) string {
	if v == nil {
		return undefined
	}
	return v.String()
}

// SplitPacked splits a packed (domain << 32 | nonce) value.
func SplitPacked(packed uint64) (domain, nonce uint32) {
	return uint32(packed >> 32), uint32(packed) //nolint:gosec
}

// Pack is the inverse of SplitPacked.
func Pack(domain, nonce uint32) uint64 {
	return uint64(domain)<<32 | uint64(nonce)
}

func payloadMismatch(t EventType, p Payload) error {
	return fmt.Errorf("%w: payload %T does not belong to %s", ErrWrongEventType, p, t)
}
