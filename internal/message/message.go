package message

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/NomadIndexer/internal/event"
)

// NomadMessage is the reconciled view of one cross-chain message.
type NomadMessage struct {
	Origin        uint32
	Destination   uint32
	Nonce         uint32
	Root          common.Hash
	MessageHash   common.Hash
	LeafIndex     *big.Int
	Body          []byte
	DispatchBlock uint64

	// Sender and Tx come from the bridge router Send event.
	Sender *common.Address
	Tx     *common.Hash

	InternalSender    common.Hash
	InternalRecipient common.Hash
	Transfer          *Transfer

	State    State
	Timings  Timings
	GasUsed  GasUsed
	Checkbox Checkbox

	Success    *bool
	ReturnData []byte
}

// FromDispatch builds a message in the Dispatched state from a HomeDispatch event.
func FromDispatch(ev *event.NomadEvent) (*NomadMessage, error) {
	d, ok := ev.Data.(event.Dispatch)
	if !ok {
		return nil, fmt.Errorf("%w: cannot build a message from %s", event.ErrWrongEventType, ev.EventType)
	}

	destination, nonce, err := ev.DestinationAndNonce()
	if err != nil {
		return nil, err
	}

	m := &NomadMessage{
		Origin:        ev.Domain,
		Destination:   destination,
		Nonce:         nonce,
		Root:          d.CommittedRoot,
		MessageHash:   d.MessageHash,
		LeafIndex:     d.LeafIndex,
		Body:          bytes.Clone(d.Message),
		DispatchBlock: ev.Block,
		State:         Dispatched,
		Timings:       Timings{DispatchedAt: ev.TS},
		GasUsed:       GasUsed{Dispatch: ev.GasUsed},
	}
	m.ParseBody()

	return m, nil
}

// ParseBody fills the header derived fields and the transfer, when the body is one.
// Malformed bodies leave those fields empty.
func (m *NomadMessage) ParseBody() {
	h, err := ParseHeader(m.Body)
	if err != nil {
		return
	}

	m.InternalSender = h.Sender
	m.InternalRecipient = h.Recipient
	if t, err := ParseTransfer(h.Body); err == nil {
		m.Transfer = t
	}
}

// IsTransfer reports whether the message carries a bridge token transfer.
func (m *NomadMessage) IsTransfer() bool {
	return m.Transfer != nil
}

func (m *NomadMessage) advance(to State) bool {
	if m.State >= to {
		return false
	}
	m.State = to
	return true
}

// Send records the originating account and transaction of a bridge transfer.
func (m *NomadMessage) Send(ev *event.NomadEvent) bool {
	s, ok := ev.Data.(event.Send)
	if !ok {
		return false
	}

	from, tx := s.From, ev.Tx
	m.Sender = &from
	m.Tx = &tx
	m.Checkbox.Sent = true
	return true
}

// Update applies a HomeUpdate and reports whether the state moved.
func (m *NomadMessage) Update(ev *event.NomadEvent) bool {
	m.Timings.Updated(ev.TS)
	m.GasUsed.Update = ev.GasUsed
	m.Checkbox.Updated = true
	return m.advance(Updated)
}

// Relay applies a ReplicaUpdate and reports whether the state moved.
func (m *NomadMessage) Relay(ev *event.NomadEvent) bool {
	m.Timings.Relayed(ev.TS)
	m.GasUsed.Relay = ev.GasUsed
	m.Checkbox.Relayed = true
	return m.advance(Relayed)
}

// Receive applies a bridge router Receive and reports whether the state moved.
func (m *NomadMessage) Receive(ev *event.NomadEvent) bool {
	m.Timings.Received(ev.TS)
	m.GasUsed.Receive = ev.GasUsed
	m.Checkbox.Received = true
	return m.advance(Received)
}

// Process applies a ReplicaProcess and reports whether the state moved.
func (m *NomadMessage) Process(ev *event.NomadEvent) bool {
	m.Timings.Processed(ev.TS)
	m.GasUsed.Process = ev.GasUsed
	m.Checkbox.Processed = true
	if p, ok := ev.Data.(event.Process); ok {
		success := p.Success
		m.Success = &success
		m.ReturnData = bytes.Clone(p.ReturnData)
	}
	return m.advance(Processed)
}

func (m *NomadMessage) String() string {
	return fmt.Sprintf("message %s %d->%d nonce=%d state=%s", m.MessageHash.Hex(), m.Origin, m.Destination, m.Nonce, m.State)
}
