package event

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Object is the serializable form of a NomadEvent.
type Object struct {
	Domain        uint32          `json:"domain"`
	EventType     EventType       `json:"eventType"`
	ContractType  ContractType    `json:"contractType"`
	ReplicaOrigin uint32          `json:"replicaOrigin"`
	Block         uint64          `json:"block"`
	LogIndex      uint            `json:"logIndex"`
	Tx            common.Hash     `json:"tx"`
	GasUsed       uint64          `json:"gasUsed"`
	Source        Source          `json:"source"`
	TS            int64           `json:"ts"`
	EventData     json.RawMessage `json:"eventData"`
}

// ToObject converts the event into its serializable form.
func (e *NomadEvent) ToObject() (Object, error) {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return Object{}, fmt.Errorf("failed to encode %s payload: %w", e.EventType, err)
	}

	return Object{
		Domain:        e.Domain,
		EventType:     e.EventType,
		ContractType:  e.ContractType,
		ReplicaOrigin: e.ReplicaOrigin,
		Block:         e.Block,
		LogIndex:      e.LogIndex,
		Tx:            e.Tx,
		GasUsed:       e.GasUsed,
		Source:        e.Source,
		TS:            e.TS,
		EventData:     data,
	}, nil
}

// FromObject rebuilds an event from its serializable form. The result is marked as loaded from storage.
func FromObject(o Object) (*NomadEvent, error) {
	data, err := decodePayload(o.EventType, o.EventData)
	if err != nil {
		return nil, err
	}

	ev, err := New(o.Domain, o.ReplicaOrigin, data, o.Block, o.LogIndex, o.Tx, o.GasUsed, o.TS, SourceStorage)
	if err != nil {
		return nil, err
	}
	if o.ContractType != "" && o.ContractType != ev.ContractType {
		return nil, fmt.Errorf("%w: %s is not emitted by %s", ErrWrongEventType, o.EventType, o.ContractType)
	}

	return ev, nil
}

// MarshalJSON encodes the event as its Object form.
func (e *NomadEvent) MarshalJSON() ([]byte, error) {
	o, err := e.ToObject()
	if err != nil {
		return nil, err
	}
	return json.Marshal(o)
}

// UnmarshalJSON decodes an Object form into the event.
func (e *NomadEvent) UnmarshalJSON(b []byte) error {
	var o Object
	if err := json.Unmarshal(b, &o); err != nil {
		return err
	}

	ev, err := FromObject(o)
	if err != nil {
		return err
	}

	*e = *ev
	return nil
}

func decodePayload(t EventType, raw json.RawMessage) (Payload, error) {
	var (
		p   Payload
		err error
	)
	switch t {
	case HomeDispatch:
		var d Dispatch
		err = json.Unmarshal(raw, &d)
		p = d
	case HomeUpdate, ReplicaUpdate:
		var u Update
		err = json.Unmarshal(raw, &u)
		u.replica = t == ReplicaUpdate
		p = u
	case ReplicaProcess:
		var pr Process
		err = json.Unmarshal(raw, &pr)
		p = pr
	case BridgeSend:
		var s Send
		err = json.Unmarshal(raw, &s)
		p = s
	case BridgeReceive:
		var r Receive
		err = json.Unmarshal(raw, &r)
		p = r
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, t)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", t, err)
	}

	return p, nil
}
