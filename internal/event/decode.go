package event

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrUnexpectedLog is returned when a log does not carry the expected event signature.
var ErrUnexpectedLog = errors.New("unexpected log")

const nomadABI = `[
 {"type":"event","name":"Dispatch","anonymous":false,"inputs":[
  {"name":"messageHash","type":"bytes32","indexed":true},
  {"name":"leafIndex","type":"uint256","indexed":true},
  {"name":"destinationAndNonce","type":"uint64","indexed":true},
  {"name":"committedRoot","type":"bytes32","indexed":false},
  {"name":"message","type":"bytes","indexed":false}]},
 {"type":"event","name":"Update","anonymous":false,"inputs":[
  {"name":"homeDomain","type":"uint32","indexed":true},
  {"name":"oldRoot","type":"bytes32","indexed":true},
  {"name":"newRoot","type":"bytes32","indexed":true},
  {"name":"signature","type":"bytes","indexed":false}]},
 {"type":"event","name":"Process","anonymous":false,"inputs":[
  {"name":"messageHash","type":"bytes32","indexed":true},
  {"name":"success","type":"bool","indexed":true},
  {"name":"returnData","type":"bytes","indexed":true}]},
 {"type":"event","name":"Send","anonymous":false,"inputs":[
  {"name":"token","type":"address","indexed":true},
  {"name":"from","type":"address","indexed":true},
  {"name":"toDomain","type":"uint32","indexed":true},
  {"name":"toId","type":"bytes32","indexed":false},
  {"name":"amount","type":"uint256","indexed":false},
  {"name":"fastLiquidityEnabled","type":"bool","indexed":false}]},
 {"type":"event","name":"Receive","anonymous":false,"inputs":[
  {"name":"originAndNonce","type":"uint64","indexed":true},
  {"name":"token","type":"address","indexed":true},
  {"name":"recipient","type":"address","indexed":true},
  {"name":"liquidityProvider","type":"address","indexed":false},
  {"name":"amount","type":"uint256","indexed":false}]}
]`

// abiName maps event types to their Solidity event names.
var abiName = map[EventType]string{
	HomeDispatch:   "Dispatch",
	HomeUpdate:     "Update",
	ReplicaUpdate:  "Update",
	ReplicaProcess: "Process",
	BridgeSend:     "Send",
	BridgeReceive:  "Receive",
}

// Decoder turns raw logs into typed payloads.
type Decoder struct {
	abi abi.ABI
}

// NewDecoder parses the Nomad contract ABI.
func NewDecoder() (*Decoder, error) {
	parsed, err := abi.JSON(strings.NewReader(nomadABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse nomad abi: %w", err)
	}
	return &Decoder{abi: parsed}, nil
}

// MustNewDecoder is NewDecoder for package level initialization.
func MustNewDecoder() *Decoder {
	d, err := NewDecoder()
	if err != nil {
		panic(err)
	}
	return d
}

// Topic returns the topic0 of logs carrying the given event type.
func (d *Decoder) Topic(t EventType) (common.Hash, error) {
	ev, err := d.event(t)
	if err != nil {
		return common.Hash{}, err
	}
	return ev.ID, nil
}

func (d *Decoder) event(t EventType) (abi.Event, error) {
	name, ok := abiName[t]
	if !ok {
		return abi.Event{}, fmt.Errorf("%w: %q", ErrUnknownEventType, t)
	}
	return d.abi.Events[name], nil
}

// Decode extracts the payload of a log emitted for the given event type.
func (d *Decoder) Decode(t EventType, log types.Log) (Payload, error) {
	ev, err := d.event(t)
	if err != nil {
		return nil, err
	}
	if len(log.Topics) == 0 || log.Topics[0] != ev.ID {
		return nil, fmt.Errorf("%w: log %d in tx %s is not %s", ErrUnexpectedLog, log.Index, log.TxHash.Hex(), ev.Sig)
	}

	fields := make(map[string]any, len(ev.Inputs))
	if len(log.Data) > 0 {
		if err := ev.Inputs.NonIndexed().UnpackIntoMap(fields, log.Data); err != nil {
			return nil, fmt.Errorf("failed to unpack %s data: %w", ev.Name, err)
		}
	}

	var indexed abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopicsIntoMap(fields, indexed, log.Topics[1:]); err != nil {
		return nil, fmt.Errorf("failed to parse %s topics: %w", ev.Name, err)
	}

	f := fieldReader{event: ev.Name, fields: fields}
	var p Payload
	switch t {
	case HomeDispatch:
		p = Dispatch{
			MessageHash:         f.hash("messageHash"),
			LeafIndex:           f.big("leafIndex"),
			DestinationAndNonce: f.uint64("destinationAndNonce"),
			CommittedRoot:       f.hash("committedRoot"),
			Message:             f.bytes("message"),
		}
	case HomeUpdate, ReplicaUpdate:
		u := Update{
			HomeDomain: f.uint32("homeDomain"),
			OldRoot:    f.hash("oldRoot"),
			NewRoot:    f.hash("newRoot"),
			Signature:  f.bytes("signature"),
		}
		u.replica = t == ReplicaUpdate
		p = u
	case ReplicaProcess:
		rd := f.hash("returnData")
		p = Process{
			MessageHash: f.hash("messageHash"),
			Success:     f.bool("success"),
			ReturnData:  rd.Bytes(),
		}
	case BridgeSend:
		p = Send{
			Token:                f.address("token"),
			From:                 f.address("from"),
			ToDomain:             f.uint32("toDomain"),
			ToID:                 f.hash("toId"),
			Amount:               f.big("amount"),
			FastLiquidityEnabled: f.bool("fastLiquidityEnabled"),
		}
	case BridgeReceive:
		lp := f.address("liquidityProvider")
		r := Receive{
			OriginAndNonce: f.uint64("originAndNonce"),
			Token:          f.address("token"),
			Recipient:      f.address("recipient"),
			Amount:         f.big("amount"),
		}
		if lp != (common.Address{}) {
			r.LiquidityProvider = &lp
		}
		p = r
	}
	if f.err != nil {
		return nil, f.err
	}

	return p, nil
}

// fieldReader converts unpacked abi values, remembering the first mismatch.
type fieldReader struct {
	event  string
	fields map[string]any
	err    error
}

func (f *fieldReader) get(name string) any {
	v, ok := f.fields[name]
	if !ok && f.err == nil {
		f.err = fmt.Errorf("%w: %s has no field %s", ErrUnexpectedLog, f.event, name)
	}
	return v
}

func (f *fieldReader) mismatch(name string, v any) {
	if f.err == nil {
		f.err = fmt.Errorf("%w: %s.%s has type %T", ErrUnexpectedLog, f.event, name, v)
	}
}

func (f *fieldReader) hash(name string) common.Hash {
	switch v := f.get(name).(type) {
	case [32]byte:
		return common.Hash(v)
	case common.Hash:
		return v
	case nil:
		return common.Hash{}
	default:
		f.mismatch(name, v)
		return common.Hash{}
	}
}

func (f *fieldReader) big(name string) *big.Int {
	switch v := f.get(name).(type) {
	case *big.Int:
		return v
	case nil:
		return nil
	default:
		f.mismatch(name, v)
		return nil
	}
}

func (f *fieldReader) uint64(name string) uint64 {
	switch v := f.get(name).(type) {
	case uint64:
		return v
	case nil:
		return 0
	default:
		f.mismatch(name, v)
		return 0
	}
}

func (f *fieldReader) uint32(name string) uint32 {
	switch v := f.get(name).(type) {
	case uint32:
		return v
	case nil:
		return 0
	default:
		f.mismatch(name, v)
		return 0
	}
}

func (f *fieldReader) bool(name string) bool {
	switch v := f.get(name).(type) {
	case bool:
		return v
	case nil:
		return false
	default:
		f.mismatch(name, v)
		return false
	}
}

func (f *fieldReader) address(name string) common.Address {
	switch v := f.get(name).(type) {
	case common.Address:
		return v
	case nil:
		return common.Address{}
	default:
		f.mismatch(name, v)
		return common.Address{}
	}
}

func (f *fieldReader) bytes(name string) []byte {
	switch v := f.get(name).(type) {
	case []byte:
		return v
	case nil:
		return nil
	default:
		f.mismatch(name, v)
		return nil
	}
}
