package store

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goran-ethernal/NomadIndexer/internal/message"
)

const (
	messagesTable = "messages"
	eventsTable   = "events"
	kvTable       = "kv_storage"
)

// dbMessage is a row of the messages table
type dbMessage struct {
	MessageHash       common.Hash     `meddler:"message_hash,hash"`
	Origin            uint32          `meddler:"origin"`
	Destination       uint32          `meddler:"destination"`
	Nonce             uint32          `meddler:"nonce"`
	Root              common.Hash     `meddler:"root,hash"`
	LeafIndex         *big.Int        `meddler:"leaf_index,bigint"`
	Body              string          `meddler:"body"`
	DispatchBlock     uint64          `meddler:"dispatch_block"`
	Sender            *common.Address `meddler:"sender,address"`
	Tx                *common.Hash    `meddler:"tx,hash"`
	InternalSender    common.Hash     `meddler:"internal_sender,hash"`
	InternalRecipient common.Hash     `meddler:"internal_recipient,hash"`
	TokenDomain       *uint32         `meddler:"token_domain"`
	TokenID           *common.Hash    `meddler:"token_id,hash"`
	TransferRecipient *common.Hash    `meddler:"transfer_recipient,hash"`
	Amount            *big.Int        `meddler:"amount,bigint"`
	AllowFast         *bool           `meddler:"allow_fast"`
	DetailsHash       *common.Hash    `meddler:"details_hash,hash"`
	State             int             `meddler:"state"`
	DispatchedAt      int64           `meddler:"dispatched_at"`
	UpdatedAt         int64           `meddler:"updated_at"`
	RelayedAt         int64           `meddler:"relayed_at"`
	ReceivedAt        int64           `meddler:"received_at"`
	ProcessedAt       int64           `meddler:"processed_at"`
	GasAtDispatch     uint64          `meddler:"gas_at_dispatch"`
	GasAtUpdate       uint64          `meddler:"gas_at_update"`
	GasAtRelay        uint64          `meddler:"gas_at_relay"`
	GasAtReceive      uint64          `meddler:"gas_at_receive"`
	GasAtProcess      uint64          `meddler:"gas_at_process"`
	Sent              bool            `meddler:"sent"`
	Updated           bool            `meddler:"updated"`
	Relayed           bool            `meddler:"relayed"`
	Received          bool            `meddler:"received"`
	Processed         bool            `meddler:"processed"`
	Success           *bool           `meddler:"success"`
	ReturnData        *string         `meddler:"return_data"`
}

// dbEvent is a row of the raw event log
type dbEvent struct {
	Hash      common.Hash `meddler:"hash,hash"`
	Domain    uint32      `meddler:"domain"`
	EventType string      `meddler:"event_type"`
	Block     uint64      `meddler:"block"`
	LogIndex  uint        `meddler:"log_index"`
	TS        int64       `meddler:"ts"`
	Object    string      `meddler:"object"`
}

func toDBMessage(m *message.NomadMessage) *dbMessage {
	row := &dbMessage{
		MessageHash:       m.MessageHash,
		Origin:            m.Origin,
		Destination:       m.Destination,
		Nonce:             m.Nonce,
		Root:              m.Root,
		LeafIndex:         m.LeafIndex,
		Body:              hexutil.Encode(m.Body),
		DispatchBlock:     m.DispatchBlock,
		Sender:            m.Sender,
		Tx:                m.Tx,
		InternalSender:    m.InternalSender,
		InternalRecipient: m.InternalRecipient,
		State:             int(m.State),
		DispatchedAt:      m.Timings.DispatchedAt,
		UpdatedAt:         m.Timings.UpdatedAt,
		RelayedAt:         m.Timings.RelayedAt,
		ReceivedAt:        m.Timings.ReceivedAt,
		ProcessedAt:       m.Timings.ProcessedAt,
		GasAtDispatch:     m.GasUsed.Dispatch,
		GasAtUpdate:       m.GasUsed.Update,
		GasAtRelay:        m.GasUsed.Relay,
		GasAtReceive:      m.GasUsed.Receive,
		GasAtProcess:      m.GasUsed.Process,
		Sent:              m.Checkbox.Sent,
		Updated:           m.Checkbox.Updated,
		Relayed:           m.Checkbox.Relayed,
		Received:          m.Checkbox.Received,
		Processed:         m.Checkbox.Processed,
		Success:           m.Success,
	}

	if t := m.Transfer; t != nil {
		tokenDomain, tokenID, recipient, details, allowFast := t.TokenDomain, t.TokenID, t.Recipient, t.DetailsHash, t.AllowFast
		row.TokenDomain = &tokenDomain
		row.TokenID = &tokenID
		row.TransferRecipient = &recipient
		row.Amount = t.Amount
		row.AllowFast = &allowFast
		row.DetailsHash = &details
	}

	if m.ReturnData != nil {
		data := hexutil.Encode(m.ReturnData)
		row.ReturnData = &data
	}

	return row
}

func (r *dbMessage) toMessage() (*message.NomadMessage, error) {
	body, err := hexutil.Decode(r.Body)
	if err != nil {
		return nil, fmt.Errorf("message %s has a malformed body: %w", r.MessageHash.Hex(), err)
	}

	m := &message.NomadMessage{
		Origin:            r.Origin,
		Destination:       r.Destination,
		Nonce:             r.Nonce,
		Root:              r.Root,
		MessageHash:       r.MessageHash,
		LeafIndex:         r.LeafIndex,
		Body:              body,
		DispatchBlock:     r.DispatchBlock,
		Sender:            r.Sender,
		Tx:                r.Tx,
		InternalSender:    r.InternalSender,
		InternalRecipient: r.InternalRecipient,
		State:             message.State(r.State),
		Timings: message.Timings{
			DispatchedAt: r.DispatchedAt,
			UpdatedAt:    r.UpdatedAt,
			RelayedAt:    r.RelayedAt,
			ReceivedAt:   r.ReceivedAt,
			ProcessedAt:  r.ProcessedAt,
		},
		GasUsed: message.GasUsed{
			Dispatch: r.GasAtDispatch,
			Update:   r.GasAtUpdate,
			Relay:    r.GasAtRelay,
			Receive:  r.GasAtReceive,
			Process:  r.GasAtProcess,
		},
		Checkbox: message.Checkbox{
			Sent:      r.Sent,
			Updated:   r.Updated,
			Relayed:   r.Relayed,
			Received:  r.Received,
			Processed: r.Processed,
		},
		Success: r.Success,
	}

	if r.TokenID != nil {
		t := &message.Transfer{TokenID: *r.TokenID, Amount: r.Amount}
		if r.TokenDomain != nil {
			t.TokenDomain = *r.TokenDomain
		}
		if r.TransferRecipient != nil {
			t.Recipient = *r.TransferRecipient
		}
		if r.AllowFast != nil {
			t.AllowFast = *r.AllowFast
		}
		if r.DetailsHash != nil {
			t.DetailsHash = *r.DetailsHash
		}
		m.Transfer = t
	}

	if r.ReturnData != nil {
		data, err := hexutil.Decode(*r.ReturnData)
		if err != nil {
			return nil, fmt.Errorf("message %s has malformed return data: %w", r.MessageHash.Hex(), err)
		}
		m.ReturnData = data
	}

	return m, nil
}

func toMessages(rows []*dbMessage) ([]*message.NomadMessage, error) {
	msgs := make([]*message.NomadMessage, 0, len(rows))
	for _, r := range rows {
		m, err := r.toMessage()
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
