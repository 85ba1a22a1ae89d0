package message

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	headerLen       = 76
	tokenIDLen      = 36
	transferLen     = 97
	actionTransfer  = 3
	actionFastTrans = 4
)

var (
	// ErrShortMessage is returned when a raw message is shorter than its header.
	ErrShortMessage = errors.New("message shorter than header")

	// ErrNotTransfer is returned when a message body is not a bridge transfer.
	ErrNotTransfer = errors.New("body is not a bridge transfer")
)

// Header is the fixed prefix of every Nomad message.
type Header struct {
	Origin      uint32
	Sender      common.Hash
	Nonce       uint32
	Destination uint32
	Recipient   common.Hash
	Body        []byte
}

// ParseHeader splits a raw dispatched message into header and body.
func ParseHeader(raw []byte) (Header, error) {
	if len(raw) < headerLen {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrShortMessage, len(raw))
	}

	return Header{
		Origin:      binary.BigEndian.Uint32(raw[0:4]),
		Sender:      common.BytesToHash(raw[4:36]),
		Nonce:       binary.BigEndian.Uint32(raw[36:40]),
		Destination: binary.BigEndian.Uint32(raw[40:44]),
		Recipient:   common.BytesToHash(raw[44:76]),
		Body:        raw[headerLen:],
	}, nil
}

// Transfer is a parsed bridge token transfer body.
type Transfer struct {
	TokenDomain uint32      `json:"tokenDomain"`
	TokenID     common.Hash `json:"tokenId"`
	Recipient   common.Hash `json:"recipient"`
	Amount      *big.Int    `json:"amount"`
	AllowFast   bool        `json:"allowFast"`
	DetailsHash common.Hash `json:"detailsHash"`
}

// RecipientAddress returns the EVM address packed into the padded recipient.
func (t *Transfer) RecipientAddress() common.Address {
	return common.BytesToAddress(t.Recipient.Bytes())
}

// ParseTransfer decodes a bridge message body made of a token id and a transfer action.
func ParseTransfer(body []byte) (*Transfer, error) {
	if len(body) != tokenIDLen+transferLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrNotTransfer, len(body))
	}

	action := body[tokenIDLen:]
	switch action[0] {
	case actionTransfer, actionFastTrans:
	default:
		return nil, fmt.Errorf("%w: action type %d", ErrNotTransfer, action[0])
	}

	return &Transfer{
		TokenDomain: binary.BigEndian.Uint32(body[0:4]),
		TokenID:     common.BytesToHash(body[4:36]),
		Recipient:   common.BytesToHash(action[1:33]),
		Amount:      new(big.Int).SetBytes(action[33:65]),
		AllowFast:   action[0] == actionFastTrans,
		DetailsHash: common.BytesToHash(action[65:97]),
	}, nil
}
