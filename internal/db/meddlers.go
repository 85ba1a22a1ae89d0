package db

import (
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
)

func init() {
	meddler.Register("hash", HashMeddler{})
	meddler.Register("address", AddressMeddler{})
	meddler.Register("bigint", BigIntMeddler{})
}

var errUnexpectedType = errors.New("unexpected field type")

// HashMeddler stores common.Hash and *common.Hash as hex strings, NULL for a nil pointer.
type HashMeddler struct{}

func (HashMeddler) PreRead(fieldAddr any) (scanTarget any, err error) {
	return new(sql.NullString), nil
}

func (HashMeddler) PostRead(fieldPtr, scanTarget any) error {
	s, ok := scanTarget.(*sql.NullString)
	if !ok {
		return errUnexpectedType
	}

	switch field := fieldPtr.(type) {
	case *common.Hash:
		if s.Valid {
			*field = common.HexToHash(s.String)
		} else {
			*field = common.Hash{}
		}
	case **common.Hash:
		if s.Valid {
			h := common.HexToHash(s.String)
			*field = &h
		} else {
			*field = nil
		}
	default:
		return fmt.Errorf("%w: hash meddler got %T", errUnexpectedType, fieldPtr)
	}
	return nil
}

func (HashMeddler) PreWrite(field any) (saveValue any, err error) {
	switch h := field.(type) {
	case common.Hash:
		return h.Hex(), nil
	case *common.Hash:
		if h == nil {
			return nil, nil
		}
		return h.Hex(), nil
	default:
		return nil, fmt.Errorf("%w: hash meddler got %T", errUnexpectedType, field)
	}
}

// AddressMeddler stores common.Address and *common.Address as hex strings.
type AddressMeddler struct{}

func (AddressMeddler) PreRead(fieldAddr any) (scanTarget any, err error) {
	return new(sql.NullString), nil
}

func (AddressMeddler) PostRead(fieldPtr, scanTarget any) error {
	s, ok := scanTarget.(*sql.NullString)
	if !ok {
		return errUnexpectedType
	}

	switch field := fieldPtr.(type) {
	case *common.Address:
		if s.Valid {
			*field = common.HexToAddress(s.String)
		} else {
			*field = common.Address{}
		}
	case **common.Address:
		if s.Valid {
			a := common.HexToAddress(s.String)
			*field = &a
		} else {
			*field = nil
		}
	default:
		return fmt.Errorf("%w: address meddler got %T", errUnexpectedType, fieldPtr)
	}
	return nil
}

func (AddressMeddler) PreWrite(field any) (saveValue any, err error) {
	switch a := field.(type) {
	case common.Address:
		return a.Hex(), nil
	case *common.Address:
		if a == nil {
			return nil, nil
		}
		return a.Hex(), nil
	default:
		return nil, fmt.Errorf("%w: address meddler got %T", errUnexpectedType, field)
	}
}

// BigIntMeddler stores *big.Int as a decimal string so values above 2^63 survive.
type BigIntMeddler struct{}

func (BigIntMeddler) PreRead(fieldAddr any) (scanTarget any, err error) {
	return new(sql.NullString), nil
}

func (BigIntMeddler) PostRead(fieldPtr, scanTarget any) error {
	s, ok := scanTarget.(*sql.NullString)
	if !ok {
		return errUnexpectedType
	}
	field, ok := fieldPtr.(**big.Int)
	if !ok {
		return fmt.Errorf("%w: bigint meddler got %T", errUnexpectedType, fieldPtr)
	}
	if !s.Valid {
		*field = nil
		return nil
	}
	v, ok := new(big.Int).SetString(s.String, 10)
	if !ok {
		return fmt.Errorf("bigint meddler: invalid decimal %q", s.String)
	}
	*field = v
	return nil
}

func (BigIntMeddler) PreWrite(field any) (saveValue any, err error) {
	v, ok := field.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: bigint meddler got %T", errUnexpectedType, field)
	}
	if v == nil {
		return nil, nil
	}
	return v.String(), nil
}
