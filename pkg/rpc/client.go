package rpc

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ChainClient is the chain access one domain poller needs.
// Implementations retry transient failures and rate limit their calls.
type ChainClient interface {
	// Close closes the RPC client connection.
	Close()

	// BlockNumber returns the current chain head.
	BlockNumber(ctx context.Context) (uint64, error)

	// FilterLogs retrieves logs matching the given filter query.
	FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)

	// BlockTimestamps returns the timestamp, in seconds, of every requested block.
	BlockTimestamps(ctx context.Context, blocks []uint64) (map[uint64]uint64, error)

	// ReceiptGasUsed returns the gas used by a transaction.
	ReceiptGasUsed(ctx context.Context, tx common.Hash) (uint64, error)
}
