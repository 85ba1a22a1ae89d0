package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/goran-ethernal/NomadIndexer/internal/retry"
	itypes "github.com/goran-ethernal/NomadIndexer/internal/types"
	"github.com/goran-ethernal/NomadIndexer/pkg/config"
	pkgrpc "github.com/goran-ethernal/NomadIndexer/pkg/rpc"
)

// Compile-time check to ensure Client implements pkgrpc.ChainClient interface.
var _ pkgrpc.ChainClient = (*Client)(nil)

const maxBatch = 100

// Method names used in metrics and logs.
const (
	methodGetLogs      = "eth_getLogs"
	methodBlockNumber  = "eth_blockNumber"
	methodGetBlock     = "eth_getBlockByNumber"
	methodGetTxReceipt = "eth_getTransactionReceipt"
)

// Options configure a Client. Zero values disable retries and rate limiting.
type Options struct {
	Retry     *config.RetryConfig
	RateLimit *config.RateLimitConfig
	Failures  *retry.FailureCounter
	Logger    *logger.Logger

	// Finality selects the head returned by BlockNumber, latest when empty.
	Finality itypes.BlockFinality
}

// Client is the RPC connection of one domain. Every call is rate limited,
// retried on transient errors and counted in the domain failure counter.
type Client struct {
	eth      *ethclient.Client
	rpc      *rpc.Client
	domain   uint32
	limiter  *Limiter
	policy   retry.Policy
	failures *retry.FailureCounter
	finality itypes.BlockFinality
	log      *logger.Logger
}

// NewClient creates a new RPC client connected to the given endpoint.
func NewClient(ctx context.Context, endpoint string, domain uint32, opts Options) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc for domain %d: %w", domain, err)
	}

	return newClient(rpcClient, domain, opts), nil
}

func newClient(rpcClient *rpc.Client, domain uint32, opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	failures := opts.Failures
	if failures == nil {
		failures = retry.NewFailureCounter(0)
	}
	finality := opts.Finality
	if finality == "" {
		finality = itypes.FinalityLatest
	}

	return &Client{
		eth:      ethclient.NewClient(rpcClient),
		rpc:      rpcClient,
		domain:   domain,
		limiter:  NewLimiter(domain, opts.RateLimit),
		policy:   retry.PolicyFromConfig(opts.Retry, stopRetrying),
		failures: failures,
		finality: finality,
		log:      log,
	}
}

// Close closes the RPC client connection.
func (c *Client) Close() {
	c.eth.Close()
}

// Failures returns the counter of failed attempts of this domain.
func (c *Client) Failures() *retry.FailureCounter {
	return c.failures
}

// call runs op under the client's rate limit and retry policy.
func call[T any](ctx context.Context, c *Client, method string, cost int, op retry.Operation[T]) (T, error) {
	return retry.Do(ctx, c.policy, func(ctx context.Context) (T, error) {
		if err := c.limiter.Wait(ctx, cost); err != nil {
			var zero T
			return zero, retry.Fatal(err)
		}

		RPCMethodInc(method, c.domain)
		start := time.Now()
		res, err := op(ctx)
		RPCMethodDuration(method, c.domain, time.Since(start))

		return res, err
	}, func(err error, attempt int) {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.failures.Add()
		RPCMethodError(method, c.domain, ErrorClass(err))
		c.log.Warnw("rpc attempt failed",
			"method", method,
			"attempt", attempt+1,
			"max_attempts", c.policy.Attempts,
			"error", err)
	})
}

// BlockNumber returns the current chain head at the configured finality.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	if c.finality == itypes.FinalityLatest {
		return call[uint64](ctx, c, methodBlockNumber, CostGetBlockNumber, c.eth.BlockNumber)
	}

	return call[uint64](ctx, c, methodGetBlock, CostGetBlock, func(ctx context.Context) (uint64, error) {
		var head *blockTime
		if err := c.rpc.CallContext(ctx, &head, methodGetBlock, c.finality.String(), false); err != nil {
			return 0, err
		}
		if head == nil {
			return 0, retry.Fatal(fmt.Errorf("%s block not available on domain %d", c.finality, c.domain))
		}
		return uint64(head.Number), nil
	})
}

// FilterLogs retrieves logs matching the given filter query.
// Oversized queries are not retried so the caller can narrow the range.
func (c *Client) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	return call[[]types.Log](ctx, c, methodGetLogs, CostGetLogs, func(ctx context.Context) ([]types.Log, error) {
		return c.eth.FilterLogs(ctx, query)
	})
}

// ReceiptGasUsed returns the gas used by a transaction.
func (c *Client) ReceiptGasUsed(ctx context.Context, tx common.Hash) (uint64, error) {
	return call[uint64](ctx, c, methodGetTxReceipt, CostGetTxReceipt, func(ctx context.Context) (uint64, error) {
		receipt, err := c.eth.TransactionReceipt(ctx, tx)
		if err != nil {
			return 0, err
		}
		return receipt.GasUsed, nil
	})
}

type blockTime struct {
	Number    hexutil.Uint64 `json:"number"`
	Timestamp hexutil.Uint64 `json:"timestamp"`
}

// BlockTimestamps retrieves timestamps of many blocks with batched eth_getBlockByNumber calls.
func (c *Client) BlockTimestamps(ctx context.Context, blocks []uint64) (map[uint64]uint64, error) {
	out := make(map[uint64]uint64, len(blocks))

	for i := 0; i < len(blocks); i += maxBatch {
		chunk := blocks[i:min(i+maxBatch, len(blocks))]

		results, err := call[[]*blockTime](ctx, c, methodGetBlock, CostGetBlock*len(chunk), func(ctx context.Context) ([]*blockTime, error) {
			return c.batchBlockTimes(ctx, chunk)
		})
		if err != nil {
			return nil, err
		}

		for j, res := range results {
			if res == nil {
				return nil, fmt.Errorf("block %d not found on domain %d", chunk[j], c.domain)
			}
			out[chunk[j]] = uint64(res.Timestamp)
		}
	}

	return out, nil
}

func (c *Client) batchBlockTimes(ctx context.Context, blocks []uint64) ([]*blockTime, error) {
	batch := make([]rpc.BatchElem, len(blocks))
	results := make([]*blockTime, len(blocks))

	for j, blockNum := range blocks {
		batch[j] = rpc.BatchElem{
			Method: methodGetBlock,
			Args:   []any{toBlockNumArg(blockNum), false}, // false = don't include transactions
			Result: &results[j],
		}
	}

	if err := c.rpc.BatchCallContext(ctx, batch); err != nil {
		return nil, err
	}

	for _, elem := range batch {
		if elem.Error != nil {
			return nil, elem.Error
		}
	}

	return results, nil
}

// toBlockNumArg converts a block number to hex format.
func toBlockNumArg(blockNum uint64) string {
	return fmt.Sprintf("0x%x", blockNum)
}
