package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/NomadIndexer/internal/common"
	"github.com/goran-ethernal/NomadIndexer/internal/retry"
)

// JSON-RPC error code for invalid method parameters.
const codeInvalidParams = -32602

var (
	tooManyResultsRe = regexp.MustCompile(`Query returned more than \d+ results`)
	blockRangeRe     = regexp.MustCompile(`\[(0x[0-9a-fA-F]+),\s*(0x[0-9a-fA-F]+)\]`)
)

// IsTooManyResultsError checks if the error is an RPC "too many results" error (DataError with message in ErrorData).
func IsTooManyResultsError(err error) (bool, string) {
	if err == nil {
		return false, ""
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		errData := fmt.Sprintf("%v", dataErr.ErrorData())
		return tooManyResultsRe.MatchString(errData), errData
	}

	return false, ""
}

// ParseSuggestedBlockRange extracts the block range a provider suggests in a "too many results" error.
// Expected format: "Query returned more than 20000 results. Try with this block range [0x7dfd25, 0x7e0fcc]."
func ParseSuggestedBlockRange(err string) (fromBlock, toBlock uint64, ok bool) {
	if err == "" {
		return 0, 0, false
	}

	matches := blockRangeRe.FindStringSubmatch(err)

	const expectedMatches = 3 // full match + 2 groups
	if len(matches) != expectedMatches {
		return 0, 0, false
	}

	from, err1 := common.ParseUint64orHex(&matches[1])
	to, err2 := common.ParseUint64orHex(&matches[2])

	if err1 != nil || err2 != nil {
		return 0, 0, false
	}

	return from, to, true
}

// ErrorCode returns the JSON-RPC error code carried by err, if any.
func ErrorCode(err error) (int, bool) {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode(), true
	}
	return 0, false
}

// IsFatal reports whether retrying err cannot help.
// Insufficient funds and invalid argument errors are fatal, as is anything wrapped with retry.Fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if retry.IsFatal(err) {
		return true
	}
	if code, ok := ErrorCode(err); ok && code == codeInvalidParams {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "insufficient funds") ||
		strings.Contains(msg, "invalid argument") ||
		strings.Contains(msg, "invalid params")
}

// stopRetrying is the retry classifier of the client: fatal errors and
// oversized log queries are returned to the caller right away.
func stopRetrying(err error) bool {
	if IsFatal(err) {
		return true
	}
	tooMany, _ := IsTooManyResultsError(err)
	return tooMany
}

// ErrorClass labels an error for metrics and logs.
func ErrorClass(err error) string {
	if err == nil {
		return ""
	}
	if IsFatal(err) {
		return "fatal"
	}
	if tooMany, _ := IsTooManyResultsError(err); tooMany {
		return "too_many_results"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.As(err, &netErr) {
		return "network"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return "timeout"
	case strings.Contains(msg, "429") || strings.Contains(msg, "too many requests") || strings.Contains(msg, "rate limit"):
		return "rate_limit"
	case strings.Contains(msg, "502") || strings.Contains(msg, "503") || strings.Contains(msg, "504") ||
		strings.Contains(msg, "bad gateway") || strings.Contains(msg, "service unavailable"):
		return "server"
	default:
		return "other"
	}
}
