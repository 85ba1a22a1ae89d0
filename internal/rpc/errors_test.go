package rpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/goran-ethernal/NomadIndexer/internal/retry"
	"github.com/stretchr/testify/require"
)

type mockDataError struct {
	data any
	msg  string
}

func (m *mockDataError) Error() string  { return m.msg }
func (m *mockDataError) ErrorData() any { return m.data }

type mockCodeError struct {
	code int
	msg  string
}

func (m *mockCodeError) Error() string  { return m.msg }
func (m *mockCodeError) ErrorCode() int { return m.code }

const tooManyMsg = "Query returned more than 10000 results. Try with this block range [0x10, 0x20]."

func TestIsTooManyResultsError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantMatch bool
		wantData  string
	}{
		{"nil error", nil, false, ""},
		{"plain error", errors.New("boom"), false, ""},
		{"data error with other message", &mockDataError{data: "nope", msg: "nope"}, false, "nope"},
		{"too many results", &mockDataError{data: tooManyMsg, msg: "x"}, true, tooManyMsg},
		{"wrapped too many results", fmt.Errorf("page: %w", &mockDataError{data: tooManyMsg}), true, tooManyMsg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotMatch, gotData := IsTooManyResultsError(tt.err)
			require.Equal(t, tt.wantMatch, gotMatch)
			require.Equal(t, tt.wantData, gotData)
		})
	}
}

func TestParseSuggestedBlockRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		errMsg   string
		wantFrom uint64
		wantTo   uint64
		wantOK   bool
	}{
		{"empty", "", 0, 0, false},
		{"no range", "Query returned more than 20000 results.", 0, 0, false},
		{"valid range", "Try with this block range [0x7dfd25, 0x7e0fcc].", 8256805, 8261580, true},
		{"mixed case and spaces", "range [0x1aBc,   0x2DEF]", 6844, 11759, true},
		{"bad hex", "range [0xZZZZ, 0x1234]", 0, 0, false},
		{"first range wins", "[0x10, 0x20] and [0x30, 0x40]", 16, 32, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			from, to, ok := ParseSuggestedBlockRange(tt.errMsg)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantFrom, from)
			require.Equal(t, tt.wantTo, to)
		})
	}
}

func TestIsFatal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"insufficient funds", errors.New("insufficient funds for gas * price + value"), true},
		{"invalid argument", errors.New("invalid argument 0: hex string without 0x prefix"), true},
		{"invalid params code", &mockCodeError{code: -32602, msg: "bad"}, true},
		{"other code", &mockCodeError{code: -32000, msg: "header not found"}, false},
		{"wrapped with retry.Fatal", retry.Fatal(errors.New("x")), true},
		{"timeout", errors.New("i/o timeout"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, IsFatal(tt.err))
		})
	}
}

func TestErrorClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("insufficient funds"), "fatal"},
		{&mockDataError{data: tooManyMsg, msg: "x"}, "too_many_results"},
		{context.Canceled, "canceled"},
		{errors.New("context deadline exceeded"), "timeout"},
		{errors.New("429 Too Many Requests"), "rate_limit"},
		{errors.New("503 Service Unavailable"), "server"},
		{errors.New("weird"), "other"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ErrorClass(tt.err), "%v", tt.err)
	}

	require.True(t, stopRetrying(&mockDataError{data: tooManyMsg, msg: "x"}))
	require.False(t, stopRetrying(errors.New("weird")))
}
