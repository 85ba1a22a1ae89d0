package processor

import (
	"context"
	"encoding/binary"
	"errors"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/NomadIndexer/internal/event"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/goran-ethernal/NomadIndexer/internal/message"
	"github.com/goran-ethernal/NomadIndexer/internal/metrics"
	"github.com/goran-ethernal/NomadIndexer/internal/seen"
	istore "github.com/goran-ethernal/NomadIndexer/internal/store"
	"github.com/goran-ethernal/NomadIndexer/internal/store/mocks"
	"github.com/goran-ethernal/NomadIndexer/pkg/config"
	"github.com/goran-ethernal/NomadIndexer/pkg/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	home     = uint32(1000)
	remote   = uint32(2000)
	nonce    = uint32(42)
	dispatch = uint64(77)
)

var (
	msgHash   = common.HexToHash("0xabc")
	root      = common.HexToHash("0x100")
	recipient = common.HexToHash("0xbeef")
	amount    = big.NewInt(1_000)
)

func transferMessage() []byte {
	raw := binary.BigEndian.AppendUint32(nil, home)
	raw = append(raw, common.HexToHash("0x5e").Bytes()...)
	raw = binary.BigEndian.AppendUint32(raw, nonce)
	raw = binary.BigEndian.AppendUint32(raw, remote)
	raw = append(raw, common.HexToHash("0x4e").Bytes()...)

	raw = binary.BigEndian.AppendUint32(raw, home)
	raw = append(raw, common.HexToHash("0x7777").Bytes()...)
	raw = append(raw, 3)
	raw = append(raw, recipient.Bytes()...)
	raw = append(raw, common.BigToHash(amount).Bytes()...)
	return append(raw, common.HexToHash("0xd1").Bytes()...)
}

func newEvent(t *testing.T, domain, replicaOrigin uint32, p event.Payload, block uint64, ts int64) *event.NomadEvent {
	t.Helper()

	ev, err := event.New(domain, replicaOrigin, p, block, 0, common.BigToHash(big.NewInt(ts)), 1_000, ts, event.SourceFetch)
	require.NoError(t, err)
	return ev
}

func dispatchEv(t *testing.T) *event.NomadEvent {
	return newEvent(t, home, 0, event.Dispatch{
		MessageHash:         msgHash,
		LeafIndex:           big.NewInt(3),
		DestinationAndNonce: event.Pack(remote, nonce),
		CommittedRoot:       root,
		Message:             transferMessage(),
	}, dispatch, 1_000)
}

func sendEv(t *testing.T) *event.NomadEvent {
	return newEvent(t, home, 0, event.Send{
		Token:    common.HexToAddress("0x7777"),
		From:     common.HexToAddress("0xf00"),
		ToDomain: remote,
		ToID:     recipient,
		Amount:   amount,
	}, dispatch, 1_000)
}

func homeUpdateEv(t *testing.T) *event.NomadEvent {
	return newEvent(t, home, 0, event.NewHomeUpdate(home, root, common.HexToHash("0x101"), nil), 80, 2_000)
}

func relayEv(t *testing.T) *event.NomadEvent {
	return newEvent(t, remote, home, event.NewReplicaUpdate(home, root, common.HexToHash("0x101"), nil), 500, 3_000)
}

func processEv(t *testing.T) *event.NomadEvent {
	return newEvent(t, remote, home, event.Process{MessageHash: msgHash, Success: true}, 510, 4_000)
}

func receiveEv(t *testing.T) *event.NomadEvent {
	return newEvent(t, remote, 0, event.Receive{
		OriginAndNonce: event.Pack(home, nonce),
		Token:          common.HexToAddress("0x7777"),
		Recipient:      common.BytesToAddress(recipient.Bytes()),
		Amount:         amount,
	}, 510, 4_000)
}

func newSQLProcessor(t *testing.T) (*Processor, *istore.SQLStore) {
	t.Helper()

	cfg := config.StoreConfig{DB: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "p.db")}}
	cfg.ApplyDefaults()

	s, err := istore.New(context.Background(), cfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	p, err := New(s, NewMemoryPool(0, 0), seen.New(0, 0, 0, nil), logger.NewNopLogger())
	require.NoError(t, err)
	return p, s
}

func TestProcessor_DispatchThenProcess(t *testing.T) {
	t.Parallel()

	ms := mocks.NewStore(t)
	p, err := New(ms, nil, nil, logger.NewNopLogger())
	require.NoError(t, err)

	var inserted *message.NomadMessage
	ms.EXPECT().Insert(mock.Anything, mock.Anything).
		Run(func(_ context.Context, msgs []*message.NomadMessage) { inserted = msgs[0] }).
		Return(1, nil).Once()
	ms.EXPECT().GetByHash(mock.Anything, msgHash).
		RunAndReturn(func(context.Context, common.Hash) (*message.NomadMessage, error) { return inserted, nil }).Once()
	ms.EXPECT().Update(mock.Anything, mock.MatchedBy(func(msgs []*message.NomadMessage) bool {
		return len(msgs) == 1 && msgs[0].State == message.Processed && msgs[0].Timings.ProcessedAt == 4_000
	})).Return(nil).Once()

	n, err := p.Consume(context.Background(), []*event.NomadEvent{dispatchEv(t), processEv(t)})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.True(t, *inserted.Success)
}

func TestProcessor_StageMetricsFollowCreatedRows(t *testing.T) {
	t.Parallel()

	// domains unused by other tests keep the counters of this test isolated
	const origin, destination = uint32(7001), uint32(7002)
	stageCount := func(s message.State) float64 {
		return testutil.ToFloat64(metrics.StageTransitions.WithLabelValues(s.String(), "7001", "7002"))
	}

	d := newEvent(t, origin, 0, event.Dispatch{
		MessageHash:         common.HexToHash("0x7001"),
		LeafIndex:           big.NewInt(1),
		DestinationAndNonce: event.Pack(destination, 1),
		CommittedRoot:       root,
		Message:             transferMessage(),
	}, 90, 1_000)
	update := newEvent(t, origin, 0, event.NewHomeUpdate(origin, root, common.HexToHash("0x101"), nil), 95, 2_000)

	consume := func(created int) {
		ms := mocks.NewStore(t)
		p, err := New(ms, nil, nil, logger.NewNopLogger())
		require.NoError(t, err)

		ms.EXPECT().GetByOriginAndRoot(mock.Anything, origin, root).Return(nil, nil).Once()
		ms.EXPECT().Insert(mock.Anything, mock.Anything).Return(created, nil).Once()

		n, err := p.Consume(context.Background(), []*event.NomadEvent{update, d})
		require.NoError(t, err)
		require.Equal(t, 2, n)
	}

	// the dispatch is already stored, so the fresh copy reached nothing
	consume(0)
	require.Zero(t, stageCount(message.Dispatched))
	require.Zero(t, stageCount(message.Updated))

	consume(1)
	require.Equal(t, 1.0, stageCount(message.Dispatched))
	require.Equal(t, 1.0, stageCount(message.Updated))
}

func TestProcessor_DuplicatesAreDropped(t *testing.T) {
	t.Parallel()

	ms := mocks.NewStore(t)
	p, err := New(ms, nil, nil, logger.NewNopLogger())
	require.NoError(t, err)

	ms.EXPECT().Insert(mock.Anything, mock.Anything).Return(1, nil).Once()

	d := dispatchEv(t)
	replayed := *d
	replayed.Source = event.SourceStorage

	n, err := p.Consume(context.Background(), []*event.NomadEvent{d, d, &replayed})
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestProcessor_InOrderLifecycle(t *testing.T) {
	t.Parallel()

	p, s := newSQLProcessor(t)
	ctx := context.Background()

	events := []*event.NomadEvent{dispatchEv(t), sendEv(t), homeUpdateEv(t), relayEv(t), processEv(t), receiveEv(t)}
	event.Sort(events)

	_, err := p.Consume(ctx, events)
	require.NoError(t, err)

	m, err := s.GetByHash(ctx, msgHash)
	require.NoError(t, err)
	require.Equal(t, message.Processed, m.State)
	require.Equal(t, message.Checkbox{Sent: true, Updated: true, Relayed: true, Received: true, Processed: true}, m.Checkbox)
	require.Equal(t, common.HexToAddress("0xf00"), *m.Sender)
	require.Equal(t, message.Timings{
		DispatchedAt: 1_000, UpdatedAt: 2_000, RelayedAt: 3_000, ReceivedAt: 4_000, ProcessedAt: 4_000,
	}, m.Timings)
}

func TestProcessor_OutOfOrderEventsArePooled(t *testing.T) {
	t.Parallel()

	p, s := newSQLProcessor(t)
	ctx := context.Background()

	early := []*event.NomadEvent{processEv(t), receiveEv(t), relayEv(t), homeUpdateEv(t), sendEv(t)}
	_, err := p.Consume(ctx, early)
	require.NoError(t, err)

	_, err = s.GetByHash(ctx, msgHash)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = p.Consume(ctx, []*event.NomadEvent{dispatchEv(t)})
	require.NoError(t, err)

	m, err := s.GetByHash(ctx, msgHash)
	require.NoError(t, err)
	require.Equal(t, message.Processed, m.State)
	require.True(t, m.Checkbox.Sent)
	require.True(t, m.Checkbox.Updated)
	require.True(t, m.Checkbox.Relayed)
	require.True(t, m.Checkbox.Received)
	require.NotNil(t, m.Success)
}

func TestProcessor_StateNeverRegresses(t *testing.T) {
	t.Parallel()

	p, s := newSQLProcessor(t)
	ctx := context.Background()

	_, err := p.Consume(ctx, []*event.NomadEvent{dispatchEv(t), processEv(t)})
	require.NoError(t, err)

	late := homeUpdateEv(t)
	late.TS = 9_000
	_, err = p.Consume(ctx, []*event.NomadEvent{late, receiveEv(t)})
	require.NoError(t, err)

	m, err := s.GetByHash(ctx, msgHash)
	require.NoError(t, err)
	require.Equal(t, message.Processed, m.State)
	require.True(t, m.Checkbox.Updated)
	require.LessOrEqual(t, m.Timings.UpdatedAt, m.Timings.ProcessedAt)
}

func TestProcessor_StoreErrorStopsConsume(t *testing.T) {
	t.Parallel()

	ms := mocks.NewStore(t)
	p, err := New(ms, nil, nil, logger.NewNopLogger())
	require.NoError(t, err)

	dbErr := errors.New("database is locked")
	ms.EXPECT().Insert(mock.Anything, mock.Anything).Return(0, dbErr).Once()
	ms.EXPECT().Insert(mock.Anything, mock.Anything).Return(1, nil).Once()

	events := []*event.NomadEvent{dispatchEv(t), processEv(t)}
	n, err := p.Consume(context.Background(), events)
	require.ErrorIs(t, err, dbErr)
	require.Zero(t, n)

	// the failed dispatch is not remembered as seen
	ms.EXPECT().GetByHash(mock.Anything, msgHash).Return(nil, store.ErrNotFound).Once()
	n, err = p.Consume(context.Background(), events)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestProcessor_UpdateAppliesToEveryMessageOfRoot(t *testing.T) {
	t.Parallel()

	ms := mocks.NewStore(t)
	p, err := New(ms, nil, nil, logger.NewNopLogger())
	require.NoError(t, err)

	a := &message.NomadMessage{Origin: home, Root: root, MessageHash: common.HexToHash("0x1")}
	b := &message.NomadMessage{Origin: home, Root: root, MessageHash: common.HexToHash("0x2")}
	done := &message.NomadMessage{Origin: home, Root: root, MessageHash: common.HexToHash("0x3"),
		State: message.Updated, Checkbox: message.Checkbox{Updated: true}}

	ms.EXPECT().GetByOriginAndRoot(mock.Anything, home, root).
		Return([]*message.NomadMessage{a, b, done}, nil).Once()
	ms.EXPECT().Update(mock.Anything, []*message.NomadMessage{a, b}).Return(nil).Once()

	_, err = p.Consume(context.Background(), []*event.NomadEvent{homeUpdateEv(t)})
	require.NoError(t, err)
	require.Equal(t, message.Updated, a.State)
	require.Equal(t, int64(2_000), b.Timings.UpdatedAt)
}
