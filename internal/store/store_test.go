package store

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/NomadIndexer/internal/event"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/goran-ethernal/NomadIndexer/internal/message"
	"github.com/goran-ethernal/NomadIndexer/pkg/config"
	"github.com/goran-ethernal/NomadIndexer/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLStore {
	t.Helper()

	cfg := config.StoreConfig{
		Driver: config.StoreDriverSQLite,
		DB:     config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "store.db")},
	}
	cfg.ApplyDefaults()

	s, err := New(context.Background(), cfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func testMessage(origin, destination, nonce uint32, block uint64) *message.NomadMessage {
	hash := common.BigToHash(big.NewInt(int64(origin)<<32 | int64(nonce)))
	return &message.NomadMessage{
		Origin:            origin,
		Destination:       destination,
		Nonce:             nonce,
		Root:              common.HexToHash("0x100"),
		MessageHash:       hash,
		LeafIndex:         big.NewInt(int64(nonce)),
		Body:              []byte{0x01, 0x02},
		DispatchBlock:     block,
		InternalSender:    common.HexToHash("0x5e"),
		InternalRecipient: common.HexToHash("0x4e"),
		State:             message.Dispatched,
		Timings:           message.Timings{DispatchedAt: 1_000},
		GasUsed:           message.GasUsed{Dispatch: 21_000},
	}
}

func withTransfer(m *message.NomadMessage, recipient common.Hash, amount int64) *message.NomadMessage {
	m.Transfer = &message.Transfer{
		TokenDomain: 6648936,
		TokenID:     common.HexToHash("0x7777"),
		Recipient:   recipient,
		Amount:      big.NewInt(amount),
		AllowFast:   true,
		DetailsHash: common.HexToHash("0xd1"),
	}
	return m
}

func TestSQLStore_InsertIsIdempotent(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	m := withTransfer(testMessage(1, 2, 42, 77), common.HexToHash("0xbeef"), 1000)
	n, err := s.Insert(ctx, []*message.NomadMessage{m})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	changed := *m
	changed.Nonce = 99
	n, err = s.Insert(ctx, []*message.NomadMessage{&changed, testMessage(1, 2, 43, 78)})
	require.NoError(t, err)
	require.Equal(t, 1, n, "only the new message is created")

	got, err := s.GetByHash(ctx, m.MessageHash)
	require.NoError(t, err)
	require.Equal(t, uint32(42), got.Nonce, "existing row must not be replaced")
	require.Equal(t, m.Body, got.Body)
	require.Equal(t, *m.Transfer, *got.Transfer)

	n, err = s.Count(ctx, store.MessageFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestSQLStore_GetByHashNotFound(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)

	_, err := s.GetByHash(context.Background(), common.HexToHash("0xdead"))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLStore_Update(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	msgs := make([]*message.NomadMessage, 0, 25)
	for i := range 25 {
		msgs = append(msgs, testMessage(1, 2, uint32(i), uint64(100+i)))
	}
	_, err := s.Insert(ctx, msgs)
	require.NoError(t, err)

	success := true
	sender := common.HexToAddress("0xaaaa")
	tx := common.HexToHash("0xf00d")
	for _, m := range msgs {
		m.State = message.Processed
		m.Timings.ProcessedAt = 5_000
		m.GasUsed.Process = 90_000
		m.Checkbox.Processed = true
		m.Success = &success
		m.ReturnData = []byte{0xca, 0xfe}
		m.Sender = &sender
		m.Tx = &tx
	}
	require.NoError(t, s.Update(ctx, msgs))

	got, err := s.GetByHash(ctx, msgs[7].MessageHash)
	require.NoError(t, err)
	assert.Equal(t, message.Processed, got.State)
	assert.Equal(t, int64(5_000), got.Timings.ProcessedAt)
	assert.Equal(t, uint64(90_000), got.GasUsed.Process)
	assert.True(t, got.Checkbox.Processed)
	require.NotNil(t, got.Success)
	assert.True(t, *got.Success)
	assert.Equal(t, []byte{0xca, 0xfe}, got.ReturnData)
	assert.Equal(t, sender, *got.Sender)

	byTx, err := s.GetByTx(ctx, tx)
	require.NoError(t, err)
	require.Len(t, byTx, 25)
}

func TestSQLStore_UpdateContextCanceled(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Update(ctx, []*message.NomadMessage{testMessage(1, 2, 1, 1)})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSQLStore_GetMany(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	var msgs []*message.NomadMessage
	for i := range 20 {
		msgs = append(msgs, testMessage(1, 2, uint32(i), uint64(i)))
	}
	for i := range 5 {
		m := testMessage(3, 1, uint32(i), uint64(100+i))
		m.State = message.Relayed
		msgs = append(msgs, m)
	}
	_, err := s.Insert(ctx, msgs)
	require.NoError(t, err)

	origin1, origin3 := uint32(1), uint32(3)
	relayed := message.Relayed

	testCases := []struct {
		name      string
		filter    store.MessageFilter
		wantLen   int
		wantFirst uint64
		wantCount int
	}{
		{name: "default page", filter: store.MessageFilter{}, wantLen: store.DefaultPageSize, wantFirst: 104, wantCount: 25},
		{name: "second page", filter: store.MessageFilter{Page: 2}, wantLen: 10, wantFirst: 9, wantCount: 25},
		{name: "origin", filter: store.MessageFilter{Origin: &origin1, Size: 50}, wantLen: 20, wantFirst: 19, wantCount: 20},
		{name: "state", filter: store.MessageFilter{State: &relayed}, wantLen: 5, wantFirst: 104, wantCount: 5},
		{name: "origin and state", filter: store.MessageFilter{Origin: &origin3, State: &relayed, Size: 2}, wantLen: 2, wantFirst: 104, wantCount: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.GetMany(ctx, tc.filter)
			require.NoError(t, err)
			require.Len(t, got, tc.wantLen)
			require.Equal(t, tc.wantFirst, got[0].DispatchBlock)

			n, err := s.Count(ctx, tc.filter)
			require.NoError(t, err)
			require.Equal(t, tc.wantCount, n)
		})
	}
}

func TestSQLStore_Lookups(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	recipient := common.HexToHash("0xbeef")
	a := withTransfer(testMessage(1, 2, 1, 50), recipient, 1000)
	b := testMessage(1, 2, 2, 51)
	c := testMessage(2, 1, 1, 52)
	c.Root = common.HexToHash("0x200")
	c.State = message.Updated
	_, err := s.Insert(ctx, []*message.NomadMessage{a, b, c})
	require.NoError(t, err)

	byRoot, err := s.GetByOriginAndRoot(ctx, 1, common.HexToHash("0x100"))
	require.NoError(t, err)
	require.Len(t, byRoot, 2)

	byNonce, err := s.GetByOriginAndNonce(ctx, 2, 1)
	require.NoError(t, err)
	require.Equal(t, c.MessageHash, byNonce.MessageHash)

	_, err = s.GetByOriginAndNonce(ctx, 2, 9)
	require.ErrorIs(t, err, store.ErrNotFound)

	bySend, err := s.GetBySendValues(ctx, 2, recipient, big.NewInt(1000), 50)
	require.NoError(t, err)
	require.Equal(t, a.MessageHash, bySend.MessageHash)

	_, err = s.GetBySendValues(ctx, 2, recipient, big.NewInt(1001), 50)
	require.ErrorIs(t, err, store.ErrNotFound)

	counts, err := s.CountByState(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, counts[message.Dispatched])
	require.Equal(t, 0, counts[message.Processed])
	require.Len(t, counts, len(message.AllStates))
}

func TestSQLStore_Events(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	dispatch, err := event.New(1, 0, event.Dispatch{
		MessageHash:         common.HexToHash("0xabc"),
		LeafIndex:           big.NewInt(1),
		DestinationAndNonce: event.Pack(2, 1),
		CommittedRoot:       common.HexToHash("0x100"),
		Message:             []byte{0x01},
	}, 10, 0, common.HexToHash("0xf0"), 100, 2_000, event.SourceFetch)
	require.NoError(t, err)

	update, err := event.New(1, 0, event.NewHomeUpdate(1, common.HexToHash("0x100"), common.HexToHash("0x101"), nil),
		9, 3, common.HexToHash("0xf1"), 100, 1_000, event.SourceFetch)
	require.NoError(t, err)

	other, err := event.New(2, 1, event.Process{MessageHash: common.HexToHash("0xabc"), Success: true},
		5, 0, common.HexToHash("0xf2"), 100, 500, event.SourceFetch)
	require.NoError(t, err)

	require.NoError(t, s.StoreEvents(ctx, []*event.NomadEvent{dispatch, update, other}))
	require.NoError(t, s.StoreEvents(ctx, []*event.NomadEvent{dispatch}))

	got, err := s.AllEvents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, event.HomeUpdate, got[0].EventType)
	require.Equal(t, event.HomeDispatch, got[1].EventType)
	for _, ev := range got {
		require.Equal(t, event.SourceStorage, ev.Source)
	}
	require.Equal(t, dispatch.UniqueHash(), got[1].UniqueHash())
}

func TestSQLStore_KeyPairs(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	_, found, err := s.GetKeyPair(ctx, "poller", "1:homeDispatch")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.SetKeyPair(ctx, "poller", "1:homeDispatch", "100"))
	require.NoError(t, s.SetKeyPair(ctx, "poller", "1:homeDispatch", "250"))
	require.NoError(t, s.SetKeyPair(ctx, "other", "1:homeDispatch", "7"))

	v, found, err := s.GetKeyPair(ctx, "poller", "1:homeDispatch")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "250", v)

	all, err := s.GetAllKeyPairs(ctx, "poller")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"1:homeDispatch": "250"}, all)
}

func TestKVCache(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetKeyPair(ctx, "poller", "1:homeUpdate", "10"))

	c, err := NewKVCache(ctx, s, "poller")
	require.NoError(t, err)

	v, ok, err := c.GetUint64("1:homeUpdate")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(10), v)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, c.SetUint64(ctx, "1:homeDispatch", uint64(i)))
		}(i)
	}
	wg.Wait()

	cached, ok := c.Get("1:homeDispatch")
	require.True(t, ok)
	stored, _, err := s.GetKeyPair(ctx, "poller", "1:homeDispatch")
	require.NoError(t, err)
	require.Equal(t, stored, cached)

	require.NoError(t, s.SetKeyPair(ctx, "poller", "bad", "x"))
	c, err = NewKVCache(ctx, s, "poller")
	require.NoError(t, err)
	_, _, err = c.GetUint64("bad")
	require.Error(t, err)
	require.Len(t, c.All(), 3)
}

func TestSQLStore_Postgres(t *testing.T) {
	dsn := os.Getenv("NOMAD_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("NOMAD_TEST_POSTGRES_DSN not set")
	}

	cfg := config.StoreConfig{Driver: config.StoreDriverPostgres, DSN: dsn}
	cfg.ApplyDefaults()

	ctx := context.Background()
	s, err := New(ctx, cfg, logger.NewNopLogger())
	require.NoError(t, err)
	defer s.Close()

	m := withTransfer(testMessage(1_000_001, 2, 42, 77), common.HexToHash("0xbeef"), 1000)
	_, err = s.Insert(ctx, []*message.NomadMessage{m})
	require.NoError(t, err)

	m.State = message.Updated
	m.Timings.UpdatedAt = 2_000
	require.NoError(t, s.Update(ctx, []*message.NomadMessage{m}))

	got, err := s.GetByOriginAndNonce(ctx, 1_000_001, 42)
	require.NoError(t, err)
	require.Equal(t, message.Updated, got.State)

	require.NoError(t, s.SetKeyPair(ctx, "test", "k", "v1"))
	require.NoError(t, s.SetKeyPair(ctx, "test", "k", "v2"))
	v, found, err := s.GetKeyPair(ctx, "test", "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v2", v)
}
