package processor

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/NomadIndexer/internal/event"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func poolBackends(t *testing.T) map[string]func(t *testing.T) EventPool {
	t.Helper()

	backends := map[string]func(t *testing.T) EventPool{
		"memory": func(*testing.T) EventPool { return NewMemoryPool(0, 0) },
	}

	if url := os.Getenv("NOMAD_TEST_REDIS_URL"); url != "" {
		backends["redis"] = func(t *testing.T) EventPool {
			p, err := NewRedisPool(context.Background(), url, "test-"+uuid.NewString(), time.Minute)
			require.NoError(t, err)
			t.Cleanup(func() { p.Close() })
			return p
		}
	}

	return backends
}

func TestEventPool(t *testing.T) {
	t.Parallel()

	for name, newPool := range poolBackends(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			p := newPool(t)

			t.Run("single events", func(t *testing.T) {
				for _, ev := range []*event.NomadEvent{sendEv(t), receiveEv(t), processEv(t)} {
					require.NoError(t, p.Store(ctx, ev))
				}

				got, err := p.Send(ctx, remote, recipient, amount, dispatch)
				require.NoError(t, err)
				require.NotNil(t, got)
				require.Equal(t, event.BridgeSend, got.EventType)

				got, err = p.Send(ctx, remote, recipient, amount, dispatch+1)
				require.NoError(t, err)
				require.Nil(t, got)

				got, err = p.Receive(ctx, home, nonce)
				require.NoError(t, err)
				require.NotNil(t, got)

				got, err = p.Process(ctx, msgHash)
				require.NoError(t, err)
				require.NotNil(t, got)
				require.True(t, got.Data.(event.Process).Success)
			})

			t.Run("root lists keep distinct events once", func(t *testing.T) {
				first := homeUpdateEv(t)
				again := *first
				again.Source = event.SourceStorage
				other := newEvent(t, home, 0, event.NewHomeUpdate(home, root, common.HexToHash("0x102"), nil), 81, 2_500)

				for _, ev := range []*event.NomadEvent{first, &again, other} {
					require.NoError(t, p.Store(ctx, ev))
				}

				got, err := p.Updates(ctx, home, root)
				require.NoError(t, err)
				require.Len(t, got, 2)

				relays, err := p.Relays(ctx, home, root)
				require.NoError(t, err)
				require.Empty(t, relays)

				require.NoError(t, p.Store(ctx, relayEv(t)))
				relays, err = p.Relays(ctx, home, root)
				require.NoError(t, err)
				require.Len(t, relays, 1)
				require.Equal(t, uint32(home), relays[0].ReplicaOrigin)
			})

			t.Run("dispatch is not pooled", func(t *testing.T) {
				require.NoError(t, p.Store(ctx, dispatchEv(t)))
				got, err := p.Process(ctx, common.HexToHash("0xdead"))
				require.NoError(t, err)
				require.Nil(t, got)
			})
		})
	}
}

func TestMemoryPool_Retention(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	p := NewMemoryPool(time.Hour, 0)
	p.nowFn = func() time.Time { return now }

	require.NoError(t, p.Store(ctx, homeUpdateEv(t)))
	require.NoError(t, p.Store(ctx, processEv(t)))

	now = now.Add(59 * time.Minute)
	got, err := p.Updates(ctx, home, root)
	require.NoError(t, err)
	require.Len(t, got, 1)

	now = now.Add(2 * time.Minute)
	got, err = p.Updates(ctx, home, root)
	require.NoError(t, err)
	require.Empty(t, got, "expired keys are not served")

	// storing sweeps the expired keys of the kind
	require.NoError(t, p.Store(ctx, relayEv(t)))
	require.NoError(t, p.Store(ctx, newEvent(t, home, 0, event.NewHomeUpdate(home, common.HexToHash("0x200"),
		common.HexToHash("0x201"), nil), 90, 5_000)))
	require.Equal(t, 3, p.Len())

	processed, err := p.Process(ctx, msgHash)
	require.NoError(t, err)
	require.Nil(t, processed)
}

func TestMemoryPool_MaxEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := NewMemoryPool(time.Hour, 2)

	hashes := []common.Hash{common.HexToHash("0x1"), common.HexToHash("0x2"), common.HexToHash("0x3")}
	for i, h := range hashes {
		ev := newEvent(t, remote, home, event.Process{MessageHash: h, Success: true}, uint64(600+i), 4_000)
		require.NoError(t, p.Store(ctx, ev))
	}
	require.Equal(t, 2, p.Len())

	oldest, err := p.Process(ctx, hashes[0])
	require.NoError(t, err)
	require.Nil(t, oldest, "the least recently stored key is evicted")

	for _, h := range hashes[1:] {
		got, err := p.Process(ctx, h)
		require.NoError(t, err)
		require.NotNil(t, got)
	}
}
