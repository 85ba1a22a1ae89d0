package event

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLog encodes a log the way the contract would emit it.
func buildLog(t *testing.T, d *Decoder, et EventType, indexed []any, data ...any) types.Log {
	t.Helper()

	ev, err := d.event(et)
	require.NoError(t, err)

	topics := []common.Hash{ev.ID}
	for _, v := range indexed {
		tt, err := abi.MakeTopics([]any{v})
		require.NoError(t, err)
		topics = append(topics, tt[0][0])
	}

	packed, err := ev.Inputs.NonIndexed().Pack(data...)
	require.NoError(t, err)

	return types.Log{Topics: topics, Data: packed, TxHash: common.HexToHash("0x1"), Index: 2}
}

func TestDecoder(t *testing.T) {
	t.Parallel()

	d := MustNewDecoder()

	t.Run("dispatch", func(t *testing.T) {
		t.Parallel()

		log := buildLog(t, d, HomeDispatch,
			[]any{common.HexToHash("0xaa"), big.NewInt(11), Pack(5, 42)},
			[32]byte(common.HexToHash("0xbb")), []byte("hello"))

		p, err := d.Decode(HomeDispatch, log)
		require.NoError(t, err)

		dispatch, ok := p.(Dispatch)
		require.True(t, ok)
		assert.Equal(t, common.HexToHash("0xaa"), dispatch.MessageHash)
		assert.Equal(t, int64(11), dispatch.LeafIndex.Int64())
		assert.Equal(t, Pack(5, 42), dispatch.DestinationAndNonce)
		assert.Equal(t, common.HexToHash("0xbb"), dispatch.CommittedRoot)
		assert.Equal(t, []byte("hello"), []byte(dispatch.Message))
	})

	t.Run("replica update keeps its type", func(t *testing.T) {
		t.Parallel()

		log := buildLog(t, d, ReplicaUpdate,
			[]any{uint32(6648936), common.HexToHash("0x01"), common.HexToHash("0x02")},
			[]byte{1, 2})

		p, err := d.Decode(ReplicaUpdate, log)
		require.NoError(t, err)
		assert.Equal(t, ReplicaUpdate, p.EventType())

		u := p.(Update)
		assert.Equal(t, uint32(6648936), u.HomeDomain)
		assert.Equal(t, common.HexToHash("0x01"), u.OldRoot)
		assert.Equal(t, common.HexToHash("0x02"), u.NewRoot)
	})

	t.Run("process has only topics", func(t *testing.T) {
		t.Parallel()

		log := buildLog(t, d, ReplicaProcess, []any{common.HexToHash("0xcc"), true, []byte("ret")})

		p, err := d.Decode(ReplicaProcess, log)
		require.NoError(t, err)

		pr := p.(Process)
		assert.Equal(t, common.HexToHash("0xcc"), pr.MessageHash)
		assert.True(t, pr.Success)
		assert.Equal(t, crypto.Keccak256([]byte("ret")), []byte(pr.ReturnData))
	})

	t.Run("send", func(t *testing.T) {
		t.Parallel()

		log := buildLog(t, d, BridgeSend,
			[]any{common.HexToAddress("0x10"), common.HexToAddress("0x20"), uint32(2)},
			[32]byte(common.HexToHash("0x30")), big.NewInt(1000), true)

		p, err := d.Decode(BridgeSend, log)
		require.NoError(t, err)

		s := p.(Send)
		assert.Equal(t, common.HexToAddress("0x10"), s.Token)
		assert.Equal(t, common.HexToAddress("0x20"), s.From)
		assert.Equal(t, uint32(2), s.ToDomain)
		assert.Equal(t, int64(1000), s.Amount.Int64())
		assert.True(t, s.FastLiquidityEnabled)
	})

	t.Run("receive without liquidity provider", func(t *testing.T) {
		t.Parallel()

		log := buildLog(t, d, BridgeReceive,
			[]any{Pack(1, 3), common.HexToAddress("0x10"), common.HexToAddress("0x20")},
			common.Address{}, big.NewInt(7))

		p, err := d.Decode(BridgeReceive, log)
		require.NoError(t, err)

		r := p.(Receive)
		assert.Nil(t, r.LiquidityProvider)
		assert.Equal(t, Pack(1, 3), r.OriginAndNonce)
	})

	t.Run("wrong topic", func(t *testing.T) {
		t.Parallel()

		log := buildLog(t, d, BridgeSend,
			[]any{common.HexToAddress("0x10"), common.HexToAddress("0x20"), uint32(2)},
			[32]byte{}, big.NewInt(1), false)

		_, err := d.Decode(HomeDispatch, log)
		require.ErrorIs(t, err, ErrUnexpectedLog)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := d.Topic("nope")
		require.ErrorIs(t, err, ErrUnknownEventType)
	})
}
