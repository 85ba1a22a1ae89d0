package poller

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitRange(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		from, to uint64
		pageSize uint64
		want     []Range
	}{
		{
			name: "even pages",
			from: 100, to: 250, pageSize: 50,
			want: []Range{{100, 150}, {150, 200}, {200, 250}},
		},
		{
			name: "last page shorter",
			from: 0, to: 120, pageSize: 50,
			want: []Range{{0, 50}, {50, 100}, {100, 120}},
		},
		{
			name: "not paginated",
			from: 10, to: 1_000_000, pageSize: 0,
			want: []Range{{10, 1_000_000}},
		},
		{
			name: "fits in one page",
			from: 10, to: 40, pageSize: 50,
			want: []Range{{10, 40}},
		},
		{
			name: "single block",
			from: 7, to: 7, pageSize: 50,
			want: []Range{{7, 7}},
		},
		{
			name: "empty",
			from: 8, to: 7, pageSize: 50,
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, SplitRange(tc.from, tc.to, tc.pageSize))
		})
	}
}

func TestSplitRangeCoversEveryBlock(t *testing.T) {
	t.Parallel()

	for _, pageSize := range []uint64{1, 3, 7, 50} {
		ranges := SplitRange(13, 200, pageSize)
		require.Equal(t, uint64(13), ranges[0].From)
		require.Equal(t, uint64(200), ranges[len(ranges)-1].To)
		for i := 1; i < len(ranges); i++ {
			require.Equal(t, ranges[i-1].To, ranges[i].From, "pages must be contiguous")
			require.LessOrEqual(t, ranges[i].To-ranges[i].From, pageSize)
		}
	}
}
