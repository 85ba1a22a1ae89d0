package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUint64orHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   *string
		want    uint64
		wantErr bool
	}{
		{name: "nil input", input: nil, want: 0},
		{name: "decimal", input: strPtr("6648936"), want: 6648936},
		{name: "hex", input: strPtr("0x657468"), want: 0x657468},
		{name: "invalid decimal", input: strPtr("12abc"), wantErr: true},
		{name: "invalid hex", input: strPtr("0xZZ"), wantErr: true},
		{name: "empty", input: strPtr(""), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseUint64orHex(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseDomainID(t *testing.T) {
	t.Parallel()

	id, err := ParseDomainID(" 1650811245 ")
	require.NoError(t, err)
	require.Equal(t, uint32(1650811245), id)

	id, err = ParseDomainID("0x657468")
	require.NoError(t, err)
	require.Equal(t, uint32(0x657468), id)

	_, err = ParseDomainID("4294967296")
	require.ErrorContains(t, err, "overflows")

	_, err = ParseDomainID("ethereum")
	require.Error(t, err)
}

func strPtr(s string) *string {
	return &s
}
