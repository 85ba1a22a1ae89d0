package types

import "fmt"

// BlockFinality selects which head a domain is indexed up to.
type BlockFinality string

const (
	// FinalityFinalized follows the finalized block tag
	FinalityFinalized BlockFinality = "finalized"

	// FinalitySafe follows the safe block tag
	FinalitySafe BlockFinality = "safe"

	// FinalityLatest follows eth_blockNumber, events may later be reorged away
	FinalityLatest BlockFinality = "latest"
)

// String returns the block tag sent to the node.
func (f BlockFinality) String() string {
	return string(f)
}

// IsValid checks if the BlockFinality value is valid.
func (f BlockFinality) IsValid() bool {
	switch f {
	case FinalityFinalized, FinalitySafe, FinalityLatest:
		return true
	default:
		return false
	}
}

// ParseBlockFinality parses a configured finality. An empty string means latest.
func ParseBlockFinality(s string) (BlockFinality, error) {
	if s == "" {
		return FinalityLatest, nil
	}
	f := BlockFinality(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid block finality: %s (must be one of: finalized, safe, latest)", s)
	}
	return f, nil
}
