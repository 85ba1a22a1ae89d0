package common

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseUint64orHex converts the given uint64 string into the number.
// It can parse the string with 0x prefix as well.
func ParseUint64orHex(val *string) (uint64, error) {
	if val == nil {
		return 0, nil
	}

	str := *val
	base := 10

	if strings.HasPrefix(str, "0x") {
		str = str[2:]
		base = 16
	}

	return strconv.ParseUint(str, base, 64)
}

// ParseDomainID parses a numeric domain identifier coming from a URL path or CLI flag.
func ParseDomainID(s string) (uint32, error) {
	str := strings.TrimSpace(s)
	v, err := ParseUint64orHex(&str)
	if err != nil {
		return 0, fmt.Errorf("invalid domain %q: %w", s, err)
	}
	if v > uint64(^uint32(0)) {
		return 0, fmt.Errorf("domain %q overflows uint32", s)
	}

	return uint32(v), nil
}

func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
