package identity

import (
	"fmt"
	"strconv"
	"strings"
)

// HexPrefix is the prefix the override document puts in front of skill ids.
const HexPrefix = "0x"

// CompositeSeparator splits "<factionId>;<rank>" reputation requirements.
const CompositeSeparator = ";"

// ParseDecimal parses a plain decimal id as found in the lore documents.
func ParseDecimal(s string) (uint32, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// ParseHex parses a base-16 id. The 0x prefix is optional.
func ParseHex(s string) (uint32, error) {
	raw := strings.TrimSpace(s)
	trimmed := strings.TrimPrefix(strings.TrimPrefix(raw, HexPrefix), "0X")
	if trimmed == "" {
		return 0, fmt.Errorf("invalid hex id %q", s)
	}
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex id %q: %w", s, err)
	}
	return uint32(v), nil
}

// SplitComposite splits "<factionId>;<rank>". Index 0 is the faction, index 1 the
// rank. Input without the separator, or with a part that is not a number, yields
// faction 0, which callers treat as "no faction".
func SplitComposite(s string) (factionID uint32, rank int) {
	parts := strings.Split(s, CompositeSeparator)
	if len(parts) != 2 {
		return 0, 0
	}
	id, ok := ParseDecimal(parts[0])
	if !ok {
		return 0, 0
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || r < 0 {
		return 0, 0
	}
	return id, r
}
