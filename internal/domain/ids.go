package domain

import (
	"strconv"
	"strings"
)

// LegacyNodePrefix is the prefix used by seed node identifiers
const LegacyNodePrefix = "node-"

// FormatNodeID renders a counter value as a node identifier
func FormatNodeID(n int) string {
	return strconv.Itoa(n)
}

// NodeIDNumber extracts the numeric part of a "node-<n>" or "<n>" identifier.
// ok is false when the identifier has neither form or the number is not
// positive.
func NodeIDNumber(id string) (n int, ok bool) {
	digits := strings.TrimPrefix(id, LegacyNodePrefix)
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// NextIDCount returns the smallest counter value that cannot collide with any
// numbered node: max+1, or 1 when no node carries a number.
func NextIDCount(nodes []Node) int {
	max := 0
	for _, node := range nodes {
		if n, ok := NodeIDNumber(node.ID); ok && n > max {
			max = n
		}
	}
	return max + 1
}
