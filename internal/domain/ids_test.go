package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeIDNumber(t *testing.T) {
	tests := []struct {
		id   string
		want int
		ok   bool
	}{
		{"node-1", 1, true},
		{"node-42", 42, true},
		{"7", 7, true},
		{"node-0", 0, false},
		{"0", 0, false},
		{"node-", 0, false},
		{"node-x", 0, false},
		{"node-1a", 0, false},
		{"edge-3", 0, false},
		{"", 0, false},
		{"-3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, ok := NodeIDNumber(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestNextIDCount(t *testing.T) {
	nodes := func(ids ...string) []Node {
		out := make([]Node, 0, len(ids))
		for _, id := range ids {
			out = append(out, Node{ID: id})
		}
		return out
	}

	t.Run("max plus one for legacy ids", func(t *testing.T) {
		assert.Equal(t, 8, NextIDCount(nodes("node-1", "node-7", "node-3")))
	})

	t.Run("bare ids count too", func(t *testing.T) {
		assert.Equal(t, 6, NextIDCount(nodes("node-1", "5")))
	})

	t.Run("no numbered nodes yields one", func(t *testing.T) {
		assert.Equal(t, 1, NextIDCount(nodes("alpha", "beta")))
	})

	t.Run("empty graph yields one", func(t *testing.T) {
		assert.Equal(t, 1, NextIDCount(nil))
	})

	t.Run("zero maximum yields one", func(t *testing.T) {
		assert.Equal(t, 1, NextIDCount(nodes("node-0")))
	})
}

func TestFormatNodeID(t *testing.T) {
	assert.Equal(t, "3", FormatNodeID(3))
}
