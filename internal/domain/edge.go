package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Edge is a directed derivation from Source to Target
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Animated bool   `json:"animated,omitempty"`
	Label    string `json:"label,omitempty"`
}

// NewEdge creates an edge with a freshly generated id
func NewEdge(source, target string) Edge {
	return Edge{
		ID:     GenerateEdgeID(),
		Source: source,
		Target: target,
	}
}

// GenerateEdgeID returns a random edge identifier
func GenerateEdgeID() string {
	return fmt.Sprintf("e-%s", uuid.NewString())
}

// Touches reports whether the edge has nodeID at either end
func (e Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// Connects reports whether the edge runs from source to target
func (e Edge) Connects(source, target string) bool {
	return e.Source == source && e.Target == target
}
