package editor

import "physmap/internal/domain"

// ChangeType names the kind of a canvas change
type ChangeType string

const (
	ChangePosition ChangeType = "position"
	ChangeRemove   ChangeType = "remove"
	ChangeReplace  ChangeType = "replace"
)

// NodeChange is a single node delta produced by the canvas
type NodeChange struct {
	Type     ChangeType       `json:"type"`
	ID       string           `json:"id"`
	Position *domain.Position `json:"position,omitempty"`
	Dragging bool             `json:"dragging,omitempty"`
}

// EdgeChange is a single edge delta produced by the canvas. Replace moves an
// edge to new endpoints while keeping its id.
type EdgeChange struct {
	Type   ChangeType `json:"type"`
	ID     string     `json:"id"`
	Source string     `json:"source,omitempty"`
	Target string     `json:"target,omitempty"`
}

// ApplyNodeChanges merges a batch of node deltas. Changes naming unknown
// nodes or of unknown type are skipped. Removing a node removes its edges.
// It returns the number of changes applied.
func (s *Store) ApplyNodeChanges(changes []NodeChange) int {
	applied := 0
	for _, c := range changes {
		node := s.graph.Node(c.ID)
		if node == nil {
			continue
		}

		switch c.Type {
		case ChangePosition:
			if c.Position == nil || *c.Position == node.Position {
				continue
			}
			node.Position = *c.Position
		case ChangeRemove:
			s.graph.RemoveNode(c.ID)
			if s.selected == c.ID {
				s.ClearSelection()
			}
		default:
			continue
		}
		applied++
	}

	if applied > 0 {
		s.touch()
	}
	return applied
}

// ApplyEdgeChanges merges a batch of edge deltas and returns the number
// applied. A replace whose endpoints are missing or equal is skipped, as is
// one that would duplicate another edge's source and target.
func (s *Store) ApplyEdgeChanges(changes []EdgeChange) int {
	applied := 0
	for _, c := range changes {
		i := s.graph.EdgeIndex(c.ID)
		if i < 0 {
			continue
		}

		switch c.Type {
		case ChangeRemove:
			s.graph.RemoveEdge(c.ID)
		case ChangeReplace:
			if c.Source == c.Target || !s.graph.HasNode(c.Source) || !s.graph.HasNode(c.Target) {
				continue
			}
			if s.pairTaken(i, c.Source, c.Target) {
				continue
			}
			s.graph.Edges[i].Source = c.Source
			s.graph.Edges[i].Target = c.Target
		default:
			continue
		}
		applied++
	}

	if applied > 0 {
		s.touch()
	}
	return applied
}

// pairTaken reports whether an edge other than the one at skip already runs
// from source to target.
func (s *Store) pairTaken(skip int, source, target string) bool {
	for j, e := range s.graph.Edges {
		if j != skip && e.Connects(source, target) {
			return true
		}
	}
	return false
}
