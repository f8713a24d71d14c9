package editor

import (
	"errors"
	"fmt"

	"physmap/internal/domain"
)

// Node extents used to centre a new node under the requested point
const (
	NodeHalfWidth  = domain.NodeWidth / 2
	NodeHalfHeight = 50
)

var (
	ErrNoSelection  = errors.New("no node selected")
	ErrInvalidField = errors.New("invalid form field")
)

// Store is the authoritative editor state
type Store struct {
	graph    *domain.Graph
	selected string
	editing  bool
	form     domain.NodeData
	revision uint64
}

// New creates a store that takes ownership of g. A nil graph starts empty.
func New(g *domain.Graph) *Store {
	if g == nil {
		g = domain.NewGraph()
	}
	g.Normalize()
	if g.IDCount < 1 {
		g.IDCount = 1
	}
	return &Store{graph: g}
}

// Snapshot is a read-only copy of the store state
type Snapshot struct {
	Graph      *domain.Graph
	SelectedID string
	Editing    bool
	Form       domain.NodeData
	Revision   uint64
}

// Selected returns the selected node from the snapshot graph, or nil
func (s Snapshot) Selected() *domain.Node {
	if s.SelectedID == "" {
		return nil
	}
	return s.Graph.Node(s.SelectedID)
}

// Snapshot copies the current state
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Graph:      s.graph.Clone(),
		SelectedID: s.selected,
		Editing:    s.editing,
		Form:       s.form,
		Revision:   s.revision,
	}
}

// Graph returns a copy of the current graph
func (s *Store) Graph() *domain.Graph {
	return s.graph.Clone()
}

// Revision increases every time nodes, edges, or the id counter change
func (s *Store) Revision() uint64 {
	return s.revision
}

// Selection returns the selected node id
func (s *Store) Selection() (string, bool) {
	return s.selected, s.selected != ""
}

// Editing reports whether the store is in edit mode
func (s *Store) Editing() bool {
	return s.editing
}

// Form returns the form buffer
func (s *Store) Form() domain.NodeData {
	return s.form
}

func (s *Store) touch() {
	s.revision++
}

// AddNode creates a default node centred on center, selects it, and enters
// edit mode. The returned id is never already present in the graph.
func (s *Store) AddNode(center domain.Position) string {
	for s.graph.HasNode(domain.FormatNodeID(s.graph.IDCount)) {
		s.graph.IDCount++
	}
	id := domain.FormatNodeID(s.graph.IDCount)

	node := domain.NewNode(id, center.Offset(-NodeHalfWidth, -NodeHalfHeight), domain.DefaultNodeData())
	s.graph.Nodes = append(s.graph.Nodes, node)
	s.graph.IDCount++
	s.touch()

	s.selected = id
	s.form = node.Data
	s.editing = true
	return id
}

// SelectNode selects id, loads its data into the form buffer, and switches to
// view mode
func (s *Store) SelectNode(id string) error {
	node := s.graph.Node(id)
	if node == nil {
		return fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}
	s.selected = id
	s.form = node.Data
	s.editing = false
	return nil
}

// ClearSelection unsets the selection and leaves edit mode
func (s *Store) ClearSelection() {
	s.selected = ""
	s.editing = false
}

// BeginEdit enters edit mode on the selected node with a fresh form buffer
func (s *Store) BeginEdit() error {
	node := s.selectedNode()
	if node == nil {
		return ErrNoSelection
	}
	s.form = node.Data
	s.editing = true
	return nil
}

// DeleteSelected removes the selected node and every edge touching it, then
// clears the selection. It reports whether a node was removed.
func (s *Store) DeleteSelected() bool {
	if s.selected == "" {
		return false
	}
	_, ok := s.graph.RemoveNode(s.selected)
	s.ClearSelection()
	if ok {
		s.touch()
	}
	return ok
}

// UpdateFormField changes one field of the form buffer. The committed node
// is untouched until SaveForm.
func (s *Store) UpdateFormField(field domain.Field, value string) error {
	if err := s.form.Set(field, value); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidField, field)
	}
	return nil
}

// SaveForm validates the form buffer and commits it to the selected node,
// re-resolving the style, then leaves edit mode. Without a selection it does
// nothing. On validation failure the store stays in edit mode.
func (s *Store) SaveForm() error {
	node := s.selectedNode()
	if node == nil {
		return nil
	}
	if err := s.form.Validate(); err != nil {
		return err
	}
	node.SetData(s.form)
	s.editing = false
	s.touch()
	return nil
}

// CancelEdit discards form changes and leaves edit mode. The selection is
// kept.
func (s *Store) CancelEdit() {
	if node := s.selectedNode(); node != nil {
		s.form = node.Data
	}
	s.editing = false
}

// Connect adds an edge from source to target. Both nodes must exist, the
// edge may not be a self-loop, and a second edge between the same ordered
// pair is refused.
func (s *Store) Connect(source, target string) (string, error) {
	if !s.graph.HasNode(source) {
		return "", fmt.Errorf("%w: %s", domain.ErrNodeNotFound, source)
	}
	if !s.graph.HasNode(target) {
		return "", fmt.Errorf("%w: %s", domain.ErrNodeNotFound, target)
	}
	if source == target {
		return "", domain.ErrSelfLoop
	}
	if s.graph.HasEdgeBetween(source, target) {
		return "", fmt.Errorf("%w: %s -> %s", domain.ErrDuplicateEdge, source, target)
	}

	edge := domain.NewEdge(source, target)
	for s.graph.EdgeIndex(edge.ID) >= 0 {
		edge.ID = domain.GenerateEdgeID()
	}
	s.graph.Edges = append(s.graph.Edges, edge)
	s.touch()
	return edge.ID, nil
}

// DeleteEdge removes the edge with id. Absent ids are ignored.
func (s *Store) DeleteEdge(id string) bool {
	if !s.graph.RemoveEdge(id) {
		return false
	}
	s.touch()
	return true
}

// ReplaceGraph swaps in a whole new graph, as done by an import. The id
// counter is recomputed and the selection cleared.
func (s *Store) ReplaceGraph(g *domain.Graph) {
	g = g.Clone()
	g.Normalize()
	g.IDCount = domain.NextIDCount(g.Nodes)
	s.graph = g
	s.ClearSelection()
	s.form = domain.NodeData{}
	s.touch()
}

func (s *Store) selectedNode() *domain.Node {
	if s.selected == "" {
		return nil
	}
	return s.graph.Node(s.selected)
}
