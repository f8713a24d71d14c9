package domain

import "fmt"

// Graph is the complete editor document
type Graph struct {
	Nodes   []Node `json:"nodes"`
	Edges   []Edge `json:"edges"`
	IDCount int    `json:"idCount"`
}

// NewGraph creates an empty graph whose counter starts at 1
func NewGraph() *Graph {
	return &Graph{
		Nodes:   make([]Node, 0),
		Edges:   make([]Edge, 0),
		IDCount: 1,
	}
}

// Clone returns a deep copy of the graph
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Nodes:   make([]Node, len(g.Nodes)),
		Edges:   make([]Edge, len(g.Edges)),
		IDCount: g.IDCount,
	}
	copy(c.Nodes, g.Nodes)
	copy(c.Edges, g.Edges)
	return c
}

// NodeIndex returns the index of the node with id, or -1
func (g *Graph) NodeIndex(id string) int {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// Node returns a pointer to the node with id, or nil
func (g *Graph) Node(id string) *Node {
	if i := g.NodeIndex(id); i >= 0 {
		return &g.Nodes[i]
	}
	return nil
}

// HasNode reports whether a node with id exists
func (g *Graph) HasNode(id string) bool {
	return g.NodeIndex(id) >= 0
}

// EdgeIndex returns the index of the edge with id, or -1
func (g *Graph) EdgeIndex(id string) int {
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			return i
		}
	}
	return -1
}

// HasEdgeBetween reports whether an edge already runs from source to target
func (g *Graph) HasEdgeBetween(source, target string) bool {
	for _, e := range g.Edges {
		if e.Connects(source, target) {
			return true
		}
	}
	return false
}

// RemoveNode deletes the node with id together with every edge touching it.
// It returns the number of edges removed and false if the node was absent.
func (g *Graph) RemoveNode(id string) (int, bool) {
	i := g.NodeIndex(id)
	if i < 0 {
		return 0, false
	}
	g.Nodes = append(g.Nodes[:i], g.Nodes[i+1:]...)

	kept := g.Edges[:0]
	removed := 0
	for _, e := range g.Edges {
		if e.Touches(id) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	g.Edges = kept
	return removed, true
}

// RemoveEdge deletes the edge with id and reports whether it existed
func (g *Graph) RemoveEdge(id string) bool {
	i := g.EdgeIndex(id)
	if i < 0 {
		return false
	}
	g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
	return true
}

// DanglingEdges returns the edges whose source or target is missing
func (g *Graph) DanglingEdges() []Edge {
	var dangling []Edge
	for _, e := range g.Edges {
		if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
			dangling = append(dangling, e)
		}
	}
	return dangling
}

// CheckUniqueIDs returns an error naming the first node or edge id that
// appears more than once.
func (g *Graph) CheckUniqueIDs() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, ok := seen[n.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	seen = make(map[string]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateEdgeID, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// Normalize fills nil collections and re-derives every node's style from its
// category. It does not touch the id counter.
func (g *Graph) Normalize() {
	if g.Nodes == nil {
		g.Nodes = make([]Node, 0)
	}
	if g.Edges == nil {
		g.Edges = make([]Edge, 0)
	}
	for i := range g.Nodes {
		g.Nodes[i].Style = ResolveStyle(g.Nodes[i].Data.Category)
	}
}
