package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedGraph(t *testing.T) {
	g := SeedGraph()

	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, 3, g.IDCount)
	assert.Equal(t, "node-1", g.Nodes[0].ID)
	assert.Equal(t, "node-2", g.Nodes[1].ID)

	e := g.Edges[0]
	assert.Equal(t, "e1-2", e.ID)
	assert.Equal(t, "node-2", e.Source)
	assert.Equal(t, "node-1", e.Target)
	assert.True(t, e.Animated)

	for _, n := range g.Nodes {
		assert.Equal(t, ResolveStyle(CategoryMechanics), n.Style)
	}

	t.Run("each call returns a fresh graph", func(t *testing.T) {
		other := SeedGraph()
		other.Nodes[0].Data.Label = "changed"
		assert.NotEqual(t, "changed", SeedGraph().Nodes[0].Data.Label)
	})
}

func TestGraphRemoveNode(t *testing.T) {
	t.Run("cascades incident edges", func(t *testing.T) {
		g := SeedGraph()
		g.Nodes = append(g.Nodes, NewNode("3", Position{}, DefaultNodeData()))
		g.Edges = append(g.Edges, Edge{ID: "x", Source: "node-2", Target: "3"})

		removed, ok := g.RemoveNode("node-2")
		assert.True(t, ok)
		assert.Equal(t, 2, removed)
		assert.Len(t, g.Nodes, 2)
		assert.Empty(t, g.Edges)
		assert.Empty(t, g.DanglingEdges())
	})

	t.Run("missing node is a no-op", func(t *testing.T) {
		g := SeedGraph()
		removed, ok := g.RemoveNode("nope")
		assert.False(t, ok)
		assert.Zero(t, removed)
		assert.Equal(t, SeedGraph(), g)
	})
}

func TestGraphRemoveEdge(t *testing.T) {
	g := SeedGraph()
	assert.False(t, g.RemoveEdge("missing"))
	assert.True(t, g.RemoveEdge("e1-2"))
	assert.Empty(t, g.Edges)
}

func TestGraphClone(t *testing.T) {
	g := SeedGraph()
	c := g.Clone()
	c.Nodes[0].Data.Label = "other"
	c.Edges = append(c.Edges, Edge{ID: "y"})

	assert.Equal(t, "Equation of motion", g.Nodes[0].Data.Label)
	assert.Len(t, g.Edges, 1)
}

func TestGraphNormalize(t *testing.T) {
	g := &Graph{Nodes: []Node{{ID: "a", Data: NodeData{Category: CategoryMath}}}}
	g.Normalize()

	assert.NotNil(t, g.Edges)
	assert.Equal(t, ResolveStyle(CategoryMath), g.Nodes[0].Style)
}

func TestGraphDanglingEdges(t *testing.T) {
	g := SeedGraph()
	g.Edges = append(g.Edges, Edge{ID: "d", Source: "node-1", Target: "gone"})

	dangling := g.DanglingEdges()
	require.Len(t, dangling, 1)
	assert.Equal(t, "d", dangling[0].ID)
}

func TestGraphCheckUniqueIDs(t *testing.T) {
	assert.NoError(t, SeedGraph().CheckUniqueIDs())

	g := SeedGraph()
	g.Nodes = append(g.Nodes, g.Nodes[0])
	err := g.CheckUniqueIDs()
	assert.ErrorIs(t, err, ErrDuplicateNode)
	assert.Contains(t, err.Error(), "node-1")

	g = SeedGraph()
	g.Edges = append(g.Edges, Edge{ID: "e1-2", Source: "node-1", Target: "node-2"})
	assert.ErrorIs(t, g.CheckUniqueIDs(), ErrDuplicateEdgeID)
}
