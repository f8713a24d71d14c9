package codec

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"physmap/internal/domain"
)

// TOMLCodec handles TOML import/export, one [[nodes]] / [[edges]] table per
// element
type TOMLCodec struct{}

// NewTOMLCodec creates a new TOML codec
func NewTOMLCodec() *TOMLCodec {
	return &TOMLCodec{}
}

// Format returns the codec format identifier
func (c *TOMLCodec) Format() string {
	return "toml"
}

// ContentType returns the MIME type of exported data
func (c *TOMLCodec) ContentType() string {
	return "application/toml"
}

type tomlGraph struct {
	Nodes []tomlNode `toml:"nodes"`
	Edges []tomlEdge `toml:"edges"`
}

type tomlNode struct {
	ID          string  `toml:"id"`
	X           float64 `toml:"x"`
	Y           float64 `toml:"y"`
	Label       string  `toml:"label"`
	Formula     string  `toml:"formula"`
	Description string  `toml:"description"`
	Category    string  `toml:"category"`
}

type tomlEdge struct {
	ID       string `toml:"id"`
	Source   string `toml:"source"`
	Target   string `toml:"target"`
	Animated bool   `toml:"animated,omitempty"`
	Label    string `toml:"label,omitempty"`
}

// Parse imports graph data from TOML
func (c *TOMLCodec) Parse(r io.Reader) (*domain.Graph, error) {
	var tg tomlGraph
	if _, err := toml.NewDecoder(r).Decode(&tg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	g := domain.NewGraph()
	for _, tn := range tg.Nodes {
		g.Nodes = append(g.Nodes, domain.NewNode(tn.ID, domain.Position{X: tn.X, Y: tn.Y}, domain.NodeData{
			Label:       tn.Label,
			Formula:     tn.Formula,
			Description: tn.Description,
			Category:    domain.Category(tn.Category),
		}))
	}
	for _, te := range tg.Edges {
		edge := domain.Edge{
			ID:       te.ID,
			Source:   te.Source,
			Target:   te.Target,
			Animated: te.Animated,
			Label:    te.Label,
		}
		if edge.ID == "" {
			edge.ID = domain.GenerateEdgeID()
		}
		g.Edges = append(g.Edges, edge)
	}

	return prepare(g), nil
}

// Export exports graph data to TOML
func (c *TOMLCodec) Export(g *domain.Graph, w io.Writer) error {
	tg := tomlGraph{
		Nodes: make([]tomlNode, 0, len(g.Nodes)),
		Edges: make([]tomlEdge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		tg.Nodes = append(tg.Nodes, tomlNode{
			ID:          n.ID,
			X:           n.Position.X,
			Y:           n.Position.Y,
			Label:       n.Data.Label,
			Formula:     n.Data.Formula,
			Description: n.Data.Description,
			Category:    string(n.Data.Category),
		})
	}
	for _, e := range g.Edges {
		tg.Edges = append(tg.Edges, tomlEdge{
			ID:       e.ID,
			Source:   e.Source,
			Target:   e.Target,
			Animated: e.Animated,
			Label:    e.Label,
		})
	}

	if err := toml.NewEncoder(w).Encode(tg); err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}
	return nil
}
