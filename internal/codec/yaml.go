package codec

import (
	"fmt"
	"io"

	"physmap/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ContentType returns the MIME type of exported data
func (c *YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// yamlGraph represents the YAML structure for graph data. Styles are not
// written; they follow from the category.
type yamlGraph struct {
	Nodes []yamlNode `yaml:"nodes"`
	Edges []yamlEdge `yaml:"edges"`
}

type yamlNode struct {
	ID       string          `yaml:"id"`
	Position domain.Position `yaml:"position"`
	Data     domain.NodeData `yaml:"data"`
}

type yamlEdge struct {
	ID       string `yaml:"id,omitempty"`
	Source   string `yaml:"source"`
	Target   string `yaml:"target"`
	Animated bool   `yaml:"animated,omitempty"`
	Label    string `yaml:"label,omitempty"`
}

// Parse imports graph data from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Graph, error) {
	var yg yamlGraph
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	g := domain.NewGraph()

	for _, yn := range yg.Nodes {
		g.Nodes = append(g.Nodes, domain.NewNode(yn.ID, yn.Position, yn.Data))
	}

	for _, ye := range yg.Edges {
		edge := domain.Edge{
			ID:       ye.ID,
			Source:   ye.Source,
			Target:   ye.Target,
			Animated: ye.Animated,
			Label:    ye.Label,
		}
		if edge.ID == "" {
			edge.ID = domain.GenerateEdgeID()
		}
		g.Edges = append(g.Edges, edge)
	}

	return prepare(g), nil
}

// Export exports graph data to YAML
func (c *YAMLCodec) Export(g *domain.Graph, w io.Writer) error {
	yg := yamlGraph{
		Nodes: make([]yamlNode, 0, len(g.Nodes)),
		Edges: make([]yamlEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		yg.Nodes = append(yg.Nodes, yamlNode{
			ID:       n.ID,
			Position: n.Position,
			Data:     n.Data,
		})
	}

	for _, e := range g.Edges {
		yg.Edges = append(yg.Edges, yamlEdge{
			ID:       e.ID,
			Source:   e.Source,
			Target:   e.Target,
			Animated: e.Animated,
			Label:    e.Label,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yg); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
