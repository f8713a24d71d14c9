package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"physmap/internal/domain"
)

// JSONCodec handles the stored record format
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ContentType returns the MIME type of exported data
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// Parse imports graph data from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Graph, error) {
	var g domain.Graph
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&g); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return prepare(&g), nil
}

// Export exports graph data to JSON
func (c *JSONCodec) Export(g *domain.Graph, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(g); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
