// Package codec converts whole graphs to and from external file formats.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"physmap/internal/domain"
)

// Importer interface for importing graph data from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Graph, error)
	Format() string
}

// Exporter interface for exporting graph data to various formats
type Exporter interface {
	Export(g *domain.Graph, w io.Writer) error
	Format() string
	ContentType() string
}

// Importers returns the importer for each supported format
func Importers() map[string]Importer {
	return map[string]Importer{
		"json": NewJSONCodec(),
		"yaml": NewYAMLCodec(),
		"toml": NewTOMLCodec(),
	}
}

// Exporters returns the exporter for each supported format
func Exporters() map[string]Exporter {
	return map[string]Exporter{
		"json": NewJSONCodec(),
		"yaml": NewYAMLCodec(),
		"toml": NewTOMLCodec(),
		"html": NewHTMLRenderer(),
	}
}

// ImporterFor looks up an importer by format name
func ImporterFor(format string) (Importer, error) {
	imp, ok := Importers()[normalizeFormat(format)]
	if !ok {
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
	return imp, nil
}

// ExporterFor looks up an exporter by format name
func ExporterFor(format string) (Exporter, error) {
	exp, ok := Exporters()[normalizeFormat(format)]
	if !ok {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	return exp, nil
}

// FormatFromPath guesses the format from a file extension
func FormatFromPath(path string) string {
	return normalizeFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

func normalizeFormat(format string) string {
	format = strings.ToLower(format)
	switch format {
	case "yml":
		return "yaml"
	case "htm":
		return "html"
	}
	return format
}

// prepare finishes an imported graph: nil collections are filled, styles
// derived, and the id counter recomputed
func prepare(g *domain.Graph) *domain.Graph {
	g.Normalize()
	g.IDCount = domain.NextIDCount(g.Nodes)
	return g
}
