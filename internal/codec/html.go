package codec

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"physmap/internal/domain"
)

// HTMLRenderer writes a standalone, read-only HTML snapshot of the graph
type HTMLRenderer struct {
	Title string
}

// NewHTMLRenderer creates a renderer with the default page title
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{Title: "physmap snapshot"}
}

// Format returns the codec format identifier
func (h *HTMLRenderer) Format() string {
	return "html"
}

// ContentType returns the MIME type of exported data
func (h *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Export renders the graph as an ECharts graph chart. Nodes keep their
// editor positions and category colours.
func (h *HTMLRenderer) Export(g *domain.Graph, w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = h.Title
	page.AddCharts(h.chart(g))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}

func (h *HTMLRenderer) chart(g *domain.Graph) *charts.Graph {
	names := make(map[string]string, len(g.Nodes))
	nodes := make([]opts.GraphNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		names[n.ID] = displayName(n)
		nodes = append(nodes, opts.GraphNode{
			Name:       names[n.ID],
			X:          float32(n.Position.X),
			Y:          float32(n.Position.Y),
			SymbolSize: 40,
			ItemStyle: &opts.ItemStyle{
				Color:       n.Style.Background,
				BorderColor: n.Style.BorderColor(),
				BorderWidth: 1,
			},
		})
	}

	links := make([]opts.GraphLink, 0, len(g.Edges))
	for _, e := range g.Edges {
		src, ok := names[e.Source]
		if !ok {
			continue
		}
		tgt, ok := names[e.Target]
		if !ok {
			continue
		}
		links = append(links, opts.GraphLink{
			Source: src,
			Target: tgt,
		})
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: h.Title,
			Height:    "100vh",
			Width:     "100vw",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	graph.AddSeries(
		"formulas",
		nodes,
		links,
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Layout:             "none",
				Roam:               opts.Bool(true),
				Draggable:          opts.Bool(true),
				EdgeSymbol:         []string{"none", "arrow"},
				FocusNodeAdjacency: opts.Bool(true),
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Color:     "black",
			Position:  "bottom",
			Formatter: "{b}",
		}),
	)
	return graph
}

// displayName is unique per node since it embeds the id
func displayName(n domain.Node) string {
	return fmt.Sprintf("%s (%s)", n.Data.Label, n.ID)
}
