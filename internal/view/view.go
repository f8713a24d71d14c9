// Package view derives what the page shows from the editor state: the
// canvas model handed to the client diagram library (vis-network) and the
// inspector panel.
package view

import (
	"physmap/internal/domain"
	"physmap/internal/editor"
)

// PanelMode selects which inspector variant is shown
type PanelMode string

const (
	PanelEmpty  PanelMode = "empty"
	PanelDetail PanelMode = "detail"
	PanelEdit   PanelMode = "edit"
)

// EmptyPrompt is shown when no node is selected
const EmptyPrompt = "Click a node to show its details"

// Page is the complete view model
type Page struct {
	Canvas    Canvas    `json:"canvas"`
	Inspector Inspector `json:"inspector"`
	Revision  uint64    `json:"revision"`
}

// Canvas is the vis-network compatible graph
type Canvas struct {
	Nodes []CanvasNode `json:"nodes"`
	Edges []CanvasEdge `json:"edges"`
}

// CanvasNode is a node as drawn on the canvas
type CanvasNode struct {
	ID              string    `json:"id"`
	Label           string    `json:"label"`
	Title           string    `json:"title"` // Tooltip content
	Formula         string    `json:"formula"`
	Category        string    `json:"category"`
	X               float64   `json:"x"`
	Y               float64   `json:"y"`
	Color           NodeColor `json:"color"`
	WidthConstraint int       `json:"widthConstraint"`
	Selected        bool      `json:"selected,omitempty"`
}

// NodeColor is the vis-network colour object
type NodeColor struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

// CanvasEdge is an edge as drawn on the canvas
type CanvasEdge struct {
	ID     string `json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Label  string `json:"label,omitempty"`
	Arrows string `json:"arrows"`
	Dashes bool   `json:"dashes,omitempty"` // animated edges are drawn dashed
}

// Inspector is the side panel
type Inspector struct {
	Mode        PanelMode        `json:"mode"`
	Prompt      string           `json:"prompt,omitempty"`
	NodeID      string           `json:"node_id,omitempty"`
	Title       string           `json:"title,omitempty"`
	Formula     string           `json:"formula,omitempty"`
	Description string           `json:"description,omitempty"`
	Form        *domain.NodeData `json:"form,omitempty"`
	Categories  []CategoryOption `json:"categories,omitempty"`
}

// CategoryOption is one entry of the category selector
type CategoryOption struct {
	Value    domain.Category `json:"value"`
	Title    string          `json:"title"`
	Selected bool            `json:"selected"`
}

// Render builds the page for a snapshot
func Render(snap editor.Snapshot) Page {
	return Page{
		Canvas:    RenderCanvas(snap.Graph, snap.SelectedID),
		Inspector: RenderInspector(snap),
		Revision:  snap.Revision,
	}
}

// RenderCanvas converts the graph to canvas nodes and edges
func RenderCanvas(g *domain.Graph, selectedID string) Canvas {
	canvas := Canvas{
		Nodes: make([]CanvasNode, 0, len(g.Nodes)),
		Edges: make([]CanvasEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		canvas.Nodes = append(canvas.Nodes, CanvasNode{
			ID:       n.ID,
			Label:    n.Data.Label,
			Title:    buildTooltip(n),
			Formula:  n.Data.Formula,
			Category: string(n.Data.Category),
			X:        n.Position.X,
			Y:        n.Position.Y,
			Color: NodeColor{
				Background: n.Style.Background,
				Border:     n.Style.BorderColor(),
			},
			WidthConstraint: n.Style.Width,
			Selected:        n.ID == selectedID,
		})
	}

	for _, e := range g.Edges {
		canvas.Edges = append(canvas.Edges, CanvasEdge{
			ID:     e.ID,
			From:   e.Source,
			To:     e.Target,
			Label:  e.Label,
			Arrows: "to",
			Dashes: e.Animated,
		})
	}

	return canvas
}

func buildTooltip(n domain.Node) string {
	tooltip := n.Data.Formula
	if n.Data.Description != "" {
		tooltip += "\n" + n.Data.Description
	}
	return tooltip
}

// RenderInspector picks the panel variant: empty without a selection, the
// read-only detail view when selected, and the edit form in edit mode
func RenderInspector(snap editor.Snapshot) Inspector {
	node := snap.Selected()
	if node == nil {
		return Inspector{Mode: PanelEmpty, Prompt: EmptyPrompt}
	}

	if !snap.Editing {
		return Inspector{
			Mode:        PanelDetail,
			NodeID:      node.ID,
			Title:       node.Data.Label,
			Formula:     node.Data.Formula,
			Description: node.Data.Description,
		}
	}

	form := snap.Form
	return Inspector{
		Mode:       PanelEdit,
		NodeID:     node.ID,
		Title:      node.Data.Label,
		Form:       &form,
		Categories: categoryOptions(form.Category),
	}
}

func categoryOptions(selected domain.Category) []CategoryOption {
	options := make([]CategoryOption, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		options = append(options, CategoryOption{
			Value:    c,
			Title:    c.Title(),
			Selected: c == selected,
		})
	}
	return options
}
