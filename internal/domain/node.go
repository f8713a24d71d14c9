package domain

import (
	"fmt"
	"strings"
)

// NodeData is the editable payload of a node. The editor's form buffer is a
// NodeData value as well.
type NodeData struct {
	Label       string   `json:"label" yaml:"label" toml:"label"`
	Formula     string   `json:"formula" yaml:"formula" toml:"formula"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Category    Category `json:"category" yaml:"category" toml:"category"`
}

// Field names a single NodeData field
type Field string

const (
	FieldLabel       Field = "label"
	FieldFormula     Field = "formula"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
)

// DefaultNodeData is the payload given to freshly added nodes
func DefaultNodeData() NodeData {
	return NodeData{
		Label:       "New law",
		Formula:     "x = ?",
		Description: "Describe it here",
		Category:    CategoryDefault,
	}
}

// Set assigns value to the named field. Category values are stored as given
// and checked by Validate.
func (d *NodeData) Set(f Field, value string) error {
	switch f {
	case FieldLabel:
		d.Label = value
	case FieldFormula:
		d.Formula = value
	case FieldDescription:
		d.Description = value
	case FieldCategory:
		d.Category = Category(value)
	default:
		return fmt.Errorf("unknown field %q", f)
	}
	return nil
}

// Validate checks the payload before it is committed to a node
func (d NodeData) Validate() error {
	if strings.TrimSpace(d.Label) == "" {
		return ErrEmptyLabel
	}
	if strings.TrimSpace(d.Formula) == "" {
		return ErrEmptyFormula
	}
	if !d.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, d.Category)
	}
	return nil
}

// Node is one formula vertex in the graph
type Node struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
	Style    Style    `json:"style"`
}

// NewNode creates a node whose style is resolved from the data's category
func NewNode(id string, pos Position, data NodeData) Node {
	return Node{
		ID:       id,
		Position: pos,
		Data:     data,
		Style:    ResolveStyle(data.Category),
	}
}

// SetData replaces the payload and re-derives the style
func (n *Node) SetData(data NodeData) {
	n.Data = data
	n.Style = ResolveStyle(data.Category)
}
