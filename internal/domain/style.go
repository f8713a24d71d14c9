package domain

// NodeWidth is the fixed rendered width of every node
const NodeWidth = 180

// Style is the visual descriptor derived from a node's category
type Style struct {
	Background string `json:"background"`
	Border     string `json:"border"`
	Width      int    `json:"width"`
}

var categoryStyles = map[Category]Style{
	CategoryMechanics:        {Background: "#E3F2FD", Border: "1px solid #2196F3", Width: NodeWidth},
	CategoryElectromagnetism: {Background: "#FFEBEE", Border: "1px solid #F44336", Width: NodeWidth},
	CategoryThermodynamics:   {Background: "#FFF3E0", Border: "1px solid #FF9800", Width: NodeWidth},
	CategoryMath:             {Background: "#F3E5F5", Border: "1px solid #9C27B0", Width: NodeWidth},
	CategoryDefault:          {Background: "#ffffff", Border: "1px solid #777", Width: NodeWidth},
}

// ResolveStyle maps a category to its style. Any unmatched value, including
// the empty string, yields the default style.
func ResolveStyle(c Category) Style {
	if s, ok := categoryStyles[c]; ok {
		return s
	}
	return categoryStyles[CategoryDefault]
}

// BorderColor returns the colour part of the border declaration
func (s Style) BorderColor() string {
	for i := len(s.Border) - 1; i >= 0; i-- {
		if s.Border[i] == ' ' {
			return s.Border[i+1:]
		}
	}
	return s.Border
}
