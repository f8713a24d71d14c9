package domain

// Position is a point in canvas space
type Position struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// Offset returns p shifted by (dx, dy)
func (p Position) Offset(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}
