package service

import "physmap/internal/domain"

// InspectorWidth is the width of the side panel that covers the right edge of
// the canvas
const InspectorWidth = 300

// Viewport describes the visible canvas: pan offset, zoom, and the size of
// the browser window
type Viewport struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Zoom   float64 `json:"zoom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the canvas-space point in the middle of the visible area
// left of the inspector panel
func (v Viewport) Center() domain.Position {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return domain.Position{
		X: (-v.X + (v.Width-InspectorWidth)/2) / zoom,
		Y: (-v.Y + v.Height/2) / zoom,
	}
}
