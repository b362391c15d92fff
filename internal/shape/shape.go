package shape

import "github.com/pillboard/pillboard/internal/geom"

// Shape is the only persistent entity: an axis-aligned "pill" rectangle.
// Color and CornerRadius are display attributes the engine treats as opaque:
// assigned once at creation and inherited unchanged by split children.
type Shape struct {
	ID           string  `json:"id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Color        string  `json:"color"`
	CornerRadius float64 `json:"cornerRadius"`
}

// Bounds returns the shape's rectangle.
func (s Shape) Bounds() geom.Rect {
	return geom.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Contains reports whether the point lies inside the shape's bounds,
// inclusive of edges.
func (s Shape) Contains(x, y float64) bool {
	return s.Bounds().Contains(x, y)
}
