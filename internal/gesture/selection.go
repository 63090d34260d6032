package gesture

import "github.com/inamate/inamate/surface-go/internal/geom"

// Selection is a rubber-band rectangle in screen space.
type Selection struct {
	Start   geom.Point
	Current geom.Point
}

// Rect returns the rect spanning start and current.
func (s Selection) Rect() geom.Rect {
	return geom.RectFromPoints(s.Start, s.Current)
}
