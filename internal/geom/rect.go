package geom

// Rect is an axis-aligned rectangle. Width and Height are never negative
// for rectangles built through NewRect or RectFromPoints.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect builds a rect, folding negative sizes back onto the origin.
func NewRect(x, y, w, h float64) Rect {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectFromPoints returns the rect spanning a and b in any order.
func RectFromPoints(a, b Point) Rect {
	return NewRect(a.X, a.Y, b.X-a.X, b.Y-a.Y)
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Pos returns the top-left corner.
func (r Rect) Pos() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns (width, height) as a point.
func (r Rect) Size() Point {
	return Point{X: r.Width, Y: r.Height}
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Within reports whether r lies completely inside outer.
func (r Rect) Within(outer Rect) bool {
	return r.X >= outer.X && r.Right() <= outer.Right() &&
		r.Y >= outer.Y && r.Bottom() <= outer.Bottom()
}

// IntersectsRect reports whether r and other overlap. Touching edges count.
func (r Rect) IntersectsRect(other Rect) bool {
	return r.X <= other.Right() && other.X <= r.Right() &&
		r.Y <= other.Bottom() && other.Y <= r.Bottom()
}

// Translate moves the rect by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// ScaleLinear grows the rect by padding on each axis, keeping its center.
func (r Rect) ScaleLinear(padding float64) Rect {
	return Rect{
		X:      r.X - padding/2,
		Y:      r.Y - padding/2,
		Width:  r.Width + padding,
		Height: r.Height + padding,
	}
}

// Normalize maps a screen-space rect into the world space of m.
func (r Rect) Normalize(m Matrix2D) Rect {
	return m.Invert().TransformRect(r)
}

// Transform maps a world-space rect through m.
func (r Rect) Transform(m Matrix2D) Rect {
	return m.TransformRect(r)
}

// Relative expresses r in units of container: the container's top-left
// becomes 0,0 and its size becomes 1,1.
func (r Rect) Relative(container Rect) Rect {
	if container.Width == 0 || container.Height == 0 {
		return Rect{}
	}
	return Rect{
		X:      (r.X - container.X) / container.Width,
		Y:      (r.Y - container.Y) / container.Height,
		Width:  r.Width / container.Width,
		Height: r.Height / container.Height,
	}
}

// Multiply scales position and size per axis.
func (r Rect) Multiply(sx, sy float64) Rect {
	return Rect{X: r.X * sx, Y: r.Y * sy, Width: r.Width * sx, Height: r.Height * sy}
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.Right(), other.Right())
	maxY := max(r.Bottom(), other.Bottom())

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Combine returns the bounding union of rects. ok is false for no input.
func Combine(rects ...Rect) (Rect, bool) {
	if len(rects) == 0 {
		return Rect{}, false
	}
	result := rects[0]
	for _, r := range rects[1:] {
		result = result.Union(r)
	}
	return result, true
}

// IsFinite reports whether every field is finite.
func (r Rect) IsFinite() bool {
	return isFinite(r.X) && isFinite(r.Y) && isFinite(r.Width) && isFinite(r.Height)
}
