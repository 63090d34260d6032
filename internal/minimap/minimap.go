// Package minimap projects the visible frame and the items of a surface into
// a small overview, and converts pointer movement over it into view pans.
package minimap

import (
	"math"

	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/items"
)

// Config sizes and places the minimap.
type Config struct {
	Scale      float64 // fraction of the base size
	Ratio      float64 // width / height
	PixelRatio float64 // device pixels per CSS pixel
	Margin     float64 // distance from the bottom-right corner, CSS pixels
}

// DefaultConfig matches the stock surface.
func DefaultConfig() Config {
	return Config{Scale: 0.2, Ratio: 4.0 / 3.0, PixelRatio: 1, Margin: 30}
}

// ProjectedItem is an item rect in minimap pixels.
type ProjectedItem struct {
	ID   string    `json:"id"`
	Rect geom.Rect `json:"rect"`
}

// ProjectedPath is a path item polyline in minimap pixels.
type ProjectedPath struct {
	ID     string       `json:"id"`
	Points []geom.Point `json:"points"`
}

// Projection is everything a renderer needs to draw the minimap.
type Projection struct {
	Size geom.Point `json:"size"`
	// Bounds places the minimap in the viewport, CSS pixels.
	Bounds     geom.Rect       `json:"bounds"`
	Frame      geom.Rect       `json:"frame"`
	Items      []ProjectedItem `json:"items"`
	Paths      []ProjectedPath `json:"paths,omitempty"`
	AllVisible bool            `json:"allVisible"`
}

// Minimap keeps the visibility state between projections.
type Minimap struct {
	cfg        Config
	hovered    bool
	allVisible bool
}

// New returns a minimap that starts hidden.
func New(cfg Config) *Minimap {
	if cfg.PixelRatio <= 0 {
		cfg.PixelRatio = 1
	}
	return &Minimap{cfg: cfg, allVisible: true}
}

// CanvasSize returns the minimap size in device pixels for a viewport of
// the given CSS size.
func (m *Minimap) CanvasSize(viewport geom.Point) geom.Point {
	w := viewport.X * m.cfg.PixelRatio
	h := viewport.Y * m.cfg.PixelRatio
	g := math.Max(850, math.Min(1150+w*0.1, w*0.15+h*0.85))
	return geom.Pt(math.Round(g*m.cfg.Scale*m.cfg.Ratio), math.Round(g*m.cfg.Scale))
}

// Bounds returns where the minimap sits in the viewport, in CSS pixels.
func (m *Minimap) Bounds(viewport geom.Point) geom.Rect {
	size := m.CanvasSize(viewport).Scale(1 / m.cfg.PixelRatio)
	return geom.Rect{
		X:      viewport.X - m.cfg.Margin - size.X,
		Y:      viewport.Y - m.cfg.Margin - size.Y,
		Width:  size.X,
		Height: size.Y,
	}
}

// Hit reports whether a screen point falls on the minimap. A hidden
// minimap is never hit.
func (m *Minimap) Hit(p, viewport geom.Point) bool {
	return !m.allVisible && m.Bounds(viewport).Contains(p)
}

// SetHovered records whether the pointer is over the minimap. While it is,
// the visibility flag is frozen so the minimap does not vanish under the
// pointer.
func (m *Minimap) SetHovered(v bool) {
	m.hovered = v
}

func (m *Minimap) Hovered() bool    { return m.hovered }
func (m *Minimap) AllVisible() bool { return m.allVisible }

// Project maps the viewport frame and every item into minimap pixels. The
// union of the frame and the items fills the canvas.
func (m *Minimap) Project(viewport geom.Point, mat geom.Matrix2D, all []items.Item) Projection {
	size := m.CanvasSize(viewport)
	frame := geom.Rect{Width: viewport.X, Height: viewport.Y}

	screenRects := make([]geom.Rect, 0, len(all)+1)
	screenRects = append(screenRects, frame)
	var boxes []items.Item
	for _, it := range all {
		if it.IsPath() {
			continue
		}
		boxes = append(boxes, it)
		screenRects = append(screenRects, it.Rect.Transform(mat))
	}
	screen, _ := geom.Combine(screenRects...)

	if !m.hovered {
		m.allVisible = true
		for _, r := range screenRects[1:] {
			if !r.Within(frame) {
				m.allVisible = false
				break
			}
		}
	}

	p := Projection{
		Size:       size,
		Bounds:     m.Bounds(viewport),
		Frame:      frame.Relative(screen).Multiply(size.X, size.Y),
		Items:      make([]ProjectedItem, 0, len(boxes)),
		AllVisible: m.allVisible,
	}
	for i, it := range boxes {
		p.Items = append(p.Items, ProjectedItem{
			ID:   it.ID,
			Rect: screenRects[i+1].Relative(screen).Multiply(size.X, size.Y),
		})
	}
	for _, it := range all {
		if !it.IsPath() {
			continue
		}
		pts := make([]geom.Point, len(it.Points))
		for i, pt := range it.Points {
			pts[i] = project(mat.TransformPoint(pt), screen, size)
		}
		p.Paths = append(p.Paths, ProjectedPath{ID: it.ID, Points: pts})
	}
	return p
}

func project(p geom.Point, screen geom.Rect, size geom.Point) geom.Point {
	if screen.Width == 0 || screen.Height == 0 {
		return geom.Point{}
	}
	return geom.Pt(
		(p.X-screen.X)/screen.Width*size.X,
		(p.Y-screen.Y)/screen.Height*size.Y,
	)
}

// PanScale returns how many world units the view moves per CSS pixel of
// pointer movement over the minimap, given the world bounds of all items.
// Each axis is floored at 0.01.
func (m *Minimap) PanScale(bounds geom.Rect, viewport geom.Point) geom.Point {
	size := m.CanvasSize(viewport)
	return geom.Pt(
		math.Max(0.01, bounds.Width/size.X*m.cfg.PixelRatio),
		math.Max(0.01, bounds.Height/size.Y*m.cfg.PixelRatio),
	)
}

// PanDelta converts a screen-space pointer movement over the minimap into
// a world-space view translation.
func (m *Minimap) PanDelta(move geom.Point, bounds geom.Rect, viewport geom.Point) geom.Point {
	return move.Mul(m.PanScale(bounds, viewport)).Negate()
}
