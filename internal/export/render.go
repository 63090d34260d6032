// Package export renders surface frames to images.
package export

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"golang.org/x/image/vector"

	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/items"
	"github.com/inamate/inamate/surface-go/internal/surface"
)

var (
	colBackground = color.RGBA{0xf7, 0xf7, 0xf5, 0xff}
	colGrid       = color.RGBA{0xd0, 0xd0, 0xcc, 0xff}
	colItem       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colItemEdge   = color.RGBA{0x44, 0x44, 0x44, 0xff}
	colPath       = color.RGBA{0x33, 0x66, 0xcc, 0xff}
	colSelection  = color.RGBA{0x33, 0x66, 0xcc, 0x40}
	colMinimap    = color.RGBA{0xee, 0xee, 0xee, 0xe0}
	colMiniFrame  = color.RGBA{0xcc, 0x33, 0x33, 0xff}
)

// canvas draws filled polygons with an antialiasing rasterizer.
type canvas struct {
	dst *image.RGBA
	z   *vector.Rasterizer
}

func newCanvas(w, h int) *canvas {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(colBackground), image.Point{}, draw.Src)
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Over
	return &canvas{dst: dst, z: z}
}

// polygon fills a closed polygon. Points are clamped to the canvas.
func (c *canvas) polygon(pts []geom.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	b := c.dst.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Over
	w, h := float64(b.Dx()), float64(b.Dy())
	clamp := func(p geom.Point) (float32, float32) {
		return float32(math.Max(0, math.Min(w, p.X))), float32(math.Max(0, math.Min(h, p.Y)))
	}
	c.z.MoveTo(clamp(pts[0]))
	for _, p := range pts[1:] {
		c.z.LineTo(clamp(p))
	}
	c.z.ClosePath()
	c.z.Draw(c.dst, b, image.NewUniform(col), image.Point{})
}

func (c *canvas) fill(r geom.Rect, col color.Color) {
	if r.IsEmpty() || !r.IsFinite() {
		return
	}
	c.polygon([]geom.Point{
		r.Pos(),
		geom.Pt(r.Right(), r.Top()),
		geom.Pt(r.Right(), r.Bottom()),
		geom.Pt(r.Left(), r.Bottom()),
	}, col)
}

func (c *canvas) stroke(r geom.Rect, width float64, col color.Color) {
	c.fill(geom.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: width}, col)
	c.fill(geom.Rect{X: r.X, Y: r.Bottom() - width, Width: r.Width, Height: width}, col)
	c.fill(geom.Rect{X: r.X, Y: r.Y, Width: width, Height: r.Height}, col)
	c.fill(geom.Rect{X: r.Right() - width, Y: r.Y, Width: width, Height: r.Height}, col)
}

// line draws a segment as a quad of the given width.
func (c *canvas) line(a, b geom.Point, width float64, col color.Color) {
	d := b.Sub(a)
	n := math.Hypot(d.X, d.Y)
	if n == 0 {
		return
	}
	off := geom.Pt(-d.Y/n, d.X/n).Scale(width / 2)
	c.polygon([]geom.Point{a.Add(off), b.Add(off), b.Sub(off), a.Sub(off)}, col)
}

func (c *canvas) polyline(pts []geom.Point, width float64, col color.Color) {
	for i := 1; i < len(pts); i++ {
		c.line(pts[i-1], pts[i], width, col)
	}
}

// Render draws a frame: grid lines, items in stacking order, the selection
// rect and the minimap when it is shown.
func Render(size geom.Point, f surface.Frame, all []items.Item) *image.RGBA {
	w, h := int(math.Ceil(size.X)), int(math.Ceil(size.Y))
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	c := newCanvas(w, h)

	lw := math.Max(1, f.Grid.LineWidth)
	for _, x := range f.Grid.X {
		c.fill(geom.Rect{X: x - lw/2, Y: 0, Width: lw, Height: float64(h)}, colGrid)
	}
	for _, y := range f.Grid.Y {
		c.fill(geom.Rect{X: 0, Y: y - lw/2, Width: float64(w), Height: lw}, colGrid)
	}

	for _, it := range byZ(all) {
		if it.IsPath() {
			pts := make([]geom.Point, len(it.Points))
			for i, p := range it.Points {
				pts[i] = f.Matrix.TransformPoint(p)
			}
			c.polyline(pts, 2, colPath)
			continue
		}
		r := it.Rect.Transform(f.Matrix)
		c.fill(r, colItem)
		c.stroke(r, 1, colItemEdge)
	}

	if f.Selection != nil {
		c.fill(*f.Selection, colSelection)
		c.stroke(*f.Selection, 1, colPath)
	}

	if mm := f.Minimap; mm != nil && !mm.AllVisible {
		b := mm.Bounds
		sx, sy := b.Width/mm.Size.X, b.Height/mm.Size.Y
		place := func(r geom.Rect) geom.Rect {
			return geom.Rect{X: b.X + r.X*sx, Y: b.Y + r.Y*sy, Width: r.Width * sx, Height: r.Height * sy}
		}
		c.fill(b, colMinimap)
		for _, it := range mm.Items {
			c.fill(place(it.Rect), colItemEdge)
		}
		for _, p := range mm.Paths {
			pts := make([]geom.Point, len(p.Points))
			for i, pt := range p.Points {
				pts[i] = geom.Pt(b.X+pt.X*sx, b.Y+pt.Y*sy)
			}
			c.polyline(pts, 1, colPath)
		}
		c.stroke(place(mm.Frame), 1, colMiniFrame)
	}
	return c.dst
}

func byZ(all []items.Item) []items.Item {
	out := append([]items.Item(nil), all...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}
