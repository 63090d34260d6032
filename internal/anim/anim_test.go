package anim

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/inamate/inamate/surface-go/internal/geom"
)

func TestFrameTransformCentersTarget(t *testing.T) {
	frame := geom.Pt(1000, 800)
	target := geom.NewRect(100, 100, 200, 100)
	m := FrameTransform(target, frame, 0, 0.05, 10)

	// 1000/200 = 5, 800/100 = 8: width limits.
	if !scalar.EqualWithinAbs(m.Zoom(), 5, 1e-12) {
		t.Fatalf("zoom = %v, want 5", m.Zoom())
	}
	c := m.TransformPoint(target.Center())
	if !scalar.EqualWithinAbs(c.X, 500, 1e-9) || !scalar.EqualWithinAbs(c.Y, 400, 1e-9) {
		t.Errorf("target center maps to %v, want frame center", c)
	}
}

func TestFrameTransformBounds(t *testing.T) {
	tests := []struct {
		name   string
		target geom.Rect
		want   float64
	}{
		{"small target capped at upper bound", geom.NewRect(0, 0, 10, 10), 1},
		{"huge target floored at min zoom", geom.NewRect(0, 0, 1e7, 1e7), 0.05},
		{"zero size target", geom.NewRect(40, 40, 0, 0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FrameTransform(tt.target, geom.Pt(800, 600), PaddingItem, 0.05, 1)
			if !scalar.EqualWithinAbs(m.Zoom(), tt.want, 1e-12) {
				t.Errorf("zoom = %v, want %v", m.Zoom(), tt.want)
			}
			if !m.IsFinite() {
				t.Errorf("matrix not finite: %v", m)
			}
		})
	}
}

func TestFrameTransformPadding(t *testing.T) {
	m := FrameTransform(geom.NewRect(0, 0, 100, 100), geom.Pt(200, 200), 1, 0.01, 10)
	// padded to 200x200
	if !scalar.EqualWithinAbs(m.Zoom(), 1, 1e-12) {
		t.Errorf("zoom = %v, want 1", m.Zoom())
	}
}

func TestAnimatorConverges(t *testing.T) {
	start := geom.ScaleTranslate(0.1, -3000, 2000)
	target := geom.ScaleTranslate(1.2, 450, -90)

	a := NewAnimator(DefaultDamping, 0.5)
	want := a.FramesToSettle(start, target)
	if want <= 0 || want >= a.MaxFrames {
		t.Fatalf("FramesToSettle = %d, want settled before cap %d", want, a.MaxFrames)
	}

	a.Start(target)
	cur := start
	prevZoom := cur.Zoom()
	for i := 1; ; i++ {
		var done bool
		cur, done = a.Step(cur)
		if cur.Zoom() > target.Zoom()+1e-9 {
			t.Fatalf("frame %d: zoom %v overshoots target %v", i, cur.Zoom(), target.Zoom())
		}
		if cur.Zoom() < prevZoom {
			t.Fatalf("frame %d: zoom decreased from %v to %v", i, prevZoom, cur.Zoom())
		}
		prevZoom = cur.Zoom()
		if done {
			if i != want {
				t.Errorf("settled after %d frames, FramesToSettle said %d", i, want)
			}
			break
		}
	}
	if cur != target {
		t.Errorf("settled transform = %v, want exactly %v", cur, target)
	}
	if a.Active() {
		t.Error("animator still active after settling")
	}
}

func TestAnimatorDeterministic(t *testing.T) {
	start := geom.ScaleTranslate(0.3, 10, 10)
	target := geom.ScaleTranslate(0.9, 800, 600)
	a := NewAnimator(DefaultDamping, 0.5)
	if a.FramesToSettle(start, target) != a.FramesToSettle(start, target) {
		t.Error("frame count differs between identical runs")
	}
}

func TestAnimatorMaxFrames(t *testing.T) {
	a := NewAnimator(0.001, 0.5)
	a.MaxFrames = 5
	a.Start(geom.ScaleTranslate(1, 1e6, 0))
	cur := geom.Identity()
	for i := 0; i < 5; i++ {
		cur, _ = a.Step(cur)
	}
	if a.Active() || cur != a.Target() {
		t.Errorf("after cap: active=%v cur=%v", a.Active(), cur)
	}
}

func TestBezier(t *testing.T) {
	tests := []struct {
		name string
		b    Bezier
		x    float64
		want float64
	}{
		{"linear mid", Linear, 0.5, 0.5},
		{"start", Bezier{0.1, 0.15, 0.75, 1}, 0, 0},
		{"end", Bezier{0.1, 0.15, 0.75, 1}, 1, 1},
		{"symmetric ease mid", Bezier{0.42, 0, 0.58, 1}, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.At(tt.x); !scalar.EqualWithinAbs(got, tt.want, 1e-6) {
				t.Errorf("At(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}

	b := Bezier{0, 0.55, 0.25, 1}
	prev := 0.0
	for x := 0.0; x <= 1; x += 0.05 {
		y := b.At(x)
		if y < prev-1e-9 || math.IsNaN(y) {
			t.Fatalf("At not monotonic at %v: %v < %v", x, y, prev)
		}
		prev = y
	}
}

func TestProfileCSS(t *testing.T) {
	p := Profile{Duration: 185 * time.Millisecond, Easing: Bezier{0.1, 0.15, 0.75, 1}}
	if got, want := p.CSS(), "transform 185ms cubic-bezier(0.1,0.15,0.75,1)"; got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
}
