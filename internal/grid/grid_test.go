package grid

import (
	"errors"
	"testing"

	"github.com/inamate/inamate/surface-go/internal/geom"
)

func mustPattern(t *testing.T, cell float64, x, y string) Pattern {
	t.Helper()
	p, err := NewPattern(cell, x, y)
	if err != nil {
		t.Fatalf("NewPattern() error = %v", err)
	}
	return p
}

func TestNewPatternValidation(t *testing.T) {
	tests := []struct {
		name string
		cell float64
		x, y string
	}{
		{"zero cell", 0, "1", "1"},
		{"empty x", 80, "", "1"},
		{"bad bit", 80, "1", "10a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPattern(tt.cell, tt.x, tt.y)
			if !errors.Is(err, ErrInvalidPattern) {
				t.Errorf("NewPattern() error = %v, want ErrInvalidPattern", err)
			}
		})
	}
}

func TestModWrap(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{0, 3, 0}, {4, 3, 1}, {-1, 3, 2}, {-3, 3, 0}, {-7, 5, 3},
	}
	for _, tt := range tests {
		if got := ModWrap(tt.i, tt.n); got != tt.want {
			t.Errorf("ModWrap(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestSnapEdge(t *testing.T) {
	all := mustPattern(t, 80, "1", "1")
	alt := mustPattern(t, 10, "10", "01")
	tests := []struct {
		name      string
		p         Pattern
		v         float64
		axis      Axis
		threshold float64
		want      float64
		snapped   bool
	}{
		{"near line", all, 83, AxisX, 0.15, 80, true},
		{"exactly at threshold stays", all, 92, AxisX, 0.15, 92, false},
		{"exactly at threshold below", all, 68, AxisX, 0.15, 68, false},
		{"just inside threshold", all, 91.99, AxisX, 0.15, 80, true},
		{"far from line", all, 40, AxisX, 0.15, 40, false},
		{"negative", all, -77, AxisY, 0.15, -80, true},
		{"forced snap", all, 39, AxisX, 1, 0, true},
		{"inactive line", alt, 11, AxisX, 0.5, 11, false},
		{"active line", alt, 19, AxisX, 0.5, 20, true},
		{"negative inactive", alt, -9, AxisX, 0.5, -9, false},
		{"negative active", alt, -21, AxisX, 0.5, -20, true},
		{"y pattern differs", alt, 11, AxisY, 0.5, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.p.SnapEdge(tt.v, tt.axis, tt.threshold)
			if got != tt.want || ok != tt.snapped {
				t.Errorf("SnapEdge(%v) = %v, %v; want %v, %v", tt.v, got, ok, tt.want, tt.snapped)
			}
		})
	}
}

func TestSnapIsPure(t *testing.T) {
	p := mustPattern(t, 80, "1101", "1")
	for v := -500.0; v < 500; v += 7.3 {
		a := p.Snap(v, AxisX, 0.15)
		b := p.Snap(v, AxisX, 0.15)
		if a != b {
			t.Fatalf("Snap(%v) not deterministic: %v vs %v", v, a, b)
		}
	}
}

func TestSnapMove(t *testing.T) {
	p := mustPattern(t, 80, "1", "1")
	tests := []struct {
		name string
		in   geom.Rect
		want geom.Rect
	}{
		{"leading edge", geom.NewRect(5, 40, 100, 40), geom.NewRect(0, 40, 100, 40)},
		{"tie goes to leading", geom.NewRect(5, 0, 150, 50), geom.NewRect(0, 0, 150, 50)},
		{"trailing edge nearer", geom.NewRect(7, 0, 150, 50), geom.NewRect(10, 0, 150, 50)},
		{"no snap", geom.NewRect(30, 30, 100, 100), geom.NewRect(30, 30, 100, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.SnapMove(tt.in, 0.15); got != tt.want {
				t.Errorf("SnapMove(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSnapMoveSkipsInactiveLeadingEdge(t *testing.T) {
	p := mustPattern(t, 80, "01", "1")
	// leading edge near x=0 (inactive), trailing edge near x=80 (active)
	got := p.SnapMove(geom.NewRect(3, 0, 75, 10), 0.15)
	if got.X != 5 {
		t.Errorf("X = %v, want 5", got.X)
	}
}

func TestSnapResize(t *testing.T) {
	p := mustPattern(t, 80, "1", "1")
	r := geom.NewRect(0, 0, 100, 100)
	got := p.SnapResize(r, geom.Pt(158, 5), 0.15, 10)
	want := geom.NewRect(0, 0, 160, 10)
	if got != want {
		t.Errorf("SnapResize() = %+v, want %+v", got, want)
	}
}

func TestLines(t *testing.T) {
	p := mustPattern(t, 10, "1", "10")
	got := p.Lines(AxisX, 5, 1, 40)
	want := []float64{5, 15, 25, 35}
	if len(got) != len(want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Lines()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	// offset 5 means index 0 is at 5; only even indices are active on y
	gotY := p.Lines(AxisY, 5, 1, 40)
	if len(gotY) != 2 || gotY[0] != 5 || gotY[1] != 25 {
		t.Errorf("Lines(y) = %v, want [5 25]", gotY)
	}
	if l := p.Lines(AxisX, 0, 0.01, 1000); l != nil {
		t.Errorf("Lines() at tiny zoom = %v, want nil", l)
	}
}
