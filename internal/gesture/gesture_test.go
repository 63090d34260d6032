package gesture

import (
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/inamate/inamate/surface-go/internal/geom"
)

var t0 = time.Unix(1700000000, 0)

func TestMachinePushPop(t *testing.T) {
	var changes []Change
	m := NewMachine(func(c Change) { changes = append(changes, c) })

	m.Push(Overlay)
	if !m.Is(Overlay) || m.Depth() != 2 {
		t.Fatalf("after push: current %v depth %d", m.Current(), m.Depth())
	}
	if m.Pop(Panning) {
		t.Error("Pop of a state that is not on top succeeded")
	}
	m.Pop(Overlay)
	if !m.IsIdle() {
		t.Errorf("after pop: current %v, want idle", m.Current())
	}
	if len(changes) != 2 || changes[0] != (Change{Idle, Overlay}) || changes[1] != (Change{Overlay, Idle}) {
		t.Errorf("changes = %v", changes)
	}
}

func TestMachineTransitionReplacesStack(t *testing.T) {
	m := NewMachine(nil)
	m.Push(Overlay)
	m.Transition(Panning)
	if m.Depth() != 1 || !m.Is(Panning) {
		t.Errorf("depth %d current %v, want 1 panning", m.Depth(), m.Current())
	}
	m.Pop(Panning)
	if !m.IsIdle() {
		t.Errorf("popping the base state left %v", m.Current())
	}
}

func TestMachineExpire(t *testing.T) {
	m := NewMachine(nil)
	m.TransitionExpiring(Pinching, 200*time.Millisecond, Panning, t0)

	if _, ok := m.Expire(t0.Add(150 * time.Millisecond)); ok {
		t.Fatal("expired early")
	}
	m.Refresh(200*time.Millisecond, t0.Add(150*time.Millisecond))
	if _, ok := m.Expire(t0.Add(300 * time.Millisecond)); ok {
		t.Fatal("refresh did not extend the deadline")
	}
	c, ok := m.Expire(t0.Add(350 * time.Millisecond))
	if !ok || c != (Change{Pinching, Panning}) {
		t.Fatalf("Expire = %v, %v", c, ok)
	}

	// A transition away cancels the expiry.
	m.TransitionExpiring(Wheeling, 10*time.Millisecond, Idle, t0)
	m.Transition(Panning)
	if _, ok := m.Expire(t0.Add(time.Second)); ok || !m.Is(Panning) {
		t.Errorf("stale expiry fired, state %v", m.Current())
	}
}

func TestMachineLock(t *testing.T) {
	m := NewMachine(nil)
	m.Lock(FullSize)
	if m.Transition(Panning) || m.Push(Overlay) || m.Pop(FullSize) {
		t.Error("locked machine accepted a change")
	}
	if !m.Is(FullSize) {
		t.Fatalf("current %v, want fullsize", m.Current())
	}
	m.Unlock()
	if !m.IsIdle() || m.Locked() {
		t.Errorf("after unlock: %v locked=%v", m.Current(), m.Locked())
	}
}

func TestStateString(t *testing.T) {
	if CenteringItem.String() != "centeringitem" {
		t.Errorf("String = %q", CenteringItem.String())
	}
	if State(99).String() != "State(99)" {
		t.Errorf("String = %q", State(99).String())
	}
}

func TestPointers(t *testing.T) {
	p := NewPointers()
	if n := p.Down(7, geom.Pt(0, 0)); n != 1 {
		t.Fatalf("Down = %d", n)
	}
	if n := p.Down(3, geom.Pt(10, 0)); n != 2 {
		t.Fatalf("Down = %d", n)
	}
	if n := p.Down(3, geom.Pt(20, 0)); n != 2 {
		t.Errorf("repeated Down changed count to %d", n)
	}
	a, b, ok := p.Pair()
	if !ok || a != geom.Pt(0, 0) || b != geom.Pt(20, 0) {
		t.Errorf("Pair = %v %v %v", a, b, ok)
	}
	prev, ok := p.Move(7, geom.Pt(5, 5))
	if !ok || prev != geom.Pt(0, 0) {
		t.Errorf("Move prev = %v %v", prev, ok)
	}
	if _, ok := p.Move(42, geom.Pt(1, 1)); ok {
		t.Error("Move of unknown pointer succeeded")
	}
	if n := p.Up(7); n != 1 {
		t.Errorf("Up = %d", n)
	}
	if n := p.Up(7); n != 1 {
		t.Errorf("second Up = %d", n)
	}
}

func TestThrottleLastWins(t *testing.T) {
	th := Throttle[int]{Interval: 16 * time.Millisecond}

	if v, ok := th.Offer(1, t0); !ok || v != 1 {
		t.Fatalf("first Offer = %d %v", v, ok)
	}
	for i, v := range []int{2, 3, 4} {
		if _, ok := th.Offer(v, t0.Add(time.Duration(i+1)*time.Millisecond)); ok {
			t.Fatalf("Offer %d passed inside window", v)
		}
	}
	if _, ok := th.Due(t0.Add(10 * time.Millisecond)); ok {
		t.Fatal("Due before window opened")
	}
	v, ok := th.Due(t0.Add(16 * time.Millisecond))
	if !ok || v != 4 {
		t.Errorf("Due = %d %v, want 4 true", v, ok)
	}
	if th.Pending() {
		t.Error("value still pending after Due")
	}
}

func TestThrottleAllow(t *testing.T) {
	th := Throttle[struct{}]{Interval: 50 * time.Millisecond}
	if !th.Allow(t0) {
		t.Fatal("first Allow dropped")
	}
	if th.Allow(t0.Add(49 * time.Millisecond)) {
		t.Error("Allow inside window passed")
	}
	if !th.Allow(t0.Add(50 * time.Millisecond)) {
		t.Error("Allow after window dropped")
	}
}

func TestPinchDoublingDoublesZoom(t *testing.T) {
	tests := []struct {
		name  string
		start geom.Matrix2D
		a, b  geom.Point
	}{
		{"identity centered", geom.Identity(), geom.Pt(100, 100), geom.Pt(200, 100)},
		{"offset pivot", geom.ScaleTranslate(0.4, -250, 90), geom.Pt(10, 500), geom.Pt(10, 560)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Pinch
			if !p.Begin(tt.a, tt.b, tt.start) {
				t.Fatal("Begin failed")
			}
			mid := tt.a.Mid(tt.b)
			// Spread both pointers symmetrically to twice the distance.
			a2 := mid.Add(tt.a.Sub(mid).Scale(2))
			b2 := mid.Add(tt.b.Sub(mid).Scale(2))
			m, ok := p.Transform(a2, b2, 0.01, 100)
			if !ok {
				t.Fatal("Transform rejected frame")
			}
			if !scalar.EqualWithinAbs(m.Zoom(), 2*tt.start.Zoom(), 1e-9) {
				t.Errorf("zoom = %v, want %v", m.Zoom(), 2*tt.start.Zoom())
			}
			// The pivot stays under the midpoint.
			got := m.TransformPoint(p.PivotWorld)
			if !scalar.EqualWithinAbs(got.X, mid.X, 1e-9) || !scalar.EqualWithinAbs(got.Y, mid.Y, 1e-9) {
				t.Errorf("pivot maps to %v, want %v", got, mid)
			}
		})
	}
}

func TestPinchClampAndDegenerate(t *testing.T) {
	var p Pinch
	if p.Begin(geom.Pt(5, 5), geom.Pt(5, 5), geom.Identity()) {
		t.Error("Begin accepted zero distance")
	}
	p.Begin(geom.Pt(0, 0), geom.Pt(10, 0), geom.Identity())
	m, ok := p.Transform(geom.Pt(0, 0), geom.Pt(1000, 0), 0.05, 1.25)
	if !ok || m.Zoom() != 1.25 {
		t.Errorf("zoom = %v %v, want clamped 1.25", m.Zoom(), ok)
	}
	if _, ok := p.Transform(geom.Pt(3, 3), geom.Pt(3, 3), 0.05, 1.25); ok {
		t.Error("Transform accepted zero distance")
	}
}

func TestProfileFor(t *testing.T) {
	if got := ProfileFor(Wheeling, false).Duration; got != 185*time.Millisecond {
		t.Errorf("desktop wheeling = %v", got)
	}
	if got := ProfileFor(Wheeling, true).Duration; got != 500*time.Millisecond {
		t.Errorf("mobile wheeling = %v", got)
	}
	if got := ProfileFor(ItemMove, false).Duration; got != 0 {
		t.Errorf("item move = %v, want idle profile", got)
	}
}

func TestCursorStack(t *testing.T) {
	var c CursorStack
	c.Push(CursorGrabbing)
	c.Push(CursorNWSEResize)
	c.Pop(CursorGrabbing)
	if c.Current() != CursorNWSEResize {
		t.Errorf("Pop of non-top cursor changed current to %v", c.Current())
	}
	c.ReturnToIdle()
	if !c.IsIdle() {
		t.Errorf("current %v after ReturnToIdle", c.Current())
	}
}
