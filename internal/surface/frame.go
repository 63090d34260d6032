package surface

import (
	"sort"
	"time"

	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/gesture"
	"github.com/inamate/inamate/surface-go/internal/grid"
	"github.com/inamate/inamate/surface-go/internal/items"
	"github.com/inamate/inamate/surface-go/internal/minimap"
)

// derived holds values computed from the transform and frame size. They are
// recomputed on demand after a mutator clears valid.
type derived struct {
	valid      bool
	css        string
	frameWorld geom.Rect
	gridX      []float64
	gridY      []float64
	lineWidth  float64
}

func (s *Surface) refreshDerived() {
	if s.derived.valid {
		return
	}
	m := s.vp.Matrix()
	size := s.vp.Size()
	s.derived = derived{
		valid:      true,
		css:        m.String(),
		frameWorld: s.vp.FrameRect().Normalize(m),
		gridX:      s.pattern.Lines(grid.AxisX, m[4], m.Zoom(), size.X),
		gridY:      s.pattern.Lines(grid.AxisY, m[5], m.Zoom(), size.Y),
		lineWidth:  grid.LineWidth(m.Zoom()),
	}
}

// Grid is the set of active grid lines crossing the frame, in screen space.
type Grid struct {
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	LineWidth float64   `json:"lineWidth"`
}

// Frame is what a renderer needs after one tick.
type Frame struct {
	Matrix     geom.Matrix2D  `json:"matrix"`
	Transform  string         `json:"transform"`
	Zoom       float64        `json:"zoom"`
	State      gesture.State  `json:"state"`
	Cursor     gesture.Cursor `json:"cursor"`
	Transition string         `json:"transition"`
	// ViewChanged is set when the transform or frame size changed since
	// the previous tick.
	ViewChanged bool `json:"viewChanged"`
	// FrameRect is the visible frame in world space.
	FrameRect geom.Rect  `json:"frameRect"`
	Bounds    *geom.Rect `json:"bounds,omitempty"`
	Grid      Grid       `json:"grid"`
	// Items holds the items whose rect or stacking changed since the
	// previous tick; Removed the ids dropped since then.
	Items     []items.Item        `json:"items,omitempty"`
	Removed   []string            `json:"removed,omitempty"`
	Selection *geom.Rect          `json:"selection,omitempty"`
	Minimap   *minimap.Projection `json:"minimap,omitempty"`
	FullSize  string              `json:"fullSize,omitempty"`
}

// Tick advances the surface to now: it expires transient states, applies
// held pointer moves and wheel ticks, settles the item bounds and steps a
// running centering animation. It returns the resulting frame.
func (s *Surface) Tick(now time.Time) Frame {
	var f Frame
	s.run(func() {
		s.advance(now)
		s.flushMoves(s.now)
		if v, ok := s.wheel.Due(s.now); ok {
			s.applyWheel(v)
		}
		s.reg.Settle(s.now)
		s.frameInitial()
		s.stepCentering()
		f = s.frame()
	})
	return f
}

// Snapshot returns the full current frame, including every item, without
// advancing time or consuming change tracking.
func (s *Surface) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.baseFrame()
	f.ViewChanged = true
	f.Items = s.reg.All()
	return f
}

func (s *Surface) baseFrame() Frame {
	s.refreshDerived()
	m := s.vp.Matrix()
	f := Frame{
		Matrix:     m,
		Transform:  s.derived.css,
		Zoom:       m.Zoom(),
		State:      s.sm.Current(),
		Cursor:     s.cursor.Current(),
		Transition: gesture.ProfileFor(s.sm.Current(), s.opts.Mobile).CSS(),
		FrameRect:  s.derived.frameWorld,
		Grid: Grid{
			X:         s.derived.gridX,
			Y:         s.derived.gridY,
			LineWidth: s.derived.lineWidth,
		},
		FullSize: s.fullSizeItem,
	}
	if b, ok := s.reg.Bounds(s.now); ok {
		f.Bounds = &b
	}
	if s.selecting {
		r := s.selection.Rect()
		f.Selection = &r
	}
	if size := s.vp.Size(); size.X > 0 && size.Y > 0 {
		p := s.mm.Project(size, m, s.reg.All())
		f.Minimap = &p
	}
	return f
}

func (s *Surface) frame() Frame {
	f := s.baseFrame()
	f.ViewChanged = s.viewDirty
	s.viewDirty = false

	if len(s.dirtyItems) > 0 {
		for _, it := range s.reg.All() {
			if _, ok := s.dirtyItems[it.ID]; ok {
				f.Items = append(f.Items, it)
			}
		}
		clear(s.dirtyItems)
	}
	if len(s.removed) > 0 {
		for id := range s.removed {
			f.Removed = append(f.Removed, id)
		}
		sort.Strings(f.Removed)
		clear(s.removed)
	}
	return f
}
