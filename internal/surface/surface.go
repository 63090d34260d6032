// Package surface composes the viewport, grid, item registry, gesture state
// and centering animation into one interactive surface. Hosts feed it input
// events and read back a Frame on every animation tick.
package surface

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/inamate/inamate/surface-go/internal/anim"
	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/gesture"
	"github.com/inamate/inamate/surface-go/internal/grid"
	"github.com/inamate/inamate/surface-go/internal/items"
	"github.com/inamate/inamate/surface-go/internal/minimap"
	"github.com/inamate/inamate/surface-go/internal/viewport"
)

type centerKind int

const (
	centeredView centerKind = iota
	centeredItem
)

// drag is an item move or resize in progress.
type drag struct {
	kind      gesture.State
	pointerID int
	itemID    string
	grab      geom.Point // move: rect origin minus pointer, world space
	start     geom.Point // resize: pointer at press, world space
	orig      geom.Rect
	moved     bool
}

// Surface is one interactive surface. All methods are safe for concurrent
// use; every input handler runs as one step under the surface lock.
type Surface struct {
	mu sync.Mutex

	opts     Options
	log      *slog.Logger
	listener Listener
	events   []Event

	vp       *viewport.Viewport
	pattern  grid.Pattern
	reg      *items.Registry
	sm       *gesture.Machine
	cursor   gesture.CursorStack
	pointers *gesture.Pointers
	moves    map[int]*gesture.Throttle[PointerEvent]
	wheel    gesture.Throttle[WheelEvent]
	cycle    gesture.Throttle[struct{}]
	pinch    gesture.Pinch
	pinchGap float64
	anim     *anim.Animator
	mm       *minimap.Minimap

	selecting bool
	selection gesture.Selection
	drag      *drag

	centered      string
	didCenterLast centerKind
	fullSizeItem  string
	framed        bool

	now        time.Time
	viewDirty  bool
	derived    derived
	dirtyItems map[string]struct{}
	removed    map[string]struct{}
}

// New creates a surface.
func New(opts Options, fns ...Option) (*Surface, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	vp, err := viewport.New(opts.MinZoom, opts.MaxZoom)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	pattern, err := grid.NewPattern(opts.CellSize, opts.XPattern, opts.YPattern)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}

	s := &Surface{
		opts:          opts,
		log:           slog.Default(),
		vp:            vp,
		pattern:       pattern,
		reg:           items.NewRegistry(opts.BoundsDebounce),
		pointers:      gesture.NewPointers(),
		moves:         make(map[int]*gesture.Throttle[PointerEvent]),
		anim:          anim.NewAnimator(opts.Damping, opts.SettleEpsilon),
		mm:            minimap.New(opts.Minimap),
		didCenterLast: centeredView,
		viewDirty:     true,
		dirtyItems:    make(map[string]struct{}),
		removed:       make(map[string]struct{}),
	}
	s.wheel.Interval = opts.MoveThrottle
	s.cycle.Interval = opts.CycleThrottle
	s.sm = gesture.NewMachine(s.stateChanged)
	for _, fn := range fns {
		fn(s)
	}
	return s, nil
}

// run executes fn under the lock and then delivers the events it queued.
func (s *Surface) run(fn func()) {
	s.mu.Lock()
	fn()
	evs := s.events
	s.events = nil
	s.mu.Unlock()

	if s.listener == nil {
		return
	}
	for _, ev := range evs {
		s.listener(ev)
	}
}

func (s *Surface) emit(ev Event) {
	s.events = append(s.events, ev)
}

func (s *Surface) stateChanged(c gesture.Change) {
	s.log.Debug("surface state", "from", c.From, "to", c.To)
	s.emit(Event{Type: EventStateChange, From: c.From.String(), To: c.To.String()})
}

// advance moves the surface clock and reverts expired transient states.
func (s *Surface) advance(now time.Time) {
	if now.After(s.now) {
		s.now = now
	}
	c, ok := s.sm.Expire(s.now)
	if !ok {
		return
	}
	if c.From == gesture.Pinching {
		s.pinch.Reset()
		s.emit(Event{Type: EventPinchEnd})
		if s.pointers.Len() > 0 {
			s.emit(Event{Type: EventPanStart})
		}
	}
}

func (s *Surface) setMatrix(m geom.Matrix2D) bool {
	if !s.vp.SetMatrix(m) {
		s.log.Debug("skipped degenerate transform", "matrix", m.String())
		return false
	}
	s.markView()
	return true
}

func (s *Surface) markView() {
	s.viewDirty = true
	s.derived.valid = false
}

func (s *Surface) markItem(id string) {
	s.dirtyItems[id] = struct{}{}
}

// --- Accessors ---

// State returns the current gesture state.
func (s *Surface) State() gesture.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sm.Current()
}

// Matrix returns the live world→screen transform.
func (s *Surface) Matrix() geom.Matrix2D {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vp.Matrix()
}

// ScreenToWorld maps a screen point through the live transform.
func (s *Surface) ScreenToWorld(p geom.Point) geom.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vp.ScreenToWorld(p)
}

// Cursor returns the cursor the host should show.
func (s *Surface) Cursor() gesture.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Current()
}

// CenteredItem returns the item last centered or focused.
func (s *Surface) CenteredItem() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.centered
}

// Item returns a registered item.
func (s *Surface) Item(id string) (items.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Get(id)
}

// Items returns every registered item in registration order.
func (s *Surface) Items() []items.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.All()
}

// Placements returns the persisted form of every item.
func (s *Surface) Placements() []items.Placement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Placements()
}

// --- Items ---

// AddItem registers an item.
func (s *Surface) AddItem(it items.Item) error {
	var err error
	s.run(func() {
		if err = s.reg.Add(it, s.now); err == nil {
			s.markItem(it.ID)
			s.frameInitial()
		}
	})
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	return nil
}

// AddPlacement registers an item from its persisted placement. A placement
// with a missing field is rejected.
func (s *Surface) AddPlacement(p items.Placement) error {
	var err error
	s.run(func() {
		var it items.Item
		if it, err = s.reg.AddPlacement(p, s.now); err == nil {
			s.markItem(it.ID)
			s.frameInitial()
		}
	})
	if err != nil {
		return fmt.Errorf("add placement: %w", err)
	}
	return nil
}

// RemoveItem unregisters an item. Gestures and memory referring to it are
// dropped.
func (s *Surface) RemoveItem(id string) bool {
	var ok bool
	s.run(func() {
		if ok = s.reg.Remove(id, s.now); !ok {
			return
		}
		delete(s.dirtyItems, id)
		s.removed[id] = struct{}{}
		if s.centered == id {
			s.centered = ""
		}
		if s.drag != nil && s.drag.itemID == id {
			s.sm.Pop(s.drag.kind)
			s.cursor.ReturnToIdle()
			s.drag = nil
			s.finishReleased()
		}
		if s.fullSizeItem == id {
			s.exitFullSize()
		}
	})
	return ok
}

// SetItemRect replaces an item's rect from the host side.
func (s *Surface) SetItemRect(id string, r geom.Rect) error {
	var err error
	s.run(func() {
		if err = s.reg.SetRect(id, r, s.now); err == nil {
			s.markItem(id)
		}
	})
	if err != nil {
		return fmt.Errorf("set item rect: %w", err)
	}
	return nil
}

// Resize records the size of the visible frame in screen pixels.
func (s *Surface) Resize(size geom.Point) {
	s.run(func() {
		if size.X < 0 || size.Y < 0 || !size.IsFinite() {
			s.log.Warn("ignored invalid surface size", "width", size.X, "height", size.Y)
			return
		}
		s.vp.Resize(size)
		s.markView()
		s.frameInitial()
	})
}

// frameInitial shows a wide view of all items the first time both a frame
// size and items are known. The transform is set without animating.
func (s *Surface) frameInitial() {
	if s.framed {
		return
	}
	size := s.vp.Size()
	if size.X == 0 || size.Y == 0 {
		return
	}
	bounds, ok := s.reg.Bounds(s.now)
	if !ok {
		return
	}
	s.framed = true
	s.setMatrix(s.frameTransform(bounds, anim.PaddingInitial))
}

func (s *Surface) frameTransform(r geom.Rect, paddingPct float64) geom.Matrix2D {
	upper := min(s.opts.CenterMaxZoom, s.opts.MaxZoom)
	return anim.FrameTransform(r, s.vp.Size(), paddingPct, s.opts.MinZoom, upper)
}

func sortedIDs[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
