package surface

import (
	"time"

	"github.com/inamate/inamate/surface-go/internal/gesture"
)

// PointerDown opens a pointer session. Only presses of the primary button
// count.
func (s *Surface) PointerDown(ev PointerEvent) {
	s.run(func() {
		s.advance(ev.Time)
		if ev.Buttons&ButtonLeft == 0 || s.sm.Locked() {
			return
		}
		switch ev.Target {
		case TargetMoveHandle, TargetResizeHandle:
			s.beginDrag(ev)
			return
		}

		if s.sm.Current().IsCentering() {
			s.stopCentering(true)
			s.sm.Transition(gesture.Idle)
		}

		switch s.pointers.Down(ev.ID, ev.Pos) {
		case 1:
			switch {
			case ev.Ctrl:
				s.selecting = true
				s.selection = gesture.Selection{Start: ev.Pos, Current: ev.Pos}
				s.sm.Transition(gesture.Selecting)
			case ev.Target == TargetMinimap || s.mm.Hit(ev.Pos, s.vp.Size()):
				s.sm.Transition(gesture.MinimapPanning)
			default:
				s.beginPan()
			}
		case 2:
			s.beginPinch()
		}
	})
}

func (s *Surface) beginPan() {
	s.sm.Transition(gesture.Panning)
	if s.cursor.IsIdle() {
		s.cursor.Push(gesture.CursorGrabbing)
	}
	s.emit(Event{Type: EventPanStart})
}

func (s *Surface) beginPinch() {
	if s.sm.Is(gesture.Panning) {
		s.emit(Event{Type: EventPanEnd})
	}
	s.selecting = false
	s.sm.TransitionExpiring(gesture.Pinching, s.opts.PinchExpiry, gesture.Panning, s.now)
	s.pinch.Reset()
	if a, b, ok := s.pointers.Pair(); ok && s.pinch.Begin(a, b, s.vp.Matrix()) {
		s.pinchGap = s.pinch.StartDistance
	}
	s.emit(Event{Type: EventPinchStart})
}

// PointerMove updates a pointer session. Moves are rate limited per
// pointer; the latest move of a window is applied when the window opens,
// at the next Tick, or before the pointer's release.
func (s *Surface) PointerMove(ev PointerEvent) {
	s.run(func() {
		s.advance(ev.Time)
		th, ok := s.moves[ev.ID]
		if !ok {
			th = &gesture.Throttle[PointerEvent]{Interval: s.opts.MoveThrottle}
			s.moves[ev.ID] = th
		}
		if v, ok := th.Offer(ev, ev.Time); ok {
			s.applyMove(v)
		}
	})
}

func (s *Surface) flushMoves(now time.Time) {
	for _, id := range sortedIDs(s.moves) {
		if v, ok := s.moves[id].Due(now); ok {
			s.applyMove(v)
		}
	}
}

func (s *Surface) applyMove(ev PointerEvent) {
	if d := s.drag; d != nil && d.pointerID == ev.ID {
		s.dragMove(ev)
		return
	}
	if !s.pointers.Has(ev.ID) {
		s.mm.SetHovered(!s.mm.AllVisible() && s.mm.Bounds(s.vp.Size()).Contains(ev.Pos))
		return
	}
	prev, _ := s.pointers.Move(ev.ID, ev.Pos)

	switch s.sm.Current() {
	case gesture.Panning:
		if s.pointers.Len() >= 2 {
			s.beginPinch()
			return
		}
		if s.vp.Pan(ev.Pos.Sub(prev)) {
			s.markView()
		}

	case gesture.MinimapPanning:
		bounds, ok := s.reg.Bounds(s.now)
		if !ok {
			return
		}
		if s.vp.PanWorld(s.mm.PanDelta(ev.Pos.Sub(prev), bounds, s.vp.Size())) {
			s.markView()
		}

	case gesture.Pinching:
		s.pinchMove()

	case gesture.Selecting:
		if s.selecting {
			s.selection.Current = ev.Pos
		}
	}
}

func (s *Surface) pinchMove() {
	a, b, ok := s.pointers.Pair()
	if !ok {
		return
	}
	if !s.pinch.Active() {
		if s.pinch.Begin(a, b, s.vp.Matrix()) {
			s.pinchGap = s.pinch.StartDistance
		}
		return
	}
	m, ok := s.pinch.Transform(a, b, s.opts.MinZoom, s.opts.MaxZoom)
	if !ok {
		s.log.Debug("skipped degenerate pinch frame")
		return
	}
	if gap := a.Distance(b); gap != s.pinchGap {
		s.pinchGap = gap
		s.sm.Refresh(s.opts.PinchExpiry, s.now)
	}
	s.setMatrix(m)
}

// PointerUp closes a pointer session.
func (s *Surface) PointerUp(ev PointerEvent) {
	s.run(func() {
		s.release(ev, false)
	})
}

// PointerCancel closes a pointer session that the platform aborted. Once
// no pointer remains the surface returns to Idle even while centering.
func (s *Surface) PointerCancel(ev PointerEvent) {
	s.run(func() {
		s.release(ev, true)
	})
}

func (s *Surface) release(ev PointerEvent, cancel bool) {
	s.advance(ev.Time)
	if th, ok := s.moves[ev.ID]; ok {
		if v, ok := th.Take(); ok {
			s.applyMove(v)
		}
		delete(s.moves, ev.ID)
	}

	if d := s.drag; d != nil && d.pointerID == ev.ID {
		s.endDrag()
		return
	}
	if !s.pointers.Has(ev.ID) {
		return
	}
	n := s.pointers.Up(ev.ID)

	cur := s.sm.Current()
	if cur.IsCentering() && !cancel {
		return
	}
	if cur.IsItemGesture() || s.sm.Locked() {
		return
	}

	switch n {
	case 0:
		s.finishPointers(cur)

	case 1:
		if cur == gesture.Pinching {
			s.emit(Event{Type: EventPinchEnd})
			s.pinch.Reset()
			s.beginPan()
		}
	}
}

// finishPointers ends the gesture in cur once the last pointer is up.
func (s *Surface) finishPointers(cur gesture.State) {
	s.cursor.ReturnToIdle()
	switch cur {
	case gesture.Selecting:
		s.finishSelection()
	case gesture.Panning:
		s.emit(Event{Type: EventPanEnd})
	case gesture.Pinching:
		s.emit(Event{Type: EventPinchEnd})
	case gesture.CenteringItem, gesture.CenteringView:
		s.stopCentering(true)
	}
	s.pinch.Reset()
	if cur != gesture.Overlay {
		s.sm.Transition(gesture.Idle)
	}
}

func (s *Surface) finishSelection() {
	if !s.selecting {
		return
	}
	s.selecting = false
	r := s.selection.Rect()
	world := r.Normalize(s.vp.Matrix())
	s.emit(Event{
		Type:      EventSelect,
		Rect:      &r,
		WorldRect: &world,
		Items:     s.reg.Intersecting(world),
	})
}
