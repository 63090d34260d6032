package surface

import (
	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/gesture"
)

func (s *Surface) beginDrag(ev PointerEvent) {
	it, ok := s.reg.Get(ev.ItemID)
	if !ok {
		s.log.Warn("item handle without a registered item, ignoring", "item", ev.ItemID, "pointer", ev.ID)
		return
	}
	if s.drag != nil || s.sm.Current().IsItemGesture() {
		return
	}
	if s.sm.Current().IsCentering() {
		s.stopCentering(true)
	}

	world := s.vp.ScreenToWorld(ev.Pos)
	d := &drag{
		pointerID: ev.ID,
		itemID:    it.ID,
		orig:      it.Rect,
		start:     world,
	}
	if _, err := s.reg.BringToFront(it.ID); err == nil {
		s.markItem(it.ID)
	}

	r := it.Rect
	if ev.Target == TargetMoveHandle {
		d.kind = gesture.ItemMove
		d.grab = it.Rect.Pos().Sub(world)
		s.cursor.Push(gesture.CursorGrabbing)
		s.emit(Event{Type: EventMoveStart, ItemID: it.ID, Rect: &r})
	} else {
		d.kind = gesture.ItemResize
		s.cursor.Push(gesture.CursorNWSEResize)
		s.emit(Event{Type: EventResizeStart, ItemID: it.ID, Rect: &r})
	}
	s.drag = d
	s.sm.Push(d.kind)
}

func (s *Surface) dragMove(ev PointerEvent) {
	d := s.drag
	it, ok := s.reg.Get(d.itemID)
	if !ok {
		return
	}
	world := s.vp.ScreenToWorld(ev.Pos)
	var r geom.Rect
	var typ EventType
	if d.kind == gesture.ItemMove {
		r = it.Rect
		p := world.Add(d.grab)
		r.X, r.Y = p.X, p.Y
		r = s.pattern.SnapMove(r, s.opts.SnapThreshold)
		typ = EventMove
	} else {
		corner := it.Rect.Pos().Add(d.orig.Size()).Add(world.Sub(d.start))
		r = s.pattern.SnapResize(it.Rect, corner, s.opts.SnapThreshold, s.opts.MinItemSize)
		typ = EventResize
	}
	d.moved = true
	s.commitRect(d.itemID, r)
	s.emit(Event{Type: typ, ItemID: d.itemID, Rect: &r})
}

// endDrag re-snaps with a full-cell threshold and pops the item gesture.
// A resize is re-snapped only if it actually moved.
func (s *Surface) endDrag() {
	d := s.drag
	s.drag = nil
	s.sm.Pop(d.kind)
	if d.kind == gesture.ItemMove {
		s.cursor.Pop(gesture.CursorGrabbing)
	} else {
		s.cursor.Pop(gesture.CursorNWSEResize)
	}
	s.finishReleased()

	it, ok := s.reg.Get(d.itemID)
	if !ok {
		return
	}
	r := it.Rect
	typ := EventMoveEnd
	if d.kind == gesture.ItemMove {
		r = s.pattern.SnapMove(r, 1)
	} else {
		typ = EventResizeEnd
		if d.moved {
			r = s.pattern.SnapResize(r, r.Pos().Add(r.Size()), 1, s.opts.MinItemSize)
		}
	}
	s.commitRect(d.itemID, r)
	s.emit(Event{Type: typ, ItemID: d.itemID, Rect: &r})
}

// finishReleased ends the gesture below a popped item gesture when every
// pointer was lifted while the item gesture was on top.
func (s *Surface) finishReleased() {
	if cur := s.sm.Current(); s.pointers.Len() == 0 && cur != gesture.Idle && !s.sm.Locked() {
		s.finishPointers(cur)
	}
}

func (s *Surface) commitRect(id string, r geom.Rect) {
	if err := s.reg.SetRect(id, r, s.now); err != nil {
		s.log.Debug("skipped item rect", "item", id, "error", err)
		return
	}
	s.markItem(id)
}
