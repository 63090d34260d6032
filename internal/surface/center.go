package surface

import (
	"fmt"

	"github.com/inamate/inamate/surface-go/internal/anim"
	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/gesture"
	"github.com/inamate/inamate/surface-go/internal/grid"
	"github.com/inamate/inamate/surface-go/internal/items"
)

// CenterRect animates the view to frame a world rect.
func (s *Surface) CenterRect(r geom.Rect) {
	s.run(func() {
		if s.startCentering(gesture.CenteringView, "", s.frameTransform(r, anim.PaddingRect)) {
			s.didCenterLast = centeredView
		}
	})
}

// CenterItem animates the view to frame one item.
func (s *Surface) CenterItem(id string) error {
	var err error
	s.run(func() {
		err = s.centerItem(id, anim.PaddingItem)
	})
	return err
}

func (s *Surface) centerItem(id string, paddingPct float64) error {
	it, ok := s.reg.Get(id)
	if !ok {
		return fmt.Errorf("center item: %w: %s", items.ErrUnknownItem, id)
	}
	if s.startCentering(gesture.CenteringItem, id, s.frameTransform(it.Rect, paddingPct)) {
		s.centered = id
		s.didCenterLast = centeredItem
	}
	return nil
}

// CenterOtherItem centers the item diff steps away from the centered one,
// in x-then-y order, wrapping around at both ends. Path items are skipped.
// It returns the id of the newly centered item.
func (s *Surface) CenterOtherItem(diff int) (string, bool) {
	var id string
	s.run(func() {
		id = s.centerOtherItem(diff)
	})
	return id, id != ""
}

func (s *Surface) centerOtherItem(diff int) string {
	sorted := s.reg.Sorted()
	if len(sorted) == 0 {
		return ""
	}
	index := -1
	for i, it := range sorted {
		if it.ID == s.centered {
			index = i
			break
		}
	}
	if index == -1 && diff < 0 {
		index = 0
	}
	next := sorted[grid.ModWrap(index+diff, len(sorted))]
	if err := s.centerItem(next.ID, anim.PaddingOtherItem); err != nil || !s.sm.Is(gesture.CenteringItem) {
		return ""
	}
	return next.ID
}

// CenterView animates the view to frame every item.
func (s *Surface) CenterView() {
	s.run(s.centerView)
}

func (s *Surface) centerView() {
	bounds, ok := s.reg.Bounds(s.now)
	if !ok {
		return
	}
	if s.startCentering(gesture.CenteringView, "", s.frameTransform(bounds, anim.PaddingView)) {
		s.cursor.ReturnToIdle()
		s.didCenterLast = centeredView
	}
}

// startCentering reports whether the animation started.
func (s *Surface) startCentering(state gesture.State, itemID string, target geom.Matrix2D) bool {
	if s.sm.Locked() || s.sm.Current().IsItemGesture() {
		return false
	}
	if !target.IsFinite() {
		s.log.Debug("skipped degenerate centering target", "matrix", target.String())
		return false
	}
	if s.sm.Current().IsCentering() {
		s.stopCentering(true)
	}
	s.selecting = false
	s.sm.Transition(state)
	s.anim.Start(target)
	s.emit(Event{Type: EventCenterStart, ItemID: itemID})
	return true
}

// stopCentering ends the running animation, leaving the transform where it
// is unless the animation settled.
func (s *Surface) stopCentering(interrupted bool) {
	if !s.anim.Active() && interrupted {
		return
	}
	s.anim.Stop()
	id := ""
	if s.sm.Is(gesture.CenteringItem) {
		id = s.centered
	}
	s.emit(Event{Type: EventCenterEnd, ItemID: id, Interrupted: interrupted})
}

// stepCentering advances the animation one frame.
func (s *Surface) stepCentering() {
	if !s.sm.Current().IsCentering() || !s.anim.Active() {
		return
	}
	m, done := s.anim.Step(s.vp.Matrix())
	s.setMatrix(m)
	if done {
		s.stopCentering(false)
		s.sm.Transition(gesture.Idle)
	}
}

// Focus records an item as the centered item without moving the view.
func (s *Surface) Focus(id string) {
	s.run(func() {
		if _, ok := s.reg.Get(id); !ok {
			s.log.Warn("focus on unknown item", "item", id)
			return
		}
		s.centered = id
		s.emit(Event{Type: EventFocus, ItemID: id})
	})
}

// DoubleClick centers the item under a move handle, or the whole view.
func (s *Surface) DoubleClick(target Target, itemID string) {
	s.run(func() {
		if s.sm.Locked() {
			return
		}
		if target == TargetMoveHandle {
			if err := s.centerItem(itemID, anim.PaddingItem); err == nil {
				return
			}
			s.log.Warn("double click on unknown item", "item", itemID)
			return
		}
		s.centerView()
	})
}

// MakeFullSize locks the surface in FullSize with one item shown by the
// host at full size. Every other gesture is ignored until Escape or
// ExitFullSize.
func (s *Surface) MakeFullSize(id string) error {
	var err error
	s.run(func() {
		if _, ok := s.reg.Get(id); !ok {
			err = fmt.Errorf("make full size: %w: %s", items.ErrUnknownItem, id)
			return
		}
		if s.sm.Locked() {
			s.exitFullSize()
		}
		if s.sm.Current().IsCentering() {
			s.stopCentering(true)
		}
		if s.drag != nil {
			s.endDrag()
		}
		s.pointers.Clear()
		s.selecting = false
		s.fullSizeItem = id
		s.sm.Lock(gesture.FullSize)
		s.emit(Event{Type: EventFullSizeEnter, ItemID: id})
	})
	return err
}

// ExitFullSize leaves FullSize. It reports whether the surface was in it.
func (s *Surface) ExitFullSize() bool {
	var ok bool
	s.run(func() {
		ok = s.exitFullSize()
	})
	return ok
}

func (s *Surface) exitFullSize() bool {
	if !s.sm.Is(gesture.FullSize) {
		return false
	}
	id := s.fullSizeItem
	s.fullSizeItem = ""
	s.sm.Unlock()
	s.emit(Event{Type: EventFullSizeExit, ItemID: id})
	return true
}
