package surface

import (
	"github.com/inamate/inamate/surface-go/internal/anim"
	"github.com/inamate/inamate/surface-go/internal/gesture"
)

// Wheel zooms about the pointer, or about the frame center when the wheel
// turns over the minimap. Wheel ticks are rate limited like pointer moves;
// deltas arriving inside a closed window are summed, and a held delta in
// another unit is applied before the new one.
func (s *Surface) Wheel(ev WheelEvent) {
	s.run(func() {
		s.advance(ev.Time)
		if prev, ok := s.wheel.Take(); ok {
			if prev.Mode == ev.Mode {
				ev.DeltaY += prev.DeltaY
			} else {
				s.applyWheel(prev)
			}
		}
		if v, ok := s.wheel.Offer(ev, ev.Time); ok {
			s.applyWheel(v)
		}
	})
}

func (s *Surface) applyWheel(ev WheelEvent) {
	cur := s.sm.Current()
	if s.sm.Locked() || cur.IsItemGesture() {
		return
	}
	pivot := ev.Pos
	if ev.OverMinimap || s.mm.Hit(ev.Pos, s.vp.Size()) {
		pivot = s.vp.FrameCenter()
	}
	if !s.vp.Wheel(ev.DeltaY, ev.Mode, s.vp.ScreenToWorld(pivot)) {
		s.log.Debug("skipped wheel frame", "deltaY", ev.DeltaY, "zoom", s.vp.Zoom())
		return
	}
	s.markView()

	if cur.IsCentering() {
		s.stopCentering(true)
		cur = gesture.Idle
	}
	if cur == gesture.Idle || cur == gesture.Wheeling {
		d := gesture.ProfileFor(gesture.Wheeling, s.opts.Mobile).Duration
		s.sm.TransitionExpiring(gesture.Wheeling, d, gesture.Idle, s.now)
	}
}

// KeyDown handles Escape, the Alt overlay and Alt+Arrow item cycling.
func (s *Surface) KeyDown(ev KeyEvent) {
	s.run(func() {
		s.advance(ev.Time)
		if s.sm.Is(gesture.FullSize) {
			if ev.Key == KeyEscape {
				s.exitFullSize()
			}
			return
		}

		if (ev.Alt || ev.Key == KeyAlt) && s.sm.IsIdle() {
			s.sm.Push(gesture.Overlay)
		}

		switch ev.Key {
		case KeyEscape:
			if s.centered != "" && s.didCenterLast == centeredView {
				if err := s.centerItem(s.centered, anim.PaddingItem); err == nil {
					return
				}
			}
			s.centerView()

		case KeyArrowRight, KeyArrowLeft:
			if !ev.Alt || !s.cycle.Allow(s.now) {
				return
			}
			diff := 1
			if ev.Key == KeyArrowLeft {
				diff = -1
			}
			s.centerOtherItem(diff)
		}
	})
}

// KeyUp pops the Alt overlay once Alt is released.
func (s *Surface) KeyUp(ev KeyEvent) {
	s.run(func() {
		s.advance(ev.Time)
		if !ev.Alt && s.sm.Is(gesture.Overlay) {
			s.sm.Pop(gesture.Overlay)
		}
	})
}
