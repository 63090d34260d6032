package gesture

import "time"

// Throttle limits a stream of values to one per interval. Values offered
// inside a closed window are held, and only the latest is kept, so the
// final value of a burst is never lost.
type Throttle[T any] struct {
	Interval time.Duration

	last       time.Time
	hasLast    bool
	pending    T
	hasPending bool
}

// Offer passes v through if the window is open, otherwise holds it.
func (t *Throttle[T]) Offer(v T, now time.Time) (T, bool) {
	if t.open(now) {
		t.fire(now)
		var zero T
		t.pending, t.hasPending = zero, false
		return v, true
	}
	t.pending, t.hasPending = v, true
	var zero T
	return zero, false
}

// Due returns the held value once its window has opened.
func (t *Throttle[T]) Due(now time.Time) (T, bool) {
	if !t.hasPending || !t.open(now) {
		var zero T
		return zero, false
	}
	t.fire(now)
	return t.Take()
}

// Take returns the held value regardless of the window.
func (t *Throttle[T]) Take() (T, bool) {
	v, ok := t.pending, t.hasPending
	var zero T
	t.pending, t.hasPending = zero, false
	return v, ok
}

// Pending reports whether a value is held.
func (t *Throttle[T]) Pending() bool {
	return t.hasPending
}

// Allow reports whether an event at now passes, dropping it otherwise. It
// never holds a value.
func (t *Throttle[T]) Allow(now time.Time) bool {
	if !t.open(now) {
		return false
	}
	t.fire(now)
	return true
}

func (t *Throttle[T]) open(now time.Time) bool {
	return !t.hasLast || now.Sub(t.last) >= t.Interval
}

func (t *Throttle[T]) fire(now time.Time) {
	t.last, t.hasLast = now, true
}
