// Package gesture holds the interaction state of a surface: the state
// stack, the live pointer sessions, pinch baselines and rate limiting of
// high-frequency input.
package gesture

import (
	"fmt"
	"time"
)

// State is one interaction state of a surface.
type State int

const (
	Idle State = iota
	Overlay
	Panning
	Pinching
	Selecting
	ItemMove
	ItemResize
	MinimapPanning
	Wheeling
	CenteringItem
	CenteringView
	FullSize
)

var stateNames = [...]string{
	Idle:           "idle",
	Overlay:        "overlay",
	Panning:        "panning",
	Pinching:       "pinching",
	Selecting:      "selecting",
	ItemMove:       "itemmove",
	ItemResize:     "itemresize",
	MinimapPanning: "minimappanning",
	Wheeling:       "wheeling",
	CenteringItem:  "centeringitem",
	CenteringView:  "centeringview",
	FullSize:       "fullsize",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsCentering reports whether s animates toward a centering target.
func (s State) IsCentering() bool {
	return s == CenteringItem || s == CenteringView
}

// IsItemGesture reports whether s manipulates an item rather than the view.
func (s State) IsItemGesture() bool {
	return s == ItemMove || s == ItemResize
}

// Change describes one change of the current state.
type Change struct {
	From State
	To   State
}

type expiry struct {
	state    State
	at       time.Time
	fallback State
}

// Machine is a stack of states. The bottom entry is the base navigation
// state; modifier states such as Overlay or an item gesture are pushed on
// top and popped back off. While locked, every request is ignored until
// Unlock.
type Machine struct {
	stack    []State
	locked   bool
	expire   *expiry
	onChange func(Change)
}

// NewMachine returns a machine in Idle. onChange, if not nil, is called
// after every change of the current state.
func NewMachine(onChange func(Change)) *Machine {
	return &Machine{stack: []State{Idle}, onChange: onChange}
}

// Current returns the top of the stack.
func (m *Machine) Current() State {
	return m.stack[len(m.stack)-1]
}

// Is reports whether s is the current state.
func (m *Machine) Is(s State) bool {
	return m.Current() == s
}

// IsIdle reports whether nothing is going on.
func (m *Machine) IsIdle() bool {
	return m.Is(Idle)
}

// Depth returns the number of stacked states.
func (m *Machine) Depth() int {
	return len(m.stack)
}

// Locked reports whether the machine is locked.
func (m *Machine) Locked() bool {
	return m.locked
}

// Transition replaces the whole stack with to and drops any pending expiry.
func (m *Machine) Transition(to State) bool {
	if m.locked {
		return false
	}
	from := m.Current()
	m.stack = append(m.stack[:0], to)
	m.expire = nil
	m.changed(from)
	return true
}

// TransitionExpiring transitions to s and arranges for it to revert to
// fallback once d has passed without a Refresh.
func (m *Machine) TransitionExpiring(s State, d time.Duration, fallback State, now time.Time) bool {
	if !m.Transition(s) {
		return false
	}
	m.expire = &expiry{state: s, at: now.Add(d), fallback: fallback}
	return true
}

// Refresh pushes the expiry of the current state d into the future.
func (m *Machine) Refresh(d time.Duration, now time.Time) {
	if m.expire != nil && m.expire.state == m.Current() {
		m.expire.at = now.Add(d)
	}
}

// Expire reverts an expiring state whose deadline has passed. It reports
// the change if one happened.
func (m *Machine) Expire(now time.Time) (Change, bool) {
	e := m.expire
	if e == nil || now.Before(e.at) {
		return Change{}, false
	}
	m.expire = nil
	if m.Current() != e.state || m.locked {
		return Change{}, false
	}
	from := m.Current()
	m.Transition(e.fallback)
	return Change{From: from, To: e.fallback}, true
}

// Push stacks s above the current state.
func (m *Machine) Push(s State) bool {
	if m.locked {
		return false
	}
	from := m.Current()
	m.stack = append(m.stack, s)
	m.changed(from)
	return true
}

// Pop removes s if it is the current state. The base state is never
// popped; popping it returns the machine to Idle.
func (m *Machine) Pop(s State) bool {
	if m.locked || m.Current() != s {
		return false
	}
	from := m.Current()
	if len(m.stack) == 1 {
		m.stack[0] = Idle
	} else {
		m.stack = m.stack[:len(m.stack)-1]
	}
	m.changed(from)
	return true
}

// Contains reports whether s is anywhere on the stack.
func (m *Machine) Contains(s State) bool {
	for _, st := range m.stack {
		if st == s {
			return true
		}
	}
	return false
}

// Lock transitions to s and ignores every request until Unlock.
func (m *Machine) Lock(s State) {
	m.locked = false
	m.Transition(s)
	m.locked = true
}

// Unlock releases the lock and returns to Idle.
func (m *Machine) Unlock() {
	if !m.locked {
		return
	}
	m.locked = false
	m.Transition(Idle)
}

func (m *Machine) changed(from State) {
	if to := m.Current(); from != to && m.onChange != nil {
		m.onChange(Change{From: from, To: to})
	}
}
