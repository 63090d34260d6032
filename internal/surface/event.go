package surface

import (
	"time"

	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/viewport"
)

// EventType names a surface notification.
type EventType string

const (
	EventMoveStart     EventType = "move.start"
	EventMove          EventType = "move"
	EventMoveEnd       EventType = "move.end"
	EventResizeStart   EventType = "resize.start"
	EventResize        EventType = "resize"
	EventResizeEnd     EventType = "resize.end"
	EventSelect        EventType = "select"
	EventCenterStart   EventType = "center.start"
	EventCenterEnd     EventType = "center.end"
	EventPanStart      EventType = "pan.start"
	EventPanEnd        EventType = "pan.end"
	EventPinchStart    EventType = "pinch.start"
	EventPinchEnd      EventType = "pinch.end"
	EventFullSizeEnter EventType = "fullsize.enter"
	EventFullSizeExit  EventType = "fullsize.exit"
	EventFocus         EventType = "focus"
	EventStateChange   EventType = "state.change"
)

// Event is one notification to the host.
type Event struct {
	Type EventType `json:"type"`
	// ItemID is set for item gestures, item centering, focus and full size.
	ItemID string `json:"itemId,omitempty"`
	// Rect is the item rect for move and resize events, and the screen
	// selection rect for select.
	Rect *geom.Rect `json:"rect,omitempty"`
	// WorldRect is the selection rect in world space.
	WorldRect *geom.Rect `json:"worldRect,omitempty"`
	Items     []string   `json:"items,omitempty"`
	From      string     `json:"from,omitempty"`
	To        string     `json:"to,omitempty"`
	// Interrupted marks a centering that ended before it settled.
	Interrupted bool `json:"interrupted,omitempty"`
}

// Listener receives notifications. It is called after the surface lock is
// released, so it may call back into the surface.
type Listener func(Event)

// Target is what a pointer went down on.
type Target int

const (
	// TargetSurface is the empty surface. A press that lands on a visible
	// minimap is detected from its position.
	TargetSurface Target = iota
	TargetMinimap
	TargetMoveHandle
	TargetResizeHandle
)

// ButtonLeft is the primary button bit of a button mask.
const ButtonLeft = 1

// PointerEvent is a pointer down, move, up or cancel.
type PointerEvent struct {
	ID      int        `json:"id"`
	Pos     geom.Point `json:"pos"` // screen space, relative to the surface
	Buttons int        `json:"buttons"`
	Ctrl    bool       `json:"ctrl,omitempty"`
	Alt     bool       `json:"alt,omitempty"`
	Target  Target     `json:"target,omitempty"`
	ItemID  string     `json:"itemId,omitempty"`
	Time    time.Time  `json:"-"`
}

// WheelEvent is one wheel tick.
type WheelEvent struct {
	DeltaY      float64            `json:"deltaY"`
	Mode        viewport.DeltaMode `json:"deltaMode"`
	Pos         geom.Point         `json:"pos"`
	OverMinimap bool               `json:"overMinimap,omitempty"`
	Time        time.Time          `json:"-"`
}

// KeyEvent is a key press or release. Key uses DOM key names.
type KeyEvent struct {
	Key  string    `json:"key"`
	Alt  bool      `json:"alt,omitempty"`
	Ctrl bool      `json:"ctrl,omitempty"`
	Time time.Time `json:"-"`
}

const (
	KeyEscape     = "Escape"
	KeyAlt        = "Alt"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)
