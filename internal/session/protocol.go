package session

import (
	"encoding/json"

	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/surface"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client to server
	TypePointerDown   = "pointer.down"
	TypePointerMove   = "pointer.move"
	TypePointerUp     = "pointer.up"
	TypePointerCancel = "pointer.cancel"
	TypeWheel         = "wheel"
	TypeKeyDown       = "key.down"
	TypeKeyUp         = "key.up"
	TypeDoubleClick   = "dblclick"
	TypeFocus         = "focus"
	TypeResize        = "resize"
	TypeCenterItem    = "center.item"
	TypeCenterView    = "center.view"
	TypeCenterRect    = "center.rect"
	TypeCenterOther   = "center.other"
	TypeFullSize      = "fullsize"
	TypeItemAdd       = "item.add"
	TypeItemRemove    = "item.remove"

	// Server to client
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
	TypeEvent   = "event"
	TypeError   = "error"
)

type DoubleClickPayload struct {
	Target surface.Target `json:"target"`
	ItemID string         `json:"itemId,omitempty"`
}

type ItemPayload struct {
	ItemID string `json:"itemId"`
}

type ResizePayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type CenterRectPayload struct {
	Rect geom.Rect `json:"rect"`
}

type CenterOtherPayload struct {
	Diff int `json:"diff"`
}

type FullSizePayload struct {
	ItemID string `json:"itemId,omitempty"`
	Exit   bool   `json:"exit,omitempty"`
}

type WelcomePayload struct {
	SessionID string        `json:"sessionId"`
	ClientID  string        `json:"clientId"`
	SurfaceID string        `json:"surfaceId"`
	Frame     surface.Frame `json:"frame"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}
