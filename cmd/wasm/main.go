//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"
	"time"

	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/layout"
	"github.com/inamate/inamate/surface-go/internal/session"
	"github.com/inamate/inamate/surface-go/internal/surface"
	"github.com/inamate/inamate/surface-go/internal/typeid"
)

var (
	sess     *session.Session
	listener js.Value
)

// jsSender forwards session messages to the callback set with onMessage.
type jsSender struct{}

func (jsSender) Send(msg *session.Message) {
	if listener.Type() != js.TypeFunction {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	listener.Invoke(string(data))
}

func main() {
	var err error
	sess, err = session.New(typeid.PlaygroundSurfaceID, "local", surface.DefaultOptions(), layout.NewMemoryStore(), jsSender{})
	if err != nil {
		panic(err)
	}

	surfaceEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	surfaceEngine.Set("onMessage", js.FuncOf(onMessage))
	surfaceEngine.Set("send", js.FuncOf(send))
	for name, typ := range map[string]string{
		"pointerDown":     session.TypePointerDown,
		"pointerMove":     session.TypePointerMove,
		"pointerUp":       session.TypePointerUp,
		"pointerCancel":   session.TypePointerCancel,
		"wheel":           session.TypeWheel,
		"keyDown":         session.TypeKeyDown,
		"keyUp":           session.TypeKeyUp,
		"doubleClick":     session.TypeDoubleClick,
		"focus":           session.TypeFocus,
		"resize":          session.TypeResize,
		"centerItem":      session.TypeCenterItem,
		"centerView":      session.TypeCenterView,
		"centerRect":      session.TypeCenterRect,
		"centerOtherItem": session.TypeCenterOther,
		"fullSize":        session.TypeFullSize,
		"addItem":         session.TypeItemAdd,
		"removeItem":      session.TypeItemRemove,
	} {
		surfaceEngine.Set(name, command(typ))
	}
	surfaceEngine.Set("tick", js.FuncOf(tick))

	// --- Queries (frontend ← engine) ---
	surfaceEngine.Set("getFrame", js.FuncOf(getFrame))
	surfaceEngine.Set("getPlacements", js.FuncOf(getPlacements))
	surfaceEngine.Set("screenToWorld", js.FuncOf(screenToWorld))

	js.Global().Set("surfaceEngine", surfaceEngine)
	js.Global().Set("surfaceWasmReady", js.ValueOf(true))

	select {}
}

// --- Command Handlers ---

func onMessage(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return js.ValueOf(map[string]interface{}{"error": "missing callback"})
	}
	listener = args[0]
	if err := sess.Start(context.Background(), "wasm"); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// command returns a method that takes an optional JSON payload string.
func command(typ string) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		msg := &session.Message{Type: typ}
		if len(args) > 0 && args[0].Type() == js.TypeString {
			msg.Payload = json.RawMessage(args[0].String())
		}
		return handle(msg)
	})
}

func send(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing message JSON"})
	}
	var msg session.Message
	if err := json.Unmarshal([]byte(args[0].String()), &msg); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return handle(&msg)
}

func handle(msg *session.Message) interface{} {
	if err := sess.Handle(context.Background(), msg); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// tick advances one animation frame. The frame is delivered through the
// onMessage callback when something changed.
func tick(this js.Value, args []js.Value) interface{} {
	sess.Tick(time.Now())
	return nil
}

// --- Query Handlers ---

func getFrame(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(toJSON(sess.Surface().Snapshot()))
}

func getPlacements(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(toJSON(sess.Surface().Placements()))
}

func screenToWorld(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("{}")
	}
	p := sess.Surface().ScreenToWorld(geom.Pt(args[0].Float(), args[1].Float()))
	return js.ValueOf(toJSON(p))
}

func toJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
