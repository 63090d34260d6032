package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/items"
	"github.com/inamate/inamate/surface-go/internal/layout"
	"github.com/inamate/inamate/surface-go/internal/surface"
	"github.com/inamate/inamate/surface-go/internal/typeid"
)

type outbox struct {
	mu   sync.Mutex
	msgs []*Message
}

func (o *outbox) Send(msg *Message) {
	o.mu.Lock()
	o.msgs = append(o.msgs, msg)
	o.mu.Unlock()
}

func (o *outbox) count(typ string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, m := range o.msgs {
		if m.Type == typ {
			n++
		}
	}
	return n
}

func (o *outbox) events() []surface.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []surface.Event
	for _, m := range o.msgs {
		if m.Type != TypeEvent {
			continue
		}
		var ev surface.Event
		json.Unmarshal(m.Payload, &ev)
		out = append(out, ev)
	}
	return out
}

func newTestSession(t *testing.T, store layout.Store) (*Session, *outbox) {
	t.Helper()
	out := &outbox{}
	s, err := New(typeid.PlaygroundSurfaceID, "anon-test", surface.DefaultOptions(), store, out)
	if err != nil {
		t.Fatal(err)
	}
	clock := time.Unix(1700000000, 0)
	s.clock = func() time.Time {
		clock = clock.Add(20 * time.Millisecond)
		return clock
	}
	return s, out
}

func msg(t *testing.T, typ string, payload any) *Message {
	t.Helper()
	m := &Message{Type: typ}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		m.Payload = data
	}
	return m
}

func TestStartLoadsLayout(t *testing.T) {
	ctx := context.Background()
	store := layout.NewMemoryStore()
	store.Save(ctx, typeid.PlaygroundSurfaceID, []items.Placement{
		items.PlacementOf("a", geom.NewRect(0, 0, 80, 80)),
		items.PlacementOf("b", geom.NewRect(160, 0, 80, 80)),
	})

	s, out := newTestSession(t, store)
	if err := s.Start(ctx, "client-1"); err != nil {
		t.Fatal(err)
	}
	if out.count(TypeWelcome) != 1 {
		t.Fatalf("welcome messages = %d", out.count(TypeWelcome))
	}
	var welcome WelcomePayload
	if err := json.Unmarshal(out.msgs[0].Payload, &welcome); err != nil {
		t.Fatal(err)
	}
	if welcome.SessionID != s.ID || welcome.ClientID != "client-1" || len(welcome.Frame.Items) != 2 {
		t.Errorf("welcome = %+v", welcome)
	}
}

func TestStartEmptySurface(t *testing.T) {
	s, out := newTestSession(t, layout.NewMemoryStore())
	if err := s.Start(context.Background(), "c"); err != nil {
		t.Fatal(err)
	}
	if out.count(TypeWelcome) != 1 {
		t.Error("no welcome on empty surface")
	}
}

func TestHandleErrors(t *testing.T) {
	s, out := newTestSession(t, layout.NewMemoryStore())
	ctx := context.Background()

	tests := []struct {
		name string
		msg  *Message
		want error
	}{
		{"unknown type", &Message{Type: "teleport"}, ErrUnknownMessage},
		{"missing payload", &Message{Type: TypePointerDown}, ErrInvalidPayload},
		{"bad payload", &Message{Type: TypeWheel, Payload: json.RawMessage(`"x"`)}, ErrInvalidPayload},
		{"unknown item", msg(t, TypeCenterItem, ItemPayload{ItemID: "nope"}), items.ErrUnknownItem},
		{"missing field", msg(t, TypeItemAdd, map[string]any{"id": "a", "left": 0}), items.ErrMissingPlacement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Handle(ctx, tt.msg); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	s.HandleMessage(ctx, &Message{Type: "teleport"})
	if out.count(TypeError) != 1 {
		t.Errorf("error messages = %d, want 1", out.count(TypeError))
	}
}

func TestItemAddRemovePersist(t *testing.T) {
	ctx := context.Background()
	store := layout.NewMemoryStore()
	s, _ := newTestSession(t, store)

	add := msg(t, TypeItemAdd, items.PlacementOf("", geom.NewRect(0, 0, 80, 80)))
	if err := s.Handle(ctx, add); err != nil {
		t.Fatal(err)
	}
	stored, err := store.Load(ctx, s.SurfaceID)
	if err != nil || len(stored) != 1 {
		t.Fatalf("stored = %v, %v", stored, err)
	}
	id := stored[0].ID
	if err := typeid.Validate(id, typeid.PrefixItem); err != nil {
		t.Errorf("generated id: %v", err)
	}
	if _, ok := s.Surface().Item(id); !ok {
		t.Error("item not on surface")
	}

	if err := s.Handle(ctx, msg(t, TypeItemRemove, ItemPayload{ItemID: id})); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Load(ctx, s.SurfaceID); len(got) != 0 {
		t.Errorf("stored after remove = %v", got)
	}
	if err := s.Handle(ctx, msg(t, TypeItemRemove, ItemPayload{ItemID: id})); !errors.Is(err, items.ErrUnknownItem) {
		t.Errorf("second remove err = %v", err)
	}
}

func TestMoveEndPersists(t *testing.T) {
	ctx := context.Background()
	store := layout.NewMemoryStore()
	store.Save(ctx, typeid.PlaygroundSurfaceID, []items.Placement{
		items.PlacementOf("a", geom.NewRect(0, 0, 80, 80)),
	})
	s, out := newTestSession(t, store)
	if err := s.Start(ctx, "c"); err != nil {
		t.Fatal(err)
	}

	steps := []*Message{
		msg(t, TypePointerDown, surface.PointerEvent{ID: 1, Pos: geom.Pt(10, 10), Buttons: surface.ButtonLeft, Target: surface.TargetMoveHandle, ItemID: "a"}),
		msg(t, TypePointerMove, surface.PointerEvent{ID: 1, Pos: geom.Pt(100, 60), Buttons: surface.ButtonLeft}),
		msg(t, TypePointerMove, surface.PointerEvent{ID: 1, Pos: geom.Pt(180, 90), Buttons: surface.ButtonLeft}),
		msg(t, TypePointerUp, surface.PointerEvent{ID: 1, Pos: geom.Pt(180, 90)}),
	}
	for _, m := range steps {
		if err := s.Handle(ctx, m); err != nil {
			t.Fatalf("%s: %v", m.Type, err)
		}
	}

	it, _ := s.Surface().Item("a")
	if it.Rect == geom.NewRect(0, 0, 80, 80) {
		t.Fatal("item did not move")
	}
	stored, _ := store.Load(ctx, s.SurfaceID)
	got, err := stored[0].Rect()
	if err != nil || got != it.Rect {
		t.Errorf("stored rect = %+v (%v), surface rect = %+v", got, err, it.Rect)
	}

	var sawEnd bool
	for _, ev := range out.events() {
		if ev.Type == surface.EventMoveEnd && ev.ItemID == "a" {
			sawEnd = true
		}
	}
	if !sawEnd {
		t.Error("move.end not sent to client")
	}
}

func TestTickSendsOnlyChanges(t *testing.T) {
	s, out := newTestSession(t, layout.NewMemoryStore())
	if err := s.Start(context.Background(), "c"); err != nil {
		t.Fatal(err)
	}
	base := time.Unix(1800000000, 0)

	s.Tick(base)
	s.Tick(base.Add(time.Second))
	n := out.count(TypeFrame)
	s.Tick(base.Add(2 * time.Second))
	if got := out.count(TypeFrame); got != n {
		t.Errorf("idle tick sent a frame: %d -> %d", n, got)
	}

	if err := s.Handle(context.Background(), msg(t, TypeResize, ResizePayload{Width: 800, Height: 600})); err != nil {
		t.Fatal(err)
	}
	s.Tick(base.Add(3 * time.Second))
	if got := out.count(TypeFrame); got != n+1 {
		t.Errorf("frames after resize = %d, want %d", got, n+1)
	}
}

func TestHubLifecycle(t *testing.T) {
	h := NewHub(time.Millisecond)
	go h.Run()

	s, out := newTestSession(t, layout.NewMemoryStore())
	s.Start(context.Background(), "c")
	s.Handle(context.Background(), msg(t, TypeResize, ResizePayload{Width: 400, Height: 300}))

	closed := make(chan struct{})
	h.Register(s, func() { close(closed) })

	deadline := time.Now().Add(2 * time.Second)
	for out.count(TypeFrame) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("hub never ticked the session")
		}
		time.Sleep(time.Millisecond)
	}
	if h.Len() != 1 {
		t.Errorf("Len = %d", h.Len())
	}

	h.Unregister(s)
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("closer not called")
	}
	h.Stop()
	if h.Len() != 0 {
		t.Errorf("Len after stop = %d", h.Len())
	}

	// Registering after stop closes immediately.
	again := make(chan struct{})
	h.Register(s, func() { close(again) })
	<-again
}
