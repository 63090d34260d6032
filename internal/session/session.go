// Package session connects one websocket client to one surface. Input
// messages drive the surface; frames and notifications go back out.
// Sessions are independent: two clients on the same surface id each get
// their own view and gesture state, sharing only the persisted layout.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/gesture"
	"github.com/inamate/inamate/surface-go/internal/items"
	"github.com/inamate/inamate/surface-go/internal/layout"
	"github.com/inamate/inamate/surface-go/internal/surface"
	"github.com/inamate/inamate/surface-go/internal/typeid"
)

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrInvalidPayload = errors.New("invalid payload")
)

const persistTimeout = 5 * time.Second

// Session is one client's live surface.
type Session struct {
	ID        string
	SurfaceID string
	UserID    string

	surface *surface.Surface
	store   layout.Store
	out     Sender
	log     *slog.Logger
	clock   func() time.Time

	seq  atomic.Int64
	last frameKey
}

// frameKey is the part of a frame whose change alone warrants sending it.
type frameKey struct {
	state      gesture.State
	cursor     gesture.Cursor
	fullSize   string
	allVisible bool
	bounds     geom.Rect
}

func New(surfaceID, userID string, opts surface.Options, store layout.Store, out Sender) (*Session, error) {
	s := &Session{
		ID:        typeid.NewSessionID(),
		SurfaceID: surfaceID,
		UserID:    userID,
		store:     store,
		out:       out,
		clock:     time.Now,
	}
	s.log = slog.With("session", s.ID, "surface", surfaceID, "user", userID)

	sf, err := surface.New(opts, surface.WithLogger(s.log), surface.WithListener(s.onEvent))
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	s.surface = sf
	return s, nil
}

// Surface exposes the underlying engine.
func (s *Session) Surface() *surface.Surface {
	return s.surface
}

// Start seeds the surface from the stored layout and greets the client
// with a full frame. Placements that fail validation are skipped.
func (s *Session) Start(ctx context.Context, clientID string) error {
	placements, err := s.store.Load(ctx, s.SurfaceID)
	if err != nil && !errors.Is(err, layout.ErrNotFound) {
		return fmt.Errorf("load layout: %w", err)
	}
	for _, p := range placements {
		if err := s.surface.AddPlacement(p); err != nil {
			s.log.Warn("skipped stored placement", "error", err, "item", p.ID)
		}
	}

	f := s.surface.Snapshot()
	s.last = keyOf(f)
	s.send(TypeWelcome, WelcomePayload{
		SessionID: s.ID,
		ClientID:  clientID,
		SurfaceID: s.SurfaceID,
		Frame:     f,
	})
	s.log.Info("session started", "items", len(placements))
	return nil
}

// HandleMessage runs Handle and reports failures to the client.
func (s *Session) HandleMessage(ctx context.Context, msg *Message) {
	if err := s.Handle(ctx, msg); err != nil {
		s.log.Warn("message failed", "error", err, "type", msg.Type)
		s.send(TypeError, ErrorPayload{Message: err.Error(), Type: msg.Type})
	}
}

// Handle applies one client message to the surface.
func (s *Session) Handle(ctx context.Context, msg *Message) error {
	now := s.clock()
	sf := s.surface

	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp, TypePointerCancel:
		var ev surface.PointerEvent
		if err := decode(msg, &ev); err != nil {
			return err
		}
		ev.Time = now
		switch msg.Type {
		case TypePointerDown:
			sf.PointerDown(ev)
		case TypePointerMove:
			sf.PointerMove(ev)
		case TypePointerUp:
			sf.PointerUp(ev)
		default:
			sf.PointerCancel(ev)
		}

	case TypeWheel:
		var ev surface.WheelEvent
		if err := decode(msg, &ev); err != nil {
			return err
		}
		ev.Time = now
		sf.Wheel(ev)

	case TypeKeyDown, TypeKeyUp:
		var ev surface.KeyEvent
		if err := decode(msg, &ev); err != nil {
			return err
		}
		ev.Time = now
		if msg.Type == TypeKeyDown {
			sf.KeyDown(ev)
		} else {
			sf.KeyUp(ev)
		}

	case TypeDoubleClick:
		var p DoubleClickPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		sf.DoubleClick(p.Target, p.ItemID)

	case TypeFocus:
		var p ItemPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		sf.Focus(p.ItemID)

	case TypeResize:
		var p ResizePayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		sf.Resize(geom.Pt(p.Width, p.Height))

	case TypeCenterItem:
		var p ItemPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		return sf.CenterItem(p.ItemID)

	case TypeCenterView:
		sf.CenterView()

	case TypeCenterRect:
		var p CenterRectPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		sf.CenterRect(p.Rect)

	case TypeCenterOther:
		var p CenterOtherPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		sf.CenterOtherItem(p.Diff)

	case TypeFullSize:
		var p FullSizePayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		if p.Exit {
			sf.ExitFullSize()
			return nil
		}
		return sf.MakeFullSize(p.ItemID)

	case TypeItemAdd:
		var p items.Placement
		if err := decode(msg, &p); err != nil {
			return err
		}
		if p.ID == "" {
			p.ID = typeid.NewItemID()
		}
		if err := sf.AddPlacement(p); err != nil {
			return err
		}
		if err := s.store.SavePlacement(ctx, s.SurfaceID, p); err != nil {
			return fmt.Errorf("persist item: %w", err)
		}

	case TypeItemRemove:
		var p ItemPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		if !sf.RemoveItem(p.ItemID) {
			return fmt.Errorf("remove item: %w: %s", items.ErrUnknownItem, p.ItemID)
		}
		if err := s.store.Delete(ctx, s.SurfaceID, p.ItemID); err != nil && !errors.Is(err, layout.ErrNotFound) {
			return fmt.Errorf("delete item: %w", err)
		}

	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

// Tick advances the surface and sends a frame if anything visible changed.
func (s *Session) Tick(now time.Time) {
	f := s.surface.Tick(now)
	key := keyOf(f)
	if !f.ViewChanged && len(f.Items) == 0 && len(f.Removed) == 0 &&
		f.Selection == nil && key == s.last {
		return
	}
	s.last = key
	s.send(TypeFrame, f)
}

func (s *Session) onEvent(ev surface.Event) {
	if ev.Type == surface.EventStateChange {
		s.log.Debug("state change", "from", ev.From, "to", ev.To)
	}
	s.send(TypeEvent, ev)

	if (ev.Type == surface.EventMoveEnd || ev.Type == surface.EventResizeEnd) && ev.Rect != nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.store.SavePlacement(ctx, s.SurfaceID, items.PlacementOf(ev.ItemID, *ev.Rect)); err != nil {
			s.log.Error("persist placement failed", "error", err, "item", ev.ItemID)
		}
	}
}

func (s *Session) send(typ string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("marshal payload", "error", err, "type", typ)
		return
	}
	s.out.Send(&Message{Type: typ, SessionID: s.ID, Seq: s.seq.Add(1), Payload: data})
}

func keyOf(f surface.Frame) frameKey {
	k := frameKey{state: f.State, cursor: f.Cursor, fullSize: f.FullSize}
	if f.Minimap != nil {
		k.allVisible = f.Minimap.AllVisible
	}
	if f.Bounds != nil {
		k.bounds = *f.Bounds
	}
	return k
}

func decode(msg *Message, v any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%w: %s has no payload", ErrInvalidPayload, msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidPayload, msg.Type, err)
	}
	return nil
}
