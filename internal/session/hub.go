package session

import (
	"log/slog"
	"sync"
	"time"
)

// Hub owns the live sessions and drives their animation frames from one
// ticker.
type Hub struct {
	mu         sync.RWMutex
	sessions   map[string]*entry
	register   chan *entry
	unregister chan string
	interval   time.Duration
	done       chan struct{}
	stopped    chan struct{}
	stopOnce   sync.Once
}

type entry struct {
	session *Session
	closer  func()
}

func NewHub(interval time.Duration) *Hub {
	return &Hub{
		sessions:   make(map[string]*entry),
		register:   make(chan *entry),
		unregister: make(chan string),
		interval:   interval,
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

func (h *Hub) Run() {
	ticker := time.NewTicker(h.interval)
	defer func() {
		ticker.Stop()
		close(h.stopped)
	}()

	for {
		select {
		case e := <-h.register:
			h.mu.Lock()
			h.sessions[e.session.ID] = e
			h.mu.Unlock()
			slog.Info("session joined", "session", e.session.ID, "surface", e.session.SurfaceID, "user", e.session.UserID)

		case id := <-h.unregister:
			h.remove(id)

		case now := <-ticker.C:
			h.tick(now)

		case <-h.done:
			h.mu.RLock()
			ids := make([]string, 0, len(h.sessions))
			for id := range h.sessions {
				ids = append(ids, id)
			}
			h.mu.RUnlock()
			for _, id := range ids {
				h.remove(id)
			}
			return
		}
	}
}

// Register adds a session. closer runs when the session leaves the hub and
// should stop its connection.
func (h *Hub) Register(s *Session, closer func()) {
	select {
	case h.register <- &entry{session: s, closer: closer}:
	case <-h.done:
		closer()
	}
}

func (h *Hub) Unregister(s *Session) {
	select {
	case h.unregister <- s.ID:
	case <-h.done:
	}
}

// Len reports the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Stop closes every session and waits for Run to return. Layout changes
// are persisted as they happen, so nothing is flushed here.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
	<-h.stopped
}

func (h *Hub) tick(now time.Time) {
	h.mu.RLock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, e := range h.sessions {
		sessions = append(sessions, e.session)
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		s.Tick(now)
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	e, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if !ok {
		return
	}

	if e.closer != nil {
		e.closer()
	}
	slog.Info("session left", "session", id, "surface", e.session.SurfaceID)
}
