package app

import (
	"context"
	"sync"

	"github.com/dkeye/Arena/internal/core"
	"github.com/dkeye/Arena/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	Name   string
	Named  bool
	RoomID domain.RoomID
	Signal core.SignalConnection
	Cancel context.CancelFunc
}

// Registry is the Connection Registry: live connections, their display
// names and the room each one is bound to.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
	}
}

// entry must be called with mu held for writing.
func (r *Registry) entry(sid core.SessionID) *sessionEntry {
	e, ok := r.sessions[sid]
	if !ok {
		e = &sessionEntry{}
		r.sessions[sid] = e
	}
	return e
}

// Register stores or overwrites the display name and returns the accepted one.
func (r *Registry) Register(sid core.SessionID, proposed string) string {
	name := domain.NormalizeName(proposed)
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entry(sid)
	e.Name = name
	e.Named = true
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("name", name).Msg("registered name")
	return name
}

func (r *Registry) Lookup(sid core.SessionID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	if !ok || !e.Named {
		return "", false
	}
	return e.Name, true
}

// Remove forgets the connection entirely. Idempotent.
func (r *Registry) Remove(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sid]; !ok {
		return
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("removed session")
}

func (r *Registry) BindSignal(sid core.SessionID, sig core.SignalConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entry(sid)
	e.Signal = sig
	e.Cancel = cancel
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound signal")
}

func (r *Registry) Signal(sid core.SessionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok && e.Signal != nil {
		return e.Signal, true
	}
	return nil, false
}

// ConnRef pairs a session with its transport.
type ConnRef struct {
	SID    core.SessionID
	Signal core.SignalConnection
}

// Signals snapshots every connection with a bound transport.
func (r *Registry) Signals() []ConnRef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConnRef, 0, len(r.sessions))
	for sid, e := range r.sessions {
		if e.Signal != nil {
			out = append(out, ConnRef{SID: sid, Signal: e.Signal})
		}
	}
	return out
}

func (r *Registry) RoomOf(sid core.SessionID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	if !ok || e.RoomID == "" {
		return "", false
	}
	return e.RoomID, true
}

func (r *Registry) UpdateRoom(sid core.SessionID, roomID domain.RoomID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return false
	}
	e.RoomID = roomID
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(roomID)).Msg("updated room")
	return true
}

func (r *Registry) RemoveRoom(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sid]; ok {
		e.RoomID = ""
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("removed room association")
}

// Cancel stops the connection's pumps; the adapter then runs the disconnect path.
func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok || e.Cancel == nil {
		return false
	}
	e.Cancel()
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
