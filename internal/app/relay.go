package app

import (
	"sync"

	"github.com/dkeye/Arena/internal/core"
	"github.com/dkeye/Arena/internal/domain"
	"github.com/rs/zerolog/log"
)

type Scope int

const (
	// ScopeRoom reaches every subscriber of the room, sender included.
	ScopeRoom Scope = iota
	// ScopeOthers reaches the room minus Except.
	ScopeOthers
	// ScopeGlobal reaches every live connection.
	ScopeGlobal
)

// Broadcast is one outbound instruction produced by a command.
type Broadcast struct {
	Scope  Scope
	Room   domain.RoomID
	Except core.SessionID
	Event  string
	Data   any
}

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SendTo  int
	Dropped []Dropped
}

type Dropped struct {
	SID   core.SessionID
	Event string
}

// Connections resolves session ids to their transport.
type Connections interface {
	Signal(sid core.SessionID) (core.SignalConnection, bool)
	Signals() []ConnRef
}

// Relay is the broadcast-group fan-out. Group membership is maintained by the
// session handler on join and leave.
type Relay struct {
	conns Connections

	mu     sync.RWMutex
	groups map[domain.RoomID]map[core.SessionID]struct{}
}

func NewRelay(conns Connections) *Relay {
	return &Relay{
		conns:  conns,
		groups: make(map[domain.RoomID]map[core.SessionID]struct{}),
	}
}

func (r *Relay) Subscribe(room domain.RoomID, sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[room]
	if !ok {
		g = make(map[core.SessionID]struct{})
		r.groups[room] = g
	}
	g[sid] = struct{}{}
}

func (r *Relay) Unsubscribe(room domain.RoomID, sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[room]
	if !ok {
		return
	}
	delete(g, sid)
	if len(g) == 0 {
		delete(r.groups, room)
	}
}

func (r *Relay) Members(room domain.RoomID) []core.SessionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.SessionID, 0, len(r.groups[room]))
	for sid := range r.groups[room] {
		out = append(out, sid)
	}
	return out
}

// Publish delivers broadcasts in order.
func (r *Relay) Publish(bs []Broadcast) PublishResult {
	var res PublishResult
	for _, b := range bs {
		frame, err := core.EncodeEvent(b.Event, b.Data)
		if err != nil {
			log.Error().Err(err).Str("module", "app.relay").Str("event", b.Event).Msg("encode broadcast")
			continue
		}
		for _, t := range r.targets(b) {
			if err := t.Signal.TrySend(frame); err != nil {
				res.Dropped = append(res.Dropped, Dropped{SID: t.SID, Event: b.Event})
				continue
			}
			res.SendTo++
		}
	}
	if len(res.Dropped) > 0 {
		log.Debug().Str("module", "app.relay").Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	}
	return res
}

func (r *Relay) targets(b Broadcast) []ConnRef {
	if b.Scope == ScopeGlobal {
		return r.conns.Signals()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	g := r.groups[b.Room]
	out := make([]ConnRef, 0, len(g))
	for sid := range g {
		if b.Scope == ScopeOthers && sid == b.Except {
			continue
		}
		sig, ok := r.conns.Signal(sid)
		if !ok {
			continue
		}
		out = append(out, ConnRef{SID: sid, Signal: sig})
	}
	return out
}
