package orch

import (
	"sync"

	"github.com/dkeye/Arena/internal/app"
	"github.com/dkeye/Arena/internal/core"
	"github.com/dkeye/Arena/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator is the session handler logic shared by every connection.
// Commands run one at a time and never touch the transport directly: each one
// produces a Result whose broadcasts are published before the next command
// starts, so every connection observes events in command order.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    core.RoomManager
	Policy   app.Policy
	Relay    *app.Relay

	mu sync.Mutex
}

// Result is the outcome of one command: the reply for the caller (or Err)
// plus the broadcasts it published and how their delivery went.
type Result struct {
	Reply      any
	Err        error
	Broadcasts []app.Broadcast
	Delivery   app.PublishResult
}

func fail(err error) Result { return Result{Err: err} }

type callOptions struct {
	reply func(Result)
}

type CallOption func(*callOptions)

// WithReply hands the result to fn before its broadcasts are published.
// fn runs under the command lock and must not call back into the
// Orchestrator.
func WithReply(fn func(Result)) CallOption {
	return func(c *callOptions) { c.reply = fn }
}

func (o *Orchestrator) run(opts []CallOption, cmd func() Result) Result {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	res := cmd()
	if co.reply != nil {
		co.reply(res)
	}
	res.Delivery = o.deliver(res.Broadcasts)
	return res
}

// deliver publishes bs and applies the backpressure policy. Must be called
// with mu held; TrySend and Cancel never block.
func (o *Orchestrator) deliver(bs []app.Broadcast) app.PublishResult {
	if len(bs) == 0 {
		return app.PublishResult{}
	}
	pr := o.Relay.Publish(bs)
	if o.Policy == nil {
		return pr
	}
	for _, d := range pr.Dropped {
		switch o.Policy.OnBackPressure(d.SID, d.Event) {
		case app.KickMember:
			log.Warn().Str("module", "orch").Str("sid", string(d.SID)).Str("event", d.Event).Msg("kicking slow connection")
			o.Registry.Cancel(d.SID)
		case app.DropFrame, app.NoAction:
		}
	}
	return pr
}

// ListRooms serves read-only listings outside of a connection.
func (o *Orchestrator) ListRooms() []domain.RoomSummary {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Rooms.List()
}

func (o *Orchestrator) Room(id domain.RoomID) (domain.RoomSummary, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	room, ok := o.Rooms.GetRoom(id)
	if !ok {
		return domain.RoomSummary{}, false
	}
	return room.Summary(), true
}

func (o *Orchestrator) currentRoom(sid core.SessionID) (core.RoomService, bool) {
	roomID, ok := o.Registry.RoomOf(sid)
	if !ok {
		return nil, false
	}
	return o.Rooms.GetRoom(roomID)
}

func roomListUpdated() app.Broadcast {
	return app.Broadcast{Scope: app.ScopeGlobal, Event: EventRoomListUpdated}
}
