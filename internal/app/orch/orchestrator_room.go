package orch

import (
	"fmt"

	"github.com/dkeye/Arena/internal/app"
	"github.com/dkeye/Arena/internal/core"
	"github.com/dkeye/Arena/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) SetName(sid core.SessionID, proposed string, opts ...CallOption) Result {
	return o.run(opts, func() Result { return o.setName(sid, proposed) })
}

func (o *Orchestrator) setName(sid core.SessionID, proposed string) Result {
	name := o.Registry.Register(sid, proposed)
	return Result{Reply: Ack{Success: true, PlayerID: sid.PlayerID(), Name: name}}
}

func (o *Orchestrator) GetRooms(sid core.SessionID, opts ...CallOption) Result {
	return o.run(opts, func() Result { return o.getRooms(sid) })
}

func (o *Orchestrator) getRooms(sid core.SessionID) Result {
	return Result{Reply: o.Rooms.List()}
}

func (o *Orchestrator) CreateRoom(sid core.SessionID, roomName string, opts ...CallOption) Result {
	return o.run(opts, func() Result { return o.createRoom(sid, roomName) })
}

func (o *Orchestrator) createRoom(sid core.SessionID, roomName string) Result {
	name, ok := o.Registry.Lookup(sid)
	if !ok {
		return fail(domain.ErrNotRegistered)
	}
	bs := o.leave(sid)

	room := o.Rooms.CreateRoom(sid, name, domain.NormalizeRoomName(roomName, name))
	id := room.Room().ID
	o.Registry.UpdateRoom(sid, id)
	o.Relay.Subscribe(id, sid)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(id)).Msg("created room")

	summary := room.Summary()
	return Result{
		Reply:      Ack{Success: true, Room: &summary},
		Broadcasts: append(bs, roomListUpdated()),
	}
}

func (o *Orchestrator) JoinRoom(sid core.SessionID, roomID domain.RoomID, opts ...CallOption) Result {
	return o.run(opts, func() Result { return o.joinRoom(sid, roomID) })
}

func (o *Orchestrator) joinRoom(sid core.SessionID, roomID domain.RoomID) Result {
	name, ok := o.Registry.Lookup(sid)
	if !ok {
		return fail(domain.ErrNotRegistered)
	}
	room, ok := o.Rooms.GetRoom(roomID)
	if !ok {
		return fail(fmt.Errorf("join %q: %w", roomID, domain.ErrRoomNotFound))
	}
	if room.Has(sid) {
		summary := room.Summary()
		return Result{Reply: Ack{Success: true, Room: &summary}}
	}
	if room.Status() != domain.StatusWaiting {
		return fail(fmt.Errorf("join %q: %w", roomID, domain.ErrGameAlreadyStarted))
	}
	if room.MemberCount() >= domain.MaxPlayers {
		return fail(fmt.Errorf("join %q: %w", roomID, domain.ErrRoomFull))
	}

	bs := o.leave(sid)
	team := room.BalancedTeam()
	if err := room.AddMember(sid, name, team); err != nil {
		return Result{Err: err, Broadcasts: append(bs, roomListUpdated())}
	}
	o.Registry.UpdateRoom(sid, roomID)
	o.Relay.Subscribe(roomID, sid)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Str("team", string(team)).Msg("joined room")

	summary := room.Summary()
	bs = append(bs,
		app.Broadcast{
			Scope:  app.ScopeOthers,
			Room:   roomID,
			Except: sid,
			Event:  EventPlayerJoined,
			Data: PlayerJoined{
				Player: JoinedPlayer{ID: sid.PlayerID(), Name: name, Team: team},
				Room:   summary,
			},
		},
		roomListUpdated(),
	)
	return Result{Reply: Ack{Success: true, Room: &summary}, Broadcasts: bs}
}

func (o *Orchestrator) ChangeTeam(sid core.SessionID, team string, opts ...CallOption) Result {
	return o.run(opts, func() Result { return o.changeTeam(sid, team) })
}

func (o *Orchestrator) changeTeam(sid core.SessionID, team string) Result {
	room, ok := o.currentRoom(sid)
	if !ok {
		return fail(domain.ErrNotInRoom)
	}
	t, err := domain.ParseTeam(team)
	if err != nil {
		return fail(err)
	}
	if err := room.ChangeTeam(sid, t); err != nil {
		return fail(err)
	}

	summary := room.Summary()
	return Result{
		Reply: Ack{Success: true, Room: &summary},
		Broadcasts: []app.Broadcast{{
			Scope: app.ScopeRoom,
			Room:  summary.ID,
			Event: EventRoomUpdated,
			Data:  summary,
		}},
	}
}

func (o *Orchestrator) StartGame(sid core.SessionID, opts ...CallOption) Result {
	return o.run(opts, func() Result { return o.startGame(sid) })
}

func (o *Orchestrator) startGame(sid core.SessionID) Result {
	room, ok := o.currentRoom(sid)
	if !ok {
		return fail(domain.ErrNotInRoom)
	}
	if err := room.StartGame(sid); err != nil {
		return fail(err)
	}
	log.Info().Str("module", "orch").Str("room", string(room.Room().ID)).Msg("game started")

	summary := room.Summary()
	return Result{
		Reply: Ack{Success: true},
		Broadcasts: []app.Broadcast{
			{Scope: app.ScopeRoom, Room: summary.ID, Event: EventGameStarted, Data: GameStarted{Room: summary}},
			roomListUpdated(),
		},
	}
}

func (o *Orchestrator) LeaveRoom(sid core.SessionID, opts ...CallOption) Result {
	return o.run(opts, func() Result { return o.leaveRoom(sid) })
}

func (o *Orchestrator) leaveRoom(sid core.SessionID) Result {
	if _, ok := o.Registry.RoomOf(sid); !ok {
		return fail(domain.ErrNotInRoom)
	}
	bs := o.leave(sid)
	return Result{Reply: Ack{Success: true}, Broadcasts: append(bs, roomListUpdated())}
}

// Disconnect is leaveRoom plus forgetting the connection. There is no reply.
func (o *Orchestrator) Disconnect(sid core.SessionID, opts ...CallOption) Result {
	return o.run(opts, func() Result { return o.disconnect(sid) })
}

func (o *Orchestrator) disconnect(sid core.SessionID) Result {
	_, inRoom := o.Registry.RoomOf(sid)
	bs := o.leave(sid)
	o.Registry.Remove(sid)
	if inRoom {
		bs = append(bs, roomListUpdated())
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("disconnected")
	return Result{Broadcasts: bs}
}

// leave removes sid from its room, deletes the room once empty and migrates
// the host. Must be called with mu held.
func (o *Orchestrator) leave(sid core.SessionID) []app.Broadcast {
	roomID, ok := o.Registry.RoomOf(sid)
	if !ok {
		return nil
	}
	o.Registry.RemoveRoom(sid)
	o.Relay.Unsubscribe(roomID, sid)

	room, ok := o.Rooms.GetRoom(roomID)
	if !ok {
		return nil
	}
	newHost, migrated := room.RemoveMember(sid)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("left room")
	if o.Rooms.DeleteIfEmpty(roomID) {
		return nil
	}

	var bs []app.Broadcast
	if migrated {
		bs = append(bs, app.Broadcast{
			Scope: app.ScopeRoom,
			Room:  roomID,
			Event: EventHostChanged,
			Data:  HostChanged{NewHostID: newHost.PlayerID()},
		})
	}
	summary := room.Summary()
	return append(bs, app.Broadcast{
		Scope: app.ScopeRoom,
		Room:  roomID,
		Event: EventPlayerLeft,
		Data:  PlayerLeft{PlayerID: sid.PlayerID(), Room: &summary},
	})
}
