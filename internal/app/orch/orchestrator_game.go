package orch

import (
	"encoding/json"

	"github.com/dkeye/Arena/internal/app"
	"github.com/dkeye/Arena/internal/core"
	"github.com/dkeye/Arena/internal/domain"
)

// In-game traffic is relayed verbatim; the relay is not authoritative over
// positions, damage or kill attribution.

func (o *Orchestrator) playingRoom(sid core.SessionID) (core.RoomService, error) {
	room, ok := o.currentRoom(sid)
	if !ok {
		return nil, domain.ErrNotInRoom
	}
	if room.Status() != domain.StatusPlaying {
		return nil, domain.ErrNotPlaying
	}
	return room, nil
}

func relayed(scope app.Scope, room core.RoomService, sid core.SessionID, event string, data any) Result {
	return Result{
		Reply: Ack{Success: true},
		Broadcasts: []app.Broadcast{{
			Scope:  scope,
			Room:   room.Room().ID,
			Except: sid,
			Event:  event,
			Data:   data,
		}},
	}
}

func (o *Orchestrator) PlayerState(sid core.SessionID, state map[string]json.RawMessage, opts ...CallOption) Result {
	return o.run(opts, func() Result { return o.playerState(sid, state) })
}

func (o *Orchestrator) playerState(sid core.SessionID, state map[string]json.RawMessage) Result {
	room, err := o.playingRoom(sid)
	if err != nil {
		return fail(err)
	}
	team, ok := room.TeamOf(sid)
	if !ok {
		team = domain.TeamBlue
	}
	name, _ := o.Registry.Lookup(sid)

	data := make(map[string]any, len(state)+3)
	for k, v := range state {
		data[k] = v
	}
	data["playerId"] = sid.PlayerID()
	data["playerName"] = name
	data["team"] = team
	return relayed(app.ScopeOthers, room, sid, EventRemotePlayerState, data)
}

func (o *Orchestrator) PlayerShoot(sid core.SessionID, shot map[string]json.RawMessage, opts ...CallOption) Result {
	return o.run(opts, func() Result { return o.playerShoot(sid, shot) })
}

func (o *Orchestrator) playerShoot(sid core.SessionID, shot map[string]json.RawMessage) Result {
	room, err := o.playingRoom(sid)
	if err != nil {
		return fail(err)
	}
	data := make(map[string]any, len(shot)+1)
	for k, v := range shot {
		data[k] = v
	}
	data["playerId"] = sid.PlayerID()
	return relayed(app.ScopeOthers, room, sid, EventRemotePlayerShoot, data)
}

func (o *Orchestrator) PlayerHit(sid core.SessionID, hit HitReport, opts ...CallOption) Result {
	return o.run(opts, func() Result { return o.playerHit(sid, hit) })
}

func (o *Orchestrator) playerHit(sid core.SessionID, hit HitReport) Result {
	room, err := o.playingRoom(sid)
	if err != nil {
		return fail(err)
	}
	return relayed(app.ScopeRoom, room, sid, EventPlayerDamaged, PlayerDamaged{
		TargetID:   hit.TargetID,
		Damage:     hit.Damage,
		AttackerID: sid.PlayerID(),
		IsHeadshot: hit.IsHeadshot,
	})
}

func (o *Orchestrator) PlayerDeath(sid core.SessionID, death DeathReport, opts ...CallOption) Result {
	return o.run(opts, func() Result { return o.playerDeath(sid, death) })
}

func (o *Orchestrator) playerDeath(sid core.SessionID, death DeathReport) Result {
	room, err := o.playingRoom(sid)
	if err != nil {
		return fail(err)
	}
	name, _ := o.Registry.Lookup(sid)
	return relayed(app.ScopeRoom, room, sid, EventPlayerKilled, PlayerKilled{
		VictimID:   sid.PlayerID(),
		VictimName: name,
		KillerID:   death.KillerID,
		KillerName: death.KillerName,
	})
}

func (o *Orchestrator) PlayerRespawn(sid core.SessionID, respawn RespawnReport, opts ...CallOption) Result {
	return o.run(opts, func() Result { return o.playerRespawn(sid, respawn) })
}

func (o *Orchestrator) playerRespawn(sid core.SessionID, respawn RespawnReport) Result {
	room, err := o.playingRoom(sid)
	if err != nil {
		return fail(err)
	}
	return relayed(app.ScopeOthers, room, sid, EventRemotePlayerRespawn, RemotePlayerRespawn{
		PlayerID: sid.PlayerID(),
		Position: respawn.Position,
	})
}
