package signal

import (
	"github.com/dkeye/Arena/internal/app/orch"
	"github.com/dkeye/Arena/internal/core"
	"github.com/dkeye/Arena/internal/domain"
)

func (ctl *SignalWSController) handleRoom(sid core.SessionID, c *WsSignalConn, env core.Envelope) {
	ctl.finish(sid, c, env, func(reply orch.CallOption) orch.Result {
		return ctl.roomCommand(sid, env, reply)
	})
}

func (ctl *SignalWSController) roomCommand(sid core.SessionID, env core.Envelope, reply orch.CallOption) orch.Result {
	switch env.Event {
	case EventSetName:
		name, err := decode[string](env)
		if err != nil {
			return orch.Result{Err: err}
		}
		return ctl.Orch.SetName(sid, name, reply)
	case EventGetRooms:
		return ctl.Orch.GetRooms(sid, reply)
	case EventCreateRoom:
		name, err := decode[string](env)
		if err != nil {
			return orch.Result{Err: err}
		}
		if !ctl.Limiter.Allow(sid) {
			return orch.Result{Err: domain.ErrRateLimited}
		}
		return ctl.Orch.CreateRoom(sid, name, reply)
	case EventJoinRoom:
		id, err := decode[string](env)
		if err != nil {
			return orch.Result{Err: err}
		}
		return ctl.Orch.JoinRoom(sid, domain.RoomID(id), reply)
	case EventChangeTeam:
		team, err := decode[string](env)
		if err != nil {
			return orch.Result{Err: err}
		}
		return ctl.Orch.ChangeTeam(sid, team, reply)
	case EventStartGame:
		return ctl.Orch.StartGame(sid, reply)
	default:
		return ctl.Orch.LeaveRoom(sid, reply)
	}
}
