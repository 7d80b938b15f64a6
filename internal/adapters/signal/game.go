package signal

import (
	"encoding/json"

	"github.com/dkeye/Arena/internal/app/orch"
	"github.com/dkeye/Arena/internal/core"
)

// handleGame relays in-game traffic. Clients normally send these without an
// ack, so rejected frames are simply dropped.
func (ctl *SignalWSController) handleGame(sid core.SessionID, c *WsSignalConn, env core.Envelope) {
	ctl.finish(sid, c, env, func(reply orch.CallOption) orch.Result {
		return ctl.gameCommand(sid, env, reply)
	})
}

func (ctl *SignalWSController) gameCommand(sid core.SessionID, env core.Envelope, reply orch.CallOption) orch.Result {
	switch env.Event {
	case EventPlayerState:
		state, err := decode[map[string]json.RawMessage](env)
		if err != nil {
			return orch.Result{Err: err}
		}
		return ctl.Orch.PlayerState(sid, state, reply)
	case EventPlayerShoot:
		shot, err := decode[map[string]json.RawMessage](env)
		if err != nil {
			return orch.Result{Err: err}
		}
		return ctl.Orch.PlayerShoot(sid, shot, reply)
	case EventPlayerHit:
		hit, err := decode[orch.HitReport](env)
		if err != nil {
			return orch.Result{Err: err}
		}
		return ctl.Orch.PlayerHit(sid, hit, reply)
	case EventPlayerDeath:
		death, err := decode[orch.DeathReport](env)
		if err != nil {
			return orch.Result{Err: err}
		}
		return ctl.Orch.PlayerDeath(sid, death, reply)
	default:
		respawn, err := decode[orch.RespawnReport](env)
		if err != nil {
			return orch.Result{Err: err}
		}
		return ctl.Orch.PlayerRespawn(sid, respawn, reply)
	}
}
