package signal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dkeye/Arena/internal/app/orch"
	"github.com/dkeye/Arena/internal/core"
	"github.com/dkeye/Arena/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

// writePump owns every write to the socket, including keepalive pings.
func (ctl *SignalWSController) writePump(ctx context.Context, sid core.SessionID, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.Cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("ping failed")
				return
			}
		}
	}
}

// readPump handles requests in arrival order until the socket fails or the
// peer stays silent past the pong wait.
func (ctl *SignalWSController) readPump(sid core.SessionID, c *WsSignalConn) {
	pongWait := ctl.Cfg.PongWait()
	c.conn.SetReadLimit(ctl.Cfg.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		ctl.handleSignal(sid, c, data)
	}
}

const (
	EventSetName       = "setName"
	EventGetRooms      = "getRooms"
	EventCreateRoom    = "createRoom"
	EventJoinRoom      = "joinRoom"
	EventChangeTeam    = "changeTeam"
	EventStartGame     = "startGame"
	EventLeaveRoom     = "leaveRoom"
	EventPlayerState   = "playerState"
	EventPlayerShoot   = "playerShoot"
	EventPlayerHit     = "playerHit"
	EventPlayerDeath   = "playerDeath"
	EventPlayerRespawn = "playerRespawn"
	EventPing          = "ping"
)

func (ctl *SignalWSController) handleSignal(sid core.SessionID, c *WsSignalConn, data []byte) {
	var env core.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad json")
		return
	}

	switch env.Event {
	case EventSetName, EventGetRooms, EventCreateRoom, EventJoinRoom, EventChangeTeam, EventStartGame, EventLeaveRoom:
		ctl.handleRoom(sid, c, env)
	case EventPlayerState, EventPlayerShoot, EventPlayerHit, EventPlayerDeath, EventPlayerRespawn:
		ctl.handleGame(sid, c, env)
	case EventPing:
		ctl.handlePing(c, env)
	default:
		log.Warn().Str("module", "signal").Str("event", env.Event).Msg("unknown event")
		err := fmt.Errorf("%w: unknown event %q", domain.ErrBadPayload, env.Event)
		ctl.finish(sid, c, env, func(orch.CallOption) orch.Result { return orch.Result{Err: err} })
	}
}

// finish runs a command and acknowledges it, when asked to, before any of its
// broadcasts go out. Requests rejected before reaching the orchestrator are
// acknowledged here.
func (ctl *SignalWSController) finish(sid core.SessionID, c *WsSignalConn, env core.Envelope, cmd func(orch.CallOption) orch.Result) {
	replied := false
	reply := orch.WithReply(func(res orch.Result) {
		replied = true
		ctl.reply(c, env, res)
	})
	res := cmd(reply)
	if res.Err != nil {
		log.Debug().Err(res.Err).Str("module", "signal").Str("sid", string(sid)).Str("event", env.Event).Msg("request rejected")
	}
	if !replied {
		ctl.reply(c, env, res)
	}
}

func (ctl *SignalWSController) reply(c *WsSignalConn, env core.Envelope, res orch.Result) {
	if env.Ack == nil {
		return
	}
	var data any = res.Reply
	if res.Err != nil {
		data = orch.NewErrorAck(res.Err)
	}
	ctl.sendAck(c, *env.Ack, data)
}

func (ctl *SignalWSController) sendAck(c *WsSignalConn, ack uint64, v any) {
	b, err := core.EncodeAck(ack, v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendAck marshal")
		return
	}
	_ = c.TrySend(b)
}

// decode unmarshals the envelope data; absent data yields the zero value.
func decode[T any](env core.Envelope) (T, error) {
	var v T
	if len(env.Data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", domain.ErrBadPayload, env.Event, err)
	}
	return v, nil
}
