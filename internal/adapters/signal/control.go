package signal

import "github.com/dkeye/Arena/internal/core"

// handlePing answers application-level pings used by clients for latency.
func (ctl *SignalWSController) handlePing(c *WsSignalConn, env core.Envelope) {
	if env.Ack != nil {
		ctl.sendAck(c, *env.Ack, map[string]string{"type": "pong"})
		return
	}
	if f, err := core.EncodeEvent("pong", nil); err == nil {
		_ = c.TrySend(f)
	}
}
