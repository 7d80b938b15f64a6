package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/dkeye/Arena/internal/app/orch"
	"github.com/dkeye/Arena/internal/config"
	"github.com/dkeye/Arena/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

type SignalWSController struct {
	Orch    *orch.Orchestrator
	Cfg     *config.Config
	Limiter *RoomRateLimiter
}

func NewSignalWSController(o *orch.Orchestrator, cfg *config.Config) *SignalWSController {
	return &SignalWSController{
		Orch:    o,
		Cfg:     cfg,
		Limiter: NewRoomRateLimiter(cfg.CreateRoomLimit, cfg.CreateRoomInterval),
	}
}

// WsSignalConn is one client's WebSocket. Only writePump writes to conn.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWsSignalConn(ws *websocket.Conn, buffer int) *WsSignalConn {
	return &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, buffer),
	}
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and serves the connection until either
// pump stops, then runs the disconnect path.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(uuid.NewString())
	logger := log.With().Str("module", "signal").Str("sid", string(sid)).Str("client", c.GetString("client_token")).Logger()

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error().Err(err).Msg("ws upgrade")
		return
	}
	logger.Info().Msg("new WS connection")

	conn := newWsSignalConn(ws, ctl.Cfg.SendBuffer)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ctl.Orch.Registry.BindSignal(sid, conn, cancel)

	var wg conc.WaitGroup
	wg.Go(func() {
		defer cancel()
		ctl.writePump(ctx, sid, conn)
	})
	wg.Go(func() {
		defer cancel()
		ctl.readPump(sid, conn)
	})
	wg.Wait()

	ctl.Orch.Disconnect(sid)
	ctl.Limiter.Forget(sid)
	logger.Info().Msg("WS connection closed")
}
