package http

import (
	"context"
	"net/http"

	"github.com/dkeye/Arena/internal/adapters/signal"
	"github.com/dkeye/Arena/internal/app/orch"
	"github.com/dkeye/Arena/internal/config"
	"github.com/dkeye/Arena/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func genClientToken() string {
	idStr := uuid.NewString()
	return idStr
}

// ClientTokenMiddleware tags each browser with a cookie so its connections
// can be correlated in logs.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	ctrl := signal.NewSignalWSController(o, cfg)
	api := r.Group("/api")

	api.GET("/ws", func(c *gin.Context) {
		ctrl.HandleSignal(ctx, c)
	})

	// Read-only listings for tooling; clients use getRooms over the socket.
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, o.ListRooms())
	})
	api.GET("/rooms/:id", func(c *gin.Context) {
		room, ok := o.Room(domain.RoomID(c.Param("id")))
		if !ok {
			c.JSON(http.StatusNotFound, orch.NewErrorAck(domain.ErrRoomNotFound))
			return
		}
		c.JSON(http.StatusOK, room)
	})

	return r
}
