package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	router "github.com/dkeye/Arena/internal/adapters/http"
	"github.com/dkeye/Arena/internal/app"
	"github.com/dkeye/Arena/internal/app/orch"
	"github.com/dkeye/Arena/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cmd := &cli.Command{
		Name:  "arena-relay",
		Usage: "room and relay server for 1v1 arena matches",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Usage:   "config environment, selects config/config.<env>.yaml",
				Sources: cli.EnvVars("CONFIG_ENV"),
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "listen port, overrides config and PORT",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}
	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return err
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}

	policy, err := app.ParsePolicy(cfg.Backpressure)
	if err != nil {
		return err
	}
	reg := app.NewRegistry()
	o := &orch.Orchestrator{
		Registry: reg,
		Rooms:    app.NewRoomManager(),
		Policy:   policy,
		Relay:    app.NewRelay(reg),
	}

	r := router.SetupRouter(ctx, cfg, o)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Arena relay started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
	return nil
}
