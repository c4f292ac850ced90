package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"monitor-hub/backend/global"
	"monitor-hub/backend/initialize"
	"monitor-hub/backend/server"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to the YAML config file")
	flag.Parse()

	app, err := initialize.Build(*configPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("startup failed")
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Sweeper.Start(ctx); err != nil {
		global.Logger.Fatal().Err(err).Msg("start presence sweeper")
	}
	defer app.Sweeper.Stop()

	if err := server.RunHTTP(ctx, app.Cfg.Addr(), app.Router); err != nil {
		global.Logger.Error().Err(err).Msg("http server")
		return
	}
	global.Logger.Info().Msg("bye")
}
