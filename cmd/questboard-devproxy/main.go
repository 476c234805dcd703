package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/chrissolanilla/quest-tracker/internal/config"
	"github.com/chrissolanilla/quest-tracker/internal/devproxy"
	"github.com/chrissolanilla/quest-tracker/internal/logger"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	lvl, _ := cfg.Level()
	lg := logger.New("questboard-devproxy").Level(lvl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := devproxy.Run(ctx, cfg, lg); err != nil {
		lg.Error().Err(err).Msg("questboard-devproxy exited with error")
		os.Exit(1)
	}
}
