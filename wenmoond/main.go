// Command wenmoond runs the tracker as a daemon: periodic market refreshes,
// alert syncs, and a read-only HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/artkachenko/wenmoon/service"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := service.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	svc, err := service.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("starting service failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("service failed")
	}
}
