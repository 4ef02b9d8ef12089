// Package service runs the tracker as a long lived daemon: a periodic market
// refresh, the cache eviction sweep, the alert sync, and a small read-only
// HTTP API over the engine.
package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/artkachenko/wenmoon"
	"github.com/artkachenko/wenmoon/alertsvc"
	"github.com/artkachenko/wenmoon/coingecko"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Service owns the engine and its background jobs.
type Service struct {
	cfg  Config
	log  zerolog.Logger
	eng  *wenmoon.Engine
	cron *cron.Cron
	http *http.Server
}

// New builds a service from the configuration, wiring the live CoinGecko and
// alert service clients.
func New(cfg Config, log zerolog.Logger) (*Service, error) {
	store, err := wenmoon.NewStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	var geckoOpts []coingecko.Option
	if cfg.CoinGeckoAPIKey != "" {
		geckoOpts = append(geckoOpts, coingecko.WithAPIKey(cfg.CoinGeckoAPIKey))
	}
	var alertOpts []alertsvc.Option
	if cfg.AlertBaseURL != "" {
		alertOpts = append(alertOpts, alertsvc.WithBaseURL(cfg.AlertBaseURL))
	}

	eng, err := wenmoon.NewEngine(store, coingecko.New(geckoOpts...), alertsvc.New(alertOpts...))
	if err != nil {
		return nil, err
	}
	return NewWithEngine(cfg, log, eng), nil
}

// NewWithEngine builds a service around an existing engine. Tests inject an
// engine with fake providers through it.
func NewWithEngine(cfg Config, log zerolog.Logger, eng *wenmoon.Engine) *Service {
	s := &Service{
		cfg:  cfg,
		log:  log,
		eng:  eng,
		cron: cron.New(),
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Run starts the jobs and the HTTP server, and blocks until the context is
// canceled or the server fails.
func (s *Service) Run(ctx context.Context) error {
	if err := s.startJobs(); err != nil {
		return err
	}
	s.cron.Start()
	defer s.cron.Stop()

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
		errc <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
