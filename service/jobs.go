package service

import (
	"context"
	"fmt"
	"time"

	"github.com/artkachenko/wenmoon"
)

// jobTimeout bounds one background run; a wedged fetch must not pile up
// cron invocations.
const jobTimeout = time.Minute

// startJobs registers the periodic work: the market refresh, the wholesale
// cache sweep, and the alert sync.
func (s *Service) startJobs() error {
	if _, err := s.cron.AddFunc(every(s.cfg.RefreshInterval), s.refreshJob); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(every(wenmoon.EvictionInterval), s.sweepJob); err != nil {
		return err
	}
	if s.cfg.AlertSyncInterval > 0 {
		if _, err := s.cron.AddFunc(every(s.cfg.AlertSyncInterval), s.alertSyncJob); err != nil {
			return err
		}
	}
	return nil
}

func every(d time.Duration) string { return fmt.Sprintf("@every %s", d) }

func (s *Service) refreshJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.eng.RefreshMarketData(ctx); err != nil {
		s.log.Warn().Err(err).Msg("market refresh failed")
		return
	}
	s.log.Debug().Msg("market data refreshed")
}

func (s *Service) sweepJob() {
	s.eng.Cache().Clear()
	s.log.Debug().Msg("market cache cleared")
}

func (s *Service) alertSyncJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.eng.SyncAlerts(ctx, s.cfg.AuthToken); err != nil {
		s.log.Warn().Err(err).Msg("alert sync failed")
		return
	}
	s.log.Debug().Msg("alerts synced")
}
