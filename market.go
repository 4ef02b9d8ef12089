package wenmoon

import (
	"context"
	"time"
)

// Snapshot is the most recent market observation for one coin. A coin with
// no snapshot yet simply has none: lookups return (Snapshot, false) so that
// the valuation engine handles unknown market data in one explicit branch
// instead of zero-coalescing at every use site.
type Snapshot struct {
	Price     Money     `json:"price"`
	MarketCap Money     `json:"marketCap"`
	High24h   Money     `json:"high24h"`
	Low24h    Money     `json:"low24h"`
	Change24h Percent   `json:"change24h"`
	HasChange bool      `json:"hasChange"` // some thin markets report no 24h change
	FetchedAt time.Time `json:"-"`
}

// MarketProvider fetches current market snapshots for a set of coin ids.
// Implementations live outside the engine (see the coingecko package).
type MarketProvider interface {
	FetchMarketData(ctx context.Context, coinIDs []string) (map[string]Snapshot, error)
}

// AlertProvider talks to the price-alert backend. The backend owns the alert
// records and fires the push notifications; the engine registers, deletes,
// and reads alerts back through this interface (see the alertsvc package).
type AlertProvider interface {
	FetchAlerts(ctx context.Context, authToken, deviceToken string) ([]PriceAlert, error)
	RegisterAlert(ctx context.Context, authToken, deviceToken string, alert PriceAlert) (PriceAlert, error)
	DeleteAlert(ctx context.Context, authToken, alertID string) error
}

// PriceLookup resolves the current snapshot for a coin id, reporting whether
// one is known. It is how the valuation engine sees market data.
type PriceLookup func(coinID string) (Snapshot, bool)
