// Package coingecko fetches crypto market data from the CoinGecko public
// API. It implements the engine's MarketProvider interface and the search
// surface used when adding a coin to tracking.
//
// The free API needs no key; a pro key can be set to lift the rate limits.
package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/artkachenko/wenmoon"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public CoinGecko API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Client talks to the CoinGecko API.
type Client struct {
	baseURL string
	apiKey  string
	live    *http.Client // quotes, never cached
	daily   *http.Client // coin lists and search, cached per day
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithAPIKey sets a pro API key sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// New creates a CoinGecko client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		live:    &http.Client{Timeout: 15 * time.Second},
		daily:   newDailyCachingClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpoint(path string, query url.Values) string {
	if c.apiKey != "" {
		query.Set("x_cg_pro_api_key", c.apiKey)
	}
	return c.baseURL + path + "?" + query.Encode()
}

// marketRecord is one row of the /coins/markets response.
//
//	{
//	  "id": "bitcoin",
//	  "symbol": "btc",
//	  "name": "Bitcoin",
//	  "image": "https://assets.coingecko.com/coins/images/1/large/bitcoin.png",
//	  "current_price": 69314,
//	  "market_cap": 1364301867843,
//	  "high_24h": 69958,
//	  "low_24h": 68014,
//	  "price_change_percentage_24h": 1.46125
//	}
type marketRecord struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"current_price"`
	MarketCap decimal.Decimal `json:"market_cap"`
	High24h   decimal.Decimal `json:"high_24h"`
	Low24h    decimal.Decimal `json:"low_24h"`
	Change24h *float64        `json:"price_change_percentage_24h"` // null for thin markets
}

func (r marketRecord) snapshot() wenmoon.Snapshot {
	snap := wenmoon.Snapshot{
		Price:     wenmoon.USD(r.Price),
		MarketCap: wenmoon.USD(r.MarketCap),
		High24h:   wenmoon.USD(r.High24h),
		Low24h:    wenmoon.USD(r.Low24h),
	}
	if r.Change24h != nil {
		snap.Change24h = wenmoon.Percent(*r.Change24h)
		snap.HasChange = true
	}
	return snap
}

// FetchMarketData implements the wenmoon.MarketProvider interface. It fetches
// a snapshot for every requested coin id in a single call; ids unknown to
// CoinGecko are simply absent from the result.
func (c *Client) FetchMarketData(ctx context.Context, coinIDs []string) (map[string]wenmoon.Snapshot, error) {
	if len(coinIDs) == 0 {
		return map[string]wenmoon.Snapshot{}, nil
	}
	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("ids", strings.Join(coinIDs, ","))
	query.Set("price_change_percentage", "24h")
	query.Set("per_page", fmt.Sprint(len(coinIDs)))
	addr := c.endpoint("/coins/markets", query)

	var records []marketRecord
	if err := jwget(ctx, c.live, addr, &records); err != nil {
		return nil, fmt.Errorf("error fetching market data: %w", err)
	}
	result := make(map[string]wenmoon.Snapshot, len(records))
	for _, r := range records {
		result[r.ID] = r.snapshot()
	}
	return result, nil
}

// CoinDetails fetches the static identity of a single coin, the fields
// needed to start tracking it.
func (c *Client) CoinDetails(ctx context.Context, coinID string) (*wenmoon.Coin, error) {
	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("ids", coinID)
	addr := c.endpoint("/coins/markets", query)

	var records []marketRecord
	if err := jwget(ctx, c.live, addr, &records); err != nil {
		return nil, fmt.Errorf("error fetching coin %q: %w", coinID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("coin %q not found", coinID)
	}
	r := records[0]
	coin := wenmoon.NewCoin(r.ID, strings.ToUpper(r.Symbol), r.Name)
	coin.ImageURL = r.Image
	coin.ApplySnapshot(r.snapshot())
	return coin, nil
}
