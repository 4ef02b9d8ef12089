package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/artkachenko/wenmoon"
)

// SearchResult is one coin matched by a free-text search, in the API's own
// relevance order.
type SearchResult struct {
	ID      string `json:"id"`
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	Thumb   string `json:"thumb"`
	CapRank int    `json:"market_cap_rank"`
}

// Search finds coins by name or ticker. Results go stale slowly, so the
// daily-cached client serves them.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	addr := c.endpoint("/search", q)

	// the payload nests coins next to exchanges and categories we ignore.
	var payload struct {
		Coins []SearchResult `json:"coins"`
	}
	if err := jwget(ctx, c.daily, addr, &payload); err != nil {
		return nil, fmt.Errorf("error searching for %q: %w", query, err)
	}
	return payload.Coins, nil
}

// Coin converts a search result into a trackable coin record, without market
// data yet.
func (r SearchResult) Coin() *wenmoon.Coin {
	coin := wenmoon.NewCoin(r.ID, strings.ToUpper(r.Symbol), r.Name)
	coin.ImageURL = r.Thumb
	return coin
}
