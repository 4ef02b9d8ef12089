package coingecko

import (
	"context"
	"fmt"
	"math"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/artkachenko/wenmoon"
)

/*
	/simple/price answers with the coin id as a dynamic key:

	{
	    "bitcoin": {
	        "usd": 69314.25
	    }
	}
*/

// SimplePrice fetches the bare USD price of one coin. It is the cheapest
// endpoint CoinGecko has and is used for the alert target-price preview,
// where the full market row is overkill.
func (c *Client) SimplePrice(ctx context.Context, coinID string) (wenmoon.Money, error) {
	query := url.Values{}
	query.Set("ids", coinID)
	query.Set("vs_currencies", "usd")
	addr := c.endpoint("/simple/price", query)

	var jobj any
	if err := jwget(ctx, c.live, addr, &jobj); err != nil {
		return wenmoon.Money{}, fmt.Errorf("error fetching price of %q: %w", coinID, err)
	}
	path := fmt.Sprintf("$[%q].usd", coinID)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return wenmoon.Money{}, fmt.Errorf("error parsing price of %q: %q %w", coinID, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok || math.IsNaN(val) {
		return wenmoon.Money{}, fmt.Errorf("error parsing price of %q: %q not a number: %v", coinID, path, jval)
	}
	return wenmoon.USD(val), nil
}
