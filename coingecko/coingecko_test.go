package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/artkachenko/wenmoon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, path, response string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL))
}

func TestFetchMarketData(t *testing.T) {
	client := newTestServer(t, "/coins/markets", `[
		{"id":"bitcoin","symbol":"btc","name":"Bitcoin","image":"https://img/btc.png",
		 "current_price":69314.25,"market_cap":1364301867843,
		 "high_24h":69958,"low_24h":68014,"price_change_percentage_24h":1.46},
		{"id":"ethereum","symbol":"eth","name":"Ethereum",
		 "current_price":3500,"market_cap":420000000000,
		 "high_24h":3600,"low_24h":3400,"price_change_percentage_24h":null}
	]`)

	snapshots, err := client.FetchMarketData(context.Background(), []string{"bitcoin", "ethereum"})
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	btc := snapshots["bitcoin"]
	assert.True(t, btc.Price.Equal(wenmoon.USD(69314.25)), "bitcoin price = %s", btc.Price)
	assert.True(t, btc.HasChange)
	assert.True(t, btc.Change24h.Equal(1.46), "bitcoin change = %s", btc.Change24h)

	// a null 24h change decodes as "no change figure", not zero.
	eth := snapshots["ethereum"]
	assert.False(t, eth.HasChange)
	assert.True(t, eth.Price.Equal(wenmoon.USD(3500)))
}

func TestFetchMarketData_EmptyRequest(t *testing.T) {
	client := New(WithBaseURL("http://127.0.0.1:0")) // must not be reached
	snapshots, err := client.FetchMarketData(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestFetchMarketData_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()
	client := New(WithBaseURL(srv.URL))

	_, err := client.FetchMarketData(context.Background(), []string{"bitcoin"})
	require.Error(t, err)
}

func TestCoinDetails(t *testing.T) {
	client := newTestServer(t, "/coins/markets", `[
		{"id":"solana","symbol":"sol","name":"Solana","image":"https://img/sol.png",
		 "current_price":150,"market_cap":70000000000,
		 "high_24h":155,"low_24h":145,"price_change_percentage_24h":-2.1}
	]`)

	coin, err := client.CoinDetails(context.Background(), "solana")
	require.NoError(t, err)
	assert.Equal(t, "solana", coin.ID)
	assert.Equal(t, "SOL", coin.Symbol)
	assert.Equal(t, "https://img/sol.png", coin.ImageURL)
	assert.True(t, coin.HasMarket)
	assert.True(t, coin.Price.Equal(wenmoon.USD(150)))
}

func TestCoinDetails_NotFound(t *testing.T) {
	client := newTestServer(t, "/coins/markets", `[]`)
	_, err := client.CoinDetails(context.Background(), "unobtainium")
	require.Error(t, err)
}

func TestSearch(t *testing.T) {
	client := newTestServer(t, "/search", `{
		"coins":[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","thumb":"https://img/btc-thumb.png","market_cap_rank":1},
			{"id":"bitcoin-cash","symbol":"bch","name":"Bitcoin Cash","thumb":"","market_cap_rank":20}
		],
		"exchanges":[{"id":"binance"}]
	}`)

	results, err := client.Search(context.Background(), "bitcoin")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "bitcoin", results[0].ID)
	assert.Equal(t, 1, results[0].CapRank)

	coin := results[0].Coin()
	assert.Equal(t, "BTC", coin.Symbol)
	assert.False(t, coin.HasMarket)
}

func TestSimplePrice(t *testing.T) {
	client := newTestServer(t, "/simple/price", `{"bitcoin":{"usd":69314.25}}`)

	price, err := client.SimplePrice(context.Background(), "bitcoin")
	require.NoError(t, err)
	assert.True(t, price.Equal(wenmoon.USD(69314.25)), "price = %s", price)
}

func TestSimplePrice_MissingCoin(t *testing.T) {
	client := newTestServer(t, "/simple/price", `{}`)
	_, err := client.SimplePrice(context.Background(), "bitcoin")
	require.Error(t, err)
}
