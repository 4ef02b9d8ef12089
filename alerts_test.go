package wenmoon

import (
	"strings"
	"testing"
)

func TestNewPriceAlert_Direction(t *testing.T) {
	coin := NewCoin("bitcoin", "BTC", "Bitcoin")
	coin.ApplySnapshot(Snapshot{Price: USD(50000)})

	tests := []struct {
		name   string
		target Money
		want   AlertDirection
	}{
		{"target above current price", USD(60000), Above},
		{"target below current price", USD(40000), Below},
		{"target equals current price", USD(50000), Above},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			alert := NewPriceAlert(coin, tc.target)
			if alert.Direction != tc.want {
				t.Errorf("Direction = %s, want %s", alert.Direction, tc.want)
			}
			if !strings.HasPrefix(alert.ID, "bitcoin-") {
				t.Errorf("ID = %q, want a bitcoin- prefix", alert.ID)
			}
			if !alert.Active {
				t.Error("new alert is not active")
			}
		})
	}
}

func TestNewPriceAlert_NoMarketData(t *testing.T) {
	coin := NewCoin("bitcoin", "BTC", "Bitcoin")
	alert := NewPriceAlert(coin, USD(100))
	if alert.Direction != Above {
		t.Errorf("Direction without market data = %s, want %s", alert.Direction, Above)
	}
}

func TestReconcileAlerts_FullReplacement(t *testing.T) {
	btc := NewCoin("bitcoin", "BTC", "Bitcoin")
	btc.Alerts = []PriceAlert{{ID: "stale", CoinID: "bitcoin"}}
	eth := NewCoin("ethereum", "ETH", "Ethereum")
	eth.Alerts = []PriceAlert{{ID: "gone", CoinID: "ethereum"}}
	coins := []*Coin{btc, eth}

	fetched := []PriceAlert{
		{ID: "a1", CoinID: "bitcoin", Active: true},
		{ID: "a2", CoinID: "bitcoin", Active: true},
		{ID: "other", CoinID: "untracked", Active: true},
	}
	ReconcileAlerts(fetched, coins)

	if len(btc.Alerts) != 2 {
		t.Fatalf("bitcoin has %d alerts, want 2", len(btc.Alerts))
	}
	if btc.Alerts[0].ID != "a1" || btc.Alerts[1].ID != "a2" {
		t.Errorf("bitcoin alerts = %v, want [a1 a2]", btc.Alerts)
	}
	// ethereum was absent from the fetch: its list is emptied, not kept.
	if len(eth.Alerts) != 0 {
		t.Errorf("ethereum has %d alerts, want 0", len(eth.Alerts))
	}
}

func TestReconcileAlerts_Idempotent(t *testing.T) {
	btc := NewCoin("bitcoin", "BTC", "Bitcoin")
	coins := []*Coin{btc}
	fetched := []PriceAlert{{ID: "a1", CoinID: "bitcoin", Active: true}}

	ReconcileAlerts(fetched, coins)
	ReconcileAlerts(fetched, coins)

	if len(btc.Alerts) != 1 {
		t.Errorf("bitcoin has %d alerts after double reconcile, want 1", len(btc.Alerts))
	}
}

func TestDeactivateAlert(t *testing.T) {
	btc := NewCoin("bitcoin", "BTC", "Bitcoin")
	btc.Alerts = []PriceAlert{
		{ID: "a1", CoinID: "bitcoin"},
		{ID: "a2", CoinID: "bitcoin"},
	}
	coins := []*Coin{btc}

	if !DeactivateAlert("a1", coins) {
		t.Fatal("DeactivateAlert() returned false for an existing alert")
	}
	if len(btc.Alerts) != 1 || btc.Alerts[0].ID != "a2" {
		t.Errorf("alerts after deactivation = %v, want [a2]", btc.Alerts)
	}
	if DeactivateAlert("a1", coins) {
		t.Error("DeactivateAlert() returned true for an already removed alert")
	}
}
