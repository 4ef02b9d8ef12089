package wenmoon

import (
	"fmt"

	"github.com/google/uuid"
)

// AlertDirection is the side of the target price an alert watches.
type AlertDirection string

const (
	Above AlertDirection = "above"
	Below AlertDirection = "below"
)

// PriceAlert is a server-registered price watch owned by exactly one coin.
type PriceAlert struct {
	ID          string         `json:"id"`
	CoinID      string         `json:"coin"`
	Symbol      string         `json:"symbol"`
	TargetPrice Money          `json:"target"`
	Direction   AlertDirection `json:"direction"`
	Active      bool           `json:"active"`
}

// NewPriceAlert creates an alert for a coin. The direction is derived once at
// creation time by comparing the target to the coin's current price; it does
// not flip later as the market moves.
func NewPriceAlert(coin *Coin, target Money) PriceAlert {
	direction := Above
	if coin.HasMarket && target.LessThan(coin.Price) {
		direction = Below
	}
	return PriceAlert{
		ID:          fmt.Sprintf("%s-%s", coin.ID, uuid.NewString()),
		CoinID:      coin.ID,
		Symbol:      coin.Symbol,
		TargetPrice: target,
		Direction:   direction,
		Active:      true,
	}
}

// ReconcileAlerts replaces each coin's alert list with the subset of fetched
// alerts that reference it. The semantics are full replacement, not merge: a
// coin absent from the fetch result ends up with no alerts. Reconciling the
// same fetch twice is a no-op the second time.
func ReconcileAlerts(fetched []PriceAlert, coins []*Coin) {
	byCoin := make(map[string][]PriceAlert, len(coins))
	for _, alert := range fetched {
		byCoin[alert.CoinID] = append(byCoin[alert.CoinID], alert)
	}
	for _, coin := range coins {
		coin.Alerts = byCoin[coin.ID]
	}
}

// DeactivateAlert handles a server-reported "alert fired" event: it removes
// the alert from the first coin holding it and stops. The server keeps the
// historical record; locally a fired alert has no further use.
func DeactivateAlert(alertID string, coins []*Coin) bool {
	for _, coin := range coins {
		for i, alert := range coin.Alerts {
			if alert.ID == alertID {
				coin.Alerts = append(coin.Alerts[:i], coin.Alerts[i+1:]...)
				return true
			}
		}
	}
	return false
}
