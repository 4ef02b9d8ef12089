package wenmoon

import "github.com/shopspring/decimal"

// Change pairs an absolute change in value with its percentage.
type Change struct {
	Value   Money
	Percent Percent
}

// Valuation is the display-ready view of a portfolio: per-coin groupings,
// the grouped total, and the two change metrics. It is computed by a pure
// function of the ledger and the current market snapshots; recomputing with
// the same inputs gives the same outputs.
type Valuation struct {
	Groups   []CoinGroup
	Total    Money
	Intraday Change // 24h window
	AllTime  Change
}

// Valuate computes the full valuation of a ledger against the given market
// snapshots. Coins with unknown market data contribute zero value and are
// left out of the intraday metric; that is the single branch handling
// missing data.
func Valuate(l *Ledger, prices PriceLookup) Valuation {
	groups := l.GroupByCoin(prices)

	total := USD(0)
	for _, g := range groups {
		total = total.Add(g.Value)
	}

	return Valuation{
		Groups:   groups,
		Total:    total,
		Intraday: intradayChange(groups, prices),
		AllTime:  allTimeChange(l, total),
	}
}

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// intradayChange accumulates each coin's 24h move and reconstructs the
// portfolio value 24h ago to derive the percentage. Coins without both a
// price and a 24h change percentage are skipped.
func intradayChange(groups []CoinGroup, prices PriceLookup) Change {
	change := USD(0)
	previous := USD(0)
	for _, g := range groups {
		snap, ok := prices(g.CoinID)
		if !ok || !snap.HasChange {
			continue
		}
		factor := snap.Change24h.Factor()
		value := snap.Price.Mul(g.Holding)
		change = change.Add(value.Scale(factor))
		// value == previous * (1 + factor); a -100% move makes the
		// divisor zero and the previous value unknowable, skip it.
		divisor := one.Add(factor)
		if !divisor.IsZero() {
			previous = previous.Add(value.Unscale(divisor))
		}
	}
	return Change{Value: change, Percent: ratioPercent(change, previous)}
}

// allTimeChange replays the full transaction history in chronological order.
// Buys grow the initial investment, sells realize value while a positive
// holding remains, and transfers only move quantity: they are not cost-basis
// events.
func allTimeChange(l *Ledger, currentTotal Money) Change {
	invested := USD(0)
	realized := USD(0)
	remaining := make(map[string]Quantity)

	for _, tx := range l.transactions {
		switch tx.Type {
		case TxBuy:
			invested = invested.Add(tx.Cost())
			remaining[tx.CoinID] = remaining[tx.CoinID].Add(tx.Quantity)
		case TxTransferIn:
			remaining[tx.CoinID] = remaining[tx.CoinID].Add(tx.Quantity)
		case TxSell:
			if remaining[tx.CoinID].IsPositive() {
				realized = realized.Add(tx.Cost())
				remaining[tx.CoinID] = remaining[tx.CoinID].Sub(tx.Quantity)
			}
		case TxTransferOut:
			if remaining[tx.CoinID].IsPositive() {
				remaining[tx.CoinID] = remaining[tx.CoinID].Sub(tx.Quantity)
			}
		}
	}

	value := currentTotal.Add(realized).Sub(invested)
	return Change{Value: value, Percent: ratioPercent(value, invested)}
}

// ratioPercent returns part/whole as a percentage, zero when the whole is
// zero.
func ratioPercent(part, whole Money) Percent {
	if whole.IsZero() {
		return 0
	}
	pct := part.Decimal().Div(whole.Decimal()).Mul(hundred)
	return Percent(pct.InexactFloat64())
}
