package wenmoon

import "fmt"

// LifecycleState tags a coin as visible in tracking or kept only for ledger
// referential integrity.
type LifecycleState string

const (
	// Active coins appear in the tracked list.
	Active LifecycleState = "active"
	// Archived coins are hidden from tracking but stay resolvable by the
	// ledger, because transactions still reference them.
	Archived LifecycleState = "archived"
)

// ParseLifecycleState parses a string into a LifecycleState.
func ParseLifecycleState(s string) (LifecycleState, error) {
	switch LifecycleState(s) {
	case Active, Archived:
		return LifecycleState(s), nil
	default:
		return "", fmt.Errorf("unknown lifecycle state: %q", s)
	}
}

// Coin is a tracked (or archived) cryptocurrency. Its ID is the stable
// provider-assigned identity, e.g. "bitcoin"; Symbol is the display ticker,
// e.g. "BTC".
type Coin struct {
	ID       string         `json:"id"`
	Symbol   string         `json:"symbol"`
	Name     string         `json:"name,omitempty"`
	ImageURL string         `json:"image,omitempty"`
	State    LifecycleState `json:"state"`
	Pinned   bool           `json:"pinned,omitempty"`

	// Last known market scalars, persisted so a restart shows something
	// before the first fetch completes. Absent until HasMarket is set.
	// HasChange is persisted separately: thin markets report no 24h change,
	// and such a coin must stay out of the intraday metric.
	Price     Money   `json:"price,omitzero"`
	MarketCap Money   `json:"marketCap,omitzero"`
	Change24h Percent `json:"change24h,omitempty"`
	HasChange bool    `json:"hasChange,omitempty"`
	HasMarket bool    `json:"hasMarket,omitempty"`

	Alerts []PriceAlert `json:"alerts,omitempty"`
}

// NewCoin creates an active, unpinned coin with no market data yet.
func NewCoin(id, symbol, name string) *Coin {
	return &Coin{ID: id, Symbol: symbol, Name: name, State: Active}
}

// Archived reports whether the coin is kept only for the ledger.
func (c *Coin) Archived() bool { return c.State == Archived }

// ApplySnapshot copies the scalar market fields from a fresh snapshot onto
// the coin record for persistence.
func (c *Coin) ApplySnapshot(snap Snapshot) {
	c.Price = snap.Price
	c.MarketCap = snap.MarketCap
	c.Change24h = snap.Change24h
	c.HasChange = snap.HasChange
	c.HasMarket = true
}

// Snapshot rebuilds a market snapshot from the persisted scalars, reporting
// whether the coin has seen market data at all.
func (c *Coin) Snapshot() (Snapshot, bool) {
	if !c.HasMarket {
		return Snapshot{}, false
	}
	return Snapshot{
		Price:     c.Price,
		MarketCap: c.MarketCap,
		Change24h: c.Change24h,
		HasChange: c.HasChange,
	}, true
}

// MarshalJSON implements the json.Marshaler interface with a stable field
// order for canonical JSONL files.
func (c *Coin) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", c.ID)
	w.Append("symbol", c.Symbol)
	w.Optional("name", c.Name)
	w.Optional("image", c.ImageURL)
	w.Append("state", c.State)
	w.Optional("pinned", c.Pinned)
	if c.HasMarket {
		w.Append("price", c.Price)
		w.Append("marketCap", c.MarketCap)
		if c.HasChange {
			w.Append("change24h", float64(c.Change24h))
			w.Append("hasChange", true)
		}
		w.Append("hasMarket", true)
	}
	if len(c.Alerts) > 0 {
		w.Append("alerts", c.Alerts)
	}
	return w.MarshalJSON()
}
