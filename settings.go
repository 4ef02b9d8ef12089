package wenmoon

import "github.com/google/uuid"

// Settings is the small key-value state that is not part of any ledger: the
// user-defined coin ordering, the selected portfolio, and the device token
// the alert service knows this install by. Persisted as a single JSON
// document.
type Settings struct {
	CoinOrder         []string  `json:"coinOrder,omitempty"`
	SelectedPortfolio uuid.UUID `json:"selectedPortfolio,omitempty"`
	DeviceToken       string    `json:"deviceToken,omitempty"`
}
