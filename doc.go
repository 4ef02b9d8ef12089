// Package wenmoon implements the ledger and synchronization core of a
// personal cryptocurrency tracker. It is designed to be local-first: every
// holding, transaction and tracked coin lives in plain files owned by the
// user, and market data is only ever layered on top of that record.
//
// The core responsibilities are:
//   - Ledger Management: recording buy, sell and transfer events per
//     portfolio, validating every outgoing event against the running holding
//     it would leave behind.
//   - Valuation: a stateless engine that turns a ledger and the latest market
//     snapshots into per-coin groupings, a portfolio total, and intraday and
//     all-time change metrics.
//   - Coin Lifecycle: the tracked-coin set with pinning, user ordering, and
//     the archive-versus-delete decision that keeps the ledger referentially
//     intact.
//   - Price Alerts: reconciling server-fetched alerts into the coin set and
//     retiring an alert once it has fired.
//   - Market Data Cache: a coarse time-bounded cache that avoids refetching
//     snapshots the tracker already knows fresh.
//
// This package is the foundation for the `wenmoon` command-line tool and the
// `wenmoond` sync service; both drive it exclusively through the Engine
// facade so that all mutations funnel through a single owner.
package wenmoon
