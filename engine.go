package wenmoon

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Engine is the single owner of the in-memory state: the book of portfolios,
// the coin tracker, and the market cache. Every mutation goes through it,
// under one mutex, and is persisted before the call returns.
//
// Persistence is best effort: when a write to disk fails after the in-memory
// mutation succeeded, the mutation stays applied and the error reports the
// store failure. The next successful save converges the file again.
type Engine struct {
	mu sync.Mutex

	store    *Store
	book     *Book
	tracker  *Tracker
	cache    *MarketCache
	market   MarketProvider
	alerts   AlertProvider
	settings Settings
}

// NewEngine loads (or initializes) the state from the store. A fresh data
// directory gets the starter coin set and a default portfolio.
func NewEngine(store *Store, market MarketProvider, alerts AlertProvider) (*Engine, error) {
	book, err := store.LoadBook()
	if err != nil {
		return nil, err
	}
	settings, err := store.LoadSettings()
	if err != nil {
		return nil, err
	}
	coins, existed, err := store.LoadCoins()
	if err != nil {
		return nil, err
	}
	if !existed {
		coins = StarterCoins()
		if err := store.SaveCoins(coins); err != nil {
			return nil, err
		}
	}
	tracker := NewTracker(coins)
	if len(settings.CoinOrder) > 0 {
		tracker.ApplyOrder(settings.CoinOrder)
	} else {
		tracker.Sort()
	}
	return &Engine{
		store:    store,
		book:     book,
		tracker:  tracker,
		cache:    NewMarketCache(),
		market:   market,
		alerts:   alerts,
		settings: settings,
	}, nil
}

// Cache exposes the market cache, for the periodic eviction sweep.
func (e *Engine) Cache() *MarketCache { return e.cache }

// priceLookup resolves a price from the cache first, then from the last
// snapshot persisted on the coin record.
func (e *Engine) priceLookup(coinID string) (Snapshot, bool) {
	if snap, ok := e.cache.Lookup(coinID); ok {
		return snap, true
	}
	if coin, ok := e.tracker.Get(coinID); ok {
		return coin.Snapshot()
	}
	return Snapshot{}, false
}

// persistLedger saves the selected portfolio's ledger.
func (e *Engine) persistLedger() error {
	return e.store.SaveLedger(e.book.Selected())
}

// persistCoins saves the coin set in its current display order.
func (e *Engine) persistCoins() error {
	return e.store.SaveCoins(e.tracker.All())
}

// reorder re-applies an explicit user order after a mutation that re-sorted
// the list. Without one the market-cap sort from the mutation stands.
func (e *Engine) reorder() {
	if len(e.settings.CoinOrder) > 0 {
		e.tracker.ApplyOrder(e.settings.CoinOrder)
	}
}

// persistSettings saves the settings document with the current selection.
func (e *Engine) persistSettings() error {
	e.settings.SelectedPortfolio = e.book.Selected().ID()
	return e.store.SaveSettings(e.settings)
}

// RecordTransaction validates and appends a transaction to the selected
// portfolio. The referenced coin must be known to the tracker; recording
// against an archived coin reactivates it.
func (e *Engine) RecordTransaction(tx Transaction) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	coin, ok := e.tracker.Get(tx.CoinID)
	if !ok {
		return validationError(fmt.Errorf("unknown coin %q", tx.CoinID))
	}
	if err := e.book.Selected().Add(tx); err != nil {
		return err
	}
	if coin.Archived() {
		coin.State = Active
		if err := e.persistCoins(); err != nil {
			return err
		}
	}
	return e.persistLedger()
}

// EditTransaction replaces a transaction in the selected portfolio, keeping
// its identity. The holding check excludes the transaction being replaced.
func (e *Engine) EditTransaction(tx Transaction) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.book.Selected().Edit(tx); err != nil {
		return err
	}
	return e.persistLedger()
}

// DeleteTransaction removes a transaction from the selected portfolio.
func (e *Engine) DeleteTransaction(txID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.book.Selected().Remove(txID) {
		return validationError(fmt.Errorf("transaction %s not found", txID))
	}
	return e.persistLedger()
}

// Transaction returns one transaction of the selected portfolio.
func (e *Engine) Transaction(txID uuid.UUID) (Transaction, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Selected().Get(txID)
}

// GroupedTransactions returns the selected portfolio bucketed per coin and
// per day, ready for display.
func (e *Engine) GroupedTransactions() []CoinGroup {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Selected().GroupByCoin(e.priceLookup)
}

// Valuation computes the selected portfolio's total value and its intraday
// and all-time changes.
func (e *Engine) Valuation() Valuation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Valuate(e.book.Selected(), e.priceLookup)
}

// AddCoin starts tracking a coin. Re-adding an archived coin reactivates it
// in place, keeping its transaction history reachable.
func (e *Engine) AddCoin(coin *Coin) (*Coin, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	added := e.tracker.Add(coin)
	e.reorder()
	return added, e.persistCoins()
}

// DeleteCoin stops tracking a coin. A coin still referenced by any
// portfolio's transactions is archived instead of removed, so the ledger
// stays resolvable. Returns whether the coin was archived rather than
// deleted.
func (e *Engine) DeleteCoin(id string) (archived bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	archived, err = e.tracker.Delete(id, e.book.References(id))
	if err != nil {
		return false, err
	}
	if !archived {
		// a hard delete takes the cached market state with it.
		e.cache.Delete(id)
	}
	return archived, e.persistCoins()
}

// PinCoin moves a coin into the pinned group.
func (e *Engine) PinCoin(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.tracker.Pin(id); err != nil {
		return err
	}
	e.reorder()
	return e.persistCoins()
}

// UnpinCoin moves a coin back into the unpinned group.
func (e *Engine) UnpinCoin(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.tracker.Unpin(id); err != nil {
		return err
	}
	e.reorder()
	return e.persistCoins()
}

// MoveCoins reorders coins inside the pinned or unpinned group. The explicit
// order persists and survives market refreshes.
func (e *Engine) MoveCoins(pinned bool, from []int, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.tracker.Move(pinned, from, to); err != nil {
		return err
	}
	if err := e.persistCoins(); err != nil {
		return err
	}
	e.settings.CoinOrder = e.tracker.Order()
	return e.store.SaveSettings(e.settings)
}

// TrackedCoins returns the visible coins, pinned first.
func (e *Engine) TrackedCoins() []*Coin {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Tracked()
}

// CoinGroups returns the coins split into their display groups.
func (e *Engine) CoinGroups() (pinned, unpinned, archived []*Coin) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Pinned(), e.tracker.Unpinned(), e.tracker.ArchivedCoins()
}

// AllCoins returns every known coin, archived included.
func (e *Engine) AllCoins() []*Coin {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.All()
}

// Coin returns a coin by id, archived included.
func (e *Engine) Coin(id string) (*Coin, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Get(id)
}

// RefreshMarketData brings market snapshots up to date for every tracked
// coin plus any archived coin the selected portfolio still references. The
// cache answers only when it covers every requested coin; any miss triggers
// a wholesale fetch.
func (e *Engine) RefreshMarketData(ctx context.Context) error {
	e.mu.Lock()
	ids := e.refreshIDs()
	hits, misses := e.cache.Get(ids)
	e.mu.Unlock()

	snapshots := hits
	if len(misses) > 0 {
		fetched, err := e.market.FetchMarketData(ctx, ids)
		if err != nil {
			return fetchError(err)
		}
		snapshots = fetched
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for id, snap := range snapshots {
		if len(misses) > 0 {
			e.cache.Put(id, snap)
		}
		if coin, ok := e.tracker.Get(id); ok {
			coin.ApplySnapshot(snap)
		}
	}
	if len(e.settings.CoinOrder) == 0 {
		e.tracker.Sort()
	}
	return e.persistCoins()
}

// refreshIDs collects every coin id that needs a market snapshot.
func (e *Engine) refreshIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, c := range e.tracker.All() {
		seen[c.ID] = struct{}{}
		ids = append(ids, c.ID)
	}
	for _, id := range e.book.Selected().CoinIDs() {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// SyncAlerts replaces the locally known alerts for every coin with the
// server's list. Alerts fetched for untracked coins are dropped.
func (e *Engine) SyncAlerts(ctx context.Context, authToken string) error {
	e.mu.Lock()
	deviceToken := e.settings.DeviceToken
	e.mu.Unlock()

	fetched, err := e.alerts.FetchAlerts(ctx, authToken, deviceToken)
	if err != nil {
		return fetchError(err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	ReconcileAlerts(fetched, e.tracker.All())
	return e.persistCoins()
}

// RegisterAlert creates a price alert for a tracked coin on the alert
// service and mirrors the server-assigned record locally. The direction is
// derived from the coin's current price, so the coin needs market data
// first.
func (e *Engine) RegisterAlert(ctx context.Context, authToken, coinID string, target Money) (PriceAlert, error) {
	e.mu.Lock()
	coin, ok := e.tracker.Get(coinID)
	if !ok || coin.Archived() {
		e.mu.Unlock()
		return PriceAlert{}, validationError(fmt.Errorf("coin %q is not tracked", coinID))
	}
	if !coin.HasMarket {
		e.mu.Unlock()
		return PriceAlert{}, validationError(fmt.Errorf("coin %q has no market data yet, refresh first", coinID))
	}
	alert := NewPriceAlert(coin, target)
	deviceToken := e.settings.DeviceToken
	e.mu.Unlock()

	created, err := e.alerts.RegisterAlert(ctx, authToken, deviceToken, alert)
	if err != nil {
		return PriceAlert{}, fetchError(err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if coin, ok := e.tracker.Get(created.CoinID); ok {
		coin.Alerts = append(coin.Alerts, created)
	}
	return created, e.persistCoins()
}

// RemoveAlert deletes an alert from the alert service and drops the local
// mirror.
func (e *Engine) RemoveAlert(ctx context.Context, authToken, alertID string) error {
	if err := e.alerts.DeleteAlert(ctx, authToken, alertID); err != nil {
		return fetchError(err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// the local mirror may lag behind the server; nothing to drop is fine.
	if !DeactivateAlert(alertID, e.tracker.All()) {
		return nil
	}
	return e.persistCoins()
}

// DismissAlert removes a fired alert from the coin that owns it.
func (e *Engine) DismissAlert(alertID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !DeactivateAlert(alertID, e.tracker.All()) {
		return validationError(fmt.Errorf("alert %q not found", alertID))
	}
	return e.persistCoins()
}

// SetDeviceToken records the push token used when syncing alerts.
func (e *Engine) SetDeviceToken(token string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.settings.DeviceToken = token
	return e.store.SaveSettings(e.settings)
}

// Portfolios returns every portfolio's ledger.
func (e *Engine) Portfolios() []*Ledger {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Ledgers()
}

// SelectedPortfolio returns the ledger mutations apply to.
func (e *Engine) SelectedPortfolio() *Ledger {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Selected()
}

// CreatePortfolio adds a new empty portfolio and selects it.
func (e *Engine) CreatePortfolio(name string) (*Ledger, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	l := e.book.Create(name)
	if err := e.book.Select(l.ID()); err != nil {
		return l, err
	}
	if err := e.store.SaveLedger(l); err != nil {
		return l, err
	}
	return l, e.persistSettings()
}

// SelectPortfolio switches the portfolio mutations apply to.
func (e *Engine) SelectPortfolio(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.book.Select(id); err != nil {
		return err
	}
	return e.persistSettings()
}

// RenamePortfolio sets a portfolio's name.
func (e *Engine) RenamePortfolio(id uuid.UUID, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.book.Get(id)
	if !ok {
		return validationError(fmt.Errorf("portfolio %s not found", id))
	}
	l.Rename(name)
	return e.store.SaveLedger(l)
}

// DeletePortfolio removes a portfolio and every transaction it owned. The
// last portfolio cannot be deleted.
func (e *Engine) DeletePortfolio(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.book.Delete(id); err != nil {
		return err
	}
	if err := e.store.DeleteLedger(id); err != nil {
		return err
	}
	return e.persistSettings()
}
