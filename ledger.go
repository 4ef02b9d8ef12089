package wenmoon

import (
	"fmt"
	"iter"
	"sort"

	"github.com/google/uuid"
)

// Ledger is the transaction log of a single portfolio. Transactions are kept
// in chronological order. All mutations are validated before anything is
// applied; a rejected mutation leaves the ledger untouched.
type Ledger struct {
	id           uuid.UUID
	name         string
	transactions []Transaction
}

// NewLedger creates an empty ledger with a fresh portfolio identity.
func NewLedger(name string) *Ledger {
	return &Ledger{id: uuid.New(), name: name}
}

// restoredLedger rebuilds a ledger from persisted parts. Used by the codec.
func restoredLedger(id uuid.UUID, name string, txs []Transaction) *Ledger {
	l := &Ledger{id: id, name: name, transactions: txs}
	l.stableSort()
	return l
}

// ID returns the portfolio identity this ledger belongs to.
func (l *Ledger) ID() uuid.UUID { return l.id }

// Name returns the portfolio name.
func (l *Ledger) Name() string { return l.name }

// Rename sets the portfolio name.
func (l *Ledger) Rename(name string) { l.name = name }

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Holding computes the running holding for a coin: incoming quantities add,
// outgoing subtract, over every transaction except the one identified by
// `excluding` (uuid.Nil to exclude nothing). Editing validates against the
// holding computed without the transaction being replaced.
func (l *Ledger) Holding(coinID string, excluding uuid.UUID) Quantity {
	var holding Quantity
	for _, tx := range l.transactions {
		if tx.CoinID != coinID || tx.ID == excluding {
			continue
		}
		holding = holding.Add(tx.Signed())
	}
	return holding
}

// checkHolding rejects an outgoing transaction that the rest of the ledger
// cannot cover.
func (l *Ledger) checkHolding(tx Transaction, excluding uuid.UUID) error {
	if !tx.Type.Outgoing() {
		return nil
	}
	holding := l.Holding(tx.CoinID, excluding)
	if holding.LessThan(tx.Quantity) {
		return fmt.Errorf("cannot %s %s of %s, holding is only %s: %w",
			tx.Type, tx.Quantity, tx.CoinID, holding, ErrInsufficientHolding)
	}
	return nil
}

// Add validates and appends a transaction. A sell or transfer-out whose
// quantity exceeds the coin's running holding is rejected and nothing is
// applied. The caller persists on success.
func (l *Ledger) Add(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if err := l.checkHolding(tx, uuid.Nil); err != nil {
		return err
	}
	l.transactions = append(l.transactions, tx)
	l.stableSort()
	return nil
}

// Edit validates and replaces the transaction with the same identity. The
// holding check excludes the transaction being replaced, so growing a sell is
// only allowed up to what the other transactions cover.
func (l *Ledger) Edit(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	i := l.indexOf(tx.ID)
	if i < 0 {
		return validationError(fmt.Errorf("transaction %s not found", tx.ID))
	}
	if err := l.checkHolding(tx, tx.ID); err != nil {
		return err
	}
	l.transactions[i] = tx
	l.stableSort()
	return nil
}

// Remove deletes a transaction. Removal needs no holding validation.
func (l *Ledger) Remove(txID uuid.UUID) bool {
	i := l.indexOf(txID)
	if i < 0 {
		return false
	}
	l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
	return true
}

// RemoveAllForCoin deletes every transaction referencing the coin and returns
// how many were removed.
func (l *Ledger) RemoveAllForCoin(coinID string) int {
	kept := l.transactions[:0]
	removed := 0
	for _, tx := range l.transactions {
		if tx.CoinID == coinID {
			removed++
			continue
		}
		kept = append(kept, tx)
	}
	l.transactions = kept
	return removed
}

// References reports whether any transaction references the coin.
func (l *Ledger) References(coinID string) bool {
	for _, tx := range l.transactions {
		if tx.CoinID == coinID {
			return true
		}
	}
	return false
}

// Get returns the transaction with the given identity.
func (l *Ledger) Get(txID uuid.UUID) (Transaction, bool) {
	i := l.indexOf(txID)
	if i < 0 {
		return Transaction{}, false
	}
	return l.transactions[i], true
}

func (l *Ledger) indexOf(txID uuid.UUID) int {
	for i, tx := range l.transactions {
		if tx.ID == txID {
			return i
		}
	}
	return -1
}

// Transactions returns an iterator over transactions in chronological order,
// keeping only those accepted by at least one filter.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := false
			for _, filter := range filters {
				if filter(tx) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// AcceptAll accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// ByCoin returns a predicate that filters transactions by coin id.
func ByCoin(coinID string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.CoinID == coinID }
}

// CoinIDs returns the distinct coin ids referenced by the ledger, in first
// appearance order.
func (l *Ledger) CoinIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, tx := range l.transactions {
		if _, ok := seen[tx.CoinID]; ok {
			continue
		}
		seen[tx.CoinID] = struct{}{}
		ids = append(ids, tx.CoinID)
	}
	return ids
}

// stableSort sorts the ledger by transaction time. The sort is stable, so
// transactions at the same instant keep their relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Time.Before(l.transactions[j].Time)
	})
}

// DayGroup is one calendar day of a coin's history, newest transaction
// first.
type DayGroup struct {
	Day          Date
	Transactions []Transaction
}

// CoinGroup is a coin's full slice of the ledger: its day buckets, current
// running holding, and present value.
type CoinGroup struct {
	CoinID  string
	Holding Quantity
	Value   Money // zero when the price is unknown
	Days    []DayGroup
}

// GroupByCoin buckets the ledger per coin and per calendar day. Day buckets
// are newest-first, transactions inside a day newest-first, and groups are
// ordered by descending total value with the coin id breaking ties for
// determinism.
func (l *Ledger) GroupByCoin(prices PriceLookup) []CoinGroup {
	groups := make(map[string]*CoinGroup)
	order := l.CoinIDs()

	for _, tx := range l.transactions {
		g, ok := groups[tx.CoinID]
		if !ok {
			g = &CoinGroup{CoinID: tx.CoinID}
			groups[tx.CoinID] = g
		}
		g.Holding = g.Holding.Add(tx.Signed())
		day := tx.Day()
		if n := len(g.Days); n > 0 && g.Days[n-1].Day == day {
			g.Days[n-1].Transactions = append(g.Days[n-1].Transactions, tx)
		} else {
			g.Days = append(g.Days, DayGroup{Day: day, Transactions: []Transaction{tx}})
		}
	}

	result := make([]CoinGroup, 0, len(order))
	for _, id := range order {
		g := groups[id]
		if snap, ok := prices(id); ok {
			g.Value = snap.Price.Mul(g.Holding)
		} else {
			g.Value = USD(0)
		}
		// the ledger is chronological; flip to newest-first for display.
		reverseDays(g.Days)
		result = append(result, *g)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Value.Equal(result[j].Value) {
			return result[j].Value.LessThan(result[i].Value)
		}
		return result[i].CoinID < result[j].CoinID
	})
	return result
}

func reverseDays(days []DayGroup) {
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	for _, d := range days {
		txs := d.Transactions
		for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
			txs[i], txs[j] = txs[j], txs[i]
		}
	}
}
