package wenmoon

import (
	"fmt"
	"sort"
)

// Tracker owns the tracked-coin set: which coins are visible, which are
// pinned, how the user ordered them, and whether removing one must archive
// instead of delete. Archived coins stay in the set so the ledger can still
// resolve them, but every visible view is derived from the Active state.
type Tracker struct {
	coins []*Coin // slice order is display order for active coins
	index map[string]*Coin
}

// NewTracker builds a tracker over existing coin records.
func NewTracker(coins []*Coin) *Tracker {
	t := &Tracker{coins: coins, index: make(map[string]*Coin, len(coins))}
	for _, c := range coins {
		t.index[c.ID] = c
	}
	return t
}

// Get returns the coin with this identity in any lifecycle state.
func (t *Tracker) Get(id string) (*Coin, bool) {
	c, ok := t.index[id]
	return c, ok
}

// Tracked returns the visible list: active coins in display order. Pinned
// coins always come before unpinned ones.
func (t *Tracker) Tracked() []*Coin {
	pinned, unpinned := t.subgroups()
	return append(pinned, unpinned...)
}

// Pinned returns the pinned subgroup of the visible list.
func (t *Tracker) Pinned() []*Coin {
	pinned, _ := t.subgroups()
	return pinned
}

// Unpinned returns the unpinned subgroup of the visible list.
func (t *Tracker) Unpinned() []*Coin {
	_, unpinned := t.subgroups()
	return unpinned
}

// ArchivedCoins returns the coins kept only for ledger integrity.
func (t *Tracker) ArchivedCoins() []*Coin {
	var archived []*Coin
	for _, c := range t.coins {
		if c.Archived() {
			archived = append(archived, c)
		}
	}
	return archived
}

func (t *Tracker) subgroups() (pinned, unpinned []*Coin) {
	for _, c := range t.coins {
		if c.Archived() {
			continue
		}
		if c.Pinned {
			pinned = append(pinned, c)
		} else {
			unpinned = append(unpinned, c)
		}
	}
	return pinned, unpinned
}

// Add brings a coin into tracking. Re-adding an archived coin unarchives it
// in place, preserving its identity and every ledger reference; a brand-new
// coin is appended with no market data yet. Either way the list is re-sorted
// afterwards.
func (t *Tracker) Add(coin *Coin) *Coin {
	if existing, ok := t.index[coin.ID]; ok {
		if existing.Archived() {
			existing.State = Active
		}
		t.Sort()
		return existing
	}
	coin.State = Active
	t.coins = append(t.coins, coin)
	t.index[coin.ID] = coin
	t.Sort()
	return coin
}

// Delete removes a coin from tracking. When the ledger still references it
// (in any portfolio) the coin is archived and unpinned instead of removed,
// preserving valuation continuity; otherwise the record is dropped for good.
// It returns true when the coin was archived rather than removed.
func (t *Tracker) Delete(id string, referenced bool) (archived bool, err error) {
	coin, ok := t.index[id]
	if !ok {
		return false, validationError(fmt.Errorf("coin %q is not tracked", id))
	}
	if referenced {
		coin.State = Archived
		coin.Pinned = false
		return true, nil
	}
	for i, c := range t.coins {
		if c.ID == id {
			t.coins = append(t.coins[:i], t.coins[i+1:]...)
			break
		}
	}
	delete(t.index, id)
	return false, nil
}

// Pin marks a coin pinned and re-sorts.
func (t *Tracker) Pin(id string) error { return t.setPinned(id, true) }

// Unpin clears the pinned flag and re-sorts.
func (t *Tracker) Unpin(id string) error { return t.setPinned(id, false) }

func (t *Tracker) setPinned(id string, pinned bool) error {
	coin, ok := t.index[id]
	if !ok || coin.Archived() {
		return validationError(fmt.Errorf("coin %q is not tracked", id))
	}
	coin.Pinned = pinned
	t.Sort()
	return nil
}

// Sort orders the visible list: pinned before unpinned, and inside each
// subgroup by descending market cap. Coins with no market data sort last in
// their subgroup. The sort is stable so equal coins keep their order.
func (t *Tracker) Sort() {
	sort.SliceStable(t.coins, func(i, j int) bool {
		a, b := t.coins[i], t.coins[j]
		// archived coins sink to the end, their order is irrelevant.
		if a.Archived() != b.Archived() {
			return !a.Archived()
		}
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		return capOf(b).LessThan(capOf(a))
	})
}

func capOf(c *Coin) Money {
	if !c.HasMarket {
		return USD(0)
	}
	return c.MarketCap
}

// Move reorders coins within one subgroup: the pinned or the unpinned part
// of the visible list, as the caller specifies. The coins at the `from`
// indices are pulled out (in order) and re-inserted before the element
// currently at `to`, which is how platform list reordering reports a drop.
// The other subgroup keeps its relative order untouched.
func (t *Tracker) Move(pinned bool, from []int, to int) error {
	group := t.Unpinned()
	if pinned {
		group = t.Pinned()
	}
	for _, i := range from {
		if i < 0 || i >= len(group) {
			return validationError(fmt.Errorf("move index %d out of range", i))
		}
	}
	if to < 0 || to > len(group) {
		return validationError(fmt.Errorf("move destination %d out of range", to))
	}

	moved := make([]*Coin, 0, len(from))
	picked := make(map[int]bool, len(from))
	for _, i := range from {
		moved = append(moved, group[i])
		picked[i] = true
	}
	rest := make([]*Coin, 0, len(group))
	dest := to
	for i, c := range group {
		if i < to && picked[i] {
			dest--
		}
		if !picked[i] {
			rest = append(rest, c)
		}
	}
	reordered := make([]*Coin, 0, len(group))
	reordered = append(reordered, rest[:dest]...)
	reordered = append(reordered, moved...)
	reordered = append(reordered, rest[dest:]...)

	// recombine: pinned subgroup first, then unpinned, archived last.
	var recombined []*Coin
	if pinned {
		recombined = append(reordered, t.Unpinned()...)
	} else {
		recombined = append(t.Pinned(), reordered...)
	}
	recombined = append(recombined, t.ArchivedCoins()...)
	t.coins = recombined
	return nil
}

// Order returns the visible list as an explicit identity list, the form the
// ordering is persisted in. Order is independently stored rather than
// implied by any market field.
func (t *Tracker) Order() []string {
	tracked := t.Tracked()
	ids := make([]string, 0, len(tracked))
	for _, c := range tracked {
		ids = append(ids, c.ID)
	}
	return ids
}

// ApplyOrder re-applies a persisted identity order on load. Coins named in
// the saved order take their stored position; coins not named sort after all
// ordered ones, keeping their relative order.
func (t *Tracker) ApplyOrder(ids []string) {
	position := make(map[string]int, len(ids))
	for i, id := range ids {
		position[id] = i
	}
	unknown := len(ids)
	sort.SliceStable(t.coins, func(i, j int) bool {
		a, b := t.coins[i], t.coins[j]
		if a.Archived() != b.Archived() {
			return !a.Archived()
		}
		pa, ok := position[a.ID]
		if !ok {
			pa = unknown
		}
		pb, ok := position[b.ID]
		if !ok {
			pb = unknown
		}
		return pa < pb
	})
}

// All returns every record, active and archived, in internal order.
func (t *Tracker) All() []*Coin { return t.coins }
