package wenmoon

import (
	"fmt"

	"github.com/google/uuid"
)

// Book is the set of portfolios, each owning one ledger. Exactly one
// portfolio is selected at a time; valuation and transaction commands apply
// to the selected one, while referential checks span all of them.
type Book struct {
	ledgers  []*Ledger
	selected uuid.UUID
}

// NewBook creates a book with a single default portfolio, selected.
func NewBook() *Book {
	l := NewLedger("Main")
	return &Book{ledgers: []*Ledger{l}, selected: l.id}
}

// restoredBook rebuilds a book from persisted ledgers. An unknown or missing
// selection falls back to the first portfolio.
func restoredBook(ledgers []*Ledger, selected uuid.UUID) *Book {
	b := &Book{ledgers: ledgers}
	if len(b.ledgers) == 0 {
		b.ledgers = []*Ledger{NewLedger("Main")}
	}
	b.selected = b.ledgers[0].id
	for _, l := range b.ledgers {
		if l.id == selected {
			b.selected = selected
			break
		}
	}
	return b
}

// Selected returns the active portfolio's ledger.
func (b *Book) Selected() *Ledger {
	for _, l := range b.ledgers {
		if l.id == b.selected {
			return l
		}
	}
	return b.ledgers[0]
}

// Select makes a portfolio the active one.
func (b *Book) Select(id uuid.UUID) error {
	for _, l := range b.ledgers {
		if l.id == id {
			b.selected = id
			return nil
		}
	}
	return validationError(fmt.Errorf("portfolio %s not found", id))
}

// Create adds a new empty portfolio.
func (b *Book) Create(name string) *Ledger {
	l := NewLedger(name)
	b.ledgers = append(b.ledgers, l)
	return l
}

// Delete removes a portfolio and, with it, every transaction it owns
// (transactions are owned by exactly one portfolio). The last portfolio
// cannot be deleted. Deleting the selected portfolio selects the first
// remaining one.
func (b *Book) Delete(id uuid.UUID) error {
	if len(b.ledgers) == 1 {
		return validationError(fmt.Errorf("cannot delete the last portfolio"))
	}
	for i, l := range b.ledgers {
		if l.id == id {
			b.ledgers = append(b.ledgers[:i], b.ledgers[i+1:]...)
			if b.selected == id {
				b.selected = b.ledgers[0].id
			}
			return nil
		}
	}
	return validationError(fmt.Errorf("portfolio %s not found", id))
}

// Ledgers returns all portfolios in creation order.
func (b *Book) Ledgers() []*Ledger { return b.ledgers }

// Get returns the ledger of the portfolio with the given identity.
func (b *Book) Get(id uuid.UUID) (*Ledger, bool) {
	for _, l := range b.ledgers {
		if l.id == id {
			return l, true
		}
	}
	return nil, false
}

// References reports whether any transaction in any portfolio references the
// coin. The coin lifecycle manager uses this to decide archive versus
// hard-delete.
func (b *Book) References(coinID string) bool {
	for _, l := range b.ledgers {
		if l.References(coinID) {
			return true
		}
	}
	return false
}
