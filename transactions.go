package wenmoon

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TxType is a typed string identifying the kind of a ledger event.
type TxType string

// Transaction types recorded in a ledger.
const (
	TxBuy         TxType = "buy"
	TxSell        TxType = "sell"
	TxTransferIn  TxType = "transfer-in"
	TxTransferOut TxType = "transfer-out"
)

// ParseTxType parses a string into a TxType.
func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case TxBuy, TxSell, TxTransferIn, TxTransferOut:
		return TxType(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Incoming reports whether the type increases the running holding.
func (t TxType) Incoming() bool { return t == TxBuy || t == TxTransferIn }

// Outgoing reports whether the type decreases the running holding.
func (t TxType) Outgoing() bool { return t == TxSell || t == TxTransferOut }

// Transfer reports whether the type moves coins without a cost-basis event.
func (t TxType) Transfer() bool { return t == TxTransferIn || t == TxTransferOut }

// Transaction is a single dated ledger event for one coin. Its CoinID is a
// weak reference: the event stays valid even after the coin is archived.
type Transaction struct {
	ID       uuid.UUID `json:"id"`
	Type     TxType    `json:"type"`
	CoinID   string    `json:"coin"`
	Quantity Quantity  `json:"quantity"`
	Price    Money     `json:"price,omitzero"` // per coin; meaningless for transfers
	Time     time.Time `json:"time"`
}

// NewTransaction creates a transaction with a fresh identity.
func NewTransaction(typ TxType, coinID string, quantity Quantity, price Money, at time.Time) Transaction {
	return Transaction{
		ID:       uuid.New(),
		Type:     typ,
		CoinID:   coinID,
		Quantity: quantity,
		Price:    price,
		Time:     at,
	}
}

// Day returns the calendar day the transaction falls on, used for grouping.
func (t Transaction) Day() Date { return DateOf(t.Time) }

// Signed returns the quantity with the sign the event applies to the running
// holding: positive for buy and transfer-in, negative for sell and
// transfer-out.
func (t Transaction) Signed() Quantity {
	if t.Type.Outgoing() {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

// Cost returns quantity times price per coin. Only meaningful for buys and
// sells.
func (t Transaction) Cost() Money { return t.Price.Mul(t.Quantity) }

// Equal reports whether two transactions carry the same values.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Type == o.Type &&
		t.CoinID == o.CoinID &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Time.Equal(o.Time)
}

// Validate checks the transaction's own fields, without looking at the rest
// of the ledger. The holding check is the ledger's job.
func (t *Transaction) Validate() error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Time.IsZero() {
		t.Time = time.Now().UTC()
	}
	if _, err := ParseTxType(string(t.Type)); err != nil {
		return validationError(err)
	}
	if t.CoinID == "" {
		return validationError(errors.New("transaction coin id is missing"))
	}
	if t.Quantity.IsNegative() || t.Quantity.IsZero() {
		return validationError(fmt.Errorf("transaction quantity must be positive, got %s", t.Quantity))
	}
	switch {
	case t.Type.Transfer():
		// price per coin is irrelevant for transfers; drop a stray value so
		// it never leaks into cost-basis arithmetic.
		t.Price = Money{}
	case t.Price.IsNegative() || t.Price.IsZero():
		return validationError(fmt.Errorf("%s transaction needs a positive price per coin, got %s", t.Type, t.Price))
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface with a stable field
// order for canonical JSONL files.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID.String())
	w.Append("type", t.Type)
	w.Append("coin", t.CoinID)
	w.Append("quantity", t.Quantity)
	if !t.Type.Transfer() {
		w.Append("price", t.Price)
	}
	w.Append("time", t.Time.UTC().Format(time.RFC3339))
	return w.MarshalJSON()
}
