package wenmoon

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// A ledger file is JSONL: a single header line identifying the portfolio,
// followed by one transaction per line in chronological order. The format is
// human-readable and diff-friendly on purpose.

type ledgerHeader struct {
	Portfolio uuid.UUID `json:"portfolio"`
	Name      string    `json:"name"`
}

// txRecord is a decoding shim: JSON timestamps and ids come in as strings.
type txRecord struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	CoinID   string   `json:"coin"`
	Quantity Quantity `json:"quantity"`
	Price    Money    `json:"price"`
	Time     string   `json:"time"`
}

func (r txRecord) transaction() (Transaction, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid transaction id %q: %w", r.ID, err)
	}
	typ, err := ParseTxType(r.Type)
	if err != nil {
		return Transaction{}, err
	}
	at, err := time.Parse(time.RFC3339, r.Time)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid transaction time %q: %w", r.Time, err)
	}
	return Transaction{
		ID:       id,
		Type:     typ,
		CoinID:   r.CoinID,
		Quantity: r.Quantity,
		Price:    r.Price,
		Time:     at,
	}, nil
}

// DecodeLedger reads a portfolio ledger from a JSONL stream.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	scanner := bufio.NewScanner(r)

	var header ledgerHeader
	var txs []Transaction
	first := true

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		if first {
			first = false
			if err := json.Unmarshal(line, &header); err != nil {
				return nil, fmt.Errorf("could not decode ledger header %q: %w", string(line), err)
			}
			if header.Portfolio == uuid.Nil {
				return nil, fmt.Errorf("ledger header %q has no portfolio id", string(line))
			}
			continue
		}
		var rec txRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("could not decode transaction %q: %w", string(line), err)
		}
		tx, err := rec.transaction()
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger: %w", err)
	}
	if first {
		return nil, fmt.Errorf("ledger stream is empty")
	}
	return restoredLedger(header.Portfolio, header.Name, txs), nil
}

// EncodeTransaction writes a single transaction as one JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger writes the header and every transaction in chronological
// order, producing a canonical file.
func EncodeLedger(w io.Writer, l *Ledger) error {
	var hw jsonObjectWriter
	hw.Append("portfolio", l.id.String())
	hw.Append("name", l.name)
	header, err := hw.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal ledger header: %w", err)
	}
	if _, err := w.Write(append(header, '\n')); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}

	l.stableSort()
	for _, tx := range l.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
