package wenmoon

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is the durable home of the tracker: a data directory holding one
// ledger file per portfolio, the coin set, and the settings document. It is
// the single source of truth for restart recovery; every engine mutation
// funnels through it.
//
// Layout:
//
//	<dir>/portfolios/<uuid>.jsonl
//	<dir>/coins.jsonl
//	<dir>/settings.json
type Store struct {
	dir string
}

const (
	portfoliosDir = "portfolios"
	coinsFile     = "coins.jsonl"
	settingsFile  = "settings.json"
)

// NewStore opens (creating if needed) a data directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, portfoliosDir), 0o755); err != nil {
		return nil, storeError(fmt.Errorf("could not create data directory %q: %w", dir, err))
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string { return s.dir }

func (s *Store) ledgerPath(id uuid.UUID) string {
	return filepath.Join(s.dir, portfoliosDir, id.String()+".jsonl")
}

// LoadBook loads every portfolio ledger and restores the selection from
// settings. A data directory with no ledgers yields a book with one empty
// default portfolio.
func (s *Store) LoadBook() (*Book, error) {
	var ledgers []*Ledger
	root := filepath.Join(s.dir, portfoliosDir)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".jsonl") {
			return nil
		}
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("could not open ledger file %q: %w", p, err)
		}
		defer f.Close()
		l, err := DecodeLedger(f)
		if err != nil {
			return fmt.Errorf("could not decode ledger file %q: %w", p, err)
		}
		ledgers = append(ledgers, l)
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	settings, err := s.LoadSettings()
	if err != nil {
		return nil, err
	}
	book := restoredBook(ledgers, settings.SelectedPortfolio)
	if len(ledgers) == 0 {
		// first launch: persist the default portfolio right away.
		if err := s.SaveLedger(book.Selected()); err != nil {
			return nil, err
		}
	}
	return book, nil
}

// SaveLedger writes one portfolio's ledger file.
func (s *Store) SaveLedger(l *Ledger) error {
	f, err := os.Create(s.ledgerPath(l.ID()))
	if err != nil {
		return storeError(fmt.Errorf("could not create ledger file for %q: %w", l.Name(), err))
	}
	defer f.Close()
	if err := EncodeLedger(f, l); err != nil {
		return storeError(err)
	}
	return nil
}

// DeleteLedger removes a portfolio's ledger file. Deleting the file deletes
// every transaction the portfolio owned.
func (s *Store) DeleteLedger(id uuid.UUID) error {
	if err := os.Remove(s.ledgerPath(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return storeError(fmt.Errorf("could not delete ledger %s: %w", id, err))
	}
	return nil
}

// LoadCoins reads the coin set. The second return reports whether the file
// existed at all; a fresh data directory is the caller's cue to seed the
// predefined starter set.
func (s *Store) LoadCoins() ([]*Coin, bool, error) {
	f, err := os.Open(filepath.Join(s.dir, coinsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storeError(fmt.Errorf("could not open coin file: %w", err))
	}
	defer f.Close()
	coins, err := DecodeCoins(f)
	if err != nil {
		return nil, true, storeError(err)
	}
	return coins, true, nil
}

// SaveCoins writes the whole coin set in display order.
func (s *Store) SaveCoins(coins []*Coin) error {
	f, err := os.Create(filepath.Join(s.dir, coinsFile))
	if err != nil {
		return storeError(fmt.Errorf("could not create coin file: %w", err))
	}
	defer f.Close()
	if err := EncodeCoins(f, coins); err != nil {
		return storeError(err)
	}
	return nil
}

// LoadSettings reads the settings document; a missing file is an empty
// settings value, not an error.
func (s *Store) LoadSettings() (Settings, error) {
	var settings Settings
	data, err := os.ReadFile(filepath.Join(s.dir, settingsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, storeError(fmt.Errorf("could not read settings: %w", err))
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, storeError(fmt.Errorf("could not decode settings: %w", err))
	}
	return settings, nil
}

// SaveSettings writes the settings document.
func (s *Store) SaveSettings(settings Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return storeError(fmt.Errorf("could not encode settings: %w", err))
	}
	if err := os.WriteFile(filepath.Join(s.dir, settingsFile), append(data, '\n'), 0o644); err != nil {
		return storeError(fmt.Errorf("could not write settings: %w", err))
	}
	return nil
}
