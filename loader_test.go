package wenmoon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_LoadBook_FreshDirectory(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	book, err := store.LoadBook()
	if err != nil {
		t.Fatalf("LoadBook() on a fresh directory returned %v", err)
	}
	if len(book.Ledgers()) != 1 {
		t.Fatalf("fresh book has %d portfolios, want 1", len(book.Ledgers()))
	}
	if book.Selected().Name() != "Main" {
		t.Errorf("default portfolio name = %q, want %q", book.Selected().Name(), "Main")
	}

	// the default portfolio is persisted immediately: a reload finds it.
	reloaded, err := store.LoadBook()
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Selected().ID() != book.Selected().ID() {
		t.Error("default portfolio identity changed across reloads")
	}
}

func TestStore_LedgerRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	l := NewLedger("Savings")
	if err := l.Add(NewTransaction(TxBuy, "bitcoin", Q(2), USD(100), at("2025-01-01"))); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveLedger(l); err != nil {
		t.Fatalf("SaveLedger() returned %v", err)
	}

	book, err := store.LoadBook()
	if err != nil {
		t.Fatal(err)
	}
	got, ok := book.Get(l.ID())
	if !ok {
		t.Fatal("saved portfolio not found after reload")
	}
	if got.Name() != "Savings" || got.Len() != 1 {
		t.Errorf("reloaded portfolio = %q with %d transactions, want Savings with 1", got.Name(), got.Len())
	}
}

func TestStore_DeleteLedger(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	l := NewLedger("Doomed")
	if err := store.SaveLedger(l); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteLedger(l.ID()); err != nil {
		t.Fatalf("DeleteLedger() returned %v", err)
	}
	// deleting is idempotent: a second delete of the same file is fine.
	if err := store.DeleteLedger(l.ID()); err != nil {
		t.Fatalf("second DeleteLedger() returned %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), portfoliosDir, l.ID().String()+".jsonl")); !os.IsNotExist(err) {
		t.Error("ledger file still exists after DeleteLedger()")
	}
}

func TestStore_CoinsRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	coins, existed, err := store.LoadCoins()
	if err != nil {
		t.Fatal(err)
	}
	if existed || coins != nil {
		t.Fatal("fresh directory reported an existing coin file")
	}

	if err := store.SaveCoins(StarterCoins()); err != nil {
		t.Fatalf("SaveCoins() returned %v", err)
	}
	coins, existed, err = store.LoadCoins()
	if err != nil {
		t.Fatal(err)
	}
	if !existed {
		t.Fatal("coin file not reported as existing after SaveCoins()")
	}
	if len(coins) != len(StarterCoins()) {
		t.Errorf("reloaded %d coins, want %d", len(coins), len(StarterCoins()))
	}
}

func TestStore_SettingsRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// missing file reads as empty settings.
	settings, err := store.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings.CoinOrder) != 0 || settings.DeviceToken != "" {
		t.Fatal("fresh settings are not empty")
	}

	settings.CoinOrder = []string{"ethereum", "bitcoin"}
	settings.DeviceToken = "device-123"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() returned %v", err)
	}

	reloaded, err := store.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.CoinOrder) != 2 || reloaded.CoinOrder[0] != "ethereum" {
		t.Errorf("reloaded order = %v, want [ethereum bitcoin]", reloaded.CoinOrder)
	}
	if reloaded.DeviceToken != "device-123" {
		t.Errorf("reloaded device token = %q, want device-123", reloaded.DeviceToken)
	}
}

func TestStore_SelectionSurvivesReload(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	book, err := store.LoadBook()
	if err != nil {
		t.Fatal(err)
	}
	second := book.Create("Second")
	if err := store.SaveLedger(second); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSettings(Settings{SelectedPortfolio: second.ID()}); err != nil {
		t.Fatal(err)
	}

	reloaded, err := store.LoadBook()
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Selected().ID() != second.ID() {
		t.Errorf("selected portfolio after reload = %s, want %s", reloaded.Selected().Name(), "Second")
	}
}
