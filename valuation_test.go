package wenmoon

import (
	"testing"
)

// staticPrices builds a PriceLookup from a literal map.
func staticPrices(m map[string]Snapshot) PriceLookup {
	return func(id string) (Snapshot, bool) {
		snap, ok := m[id]
		return snap, ok
	}
}

func TestValuate_TotalAndChanges(t *testing.T) {
	l := NewLedger("test")
	for _, tx := range []Transaction{
		NewTransaction(TxBuy, "bitcoin", Q(10), USD(150), at("2025-01-01")),
		NewTransaction(TxBuy, "ethereum", Q(5), USD(300), at("2025-01-02")),
	} {
		if err := l.Add(tx); err != nil {
			t.Fatal(err)
		}
	}
	prices := staticPrices(map[string]Snapshot{
		"bitcoin":  {Price: USD(100), Change24h: 10, HasChange: true},
		"ethereum": {Price: USD(200), Change24h: -5, HasChange: true},
	})

	v := Valuate(l, prices)

	// 10*100 + 5*200
	if !v.Total.Equal(USD(2000)) {
		t.Errorf("Total = %s, want $2,000.00", v.Total)
	}
	// bitcoin gained 1000*10% = 100, ethereum lost 1000*5% = 50.
	if !v.Intraday.Value.Equal(USD(50)) {
		t.Errorf("Intraday.Value = %s, want $50.00", v.Intraday.Value)
	}
	// yesterday's value: 1000/1.1 + 1000/0.95 = 1961.72...
	wantPct := Percent(50.0 / 1961.722488 * 100)
	if !v.Intraday.Percent.Equal(wantPct) {
		t.Errorf("Intraday.Percent = %s, want %s", v.Intraday.Percent, wantPct)
	}
	// invested 1500+1500=3000, current 2000.
	if !v.AllTime.Value.Equal(USD(-1000)) {
		t.Errorf("AllTime.Value = %s, want -$1,000.00", v.AllTime.Value)
	}
	if !v.AllTime.Percent.Equal(Percent(-1000.0 / 3000.0 * 100)) {
		t.Errorf("AllTime.Percent = %s, want -33.33%%", v.AllTime.Percent)
	}
}

func TestValuate_AllTimeWithSells(t *testing.T) {
	l := NewLedger("test")
	for _, tx := range []Transaction{
		NewTransaction(TxBuy, "bitcoin", Q(10), USD(100), at("2025-01-01")),
		NewTransaction(TxSell, "bitcoin", Q(4), USD(150), at("2025-01-02")),
	} {
		if err := l.Add(tx); err != nil {
			t.Fatal(err)
		}
	}
	prices := staticPrices(map[string]Snapshot{
		"bitcoin": {Price: USD(200), HasChange: true, Change24h: 0},
	})

	v := Valuate(l, prices)

	// 6 remaining at 200.
	if !v.Total.Equal(USD(1200)) {
		t.Errorf("Total = %s, want $1,200.00", v.Total)
	}
	// invested 1000, realized 600: net basis 400, gain 800.
	if !v.AllTime.Value.Equal(USD(800)) {
		t.Errorf("AllTime.Value = %s, want $800.00", v.AllTime.Value)
	}
}

func TestValuate_SellAfterTransferIn(t *testing.T) {
	// A transfer-in raises the replayed holding, so the following sell
	// realizes its proceeds even though nothing was ever bought here.
	l := NewLedger("test")
	for _, tx := range []Transaction{
		NewTransaction(TxTransferIn, "bitcoin", Q(5), Money{}, at("2025-01-01")),
		NewTransaction(TxSell, "bitcoin", Q(5), USD(100), at("2025-01-02")),
	} {
		if err := l.Add(tx); err != nil {
			t.Fatal(err)
		}
	}
	prices := staticPrices(map[string]Snapshot{
		"bitcoin": {Price: USD(100)},
	})

	v := Valuate(l, prices)
	if !v.Total.IsZero() {
		t.Errorf("Total = %s, want zero", v.Total)
	}
	if !v.AllTime.Value.Equal(USD(500)) {
		t.Errorf("AllTime.Value = %s, want $500.00", v.AllTime.Value)
	}
	// invested is zero, so the percentage stays zero.
	if v.AllTime.Percent != 0 {
		t.Errorf("AllTime.Percent = %s, want 0", v.AllTime.Percent)
	}
}

func TestValuate_TransfersMoveQuantityOnly(t *testing.T) {
	l := NewLedger("test")
	for _, tx := range []Transaction{
		NewTransaction(TxBuy, "bitcoin", Q(10), USD(100), at("2025-01-01")),
		NewTransaction(TxTransferOut, "bitcoin", Q(10), Money{}, at("2025-01-02")),
	} {
		if err := l.Add(tx); err != nil {
			t.Fatal(err)
		}
	}
	prices := staticPrices(map[string]Snapshot{
		"bitcoin": {Price: USD(100)},
	})

	v := Valuate(l, prices)
	if !v.Total.IsZero() {
		t.Errorf("Total = %s, want zero after transferring everything out", v.Total)
	}
	// the transfer realized nothing: invested 1000 still counts as basis.
	if !v.AllTime.Value.Equal(USD(-1000)) {
		t.Errorf("AllTime.Value = %s, want -$1,000.00", v.AllTime.Value)
	}
}

func TestIntradayChange_SkipsCoinsWithoutChange(t *testing.T) {
	l := NewLedger("test")
	for _, tx := range []Transaction{
		NewTransaction(TxBuy, "bitcoin", Q(1), USD(100), at("2025-01-01")),
		NewTransaction(TxBuy, "ethereum", Q(1), USD(100), at("2025-01-01")),
	} {
		if err := l.Add(tx); err != nil {
			t.Fatal(err)
		}
	}
	prices := staticPrices(map[string]Snapshot{
		"bitcoin":  {Price: USD(100), Change24h: 10, HasChange: true},
		"ethereum": {Price: USD(100)}, // no 24h figure
	})

	v := Valuate(l, prices)
	if !v.Intraday.Value.Equal(USD(10)) {
		t.Errorf("Intraday.Value = %s, want $10.00", v.Intraday.Value)
	}
}

func TestIntradayChange_PersistedCoinWithoutChange(t *testing.T) {
	// Same rule when prices come from persisted coin records instead of a
	// live fetch: a coin whose snapshot carried no 24h figure must not
	// enter either intraday accumulator after an ApplySnapshot round trip.
	btc := NewCoin("bitcoin", "BTC", "Bitcoin")
	btc.ApplySnapshot(Snapshot{Price: USD(100), Change24h: 10, HasChange: true})
	thin := NewCoin("thincoin", "THIN", "")
	thin.ApplySnapshot(Snapshot{Price: USD(100)}) // market reported no 24h change
	coins := map[string]*Coin{"bitcoin": btc, "thincoin": thin}

	if snap, _ := thin.Snapshot(); snap.HasChange {
		t.Fatal("Snapshot() reports a 24h change for a coin that never had one")
	}

	l := NewLedger("test")
	for _, tx := range []Transaction{
		NewTransaction(TxBuy, "bitcoin", Q(10), USD(90), at("2025-01-01")),
		NewTransaction(TxBuy, "thincoin", Q(10), USD(90), at("2025-01-01")),
	} {
		if err := l.Add(tx); err != nil {
			t.Fatal(err)
		}
	}
	v := Valuate(l, func(id string) (Snapshot, bool) {
		coin, ok := coins[id]
		if !ok {
			return Snapshot{}, false
		}
		return coin.Snapshot()
	})

	// bitcoin alone: change 1000*10% = 100 over yesterday's 1000/1.1.
	if !v.Intraday.Value.Equal(USD(100)) {
		t.Errorf("Intraday.Value = %s, want $100.00", v.Intraday.Value)
	}
	if !v.Intraday.Percent.Equal(Percent(11)) {
		t.Errorf("Intraday.Percent = %s, want 11.00%%", v.Intraday.Percent)
	}
}

func TestIntradayChange_TotalLoss(t *testing.T) {
	// A -100% mover has no yesterday divisor; the value change still counts
	// but the percent stays finite.
	l := NewLedger("test")
	if err := l.Add(NewTransaction(TxBuy, "bitcoin", Q(1), USD(100), at("2025-01-01"))); err != nil {
		t.Fatal(err)
	}
	prices := staticPrices(map[string]Snapshot{
		"bitcoin": {Price: USD(0.01), Change24h: -100, HasChange: true},
	})

	v := Valuate(l, prices)
	if v.Intraday.Percent != 0 {
		t.Errorf("Intraday.Percent = %s, want 0 when yesterday's value is zero", v.Intraday.Percent)
	}
}

func TestValuate_EmptyLedger(t *testing.T) {
	l := NewLedger("test")
	v := Valuate(l, staticPrices(nil))
	if !v.Total.IsZero() {
		t.Errorf("Total = %s, want zero", v.Total)
	}
	if v.AllTime.Percent != 0 || v.Intraday.Percent != 0 {
		t.Error("changes on an empty ledger should be zero")
	}
}
