package wenmoon

import (
	"testing"
	"time"
)

func TestMarketCache_Get(t *testing.T) {
	c := NewMarketCache()
	c.Put("bitcoin", Snapshot{Price: USD(50000)})
	c.Put("ethereum", Snapshot{Price: USD(3000)})

	hits, misses := c.Get([]string{"bitcoin", "ethereum"})
	if len(misses) != 0 {
		t.Fatalf("Get() reported misses %v, want none", misses)
	}
	if !hits["bitcoin"].Price.Equal(USD(50000)) {
		t.Errorf("bitcoin hit = %s, want $50,000.00", hits["bitcoin"].Price)
	}

	// one unknown id turns the request into a partial hit; the caller must
	// refetch everything.
	hits, misses = c.Get([]string{"bitcoin", "solana"})
	if len(misses) != 1 || misses[0] != "solana" {
		t.Errorf("misses = %v, want [solana]", misses)
	}
	if len(hits) != 1 {
		t.Errorf("hits = %v, want only bitcoin", hits)
	}
}

func TestMarketCache_PutStampsFetchedAt(t *testing.T) {
	c := NewMarketCache()
	c.Put("bitcoin", Snapshot{Price: USD(50000)})
	snap, ok := c.Lookup("bitcoin")
	if !ok {
		t.Fatal("Lookup() missed a freshly stored snapshot")
	}
	if snap.FetchedAt.IsZero() {
		t.Error("Put() did not stamp FetchedAt")
	}

	// an explicit timestamp is preserved.
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.Put("ethereum", Snapshot{Price: USD(3000), FetchedAt: at})
	snap, _ = c.Lookup("ethereum")
	if !snap.FetchedAt.Equal(at) {
		t.Errorf("FetchedAt = %s, want %s", snap.FetchedAt, at)
	}
}

func TestMarketCache_Delete(t *testing.T) {
	c := NewMarketCache()
	c.Put("bitcoin", Snapshot{Price: USD(50000)})
	c.Put("solana", Snapshot{Price: USD(150)})

	c.Delete("solana")
	if _, ok := c.Lookup("solana"); ok {
		t.Error("Lookup() still serves a deleted entry")
	}
	if _, ok := c.Lookup("bitcoin"); !ok {
		t.Error("Delete() dropped an unrelated entry")
	}

	// deleting an absent id is a no-op.
	c.Delete("solana")
	if c.Len() != 1 {
		t.Errorf("cache has %d entries, want 1", c.Len())
	}
}

func TestMarketCache_Clear(t *testing.T) {
	c := NewMarketCache()
	c.Put("bitcoin", Snapshot{Price: USD(50000)})
	c.Put("ethereum", Snapshot{Price: USD(3000)})
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", c.Len())
	}
	_, misses := c.Get([]string{"bitcoin", "ethereum"})
	if len(misses) != 2 {
		t.Errorf("Get() after Clear() reported %d misses, want 2", len(misses))
	}
}
