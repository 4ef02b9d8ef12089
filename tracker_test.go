package wenmoon

import (
	"errors"
	"testing"
)

// coinWithCap builds an active coin carrying a market cap snapshot.
func coinWithCap(id string, cap float64) *Coin {
	c := NewCoin(id, id, id)
	c.ApplySnapshot(Snapshot{MarketCap: USD(cap)})
	return c
}

func trackedIDs(t *Tracker) []string {
	var ids []string
	for _, c := range t.Tracked() {
		ids = append(ids, c.ID)
	}
	return ids
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestTracker_Sort(t *testing.T) {
	small := coinWithCap("small", 100)
	big := coinWithCap("big", 1000)
	pinned := coinWithCap("pinned", 1)
	pinned.Pinned = true
	unknown := NewCoin("unknown", "UNK", "Unknown") // no market data

	tr := NewTracker([]*Coin{unknown, small, pinned, big})
	tr.Sort()

	want := []string{"pinned", "big", "small", "unknown"}
	if got := trackedIDs(tr); !equalIDs(got, want) {
		t.Errorf("Sort() order = %v, want %v", got, want)
	}
}

func TestTracker_Sort_ArchivedLast(t *testing.T) {
	archived := coinWithCap("archived", 9000)
	archived.State = Archived
	active := coinWithCap("active", 1)

	tr := NewTracker([]*Coin{archived, active})
	tr.Sort()

	if got := trackedIDs(tr); !equalIDs(got, []string{"active"}) {
		t.Errorf("Tracked() = %v, want [active]", got)
	}
	if tr.All()[1].ID != "archived" {
		t.Error("archived coin did not sink to the end of the internal order")
	}
}

func TestTracker_Add_UnarchivesInPlace(t *testing.T) {
	coin := coinWithCap("bitcoin", 1000)
	coin.State = Archived
	tr := NewTracker([]*Coin{coin})

	added := tr.Add(NewCoin("bitcoin", "BTC", "Bitcoin"))

	if added != coin {
		t.Fatal("Add() replaced the archived record instead of reactivating it")
	}
	if added.Archived() {
		t.Error("re-added coin is still archived")
	}
	if !added.HasMarket {
		t.Error("reactivation lost the coin's persisted market data")
	}
}

func TestTracker_Delete(t *testing.T) {
	tests := []struct {
		name         string
		referenced   bool
		wantArchived bool
	}{
		{"unreferenced coin is removed", false, false},
		{"referenced coin is archived", true, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			coin := coinWithCap("bitcoin", 1000)
			coin.Pinned = true
			tr := NewTracker([]*Coin{coin})

			archived, err := tr.Delete("bitcoin", tc.referenced)
			if err != nil {
				t.Fatalf("Delete() returned %v", err)
			}
			if archived != tc.wantArchived {
				t.Fatalf("Delete() archived = %v, want %v", archived, tc.wantArchived)
			}
			if len(tr.Tracked()) != 0 {
				t.Error("deleted coin still visible in Tracked()")
			}
			_, ok := tr.Get("bitcoin")
			if ok != tc.wantArchived {
				t.Errorf("Get() after delete = %v, want %v", ok, tc.wantArchived)
			}
			if tc.wantArchived && coin.Pinned {
				t.Error("archived coin kept its pinned flag")
			}
		})
	}
}

func TestTracker_Delete_Unknown(t *testing.T) {
	tr := NewTracker(nil)
	if _, err := tr.Delete("nope", false); !errors.Is(err, ErrValidation) {
		t.Errorf("Delete() of unknown coin returned %v, want ErrValidation", err)
	}
}

func TestTracker_PinUnpin(t *testing.T) {
	a := coinWithCap("a", 100)
	b := coinWithCap("b", 1000)
	tr := NewTracker([]*Coin{a, b})
	tr.Sort()

	if err := tr.Pin("a"); err != nil {
		t.Fatal(err)
	}
	if got := trackedIDs(tr); !equalIDs(got, []string{"a", "b"}) {
		t.Errorf("after Pin(a): order = %v, want [a b]", got)
	}
	if err := tr.Unpin("a"); err != nil {
		t.Fatal(err)
	}
	if got := trackedIDs(tr); !equalIDs(got, []string{"b", "a"}) {
		t.Errorf("after Unpin(a): order = %v, want [b a]", got)
	}
}

func TestTracker_Move(t *testing.T) {
	tests := []struct {
		name string
		from []int
		to   int
		want []string
	}{
		{"first to end", []int{0}, 4, []string{"b", "c", "d", "a"}},
		{"last to front", []int{3}, 0, []string{"d", "a", "b", "c"}},
		{"two coins to middle", []int{0, 3}, 2, []string{"b", "a", "d", "c"}},
		{"drop on own position", []int{1}, 1, []string{"a", "b", "c", "d"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewTracker([]*Coin{
				NewCoin("a", "A", ""), NewCoin("b", "B", ""),
				NewCoin("c", "C", ""), NewCoin("d", "D", ""),
			})
			if err := tr.Move(false, tc.from, tc.to); err != nil {
				t.Fatalf("Move() returned %v", err)
			}
			if got := trackedIDs(tr); !equalIDs(got, tc.want) {
				t.Errorf("Move(%v, %d) order = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestTracker_Move_KeepsOtherSubgroup(t *testing.T) {
	p1 := NewCoin("p1", "P1", "")
	p1.Pinned = true
	p2 := NewCoin("p2", "P2", "")
	p2.Pinned = true
	tr := NewTracker([]*Coin{p1, p2, NewCoin("u1", "U1", ""), NewCoin("u2", "U2", "")})

	if err := tr.Move(true, []int{1}, 0); err != nil {
		t.Fatal(err)
	}
	want := []string{"p2", "p1", "u1", "u2"}
	if got := trackedIDs(tr); !equalIDs(got, want) {
		t.Errorf("order after pinned move = %v, want %v", got, want)
	}
}

func TestTracker_Move_OutOfRange(t *testing.T) {
	tr := NewTracker([]*Coin{NewCoin("a", "A", "")})
	if err := tr.Move(false, []int{5}, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("Move() with bad index returned %v, want ErrValidation", err)
	}
	if err := tr.Move(false, []int{0}, 9); !errors.Is(err, ErrValidation) {
		t.Errorf("Move() with bad destination returned %v, want ErrValidation", err)
	}
}

func TestTracker_OrderRoundTrip(t *testing.T) {
	tr := NewTracker([]*Coin{
		NewCoin("a", "A", ""), NewCoin("b", "B", ""), NewCoin("c", "C", ""),
	})
	if err := tr.Move(false, []int{2}, 0); err != nil {
		t.Fatal(err)
	}
	saved := tr.Order()

	// reload in a different starting order, plus a coin the saved order
	// never saw.
	reloaded := NewTracker([]*Coin{
		NewCoin("b", "B", ""), NewCoin("new", "N", ""),
		NewCoin("a", "A", ""), NewCoin("c", "C", ""),
	})
	reloaded.ApplyOrder(saved)

	want := []string{"c", "a", "b", "new"}
	if got := trackedIDs(reloaded); !equalIDs(got, want) {
		t.Errorf("ApplyOrder() = %v, want %v", got, want)
	}
}
