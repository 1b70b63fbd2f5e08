package slots

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestAdmitNewDate(t *testing.T) {
	m, err := Admit(nil, "2024-01-10", "10:00 AM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m["2024-01-10"]; len(got) != 1 || got[0] != "10:00 AM" {
		t.Fatalf("expected singleton collection, got %v", got)
	}
}

func TestAdmitAppendsSecondTime(t *testing.T) {
	m, _ := Admit(nil, "2024-01-10", "10:00 AM")
	m, err := Admit(m, "2024-01-10", "11:00 AM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m["2024-01-10"]; len(got) != 2 {
		t.Fatalf("expected two entries, got %v", got)
	}
}

func TestAdmitRejectsDuplicate(t *testing.T) {
	m, _ := Admit(nil, "2024-01-10", "10:00 AM")
	_, err := Admit(m, "2024-01-10", "10:00 AM")
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if got := m["2024-01-10"]; len(got) != 1 {
		t.Fatalf("rejected admit must not mutate the map, got %v", got)
	}
}

func TestAdmitExactStringEquality(t *testing.T) {
	// different spellings of the same instant are different slots
	m, _ := Admit(nil, "2024-01-10", "10:00 AM")
	m, err := Admit(m, "2024-01-10", "10:00AM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m["2024-01-10"]; len(got) != 2 {
		t.Fatalf("expected both spellings admitted, got %v", got)
	}
}

func TestReleaseRemovesExactTime(t *testing.T) {
	m, _ := Admit(nil, "2024-01-10", "10:00 AM")
	m, _ = Admit(m, "2024-01-10", "11:00 AM")

	Release(m, "2024-01-10", "10:00 AM")

	got := m["2024-01-10"]
	if len(got) != 1 || got[0] != "11:00 AM" {
		t.Fatalf("expected only 11:00 AM to remain, got %v", got)
	}
}

func TestReleaseRetainsEmptyCollection(t *testing.T) {
	m, _ := Admit(nil, "2024-01-10", "10:00 AM")
	Release(m, "2024-01-10", "10:00 AM")

	got, ok := m["2024-01-10"]
	if !ok {
		t.Fatal("date key must be retained after last release")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %v", got)
	}
}

func TestReleaseAbsentDateNoop(t *testing.T) {
	m := map[string][]string{"2024-01-10": {"10:00 AM"}}
	Release(m, "2024-01-11", "10:00 AM")
	if len(m) != 1 || len(m["2024-01-10"]) != 1 {
		t.Fatalf("release of absent date must not touch the map, got %v", m)
	}
}

func TestMemLedgerReserveReleaseCycle(t *testing.T) {
	ctx := context.Background()
	l := NewMemLedger()

	if err := l.Reserve(ctx, "doc1", "2024-01-10", "10:00 AM"); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if err := l.Reserve(ctx, "doc1", "2024-01-10", "10:00 AM"); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken on duplicate, got %v", err)
	}
	// another doctor's ledger is independent
	if err := l.Reserve(ctx, "doc2", "2024-01-10", "10:00 AM"); err != nil {
		t.Fatalf("other doctor reserve: %v", err)
	}

	if err := l.Release(ctx, "doc1", "2024-01-10", "10:00 AM"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := l.Reserve(ctx, "doc1", "2024-01-10", "10:00 AM"); err != nil {
		t.Fatalf("reserve after release: %v", err)
	}
}

func TestLedgersRejectUnstorableDates(t *testing.T) {
	// a dotted date would be read by the store as a nested field path
	// ({"2024": {"01": {"10": [...]}}}) and a "$"-led one as an operator;
	// either corrupts the doctor document, so both ledgers refuse before
	// touching anything
	bad := []string{"2024.01.10", "$gt", "", "2024-01-10\x00"}

	ctx := context.Background()
	ledgers := map[string]Ledger{
		"mem":   NewMemLedger(),
		"mongo": NewMongoLedger(),
	}
	for name, l := range ledgers {
		for _, date := range bad {
			if err := l.Reserve(ctx, "doc1", date, "10:00 AM"); !errors.Is(err, ErrInvalidSlot) {
				t.Fatalf("%s reserve %q: expected ErrInvalidSlot, got %v", name, date, err)
			}
			if err := l.Release(ctx, "doc1", date, "10:00 AM"); !errors.Is(err, ErrInvalidSlot) {
				t.Fatalf("%s release %q: expected ErrInvalidSlot, got %v", name, date, err)
			}
		}
	}

	// dots in the time string are fine, only the date becomes a field path
	if err := ledgers["mem"].Reserve(ctx, "doc1", "2024-01-10", "10.30 AM"); err != nil {
		t.Fatalf("dotted time must be admitted: %v", err)
	}
}

func TestMemLedgerConcurrentReserveSingleWinner(t *testing.T) {
	const n = 64
	ctx := context.Background()
	l := NewMemLedger()

	var wg sync.WaitGroup
	wins := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Reserve(ctx, "doc1", "2024-01-10", "10:00 AM"); err == nil {
				wins <- struct{}{}
			} else if !errors.Is(err, ErrSlotTaken) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for range wins {
		won++
	}
	if won != 1 {
		t.Fatalf("expected exactly one winner, got %d", won)
	}

	snap := l.Snapshot("doc1")
	if got := snap["2024-01-10"]; len(got) != 1 || got[0] != "10:00 AM" {
		t.Fatalf("ledger state after race: %v", snap)
	}
}
