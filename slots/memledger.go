package slots

import (
	"context"
	"sync"
)

// MemLedger serializes admissions with a mutex over in-process slot maps.
// It exists for tests and for deployments whose store cannot express the
// conditional update; availability and existence checks are then the
// caller's concern, so Reserve only ever fails with ErrSlotTaken or
// ErrInvalidSlot.
type MemLedger struct {
	mu      sync.Mutex
	doctors map[string]map[string][]string
}

func NewMemLedger() *MemLedger {
	return &MemLedger{doctors: make(map[string]map[string][]string)}
}

func (l *MemLedger) Reserve(_ context.Context, doctorID, date, slotTime string) error {
	if !validSlotDate(date) {
		return ErrInvalidSlot
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	updated, err := Admit(l.doctors[doctorID], date, slotTime)
	if err != nil {
		return err
	}
	l.doctors[doctorID] = updated
	return nil
}

func (l *MemLedger) Release(_ context.Context, doctorID, date, slotTime string) error {
	if !validSlotDate(date) {
		return ErrInvalidSlot
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if m, ok := l.doctors[doctorID]; ok {
		Release(m, date, slotTime)
	}
	return nil
}

// Snapshot copies a doctor's current slot map.
func (l *MemLedger) Snapshot(doctorID string) map[string][]string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string][]string)
	for date, times := range l.doctors[doctorID] {
		out[date] = append([]string(nil), times...)
	}
	return out
}
