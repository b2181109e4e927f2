package alerting

import (
	"sync"
	"time"

	"adlens/ports"
)

// Store persists last-alert timestamps per alert key. The in-memory store
// below suffices for a single process; a shared deployment can swap in a
// keyed-upsert implementation.
type Store interface {
	LastAlert(key string) (time.Time, bool)
	SetLastAlert(key string, at time.Time)
}

// MemoryStore is the in-process store.
type MemoryStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[string]time.Time)}
}

func (s *MemoryStore) LastAlert(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.seen[key]
	return at, ok
}

func (s *MemoryStore) SetLastAlert(key string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[key] = at
}

// Debouncer suppresses repeat alerts for the same key inside a window. The
// clock and store are injected so behavior is testable without wall-clock
// sleeps.
type Debouncer struct {
	clock  ports.Clock
	store  Store
	window time.Duration
}

// NewDebouncer creates a debouncer over the given clock and store
func NewDebouncer(clock ports.Clock, store Store, window time.Duration) *Debouncer {
	return &Debouncer{clock: clock, store: store, window: window}
}

// ShouldAlert reports whether an alert for key may fire now, and records
// the firing when it may.
func (d *Debouncer) ShouldAlert(key string) bool {
	now := d.clock.Now()
	if last, ok := d.store.LastAlert(key); ok && now.Sub(last) < d.window {
		return false
	}
	d.store.SetLastAlert(key, now)
	return true
}
