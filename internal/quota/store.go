// Package quota tracks how many AI-assisted operations each identity has
// performed in the current window. The window is global: a background sweep
// clears every counter at a fixed interval anchored to process start, rather
// than sliding per identity.
package quota

import (
	"sync"
	"time"
)

// Store is the counter abstraction behind the rate-limit guard. The
// in-memory implementation is only correct for a single process; a shared
// store can be substituted for multi-replica deployments without touching
// guard logic.
type Store interface {
	// Consume records one operation for id and reports whether it was
	// within the ceiling. The read-increment-write sequence is atomic.
	Consume(id string) bool

	// NextReset returns the instant the current window ends.
	NextReset() time.Time
}

type MemoryStore struct {
	ceiling int
	window  time.Duration

	mu          sync.Mutex
	counts      map[string]int
	windowStart time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates the store and starts the window sweep. Call Stop
// to release the sweeper goroutine.
func NewMemoryStore(ceiling int, window time.Duration) *MemoryStore {
	s := &MemoryStore{
		ceiling:     ceiling,
		window:      window,
		counts:      make(map[string]int),
		windowStart: time.Now(),
		stopCh:      make(chan struct{}),
	}

	go s.sweepLoop()

	return s
}

func (s *MemoryStore) Consume(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counts[id] >= s.ceiling {
		return false
	}
	s.counts[id]++
	return true
}

func (s *MemoryStore) NextReset() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.windowStart.Add(s.window)
}

// Reset clears all counters and starts a new window.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = make(map[string]int)
	s.windowStart = time.Now()
}

func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

func (s *MemoryStore) sweepLoop() {
	ticker := time.NewTicker(s.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Reset()
		case <-s.stopCh:
			return
		}
	}
}
