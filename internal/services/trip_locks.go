package services

import "sync"

// tripLocks serializes seat mutations per trip. Bookings on different trips
// proceed in parallel; two writers on the same trip never interleave between
// the availability check and the ticket insert.
type tripLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newTripLocks() *tripLocks {
	return &tripLocks{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex for a trip, creating it on first use. Lock entries
// are never removed; the set of trips is small and bounded.
func (t *tripLocks) get(tripID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	lock, ok := t.locks[tripID]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[tripID] = lock
	}
	return lock
}

// lock acquires the mutex for a single trip
func (t *tripLocks) lock(tripID string) func() {
	lock := t.get(tripID)
	lock.Lock()
	return lock.Unlock
}

// lockPair acquires the mutexes for two trips in id order, so concurrent
// relocations between the same pair of trips cannot deadlock.
func (t *tripLocks) lockPair(tripA, tripB string) func() {
	if tripA == tripB {
		return t.lock(tripA)
	}

	first, second := tripA, tripB
	if second < first {
		first, second = second, first
	}

	lockFirst := t.get(first)
	lockSecond := t.get(second)
	lockFirst.Lock()
	lockSecond.Lock()
	return func() {
		lockSecond.Unlock()
		lockFirst.Unlock()
	}
}
