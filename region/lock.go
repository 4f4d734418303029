package region

import (
	"sync"
	"sync/atomic"
)

// slotLock guards one index-table slot with a stamped (seqlock-style)
// fast path for reads: a reader takes a token, reads the slot's segment
// chain, then re-validates the token. If a writer ran concurrently the
// token will have moved and the reader falls back to a real read lock.
// The writer's odd/even sequence bump around its critical section is
// what readers validate against; the plain mmap reads in between are
// ordered by the atomic operations on seq, the standard seqlock
// construction.
type slotLock struct {
	mu  sync.RWMutex
	seq atomic.Uint32
}

func newSlotLocks(n int) []slotLock {
	return make([]slotLock, n)
}

// beginRead returns a validation token for the optimistic fast path.
// An odd token means a writer is currently in its critical section;
// callers must treat that as an immediate invalidation.
func (l *slotLock) beginRead() uint32 {
	return l.seq.Load()
}

// validRead reports whether no writer ran between token's capture and now.
func (l *slotLock) validRead(token uint32) bool {
	return token%2 == 0 && l.seq.Load() == token
}

// rLock/rUnlock back the pessimistic fallback read path.
func (l *slotLock) rLock()   { l.mu.RLock() }
func (l *slotLock) rUnlock() { l.mu.RUnlock() }

// lockWrite begins the writer's critical section, making the slot's
// sequence odd for the duration.
func (l *slotLock) lockWrite() {
	l.mu.Lock()
	l.seq.Add(1)
}

// unlockWrite ends the writer's critical section, making the sequence
// even again.
func (l *slotLock) unlockWrite() {
	l.seq.Add(1)
	l.mu.Unlock()
}
