package concurrency

import "sync"

// LockManager hands out one mutex per key. Services use the user ID as the
// key to serialize every mutation of a player's resources and ledger.
// Entries are reference counted and dropped once no caller holds or waits
// on them, so the map only grows with concurrently active keys.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*keyLock)}
}

// Lock acquires the mutex for key and returns its unlock function. The
// unlock function must be called exactly once.
func (lm *LockManager) Lock(key string) func() {
	lm.mu.Lock()
	l, ok := lm.locks[key]
	if !ok {
		l = &keyLock{}
		lm.locks[key] = l
	}
	l.refs++
	lm.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		lm.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(lm.locks, key)
		}
		lm.mu.Unlock()
	}
}

// Active returns the number of keys currently held or waited on
func (lm *LockManager) Active() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
