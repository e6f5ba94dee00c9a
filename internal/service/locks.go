package service

import "sync"

// AccountLocks serializes balance mutations per account. Settlement and the
// manual wallet operations share one registry so a bet and a withdrawal can
// never interleave inside the same account's read-check-write window.
type AccountLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewAccountLocks() *AccountLocks {
	return &AccountLocks{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the mutex for one account, creating it on first use. Locks
// are never removed; the map grows with the number of active accounts.
func (a *AccountLocks) Lock(userID uint) *sync.Mutex {
	a.mu.Lock()
	m, ok := a.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		a.locks[userID] = m
	}
	a.mu.Unlock()
	m.Lock()
	return m
}
