package repository

import "sync"

// keyedMutex serializes bill generation and adjustment per
// (teacher, month, year) so the check-then-write sequence never interleaves
// for the same period. Keys are never unloaded; the key space is bounded by
// teachers × billed months.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// billLocks is shared by every repository that touches bills, so attendance
// adjustments, dispute approvals and bill generation all contend on the same
// period lock.
var billLocks = newKeyedMutex()

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) Lock(key string) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()
	l.Lock()
}

func (k *keyedMutex) Unlock(key string) {
	k.mu.Lock()
	l := k.locks[key]
	k.mu.Unlock()
	l.Unlock()
}
