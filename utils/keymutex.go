package utils

import "sync"

// KeyedMutex serializes critical sections per string key. Used to close
// read-then-write races that are scoped to a single aggregate id, such as a
// provider's rating recomputation.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given key, creating it on first use.
// Keys are never evicted; the key space is bounded by live aggregate ids.
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
}

// Unlock releases the mutex for the given key.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	m := k.locks[key]
	k.mu.Unlock()
	if m != nil {
		m.Unlock()
	}
}
