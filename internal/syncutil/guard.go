// Package syncutil wraps critical sections around repository operations.
// Metadata regeneration must never run twice concurrently for the same
// directory; these helpers keep that guarantee in one place.
package syncutil

import "sync"

// WithLock runs fn while holding mu. The lock is released on every exit,
// including a panic inside fn.
func WithLock(mu sync.Locker, fn func() error) error {
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// KeyedMutex hands out one mutex per key so work on distinct keys proceeds
// independently. The zero value is ready to use.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// Do runs fn while holding the mutex for key.
func (k *KeyedMutex) Do(key string, fn func() error) error {
	return WithLock(k.get(key), fn)
}
