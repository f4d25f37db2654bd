package lock

import "sync"

// KeyedLocker hands out one RWMutex per key. Mutexes are created lazily and
// never removed, which suits a small, fixed set of keys such as catalog names.
type KeyedLocker struct {
	mapMutex sync.Mutex
	locks    map[string]*sync.RWMutex
}

// NewKeyedLocker constructs an empty locker.
func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{locks: make(map[string]*sync.RWMutex)}
}

func (l *KeyedLocker) get(key string) *sync.RWMutex {
	l.mapMutex.Lock()
	defer l.mapMutex.Unlock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.RWMutex{}
		l.locks[key] = m
	}
	return m
}

// WithLock runs f while holding the exclusive lock for key.
func (l *KeyedLocker) WithLock(key string, f func() error) error {
	m := l.get(key)
	m.Lock()
	defer m.Unlock()
	return f()
}

// WithRLock runs f while holding the shared lock for key.
func (l *KeyedLocker) WithRLock(key string, f func() error) error {
	m := l.get(key)
	m.RLock()
	defer m.RUnlock()
	return f()
}
