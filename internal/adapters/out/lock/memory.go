// Package lock provides ports.Locker implementations: an in-process keyed
// mutex for a single replica and a redis lock shared by every replica.
package lock

import (
	"context"
	"strings"
	"sync"

	"checkout/internal/pkg/errs"
)

type memoryEntry struct {
	// sem holds one token while the key is locked
	sem  chan struct{}
	refs int
}

// MemoryLocker serializes work per key inside one process. Entries are
// removed once nobody holds or waits for them.
type MemoryLocker struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{entries: make(map[string]*memoryEntry)}
}

func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	if strings.TrimSpace(key) == "" {
		return nil, errs.NewValueIsRequiredError("lock key")
	}

	entry := l.acquireEntry(key)

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseEntry(key, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			l.releaseEntry(key, entry)
		})
	}, nil
}

func (l *MemoryLocker) acquireEntry(key string) *memoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		entry = &memoryEntry{sem: make(chan struct{}, 1)}
		l.entries[key] = entry
	}
	entry.refs++
	return entry
}

func (l *MemoryLocker) releaseEntry(key string, entry *memoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, key)
	}
}

// size reports the number of live entries; used by tests.
func (l *MemoryLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
