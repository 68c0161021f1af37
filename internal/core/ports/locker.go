package ports

import "context"

// Locker serializes work on a single entity across goroutines and, depending
// on the adapter, across replicas. Keys look like "order:<id>".
type Locker interface {
	// Lock blocks until the key is acquired or ctx is done. The returned func
	// releases the lock and is safe to call once.
	Lock(ctx context.Context, key string) (release func(), err error)
}
