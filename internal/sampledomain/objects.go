// Package sampledomain provides two small in-memory domain types with data
// tests attached. The CLI registers them when no application models are
// wired in, and the service tests use them as fixtures.
package sampledomain

import (
	"context"
	"fmt"
	"sort"
	"sync"

	id "datatests/pkg/domain"
	"datatests/pkg/platform/sentinel"
)

// objects is a concurrency-safe keyed collection shared by the sample types.
type objects[T any] struct {
	mu    sync.RWMutex
	items map[id.ObjectID]T
	key   func(T) id.ObjectID
}

func newObjects[T any](key func(T) id.ObjectID, items []T) *objects[T] {
	o := &objects[T]{items: make(map[id.ObjectID]T, len(items)), key: key}
	for _, it := range items {
		o.items[key(it)] = it
	}
	return o
}

func (o *objects[T]) put(item T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items[o.key(item)] = item
}

func (o *objects[T]) delete(objectID id.ObjectID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.items, objectID)
}

func (o *objects[T]) ids() []id.ObjectID {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]id.ObjectID, 0, len(o.items))
	for oid := range o.items {
		out = append(out, oid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (o *objects[T]) get(objectID id.ObjectID) (T, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	it, ok := o.items[objectID]
	if !ok {
		var zero T
		return zero, fmt.Errorf("object %s: %w", objectID, sentinel.ErrNotFound)
	}
	return it, nil
}

func (o *objects[T]) all() []T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]T, 0, len(o.items))
	for _, it := range o.items {
		out = append(out, it)
	}
	return out
}

// contextErr lets long scans stop early when the caller gives up.
func contextErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scan aborted: %w", err)
	}
	return nil
}
