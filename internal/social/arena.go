package social

import (
	"iter"
	"slices"
)

// Arena owns a collection of values addressed by monotonically increasing handles.
// Handles are never reused, so a removed entry can't be confused with a later one.
type Arena[K ~uint64, V any] struct {
	next  K
	items map[K]V
	order []K // ascending handle order
}

// NewArena creates an empty arena whose first handle is 1.
func NewArena[K ~uint64, V any]() *Arena[K, V] {
	return &Arena[K, V]{next: 1, items: make(map[K]V)}
}

// Add allocates a handle, builds the value for it, and stores it.
func (a *Arena[K, V]) Add(build func(id K) V) V {
	id := a.next
	a.next++
	v := build(id)
	a.items[id] = v
	a.order = append(a.order, id)
	return v
}

// Get returns the value for a handle.
func (a *Arena[K, V]) Get(id K) (V, bool) {
	v, ok := a.items[id]
	return v, ok
}

// Remove deletes a handle. Returns false if it was not present.
func (a *Arena[K, V]) Remove(id K) bool {
	if _, ok := a.items[id]; !ok {
		return false
	}
	delete(a.items, id)
	if i, found := slices.BinarySearch(a.order, id); found {
		a.order = slices.Delete(a.order, i, i+1)
	}
	return true
}

// All yields entries in handle order. Removing entries while iterating is safe;
// entries added during iteration are not visited.
func (a *Arena[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, id := range slices.Clone(a.order) {
			v, ok := a.items[id]
			if !ok {
				continue
			}
			if !yield(id, v) {
				return
			}
		}
	}
}

// Values returns a snapshot of the values in handle order.
func (a *Arena[K, V]) Values() []V {
	out := make([]V, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.items[id])
	}
	return out
}

// Len returns the number of live entries.
func (a *Arena[K, V]) Len() int {
	return len(a.items)
}

// NextID returns the handle the next Add will use.
func (a *Arena[K, V]) NextID() K {
	return a.next
}
