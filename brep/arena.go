//-----------------------------------------------------------------------------
/*

Entity Arena

Key[T] is a generation-tagged, opaque reference into an Arena[T]: deleting
and re-inserting reuses the slot but bumps its generation, so a key copied
before the delete fails Get instead of silently resolving to the new
occupant. Different Key[T] instantiations (Key[Vertex], Key[Edge], ...)
are distinct Go types, so VertexId and EdgeId can never be confused at
compile time the way two plain uint32 indices could be.

*/
//-----------------------------------------------------------------------------

package brep

// Key is an opaque, generation-tagged reference into an Arena[T]. The zero
// Key is never valid, so a freshly declared VertexId (etc.) is guaranteed
// to fail Get.
type Key[T any] struct {
	idx uint32 // 1-based; 0 means invalid
	gen uint32
}

// IsValid reports whether k could plausibly reference a live entity (it does
// not check liveness against any particular arena).
func (k Key[T]) IsValid() bool {
	return k.idx != 0
}

type arenaSlot[T any] struct {
	value T
	gen   uint32
	alive bool
}

// Arena is a generation-tagged slot map, modeled on the slotmap crate the
// original kernel's EntityStore is built from.
type Arena[T any] struct {
	slots []arenaSlot[T]
	free  []uint32
}

// Insert adds v and returns its key.
func (a *Arena[T]) Insert(v T) Key[T] {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[idx].value = v
		a.slots[idx].gen++
		a.slots[idx].alive = true
		return Key[T]{idx: idx + 1, gen: a.slots[idx].gen}
	}
	a.slots = append(a.slots, arenaSlot[T]{value: v, gen: 1, alive: true})
	return Key[T]{idx: uint32(len(a.slots)), gen: 1}
}

// Get returns a pointer to the value referenced by k, or (nil, false) if k
// is invalid, out of range, removed, or stale.
func (a *Arena[T]) Get(k Key[T]) (*T, bool) {
	if k.idx == 0 || int(k.idx) > len(a.slots) {
		return nil, false
	}
	s := &a.slots[k.idx-1]
	if !s.alive || s.gen != k.gen {
		return nil, false
	}
	return &s.value, true
}

// MustGet is like Get but panics if k does not resolve. It is meant for call
// sites that just inserted k themselves and know the arena has not been
// mutated since.
func (a *Arena[T]) MustGet(k Key[T]) *T {
	v, ok := a.Get(k)
	if !ok {
		panic("brep: stale or invalid key")
	}
	return v
}

// Remove deletes the entity referenced by k, returning false if k does not
// resolve to a live entity.
func (a *Arena[T]) Remove(k Key[T]) bool {
	if k.idx == 0 || int(k.idx) > len(a.slots) {
		return false
	}
	s := &a.slots[k.idx-1]
	if !s.alive || s.gen != k.gen {
		return false
	}
	s.alive = false
	var zero T
	s.value = zero
	a.free = append(a.free, k.idx-1)
	return true
}

// Len returns the number of live entities.
func (a *Arena[T]) Len() int {
	n := 0
	for _, s := range a.slots {
		if s.alive {
			n++
		}
	}
	return n
}

// Each calls fn for every live entity, in slot order.
func (a *Arena[T]) Each(fn func(Key[T], *T)) {
	for i := range a.slots {
		if a.slots[i].alive {
			fn(Key[T]{idx: uint32(i + 1), gen: a.slots[i].gen}, &a.slots[i].value)
		}
	}
}

// EncodeKey packs k's index and generation into a single uint64, stable
// for the lifetime of the arena slot k refers to. It exists so packages
// outside brep (ops, kernel) can hand out an opaque numeric identity for
// a Key without this package exposing idx/gen directly.
func EncodeKey[T any](k Key[T]) uint64 {
	return uint64(k.idx)<<32 | uint64(k.gen)
}

// DecodeKey is the inverse of EncodeKey.
func DecodeKey[T any](v uint64) Key[T] {
	return Key[T]{idx: uint32(v >> 32), gen: uint32(v)}
}
