// Package pool provides fixed-capacity slot pools for short-lived game entities.
//
// Slots are preallocated once and recycled; a pool never grows. Callers hold
// a Handle rather than a pointer across frames: every release bumps the slot's
// generation so a stale Handle can no longer reach the slot's next occupant.
package pool

import "iter"

// Handle addresses a pooled slot. The zero Handle is never valid.
type Handle struct {
	index      uint32
	generation uint32
}

// Index returns the slot index the handle refers to.
func (h Handle) Index() int { return int(h.index) }

type slot[T any] struct {
	value      T
	active     bool
	generation uint32
}

// Pool is a fixed array of slots with an active flag each.
// The number of active slots never exceeds Cap.
type Pool[T any] struct {
	slots  []slot[T]
	active int
}

// New creates a pool with capacity preallocated slots, all inactive.
func New[T any](capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	slots := make([]slot[T], capacity)
	for i := range slots {
		// Generation 0 is reserved for the zero Handle.
		slots[i].generation = 1
	}
	return &Pool[T]{slots: slots}
}

// Acquire marks the first inactive slot active and returns it zeroed.
// Returns ok=false when every slot is in use; the caller drops the request.
func (p *Pool[T]) Acquire() (v *T, h Handle, ok bool) {
	if p.active == len(p.slots) {
		return nil, Handle{}, false
	}
	for i := range p.slots {
		s := &p.slots[i]
		if s.active {
			continue
		}
		var zero T
		s.value = zero
		s.active = true
		p.active++
		return &s.value, Handle{index: uint32(i), generation: s.generation}, true
	}
	return nil, Handle{}, false
}

// Get resolves a handle. Stale or released handles return ok=false.
func (p *Pool[T]) Get(h Handle) (*T, bool) {
	s, ok := p.resolve(h)
	if !ok {
		return nil, false
	}
	return &s.value, true
}

// Release deactivates the slot a handle refers to.
// Returns false if the handle was already stale.
func (p *Pool[T]) Release(h Handle) bool {
	s, ok := p.resolve(h)
	if !ok {
		return false
	}
	p.deactivate(s)
	return true
}

// ResetAll deactivates every slot and invalidates all outstanding handles.
func (p *Pool[T]) ResetAll() {
	for i := range p.slots {
		if p.slots[i].active {
			p.deactivate(&p.slots[i])
		}
	}
}

// All iterates active slots in index order. Releasing the yielded handle
// during iteration is allowed.
func (p *Pool[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := range p.slots {
			s := &p.slots[i]
			if !s.active {
				continue
			}
			if !yield(Handle{index: uint32(i), generation: s.generation}, &s.value) {
				return
			}
		}
	}
}

// Active returns the number of slots currently in use.
func (p *Pool[T]) Active() int { return p.active }

// Cap returns the fixed capacity.
func (p *Pool[T]) Cap() int { return len(p.slots) }

func (p *Pool[T]) resolve(h Handle) (*slot[T], bool) {
	if int(h.index) >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[h.index]
	if !s.active || s.generation != h.generation {
		return nil, false
	}
	return s, true
}

func (p *Pool[T]) deactivate(s *slot[T]) {
	s.active = false
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	p.active--
}
