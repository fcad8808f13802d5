// Package slots provides bounded, fixed-capacity storage for parsed argument
// instances. The arena never grows past the capacity it was created with,
// which keeps per-value memory bounded regardless of input length.
package slots

// Arena is a fixed-capacity append-only store with overwrite support for
// slot 0. Entries beyond Len are unset.
type Arena[T any] struct {
	buf []T
	n   int
}

// New creates an arena holding at most capacity entries. A capacity below 1
// is clamped to 1.
func New[T any](capacity int) *Arena[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Arena[T]{buf: make([]T, capacity)}
}

// Cap returns the fixed capacity.
func (a *Arena[T]) Cap() int { return len(a.buf) }

// Len returns the number of filled slots.
func (a *Arena[T]) Len() int { return a.n }

// Full reports whether every slot is filled.
func (a *Arena[T]) Full() bool { return a.n == len(a.buf) }

// Put appends v to the next free slot. Returns false when the arena is full;
// the arena is left unchanged in that case.
func (a *Arena[T]) Put(v T) bool {
	if a.n == len(a.buf) {
		return false
	}
	a.buf[a.n] = v
	a.n++
	return true
}

// Overwrite replaces the entry at index i. It panics if i >= Len.
func (a *Arena[T]) Overwrite(i int, v T) {
	if i >= a.n {
		panic("slots: overwrite of unset slot")
	}
	a.buf[i] = v
}

// At returns the entry at index i. It panics if i >= Len.
func (a *Arena[T]) At(i int) T {
	if i >= a.n {
		panic("slots: read of unset slot")
	}
	return a.buf[i]
}

// All returns the filled slots. The returned slice aliases the arena and is
// valid until the next mutation.
func (a *Arena[T]) All() []T { return a.buf[:a.n] }

// Reset marks every slot unset without releasing storage.
func (a *Arena[T]) Reset() {
	var zero T
	for i := 0; i < a.n; i++ {
		a.buf[i] = zero
	}
	a.n = 0
}
