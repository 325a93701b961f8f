package ringfifo

import (
	"math"
	"unsafe"
)

// Typed wraps a ring with a concrete element type, so callers move values
// instead of byte slices. T must be pointer-free: entries live in a plain
// byte region the garbage collector does not scan, so a queued pointer would
// not keep its target alive.
type Typed[T any] struct {
	f *Fifo
}

// NewTyped builds a ring of capacity slots sized to T, owning its storage.
func NewTyped[T any](capacity int) (*Typed[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidArgument
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 || capacity > math.MaxInt/size {
		return nil, ErrInvalidArgument
	}
	f, err := NewFifo(make([]byte, capacity*size), capacity, size)
	if err != nil {
		return nil, err
	}
	return &Typed[T]{f: f}, nil
}

// Enqueue copies v into the next free slot.
func (t *Typed[T]) Enqueue(v T) error {
	if t == nil {
		return ErrInvalidArgument
	}
	return t.f.Enqueue(unsafe.Slice((*byte)(unsafe.Pointer(&v)), t.f.entrySize))
}

// Dequeue moves the oldest value out of the queue.
func (t *Typed[T]) Dequeue() (T, error) {
	var v T
	if t == nil {
		return v, ErrInvalidArgument
	}
	err := t.f.Dequeue(unsafe.Slice((*byte)(unsafe.Pointer(&v)), t.f.entrySize))
	return v, err
}

// Avail returns the number of queued values.
func (t *Typed[T]) Avail() int {
	if t == nil {
		return 0
	}
	return t.f.Avail()
}

// Capacity returns the slot count.
func (t *Typed[T]) Capacity() int {
	if t == nil {
		return 0
	}
	return t.f.Capacity()
}

// Fifo returns the underlying byte ring for operations Typed does not wrap.
func (t *Typed[T]) Fifo() *Fifo {
	if t == nil {
		return nil
	}
	return t.f
}
