package concurrency

import (
	"strconv"
	"sync/atomic"
)

// AtomicInteger is a lock-free 64-bit counter.
type AtomicInteger struct {
	v int64
}

func NewAtomicInteger(initial int64) *AtomicInteger {
	return &AtomicInteger{v: initial}
}

func (*AtomicInteger) Kind() string   { return "atomic-integer" }
func (a *AtomicInteger) String() string {
	return "#<atomic-integer " + strconv.FormatInt(atomic.LoadInt64(&a.v), 10) + ">"
}

// Value reads the current value.
func (a *AtomicInteger) Value() int64 { return atomic.LoadInt64(&a.v) }

// Incf adds delta and returns the new value. hasDelta is false when the
// caller omitted the optional delta argument entirely (spec.md §4.7:
// "incf, decf (both with optional delta ...)"), in which case delta
// defaults to 1; a caller-supplied delta of 0 (hasDelta true) is honored
// as a genuine no-op increment rather than being mistaken for "omitted".
func (a *AtomicInteger) Incf(delta int64, hasDelta bool) int64 {
	if !hasDelta {
		delta = 1
	}
	return atomic.AddInt64(&a.v, delta)
}

// Decf subtracts delta and returns the new value; see Incf for the
// hasDelta/default-1 convention.
func (a *AtomicInteger) Decf(delta int64, hasDelta bool) int64 {
	if !hasDelta {
		delta = 1
	}
	return atomic.AddInt64(&a.v, -delta)
}

// CAS compares-and-swaps: if the current value equals expected, sets it
// to newValue and returns true; otherwise leaves it unchanged and returns
// false.
func (a *AtomicInteger) CAS(expected, newValue int64) bool {
	return atomic.CompareAndSwapInt64(&a.v, expected, newValue)
}
