package concurrency

import (
	"fmt"
	"os"
	"sync"

	"github.com/openSVM/solisp-sub002/internal/value"
)

// AsyncHandle is a one-shot result channel for an async task (spec.md §3,
// §4.7). Receiver is consumed at most once by Await; a second Await
// raises.
type AsyncHandle struct {
	id       string
	consumed bool
	mu       sync.Mutex
	result   chan asyncResult
}

type asyncResult struct {
	value value.Value
	err   error
}

func (*AsyncHandle) Kind() string     { return "async-handle" }
func (h *AsyncHandle) String() string { return "#<async-handle " + h.id + ">" }

// pool is the single process-wide bounded worker pool backing `async`
// (spec.md §9 "global mutable state"). Tasks submitted beyond the worker
// count simply queue on the buffered jobs channel; spec.md explicitly
// gives no ordering or fairness guarantee across async tasks.
type pool struct {
	jobs chan func()
	wg   sync.WaitGroup
}

func newPool(workers int) *pool {
	p := &pool{jobs: make(chan func(), 1024)}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *pool) worker() {
	for job := range p.jobs {
		job()
	}
}

// Async dispatches fn to the worker pool and returns a handle whose
// Await will block for fn's result. fn runs to completion even if the
// handle is discarded (fire-and-forget, spec.md §4.7).
func (rt *Runtime) Async(fn func() (value.Value, error)) *AsyncHandle {
	h := &AsyncHandle{id: newID("async"), result: make(chan asyncResult, 1)}
	rt.pool.wg.Add(1)
	rt.pool.jobs <- func() {
		defer rt.pool.wg.Done()
		v, err := fn()
		h.result <- asyncResult{value: v, err: err}
	}
	return h
}

// Await consumes h's receiver exactly once, blocking until the task
// completes. A second Await on the same handle raises. An error raised
// inside the task is logged to stderr here, at the point it collapses to
// Null, matching join-thread's contract (spec.md §7: "errors in async
// tasks are logged to stderr and cause ... await to produce Null").
func (rt *Runtime) Await(h *AsyncHandle) (value.Value, error) {
	h.mu.Lock()
	if h.consumed {
		h.mu.Unlock()
		return nil, errAlreadyAwaited(h.id)
	}
	h.consumed = true
	h.mu.Unlock()

	r := <-h.result
	if r.err != nil {
		fmt.Fprintf(os.Stderr, "async task %s: %s\n", h.id, r.err)
		return value.Nil, nil
	}
	if r.value == nil {
		return value.Nil, nil
	}
	return r.value, nil
}
