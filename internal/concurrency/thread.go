package concurrency

import (
	"fmt"
	"os"
	"sync"

	"github.com/openSVM/solisp-sub002/internal/value"
)

// Thread is a first-class handle onto a real OS-scheduled goroutine
// running its own Evaluator (spec.md §4.7: "each thread owns exactly one
// Evaluator"). JoinSlot transitions exactly once from joinable to joined
// (spec.md §3 invariant).
type Thread struct {
	mu       sync.Mutex
	id       string
	name     string
	alive    bool
	joined   bool
	done     chan struct{}
	result   value.Value
	runErr   error // set when the thread body raised; join returns Null and logs it
}

func (*Thread) Kind() string     { return "thread" }
func (t *Thread) String() string { return "#<thread " + t.name + ">" }

// Runtime owns the set of live threads (for all-threads) and the shared
// async worker pool (spec.md §9 "global mutable state").
type Runtime struct {
	mu      sync.Mutex
	threads map[string]*Thread
	pool    *pool

	// current associates a goroutine id with the Thread it is running
	// as, so current-thread/thread-name resolve without threading a
	// handle through every call frame.
	currentMu sync.RWMutex
	current   map[uint64]*Thread
}

// NewRuntime constructs a Runtime with a worker pool of the given size
// (0 uses a sensible default); workers back `async`.
func NewRuntime(workers int) *Runtime {
	if workers <= 0 {
		workers = 8
	}
	rt := &Runtime{
		threads: make(map[string]*Thread),
		current: make(map[uint64]*Thread),
	}
	rt.pool = newPool(workers)
	return rt
}

// MakeThread spawns a goroutine that runs body() and records its result.
// body is supplied by the evaluator: it seeds a fresh Evaluator from the
// captured closure snapshot and evaluates the function's body against it
// (spec.md §4.7 "threads share no lexical state with their parent by
// default").
func (rt *Runtime) MakeThread(name string, body func() (value.Value, error)) *Thread {
	t := &Thread{
		id:    newID("thread"),
		name:  name,
		alive: true,
		done:  make(chan struct{}),
	}
	rt.mu.Lock()
	rt.threads[t.id] = t
	rt.mu.Unlock()

	go func() {
		gid := goroutineID()
		rt.currentMu.Lock()
		rt.current[gid] = t
		rt.currentMu.Unlock()
		defer func() {
			rt.currentMu.Lock()
			delete(rt.current, gid)
			rt.currentMu.Unlock()
		}()

		result, err := body()

		t.mu.Lock()
		t.alive = false
		t.result = result
		t.runErr = err
		t.mu.Unlock()
		close(t.done)
	}()

	return t
}

// JoinThread blocks until t completes, then transitions its join slot
// from joinable to joined exactly once (a second join raises). On
// thread-local error it returns Null, per spec.md §7 "errors in async
// tasks ... cause join-thread/await to produce Null".
func (rt *Runtime) JoinThread(t *Thread) (value.Value, error) {
	t.mu.Lock()
	if t.joined {
		t.mu.Unlock()
		return nil, errAlreadyJoined(t.name)
	}
	t.joined = true
	t.mu.Unlock()

	<-t.done

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runErr != nil {
		fmt.Fprintf(os.Stderr, "thread %q: %s\n", t.name, t.runErr)
		return value.Nil, nil
	}
	if t.result == nil {
		return value.Nil, nil
	}
	return t.result, nil
}

// ThreadAlive reports whether t has not yet finished running.
func (rt *Runtime) ThreadAlive(t *Thread) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alive
}

// ThreadName returns t's display name.
func (rt *Runtime) ThreadName(t *Thread) string { return t.name }

// AllThreads returns every thread this Runtime has ever spawned, alive or
// not.
func (rt *Runtime) AllThreads() []*Thread {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	out := make([]*Thread, 0, len(rt.threads))
	for _, t := range rt.threads {
		out = append(out, t)
	}
	return out
}

// CurrentThread returns the Thread the calling goroutine is running as,
// or nil if the caller is not running inside a make-thread-spawned
// goroutine (e.g. the main evaluator goroutine).
func (rt *Runtime) CurrentThread() *Thread {
	gid := goroutineID()
	rt.currentMu.RLock()
	defer rt.currentMu.RUnlock()
	return rt.current[gid]
}
