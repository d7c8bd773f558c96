package concurrency

import (
	"sync"
	"time"

	"github.com/openSVM/solisp-sub002/internal/value"
)

// StreamHandle is a pull-based handle onto an external event source
// (spec.md §4.8, summarized as peripheral: "its only core contract is
// that handles are first-class values and that blocking polls respect a
// timeout"). A background goroutine drives a user-supplied generator
// function and deposits each produced event on a buffered channel;
// stream-poll/stream-wait drain it without ever blocking the producer on
// a slow consumer beyond the buffer's capacity.
type StreamHandle struct {
	id     string
	events chan value.Value
	done   chan struct{}
	once   sync.Once
}

func (*StreamHandle) Kind() string     { return "stream" }
func (s *StreamHandle) String() string { return "#<stream " + s.id + ">" }

// Connect starts gen running on its own goroutine, feeding every value it
// returns into the handle's buffer until gen returns an error or the
// handle is closed. gen is supplied by the evaluator the same way
// make-thread/async supply a callable closed over user code (see
// Runtime.MakeThread/Async) — this package never evaluates language
// values itself.
func (rt *Runtime) Connect(gen func() (value.Value, error)) *StreamHandle {
	s := &StreamHandle{
		id:     newID("stream"),
		events: make(chan value.Value, 64),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			v, err := gen()
			if err != nil {
				return
			}
			select {
			case s.events <- v:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Poll performs a non-blocking read, returning (value.Nil, false) if
// nothing is currently buffered.
func (s *StreamHandle) Poll() (value.Value, bool) {
	select {
	case v, ok := <-s.events:
		if !ok {
			return value.Nil, false
		}
		return v, true
	default:
		return value.Nil, false
	}
}

// Wait blocks until an event is available, the stream closes, or timeout
// elapses (0 means block indefinitely), mirroring the timeout convention
// shared by condition-wait/wait-on-semaphore: a timeout reports expiry as
// a boolean/false result, never as an error (spec.md §5).
func (s *StreamHandle) Wait(timeout time.Duration) (value.Value, bool) {
	if timeout <= 0 {
		select {
		case v, ok := <-s.events:
			if !ok {
				return value.Nil, false
			}
			return v, true
		case <-s.done:
			return value.Nil, false
		}
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case v, ok := <-s.events:
		if !ok {
			return value.Nil, false
		}
		return v, true
	case <-s.done:
		return value.Nil, false
	case <-t.C:
		return value.Nil, false
	}
}

// Close stops the producing goroutine and unblocks any in-flight Wait.
// Idempotent: closing twice is a no-op.
func (s *StreamHandle) Close() {
	s.once.Do(func() { close(s.done) })
}
