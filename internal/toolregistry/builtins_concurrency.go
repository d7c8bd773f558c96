package toolregistry

import (
	"runtime"
	"time"

	"github.com/openSVM/solisp-sub002/internal/concurrency"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// Apply invokes a callable Value with args, closing over whatever
// Evaluator the caller constructed. Concurrency builtins that spawn
// threads or async tasks need to call back into user code, so
// RegisterConcurrency takes one rather than importing internal/eval
// directly (which would cycle back into toolregistry).
type Apply func(fn value.Value, args []value.Value) (value.Value, error)

// RegisterConcurrency installs the Bordeaux-Threads-style builtins of
// spec.md §4.7/§5 atop rt, grounded on the teacher's pattern of closing
// builtin implementations over shared interpreter state (see the
// teacher's internal/interp/builtins_io.go closing over *os.File).
func RegisterConcurrency(r *Registry, rt *concurrency.Runtime, apply Apply) {
	r.Register("make-thread", func(args []value.Value) (value.Value, error) {
		fn, err := asCallable("make-thread", args, 0)
		if err != nil {
			return nil, err
		}
		name := "anonymous"
		if len(args) > 1 {
			if s, ok := args[1].(value.String); ok {
				name = string(s)
			}
		}
		t := rt.MakeThread(name, func() (value.Value, error) {
			return apply(fn, nil)
		})
		return t, nil
	}, CategoryConcurrency, "spawn a goroutine running the given zero-argument function")

	r.Register("join-thread", func(args []value.Value) (value.Value, error) {
		t, err := asThread("join-thread", args)
		if err != nil {
			return nil, err
		}
		return rt.JoinThread(t)
	}, CategoryConcurrency, "block until a thread finishes and return its result")

	r.Register("thread-alive-p", func(args []value.Value) (value.Value, error) {
		t, err := asThread("thread-alive-p", args)
		if err != nil {
			return nil, err
		}
		return value.Bool(rt.ThreadAlive(t)), nil
	}, CategoryConcurrency, "report whether a thread has not yet finished")

	r.Register("thread-name", func(args []value.Value) (value.Value, error) {
		t, err := asThread("thread-name", args)
		if err != nil {
			return nil, err
		}
		return value.String(rt.ThreadName(t)), nil
	}, CategoryConcurrency, "the display name a thread was given")

	r.Register("thread-yield", func(args []value.Value) (value.Value, error) {
		runtime.Gosched()
		return value.Nil, nil
	}, CategoryConcurrency, "yield the processor to other goroutines")

	r.Register("all-threads", func(args []value.Value) (value.Value, error) {
		ts := rt.AllThreads()
		out := make([]value.Value, len(ts))
		for i, t := range ts {
			out[i] = t
		}
		return value.NewArray(out...), nil
	}, CategoryConcurrency, "every thread this runtime has spawned")

	r.Register("current-thread", func(args []value.Value) (value.Value, error) {
		if t := rt.CurrentThread(); t != nil {
			return t, nil
		}
		return value.Nil, nil
	}, CategoryConcurrency, "the Thread the caller is running as, or null")

	r.Register("make-lock", func(args []value.Value) (value.Value, error) {
		return concurrency.NewLock(), nil
	}, CategoryConcurrency, "create a non-reentrant lock")

	r.Register("acquire-lock", func(args []value.Value) (value.Value, error) {
		l, err := asLock("acquire-lock", args)
		if err != nil {
			return nil, err
		}
		wait, timeout := lockOpts(args[1:])
		return value.Bool(l.Acquire(wait, timeout)), nil
	}, CategoryConcurrency, "attempt to take a lock")

	r.Register("release-lock", func(args []value.Value) (value.Value, error) {
		l, err := asLock("release-lock", args)
		if err != nil {
			return nil, err
		}
		l.Release()
		return value.Nil, nil
	}, CategoryConcurrency, "release a previously acquired lock")

	r.Register("make-recursive-lock", func(args []value.Value) (value.Value, error) {
		return concurrency.NewRecursiveLock(), nil
	}, CategoryConcurrency, "create a lock reentrant for the owning goroutine")

	r.Register("acquire-recursive-lock", func(args []value.Value) (value.Value, error) {
		rl, ok := argAt(args, 0).(*concurrency.RecursiveLock)
		if !ok {
			return nil, errors.InvalidArguments("acquire-recursive-lock", "expected a recursive-lock")
		}
		wait, timeout := lockOpts(args[1:])
		return value.Bool(rl.Acquire(wait, timeout)), nil
	}, CategoryConcurrency, "attempt to (re)acquire a recursive lock")

	r.Register("release-recursive-lock", func(args []value.Value) (value.Value, error) {
		rl, ok := argAt(args, 0).(*concurrency.RecursiveLock)
		if !ok {
			return nil, errors.InvalidArguments("release-recursive-lock", "expected a recursive-lock")
		}
		rl.Release()
		return value.Nil, nil
	}, CategoryConcurrency, "release one level of recursive-lock ownership")

	r.Register("make-condition-variable", func(args []value.Value) (value.Value, error) {
		return concurrency.NewConditionVariable(), nil
	}, CategoryConcurrency, "create a condition variable")

	r.Register("condition-wait", func(args []value.Value) (value.Value, error) {
		cv, ok := argAt(args, 0).(*concurrency.ConditionVariable)
		if !ok {
			return nil, errors.InvalidArguments("condition-wait", "expected a condition-variable")
		}
		lock, ok := argAt(args, 1).(concurrency.Lockable)
		if !ok {
			return nil, errors.InvalidArguments("condition-wait", "expected a lock or recursive-lock")
		}
		timeout := durationArg(args, 2)
		return value.Bool(cv.Wait(lock, timeout)), nil
	}, CategoryConcurrency, "atomically release a lock and wait for notify/broadcast")

	r.Register("condition-notify", func(args []value.Value) (value.Value, error) {
		cv, ok := argAt(args, 0).(*concurrency.ConditionVariable)
		if !ok {
			return nil, errors.InvalidArguments("condition-notify", "expected a condition-variable")
		}
		cv.Notify()
		return value.Nil, nil
	}, CategoryConcurrency, "wake exactly one waiter")

	r.Register("condition-broadcast", func(args []value.Value) (value.Value, error) {
		cv, ok := argAt(args, 0).(*concurrency.ConditionVariable)
		if !ok {
			return nil, errors.InvalidArguments("condition-broadcast", "expected a condition-variable")
		}
		cv.Broadcast()
		return value.Nil, nil
	}, CategoryConcurrency, "wake every current waiter")

	r.Register("make-semaphore", func(args []value.Value) (value.Value, error) {
		initial := int64(0)
		if len(args) > 0 {
			if n, ok := args[0].(value.Int); ok {
				initial = int64(n)
			}
		}
		return concurrency.NewSemaphore(initial), nil
	}, CategoryConcurrency, "create a counting semaphore")

	r.Register("wait-on-semaphore", func(args []value.Value) (value.Value, error) {
		s, ok := argAt(args, 0).(*concurrency.Semaphore)
		if !ok {
			return nil, errors.InvalidArguments("wait-on-semaphore", "expected a semaphore")
		}
		timeout := durationArg(args, 1)
		return value.Bool(s.Wait(timeout)), nil
	}, CategoryConcurrency, "decrement a semaphore, blocking while it is zero")

	r.Register("signal-semaphore", func(args []value.Value) (value.Value, error) {
		s, ok := argAt(args, 0).(*concurrency.Semaphore)
		if !ok {
			return nil, errors.InvalidArguments("signal-semaphore", "expected a semaphore")
		}
		count := int64(1)
		if len(args) > 1 {
			if n, ok := args[1].(value.Int); ok {
				count = int64(n)
			}
		}
		s.Signal(count)
		return value.Nil, nil
	}, CategoryConcurrency, "increment a semaphore and wake that many waiters")

	r.Register("make-atomic-integer", func(args []value.Value) (value.Value, error) {
		initial := int64(0)
		if len(args) > 0 {
			if n, ok := args[0].(value.Int); ok {
				initial = int64(n)
			}
		}
		return concurrency.NewAtomicInteger(initial), nil
	}, CategoryConcurrency, "create a lock-free atomic counter")

	r.Register("atomic-integer-value", func(args []value.Value) (value.Value, error) {
		a, err := asAtomic("atomic-integer-value", args)
		if err != nil {
			return nil, err
		}
		return value.Int(a.Value()), nil
	}, CategoryConcurrency, "read an atomic-integer")

	r.Register("atomic-integer-incf", func(args []value.Value) (value.Value, error) {
		a, err := asAtomic("atomic-integer-incf", args)
		if err != nil {
			return nil, err
		}
		delta, hasDelta := intArgOk(args, 1)
		return value.Int(a.Incf(delta, hasDelta)), nil
	}, CategoryConcurrency, "increment an atomic-integer and return the new value")

	r.Register("atomic-integer-decf", func(args []value.Value) (value.Value, error) {
		a, err := asAtomic("atomic-integer-decf", args)
		if err != nil {
			return nil, err
		}
		delta, hasDelta := intArgOk(args, 1)
		return value.Int(a.Decf(delta, hasDelta)), nil
	}, CategoryConcurrency, "decrement an atomic-integer and return the new value")

	r.Register("atomic-integer-cas", func(args []value.Value) (value.Value, error) {
		a, err := asAtomic("atomic-integer-cas", args)
		if err != nil {
			return nil, err
		}
		if len(args) < 3 {
			return nil, errors.Arity("atomic-integer-cas", 3, len(args))
		}
		expected, ok1 := args[1].(value.Int)
		newVal, ok2 := args[2].(value.Int)
		if !ok1 || !ok2 {
			return nil, errors.InvalidArguments("atomic-integer-cas", "expected integer expected/new values")
		}
		return value.Bool(a.CAS(int64(expected), int64(newVal))), nil
	}, CategoryConcurrency, "compare-and-swap an atomic-integer")

	r.Register("async", func(args []value.Value) (value.Value, error) {
		fn, err := asCallable("async", args, 0)
		if err != nil {
			return nil, err
		}
		return rt.Async(func() (value.Value, error) { return apply(fn, nil) }), nil
	}, CategoryConcurrency, "run a zero-argument function on the worker pool")

	r.Register("await", func(args []value.Value) (value.Value, error) {
		h, ok := argAt(args, 0).(*concurrency.AsyncHandle)
		if !ok {
			return nil, errors.InvalidArguments("await", "expected an async-handle")
		}
		return rt.Await(h)
	}, CategoryConcurrency, "block until an async task completes and return its result")

	r.Register("sleep", func(args []value.Value) (value.Value, error) {
		seconds := 0.0
		if len(args) > 0 {
			if f, ok := value.AsFloat(args[0]); ok {
				seconds = f
			}
		}
		time.Sleep(time.Duration(seconds * float64(time.Second)))
		return value.Nil, nil
	}, CategoryConcurrency, "block the calling goroutine for the given number of seconds")

	r.Register("stream-connect", func(args []value.Value) (value.Value, error) {
		fn, err := asCallable("stream-connect", args, 0)
		if err != nil {
			return nil, err
		}
		return rt.Connect(func() (value.Value, error) { return apply(fn, nil) }), nil
	}, CategoryConcurrency, "start a background generator and return a pull-based stream handle")

	r.Register("stream-poll", func(args []value.Value) (value.Value, error) {
		s, err := asStream("stream-poll", args)
		if err != nil {
			return nil, err
		}
		v, _ := s.Poll()
		return v, nil
	}, CategoryConcurrency, "non-blocking read of the next buffered event, or null")

	r.Register("stream-wait", func(args []value.Value) (value.Value, error) {
		s, err := asStream("stream-wait", args)
		if err != nil {
			return nil, err
		}
		v, _ := s.Wait(durationArg(args, 1))
		return v, nil
	}, CategoryConcurrency, "block for the next event up to an optional timeout in seconds")

	r.Register("stream-close", func(args []value.Value) (value.Value, error) {
		s, err := asStream("stream-close", args)
		if err != nil {
			return nil, err
		}
		s.Close()
		return value.Nil, nil
	}, CategoryConcurrency, "stop a stream's generator and unblock any pending wait")

	r.Register("osvm-stream", func(args []value.Value) (value.Value, error) {
		fn, err := asCallable("osvm-stream", args, 0)
		if err != nil {
			return nil, err
		}
		s := rt.Connect(func() (value.Value, error) { return apply(fn, nil) })
		v, _ := s.Wait(durationArg(args, 1))
		s.Close()
		return v, nil
	}, CategoryConcurrency, "convenience: connect, wait for one event, then close")
}

func argAt(args []value.Value, i int) value.Value {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func asCallable(tool string, args []value.Value, i int) (value.Value, error) {
	v := argAt(args, i)
	switch v.(type) {
	case *value.Function:
		return v, nil
	default:
		return nil, errors.InvalidArguments(tool, "expected a function")
	}
}

func asThread(tool string, args []value.Value) (*concurrency.Thread, error) {
	t, ok := argAt(args, 0).(*concurrency.Thread)
	if !ok {
		return nil, errors.InvalidArguments(tool, "expected a thread")
	}
	return t, nil
}

func asLock(tool string, args []value.Value) (*concurrency.Lock, error) {
	l, ok := argAt(args, 0).(*concurrency.Lock)
	if !ok {
		return nil, errors.InvalidArguments(tool, "expected a lock")
	}
	return l, nil
}

func asStream(tool string, args []value.Value) (*concurrency.StreamHandle, error) {
	s, ok := argAt(args, 0).(*concurrency.StreamHandle)
	if !ok {
		return nil, errors.InvalidArguments(tool, "expected a stream")
	}
	return s, nil
}

func asAtomic(tool string, args []value.Value) (*concurrency.AtomicInteger, error) {
	a, ok := argAt(args, 0).(*concurrency.AtomicInteger)
	if !ok {
		return nil, errors.InvalidArguments(tool, "expected an atomic-integer")
	}
	return a, nil
}

// lockOpts reads the optional (wait timeout-seconds) trailing arguments
// shared by acquire-lock/acquire-recursive-lock. wait defaults to true;
// timeout defaults to 0 (block indefinitely when wait is true).
func lockOpts(rest []value.Value) (wait bool, timeout time.Duration) {
	wait = true
	if len(rest) > 0 {
		wait = value.Truthy(rest[0])
	}
	if len(rest) > 1 {
		if f, ok := value.AsFloat(rest[1]); ok {
			timeout = time.Duration(f * float64(time.Second))
		}
	}
	return wait, timeout
}

func durationArg(args []value.Value, i int) time.Duration {
	if i >= len(args) || args[i] == nil {
		return 0
	}
	if f, ok := value.AsFloat(args[i]); ok {
		return time.Duration(f * float64(time.Second))
	}
	return 0
}

// intArgOk reports whether the caller actually supplied an Int argument
// at i, distinguishing "omitted" from "supplied as 0" for incf/decf's
// optional delta (spec.md §4.7).
func intArgOk(args []value.Value, i int) (int64, bool) {
	if i < len(args) {
		if n, ok := args[i].(value.Int); ok {
			return int64(n), true
		}
	}
	return 0, false
}
