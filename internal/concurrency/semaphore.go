package concurrency

import (
	"sync"
	"time"
)

// Semaphore is a counting semaphore. wait-on-semaphore decrements
// (blocking while the count is zero); signal-semaphore increments by an
// arbitrary count.
type Semaphore struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int64
}

func NewSemaphore(initial int64) *Semaphore {
	s := &Semaphore{count: initial}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (*Semaphore) Kind() string   { return "semaphore" }
func (*Semaphore) String() string { return "#<semaphore>" }

// Wait decrements the counter, blocking while it is zero. Returns false
// on timeout without decrementing; true once it has decremented.
func (s *Semaphore) Wait(timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timeout <= 0 {
		for s.count == 0 {
			s.cond.Wait()
		}
		s.count--
		return true
	}

	deadline := time.Now().Add(timeout)
	for s.count == 0 {
		if time.Now().After(deadline) {
			return false
		}
		s.mu.Unlock()
		time.Sleep(time.Millisecond)
		s.mu.Lock()
	}
	s.count--
	return true
}

// Signal increments the counter by count (default 1) and wakes that many
// waiters.
func (s *Semaphore) Signal(count int64) {
	if count <= 0 {
		count = 1
	}
	s.mu.Lock()
	s.count += count
	s.mu.Unlock()
	for i := int64(0); i < count; i++ {
		s.cond.Signal()
	}
}
