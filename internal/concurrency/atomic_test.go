package concurrency

import "testing"

func TestAtomicIntegerIncfDecf(t *testing.T) {
	a := NewAtomicInteger(10)
	if got := a.Incf(5, true); got != 15 {
		t.Errorf("expected 15, got %d", got)
	}
	if got := a.Decf(3, true); got != 12 {
		t.Errorf("expected 12, got %d", got)
	}
	if a.Value() != 12 {
		t.Errorf("expected Value to reflect 12, got %d", a.Value())
	}
}

func TestAtomicIntegerIncfDecfOmittedDeltaDefaultsToOne(t *testing.T) {
	a := NewAtomicInteger(0)
	if got := a.Incf(0, false); got != 1 {
		t.Errorf("expected an omitted delta to default to 1, got %d", got)
	}
	if got := a.Decf(0, false); got != 0 {
		t.Errorf("expected an omitted delta to default to 1, got %d", got)
	}
}

func TestAtomicIntegerIncfDecfExplicitZeroDeltaIsNoOp(t *testing.T) {
	a := NewAtomicInteger(5)
	if got := a.Incf(0, true); got != 5 {
		t.Errorf("expected an explicit zero delta to leave the value unchanged, got %d", got)
	}
	if got := a.Decf(0, true); got != 5 {
		t.Errorf("expected an explicit zero delta to leave the value unchanged, got %d", got)
	}
}

func TestAtomicIntegerCAS(t *testing.T) {
	a := NewAtomicInteger(7)
	if !a.CAS(7, 42) {
		t.Errorf("expected CAS to succeed when expected matches current")
	}
	if a.Value() != 42 {
		t.Errorf("expected value 42, got %d", a.Value())
	}
	if a.CAS(7, 100) {
		t.Errorf("expected CAS to fail when expected no longer matches current")
	}
	if a.Value() != 42 {
		t.Errorf("expected value to remain 42 after a failed CAS, got %d", a.Value())
	}
}
