package environment

import (
	"testing"

	"github.com/openSVM/solisp-sub002/internal/value"
)

func TestDefineAndGet(t *testing.T) {
	env := New()
	env.Define("x", value.Int(1))
	got, err := env.Get("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Int(1) {
		t.Errorf("expected 1, got %v", got)
	}
}

func TestGetUnboundIsError(t *testing.T) {
	env := New()
	if _, err := env.Get("nope"); err == nil {
		t.Errorf("expected an error for an unbound name")
	}
}

func TestSetMutatesNearestLexicalFrame(t *testing.T) {
	env := New()
	env.Define("x", value.Int(1))
	env.EnterScope()
	defer env.ExitScope()
	if err := env.Set("x", value.Int(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := env.Get("x")
	if got != value.Int(2) {
		t.Errorf("expected the outer binding to be mutated in place, got %v", got)
	}
}

func TestSetUnboundIsError(t *testing.T) {
	env := New()
	if err := env.Set("nope", value.Int(1)); err == nil {
		t.Errorf("expected an error setting an unbound name")
	}
}

func TestEnterScopeShadowsOuterBinding(t *testing.T) {
	env := New()
	env.Define("x", value.Int(1))
	env.EnterScope()
	env.Define("x", value.Int(2))
	got, _ := env.Get("x")
	if got != value.Int(2) {
		t.Errorf("expected inner binding to shadow outer, got %v", got)
	}
	env.ExitScope()
	got, _ = env.Get("x")
	if got != value.Int(1) {
		t.Errorf("expected outer binding restored after ExitScope, got %v", got)
	}
}

func TestExitScopeOnRootPanics(t *testing.T) {
	env := New()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected ExitScope on the root frame to panic")
		}
	}()
	env.ExitScope()
}

func TestDefvarIsVisibleAcrossScopesAndSurvivesExit(t *testing.T) {
	env := New()
	env.Defvar("*global*", value.Int(42))
	env.EnterScope()
	got, err := env.Get("*global*")
	if err != nil || got != value.Int(42) {
		t.Fatalf("expected dynamic binding visible in a nested scope, got (%v, %v)", got, err)
	}
	env.ExitScope()
	got, err = env.Get("*global*")
	if err != nil || got != value.Int(42) {
		t.Fatalf("expected dynamic binding to survive ExitScope, got (%v, %v)", got, err)
	}
}

func TestLexicalLookupTakesPriorityOverDynamic(t *testing.T) {
	env := New()
	env.Defvar("x", value.Int(1))
	env.Define("x", value.Int(2))
	got, _ := env.Get("x")
	if got != value.Int(2) {
		t.Errorf("expected the lexical binding to shadow the dynamic one, got %v", got)
	}
}

func TestSnapshotFlattensChainInnerShadowsOuter(t *testing.T) {
	env := New()
	env.Define("a", value.Int(1))
	env.EnterScope()
	env.Define("b", value.Int(2))
	env.Define("a", value.Int(99))

	snap := env.Snapshot()
	if snap["a"] != value.Int(99) || snap["b"] != value.Int(2) {
		t.Errorf("expected snapshot {a:99 b:2}, got %v", snap)
	}
}

func TestFromSnapshotIsIndependentOfSource(t *testing.T) {
	snap := map[string]value.Value{"x": value.Int(1)}
	env := FromSnapshot(snap)
	env.Define("x", value.Int(2))
	if snap["x"] != value.Int(1) {
		t.Errorf("expected mutating the built environment to not affect the source map")
	}
}

func TestNewChildSeesLaterOuterDefines(t *testing.T) {
	outer := New()
	child := outer.NewChild()
	outer.Define("later", value.Int(7))
	got, err := child.Get("later")
	if err != nil || got != value.Int(7) {
		t.Fatalf("expected child to see a name defined on the outer frame after creation, got (%v, %v)", got, err)
	}
}

func TestFromClosureDispatchesOnRepresentation(t *testing.T) {
	live := New()
	live.Define("x", value.Int(1))
	gotLive := FromClosure(live)
	if _, err := gotLive.Get("x"); err != nil {
		t.Errorf("expected a live *Environment closure to resolve through NewChild: %v", err)
	}

	snap := map[string]value.Value{"y": value.Int(2)}
	gotSnap := FromClosure(snap)
	if v, err := gotSnap.Get("y"); err != nil || v != value.Int(2) {
		t.Errorf("expected a snapshot map closure to resolve via FromSnapshot, got (%v, %v)", v, err)
	}
}

func TestHas(t *testing.T) {
	env := New()
	if env.Has("x") {
		t.Errorf("expected Has to report false for an unbound name")
	}
	env.Define("x", value.Nil)
	if !env.Has("x") {
		t.Errorf("expected Has to report true once defined")
	}
}
