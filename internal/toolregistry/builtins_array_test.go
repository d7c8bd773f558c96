package toolregistry

import (
	"testing"

	"github.com/openSVM/solisp-sub002/internal/value"
)

func arr(vs ...value.Value) *value.Array { return value.NewArray(vs...) }

func TestEltBoundsChecked(t *testing.T) {
	got, err := elt([]value.Value{arr(value.Int(10), value.Int(20)), value.Int(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Int(20) {
		t.Errorf("expected 20, got %v", got)
	}
	if _, err := elt([]value.Value{arr(value.Int(1)), value.Int(5)}); err == nil {
		t.Errorf("expected an out-of-range error")
	}
}

func TestSubseq(t *testing.T) {
	got, err := subseq([]value.Value{arr(value.Int(1), value.Int(2), value.Int(3), value.Int(4)), value.Int(1), value.Int(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, ok := got.(*value.Array)
	if !ok || len(a.Elements) != 2 || a.Elements[0] != value.Int(2) {
		t.Fatalf("expected [2 3], got %v", got)
	}
}

func TestAppendArrDoesNotMutateOriginal(t *testing.T) {
	orig := arr(value.Int(1))
	got, err := appendArr([]value.Value{orig, value.Int(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orig.Elements) != 1 {
		t.Errorf("expected original array untouched, got %v", orig.Elements)
	}
	a := got.(*value.Array)
	if len(a.Elements) != 2 {
		t.Errorf("expected 2 elements, got %v", a.Elements)
	}
}

func TestReverseArrayAndString(t *testing.T) {
	got, err := reverseBuiltin([]value.Value{arr(value.Int(1), value.Int(2), value.Int(3))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := got.(*value.Array)
	if a.Elements[0] != value.Int(3) || a.Elements[2] != value.Int(1) {
		t.Errorf("expected reversed [3 2 1], got %v", a.Elements)
	}

	gotS, err := reverseBuiltin([]value.Value{value.String("abc")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotS != value.String("cba") {
		t.Errorf("expected cba, got %v", gotS)
	}
}

func TestSortDefaultOrdering(t *testing.T) {
	got, err := sortBuiltin([]value.Value{arr(value.Int(3), value.Int(1), value.Int(2))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := got.(*value.Array)
	if a.Elements[0] != value.Int(1) || a.Elements[2] != value.Int(3) {
		t.Errorf("expected sorted [1 2 3], got %v", a.Elements)
	}
}

func TestSortNaturalOrder(t *testing.T) {
	got, err := sortBuiltin([]value.Value{
		arr(value.String("item10"), value.String("item2")),
		value.String(":natural"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := got.(*value.Array)
	if a.Elements[0] != value.String("item2") || a.Elements[1] != value.String("item10") {
		t.Errorf("expected natural order [item2 item10], got %v", a.Elements)
	}
}

func TestDistinctKeepsInsertionOrderOfFirstOccurrence(t *testing.T) {
	got, err := distinct([]value.Value{arr(value.Int(1), value.Int(2), value.Int(1), value.Int(3))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := got.(*value.Array)
	want := []value.Value{value.Int(1), value.Int(2), value.Int(3)}
	if len(a.Elements) != len(want) {
		t.Fatalf("expected %v, got %v", want, a.Elements)
	}
	for i := range want {
		if a.Elements[i] != want[i] {
			t.Errorf("expected %v, got %v", want, a.Elements)
		}
	}
}

func TestIndexOfOnTypeMismatchReturnsNegativeOne(t *testing.T) {
	got, err := indexOf([]value.Value{value.Int(5), value.Int(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Int(-1) {
		t.Errorf("expected -1 for a type mismatch, not an error, got %v", got)
	}
}

func TestContainsOnTypeMismatchReturnsFalse(t *testing.T) {
	got, err := containsBuiltin([]value.Value{value.Int(5), value.Int(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Bool(false) {
		t.Errorf("expected false for a type mismatch, not an error, got %v", got)
	}
}

func TestFirstAndRestOnEmptyArray(t *testing.T) {
	if _, err := firstBuiltin([]value.Value{arr()}); err == nil {
		t.Errorf("expected an error for first of an empty array")
	}
	got, err := restBuiltin([]value.Value{arr()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.(*value.Array).Elements) != 0 {
		t.Errorf("expected an empty array, got %v", got)
	}
}

func TestRangeBuiltinAndToArray(t *testing.T) {
	r, err := rangeBuiltin([]value.Value{value.Int(1), value.Int(4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := rangeToArray([]value.Value{r})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := got.(*value.Array)
	if len(a.Elements) != 3 || a.Elements[0] != value.Int(1) || a.Elements[2] != value.Int(3) {
		t.Errorf("expected [1 2 3], got %v", a.Elements)
	}
}
