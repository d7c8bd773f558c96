package value

import "testing"

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Nil, false},
		{Bool(false), false},
		{Bool(true), true},
		{Int(0), true},
		{String(""), true},
		{NewArray(), true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.v); got != tt.want {
			t.Errorf("Truthy(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	if !IsEmpty(String("")) {
		t.Errorf("expected empty string to be empty")
	}
	if IsEmpty(String("x")) {
		t.Errorf("expected non-empty string to not be empty")
	}
	if !IsEmpty(NewArray()) {
		t.Errorf("expected empty array to be empty")
	}
	if IsEmpty(NewArray(Int(1))) {
		t.Errorf("expected non-empty array to not be empty")
	}
	if IsEmpty(Int(0)) {
		t.Errorf("Int is never \"empty\"")
	}
}

func TestAsIntCoercions(t *testing.T) {
	tests := []struct {
		v    Value
		want int64
		ok   bool
	}{
		{Int(5), 5, true},
		{Float(5.9), 5, true},
		{Bool(true), 1, true},
		{Bool(false), 0, true},
		{String("42"), 42, true},
		{String("nope"), 0, false},
		{Nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := AsInt(tt.v)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("AsInt(%v) = (%v, %v), want (%v, %v)", tt.v, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCollapseMultiple(t *testing.T) {
	if got := Collapse(Multiple{Values: []Value{Int(1), Int(2)}}); got != Int(1) {
		t.Errorf("expected first value 1, got %v", got)
	}
	if got := Collapse(Multiple{}); got != Nil {
		t.Errorf("expected Nil for empty Multiple, got %v", got)
	}
	if got := Collapse(Int(7)); got != Int(7) {
		t.Errorf("expected non-Multiple to pass through unchanged, got %v", got)
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Int(1), Float(1.0)) {
		t.Errorf("expected Int(1) == Float(1.0)")
	}
	if Equal(Int(1), Int(2)) {
		t.Errorf("expected Int(1) != Int(2)")
	}
	if !Equal(String("a"), String("a")) {
		t.Errorf("expected equal strings to compare equal")
	}
	arr1 := NewArray(Int(1))
	arr2 := NewArray(Int(1))
	if Equal(arr1, arr2) {
		t.Errorf("expected distinct arrays with equal contents to NOT compare equal (identity semantics)")
	}
	if !Equal(arr1, arr1) {
		t.Errorf("expected an array to equal itself")
	}
}

func TestObjectCloneIsIndependent(t *testing.T) {
	o := NewObject()
	o.Fields["a"] = Int(1)
	clone := o.Clone()
	clone.Fields["a"] = Int(2)
	if o.Fields["a"] != Int(1) {
		t.Errorf("expected original object to be unaffected by mutating the clone")
	}
}

func TestArrayCloneIsIndependent(t *testing.T) {
	a := NewArray(Int(1), Int(2))
	clone := a.Clone()
	clone.Elements[0] = Int(99)
	if a.Elements[0] != Int(1) {
		t.Errorf("expected original array to be unaffected by mutating the clone")
	}
}

func TestRangeLen(t *testing.T) {
	if got := (Range{Start: 1, End: 5}).Len(); got != 4 {
		t.Errorf("expected len 4, got %d", got)
	}
	if got := (Range{Start: 5, End: 1}).Len(); got != 0 {
		t.Errorf("expected len 0 for an inverted range, got %d", got)
	}
}

func TestIsKeyword(t *testing.T) {
	if !String(":foo").IsKeyword() {
		t.Errorf("expected :foo to be a keyword")
	}
	if String("foo").IsKeyword() {
		t.Errorf("expected foo to not be a keyword")
	}
}
