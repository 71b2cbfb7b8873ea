package types

import (
	"reflect"
	"testing"
)

func TestValueGrowPreservesElements(t *testing.T) {
	v := NewArray(2)
	v.Elems[0] = NewScalar(Float64(1.5))

	v.Grow(5)

	if v.Len() != 5 {
		t.Fatalf("Len = %d, want 5", v.Len())
	}
	if v.Elems[0].Kind != ScalarNode || v.Elems[0].Scalar.Float != 1.5 {
		t.Error("populated element was not preserved")
	}
	for i := 1; i < 5; i++ {
		if v.Elems[i].Kind != Unset {
			t.Errorf("element %d should be unset, got kind %d", i, v.Elems[i].Kind)
		}
	}

	// Grow never shrinks.
	v.Grow(3)
	if v.Len() != 5 {
		t.Fatalf("Len after smaller grow = %d, want 5", v.Len())
	}
}

func TestValueShape(t *testing.T) {
	inner := NewArray(3)
	outer := NewArray(2)
	outer.Elems[0] = inner

	if got := outer.Shape(); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Fatalf("Shape = %v, want [2 3]", got)
	}
	if outer.NDims() != 2 {
		t.Fatalf("NDims = %d, want 2", outer.NDims())
	}
	if NewScalar(Int64(1)).Shape() != nil {
		t.Error("scalar shape should be nil")
	}
	if NewUnset().Shape() != nil {
		t.Error("unset shape should be nil")
	}
}

func TestValueUniform(t *testing.T) {
	even := NewArray(2)
	even.Elems[0] = NewArray(3)
	even.Elems[1] = NewArray(3)
	if !even.Uniform() {
		t.Error("matching sibling lengths should be uniform")
	}

	ragged := NewArray(2)
	ragged.Elems[0] = NewArray(3)
	ragged.Elems[1] = NewArray(2)
	if ragged.Uniform() {
		t.Error("ragged siblings should not be uniform")
	}

	holes := NewArray(2)
	holes.Elems[0] = NewArray(3)
	// Elems[1] stays unset.
	if !holes.Uniform() {
		t.Error("unset placeholders may sit beside anything")
	}

	// Ragged rows must be detected even when the first row is unset.
	unsetFirst := NewArray(3)
	unsetFirst.Elems[1] = NewArray(3)
	unsetFirst.Elems[2] = NewArray(2)
	if unsetFirst.Uniform() {
		t.Error("ragged siblings behind an unset first row should not be uniform")
	}

	mixed := NewArray(2)
	mixed.Elems[0] = NewArray(2)
	mixed.Elems[1] = NewScalar(Float64(1))
	if mixed.Uniform() {
		t.Error("a scalar beside an array should not be uniform")
	}
}

func TestValueDimLen(t *testing.T) {
	v := NewArray(3)
	v.Elems[1] = NewArray(3)
	v.Elems[2] = NewArray(2)

	if got := v.DimLen(0); got != 3 {
		t.Errorf("DimLen(0) = %d, want 3", got)
	}
	// The first row is unset; the longest populated row wins.
	if got := v.DimLen(1); got != 3 {
		t.Errorf("DimLen(1) = %d, want 3", got)
	}
	if got := v.DimLen(2); got != 0 {
		t.Errorf("DimLen(2) = %d, want 0", got)
	}
	if got := NewScalar(Int64(1)).DimLen(0); got != 0 {
		t.Errorf("scalar DimLen = %d, want 0", got)
	}
}

func TestValueHasUnset(t *testing.T) {
	v := NewArray(3)
	v.Elems[0] = NewScalar(Float64(1))
	v.Elems[1] = NewScalar(Float64(2))
	if !v.HasUnset() {
		t.Error("array with a hole should report unset")
	}
	v.Elems[2] = NewScalar(Float64(3))
	if v.HasUnset() {
		t.Error("fully populated array should not report unset")
	}
}

func TestValueClone(t *testing.T) {
	v := NewArray(2)
	v.Elems[0] = NewScalar(String("fcc"))

	c := v.Clone()
	c.Elems[0].Scalar = String("bcc")

	if v.Elems[0].Scalar.Str != "fcc" {
		t.Error("clone shares storage with the original")
	}
}

func TestValueEachScalar(t *testing.T) {
	v := NewArray(3)
	v.Elems[0] = NewScalar(Float64(1))
	v.Elems[2] = NewScalar(Float64(3))

	var seen []float64
	err := v.EachScalar(func(s Scalar) error {
		seen = append(seen, s.Float)
		return nil
	})
	if err != nil {
		t.Fatalf("EachScalar: %v", err)
	}
	if !reflect.DeepEqual(seen, []float64{1, 3}) {
		t.Fatalf("seen = %v, want [1 3]", seen)
	}
}
