package types

import (
	"errors"
	"testing"
)

func TestStoreAdd(t *testing.T) {
	s := NewStore()
	if err := s.Add(NewInstance(testPropertyID, 1)); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := s.Add(NewInstance(testPropertyID, 1)); !errors.Is(err, ErrDuplicateInstanceID) {
		t.Fatalf("expected ErrDuplicateInstanceID, got %v", err)
	}
	if err := s.Add(NewInstance(testPropertyID, 0)); !errors.Is(err, ErrInvalidInstanceID) {
		t.Fatalf("expected ErrInvalidInstanceID, got %v", err)
	}
	if err := s.Add(NewInstance(testPropertyID, -2)); !errors.Is(err, ErrInvalidInstanceID) {
		t.Fatalf("expected ErrInvalidInstanceID, got %v", err)
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	s.Add(NewInstance(testPropertyID, 1))
	if err := s.Remove(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(1); !errors.Is(err, ErrInstanceNotFound) {
		t.Fatalf("expected ErrInstanceNotFound, got %v", err)
	}
}

func TestStoreOrderAcrossDestroyRecreate(t *testing.T) {
	s := NewStore()
	s.Add(NewInstance(testPropertyID, 1))
	s.Add(NewInstance(testPropertyID, 2))
	s.Add(NewInstance(testPropertyID, 3))

	s.Remove(2)
	s.Add(NewInstance(testPropertyID, 2))

	var order []int
	for _, in := range s.Instances() {
		order = append(order, in.InstanceID)
	}
	want := []int{1, 3, 2}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestStoreCloneIsDeep(t *testing.T) {
	s := NewStore()
	inst := NewInstance(testPropertyID, 1)
	inst.EnsureKey("mass").Set("source-value", NewScalar(Float64(26.98)))
	s.Add(inst)

	c := s.Clone()
	ci, _ := c.Find(1)
	kv, _ := ci.Key("mass")
	v, _ := kv.Get("source-value")
	v.Scalar = Float64(0)

	orig, _ := s.Find(1)
	okv, _ := orig.Key("mass")
	ov, _ := okv.Get("source-value")
	if ov.Scalar.Float != 26.98 {
		t.Error("clone shares value storage with the original")
	}
}

func TestStoreCloneNil(t *testing.T) {
	var s *Store
	c := s.Clone()
	if c == nil || c.Len() != 0 {
		t.Fatal("nil store should clone to an empty store")
	}
}
