package engine

import (
	"errors"
	"testing"

	"github.com/matforge/propkit/pkg/types"
)

func TestCreate(t *testing.T) {
	res := testResolver(t)

	store, err := Create(types.NewStore(), 1, testPropertyID, "", res)
	if err != nil {
		t.Fatalf("create by tagged id: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("Len = %d, want 1", store.Len())
	}

	store, err = Create(store, 2, "cohesive-energy-relation-cubic-crystal", "preliminary", res)
	if err != nil {
		t.Fatalf("create by short name: %v", err)
	}
	inst, _ := store.Find(2)
	if inst.PropertyID != testPropertyID {
		t.Errorf("short name did not resolve to the tagged id: %q", inst.PropertyID)
	}
	if inst.Disclaimer != "preliminary" {
		t.Errorf("disclaimer = %q", inst.Disclaimer)
	}

	if _, err := Create(store, 1, testPropertyID, "", res); !errors.Is(err, types.ErrDuplicateInstanceID) {
		t.Fatalf("expected ErrDuplicateInstanceID, got %v", err)
	}
	if _, err := Create(store, 0, testPropertyID, "", res); !errors.Is(err, types.ErrInvalidInstanceID) {
		t.Fatalf("expected ErrInvalidInstanceID, got %v", err)
	}
	if _, err := Create(store, 3, "no-such-property", "", res); !errors.Is(err, types.ErrDefinitionNotFound) {
		t.Fatalf("expected ErrDefinitionNotFound, got %v", err)
	}
}

func TestCreateDoesNotMutateInput(t *testing.T) {
	res := testResolver(t)
	store := types.NewStore()
	next, err := Create(store, 1, testPropertyID, "", res)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if store.Len() != 0 {
		t.Error("input store was mutated")
	}
	if next.Len() != 1 {
		t.Error("result store missing the new instance")
	}
}

func TestDestroy(t *testing.T) {
	res := testResolver(t)
	store := mustCreate(t, res, 1)

	next, err := Destroy(store, 1)
	if err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if next.Len() != 0 {
		t.Fatalf("Len = %d, want 0", next.Len())
	}
	if store.Len() != 1 {
		t.Error("input store was mutated")
	}

	if _, err := Destroy(next, 1); !errors.Is(err, types.ErrInstanceNotFound) {
		t.Fatalf("expected ErrInstanceNotFound, got %v", err)
	}
}

func TestDestroyRecreatePreservesAppendOrder(t *testing.T) {
	res := testResolver(t)
	store := mustCreate(t, res, 1)
	store, _ = Create(store, 2, testPropertyID, "", res)
	store, _ = Create(store, 3, testPropertyID, "", res)

	store, _ = Destroy(store, 2)
	store, _ = Create(store, 2, testPropertyID, "", res)

	want := []int{1, 3, 2}
	for i, inst := range store.Instances() {
		if inst.InstanceID != want[i] {
			t.Fatalf("order at %d = %d, want %d", i, inst.InstanceID, want[i])
		}
	}
}

func TestRemoveField(t *testing.T) {
	res := testResolver(t)
	store := mustCreate(t, res, 1)
	store = mustModify(t, store, 1, res,
		"key", "a",
		"source-value", "1:2", "3.9149", "4.0",
		"source-unit", "angstrom",
		"digits", "5")

	next, err := Remove(store, 1, "key", "a", "source-unit")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	inst, _ := next.Find(1)
	kv, _ := inst.Key("a")
	if _, ok := kv.Get("source-unit"); ok {
		t.Error("source-unit should be gone")
	}
	if _, ok := kv.Get("source-value"); !ok {
		t.Error("source-value should survive")
	}
	if _, ok := kv.Get("digits"); !ok {
		t.Error("digits should survive")
	}
}

func TestRemoveWholeKey(t *testing.T) {
	res := testResolver(t)
	store := mustCreate(t, res, 1)
	store = mustModify(t, store, 1, res,
		"key", "short-name", "source-value", "1", "fcc",
		"key", "a", "source-value", "1", "3.9149", "source-unit", "angstrom")

	next, err := Remove(store, 1, "key", "short-name")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	inst, _ := next.Find(1)
	if _, ok := inst.Key("short-name"); ok {
		t.Error("short-name should be gone")
	}
	if _, ok := inst.Key("a"); !ok {
		t.Error("a should survive")
	}
}

func TestRemoveErrors(t *testing.T) {
	res := testResolver(t)
	store := mustCreate(t, res, 1)
	store = mustModify(t, store, 1, res,
		"key", "a", "source-value", "1", "3.9149", "source-unit", "angstrom")

	if _, err := Remove(store, 1, "key", "short-name"); !errors.Is(err, types.ErrUnknownKey) {
		t.Fatalf("absent key: expected ErrUnknownKey, got %v", err)
	}
	if _, err := Remove(store, 1, "key", "a", "digits"); !errors.Is(err, types.ErrUnknownKey) {
		t.Fatalf("absent field: expected ErrUnknownKey, got %v", err)
	}
	if _, err := Remove(store, 2, "key", "a"); !errors.Is(err, types.ErrInstanceNotFound) {
		t.Fatalf("absent instance: expected ErrInstanceNotFound, got %v", err)
	}
	if _, err := Remove(store, 1, "a", "source-unit"); !errors.Is(err, types.ErrBadToken) {
		t.Fatalf("missing key marker: expected ErrBadToken, got %v", err)
	}

	// A failed group leaves the input untouched.
	if _, err := Remove(store, 1, "key", "a", "source-unit", "key", "short-name"); err == nil {
		t.Fatal("expected an error")
	}
	inst, _ := store.Find(1)
	kv, _ := inst.Key("a")
	if _, ok := kv.Get("source-unit"); !ok {
		t.Error("failed remove mutated the input store")
	}
}
