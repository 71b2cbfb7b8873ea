package edn

import (
	"strings"
	"testing"

	"github.com/matforge/propkit/pkg/types"
)

const testPropertyID = "tag:staff@noreply.openkim.org,2014-04-15:property/cohesive-energy-relation-cubic-crystal"

func TestDecodeStoreSingleMap(t *testing.T) {
	input := `{
  "property-id" "` + testPropertyID + `"
  "instance-id" 1
  "short-name" {"source-value" ["fcc"]}
}`
	store, err := DecodeStore([]byte(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("Len = %d, want 1", store.Len())
	}
	inst, ok := store.Find(1)
	if !ok {
		t.Fatal("instance 1 not found")
	}
	if inst.PropertyID != testPropertyID {
		t.Errorf("property id = %q", inst.PropertyID)
	}
	kv, ok := inst.Key("short-name")
	if !ok {
		t.Fatal("short-name key missing")
	}
	v, _ := kv.Get("source-value")
	if v.Kind != types.ArrayNode || v.Len() != 1 || v.Elems[0].Scalar.Str != "fcc" {
		t.Errorf("unexpected source-value: %#v", v)
	}
}

func TestDecodeStoreVector(t *testing.T) {
	input := `[
  {"property-id" "` + testPropertyID + `" "instance-id" 1}
  {"property-id" "` + testPropertyID + `" "instance-id" 2 "disclaimer" "draft"}
]`
	store, err := DecodeStore([]byte(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}
	inst, _ := store.Find(2)
	if inst.Disclaimer != "draft" {
		t.Errorf("disclaimer = %q", inst.Disclaimer)
	}
}

func TestDecodeStoreNilBecomesUnset(t *testing.T) {
	input := `{"property-id" "` + testPropertyID + `" "instance-id" 1 ` +
		`"a" {"source-value" [1.5 nil 2.5]}}`
	store, err := DecodeStore([]byte(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	inst, _ := store.Find(1)
	kv, _ := inst.Key("a")
	v, _ := kv.Get("source-value")
	if v.Elems[1].Kind != types.Unset {
		t.Errorf("middle element should be unset, got kind %d", v.Elems[1].Kind)
	}
}

func TestDecodeStoreEmpty(t *testing.T) {
	for _, input := range []string{"", "[]"} {
		store, err := DecodeStore([]byte(input))
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if store.Len() != 0 {
			t.Fatalf("%q: Len = %d, want 0", input, store.Len())
		}
	}
}

func TestDecodeStoreDuplicateInstanceID(t *testing.T) {
	input := `[
  {"property-id" "` + testPropertyID + `" "instance-id" 1}
  {"property-id" "` + testPropertyID + `" "instance-id" 1}
]`
	if _, err := DecodeStore([]byte(input)); err == nil {
		t.Fatal("expected an error for duplicate instance ids")
	}
}

func TestEncodeStoreSingleBareMap(t *testing.T) {
	store := types.NewStore()
	inst := types.NewInstance(testPropertyID, 1)
	inst.EnsureKey("short-name").Set("source-value",
		types.NewScalar(types.String("fcc")))
	store.Add(inst)

	out := EncodeStore(store, 4)
	if !strings.HasPrefix(out, "{") {
		t.Errorf("single instance should serialize as a bare map, got %q", out[:1])
	}

	store.Add(types.NewInstance(testPropertyID, 2))
	out = EncodeStore(store, 4)
	if !strings.HasPrefix(out, "[") {
		t.Errorf("multiple instances should serialize as a vector, got %q", out[:1])
	}
}

func TestStoreRoundTrip(t *testing.T) {
	input := `[{"property-id" "` + testPropertyID + `" "instance-id" 1 ` +
		`"a" {"source-value" [3.9149 4.0] "source-unit" "angstrom" "digits" 5}} ` +
		`{"property-id" "` + testPropertyID + `" "instance-id" 2}]`
	store, err := DecodeStore([]byte(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out := EncodeStore(store, -1)
	again, err := DecodeStore([]byte(out))
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if EncodeStore(again, -1) != out {
		t.Fatalf("round trip not stable:\nfirst:  %s\nsecond: %s",
			out, EncodeStore(again, -1))
	}
	inst, _ := again.Find(1)
	kv, _ := inst.Key("a")
	if got := kv.Fields(); len(got) != 3 || got[0] != "source-value" ||
		got[1] != "source-unit" || got[2] != "digits" {
		t.Errorf("field order not preserved: %v", got)
	}
}
