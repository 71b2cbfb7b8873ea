package engine

import (
	"fmt"
	"testing"

	"github.com/matforge/propkit/pkg/types"
)

const testPropertyID = "tag:staff@noreply.openkim.org,2014-04-15:property/cohesive-energy-relation-cubic-crystal"

// testDefinition builds the definition used across the engine tests: a
// free-dimension string key, a required dimensioned float key, a
// two-dimensional coordinates key, and scalar keys of each flavor.
func testDefinition(t *testing.T) *types.Definition {
	t.Helper()
	def := types.NewDefinition(testPropertyID,
		"Cohesive energy versus lattice constant relation of a cubic crystal",
		"Cohesive energy as a function of the lattice constant")
	keys := []struct {
		name string
		spec *types.KeySpec
	}{
		{"short-name", &types.KeySpec{
			Type:   types.TypeString,
			Extent: types.Extent{{Free: true}},
		}},
		{"a", &types.KeySpec{
			Type:     types.TypeFloat,
			HasUnit:  true,
			Extent:   types.Extent{{Free: true}},
			Required: true,
		}},
		{"basis-atom-coordinates", &types.KeySpec{
			Type:   types.TypeFloat,
			Extent: types.Extent{{Free: true}, {Size: 3}},
		}},
		{"space-group", &types.KeySpec{
			Type: types.TypeString,
		}},
		{"structure", &types.KeySpec{
			Type: types.TypeString,
			Enum: []types.Scalar{types.String("fcc"), types.String("bcc")},
		}},
		{"verified", &types.KeySpec{
			Type: types.TypeBool,
		}},
	}
	for _, k := range keys {
		if err := def.AddKey(k.name, k.spec); err != nil {
			t.Fatalf("add key %s: %v", k.name, err)
		}
	}
	if err := def.Check(); err != nil {
		t.Fatalf("check definition: %v", err)
	}
	return def
}

// mapResolver resolves identifiers from a fixed set of definitions by
// tagged id or short name.
type mapResolver map[string]*types.Definition

func (r mapResolver) Resolve(identifier string) (*types.Definition, error) {
	if def, ok := r[identifier]; ok {
		return def, nil
	}
	for _, def := range r {
		if def.ShortName() == identifier {
			return def, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", types.ErrDefinitionNotFound, identifier)
}

func testResolver(t *testing.T) mapResolver {
	def := testDefinition(t)
	return mapResolver{def.PropertyID: def}
}

// mustCreate builds a store holding one empty instance of the test
// definition.
func mustCreate(t *testing.T, res Resolver, id int) *types.Store {
	t.Helper()
	store, err := Create(types.NewStore(), id, testPropertyID, "", res)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return store
}

// mustModify applies a token stream and fails the test on error.
func mustModify(t *testing.T, store *types.Store, id int, res Resolver, tokens ...string) *types.Store {
	t.Helper()
	next, err := Modify(store, id, res, tokens...)
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	return next
}

// sourceValue returns the source-value tree of a key, failing if absent.
func sourceValue(t *testing.T, store *types.Store, id int, key string) *types.Value {
	t.Helper()
	inst, ok := store.Find(id)
	if !ok {
		t.Fatalf("instance %d not found", id)
	}
	kv, ok := inst.Key(key)
	if !ok {
		t.Fatalf("key %q not found", key)
	}
	v, ok := kv.Get("source-value")
	if !ok {
		t.Fatalf("key %q has no source-value", key)
	}
	return v
}
