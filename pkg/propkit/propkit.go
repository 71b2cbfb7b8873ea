// Package propkit is the public surface for building, editing,
// validating, and serializing property instance collections against a
// directory of property definitions.
package propkit

import (
	"fmt"
	"io"
	"strings"

	"github.com/matforge/propkit/internal/edn"
	"github.com/matforge/propkit/internal/engine"
	"github.com/matforge/propkit/internal/registry"
	"github.com/matforge/propkit/pkg/types"
)

// DumpIndent is the indent width used when writing a collection.
const DumpIndent = 4

// Kit holds the loaded definition registry and applies operations to
// serialized instance collections. A Kit is safe for concurrent
// readers once opened.
type Kit struct {
	registry *registry.Registry
}

// Open loads the definitions named by config and returns a ready Kit.
func Open(config types.Config) (*Kit, error) {
	reg, err := registry.Open(config)
	if err != nil {
		return nil, err
	}
	return &Kit{registry: reg}, nil
}

// Create appends a new empty instance for the resolved property to
// the collection and returns the updated serialization. An empty
// collection starts a new one.
func (k *Kit) Create(collection string, instanceID int, property, disclaimer string) (string, error) {
	store, err := decodeCollection(collection)
	if err != nil {
		return "", err
	}
	next, err := engine.Create(store, instanceID, property, disclaimer, k.registry)
	if err != nil {
		return "", err
	}
	return edn.EncodeStore(next, -1), nil
}

// Destroy removes the instance with the given id from the collection.
func (k *Kit) Destroy(collection string, instanceID int) (string, error) {
	store, err := requireCollection(collection)
	if err != nil {
		return "", err
	}
	next, err := engine.Destroy(store, instanceID)
	if err != nil {
		return "", err
	}
	return edn.EncodeStore(next, -1), nil
}

// Modify applies a token stream of key groups to one instance and
// returns the updated serialization. The call is all-or-nothing: on
// any failure the input collection is still the current state.
func (k *Kit) Modify(collection string, instanceID int, tokens ...string) (string, error) {
	store, err := requireCollection(collection)
	if err != nil {
		return "", err
	}
	next, err := engine.Modify(store, instanceID, k.registry, tokens...)
	if err != nil {
		return "", err
	}
	return edn.EncodeStore(next, -1), nil
}

// Remove deletes whole keys or named fields under keys from one
// instance and returns the updated serialization.
func (k *Kit) Remove(collection string, instanceID int, tokens ...string) (string, error) {
	store, err := requireCollection(collection)
	if err != nil {
		return "", err
	}
	next, err := engine.Remove(store, instanceID, tokens...)
	if err != nil {
		return "", err
	}
	return edn.EncodeStore(next, -1), nil
}

// Validate checks every instance in the collection against its
// definition and returns all violations found in one pass.
func (k *Kit) Validate(collection string) (types.Violations, error) {
	store, err := requireCollection(collection)
	if err != nil {
		return nil, err
	}
	return engine.Validate(store, k.registry), nil
}

// Dump validates the collection and, only when it is free of
// violations, writes the indented serialization to w. A collection
// holding exactly one instance is written as a bare map.
func (k *Kit) Dump(collection string, w io.Writer) error {
	store, err := requireCollection(collection)
	if err != nil {
		return err
	}
	if vs := engine.Validate(store, k.registry); len(vs) > 0 {
		return vs
	}
	_, err = io.WriteString(w, edn.EncodeStore(store, DumpIndent)+"\n")
	return err
}

// Resolve maps a property identifier (tagged id, short name, or
// definition file path) to its definition.
func (k *Kit) Resolve(identifier string) (*types.Definition, error) {
	return k.registry.Resolve(identifier)
}

// Definitions returns every loaded definition sorted by property id.
func (k *Kit) Definitions() []*types.Definition {
	return k.registry.Definitions()
}

// CheckDefinitionFile parses one definition file and checks its
// format without registering it.
func CheckDefinitionFile(path string) (*types.Definition, error) {
	return registry.ParseFile(path)
}

func decodeCollection(collection string) (*types.Store, error) {
	return edn.DecodeStore([]byte(strings.TrimSpace(collection)))
}

// requireCollection rejects an empty collection before decoding it.
func requireCollection(collection string) (*types.Store, error) {
	trimmed := strings.TrimSpace(collection)
	if trimmed == "" || trimmed == "[]" {
		return nil, fmt.Errorf("%w: there is no property instance to operate on", types.ErrEmptyCollection)
	}
	return edn.DecodeStore([]byte(trimmed))
}
