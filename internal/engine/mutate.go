package engine

import (
	"fmt"

	"github.com/matforge/propkit/pkg/types"
)

// Resolver maps a property identifier to its definition.
type Resolver interface {
	Resolve(identifier string) (*types.Definition, error)
}

// Create resolves the definition and appends a new empty instance to
// a copy of the store. Creation order is append-only: it is preserved
// even across destroy and recreate cycles.
func Create(store *types.Store, instanceID int, identifier, disclaimer string, res Resolver) (*types.Store, error) {
	def, err := res.Resolve(identifier)
	if err != nil {
		return nil, err
	}
	next := store.Clone()
	inst := types.NewInstance(def.PropertyID, instanceID)
	inst.Disclaimer = disclaimer
	if err := next.Add(inst); err != nil {
		return nil, err
	}
	return next, nil
}

// Destroy removes the instance with the given id from a copy of the
// store.
func Destroy(store *types.Store, instanceID int) (*types.Store, error) {
	next := store.Clone()
	if err := next.Remove(instanceID); err != nil {
		return nil, err
	}
	return next, nil
}

// Modify applies a token stream of key groups to the instance with
// the given id. The whole call succeeds or the caller's store is left
// untouched.
func Modify(store *types.Store, instanceID int, res Resolver, tokens ...string) (*types.Store, error) {
	groups, err := parseGroups(tokens)
	if err != nil {
		return nil, err
	}
	next := store.Clone()
	inst, ok := next.Find(instanceID)
	if !ok {
		return nil, fmt.Errorf("%w: instance %d", types.ErrInstanceNotFound, instanceID)
	}
	def, err := res.Resolve(inst.PropertyID)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		spec, ok := def.Key(g.keyName)
		if !ok {
			return nil, fmt.Errorf("%w: key %q is not defined by %s",
				types.ErrUnknownKey, g.keyName, def.PropertyID)
		}
		kv := inst.EnsureKey(g.keyName)
		for _, a := range g.assigns {
			if err := applyAssign(spec, kv, g.keyName, a); err != nil {
				return nil, err
			}
		}
	}
	return next, nil
}

// Remove deletes whole keys or named fields under keys from the
// instance with the given id. A group naming no fields deletes the
// key and all of its metadata.
func Remove(store *types.Store, instanceID int, tokens ...string) (*types.Store, error) {
	groups, err := parseRemoveGroups(tokens)
	if err != nil {
		return nil, err
	}
	next := store.Clone()
	inst, ok := next.Find(instanceID)
	if !ok {
		return nil, fmt.Errorf("%w: instance %d", types.ErrInstanceNotFound, instanceID)
	}
	for _, g := range groups {
		kv, ok := inst.Key(g.keyName)
		if !ok {
			return nil, fmt.Errorf("%w: key %q is not present on instance %d",
				types.ErrUnknownKey, g.keyName, instanceID)
		}
		if len(g.fields) == 0 {
			inst.DeleteKey(g.keyName)
			continue
		}
		for _, field := range g.fields {
			if !kv.Delete(field) {
				return nil, fmt.Errorf("%w: field %q is not present under key %q",
					types.ErrUnknownKey, field, g.keyName)
			}
		}
	}
	return next, nil
}

// A removeGroup names a key and, optionally, fields under it.
type removeGroup struct {
	keyName string
	fields  []string
}

func parseRemoveGroups(tokens []string) ([]removeGroup, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty token list", types.ErrBadToken)
	}
	var groups []removeGroup
	i := 0
	for i < len(tokens) {
		if tokens[i] != "key" {
			return nil, fmt.Errorf("%w: expected \"key\", got %q", types.ErrBadToken, tokens[i])
		}
		i++
		if i >= len(tokens) {
			return nil, fmt.Errorf("%w: missing key name after \"key\"", types.ErrBadToken)
		}
		g := removeGroup{keyName: tokens[i]}
		i++
		for i < len(tokens) && tokens[i] != "key" {
			if !types.IsStandardField(tokens[i]) {
				return nil, fmt.Errorf("%w: %q is not a standard field name",
					types.ErrBadToken, tokens[i])
			}
			g.fields = append(g.fields, tokens[i])
			i++
		}
		groups = append(groups, g)
	}
	return groups, nil
}
