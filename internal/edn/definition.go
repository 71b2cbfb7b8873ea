package edn

import (
	"fmt"

	"github.com/matforge/propkit/pkg/types"
)

// standardPairKeys are the keys every per-key map of a definition may
// carry.
var standardPairKeys = map[string]bool{
	"type":        true,
	"has-unit":    true,
	"extent":      true,
	"required":    true,
	"description": true,
	"enum":        true,
}

// ParseDefinition converts a decoded definition document into a
// types.Definition and checks its format.
func ParseDefinition(doc any) (*types.Definition, error) {
	m, ok := doc.(*Map)
	if !ok {
		return nil, fmt.Errorf("%w: document is not a map", types.ErrInvalidDefinition)
	}
	id, err := requireString(m, "property-id")
	if err != nil {
		return nil, err
	}
	title, err := requireString(m, "property-title")
	if err != nil {
		return nil, err
	}
	desc, err := requireString(m, "property-description")
	if err != nil {
		return nil, err
	}
	def := types.NewDefinition(id, title, desc)
	for _, key := range m.Keys() {
		switch key {
		case "property-id", "property-title", "property-description":
			continue
		}
		raw, _ := m.Get(key)
		spec, err := parseKeySpec(key, raw)
		if err != nil {
			return nil, err
		}
		if err := def.AddKey(key, spec); err != nil {
			return nil, err
		}
	}
	if err := def.Check(); err != nil {
		return nil, err
	}
	return def, nil
}

func parseKeySpec(key string, raw any) (*types.KeySpec, error) {
	m, ok := raw.(*Map)
	if !ok {
		return nil, fmt.Errorf("%w: key %q is not associated with a map",
			types.ErrInvalidDefinition, key)
	}
	for _, k := range m.Keys() {
		if !standardPairKeys[k] {
			return nil, fmt.Errorf("%w: key %q carries non-standard pair %q",
				types.ErrInvalidDefinition, key, k)
		}
	}
	spec := &types.KeySpec{}
	var err error
	if spec.Type, err = requireString(m, "type"); err != nil {
		return nil, fmt.Errorf("key %q: %w", key, err)
	}
	if spec.HasUnit, err = requireBool(m, "has-unit"); err != nil {
		return nil, fmt.Errorf("key %q: %w", key, err)
	}
	if spec.Required, err = requireBool(m, "required"); err != nil {
		return nil, fmt.Errorf("key %q: %w", key, err)
	}
	if spec.Description, err = requireString(m, "description"); err != nil {
		return nil, fmt.Errorf("key %q: %w", key, err)
	}
	rawExtent, ok := m.Get("extent")
	if !ok {
		return nil, fmt.Errorf("%w: key %q has no extent", types.ErrInvalidDefinition, key)
	}
	if spec.Extent, err = parseExtent(key, rawExtent); err != nil {
		return nil, err
	}
	if rawEnum, ok := m.Get("enum"); ok {
		if spec.Enum, err = parseEnum(key, rawEnum); err != nil {
			return nil, err
		}
	}
	return spec, nil
}

func parseExtent(key string, raw any) (types.Extent, error) {
	vec, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: key %q extent is not a vector",
			types.ErrInvalidDefinition, key)
	}
	extent := make(types.Extent, 0, len(vec))
	for _, e := range vec {
		switch x := e.(type) {
		case int64:
			extent = append(extent, types.Dim{Size: int(x)})
		case string:
			if x != ":" {
				return nil, fmt.Errorf("%w: key %q extent contains invalid entry %q",
					types.ErrInvalidDefinition, key, x)
			}
			extent = append(extent, types.Dim{Free: true})
		default:
			return nil, fmt.Errorf("%w: key %q extent contains invalid entry %v",
				types.ErrInvalidDefinition, key, e)
		}
	}
	return extent, nil
}

func parseEnum(key string, raw any) ([]types.Scalar, error) {
	vec, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: key %q enum is not a vector",
			types.ErrInvalidDefinition, key)
	}
	enum := make([]types.Scalar, 0, len(vec))
	for _, e := range vec {
		s, err := toScalar(e)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q enum contains a non-scalar entry",
				types.ErrInvalidDefinition, key)
		}
		enum = append(enum, s)
	}
	return enum, nil
}

// EncodeDefinition converts a definition back into its document form.
func EncodeDefinition(def *types.Definition) *Map {
	m := NewMap()
	m.Set("property-id", def.PropertyID)
	m.Set("property-title", def.Title)
	m.Set("property-description", def.Description)
	for _, name := range def.KeyNames() {
		spec, _ := def.Key(name)
		km := NewMap()
		km.Set("type", spec.Type)
		km.Set("has-unit", spec.HasUnit)
		km.Set("extent", encodeExtent(spec.Extent))
		km.Set("required", spec.Required)
		km.Set("description", spec.Description)
		if len(spec.Enum) > 0 {
			enum := make([]any, len(spec.Enum))
			for i, e := range spec.Enum {
				enum[i] = fromScalar(e)
			}
			km.Set("enum", enum)
		}
		m.Set(name, km)
	}
	return m
}

func encodeExtent(extent types.Extent) []any {
	vec := make([]any, len(extent))
	for i, d := range extent {
		if d.Free {
			vec[i] = ":"
		} else {
			vec[i] = int64(d.Size)
		}
	}
	return vec
}

func requireString(m *Map, key string) (string, error) {
	v, ok := m.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: required key %q is missing",
			types.ErrInvalidDefinition, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string", types.ErrInvalidDefinition, key)
	}
	return s, nil
}

func requireBool(m *Map, key string) (bool, error) {
	v, ok := m.Get(key)
	if !ok {
		return false, fmt.Errorf("%w: required key %q is missing",
			types.ErrInvalidDefinition, key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q is not a boolean", types.ErrInvalidDefinition, key)
	}
	return b, nil
}
