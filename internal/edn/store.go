package edn

import (
	"fmt"

	"github.com/matforge/propkit/pkg/types"
)

// DecodeStore parses a serialized instance collection. The input may
// be an empty document, a single instance map, or a vector of
// instance maps.
func DecodeStore(data []byte) (*types.Store, error) {
	store := types.NewStore()
	if len(data) == 0 {
		return store, nil
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	var docs []any
	switch d := doc.(type) {
	case nil:
		return store, nil
	case *Map:
		docs = []any{d}
	case []any:
		docs = d
	default:
		return nil, fmt.Errorf("%w: collection is neither a map nor a vector", ErrSyntax)
	}
	for _, d := range docs {
		inst, err := decodeInstance(d)
		if err != nil {
			return nil, err
		}
		if err := store.Add(inst); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func decodeInstance(doc any) (*types.Instance, error) {
	m, ok := doc.(*Map)
	if !ok {
		return nil, fmt.Errorf("%w: instance is not a map", ErrSyntax)
	}
	inst := types.NewInstance("", 0)
	for _, key := range m.Keys() {
		raw, _ := m.Get(key)
		switch key {
		case "property-id":
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: property-id is not a string", ErrSyntax)
			}
			inst.PropertyID = s
		case "instance-id":
			n, ok := raw.(int64)
			if !ok {
				return nil, fmt.Errorf("%w: instance-id is not an integer", ErrSyntax)
			}
			inst.InstanceID = int(n)
		case "disclaimer":
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: disclaimer is not a string", ErrSyntax)
			}
			inst.Disclaimer = s
		default:
			kv, err := decodeKeyValue(key, raw)
			if err != nil {
				return nil, err
			}
			inst.SetKey(key, kv)
		}
	}
	return inst, nil
}

func decodeKeyValue(key string, raw any) (*types.KeyValue, error) {
	m, ok := raw.(*Map)
	if !ok {
		return nil, fmt.Errorf("%w: key %q is not associated with a map", ErrSyntax, key)
	}
	kv := types.NewKeyValue()
	for _, field := range m.Keys() {
		fv, _ := m.Get(field)
		v, err := decodeValue(fv)
		if err != nil {
			return nil, fmt.Errorf("key %q field %q: %w", key, field, err)
		}
		kv.Set(field, v)
	}
	return kv, nil
}

func decodeValue(raw any) (*types.Value, error) {
	switch x := raw.(type) {
	case nil:
		return types.NewUnset(), nil
	case []any:
		v := &types.Value{Kind: types.ArrayNode}
		for _, e := range x {
			elem, err := decodeValue(e)
			if err != nil {
				return nil, err
			}
			v.Elems = append(v.Elems, elem)
		}
		return v, nil
	default:
		s, err := toScalar(raw)
		if err != nil {
			return nil, err
		}
		return types.NewScalar(s), nil
	}
}

// EncodeStore serializes a collection. A store holding exactly one
// instance is written as a bare map, anything else as a vector.
func EncodeStore(store *types.Store, indent int) string {
	instances := store.Instances()
	if len(instances) == 1 {
		return EncodeIndent(encodeInstance(instances[0]), indent)
	}
	docs := make([]any, len(instances))
	for i, inst := range instances {
		docs[i] = encodeInstance(inst)
	}
	return EncodeIndent(docs, indent)
}

func encodeInstance(inst *types.Instance) *Map {
	m := NewMap()
	m.Set("property-id", inst.PropertyID)
	m.Set("instance-id", int64(inst.InstanceID))
	if inst.Disclaimer != "" {
		m.Set("disclaimer", inst.Disclaimer)
	}
	for _, key := range inst.KeyNames() {
		kv, _ := inst.Key(key)
		km := NewMap()
		for _, field := range kv.Fields() {
			fv, _ := kv.Get(field)
			km.Set(field, encodeValue(fv))
		}
		m.Set(key, km)
	}
	return m
}

func encodeValue(v *types.Value) any {
	switch v.Kind {
	case types.Unset:
		return nil
	case types.ScalarNode:
		return fromScalar(v.Scalar)
	default:
		vec := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			vec[i] = encodeValue(e)
		}
		return vec
	}
}

func toScalar(raw any) (types.Scalar, error) {
	switch x := raw.(type) {
	case string:
		return types.String(x), nil
	case int64:
		return types.Int64(x), nil
	case float64:
		return types.Float64(x), nil
	case bool:
		return types.Bool(x), nil
	default:
		return types.Scalar{}, fmt.Errorf("%w: value %v is not a scalar", ErrSyntax, raw)
	}
}

func fromScalar(s types.Scalar) any {
	switch s.Kind {
	case types.ScalarString:
		return s.Str
	case types.ScalarInt:
		return s.Int
	case types.ScalarFloat:
		return s.Float
	default:
		return s.Bool
	}
}
