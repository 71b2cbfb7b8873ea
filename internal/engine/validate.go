package engine

import (
	"fmt"

	"github.com/matforge/propkit/pkg/types"
)

// Validate checks every instance in the store against its definition
// and returns all violations found in one pass. It never mutates the
// store.
func Validate(store *types.Store, res Resolver) types.Violations {
	var vs types.Violations
	seen := make(map[int]bool)
	for _, inst := range store.Instances() {
		if err := types.CheckInstanceID(inst.InstanceID); err != nil {
			vs = append(vs, types.Violation{
				InstanceID: inst.InstanceID,
				Message:    err.Error(),
				Err:        types.ErrInvalidInstanceID,
			})
		}
		if seen[inst.InstanceID] {
			vs = append(vs, types.Violation{
				InstanceID: inst.InstanceID,
				Message:    "duplicate instance id",
				Err:        types.ErrDuplicateInstanceID,
			})
		}
		seen[inst.InstanceID] = true

		def, err := res.Resolve(inst.PropertyID)
		if err != nil {
			vs = append(vs, types.Violation{
				InstanceID: inst.InstanceID,
				Message:    fmt.Sprintf("property %q is not a known definition", inst.PropertyID),
				Err:        types.ErrDefinitionNotFound,
			})
			continue
		}
		vs = append(vs, validateInstance(inst, def)...)
	}
	return vs
}

func validateInstance(inst *types.Instance, def *types.Definition) types.Violations {
	var vs types.Violations
	for _, keyName := range inst.KeyNames() {
		spec, ok := def.Key(keyName)
		if !ok {
			vs = append(vs, types.Violation{
				InstanceID: inst.InstanceID,
				Key:        keyName,
				Message:    fmt.Sprintf("key is not defined by %s", def.PropertyID),
				Err:        types.ErrUnknownKey,
			})
			continue
		}
		kv, _ := inst.Key(keyName)
		vs = append(vs, validateKey(inst.InstanceID, keyName, spec, kv)...)
	}
	for _, keyName := range def.KeyNames() {
		spec, _ := def.Key(keyName)
		if !spec.Required {
			continue
		}
		kv, ok := inst.Key(keyName)
		if !ok {
			vs = append(vs, types.Violation{
				InstanceID: inst.InstanceID,
				Key:        keyName,
				Message:    "required key is missing",
				Err:        types.ErrMissingRequiredKey,
			})
			continue
		}
		if sv, ok := kv.Get("source-value"); ok && sv.HasUnset() {
			vs = append(vs, types.Violation{
				InstanceID: inst.InstanceID,
				Key:        keyName,
				Field:      "source-value",
				Message:    "required key has unset elements",
				Err:        types.ErrMissingRequiredKey,
			})
		}
	}
	return vs
}

func validateKey(instanceID int, keyName string, spec *types.KeySpec, kv *types.KeyValue) types.Violations {
	var vs types.Violations
	bad := func(field, message string, err error) {
		vs = append(vs, types.Violation{
			InstanceID: instanceID,
			Key:        keyName,
			Field:      field,
			Message:    message,
			Err:        err,
		})
	}

	for _, field := range kv.Fields() {
		if !types.IsStandardField(field) {
			bad(field, "not a standard field", types.ErrUnknownKey)
		}
	}

	sv, hasSource := kv.Get("source-value")
	if !hasSource {
		bad("source-value", "source-value is missing", types.ErrMissingRequiredKey)
	}

	if _, hasUnit := kv.Get("source-unit"); spec.HasUnit && !hasUnit {
		bad("source-unit", "key has a unit but source-unit is missing", types.ErrMissingRequiredKey)
	} else if hasUnit && !spec.HasUnit {
		bad("source-unit", "key does not have a unit", types.ErrTypeMismatch)
	}
	for _, field := range []string{"source-unit", "si-unit"} {
		if v, ok := kv.Get(field); ok {
			if v.Kind != types.ScalarNode || v.Scalar.Kind != types.ScalarString {
				bad(field, "unit must be a scalar string", types.ErrTypeMismatch)
			}
		}
	}

	if hasSource {
		vs = append(vs, validateShape(instanceID, keyName, "source-value", spec, sv, spec.Type)...)
		vs = append(vs, validateEnum(instanceID, keyName, spec, sv)...)
	}

	for _, field := range kv.Fields() {
		if !types.FieldsWithExtent[field] || field == "source-value" {
			continue
		}
		v, _ := kv.Get(field)
		valueType := types.FieldValueType(field, spec.Type)
		if !hasSource {
			continue
		}
		switch {
		case sv.Kind == types.ScalarNode && v.Kind == types.ArrayNode:
			bad(field, "source-value is scalar but the field is an array", types.ErrTypeMismatch)
		case sv.Kind == types.ArrayNode && v.Kind == types.ScalarNode:
			// Scalar broadcast over every source-value element.
			if !v.Scalar.MatchesType(valueType) {
				bad(field, fmt.Sprintf("value %s is not of type %s", v.Scalar.GoString(), valueType),
					types.ErrTypeMismatch)
			}
		case sv.Kind == types.ArrayNode && v.Kind == types.ArrayNode:
			if !shapesMatch(sv, v) {
				bad(field, "shape does not match source-value", types.ErrExtentMismatch)
			}
			vs = append(vs, validateLeafTypes(instanceID, keyName, field, v, valueType)...)
		case v.Kind == types.ScalarNode:
			if !v.Scalar.MatchesType(valueType) {
				bad(field, fmt.Sprintf("value %s is not of type %s", v.Scalar.GoString(), valueType),
					types.ErrTypeMismatch)
			}
		}
	}
	return vs
}

// validateShape checks a source-value against the key's declared
// extent: scalar keys take scalars, array keys take arrays of the
// declared dimensionality with fixed dimensions bounding lengths.
func validateShape(instanceID int, keyName, field string, spec *types.KeySpec, v *types.Value, valueType string) types.Violations {
	var vs types.Violations
	bad := func(message string, err error) {
		vs = append(vs, types.Violation{
			InstanceID: instanceID,
			Key:        keyName,
			Field:      field,
			Message:    message,
			Err:        err,
		})
	}
	if spec.Extent.IsScalar() {
		if v.Kind == types.ArrayNode {
			bad("key is scalar but holds an array", types.ErrTypeMismatch)
			return vs
		}
		if v.Kind == types.ScalarNode && !v.Scalar.MatchesType(valueType) {
			bad(fmt.Sprintf("value %s is not of type %s", v.Scalar.GoString(), valueType),
				types.ErrTypeMismatch)
		}
		return vs
	}
	if v.Kind == types.ScalarNode {
		bad("key is an array but holds a scalar", types.ErrTypeMismatch)
		return vs
	}
	if v.Kind == types.Unset {
		return vs
	}
	if !v.Uniform() {
		bad("array elements have uneven lengths", types.ErrExtentMismatch)
		return vs
	}
	shape := establishedShape(v)
	if len(shape) > spec.Extent.NDims() {
		bad(fmt.Sprintf("array has %d dimensions, %d declared", len(shape), spec.Extent.NDims()),
			types.ErrExtentMismatch)
		return vs
	}
	for n, length := range shape {
		dim := spec.Extent[n]
		if !dim.Free && length > dim.Size {
			bad(fmt.Sprintf("dimension %d has length %d, fixed at %d", n+1, length, dim.Size),
				types.ErrExtentMismatch)
		}
	}
	vs = append(vs, validateLeafTypes(instanceID, keyName, field, v, valueType)...)
	return vs
}

func validateLeafTypes(instanceID int, keyName, field string, v *types.Value, valueType string) types.Violations {
	var vs types.Violations
	_ = v.EachScalar(func(s types.Scalar) error {
		if !s.MatchesType(valueType) {
			vs = append(vs, types.Violation{
				InstanceID: instanceID,
				Key:        keyName,
				Field:      field,
				Message:    fmt.Sprintf("value %s is not of type %s", s.GoString(), valueType),
				Err:        types.ErrTypeMismatch,
			})
		}
		return nil
	})
	return vs
}

func validateEnum(instanceID int, keyName string, spec *types.KeySpec, v *types.Value) types.Violations {
	if len(spec.Enum) == 0 {
		return nil
	}
	var vs types.Violations
	_ = v.EachScalar(func(s types.Scalar) error {
		if err := checkEnum(spec, s); err != nil {
			vs = append(vs, types.Violation{
				InstanceID: instanceID,
				Key:        keyName,
				Field:      "source-value",
				Message:    fmt.Sprintf("value %s is not among the allowed values", s.GoString()),
				Err:        types.ErrInvalidEnumValue,
			})
		}
		return nil
	})
	return vs
}

// establishedShape returns the per-dimension lengths of a uniform value
// tree, following the longest populated branch so unset rows do not
// hide deeper dimensions.
func establishedShape(v *types.Value) []int {
	var shape []int
	for n := 0; ; n++ {
		l := v.DimLen(n)
		if l == 0 {
			return shape
		}
		shape = append(shape, l)
	}
}

// shapesMatch reports whether two array trees have identical lengths
// at every level. Unset placeholders match any subtree.
func shapesMatch(a, b *types.Value) bool {
	if a.Kind == types.Unset || b.Kind == types.Unset {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind != types.ArrayNode {
		return true
	}
	if len(a.Elems) != len(b.Elems) {
		return false
	}
	for i := range a.Elems {
		if !shapesMatch(a.Elems[i], b.Elems[i]) {
			return false
		}
	}
	return true
}
