package engine

import (
	"fmt"

	"github.com/matforge/propkit/pkg/types"
)

// applyAssign resolves one field assignment against the key's
// specification and writes the parsed values into the key map.
func applyAssign(spec *types.KeySpec, kv *types.KeyValue, keyName string, a assign) error {
	if a.field == "source-unit" && !spec.HasUnit {
		return fmt.Errorf("%w: key %q does not have a unit", types.ErrTypeMismatch, keyName)
	}
	if !types.FieldsWithExtent[a.field] {
		return applyScalarField(spec, kv, keyName, a)
	}

	ndims := spec.Extent.NDims()
	if ndims == 0 {
		return applyScalarField(spec, kv, keyName, a)
	}

	// A single token on an uncertainty or digits field of an array key
	// is the scalar broadcast form.
	if types.FieldsScalarOrExtent[a.field] && len(a.tokens) == 1 {
		s, err := types.ParseScalar(a.tokens[0], types.FieldValueType(a.field, spec.Type))
		if err != nil {
			return fmt.Errorf("key %q field %q: %w", keyName, a.field, err)
		}
		kv.Set(a.field, types.NewScalar(s))
		return nil
	}

	sels, count, err := parseDimSels(a.tokens, ndims)
	if err != nil {
		return fmt.Errorf("key %q field %q: %w", keyName, a.field, err)
	}
	values := a.tokens[ndims:]
	if len(values) != count {
		return fmt.Errorf("%w: key %q field %q: %d values required, got %d",
			types.ErrBadToken, keyName, a.field, count, len(values))
	}

	target, ok := kv.Get(a.field)
	if !ok {
		target = types.NewUnset()
	}
	if target.Kind == types.ScalarNode {
		// A previously broadcast scalar converts to an array before an
		// indexed assignment extends it.
		if ndims != 1 || !types.FieldsScalarOrExtent[a.field] {
			return fmt.Errorf("%w: key %q field %q holds a scalar and cannot take indexed values",
				types.ErrTypeMismatch, keyName, a.field)
		}
		wrapped := types.NewArray(1)
		wrapped.Elems[0] = target
		target = wrapped
	}

	if err := checkDimClaims(spec, target, keyName, a.field, sels); err != nil {
		return err
	}

	valueType := types.FieldValueType(a.field, spec.Type)
	vi := 0
	for _, path := range expandPaths(sels) {
		s, err := types.ParseScalar(values[vi], valueType)
		if err != nil {
			return fmt.Errorf("key %q field %q: %w", keyName, a.field, err)
		}
		if a.field == "source-value" {
			if err := checkEnum(spec, s); err != nil {
				return fmt.Errorf("key %q: %w", keyName, err)
			}
		}
		if err := setScalarAt(target, path, s); err != nil {
			return fmt.Errorf("key %q field %q: %w", keyName, a.field, err)
		}
		vi++
	}
	kv.Set(a.field, target)
	return nil
}

// applyScalarField handles unit fields and any field of a scalar key:
// exactly one value token, no index tokens.
func applyScalarField(spec *types.KeySpec, kv *types.KeyValue, keyName string, a assign) error {
	if len(a.tokens) != 1 {
		if len(a.tokens) > 1 && isIndexToken(a.tokens[0]) {
			return fmt.Errorf("%w: key %q field %q is scalar and cannot be indexed",
				types.ErrTypeMismatch, keyName, a.field)
		}
		return fmt.Errorf("%w: key %q field %q is scalar and takes exactly one value, got %d tokens",
			types.ErrBadToken, keyName, a.field, len(a.tokens))
	}
	s, err := types.ParseScalar(a.tokens[0], types.FieldValueType(a.field, spec.Type))
	if err != nil {
		return fmt.Errorf("key %q field %q: %w", keyName, a.field, err)
	}
	if a.field == "source-value" {
		if err := checkEnum(spec, s); err != nil {
			return fmt.Errorf("key %q: %w", keyName, err)
		}
	}
	kv.Set(a.field, types.NewScalar(s))
	return nil
}

// checkDimClaims validates the index listing against the declared
// extent and the value's established shape. Fixed dimensions bound
// both indices and claimed extents; a ranged claim smaller than the
// dimension's current length is a shrink and is rejected. Established
// lengths come from DimLen so rows hidden behind unset placeholders
// still count.
func checkDimClaims(spec *types.KeySpec, target *types.Value, keyName, field string, sels []dimSel) error {
	for n, sel := range sels {
		dim := spec.Extent[n]
		if !dim.Free && sel.hi > dim.Size {
			return fmt.Errorf("%w: key %q field %q: dimension %d has fixed length %d, index %d requested",
				types.ErrExtentMismatch, keyName, field, n+1, dim.Size, sel.hi)
		}
		if established := target.DimLen(n); sel.ranged && sel.hi < established {
			return fmt.Errorf("%w: key %q field %q: dimension %d already has length %d, extent %d claimed",
				types.ErrExtentMismatch, keyName, field, n+1, established, sel.hi)
		}
	}
	return nil
}

// expandPaths enumerates the 1-based element paths addressed by the
// index listing, varying the single ranged dimension in order.
func expandPaths(sels []dimSel) [][]int {
	base := make([]int, len(sels))
	rangeDim := -1
	for n, sel := range sels {
		base[n] = sel.lo
		if sel.ranged {
			rangeDim = n
		}
	}
	if rangeDim < 0 {
		return [][]int{base}
	}
	sel := sels[rangeDim]
	paths := make([][]int, 0, sel.hi-sel.lo+1)
	for i := sel.lo; i <= sel.hi; i++ {
		p := append([]int(nil), base...)
		p[rangeDim] = i
		paths = append(paths, p)
	}
	return paths
}

// setScalarAt places s at the 1-based path inside root, growing array
// dimensions on demand with unset placeholders.
func setScalarAt(root *types.Value, path []int, s types.Scalar) error {
	node := root
	for _, idx := range path {
		if node.Kind == types.ScalarNode {
			return fmt.Errorf("%w: scalar value addressed with an index", types.ErrTypeMismatch)
		}
		if node.Kind == types.Unset {
			node.Kind = types.ArrayNode
		}
		node.Grow(idx)
		node = node.Elems[idx-1]
	}
	if node.Kind == types.ArrayNode {
		return fmt.Errorf("%w: array value assigned a scalar leaf", types.ErrTypeMismatch)
	}
	node.Kind = types.ScalarNode
	node.Scalar = s
	node.Elems = nil
	return nil
}

// checkEnum rejects a source-value leaf outside the key's enumeration.
func checkEnum(spec *types.KeySpec, s types.Scalar) error {
	if len(spec.Enum) == 0 {
		return nil
	}
	for _, allowed := range spec.Enum {
		if allowed.Equal(s) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not among the allowed values", types.ErrInvalidEnumValue, s.GoString())
}
