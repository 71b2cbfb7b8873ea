package types

// ValueKind discriminates the three states of a value-tree node.
type ValueKind int

// Value kinds. An Unset node is an explicit placeholder created when an
// array grows past the elements that have been assigned, so completeness
// checks can detect holes; it is never a default numeric value.
const (
	Unset ValueKind = iota
	ScalarNode
	ArrayNode
)

// Value is one node in a key's value tree: an unset placeholder, a scalar
// leaf, or an array of nested values.
type Value struct {
	Kind   ValueKind
	Scalar Scalar
	Elems  []*Value
}

// NewUnset returns a fresh unset placeholder.
func NewUnset() *Value { return &Value{Kind: Unset} }

// NewScalar returns a scalar leaf node.
func NewScalar(s Scalar) *Value { return &Value{Kind: ScalarNode, Scalar: s} }

// NewArray returns an array node with n unset elements.
func NewArray(n int) *Value {
	v := &Value{Kind: ArrayNode, Elems: make([]*Value, n)}
	for i := range v.Elems {
		v.Elems[i] = NewUnset()
	}
	return v
}

// Grow extends an array node to at least n elements, filling new slots with
// unset placeholders. Previously populated elements are preserved.
func (v *Value) Grow(n int) {
	for len(v.Elems) < n {
		v.Elems = append(v.Elems, NewUnset())
	}
}

// Len returns the number of elements of an array node, zero otherwise.
func (v *Value) Len() int {
	if v == nil || v.Kind != ArrayNode {
		return 0
	}
	return len(v.Elems)
}

// Shape returns the per-dimension lengths of the value walking down the
// first spine: nil for scalars and unset nodes. Uniformity across siblings
// is checked separately by Uniform.
func (v *Value) Shape() []int {
	if v == nil || v.Kind != ArrayNode {
		return nil
	}
	shape := []int{len(v.Elems)}
	if len(v.Elems) > 0 {
		shape = append(shape, v.Elems[0].Shape()...)
	}
	return shape
}

// NDims returns the number of array dimensions down the first spine.
func (v *Value) NDims() int { return len(v.Shape()) }

// DimLen returns the longest established length of the 0-based array
// dimension dim anywhere in the tree, zero when nothing is populated at
// that depth. Unlike Shape it does not stop at an unset first element.
func (v *Value) DimLen(dim int) int {
	if v == nil || v.Kind != ArrayNode {
		return 0
	}
	if dim == 0 {
		return len(v.Elems)
	}
	longest := 0
	for _, e := range v.Elems {
		if l := e.DimLen(dim - 1); l > longest {
			longest = l
		}
	}
	return longest
}

// levelShape records the kind and array length first seen at one nesting
// depth while walking a value tree.
type levelShape struct {
	kind   ValueKind
	length int
}

// Uniform reports whether the tree is rectangular: at every nesting depth
// all populated nodes share one kind and, for arrays, one length. Unset
// placeholders match anything.
func (v *Value) Uniform() bool {
	var levels []levelShape
	return v.uniform(0, &levels)
}

func (v *Value) uniform(depth int, levels *[]levelShape) bool {
	if v == nil || v.Kind == Unset {
		return true
	}
	if depth == len(*levels) {
		*levels = append(*levels, levelShape{kind: v.Kind, length: len(v.Elems)})
	} else {
		l := (*levels)[depth]
		if v.Kind != l.kind {
			return false
		}
		if v.Kind == ArrayNode && len(v.Elems) != l.length {
			return false
		}
	}
	if v.Kind != ArrayNode {
		return true
	}
	for _, e := range v.Elems {
		if !e.uniform(depth+1, levels) {
			return false
		}
	}
	return true
}

// HasUnset reports whether any node in the tree is an unset placeholder.
func (v *Value) HasUnset() bool {
	if v == nil || v.Kind == Unset {
		return true
	}
	if v.Kind == ScalarNode {
		return false
	}
	for _, e := range v.Elems {
		if e.HasUnset() {
			return true
		}
	}
	return false
}

// EachScalar calls fn for every scalar leaf in the tree.
func (v *Value) EachScalar(fn func(Scalar) error) error {
	if v == nil || v.Kind == Unset {
		return nil
	}
	if v.Kind == ScalarNode {
		return fn(v.Scalar)
	}
	for _, e := range v.Elems {
		if err := e.EachScalar(fn); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of the value tree.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	c := &Value{Kind: v.Kind, Scalar: v.Scalar}
	if v.Kind == ArrayNode {
		c.Elems = make([]*Value, len(v.Elems))
		for i, e := range v.Elems {
			c.Elems[i] = e.Clone()
		}
	}
	return c
}
