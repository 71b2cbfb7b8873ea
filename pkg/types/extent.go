package types

import "fmt"

// Dim describes one declared array dimension: either a fixed size or a
// free dimension (written ":" in the definition notation) that grows on
// demand.
type Dim struct {
	Free bool
	Size int
}

// Extent is the declared shape of a key: empty for scalars, one Dim per
// array dimension otherwise. Examples from definitions: [], [":"], [3 3],
// [":" 2 ":"].
type Extent []Dim

// IsScalar reports whether the extent declares a scalar key.
func (e Extent) IsScalar() bool { return len(e) == 0 }

// NDims returns the declared number of array dimensions.
func (e Extent) NDims() int { return len(e) }

// DeclaredShape returns the declared per-dimension sizes with free
// dimensions counted as 1, the minimum any instance must be able to hold.
func (e Extent) DeclaredShape() []int {
	shape := make([]int, len(e))
	for i, d := range e {
		if d.Free {
			shape[i] = 1
		} else {
			shape[i] = d.Size
		}
	}
	return shape
}

// String renders the extent in definition notation.
func (e Extent) String() string {
	s := "["
	for i, d := range e {
		if i > 0 {
			s += " "
		}
		if d.Free {
			s += `":"`
		} else {
			s += fmt.Sprintf("%d", d.Size)
		}
	}
	return s + "]"
}
