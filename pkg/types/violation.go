package types

import (
	"fmt"
	"strings"
)

// Violation is one validation finding: which instance, key, and field it
// concerns, the sentinel error classifying it, and a human-readable
// message.
type Violation struct {
	InstanceID int    `json:"instance-id"`
	Key        string `json:"key,omitempty"`
	Field      string `json:"field,omitempty"`
	Message    string `json:"message"`

	Err error `json:"-"`
}

// String renders the violation as instance/key/field: message.
func (v Violation) String() string {
	loc := fmt.Sprintf("instance %d", v.InstanceID)
	if v.Key != "" {
		loc += "/" + v.Key
	}
	if v.Field != "" {
		loc += "/" + v.Field
	}
	return loc + ": " + v.Message
}

// Violations is the collected result of a validation pass; it implements
// error so a non-empty result can propagate directly.
type Violations []Violation

// Error summarizes the first few violations.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(vs)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(vs[i].String())
	}
	if len(vs) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(vs))
	}
	return b.String()
}
