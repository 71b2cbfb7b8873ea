package types

import (
	"fmt"
	"strconv"
)

// Key value types determine what scalars a key accepts.
const (
	TypeString = "string"
	TypeFloat  = "float"
	TypeInt    = "int"
	TypeBool   = "bool"
	TypeFile   = "file"
)

// validKeyTypes is the set of recognized key value types.
var validKeyTypes = map[string]bool{
	TypeString: true,
	TypeFloat:  true,
	TypeInt:    true,
	TypeBool:   true,
	TypeFile:   true,
}

// IsValidKeyType reports whether the given string is a recognized key type.
func IsValidKeyType(t string) bool {
	return validKeyTypes[t]
}

// ScalarKind discriminates the concrete type carried by a Scalar.
type ScalarKind int

// Scalar kinds.
const (
	ScalarString ScalarKind = iota
	ScalarInt
	ScalarFloat
	ScalarBool
)

// Scalar is one leaf value: a string, integer, float, or boolean. File
// values are strings whose key is declared with type "file".
type Scalar struct {
	Kind  ScalarKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

// String returns a string scalar.
func String(s string) Scalar { return Scalar{Kind: ScalarString, Str: s} }

// Int64 returns an integer scalar.
func Int64(n int64) Scalar { return Scalar{Kind: ScalarInt, Int: n} }

// Float64 returns a float scalar.
func Float64(f float64) Scalar { return Scalar{Kind: ScalarFloat, Float: f} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar { return Scalar{Kind: ScalarBool, Bool: b} }

// Equal reports whether two scalars carry the same kind and value. An
// integer and a float comparing numerically equal are considered equal,
// matching the notation where 4 may stand in for 4.0.
func (s Scalar) Equal(o Scalar) bool {
	if s.Kind == o.Kind {
		switch s.Kind {
		case ScalarString:
			return s.Str == o.Str
		case ScalarInt:
			return s.Int == o.Int
		case ScalarFloat:
			return s.Float == o.Float
		case ScalarBool:
			return s.Bool == o.Bool
		}
		return false
	}
	if s.Kind == ScalarInt && o.Kind == ScalarFloat {
		return float64(s.Int) == o.Float
	}
	if s.Kind == ScalarFloat && o.Kind == ScalarInt {
		return s.Float == float64(o.Int)
	}
	return false
}

// MatchesType reports whether the scalar is acceptable for a key declared
// with the given type. Integers are accepted where floats are declared, and
// 0/1 integers are accepted where booleans are declared, mirroring what the
// notation reader can produce.
func (s Scalar) MatchesType(keyType string) bool {
	switch s.Kind {
	case ScalarString:
		return keyType == TypeString || keyType == TypeFile
	case ScalarBool:
		return keyType == TypeBool
	case ScalarFloat:
		return keyType == TypeFloat
	case ScalarInt:
		if s.Int == 0 || s.Int == 1 {
			return keyType == TypeInt || keyType == TypeFloat || keyType == TypeBool
		}
		return keyType == TypeInt || keyType == TypeFloat
	}
	return false
}

// GoString renders the scalar for error messages.
func (s Scalar) GoString() string {
	switch s.Kind {
	case ScalarString:
		return strconv.Quote(s.Str)
	case ScalarInt:
		return strconv.FormatInt(s.Int, 10)
	case ScalarFloat:
		return strconv.FormatFloat(s.Float, 'g', -1, 64)
	case ScalarBool:
		return strconv.FormatBool(s.Bool)
	}
	return "?"
}

// ParseScalar converts a raw token into a scalar of the declared key type.
// Booleans must be the literals "true" or "false".
func ParseScalar(token, keyType string) (Scalar, error) {
	switch keyType {
	case TypeString, TypeFile:
		return String(token), nil
	case TypeInt:
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return Scalar{}, fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, token)
		}
		return Int64(n), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Scalar{}, fmt.Errorf("%w: %q is not a float", ErrTypeMismatch, token)
		}
		return Float64(f), nil
	case TypeBool:
		b, err := strconv.ParseBool(token)
		if err != nil {
			return Scalar{}, fmt.Errorf("%w: %q is not a boolean", ErrTypeMismatch, token)
		}
		return Bool(b), nil
	}
	return Scalar{}, fmt.Errorf("%w: unknown key type %q", ErrTypeMismatch, keyType)
}
