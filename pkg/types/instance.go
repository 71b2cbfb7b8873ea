package types

import "fmt"

// Instance-level required keys.
var InstanceRequiredKeys = []string{"property-id", "instance-id"}

// Instance-level optional keys.
var InstanceOptionalKeys = []string{"disclaimer"}

// Standard field names a key map may carry inside a property instance.
var StandardFields = []string{
	"source-value",
	"source-unit",
	"si-value",
	"si-unit",
	"source-std-uncert-value",
	"source-expand-uncert-value",
	"coverage-factor",
	"source-asym-std-uncert-neg",
	"source-asym-std-uncert-pos",
	"source-asym-expand-uncert-neg",
	"source-asym-expand-uncert-pos",
	"uncert-lev-of-confid",
	"digits",
}

// Fields that follow the key's declared extent (or are scalar for scalar
// keys). Units are plain strings and stand outside this set.
var FieldsWithExtent = map[string]bool{
	"source-value":                  true,
	"si-value":                      true,
	"source-std-uncert-value":       true,
	"source-expand-uncert-value":    true,
	"coverage-factor":               true,
	"source-asym-std-uncert-neg":    true,
	"source-asym-std-uncert-pos":    true,
	"source-asym-expand-uncert-neg": true,
	"source-asym-expand-uncert-pos": true,
	"uncert-lev-of-confid":          true,
	"digits":                        true,
}

// Uncertainty and digits fields may be either arrays matching the
// source-value shape or scalars broadcast to every element.
var FieldsScalarOrExtent = map[string]bool{
	"source-std-uncert-value":       true,
	"source-expand-uncert-value":    true,
	"coverage-factor":               true,
	"source-asym-std-uncert-neg":    true,
	"source-asym-std-uncert-pos":    true,
	"source-asym-expand-uncert-neg": true,
	"source-asym-expand-uncert-pos": true,
	"uncert-lev-of-confid":          true,
	"digits":                        true,
}

// standardFieldSet indexes StandardFields for membership checks.
var standardFieldSet = func() map[string]bool {
	m := make(map[string]bool, len(StandardFields))
	for _, f := range StandardFields {
		m[f] = true
	}
	return m
}()

// IsStandardField reports whether name is a standard key-map field.
func IsStandardField(name string) bool { return standardFieldSet[name] }

// FieldValueType returns the scalar type a field carries for a key of the
// given declared type: digits is integer, the uncertainty fields are
// floats, units are strings, and the value fields follow the key type.
func FieldValueType(field, keyType string) string {
	switch {
	case field == "digits":
		return TypeInt
	case field == "source-unit" || field == "si-unit":
		return TypeString
	case FieldsScalarOrExtent[field]:
		return TypeFloat
	default:
		return keyType
	}
}

// CheckInstanceID checks that an instance id is a positive integer.
func CheckInstanceID(id int) error {
	if id < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidInstanceID, id)
	}
	return nil
}

// KeyValue is the ordered map of standard fields attached to one key of a
// property instance. Field order is preserved for round-trip serialization.
type KeyValue struct {
	fields map[string]*Value
	order  []string
}

// NewKeyValue returns an empty key map.
func NewKeyValue() *KeyValue {
	return &KeyValue{fields: make(map[string]*Value)}
}

// Get returns the value stored under a field name.
func (kv *KeyValue) Get(field string) (*Value, bool) {
	v, ok := kv.fields[field]
	return v, ok
}

// Set stores a value under a field name, keeping first-set order.
func (kv *KeyValue) Set(field string, v *Value) {
	if _, ok := kv.fields[field]; !ok {
		kv.order = append(kv.order, field)
	}
	kv.fields[field] = v
}

// Delete removes a field. It reports whether the field was present.
func (kv *KeyValue) Delete(field string) bool {
	if _, ok := kv.fields[field]; !ok {
		return false
	}
	delete(kv.fields, field)
	for i, f := range kv.order {
		if f == field {
			kv.order = append(kv.order[:i], kv.order[i+1:]...)
			break
		}
	}
	return true
}

// Fields returns the field names in first-set order.
func (kv *KeyValue) Fields() []string {
	return append([]string(nil), kv.order...)
}

// Len returns the number of fields present.
func (kv *KeyValue) Len() int { return len(kv.fields) }

// Clone returns a deep copy of the key map.
func (kv *KeyValue) Clone() *KeyValue {
	c := NewKeyValue()
	for _, f := range kv.order {
		c.Set(f, kv.fields[f].Clone())
	}
	return c
}

// Instance is one property instance: identity fields plus an ordered
// mapping from key name to its key map.
type Instance struct {
	PropertyID string
	InstanceID int
	Disclaimer string

	keys  map[string]*KeyValue
	order []string
}

// NewInstance returns an empty instance with identity fields set.
func NewInstance(propertyID string, instanceID int) *Instance {
	return &Instance{
		PropertyID: propertyID,
		InstanceID: instanceID,
		keys:       make(map[string]*KeyValue),
	}
}

// Key returns the key map stored under a key name.
func (in *Instance) Key(name string) (*KeyValue, bool) {
	kv, ok := in.keys[name]
	return kv, ok
}

// EnsureKey returns the key map for name, creating an empty one if absent.
func (in *Instance) EnsureKey(name string) *KeyValue {
	if kv, ok := in.keys[name]; ok {
		return kv
	}
	kv := NewKeyValue()
	in.keys[name] = kv
	in.order = append(in.order, name)
	return kv
}

// SetKey stores a key map under a key name, keeping first-set order.
func (in *Instance) SetKey(name string, kv *KeyValue) {
	if _, ok := in.keys[name]; !ok {
		in.order = append(in.order, name)
	}
	in.keys[name] = kv
}

// DeleteKey removes a key and all of its metadata. It reports whether the
// key was present.
func (in *Instance) DeleteKey(name string) bool {
	if _, ok := in.keys[name]; !ok {
		return false
	}
	delete(in.keys, name)
	for i, k := range in.order {
		if k == name {
			in.order = append(in.order[:i], in.order[i+1:]...)
			break
		}
	}
	return true
}

// KeyNames returns the key names in first-set order.
func (in *Instance) KeyNames() []string {
	return append([]string(nil), in.order...)
}

// Clone returns a deep copy of the instance.
func (in *Instance) Clone() *Instance {
	c := NewInstance(in.PropertyID, in.InstanceID)
	c.Disclaimer = in.Disclaimer
	for _, name := range in.order {
		c.keys[name] = in.keys[name].Clone()
		c.order = append(c.order, name)
	}
	return c
}
