package types

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Definition-level required keys. Every property definition must carry
// these before its per-key specifications.
var DefinitionRequiredKeys = []string{
	"property-id",
	"property-title",
	"property-description",
}

// propertyIDPattern matches the tagged property identifier
// tag:<email>,<date>:property/<name> as described by RFC 4151. The email
// must be lowercase and must not contain a plus character.
var propertyIDPattern = regexp.MustCompile(
	`^tag:[^+A-Z]*@[^+A-Z]*,\d{4}-\d{2}-\d{2}:property/[a-z0-9\-]*$`)

// keyNamePattern matches key names: lower-case alphanumerics and dashes.
var keyNamePattern = regexp.MustCompile(`^[a-z0-9\-]+$`)

// CheckPropertyID checks the tagged property identifier format.
func CheckPropertyID(id string) error {
	if !propertyIDPattern.MatchString(id) {
		return fmt.Errorf("%w: property-id %q does not meet the tag format "+
			"tag:<email>,<date>:property/<name>", ErrInvalidDefinition, id)
	}
	return nil
}

// CheckKeyName checks a key name: lower-case alphanumerics and dashes only.
func CheckKeyName(name string) error {
	if !keyNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q is not a valid key name (lower-case "+
			"alphanumerics and dashes only)", ErrInvalidDefinition, name)
	}
	return nil
}

// CheckPropertyTitle checks that a title does not end with a period; the
// title is used in citations of the property.
func CheckPropertyTitle(title string) error {
	if strings.HasSuffix(title, ".") {
		return fmt.Errorf("%w: property-title %q must not end with a period",
			ErrInvalidDefinition, title)
	}
	return nil
}

// SplitPropertyID splits a tagged property identifier into its email, date,
// and short-name parts.
func SplitPropertyID(id string) (email, date, name string, err error) {
	if err = CheckPropertyID(id); err != nil {
		return "", "", "", err
	}
	rest := strings.TrimPrefix(id, "tag:")
	comma := strings.LastIndex(rest, ",")
	email = rest[:comma]
	rest = rest[comma+1:]
	colon := strings.Index(rest, ":")
	date = rest[:colon]
	name = strings.TrimPrefix(rest[colon+1:], "property/")
	return email, date, name, nil
}

// PropertyIDPath returns the conventional relative path of a definition
// file inside a definitions tree: <name>/<date>-<email>/<name>.edn.
func PropertyIDPath(id string) (string, error) {
	email, date, name, err := SplitPropertyID(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(name, date+"-"+email, name+".edn"), nil
}

// KeySpec is the declared specification for one key of a property
// definition.
type KeySpec struct {
	// Type is one of the Type* constants.
	Type string
	// HasUnit indicates the value is physically dimensioned; source-unit
	// is required exactly when HasUnit is true.
	HasUnit bool
	// Extent declares the key's shape: scalar or array.
	Extent Extent
	// Required indicates the key must be reported in every instance.
	Required bool
	// Description explains what the key represents.
	Description string
	// Enum, when non-empty, restricts source values to this set.
	Enum []Scalar
}

// Definition is a parsed property definition: an identity plus an ordered
// mapping from key name to key specification.
type Definition struct {
	PropertyID  string
	Title       string
	Description string

	keys  map[string]*KeySpec
	order []string
}

// NewDefinition returns an empty definition with the given identity fields.
func NewDefinition(propertyID, title, description string) *Definition {
	return &Definition{
		PropertyID:  propertyID,
		Title:       title,
		Description: description,
		keys:        make(map[string]*KeySpec),
	}
}

// AddKey appends a key specification. Key names within one definition are
// unique; adding a duplicate fails.
func (d *Definition) AddKey(name string, spec *KeySpec) error {
	if err := CheckKeyName(name); err != nil {
		return err
	}
	if _, ok := d.keys[name]; ok {
		return fmt.Errorf("%w: duplicate key %q", ErrInvalidDefinition, name)
	}
	d.keys[name] = spec
	d.order = append(d.order, name)
	return nil
}

// Key returns the specification for a key name.
func (d *Definition) Key(name string) (*KeySpec, bool) {
	spec, ok := d.keys[name]
	return spec, ok
}

// KeyNames returns the key names in declaration order.
func (d *Definition) KeyNames() []string {
	return append([]string(nil), d.order...)
}

// ShortName returns the short name carried by the tagged property id.
func (d *Definition) ShortName() string {
	_, _, name, err := SplitPropertyID(d.PropertyID)
	if err != nil {
		return ""
	}
	return name
}

// Date returns the date carried by the tagged property id.
func (d *Definition) Date() string {
	_, date, _, err := SplitPropertyID(d.PropertyID)
	if err != nil {
		return ""
	}
	return date
}

// Check validates the definition's own format: identity fields, key names,
// and per-key standard pairs.
func (d *Definition) Check() error {
	if err := CheckPropertyID(d.PropertyID); err != nil {
		return err
	}
	if err := CheckPropertyTitle(d.Title); err != nil {
		return err
	}
	for _, name := range d.order {
		spec := d.keys[name]
		if err := CheckKeyName(name); err != nil {
			return err
		}
		if !IsValidKeyType(spec.Type) {
			return fmt.Errorf("%w: key %q declares unknown type %q",
				ErrInvalidDefinition, name, spec.Type)
		}
		for _, e := range spec.Enum {
			if !e.MatchesType(spec.Type) {
				return fmt.Errorf("%w: key %q enumeration value %s does not "+
					"match type %q", ErrInvalidDefinition, name, e.GoString(), spec.Type)
			}
		}
		for i, dim := range spec.Extent {
			if !dim.Free && dim.Size < 1 {
				return fmt.Errorf("%w: key %q declares non-positive extent "+
					"at dimension %d", ErrInvalidDefinition, name, i+1)
			}
		}
	}
	return nil
}
