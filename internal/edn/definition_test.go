package edn

import (
	"errors"
	"testing"

	"github.com/matforge/propkit/pkg/types"
)

const testDefinitionEDN = `{
  "property-id" "` + testPropertyID + `"
  "property-title" "Cohesive energy versus lattice constant relation of a cubic crystal"
  "property-description" "Cohesive energy as a function of the lattice constant"
  "short-name" {
    "type" "string"
    "has-unit" false
    "extent" [":"]
    "required" false
    "description" "Short name of the crystal structure"
    "enum" ["bcc" "fcc" "sc" "diamond"]
  }
  "a" {
    "type" "float"
    "has-unit" true
    "extent" [":"]
    "required" true
    "description" "Lattice constants"
  }
  "basis-atom-coordinates" {
    "type" "float"
    "has-unit" false
    "extent" [":" 3]
    "required" false
    "description" "Fractional basis atom coordinates"
  }
}`

func TestParseDefinition(t *testing.T) {
	doc, err := DecodeString(testDefinitionEDN)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	def, err := ParseDefinition(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.PropertyID != testPropertyID {
		t.Errorf("property id = %q", def.PropertyID)
	}
	if got := def.KeyNames(); len(got) != 3 || got[0] != "short-name" {
		t.Errorf("key order = %v", got)
	}

	spec, ok := def.Key("a")
	if !ok {
		t.Fatal("key a missing")
	}
	if spec.Type != types.TypeFloat || !spec.HasUnit || !spec.Required {
		t.Errorf("unexpected spec for a: %+v", spec)
	}
	if spec.Extent.NDims() != 1 || !spec.Extent[0].Free {
		t.Errorf("extent for a = %v", spec.Extent)
	}

	spec, _ = def.Key("basis-atom-coordinates")
	if spec.Extent.NDims() != 2 || !spec.Extent[0].Free || spec.Extent[1].Size != 3 {
		t.Errorf("extent for basis-atom-coordinates = %v", spec.Extent)
	}

	spec, _ = def.Key("short-name")
	if len(spec.Enum) != 4 || !spec.Enum[1].Equal(types.String("fcc")) {
		t.Errorf("enum for short-name = %v", spec.Enum)
	}
}

func TestParseDefinitionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not a map", `[1 2 3]`},
		{"missing title", `{"property-id" "` + testPropertyID + `" "property-description" "d"}`},
		{
			"non-standard pair",
			`{"property-id" "` + testPropertyID + `" "property-title" "T" "property-description" "d"
			  "a" {"type" "float" "has-unit" false "extent" [] "required" false "description" "d" "units" "m"}}`,
		},
		{
			"bad extent entry",
			`{"property-id" "` + testPropertyID + `" "property-title" "T" "property-description" "d"
			  "a" {"type" "float" "has-unit" false "extent" ["*"] "required" false "description" "d"}}`,
		},
		{
			"bad key name",
			`{"property-id" "` + testPropertyID + `" "property-title" "T" "property-description" "d"
			  "A" {"type" "float" "has-unit" false "extent" [] "required" false "description" "d"}}`,
		},
		{
			"title ends with period",
			`{"property-id" "` + testPropertyID + `" "property-title" "T." "property-description" "d"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeString(tt.input)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if _, err := ParseDefinition(doc); !errors.Is(err, types.ErrInvalidDefinition) {
				t.Fatalf("expected ErrInvalidDefinition, got %v", err)
			}
		})
	}
}

func TestEncodeDefinitionRoundTrip(t *testing.T) {
	doc, err := DecodeString(testDefinitionEDN)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	def, err := ParseDefinition(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	again, err := ParseDefinition(EncodeDefinition(def))
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if Encode(EncodeDefinition(def)) != Encode(EncodeDefinition(again)) {
		t.Fatal("definition round trip not stable")
	}
}
