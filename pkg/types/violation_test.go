package types

import (
	"strings"
	"testing"
)

func TestViolationString(t *testing.T) {
	v := Violation{InstanceID: 1, Key: "a", Field: "source-value", Message: "hole"}
	if got := v.String(); got != "instance 1/a/source-value: hole" {
		t.Fatalf("String = %q", got)
	}
	v = Violation{InstanceID: 2, Message: "duplicate instance id"}
	if got := v.String(); got != "instance 2: duplicate instance id" {
		t.Fatalf("String = %q", got)
	}
}

func TestViolationsError(t *testing.T) {
	var vs Violations
	for i := 1; i <= 5; i++ {
		vs = append(vs, Violation{InstanceID: i, Message: "bad"})
	}
	msg := vs.Error()
	if !strings.Contains(msg, "instance 1: bad") {
		t.Errorf("missing first violation in %q", msg)
	}
	if strings.Contains(msg, "instance 4") {
		t.Errorf("should summarize after three violations, got %q", msg)
	}
	if !strings.Contains(msg, "(total 5)") {
		t.Errorf("missing total in %q", msg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty definitions dir",
			config:  Config{},
			wantErr: ErrDefinitionsDirEmpty,
		},
		{
			name:    "cache without cache dir",
			config:  Config{DefinitionsDir: "/tmp/defs", Cache: true},
			wantErr: ErrCacheDirEmpty,
		},
		{
			name:   "valid without cache",
			config: Config{DefinitionsDir: "/tmp/defs"},
		},
		{
			name:   "valid with cache",
			config: Config{DefinitionsDir: "/tmp/defs", Cache: true, CacheDir: "/tmp/cache"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if err != tt.wantErr {
				t.Fatalf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
