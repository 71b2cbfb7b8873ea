// Package integration provides CLI integration tests for propkit.
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
)

var (
	// propkitBin is the path to the built propkit binary.
	propkitBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetPropkitBin sets the path to the propkit binary (called from TestMain).
func SetPropkitBin(path string) {
	propkitBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated test environment with its own config and
// definitions directory.
type TestEnv struct {
	t              *testing.T
	TempDir        string
	ConfigDir      string
	DefinitionsDir string
}

// NewTestEnv creates a new isolated test environment seeded with the
// given definition files (name to EDN content).
func NewTestEnv(t *testing.T, definitions map[string]string) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build propkit: %v", buildErr)
	}
	if propkitBin == "" {
		t.Fatal("propkit binary not built (propkitBin is empty)")
	}

	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "config")
	defsDir := filepath.Join(tempDir, "definitions")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.MkdirAll(defsDir, 0755); err != nil {
		t.Fatalf("failed to create definitions dir: %v", err)
	}
	configContent := "definitions_dir: " + defsDir + "\ncache: false\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	for name, content := range definitions {
		if err := os.WriteFile(filepath.Join(defsDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write definition %s: %v", name, err)
		}
	}

	return &TestEnv{
		t:              t,
		TempDir:        tempDir,
		ConfigDir:      configDir,
		DefinitionsDir: defsDir,
	}
}

// CollectionPath returns a path inside the environment's temp dir.
func (e *TestEnv) CollectionPath(name string) string {
	return filepath.Join(e.TempDir, name)
}

// WriteConfig replaces the environment's config.yaml.
func (e *TestEnv) WriteConfig(content string) {
	e.t.Helper()
	if err := os.WriteFile(filepath.Join(e.ConfigDir, "config.yaml"), []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write config: %v", err)
	}
}

// CmdResult holds the result of a propkit command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunPropkit executes the propkit CLI with the given arguments.
func (e *TestEnv) RunPropkit(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.ConfigDir}, args...)
	cmd := exec.Command(propkitBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run propkit: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunPropkit executes the propkit CLI and fails the test if it
// returns non-zero.
func (e *TestEnv) MustRunPropkit(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunPropkit(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("propkit %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// ViolationJSON mirrors the validator's JSON output.
type ViolationJSON struct {
	InstanceID int    `json:"instance-id"`
	Key        string `json:"key"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

// DefinitionJSON mirrors one entry of defs list --json.
type DefinitionJSON struct {
	PropertyID string `json:"property-id"`
	ShortName  string `json:"short-name"`
	Date       string `json:"date"`
	Title      string `json:"title"`
}
