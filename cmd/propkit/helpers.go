// Shared helpers for propkit CLI commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/matforge/propkit/internal/paths"
	"github.com/matforge/propkit/pkg/propkit"
	"github.com/matforge/propkit/pkg/types"
)

// openKit resolves the definitions directory and loads the registry.
// Returns an opened Kit or an error suitable for the CLI.
func openKit() (*propkit.Kit, error) {
	definitionsDir, err := resolveDefinitionsDir()
	if err != nil {
		return nil, fmt.Errorf("resolve definitions dir: %w", err)
	}

	cfg := types.Config{
		DefinitionsDir: definitionsDir,
		Cache:          configCache,
	}
	if cfg.Cache {
		cacheDir, err := paths.ResolveCacheDir(configCacheDir)
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		cfg.CacheDir = cacheDir
	}

	kit, err := propkit.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	return kit, nil
}

// readCollection loads the serialized collection from path. A missing
// file is an empty collection when allowMissing is set.
func readCollection(path string, allowMissing bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read collection: %w", err)
	}
	return string(data), nil
}

// writeCollection stores the serialized collection at path, or prints
// it to stdout when path is empty.
func writeCollection(path, collection string) error {
	if path == "" {
		fmt.Println(collection)
		return nil
	}
	return os.WriteFile(path, []byte(collection+"\n"), 0o644)
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// isUserError reports whether the error is caused by the user's input
// rather than the system.
func isUserError(err error) bool {
	for _, target := range []error{
		types.ErrDefinitionNotFound,
		types.ErrInvalidDefinition,
		types.ErrDuplicateInstanceID,
		types.ErrInstanceNotFound,
		types.ErrInvalidInstanceID,
		types.ErrUnknownKey,
		types.ErrTypeMismatch,
		types.ErrExtentMismatch,
		types.ErrInvalidEnumValue,
		types.ErrMissingRequiredKey,
		types.ErrBadToken,
		types.ErrEmptyCollection,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// fail prints the error and exits with the user or system error code.
func fail(prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, err)
	if isUserError(err) {
		os.Exit(exitUserError)
	}
	os.Exit(exitSysError)
}
