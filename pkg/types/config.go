package types

import "errors"

// Config holds registry locations for opening a propkit toolkit.
type Config struct {
	// DefinitionsDir is the directory holding property definition .edn
	// files, one definition per file.
	DefinitionsDir string `json:"definitions_dir" yaml:"definitions_dir"`

	// Cache enables the sqlite-backed parsed-definition cache.
	Cache bool `json:"cache" yaml:"cache"`

	// CacheDir is where the definition cache database lives. Required when
	// Cache is true.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`
}

// Config validation errors.
var (
	ErrDefinitionsDirEmpty = errors.New("definitions directory must not be empty")
	ErrCacheDirEmpty       = errors.New("cache directory must not be empty when caching is enabled")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.DefinitionsDir == "" {
		return ErrDefinitionsDirEmpty
	}
	if c.Cache && c.CacheDir == "" {
		return ErrCacheDirEmpty
	}
	return nil
}
