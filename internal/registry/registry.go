// Package registry loads property definitions from a definitions
// directory and resolves user-supplied identifiers to them. An
// optional SQLite cache keeps the parsed set between runs.
package registry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matforge/propkit/internal/edn"
	"github.com/matforge/propkit/pkg/types"
)

// Registry is the set of known property definitions.
type Registry struct {
	mu      sync.RWMutex
	dir     string
	byID    map[string]*types.Definition
	byShort map[string]*types.Definition // short name -> newest date
}

// Open loads the definitions under config.DefinitionsDir. When the
// cache is enabled it is consulted first and rebuilt if the
// directory's definition set changed.
func Open(config types.Config) (*Registry, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	r := &Registry{
		dir:     config.DefinitionsDir,
		byID:    make(map[string]*types.Definition),
		byShort: make(map[string]*types.Definition),
	}
	if config.Cache {
		if err := r.loadCached(config.CacheDir); err != nil {
			return nil, err
		}
		return r, nil
	}
	defs, err := loadDir(r.dir)
	if err != nil {
		return nil, err
	}
	r.index(defs)
	return r, nil
}

// loadDir walks dir for *.edn files and parses each as a definition.
func loadDir(dir string) ([]*types.Definition, error) {
	var defs []*types.Definition
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".edn") {
			return nil
		}
		def, err := ParseFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		defs = append(defs, def)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}

// index installs defs into the lookup maps. For short names carried
// by more than one definition the newest date wins; dates compare
// lexicographically in YYYY-MM-DD form.
func (r *Registry) index(defs []*types.Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, def := range defs {
		r.byID[def.PropertyID] = def
		short := def.ShortName()
		prev, ok := r.byShort[short]
		if !ok || def.Date() > prev.Date() {
			r.byShort[short] = def
		}
	}
}

// Resolve maps an identifier to a definition. Tagged property ids are
// looked up exactly, short names resolve to the newest definition
// carrying them, and anything else is tried as a path to a definition
// file. A definition resolved by path is registered under its tagged
// id so instances referring to it keep resolving for the rest of the
// process.
func (r *Registry) Resolve(identifier string) (*types.Definition, error) {
	r.mu.RLock()
	if def, ok := r.byID[identifier]; ok {
		r.mu.RUnlock()
		return def, nil
	}
	if def, ok := r.byShort[identifier]; ok {
		r.mu.RUnlock()
		return def, nil
	}
	r.mu.RUnlock()

	if info, err := os.Stat(identifier); err == nil && info.Mode().IsRegular() {
		def, err := ParseFile(identifier)
		if err != nil {
			return nil, err
		}
		r.index([]*types.Definition{def})
		return def, nil
	}
	return nil, fmt.Errorf("%w: %q", types.ErrDefinitionNotFound, identifier)
}

// Definitions returns every registered definition sorted by property id.
func (r *Registry) Definitions() []*types.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]*types.Definition, 0, len(r.byID))
	for _, def := range r.byID {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].PropertyID < defs[j].PropertyID })
	return defs
}

// ParseFile reads and parses one definition file.
func ParseFile(path string) (*types.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := edn.Decode(data)
	if err != nil {
		return nil, err
	}
	return edn.ParseDefinition(doc)
}
