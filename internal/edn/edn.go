// Package edn reads and writes the EDN subset used for property
// definitions and property instances: maps keyed by strings, vectors, and
// string/integer/float/boolean/nil scalars. Map key order is preserved
// round-trip.
package edn

import "errors"

// Decoded values are one of: string, int64, float64, bool, nil, []any,
// or *Map.

// Syntax errors surfaced by the decoder.
var (
	ErrSyntax       = errors.New("edn: syntax error")
	ErrDuplicateKey = errors.New("edn: duplicate map key")
)

// Map is an insertion-ordered map with string keys.
type Map struct {
	keys []string
	vals map[string]any
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{vals: make(map[string]any)}
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Set stores a value, keeping first-set order for new keys.
func (m *Map) Set(key string, v any) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Delete removes a key. It reports whether the key was present.
func (m *Map) Delete(key string) bool {
	if _, ok := m.vals[key]; !ok {
		return false
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in first-set order.
func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.vals) }
