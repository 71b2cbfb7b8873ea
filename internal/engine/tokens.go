// Package engine applies the flat token-stream mutation grammar to
// property instances and validates stores against their definitions.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matforge/propkit/pkg/types"
)

// A group is one "key"-delimited segment of a token stream: the key
// name followed by one or more field assignments.
type group struct {
	keyName string
	assigns []assign
}

// An assign is one standard field name and the raw index/value tokens
// that follow it up to the next field name or "key" marker.
type assign struct {
	field  string
	tokens []string
}

var (
	indexPattern = regexp.MustCompile(`^[1-9][0-9]*$`)
	rangePattern = regexp.MustCompile(`^[1-9][0-9]*:[1-9][0-9]*$`)
)

// parseGroups partitions a flat token list into key groups. The split
// is lexical: a token equal to "key" starts a new group and a token
// matching a standard field name starts a new assignment within it.
func parseGroups(tokens []string) ([]group, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty token list", types.ErrBadToken)
	}
	var groups []group
	i := 0
	for i < len(tokens) {
		if tokens[i] != "key" {
			return nil, fmt.Errorf("%w: expected \"key\", got %q", types.ErrBadToken, tokens[i])
		}
		i++
		if i >= len(tokens) {
			return nil, fmt.Errorf("%w: missing key name after \"key\"", types.ErrBadToken)
		}
		g := group{keyName: tokens[i]}
		i++
		for i < len(tokens) && tokens[i] != "key" {
			if !types.IsStandardField(tokens[i]) {
				return nil, fmt.Errorf("%w: %q is not a standard field name",
					types.ErrBadToken, tokens[i])
			}
			a := assign{field: tokens[i]}
			i++
			for i < len(tokens) && tokens[i] != "key" && !types.IsStandardField(tokens[i]) {
				a.tokens = append(a.tokens, tokens[i])
				i++
			}
			g.assigns = append(g.assigns, a)
		}
		if len(g.assigns) == 0 {
			return nil, fmt.Errorf("%w: key %q has no field assignments",
				types.ErrBadToken, g.keyName)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// A dimSel addresses one array dimension: a plain 1-based index, or a
// start:stop range that also claims stop as the dimension's extent.
type dimSel struct {
	lo, hi int
	ranged bool
}

// isIndexToken reports whether tok addresses an array dimension: a
// plain 1-based index or a start:stop range.
func isIndexToken(tok string) bool {
	return indexPattern.MatchString(tok) || rangePattern.MatchString(tok)
}

// parseDimSels reads one index token per declared dimension. At most
// one range is allowed across the listing. Supplying fewer index tokens
// than the key has dimensions addresses the key as if it had a smaller
// extent, so it fails as an extent mismatch rather than a syntax error.
func parseDimSels(tokens []string, ndims int) ([]dimSel, int, error) {
	if len(tokens) < ndims {
		return nil, 0, fmt.Errorf("%w: %d index tokens required, got %d",
			types.ErrExtentMismatch, ndims, len(tokens))
	}
	sels := make([]dimSel, ndims)
	seenRange := false
	for n := 0; n < ndims; n++ {
		tok := tokens[n]
		switch {
		case indexPattern.MatchString(tok):
			idx, err := strconv.Atoi(tok)
			if err != nil {
				return nil, 0, fmt.Errorf("%w: bad index %q", types.ErrBadToken, tok)
			}
			sels[n] = dimSel{lo: idx, hi: idx}
		case rangePattern.MatchString(tok):
			if seenRange {
				return nil, 0, fmt.Errorf("%w: only one start:stop range is allowed in an index listing",
					types.ErrBadToken)
			}
			seenRange = true
			parts := strings.SplitN(tok, ":", 2)
			lo, _ := strconv.Atoi(parts[0])
			hi, _ := strconv.Atoi(parts[1])
			if hi < lo {
				return nil, 0, fmt.Errorf("%w: range %q has stop before start",
					types.ErrBadToken, tok)
			}
			sels[n] = dimSel{lo: lo, hi: hi, ranged: true}
		default:
			return nil, 0, fmt.Errorf("%w: the key has %d dimensions and %q is not an index token",
				types.ErrExtentMismatch, ndims, tok)
		}
	}
	count := 1
	for _, s := range sels {
		count *= s.hi - s.lo + 1
	}
	return sels, count, nil
}
