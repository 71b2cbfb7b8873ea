package edn

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode renders a value compactly on one line.
func Encode(v any) string {
	var b strings.Builder
	write(&b, v, -1, 0)
	return b.String()
}

// EncodeIndent renders a value with the given indent width; maps and
// vectors open on their own line with one entry per line.
func EncodeIndent(v any, indent int) string {
	var b strings.Builder
	write(&b, v, indent, 0)
	return b.String()
}

func write(b *strings.Builder, v any, indent, depth int) {
	switch x := v.(type) {
	case nil:
		b.WriteString("nil")
	case bool:
		b.WriteString(strconv.FormatBool(x))
	case string:
		b.WriteString(quote(x))
	case int:
		b.WriteString(strconv.Itoa(x))
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case float64:
		b.WriteString(formatFloat(x))
	case []any:
		writeVector(b, x, indent, depth)
	case *Map:
		writeMap(b, x, indent, depth)
	default:
		// Unreachable for values produced by this package's decoder.
		fmt.Fprintf(b, "%v", x)
	}
}

func writeVector(b *strings.Builder, elems []any, indent, depth int) {
	if len(elems) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteByte('[')
	for i, e := range elems {
		sep(b, i, indent, depth+1)
		write(b, e, indent, depth+1)
	}
	closeBracket(b, ']', indent, depth)
}

func writeMap(b *strings.Builder, m *Map, indent, depth int) {
	if m.Len() == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteByte('{')
	for i, k := range m.Keys() {
		sep(b, i, indent, depth+1)
		b.WriteString(quote(k))
		b.WriteByte(' ')
		v, _ := m.Get(k)
		write(b, v, indent, depth+1)
	}
	closeBracket(b, '}', indent, depth)
}

// sep writes the separator before element i at the given depth: a newline
// plus indentation when pretty-printing, a space between siblings
// otherwise.
func sep(b *strings.Builder, i, indent, depth int) {
	if indent < 0 {
		if i > 0 {
			b.WriteByte(' ')
		}
		return
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", indent*depth))
}

func closeBracket(b *strings.Builder, c byte, indent, depth int) {
	if indent >= 0 {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", indent*depth))
	}
	b.WriteByte(c)
}

// formatFloat renders a float so it reads back as a float: a trailing .0
// is added when the shortest representation looks like an integer.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
