package edn

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Decode parses one EDN value from data. Trailing whitespace and comments
// are permitted; trailing content is not.
func Decode(data []byte) (any, error) {
	d := &decoder{src: string(data)}
	v, err := d.value()
	if err != nil {
		return nil, err
	}
	d.skipSpace()
	if d.pos < len(d.src) {
		return nil, fmt.Errorf("%w: trailing content at offset %d", ErrSyntax, d.pos)
	}
	return v, nil
}

// DecodeString parses one EDN value from a string.
func DecodeString(s string) (any, error) { return Decode([]byte(s)) }

type decoder struct {
	src string
	pos int
}

// skipSpace advances past whitespace, commas, and line comments. Commas are
// whitespace in EDN.
func (d *decoder) skipSpace() {
	for d.pos < len(d.src) {
		switch d.src[d.pos] {
		case ' ', '\t', '\n', '\r', ',':
			d.pos++
		case ';':
			for d.pos < len(d.src) && d.src[d.pos] != '\n' {
				d.pos++
			}
		default:
			return
		}
	}
}

func (d *decoder) value() (any, error) {
	d.skipSpace()
	if d.pos >= len(d.src) {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
	switch c := d.src[d.pos]; {
	case c == '{':
		return d.mapValue()
	case c == '[':
		return d.vector()
	case c == '"':
		return d.str()
	case c == 't' || c == 'f' || c == 'n':
		return d.word()
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return d.number()
	default:
		return nil, fmt.Errorf("%w: unexpected character %q at offset %d",
			ErrSyntax, c, d.pos)
	}
}

func (d *decoder) mapValue() (any, error) {
	d.pos++ // {
	m := NewMap()
	for {
		d.skipSpace()
		if d.pos >= len(d.src) {
			return nil, fmt.Errorf("%w: unterminated map", ErrSyntax)
		}
		if d.src[d.pos] == '}' {
			d.pos++
			return m, nil
		}
		if d.src[d.pos] != '"' {
			return nil, fmt.Errorf("%w: map key at offset %d is not a string",
				ErrSyntax, d.pos)
		}
		key, err := d.str()
		if err != nil {
			return nil, err
		}
		if _, ok := m.Get(key); ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
		val, err := d.value()
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
	}
}

func (d *decoder) vector() (any, error) {
	d.pos++ // [
	var elems []any
	for {
		d.skipSpace()
		if d.pos >= len(d.src) {
			return nil, fmt.Errorf("%w: unterminated vector", ErrSyntax)
		}
		if d.src[d.pos] == ']' {
			d.pos++
			if elems == nil {
				return []any{}, nil
			}
			return elems, nil
		}
		v, err := d.value()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
}

func (d *decoder) str() (string, error) {
	d.pos++ // opening quote
	var b strings.Builder
	for d.pos < len(d.src) {
		c := d.src[d.pos]
		switch c {
		case '"':
			d.pos++
			return b.String(), nil
		case '\\':
			d.pos++
			if d.pos >= len(d.src) {
				return "", fmt.Errorf("%w: unterminated escape", ErrSyntax)
			}
			switch e := d.src[d.pos]; e {
			case '"', '\\', '/':
				b.WriteByte(e)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'u':
				if d.pos+4 >= len(d.src) {
					return "", fmt.Errorf("%w: short unicode escape", ErrSyntax)
				}
				n, err := strconv.ParseUint(d.src[d.pos+1:d.pos+5], 16, 32)
				if err != nil {
					return "", fmt.Errorf("%w: bad unicode escape", ErrSyntax)
				}
				b.WriteRune(rune(n))
				d.pos += 4
			default:
				return "", fmt.Errorf("%w: unknown escape \\%c", ErrSyntax, e)
			}
			d.pos++
		default:
			r, size := utf8.DecodeRuneInString(d.src[d.pos:])
			b.WriteRune(r)
			d.pos += size
		}
	}
	return "", fmt.Errorf("%w: unterminated string", ErrSyntax)
}

func (d *decoder) word() (any, error) {
	rest := d.src[d.pos:]
	switch {
	case strings.HasPrefix(rest, "true") && d.atWordEnd(4):
		d.pos += 4
		return true, nil
	case strings.HasPrefix(rest, "false") && d.atWordEnd(5):
		d.pos += 5
		return false, nil
	case strings.HasPrefix(rest, "nil") && d.atWordEnd(3):
		d.pos += 3
		return nil, nil
	}
	return nil, fmt.Errorf("%w: unknown token at offset %d", ErrSyntax, d.pos)
}

// atWordEnd reports whether the word of length n ends at a delimiter.
func (d *decoder) atWordEnd(n int) bool {
	p := d.pos + n
	if p >= len(d.src) {
		return true
	}
	switch d.src[p] {
	case ' ', '\t', '\n', '\r', ',', ']', '}', ';':
		return true
	}
	return false
}

func (d *decoder) number() (any, error) {
	start := d.pos
	isFloat := false
	if d.src[d.pos] == '-' || d.src[d.pos] == '+' {
		d.pos++
	}
	for d.pos < len(d.src) {
		c := d.src[d.pos]
		if c >= '0' && c <= '9' {
			d.pos++
			continue
		}
		if c == '.' || c == 'e' || c == 'E' {
			isFloat = true
			d.pos++
			if d.pos < len(d.src) && (d.src[d.pos] == '-' || d.src[d.pos] == '+') {
				d.pos++
			}
			continue
		}
		break
	}
	tok := d.src[start:d.pos]
	if isFloat {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad float %q", ErrSyntax, tok)
		}
		return f, nil
	}
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad integer %q", ErrSyntax, tok)
	}
	return n, nil
}
