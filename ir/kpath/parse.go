package kpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrSyntax = errors.New("kpath syntax error")

// Parse parses a kinded path string into a KPath structure.
//
// Examples:
//   - "a.b.c" → Object path with 3 segments
//   - "a[0][1]" → field then two array indices
//   - "[1].x" → array index then field
//   - "a.'b.c'" → field a then field "b.c"
//   - "" → Root path (returns nil)
//
// Returns an error wrapping ErrSyntax if the path syntax is invalid.
func Parse(kpath string) (*KPath, error) {
	var (
		head, tail *KPath
		i          int
	)
	add := func(seg *KPath) {
		if head == nil {
			head = seg
		} else {
			tail.Next = seg
		}
		tail = seg
	}
	for i < len(kpath) {
		switch c := kpath[i]; {
		case c == '[':
			j := strings.IndexByte(kpath[i:], ']')
			if j == -1 {
				return nil, fmt.Errorf("%w: expected '[' <index> ']' at %d in %q", ErrSyntax, i, kpath)
			}
			index, err := parseIndex(kpath[i+1 : i+j])
			if err != nil {
				return nil, fmt.Errorf("%w: %w in %q", ErrSyntax, err, kpath)
			}
			add(Index(index))
			i += j + 1
		case c == '.' && head != nil:
			field, n, err := parseField(kpath[i+1:])
			if err != nil {
				return nil, fmt.Errorf("%w: %w at %d in %q", ErrSyntax, err, i+1, kpath)
			}
			add(Field(field))
			i += n + 1
		case head == nil:
			field, n, err := parseField(kpath)
			if err != nil {
				return nil, fmt.Errorf("%w: %w at 0 in %q", ErrSyntax, err, kpath)
			}
			add(Field(field))
			i += n
		default:
			return nil, fmt.Errorf("%w: expected '.' or '[', got %q at %d in %q", ErrSyntax, c, i, kpath)
		}
	}
	return head, nil
}

// MustParse is like Parse but panics on error.
func MustParse(kpath string) *KPath {
	p, err := Parse(kpath)
	if err != nil {
		panic(err)
	}
	return p
}

func parseIndex(is string) (int, error) {
	if is == "" || strings.ContainsAny(is, "+-") {
		return 0, fmt.Errorf("invalid index %q", is)
	}
	index, err := strconv.Atoi(is)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", is)
	}
	return index, nil
}

// parseField reads a bare or quoted field from the start of frag, returning
// the field and the number of bytes consumed.
func parseField(frag string) (string, int, error) {
	if frag == "" {
		return "", 0, errors.New("expected field")
	}
	if q := frag[0]; q == '\'' || q == '"' {
		return parseQuoted(frag)
	}
	n := strings.IndexFunc(frag, func(r rune) bool {
		return isSpecial(r)
	})
	switch n {
	case -1:
		return frag, len(frag), nil
	case 0:
		return "", 0, fmt.Errorf("expected field, got %q", frag[0])
	}
	if r := rune(frag[n]); r != '.' && r != '[' {
		return "", 0, fmt.Errorf("unexpected %q in field", r)
	}
	return frag[:n], n, nil
}

func parseQuoted(frag string) (string, int, error) {
	q := frag[0]
	var b strings.Builder
	for i := 1; i < len(frag); i++ {
		switch c := frag[i]; c {
		case '\\':
			if i+1 == len(frag) {
				return "", 0, errors.New("unterminated escape")
			}
			i++
			b.WriteByte(frag[i])
		case q:
			return b.String(), i + 1, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, errors.New("unterminated quoted field")
}

func isSpecial(r rune) bool {
	switch r {
	case '.', '[', ']', '\'', '"', '\\':
		return true
	}
	return unicode.IsSpace(r) || !unicode.IsPrint(r)
}

func fieldString(field string) string {
	if field != "" && strings.IndexFunc(field, isSpecial) == -1 {
		return field
	}
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c == '\'' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('\'')
	return b.String()
}
