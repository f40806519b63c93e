package gomap

import (
	"fmt"
	"reflect"
	"strings"
)

// TagKey is the struct tag key read by For.
//
//	type Point struct {
//		X     int    `ir:"field=x"`
//		Label string `ir:"field=label,optional"`
//		Cache []byte `ir:"omit"`
//	}
const TagKey = "ir"

// fieldInfo holds field metadata extracted from struct tags
type fieldInfo struct {
	// Name is the member name in the object
	Name string
	// Index is the field index sequence for reflect.Value.FieldByIndex
	Index []int
	Type  reflect.Type
	// Optional members are omitted when zero and may be absent
	Optional bool
}

// ParseStructTag parses a struct tag value and returns a map of key-value
// pairs. Handles comma or space separated parts: `ir:"key1=value1,flag"`.
// Supports quoted values with spaces: `ir:"field='a b'"`
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	var (
		parts   []string
		current strings.Builder
		quote   byte
	)
	flush := func() {
		if part := strings.TrimSpace(current.String()); part != "" {
			parts = append(parts, part)
		}
		current.Reset()
	}
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
			current.WriteByte(c)
		case c == '\'' || c == '"':
			quote = c
			current.WriteByte(c)
		case c == ',' || c == ' ':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("invalid tag %q: unterminated quote", tag)
	}
	flush()

	for _, part := range parts {
		key, value, isKV := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid tag: empty key in %q", part)
		}
		if !isKV {
			result[key] = ""
			continue
		}
		result[key] = unquoteValue(strings.TrimSpace(value))
	}
	return result, nil
}

// unquoteValue removes surrounding single or double quotes from a value.
func unquoteValue(value string) string {
	if len(value) >= 2 {
		if q := value[0]; (q == '\'' || q == '"') && value[len(value)-1] == q {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// structFields lists the members of struct type t in field order, flattening
// untagged embedded structs. Other unexported fields are ignored.
func structFields(t reflect.Type) ([]fieldInfo, error) {
	var res []fieldInfo
	seen := map[string]string{}
	var walk func(t reflect.Type, index []int) error
	walk = func(t reflect.Type, index []int) error {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			tags, err := ParseStructTag(sf.Tag.Get(TagKey))
			if err != nil {
				return fmt.Errorf("%s.%s: %w", t, sf.Name, err)
			}
			if _, omit := tags["omit"]; omit {
				continue
			}
			idx := append(append([]int(nil), index...), i)
			name, renamed := tags["field"]
			if sf.Anonymous && !renamed && sf.Type.Kind() == reflect.Struct {
				// exported fields promoted through an unexported
				// embedded struct remain settable
				if err := walk(sf.Type, idx); err != nil {
					return err
				}
				continue
			}
			if !sf.IsExported() {
				continue
			}
			if !renamed {
				name = sf.Name
			}
			if prev, dup := seen[name]; dup {
				return fmt.Errorf("%s: fields %s and %s both map to member %q", t, prev, sf.Name, name)
			}
			seen[name] = sf.Name
			_, optional := tags["optional"]
			res = append(res, fieldInfo{
				Name:     name,
				Index:    idx,
				Type:     sf.Type,
				Optional: optional,
			})
		}
		return nil
	}
	if err := walk(t, nil); err != nil {
		return nil, err
	}
	return res, nil
}
