package gomap

import (
	"fmt"
	"reflect"

	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"
)

// StructField is one member of a type encoded by Struct.
type StructField[S any] interface {
	fieldName() string
	isOptional() bool
	encode(s *S) (node *ir.Node, omit bool, err error)
	decode(node *ir.Node, s *S) error
}

type structField[S, T any] struct {
	name     string
	optional bool
	codec    Codec[T]
	get      func(*S) *T
}

// Field declares a required member name of S, located by get and converted
// by c.
func Field[S, T any](name string, c Codec[T], get func(*S) *T) StructField[S] {
	return &structField[S, T]{name: name, codec: c, get: get}
}

// OptionalField declares a member which is omitted when it holds the zero
// value and left zero when absent.
func OptionalField[S, T any](name string, c Codec[T], get func(*S) *T) StructField[S] {
	return &structField[S, T]{name: name, optional: true, codec: c, get: get}
}

func (f *structField[S, T]) fieldName() string { return f.name }
func (f *structField[S, T]) isOptional() bool  { return f.optional }

func (f *structField[S, T]) encode(s *S) (*ir.Node, bool, error) {
	v := f.get(s)
	if f.optional && reflect.ValueOf(v).Elem().IsZero() {
		return nil, true, nil
	}
	node, err := encodeMember(f.codec, *v, kpath.Field(f.name))
	return node, false, err
}

func (f *structField[S, T]) decode(node *ir.Node, s *S) error {
	return decodeMember(f.codec, node, f.get(s), kpath.Field(f.name))
}

type structCodec[S any] struct {
	name     string
	fields   []StructField[S]
	required int
}

// Struct returns a codec encoding S as an object with the given members in
// order. Decoding rejects objects with missing required members or with
// members not declared. Struct panics if two fields have the same name.
func Struct[S any](name string, fields ...StructField[S]) Codec[S] {
	c := structCodec[S]{name: name, fields: fields}
	seen := map[string]bool{}
	for _, f := range fields {
		if seen[f.fieldName()] {
			panic(fmt.Sprintf("gomap: %s declares member %q twice", name, f.fieldName()))
		}
		seen[f.fieldName()] = true
		if !f.isOptional() {
			c.required++
		}
	}
	return c
}

func (c structCodec[S]) ToIR(s S) (*ir.Node, error) {
	kvs := make([]ir.KeyVal, 0, len(c.fields))
	for _, f := range c.fields {
		node, omit, err := f.encode(&s)
		if err != nil {
			return nil, err
		}
		if omit {
			continue
		}
		kvs = append(kvs, ir.KeyVal{Key: f.fieldName(), Val: node})
	}
	return ir.FromKeyVals(kvs), nil
}

func (c structCodec[S]) FromIR(node *ir.Node, out *S) error {
	if typeOf(node) != ir.ObjectType {
		return shapeError(node, ir.ObjectType)
	}
	present := make([]*ir.Node, len(c.fields))
	n := 0
	for i, f := range c.fields {
		j := node.FieldIndex(f.fieldName())
		if j == -1 {
			if !f.isOptional() {
				return &UnmarshalError{
					Path:    kpath.Field(f.fieldName()),
					Message: "missing member of " + c.name,
					Err:     ErrMissing,
				}
			}
			continue
		}
		present[i] = node.Values[j]
		n++
	}
	if n != node.Len() {
		if c.required == len(c.fields) {
			return unmarshalErrorf(ErrArity, "%s needs exactly %d members but has %d",
				c.name, len(c.fields), node.Len())
		}
		name, ok := c.unknown(node)
		if !ok {
			return unmarshalErrorf(ErrDuplicate, "%s has repeated members", c.name)
		}
		return &UnmarshalError{
			Path:    kpath.Field(name),
			Message: "unknown member of " + c.name,
			Err:     ErrArity,
		}
	}
	var s S
	for i, f := range c.fields {
		if present[i] == nil {
			continue
		}
		if err := f.decode(present[i], &s); err != nil {
			return err
		}
	}
	*out = s
	return nil
}

func (c structCodec[S]) unknown(node *ir.Node) (string, bool) {
outer:
	for _, f := range node.Fields {
		for _, sf := range c.fields {
			if sf.fieldName() == f.String {
				continue outer
			}
		}
		return f.String, true
	}
	return "", false
}
