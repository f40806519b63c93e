package gomap

import (
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"
)

var (
	marshalerType   = reflect.TypeFor[Marshaler]()
	unmarshalerType = reflect.TypeFor[Unmarshaler]()
	timeType        = reflect.TypeFor[time.Time]()
	urlType         = reflect.TypeFor[url.URL]()
	uuidType        = reflect.TypeFor[uuid.UUID]()
	nodeType        = reflect.TypeFor[*ir.Node]()
)

// rcodec converts addressable reflect.Values of one type.
type rcodec struct {
	to   func(v reflect.Value) (*ir.Node, error)
	from func(node *ir.Node, v reflect.Value) error
}

type reflectCodec[T any] struct {
	rc *rcodec
}

// For derives a codec for T by reflection. It fails with ErrUnsupported
// if T or any type reachable from it cannot be converted, so unsupported
// types are reported when the codec is built rather than when it is used.
//
// Types implementing Marshaler and Unmarshaler use their methods; time.Time,
// url.URL, uuid.UUID, *ir.Node and []byte use Time, URL, UUID, Node and
// Bytes; other types are derived from their kind:
//
//   - bool, integers, floats and strings use the rules of Bool, Integer,
//     Float and String
//   - pointers encode nil as Null
//   - slices and arrays encode as Arrays; arrays must match in length
//   - maps encode as Objects ordered by key text; keys must be strings,
//     numbers or implement both Marshaler and Unmarshaler. A Marshaler key
//     whose ToIR yields neither a String nor a Number fails with ErrKey
//     when the map is converted
//   - structs encode as Objects of their exported fields, see TagKey
//   - empty interfaces use Any
func For[T any]() (Codec[T], error) {
	b := &builder{codecs: map[reflect.Type]*rcodec{}}
	rc, err := b.build(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return reflectCodec[T]{rc: rc}, nil
}

// MustFor is like For but panics on error. It is meant for package level
// codec variables.
func MustFor[T any]() Codec[T] {
	c, err := For[T]()
	if err != nil {
		panic(err)
	}
	return c
}

func (c reflectCodec[T]) ToIR(v T) (*ir.Node, error) {
	return c.rc.to(reflect.ValueOf(&v).Elem())
}

func (c reflectCodec[T]) FromIR(node *ir.Node, out *T) error {
	var v T
	if err := c.rc.from(node, reflect.ValueOf(&v).Elem()); err != nil {
		return err
	}
	*out = v
	return nil
}

type builder struct {
	codecs map[reflect.Type]*rcodec
}

func (b *builder) build(t reflect.Type) (*rcodec, error) {
	if rc, ok := b.codecs[t]; ok {
		// possibly still being filled for a recursive type
		return rc, nil
	}
	rc := &rcodec{}
	b.codecs[t] = rc
	if err := b.fill(rc, t); err != nil {
		delete(b.codecs, t)
		return nil, err
	}
	return rc, nil
}

func unsupported(t reflect.Type, why string) error {
	return fmt.Errorf("%w: %s %s", ErrUnsupported, t, why)
}

func (b *builder) fill(rc *rcodec, t reflect.Type) error {
	switch {
	case reflect.PointerTo(t).Implements(unmarshalerType) &&
		(t.Implements(marshalerType) || reflect.PointerTo(t).Implements(marshalerType)):
		fillMethods(rc, t)
		return nil
	case t == timeType:
		fillFrom(rc, Time)
		return nil
	case t == urlType:
		fillFrom(rc, URL)
		return nil
	case t == uuidType:
		fillFrom(rc, UUID)
		return nil
	case t == nodeType:
		fillFrom(rc, Node)
		return nil
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8:
		fillBytes(rc, t)
		return nil
	}

	switch t.Kind() {
	case reflect.Bool:
		rc.to = func(v reflect.Value) (*ir.Node, error) { return ir.FromBool(v.Bool()), nil }
		rc.from = func(node *ir.Node, v reflect.Value) error {
			x, err := decodeBool(node)
			if err != nil {
				return err
			}
			v.SetBool(x)
			return nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		k := intKind{name: t.String(), signed: true, bits: t.Bits()}
		rc.to = func(v reflect.Value) (*ir.Node, error) { return k.fromInt(v.Int()), nil }
		rc.from = func(node *ir.Node, v reflect.Value) error {
			x, err := k.decode(node)
			if err != nil {
				return err
			}
			v.SetInt(int64(x))
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		k := intKind{name: t.String(), bits: t.Bits()}
		rc.to = func(v reflect.Value) (*ir.Node, error) { return k.fromUint(v.Uint()), nil }
		rc.from = func(node *ir.Node, v reflect.Value) error {
			x, err := k.decode(node)
			if err != nil {
				return err
			}
			v.SetUint(x)
			return nil
		}
	case reflect.Float32, reflect.Float64:
		bits, name := t.Bits(), t.String()
		rc.to = func(v reflect.Value) (*ir.Node, error) { return ir.FromFloat(v.Float()), nil }
		rc.from = func(node *ir.Node, v reflect.Value) error {
			x, err := decodeFloat(node, bits, name)
			if err != nil {
				return err
			}
			v.SetFloat(x)
			return nil
		}
	case reflect.String:
		rc.to = func(v reflect.Value) (*ir.Node, error) { return ir.FromString(v.String()), nil }
		rc.from = func(node *ir.Node, v reflect.Value) error {
			x, err := decodeString(node)
			if err != nil {
				return err
			}
			v.SetString(x)
			return nil
		}
	case reflect.Interface:
		if t.NumMethod() != 0 {
			return unsupported(t, "is a non-empty interface")
		}
		fillAny(rc)
	case reflect.Pointer:
		return b.fillPointer(rc, t)
	case reflect.Slice, reflect.Array:
		return b.fillList(rc, t)
	case reflect.Map:
		return b.fillMap(rc, t)
	case reflect.Struct:
		return b.fillStruct(rc, t)
	default:
		return unsupported(t, "has no representation")
	}
	return nil
}

func fillFrom[T any](rc *rcodec, c Codec[T]) {
	rc.to = func(v reflect.Value) (*ir.Node, error) {
		return c.ToIR(v.Interface().(T))
	}
	rc.from = func(node *ir.Node, v reflect.Value) error {
		var x T
		if err := c.FromIR(node, &x); err != nil {
			return err
		}
		v.Set(reflect.ValueOf(x))
		return nil
	}
}

func fillMethods(rc *rcodec, t reflect.Type) {
	rc.to = func(v reflect.Value) (*ir.Node, error) {
		if m, ok := v.Interface().(Marshaler); ok {
			return m.ToIR()
		}
		p := reflect.New(t)
		p.Elem().Set(v)
		return p.Interface().(Marshaler).ToIR()
	}
	rc.from = func(node *ir.Node, v reflect.Value) error {
		p := reflect.New(t)
		if err := p.Interface().(Unmarshaler).FromIR(node); err != nil {
			return err
		}
		v.Set(p.Elem())
		return nil
	}
}

func fillBytes(rc *rcodec, t reflect.Type) {
	rc.to = func(v reflect.Value) (*ir.Node, error) {
		return Bytes.ToIR(v.Bytes())
	}
	rc.from = func(node *ir.Node, v reflect.Value) error {
		var x []byte
		if err := Bytes.FromIR(node, &x); err != nil {
			return err
		}
		v.Set(reflect.ValueOf(x).Convert(t))
		return nil
	}
}

func fillAny(rc *rcodec) {
	rc.to = func(v reflect.Value) (*ir.Node, error) {
		return Any.ToIR(v.Interface())
	}
	rc.from = func(node *ir.Node, v reflect.Value) error {
		var x any
		if err := Any.FromIR(node, &x); err != nil {
			return err
		}
		if x == nil {
			v.SetZero()
			return nil
		}
		v.Set(reflect.ValueOf(x))
		return nil
	}
}

func (b *builder) fillPointer(rc *rcodec, t reflect.Type) error {
	elem, err := b.build(t.Elem())
	if err != nil {
		return err
	}
	rc.to = func(v reflect.Value) (*ir.Node, error) {
		if v.IsNil() {
			return ir.Null(), nil
		}
		return elem.to(v.Elem())
	}
	rc.from = func(node *ir.Node, v reflect.Value) error {
		if node.IsNull() {
			v.SetZero()
			return nil
		}
		p := reflect.New(t.Elem())
		if err := elem.from(node, p.Elem()); err != nil {
			return err
		}
		v.Set(p)
		return nil
	}
	return nil
}

func (b *builder) fillList(rc *rcodec, t reflect.Type) error {
	elem, err := b.build(t.Elem())
	if err != nil {
		return err
	}
	rc.to = func(v reflect.Value) (*ir.Node, error) {
		values := make([]*ir.Node, v.Len())
		for i := range values {
			node, err := elem.to(v.Index(i))
			if err != nil {
				return nil, marshalAt(err, kpath.Index(i))
			}
			values[i] = node
		}
		return ir.FromSlice(values), nil
	}
	rc.from = func(node *ir.Node, v reflect.Value) error {
		if typeOf(node) != ir.ArrayType {
			return shapeError(node, ir.ArrayType)
		}
		n := len(node.Values)
		var res reflect.Value
		if t.Kind() == reflect.Array {
			if n != t.Len() {
				return unmarshalErrorf(ErrArity, "%s needs exactly %d elements but has %d", t, t.Len(), n)
			}
			res = reflect.New(t).Elem()
		} else {
			res = reflect.MakeSlice(t, n, n)
		}
		for i, ev := range node.Values {
			if err := elem.from(ev, res.Index(i)); err != nil {
				return unmarshalAt(err, kpath.Index(i))
			}
		}
		v.Set(res)
		return nil
	}
	return nil
}

// keyable reports whether t can key an Object. Marshaler keys must also
// implement Unmarshaler; whether their ToIR yields a key is checked per
// value.
func keyable(t reflect.Type) bool {
	if reflect.PointerTo(t).Implements(unmarshalerType) &&
		(t.Implements(marshalerType) || reflect.PointerTo(t).Implements(marshalerType)) {
		return true
	}
	switch t {
	case timeType, urlType, uuidType:
		return true
	}
	switch t.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func (b *builder) fillMap(rc *rcodec, t reflect.Type) error {
	if !keyable(t.Key()) {
		return unsupported(t, "has keys which are neither strings nor numbers")
	}
	key, err := b.build(t.Key())
	if err != nil {
		return err
	}
	val, err := b.build(t.Elem())
	if err != nil {
		return err
	}
	keyText := func(k reflect.Value) (string, error) {
		node, err := key.to(k)
		if err != nil {
			return "", err
		}
		switch typeOf(node) {
		case ir.StringType:
			return node.String, nil
		case ir.NumberType:
			return ir.FormatNumber(node.Number), nil
		}
		return "", marshalErrorf(ErrKey, "%s encodes to %s and cannot be used as a map key", t.Key(), typeOf(node))
	}
	rc.to = func(v reflect.Value) (*ir.Node, error) {
		kvs := make([]ir.KeyVal, 0, v.Len())
		seen := make(map[string]struct{}, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			k, err := keyText(iter.Key())
			if err != nil {
				return nil, err
			}
			if _, dup := seen[k]; dup {
				return nil, &MarshalError{
					Path:    kpath.Field(k),
					Message: "distinct keys encode to the same key " + kpath.Field(k).String(),
					Err:     ErrDuplicate,
				}
			}
			seen[k] = struct{}{}
			// map values are not addressable
			mv := reflect.New(t.Elem()).Elem()
			mv.Set(iter.Value())
			node, err := val.to(mv)
			if err != nil {
				return nil, marshalAt(err, kpath.Field(k))
			}
			kvs = append(kvs, ir.KeyVal{Key: k, Val: node})
		}
		slices.SortFunc(kvs, func(a, b ir.KeyVal) int {
			return strings.Compare(a.Key, b.Key)
		})
		return ir.FromKeyVals(kvs), nil
	}
	rc.from = func(node *ir.Node, v reflect.Value) error {
		if typeOf(node) != ir.ObjectType {
			return shapeError(node, ir.ObjectType)
		}
		res := reflect.MakeMapWithSize(t, len(node.Fields))
		for i, f := range node.Fields {
			seg := kpath.Field(f.String)
			k := reflect.New(t.Key()).Elem()
			if err := key.from(ir.FromString(f.String), k); err != nil {
				return unmarshalAt(err, seg)
			}
			if res.MapIndex(k).IsValid() {
				return &UnmarshalError{
					Path:    seg,
					Message: "key decodes to the same value as an earlier key",
					Err:     ErrDuplicate,
				}
			}
			mv := reflect.New(t.Elem()).Elem()
			if err := val.from(node.Values[i], mv); err != nil {
				return unmarshalAt(err, seg)
			}
			res.SetMapIndex(k, mv)
		}
		v.Set(res)
		return nil
	}
	return nil
}

func (b *builder) fillStruct(rc *rcodec, t reflect.Type) error {
	fields, err := structFields(t)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	codecs := make([]*rcodec, len(fields))
	for i, f := range fields {
		c, err := b.build(f.Type)
		if err != nil {
			return fmt.Errorf("field %s of %s: %w", f.Name, t, err)
		}
		codecs[i] = c
	}
	name := t.String()
	rc.to = func(v reflect.Value) (*ir.Node, error) {
		kvs := make([]ir.KeyVal, 0, len(fields))
		for i, f := range fields {
			fv := v.FieldByIndex(f.Index)
			if f.Optional && fv.IsZero() {
				continue
			}
			node, err := codecs[i].to(fv)
			if err != nil {
				return nil, marshalAt(err, kpath.Field(f.Name))
			}
			kvs = append(kvs, ir.KeyVal{Key: f.Name, Val: node})
		}
		return ir.FromKeyVals(kvs), nil
	}
	rc.from = func(node *ir.Node, v reflect.Value) error {
		if typeOf(node) != ir.ObjectType {
			return shapeError(node, ir.ObjectType)
		}
		present := make([]*ir.Node, len(fields))
		n := 0
		for i, f := range fields {
			j := node.FieldIndex(f.Name)
			if j == -1 {
				if !f.Optional {
					return &UnmarshalError{
						Path:    kpath.Field(f.Name),
						Message: "missing member of " + name,
						Err:     ErrMissing,
					}
				}
				continue
			}
			present[i] = node.Values[j]
			n++
		}
		if n != node.Len() {
			for _, mf := range node.Fields {
				if !slices.ContainsFunc(fields, func(f fieldInfo) bool { return f.Name == mf.String }) {
					return &UnmarshalError{
						Path:    kpath.Field(mf.String),
						Message: "unknown member of " + name,
						Err:     ErrArity,
					}
				}
			}
			return unmarshalErrorf(ErrDuplicate, "%s has repeated members", name)
		}
		res := reflect.New(t).Elem()
		for i, f := range fields {
			if present[i] == nil {
				continue
			}
			if err := codecs[i].from(present[i], res.FieldByIndex(f.Index)); err != nil {
				return unmarshalAt(err, kpath.Field(f.Name))
			}
		}
		v.Set(res)
		return nil
	}
	return nil
}
