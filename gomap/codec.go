package gomap

import (
	"reflect"

	"github.com/signadot/irmap/ir"
)

// Codec converts values of type T to and from ir nodes.
//
// ToIR returns a node other than Undefined or an error. FromIR rejects nodes
// of the wrong shape before converting members and on success replaces *out.
type Codec[T any] interface {
	ToIR(v T) (*ir.Node, error)
	FromIR(node *ir.Node, out *T) error
}

// Marshaler is implemented by types which convert themselves to a node.
type Marshaler interface {
	ToIR() (*ir.Node, error)
}

// Unmarshaler is implemented by pointers to types which decode themselves
// from a node.
type Unmarshaler interface {
	FromIR(node *ir.Node) error
}

type selfCodec[T Marshaler, PT interface {
	*T
	Unmarshaler
}] struct{}

// Self returns the codec for a type implementing Marshaler whose pointer
// implements Unmarshaler.
func Self[T Marshaler, PT interface {
	*T
	Unmarshaler
}]() Codec[T] {
	return selfCodec[T, PT]{}
}

func (selfCodec[T, PT]) ToIR(v T) (*ir.Node, error) {
	return v.ToIR()
}

func (selfCodec[T, PT]) FromIR(node *ir.Node, out *T) error {
	var v T
	if err := PT(&v).FromIR(node); err != nil {
		return err
	}
	*out = v
	return nil
}

type funcCodec[T any] struct {
	to   func(T) (*ir.Node, error)
	from func(*ir.Node, *T) error
}

// Func returns a codec from a pair of conversion functions.
func Func[T any](to func(T) (*ir.Node, error), from func(*ir.Node, *T) error) Codec[T] {
	return funcCodec[T]{to: to, from: from}
}

func (c funcCodec[T]) ToIR(v T) (*ir.Node, error) {
	return c.to(v)
}

func (c funcCodec[T]) FromIR(node *ir.Node, out *T) error {
	return c.from(node, out)
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// typeOf is node.Type with nil treated as Undefined.
func typeOf(node *ir.Node) ir.Type {
	if node.IsUndefined() {
		return ir.UndefinedType
	}
	return node.Type
}
