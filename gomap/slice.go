package gomap

import (
	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"
)

type sliceCodec[T any] struct {
	elem Codec[T]
}

// SliceOf returns the codec for slices whose elements use elem. A nil slice
// encodes as an empty Array.
func SliceOf[T any](elem Codec[T]) Codec[[]T] {
	return sliceCodec[T]{elem: elem}
}

func (c sliceCodec[T]) ToIR(vs []T) (*ir.Node, error) {
	values := make([]*ir.Node, len(vs))
	for i, v := range vs {
		node, err := encodeMember(c.elem, v, kpath.Index(i))
		if err != nil {
			return nil, err
		}
		values[i] = node
	}
	return ir.FromSlice(values), nil
}

func (c sliceCodec[T]) FromIR(node *ir.Node, out *[]T) error {
	if typeOf(node) != ir.ArrayType {
		return shapeError(node, ir.ArrayType)
	}
	res := make([]T, len(node.Values))
	for i, v := range node.Values {
		if err := decodeMember(c.elem, v, &res[i], kpath.Index(i)); err != nil {
			return err
		}
	}
	*out = res
	return nil
}

type ptrCodec[T any] struct {
	elem Codec[T]
}

// PtrOf returns the codec for pointers to values using elem. A nil pointer
// encodes as Null and Null decodes as nil.
func PtrOf[T any](elem Codec[T]) Codec[*T] {
	return ptrCodec[T]{elem: elem}
}

func (c ptrCodec[T]) ToIR(p *T) (*ir.Node, error) {
	if p == nil {
		return ir.Null(), nil
	}
	return encodeMember(c.elem, *p, nil)
}

func (c ptrCodec[T]) FromIR(node *ir.Node, out **T) error {
	if node.IsNull() {
		*out = nil
		return nil
	}
	v := new(T)
	if err := c.elem.FromIR(node, v); err != nil {
		return err
	}
	*out = v
	return nil
}
