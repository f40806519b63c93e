package gomap

import (
	"slices"

	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"
)

type setCodec[T comparable] struct {
	elem Codec[T]
}

// SetOf returns the codec for sets, represented as map[T]struct{}, whose
// elements use elem. Sets encode as Arrays ordered by ir.Compare. Decoding
// fails on duplicate elements.
func SetOf[T comparable](elem Codec[T]) Codec[map[T]struct{}] {
	return setCodec[T]{elem: elem}
}

func (c setCodec[T]) ToIR(set map[T]struct{}) (*ir.Node, error) {
	values := make([]*ir.Node, 0, len(set))
	seen := make(map[uint64][]*ir.Node, len(set))
	for v := range set {
		node, err := encodeMember(c.elem, v, nil)
		if err != nil {
			return nil, err
		}
		h := node.Hash()
		for _, other := range seen[h] {
			if ir.Equal(node, other) {
				return nil, marshalErrorf(ErrDuplicate,
					"distinct set elements encode to the same value %s", nodeText(node))
			}
		}
		seen[h] = append(seen[h], node)
		values = append(values, node)
	}
	slices.SortFunc(values, ir.Compare)
	return ir.FromSlice(values), nil
}

func (c setCodec[T]) FromIR(node *ir.Node, out *map[T]struct{}) error {
	if typeOf(node) != ir.ArrayType {
		return shapeError(node, ir.ArrayType)
	}
	res := make(map[T]struct{}, len(node.Values))
	for i, v := range node.Values {
		var elem T
		if err := decodeMember(c.elem, v, &elem, kpath.Index(i)); err != nil {
			return err
		}
		if _, ok := res[elem]; ok {
			return &UnmarshalError{
				Path:    kpath.Index(i),
				Message: "duplicate set element " + describe(v),
				Err:     ErrDuplicate,
			}
		}
		res[elem] = struct{}{}
	}
	*out = res
	return nil
}
