package gomap

import (
	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"
)

// Pair is a 2-tuple, encoded as {"first": ..., "second": ...}.
type Pair[A, B any] struct {
	First  A
	Second B
}

type pairCodec[A, B any] struct {
	a Codec[A]
	b Codec[B]
}

// PairOf returns the codec for pairs whose members use a and b.
func PairOf[A, B any](a Codec[A], b Codec[B]) Codec[Pair[A, B]] {
	return pairCodec[A, B]{a: a, b: b}
}

func (c pairCodec[A, B]) ToIR(p Pair[A, B]) (*ir.Node, error) {
	first, err := encodeMember(c.a, p.First, kpath.Field("first"))
	if err != nil {
		return nil, err
	}
	second, err := encodeMember(c.b, p.Second, kpath.Field("second"))
	if err != nil {
		return nil, err
	}
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "first", Val: first},
		{Key: "second", Val: second},
	}), nil
}

func (c pairCodec[A, B]) FromIR(node *ir.Node, out *Pair[A, B]) error {
	members, err := requireMembers(node, "pair", "first", "second")
	if err != nil {
		return err
	}
	var p Pair[A, B]
	if err := decodeMember(c.a, members[0], &p.First, kpath.Field("first")); err != nil {
		return err
	}
	if err := decodeMember(c.b, members[1], &p.Second, kpath.Field("second")); err != nil {
		return err
	}
	*out = p
	return nil
}

// requireMembers checks that node is an object consisting of exactly the
// named members and returns their values in the order given.
func requireMembers(node *ir.Node, what string, names ...string) ([]*ir.Node, error) {
	if typeOf(node) != ir.ObjectType {
		return nil, shapeError(node, ir.ObjectType)
	}
	res := make([]*ir.Node, len(names))
	for i, name := range names {
		j := node.FieldIndex(name)
		if j == -1 {
			return nil, &UnmarshalError{
				Path:    kpath.Field(name),
				Message: "missing member of " + what,
				Err:     ErrMissing,
			}
		}
		res[i] = node.Values[j]
	}
	if n := node.Len(); n != len(names) {
		return nil, unmarshalErrorf(ErrArity, "%s needs exactly %d members but has %d", what, len(names), n)
	}
	return res, nil
}
