package gomap

import (
	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"
)

// encodeMember converts a member of a composite located at seg.
func encodeMember[T any](c Codec[T], v T, seg *kpath.KPath) (*ir.Node, error) {
	node, err := c.ToIR(v)
	if err != nil {
		return nil, marshalAt(err, seg)
	}
	if node.IsUndefined() {
		return nil, &MarshalError{Path: seg, Message: "value has no representation", Err: ErrUndefined}
	}
	return node, nil
}

// decodeMember converts a member of a composite located at seg.
func decodeMember[T any](c Codec[T], node *ir.Node, out *T, seg *kpath.KPath) error {
	if err := c.FromIR(node, out); err != nil {
		return unmarshalAt(err, seg)
	}
	return nil
}
