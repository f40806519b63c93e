package gomap

import (
	"github.com/signadot/irmap/debug"
	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"
)

// Serialize converts v to a node using c. On failure it returns an Undefined
// node and the error, which is also logged.
func Serialize[T any](c Codec[T], v T, opts ...Option) (*ir.Node, error) {
	node, err := c.ToIR(v)
	if err == nil && node.IsUndefined() {
		err = marshalErrorf(ErrUndefined, "value has no representation")
	}
	if err != nil {
		newConfig(opts).report("serialize", typeName[T](), err, nil)
		return ir.Undefined(), err
	}
	if debug.Codec() {
		debug.Logf("serialize %s: %s\n", typeName[T](), nodeText(node))
	}
	return node, nil
}

// Deserialize converts node to a value using c and stores it in out. On
// failure the error is logged and out is left in an unspecified state.
func Deserialize[T any](node *ir.Node, c Codec[T], out *T, opts ...Option) error {
	return deserialize(newConfig(opts), node, nil, c, out)
}

func deserialize[T any](cfg *config, node *ir.Node, at *kpath.KPath, c Codec[T], out *T) error {
	var err error
	if node.IsUndefined() {
		err = unmarshalErrorf(ErrUndefined, "cannot decode an undefined node")
	} else {
		err = c.FromIR(node, out)
	}
	if err != nil {
		if at != nil {
			err = unmarshalAt(err, at)
		}
		cfg.report("deserialize", typeName[T](), err, node)
		return err
	}
	if debug.Codec() {
		debug.Logf("deserialize %s at %q: %s\n", typeName[T](), at, nodeText(node))
	}
	return nil
}

// SerializeKey converts k to the text of an object key. The codec must
// produce a String or a Number; Numbers are formatted by ir.FormatNumber.
func SerializeKey[K any](c Codec[K], k K, opts ...Option) (string, error) {
	s, err := encodeKey(c, k)
	if err != nil {
		newConfig(opts).report("serialize key", typeName[K](), err, nil)
		return "", err
	}
	return s, nil
}

// DeserializeKey decodes the text of an object key by decoding it as a
// String node with c.
func DeserializeKey[K any](c Codec[K], key string, out *K, opts ...Option) error {
	if err := decodeKey(c, key, out); err != nil {
		newConfig(opts).report("deserialize key", typeName[K](), err, ir.FromString(key))
		return err
	}
	return nil
}

// DeserializeNode decodes the node at p within node. It fails with
// ErrNotFound if there is no such node.
func DeserializeNode[T any](node *ir.Node, p *kpath.KPath, c Codec[T], out *T, opts ...Option) error {
	cfg := newConfig(opts)
	sub := ir.GetNode(node, p)
	if sub.IsUndefined() {
		err := &UnmarshalError{Path: p, Message: "node not found", Err: ErrNotFound}
		cfg.report("deserialize", typeName[T](), err, nil)
		return err
	}
	return deserialize(cfg, sub, p, c, out)
}

// DeserializeOptionalNode is like DeserializeNode except that a missing
// node is not an error: it returns false and a nil error, leaving out
// untouched. present is true only when the node exists and decodes.
func DeserializeOptionalNode[T any](node *ir.Node, p *kpath.KPath, c Codec[T], out *T, opts ...Option) (present bool, err error) {
	sub := ir.GetNode(node, p)
	if sub.IsUndefined() {
		return false, nil
	}
	if err := deserialize(newConfig(opts), sub, p, c, out); err != nil {
		return false, err
	}
	return true, nil
}
