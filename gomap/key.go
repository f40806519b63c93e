package gomap

import (
	"github.com/signadot/irmap/ir"
)

// encodeKey converts k to object key text. Only codecs producing Strings or
// Numbers can encode keys; Numbers are formatted by ir.FormatNumber.
func encodeKey[K any](c Codec[K], k K) (string, error) {
	node, err := c.ToIR(k)
	if err != nil {
		return "", err
	}
	switch typeOf(node) {
	case ir.StringType:
		return node.String, nil
	case ir.NumberType:
		return ir.FormatNumber(node.Number), nil
	}
	return "", marshalErrorf(ErrKey, "%s encodes to %s and cannot be used as a map key",
		typeName[K](), typeOf(node))
}

// decodeKey decodes object key text by decoding it as a String node.
func decodeKey[K any](c Codec[K], s string, out *K) error {
	return c.FromIR(ir.FromString(s), out)
}
