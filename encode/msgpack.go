package encode

import (
	"fmt"
	"io"
	"math"

	"github.com/signadot/irmap/ir"
	"github.com/vmihailenco/msgpack/v5"
)

func encodeMsgPack(node *ir.Node, w io.Writer) error {
	return msgPackValue(msgpack.NewEncoder(w), node)
}

// msgPackValue writes Numbers holding safe integers as msgpack integers and
// all other Numbers as float64.
func msgPackValue(enc *msgpack.Encoder, node *ir.Node) error {
	switch nodeType(node) {
	case ir.NullType:
		return enc.EncodeNil()
	case ir.BoolType:
		return enc.EncodeBool(node.Bool)
	case ir.NumberType:
		f := node.Number
		if f == math.Trunc(f) && math.Abs(f) <= ir.MaxSafeInt {
			return enc.EncodeInt(int64(f))
		}
		return enc.EncodeFloat64(f)
	case ir.StringType:
		return enc.EncodeString(node.String)
	case ir.ArrayType:
		if err := enc.EncodeArrayLen(len(node.Values)); err != nil {
			return err
		}
		for _, v := range node.Values {
			if err := msgPackValue(enc, v); err != nil {
				return err
			}
		}
		return nil
	case ir.ObjectType:
		if err := enc.EncodeMapLen(len(node.Fields)); err != nil {
			return err
		}
		for i, f := range node.Fields {
			if err := enc.EncodeString(f.String); err != nil {
				return err
			}
			if err := msgPackValue(enc, node.Values[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: cannot encode an undefined node in msgpack", ErrEncoding)
}
