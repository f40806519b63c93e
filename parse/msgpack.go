package parse

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/signadot/irmap/ir"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

func parseMsgPack(d []byte) (*ir.Node, error) {
	r := bytes.NewReader(d)
	dec := msgpack.NewDecoder(r)
	node, err := readMsgPack(dec)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, ErrTrailing
	}
	return node, nil
}

func isMapCode(c byte) bool {
	return msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32
}

func isArrayCode(c byte) bool {
	return msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32
}

func readMsgPack(dec *msgpack.Decoder) (*ir.Node, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	switch {
	case isMapCode(c):
		n, err := dec.DecodeMapLen()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		b := &objectBuilder{}
		for range n {
			key, err := readMsgPackKey(dec)
			if err != nil {
				return nil, err
			}
			val, err := readMsgPack(dec)
			if err != nil {
				return nil, err
			}
			if err := b.add(key, val); err != nil {
				return nil, err
			}
		}
		return b.node(), nil
	case isArrayCode(c):
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		values := make([]*ir.Node, 0, max(n, 0))
		for range n {
			val, err := readMsgPack(dec)
			if err != nil {
				return nil, err
			}
			values = append(values, val)
		}
		return ir.FromSlice(values), nil
	}
	v, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		return ir.FromFloat(float64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case string:
		return ir.FromString(x), nil
	case []byte:
		return ir.FromString(base64.StdEncoding.EncodeToString(x)), nil
	}
	return nil, fmt.Errorf("%w: unsupported msgpack value of type %T", ErrParse, v)
}

func readMsgPackKey(dec *msgpack.Decoder) (string, error) {
	key, err := readMsgPack(dec)
	if err != nil {
		return "", err
	}
	switch key.Type {
	case ir.StringType:
		return key.String, nil
	case ir.NumberType:
		return ir.FormatNumber(key.Number), nil
	}
	return "", fmt.Errorf("%w: msgpack key of type %s cannot be an object key", ErrParse, key.Type)
}
