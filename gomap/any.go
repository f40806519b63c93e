package gomap

import (
	"maps"
	"net/url"
	"reflect"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"
)

// Any converts dynamically typed values.
//
// Encoding accepts nil, bool, the integer and float types, string, []byte,
// time.Time, url.URL, *url.URL, uuid.UUID, *ir.Node, Marshaler, []any and
// map[string]any. Decoding yields nil, bool, float64, string, []any or
// map[string]any.
var Any Codec[any] = anyCodec{}

type anyCodec struct{}

func (c anyCodec) ToIR(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case *ir.Node:
		return Node.ToIR(x)
	case Marshaler:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return ir.Null(), nil
		}
		return x.ToIR()
	case bool:
		return Bool.ToIR(x)
	case int:
		return Int.ToIR(x)
	case int8:
		return Int8.ToIR(x)
	case int16:
		return Int16.ToIR(x)
	case int32:
		return Int32.ToIR(x)
	case int64:
		return Int64.ToIR(x)
	case uint:
		return Uint.ToIR(x)
	case uint8:
		return Uint8.ToIR(x)
	case uint16:
		return Uint16.ToIR(x)
	case uint32:
		return Uint32.ToIR(x)
	case uint64:
		return Uint64.ToIR(x)
	case float32:
		return Float32.ToIR(x)
	case float64:
		return Float64.ToIR(x)
	case string:
		return String.ToIR(x)
	case []byte:
		return Bytes.ToIR(x)
	case time.Time:
		return Time.ToIR(x)
	case url.URL:
		return URL.ToIR(x)
	case *url.URL:
		if x == nil {
			return ir.Null(), nil
		}
		return URL.ToIR(*x)
	case uuid.UUID:
		return UUID.ToIR(x)
	case []any:
		return SliceOf[any](c).ToIR(x)
	case map[string]any:
		kvs := make([]ir.KeyVal, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			node, err := encodeMember[any](c, x[k], kpath.Field(k))
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: k, Val: node})
		}
		return ir.FromKeyVals(kvs), nil
	}
	return nil, marshalErrorf(ErrUnsupported, "unsupported dynamic type %T", v)
}

func (c anyCodec) FromIR(node *ir.Node, out *any) error {
	switch typeOf(node) {
	case ir.NullType:
		*out = nil
	case ir.BoolType:
		*out = node.Bool
	case ir.NumberType:
		*out = node.Number
	case ir.StringType:
		*out = node.String
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			if err := decodeMember[any](c, v, &res[i], kpath.Index(i)); err != nil {
				return err
			}
		}
		*out = res
	case ir.ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i, f := range node.Fields {
			var v any
			if err := decodeMember[any](c, node.Values[i], &v, kpath.Field(f.String)); err != nil {
				return err
			}
			res[f.String] = v
		}
		*out = res
	default:
		return unmarshalErrorf(ErrUndefined, "cannot decode an undefined node")
	}
	return nil
}
