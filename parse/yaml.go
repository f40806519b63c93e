package parse

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/signadot/irmap/ir"

	"github.com/goccy/go-yaml"
)

func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fromYAML(v)
}

// fromYAML converts a value decoded by go-yaml with ordered maps.
func fromYAML(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		return ir.FromFloat(float64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return ir.FromFloat(f), nil
	case []byte:
		return ir.FromString(base64.StdEncoding.EncodeToString(x)), nil
	case time.Time:
		return ir.FromString(x.Format(time.RFC3339Nano)), nil
	case []any:
		values := make([]*ir.Node, len(x))
		for i, e := range x {
			node, err := fromYAML(e)
			if err != nil {
				return nil, err
			}
			values[i] = node
		}
		return ir.FromSlice(values), nil
	case yaml.MapSlice:
		b := &objectBuilder{}
		for _, item := range x {
			key, err := yamlKey(item.Key)
			if err != nil {
				return nil, err
			}
			val, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			if err := b.add(key, val); err != nil {
				return nil, err
			}
		}
		return b.node(), nil
	}
	return nil, fmt.Errorf("%w: unsupported yaml value of type %T", ErrParse, v)
}

func yamlKey(k any) (string, error) {
	switch x := k.(type) {
	case string:
		return x, nil
	case nil:
		return "null", nil
	case bool:
		return fmt.Sprint(x), nil
	case int, int64, uint64:
		return fmt.Sprint(x), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Sprint(x), nil
		}
		return ir.FormatNumber(x), nil
	}
	return "", fmt.Errorf("%w: yaml key of type %T cannot be an object key", ErrParse, k)
}
