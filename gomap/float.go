package gomap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unsafe"

	"github.com/signadot/irmap/ir"
	"golang.org/x/exp/constraints"
)

func decodeFloat(node *ir.Node, bits int, name string) (float64, error) {
	var f float64
	switch typeOf(node) {
	case ir.NumberType:
		f = node.Number
	case ir.StringType:
		v, err := strconv.ParseFloat(strings.TrimSpace(node.String), 64)
		if err != nil {
			return 0, unmarshalErrorf(ErrInvalid, "String %q is not a number", node.String)
		}
		f = v
	default:
		return 0, shapeError(node, ir.NumberType, ir.StringType)
	}
	if bits == 32 && (f < -math.MaxFloat32 || f > math.MaxFloat32) {
		return 0, unmarshalErrorf(ErrRange, "value %s is out of range for %s [%g, %g]",
			ir.FormatNumber(f), name, -math.MaxFloat32, math.MaxFloat32)
	}
	return f, nil
}

type floatCodec[T constraints.Float] struct {
	name string
	bits int
}

// Float returns the codec for the floating point type T.
func Float[T constraints.Float]() Codec[T] {
	var zero T
	return floatCodec[T]{
		name: fmt.Sprintf("%T", zero),
		bits: int(unsafe.Sizeof(zero)) * 8,
	}
}

func (c floatCodec[T]) ToIR(v T) (*ir.Node, error) {
	return ir.FromFloat(float64(v)), nil
}

func (c floatCodec[T]) FromIR(node *ir.Node, out *T) error {
	f, err := decodeFloat(node, c.bits, c.name)
	if err != nil {
		return err
	}
	*out = T(f)
	return nil
}

var (
	Float32 = Float[float32]()
	Float64 = Float[float64]()
)
