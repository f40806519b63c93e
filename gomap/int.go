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

// intKind describes an integer type by name, signedness and width.
type intKind struct {
	name   string
	signed bool
	bits   int
}

func (k intKind) bounds() (lo int64, hi uint64) {
	shift := uint(64 - k.bits)
	if k.signed {
		return math.MinInt64 >> shift, math.MaxInt64 >> shift
	}
	return 0, math.MaxUint64 >> shift
}

func (k intKind) fromInt(v int64) *ir.Node {
	if k.bits <= 32 || (v >= -ir.MaxSafeInt && v <= ir.MaxSafeInt) {
		return ir.FromInt(v)
	}
	return ir.FromString(strconv.FormatInt(v, 10))
}

func (k intKind) fromUint(v uint64) *ir.Node {
	if k.bits <= 32 || v <= ir.MaxSafeInt {
		return ir.FromFloat(float64(v))
	}
	return ir.FromString(strconv.FormatUint(v, 10))
}

func (k intKind) rangeError(v string) error {
	lo, hi := k.bounds()
	return unmarshalErrorf(ErrRange, "value %s is out of range for %s [%d, %d]", v, k.name, lo, hi)
}

// decode converts node to an integer of kind k, returned as its two's
// complement bit pattern.
func (k intKind) decode(node *ir.Node) (uint64, error) {
	switch typeOf(node) {
	case ir.NumberType:
		return k.decodeFloat(node.Number)
	case ir.StringType:
		return k.decodeString(node.String)
	}
	return 0, shapeError(node, ir.NumberType, ir.StringType)
}

func (k intKind) decodeFloat(f float64) (uint64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, k.rangeError(ir.FormatNumber(f))
	}
	lo, hi := k.bounds()
	if f < float64(lo) || f > float64(hi) {
		return 0, k.rangeError(ir.FormatNumber(f))
	}
	r := math.Round(f)
	// float64(hi) rounds up to 2^bits for 64 bit kinds.
	if k.signed {
		if r >= math.Exp2(float64(k.bits-1)) {
			return 0, k.rangeError(ir.FormatNumber(f))
		}
		return uint64(int64(r)), nil
	}
	if r >= math.Exp2(float64(k.bits)) {
		return 0, k.rangeError(ir.FormatNumber(f))
	}
	return uint64(r), nil
}

func (k intKind) decodeString(s string) (uint64, error) {
	t := strings.TrimSpace(s)
	lo, hi := k.bounds()
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		if i < lo || (i > 0 && uint64(i) > hi) {
			return 0, k.rangeError(t)
		}
		return uint64(i), nil
	}
	if u, err := strconv.ParseUint(t, 10, 64); err == nil {
		if u > hi {
			return 0, k.rangeError(t)
		}
		return u, nil
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return k.decodeFloat(f)
	}
	return 0, unmarshalErrorf(ErrInvalid, "String %q is not a number", s)
}

type intCodec[T constraints.Integer] struct {
	kind intKind
}

// Integer returns the codec for the integer type T.
func Integer[T constraints.Integer]() Codec[T] {
	var zero T
	return intCodec[T]{kind: intKind{
		name:   fmt.Sprintf("%T", zero),
		signed: ^zero < 0,
		bits:   int(unsafe.Sizeof(zero)) * 8,
	}}
}

func (c intCodec[T]) ToIR(v T) (*ir.Node, error) {
	if c.kind.signed {
		return c.kind.fromInt(int64(v)), nil
	}
	return c.kind.fromUint(uint64(v)), nil
}

func (c intCodec[T]) FromIR(node *ir.Node, out *T) error {
	bits, err := c.kind.decode(node)
	if err != nil {
		return err
	}
	*out = T(bits)
	return nil
}

var (
	Int     = Integer[int]()
	Int8    = Integer[int8]()
	Int16   = Integer[int16]()
	Int32   = Integer[int32]()
	Int64   = Integer[int64]()
	Uint    = Integer[uint]()
	Uint8   = Integer[uint8]()
	Uint16  = Integer[uint16]()
	Uint32  = Integer[uint32]()
	Uint64  = Integer[uint64]()
	Uintptr = Integer[uintptr]()
)
