package gomap

import (
	"github.com/signadot/irmap/ir"
)

type bitArrayWire struct {
	count int
	bits  []byte
}

var bitArrayWireCodec = Struct("bit array",
	Field("bit_count", Int, func(w *bitArrayWire) *int { return &w.count }),
	Field("encoded_bits", Bytes, func(w *bitArrayWire) *[]byte { return &w.bits }),
)

// BitArray encodes a bit array as {"bit_count": n, "encoded_bits": b} where b
// is base64 of the bits packed least significant bit first.
var BitArray Codec[[]bool] = Func(
	func(bits []bool) (*ir.Node, error) {
		w := bitArrayWire{count: len(bits), bits: make([]byte, (len(bits)+7)/8)}
		for i, b := range bits {
			if b {
				w.bits[i/8] |= 1 << (i % 8)
			}
		}
		return bitArrayWireCodec.ToIR(w)
	},
	func(node *ir.Node, out *[]bool) error {
		var w bitArrayWire
		if err := bitArrayWireCodec.FromIR(node, &w); err != nil {
			return err
		}
		if w.count < 0 {
			return unmarshalErrorf(ErrRange, "bit_count %d is negative", w.count)
		}
		if len(w.bits) != (w.count+7)/8 {
			return unmarshalErrorf(ErrArity, "%d bits need %d bytes but encoded_bits has %d",
				w.count, (w.count+7)/8, len(w.bits))
		}
		res := make([]bool, w.count)
		for i := range res {
			res[i] = w.bits[i/8]&(1<<(i%8)) != 0
		}
		*out = res
		return nil
	})
