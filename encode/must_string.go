package encode

import (
	"github.com/signadot/irmap/ir"
)

// MustString returns the single line JSON text of y, panicking if y cannot
// be encoded.
func MustString(y *ir.Node) string {
	s, err := String(y, EncodeWire(true))
	if err != nil {
		panic(err)
	}
	return s
}
