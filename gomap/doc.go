// Package gomap converts between Go values and ir nodes.
//
// # Codecs
//
// Every conversion goes through a Codec[T], a value pairing ToIR and FromIR
// for one Go type. Codecs are passed explicitly to the entry points
//
//	node, err := gomap.Serialize(gomap.Int64, int64(1)<<60)
//	var v int64
//	err = gomap.Deserialize(node, gomap.Int64, &v)
//
// so a type with no codec cannot reach Serialize or Deserialize at all:
// forgetting to support a type is a build failure, not a silent no-op.
//
// Built in codecs cover booleans, all integer and float types, strings and
// common value types (Bytes, BitArray, Time, Date, URL, UUID, Node, Any).
// Composite codecs are built from codecs for their members:
//
//	gomap.SliceOf(gomap.String)                     // []string
//	gomap.SetOf(gomap.Int)                          // map[int]struct{}
//	gomap.MapOf(gomap.Uint32, gomap.SliceOf(gomap.Float64))
//	gomap.MultiMapOf(gomap.String, gomap.Int)       // *MultiMap[string, int]
//	gomap.PairOf(gomap.String, gomap.Bool)          // Pair[string, bool]
//
// # User types
//
// A type participates by implementing Marshaler on its value and Unmarshaler
// on its pointer and using Self, by describing its members with Struct, or by
// providing two functions to Func. For[T] derives a codec by reflection; it
// reports unsupported types when it is called rather than when a value is
// converted.
//
// # Numbers
//
// Integers of at most 32 bits are always Numbers. 64 bit integers are
// Numbers when their magnitude is at most 2^53 and decimal Strings
// otherwise, so they round trip exactly. Decoding accepts Numbers within the
// destination's range (rounded to the nearest integer) and Strings holding
// an integer or float; it never accepts Bool.
//
// # Errors
//
// Failures are returned as *MarshalError or *UnmarshalError carrying the
// path of the failing member and wrapping one of the Err* sentinels, and are
// reported once to the configured slog.Logger by the entry points.
package gomap
