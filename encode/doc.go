// Package encode writes trees as JSON, YAML or MsgPack documents.
//
// # Usage
//
//	node := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("alice"),
//	    "age":  ir.FromInt(30),
//	})
//	err := encode.Encode(node, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//
//	// single line JSON
//	s, err := encode.String(node, encode.EncodeWire(true))
//
// Text output may be colored with EncodeColors. Numbers which are integers
// of magnitude at most 2^53 are written without a fraction or exponent.
// NaN and infinities cannot be written as JSON.
//
// # Related Packages
//
//   - github.com/signadot/irmap/ir - Tree representation
//   - github.com/signadot/irmap/parse - Parse documents to trees
package encode
