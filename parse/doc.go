// Package parse reads JSON, YAML and MsgPack documents into trees.
//
// # Usage
//
//	node, err := parse.Parse(data)                  // JSON
//	node, err := parse.Parse(data, parse.ParseYAML())
//
// Object members keep their document order. Documents with repeated
// object keys are rejected. YAML keys which are not strings are converted
// to their text and MsgPack binary values become base64 Strings.
//
// # Related Packages
//
//   - github.com/signadot/irmap/ir - Tree representation
//   - github.com/signadot/irmap/encode - Encode trees to documents
package parse
