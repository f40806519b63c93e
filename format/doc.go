// Package format names the document formats trees are read from and
// written to.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	node, err := parse.Parse(data, parse.ParseFormat(f))
//	err = encode.Encode(node, os.Stdout, encode.EncodeFormat(f))
//
// # Related Packages
//
//   - github.com/signadot/irmap/parse - Parse documents to trees
//   - github.com/signadot/irmap/encode - Encode trees to documents
package format
