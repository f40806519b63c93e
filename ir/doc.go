// Package ir provides the tree value that typed Go values are converted to
// and from.
//
// # Overview
//
// A Node is a recursive tagged union. The Type field selects which of the
// other fields carry the value:
//
//   - NullType: no payload
//   - BoolType: Bool
//   - NumberType: Number (a float64)
//   - StringType: String
//   - ArrayType: Values, in order
//   - ObjectType: Fields (String nodes) and Values, in insertion order
//
// Object keys are unique. Nodes are treated as immutable once constructed, so
// subtrees may be shared between trees freely.
//
// # Undefined
//
// UndefinedType marks the absence of a value. It is what queries return when a
// path does not resolve and what failed conversions return alongside their
// error. It is never a member of an Array or Object produced by this module.
// A nil *Node is treated as Undefined by the inspection and query functions.
//
// # Queries
//
// GetIndex, GetField and GetNode locate sub-nodes by array index, object
// field, or a kpath.KPath. Not finding a node is an ordinary outcome, reported
// by returning Undefined; the Has* variants report the same as a bool.
//
//	tree := ir.FromKeyVals([]ir.KeyVal{{Key: "b", Val: ir.FromSlice(...)}})
//	n := ir.GetNode(tree, kpath.Field("b").Append(kpath.Index(1)))
//	if n.IsUndefined() {
//		...
//	}
//
// # Related Packages
//
//   - github.com/signadot/irmap/ir/kpath: paths into a tree
//   - github.com/signadot/irmap/gomap: conversion between Go values and nodes
//   - github.com/signadot/irmap/encode, parse: interchange encodings
package ir
