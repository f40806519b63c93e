// Package kpath provides kinded paths into ir trees.
//
// A kinded path spells out the kind of container at each step:
//
//   - "a.b"  field b of the object at field a
//   - "a[0]" element 0 of the array at field a
//   - "[1].x" field x of element 1 of a top level array
//
// Field names containing separators, quotes, whitespace, or nothing at all are
// quoted, as in "a.'x.y'" or "a.''".
//
// A nil *KPath is the empty path, which refers to the root.
package kpath
