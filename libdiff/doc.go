// Package libdiff computes structural differences between trees.
//
// A diff is a list of changes which transform one tree into another when
// applied in order. Array positions in change paths refer to the array as
// it is when the change is applied, so earlier insertions and deletions in
// the same array shift the positions of later changes.
//
// # Usage
//
//	changes := libdiff.Diff(from, to)
//	for _, c := range changes {
//	    fmt.Println(c)
//	}
//	res, err := libdiff.Apply(from, changes) // res is equal to to
//	patch, err := libdiff.JSONPatch(changes) // RFC 6902 operations
package libdiff
