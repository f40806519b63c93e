package ir

import (
	"cmp"
	"slices"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Objects are compared by their members in key order, so two objects with the
// same members in different insertion order compare equal.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	rankA := rank(a)
	rankB := rank(b)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}
	if rankA == 0 {
		return 0
	}

	switch a.Type {
	case NumberType:
		return cmp.Compare(a.Number, b.Number)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, b)
	case ObjectType:
		return compareObjects(a, b)
	}
	return 0
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	r := rank(a)
	if r != rank(b) {
		return false
	}
	if r == 0 {
		return true
	}
	switch a.Type {
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i, f := range a.Fields {
			j := b.FieldIndex(f.String)
			if j == -1 || !Equal(a.Values[i], b.Values[j]) {
				return false
			}
		}
		return true
	}
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Undefined < Null < Bool < Number < String < Array < Object
func rank(n *Node) int {
	if n.IsUndefined() {
		return 0
	}
	switch n.Type {
	case NullType:
		return 1
	case BoolType:
		return 2
	case NumberType:
		return 3
	case StringType:
		return 4
	case ArrayType:
		return 5
	case ObjectType:
		return 6
	}
	return 100
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareObjects(a, b *Node) int {
	kvA := sortedKeyVals(a)
	kvB := sortedKeyVals(b)
	minLen := min(len(kvA), len(kvB))

	for i := 0; i < minLen; i++ {
		if c := strings.Compare(kvA[i].Key, kvB[i].Key); c != 0 {
			return c
		}
		if c := Compare(kvA[i].Val, kvB[i].Val); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(kvA), len(kvB))
}

func sortedKeyVals(y *Node) []KeyVal {
	kvs := y.KeyVals()
	slices.SortFunc(kvs, func(x, y KeyVal) int {
		return strings.Compare(x.Key, y.Key)
	})
	return kvs
}
