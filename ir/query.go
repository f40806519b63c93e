package ir

import (
	"strconv"

	"github.com/signadot/irmap/debug"
	"github.com/signadot/irmap/ir/kpath"
)

// GetIndex returns element i of an array, or Undefined if y is not an array
// or i is out of range.
func GetIndex(y *Node, i int) *Node {
	if y.IsUndefined() || y.Type != ArrayType || i < 0 || i >= len(y.Values) {
		return Undefined()
	}
	return y.Values[i]
}

// GetField returns the value of the named field of an object, or Undefined
// if y is not an object or has no such field.
func GetField(y *Node, name string) *Node {
	i := y.FieldIndex(name)
	if i == -1 {
		return Undefined()
	}
	return y.Values[i]
}

// GetNode resolves p against y, returning Undefined when any step does not
// resolve. An empty path resolves to y itself.
//
// At an array, the segment must be an index or a field which parses as a
// non-negative decimal integer. At an object, an index segment is used as
// the field with the decimal representation of the index. Any other node
// ends the walk with Undefined.
func GetNode(y *Node, p *kpath.KPath) *Node {
	if y == nil {
		return Undefined()
	}
	x := y
	for seg := p; seg != nil; seg = seg.Next {
		x = getSegment(x, seg)
		if x.IsUndefined() {
			if debug.Query() {
				debug.Logf("query: %q unresolved at %q\n", p, seg.SegmentString())
			}
			return x
		}
	}
	return x
}

func getSegment(x *Node, seg *kpath.KPath) *Node {
	if x.IsUndefined() {
		return Undefined()
	}
	switch x.Type {
	case ArrayType:
		if seg.Index != nil {
			return GetIndex(x, *seg.Index)
		}
		if seg.Field == nil {
			return Undefined()
		}
		i, ok := parseIndex(*seg.Field)
		if !ok {
			return Undefined()
		}
		return GetIndex(x, i)
	case ObjectType:
		if seg.Field != nil {
			return GetField(x, *seg.Field)
		}
		if seg.Index == nil {
			return Undefined()
		}
		return GetField(x, strconv.Itoa(*seg.Index))
	}
	return Undefined()
}

func parseIndex(s string) (int, bool) {
	u, err := strconv.ParseUint(s, 10, 0)
	if err != nil || u > uint64(int(^uint(0)>>1)) {
		return 0, false
	}
	return int(u), true
}

// HasIndex reports whether y is an Array with an element at i.
func HasIndex(y *Node, i int) bool {
	return !GetIndex(y, i).IsUndefined()
}

// HasField reports whether y is an Object with a field called name.
func HasField(y *Node, name string) bool {
	return !GetField(y, name).IsUndefined()
}

// HasNode reports whether p resolves to a node within y.
func HasNode(y *Node, p *kpath.KPath) bool {
	return !GetNode(y, p).IsUndefined()
}

// GetKPath parses path and resolves it against y. The error is non-nil only
// when path does not parse.
func (y *Node) GetKPath(path string) (*Node, error) {
	p, err := kpath.Parse(path)
	if err != nil {
		return nil, err
	}
	return GetNode(y, p), nil
}
