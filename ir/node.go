package ir

import (
	"maps"
	"slices"
)

type Node struct {
	Type   Type
	Fields []*Node
	Values []*Node

	String string
	Bool   bool
	Number float64
}

// IsUndefined reports whether y is nil or of UndefinedType.
func (y *Node) IsUndefined() bool {
	return y == nil || y.Type == UndefinedType
}

func (y *Node) IsNull() bool {
	return y != nil && y.Type == NullType
}

// Len returns the number of members of an Array or Object and 0 otherwise.
func (y *Node) Len() int {
	if y == nil {
		return 0
	}
	switch y.Type {
	case ArrayType, ObjectType:
		return len(y.Values)
	}
	return 0
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{
		Type:   y.Type,
		String: y.String,
		Bool:   y.Bool,
		Number: y.Number,
	}
	if y.Fields != nil {
		res.Fields = make([]*Node, len(y.Fields))
		for i, f := range y.Fields {
			res.Fields[i] = f.Clone()
		}
	}
	if y.Values != nil {
		res.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

func Null() *Node {
	return &Node{Type: NullType}
}

// Undefined returns a node signalling that there is no value.
func Undefined() *Node {
	return &Node{Type: UndefinedType}
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return FromFloat(float64(v))
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:   NumberType,
		Number: f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

// FromMap creates an object whose fields are the keys of yMap in sorted order.
func FromMap(yMap map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(yMap))
	kvs := make([]KeyVal, len(keys))
	for i, key := range keys {
		kvs[i] = KeyVal{Key: key, Val: yMap[key]}
	}
	return FromKeyVals(kvs)
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals creates an object with the given fields in order. Keys
// must be unique.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]*Node, len(kvs)),
		Values: make([]*Node, len(kvs)),
	}
	for i := range kvs {
		res.Fields[i] = FromString(kvs[i].Key)
		res.Values[i] = kvs[i].Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type:   ArrayType,
		Values: make([]*Node, len(ySlice)),
	}
	copy(res.Values, ySlice)
	return res
}

// ToMap returns the fields of an object keyed by name, or nil if y is not an
// object.
func ToMap(y *Node) map[string]*Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(y.Fields))
	for i, f := range y.Fields {
		res[f.String] = y.Values[i]
	}
	return res
}

// FieldIndex returns the position of the field named name in an object,
// or -1.
func (y *Node) FieldIndex(name string) int {
	if y == nil || y.Type != ObjectType {
		return -1
	}
	for i, f := range y.Fields {
		if f.String == name {
			return i
		}
	}
	return -1
}

// KeyVals returns the members of an object in order.
func (y *Node) KeyVals() []KeyVal {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	res := make([]KeyVal, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = KeyVal{Key: f.String, Val: y.Values[i]}
	}
	return res
}
