package kpath

import (
	"bytes"
	"cmp"
	"strconv"
	"strings"
)

// KPath is one segment of a path together with the rest of the path.
// Exactly one of Field and Index is set.
type KPath struct {
	Field *string // object field name
	Index *int    // array index
	Next  *KPath  // next segment, nil at the leaf
}

// Field returns a single segment path selecting the object field name.
func Field(name string) *KPath {
	return &KPath{Field: &name}
}

// Index returns a single segment path selecting array element i.
func Index(i int) *KPath {
	return &KPath{Index: &i}
}

// FromStrings returns a path of field segments, one per element of segs.
// When such a path is resolved, field segments which parse as non-negative
// integers select array elements, so paths may be given uniformly as strings.
func FromStrings(segs ...string) *KPath {
	var res *KPath
	for i := len(segs) - 1; i >= 0; i-- {
		seg := Field(segs[i])
		seg.Next = res
		res = seg
	}
	return res
}

// Append returns a new path consisting of the segments of p followed by
// those of q. Neither p nor q is modified.
func (p *KPath) Append(q *KPath) *KPath {
	if p == nil {
		return q
	}
	res := p.copySegment()
	res.Next = p.Next.Append(q)
	return res
}

// AppendField is shorthand for p.Append(Field(name)).
func (p *KPath) AppendField(name string) *KPath {
	return p.Append(Field(name))
}

// AppendIndex is shorthand for p.Append(Index(i)).
func (p *KPath) AppendIndex(i int) *KPath {
	return p.Append(Index(i))
}

func (p *KPath) copySegment() *KPath {
	res := &KPath{}
	if p.Field != nil {
		tmp := *p.Field
		res.Field = &tmp
	}
	if p.Index != nil {
		tmp := *p.Index
		res.Index = &tmp
	}
	return res
}

// Segments returns the segments of p from root to leaf, each with a nil Next.
func (p *KPath) Segments() []*KPath {
	var res []*KPath
	for x := p; x != nil; x = x.Next {
		res = append(res, x.copySegment())
	}
	return res
}

func (p *KPath) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// Parent returns p without its last segment.
func (p *KPath) Parent() *KPath {
	if p == nil || p.Next == nil {
		return nil
	}
	res := p.copySegment()
	res.Next = p.Next.Parent()
	return res
}

// Last returns the final segment of p.
func (p *KPath) Last() *KPath {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x.copySegment()
}

// String returns the kinded path string representation of this KPath.
// Example:
//
//	Field("a").Append(Field("b")) → "a.b"
//	Field("a").Append(Index(0)) → "a[0]"
//	Field("a b") → "'a b'"
func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		if x.Field != nil {
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(fieldString(*x.Field))
			continue
		}
		if x.Index != nil {
			buf.WriteByte('[')
			buf.WriteString(strconv.Itoa(*x.Index))
			buf.WriteByte(']')
		}
	}
	return buf.String()
}

// SegmentString returns the representation of the first segment of p only.
func (p *KPath) SegmentString() string {
	if p == nil {
		return ""
	}
	if p.Field != nil {
		return fieldString(*p.Field)
	}
	if p.Index != nil {
		return "[" + strconv.Itoa(*p.Index) + "]"
	}
	return ""
}

// Equal reports whether p and q have the same segments.
func (p *KPath) Equal(q *KPath) bool {
	return p.Compare(q) == 0
}

// Compare orders paths segment by segment; index segments sort before field
// segments and a path sorts before its extensions.
func (p *KPath) Compare(q *KPath) int {
	for {
		switch {
		case p == nil && q == nil:
			return 0
		case p == nil:
			return -1
		case q == nil:
			return 1
		}
		if c := compareSegment(p, q); c != 0 {
			return c
		}
		p, q = p.Next, q.Next
	}
}

func compareSegment(a, b *KPath) int {
	switch {
	case a.Index != nil && b.Index != nil:
		return cmp.Compare(*a.Index, *b.Index)
	case a.Index != nil:
		return -1
	case b.Index != nil:
		return 1
	case a.Field != nil && b.Field != nil:
		return strings.Compare(*a.Field, *b.Field)
	}
	return 0
}

func (p *KPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *KPath) UnmarshalText(d []byte) error {
	q, err := Parse(string(d))
	if err != nil {
		return err
	}
	if q == nil {
		*p = KPath{}
		return nil
	}
	*p = *q
	return nil
}
