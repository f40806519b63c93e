package libdiff

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/irmap/encode"
	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"

	jsoniter "github.com/json-iterator/go"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

var (
	ErrPatch    = errors.New("patch error")
	ErrConflict = fmt.Errorf("%w: conflict", ErrPatch)
)

// Apply applies changes in order to a copy of doc and returns the result.
// Deletions and replacements must find their From value in place.
func Apply(doc *ir.Node, changes []Change) (*ir.Node, error) {
	res := doc.Clone()
	for i := range changes {
		var err error
		res, err = apply(res, &changes[i])
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func apply(doc *ir.Node, c *Change) (*ir.Node, error) {
	if c.Path == nil {
		if c.Op != Insert && !ir.Equal(doc, c.From) {
			return nil, conflict(c)
		}
		if c.Op == Delete {
			return ir.Undefined(), nil
		}
		return c.To.Clone(), nil
	}
	parent := ir.GetNode(doc, c.Path.Parent())
	seg := c.Path.Last()
	switch parent.Type {
	case ir.ObjectType:
		return doc, applyObject(parent, seg, c)
	case ir.ArrayType:
		return doc, applyArray(parent, seg, c)
	}
	return nil, fmt.Errorf("%w at %s: %s has no members", ErrPatch, c.Path, parent.Type)
}

func applyObject(obj *ir.Node, seg *kpath.KPath, c *Change) error {
	name := ""
	switch {
	case seg.Field != nil:
		name = *seg.Field
	case seg.Index != nil:
		name = strconv.Itoa(*seg.Index)
	}
	i := obj.FieldIndex(name)
	if c.Op == Insert {
		if i != -1 {
			return fmt.Errorf("%w at %s: field exists", ErrConflict, c.Path)
		}
		obj.Fields = append(obj.Fields, ir.FromString(name))
		obj.Values = append(obj.Values, c.To.Clone())
		return nil
	}
	if i == -1 || !ir.Equal(obj.Values[i], c.From) {
		return conflict(c)
	}
	if c.Op == Delete {
		obj.Fields = slices.Delete(obj.Fields, i, i+1)
		obj.Values = slices.Delete(obj.Values, i, i+1)
		return nil
	}
	obj.Values[i] = c.To.Clone()
	return nil
}

func applyArray(arr *ir.Node, seg *kpath.KPath, c *Change) error {
	i := -1
	switch {
	case seg.Index != nil:
		i = *seg.Index
	case seg.Field != nil:
		n, err := strconv.Atoi(*seg.Field)
		if err == nil {
			i = n
		}
	}
	if c.Op == Insert {
		if i < 0 || i > len(arr.Values) {
			return fmt.Errorf("%w at %s: index out of range [0, %d]", ErrPatch, c.Path, len(arr.Values))
		}
		arr.Values = slices.Insert(arr.Values, i, c.To.Clone())
		return nil
	}
	if i < 0 || i >= len(arr.Values) || !ir.Equal(arr.Values[i], c.From) {
		return conflict(c)
	}
	if c.Op == Delete {
		arr.Values = slices.Delete(arr.Values, i, i+1)
		return nil
	}
	arr.Values[i] = c.To.Clone()
	return nil
}

func conflict(c *Change) error {
	return fmt.Errorf("%w at %q: expected %s", ErrConflict, c.Path.String(), text(c.From))
}

// Reverse returns the changes which undo changes.
func Reverse(changes []Change) []Change {
	res := make([]Change, len(changes))
	for i, c := range changes {
		r := Change{Op: c.Op, Path: c.Path, From: c.To, To: c.From}
		switch c.Op {
		case Insert:
			r.Op = Delete
		case Delete:
			r.Op = Insert
		}
		if c.Text != nil {
			r.Text = make([]diffpatch.Diff, len(c.Text))
			for j, d := range c.Text {
				switch d.Type {
				case diffpatch.DiffInsert:
					d.Type = diffpatch.DiffDelete
				case diffpatch.DiffDelete:
					d.Type = diffpatch.DiffInsert
				}
				r.Text[j] = d
			}
		}
		res[len(changes)-1-i] = r
	}
	return res
}

type jsonPatchOp struct {
	Op    string              `json:"op"`
	Path  string              `json:"path"`
	Value jsoniter.RawMessage `json:"value,omitempty"`
}

// JSONPatch renders changes as a JSON Patch document (RFC 6902).
func JSONPatch(changes []Change) ([]byte, error) {
	ops := make([]jsonPatchOp, 0, len(changes))
	for _, c := range changes {
		op := jsonPatchOp{Path: Pointer(c.Path)}
		val := c.To
		switch c.Op {
		case Insert:
			op.Op = "add"
		case Delete:
			op.Op = "remove"
			val = nil
		case Replace:
			op.Op = "replace"
		}
		if val != nil {
			d, err := encode.String(val, encode.EncodeWire(true))
			if err != nil {
				return nil, fmt.Errorf("%w at %s: %w", ErrPatch, c.Path, err)
			}
			op.Value = jsoniter.RawMessage(d)
		}
		ops = append(ops, op)
	}
	return jsoniter.Marshal(ops)
}

// Pointer returns the JSON Pointer (RFC 6901) form of p. The root is "".
func Pointer(p *kpath.KPath) string {
	b := &strings.Builder{}
	for x := p; x != nil; x = x.Next {
		b.WriteByte('/')
		switch {
		case x.Field != nil:
			b.WriteString(strings.NewReplacer("~", "~0", "/", "~1").Replace(*x.Field))
		case x.Index != nil:
			b.WriteString(strconv.Itoa(*x.Index))
		}
	}
	return b.String()
}
