package gomap

import (
	"errors"
	"fmt"

	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"
)

var (
	// ErrShape is a node of the wrong type for the destination.
	ErrShape       = errors.New("shape mismatch")
	// ErrArity is an object with the wrong number of members.
	ErrArity       = errors.New("arity mismatch")
	// ErrMissing is a required object member which is absent.
	ErrMissing     = errors.New("missing member")
	ErrRange       = errors.New("out of range")
	ErrInvalid     = errors.New("invalid value")
	ErrDuplicate   = errors.New("duplicate")
	ErrKey         = errors.New("not usable as a map key")
	ErrNotFound    = errors.New("node not found")
	ErrUndefined   = errors.New("undefined value")
	ErrUnsupported = errors.New("unsupported type")
)

// MarshalError represents an error during marshaling
type MarshalError struct {
	Path    *kpath.KPath // location of the failing member, nil at the root
	Message string
	Err     error
}

func (e *MarshalError) Error() string {
	if e.Path != nil {
		return fmt.Sprintf("marshal error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError represents an error during unmarshaling
type UnmarshalError struct {
	Path    *kpath.KPath // location of the failing member, nil at the root
	Message string
	Err     error
}

func (e *UnmarshalError) Error() string {
	if e.Path != nil {
		return fmt.Sprintf("unmarshal error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

func marshalErrorf(kind error, format string, args ...any) error {
	return &MarshalError{Message: fmt.Sprintf(format, args...), Err: kind}
}

func unmarshalErrorf(kind error, format string, args ...any) error {
	return &UnmarshalError{Message: fmt.Sprintf(format, args...), Err: kind}
}

// marshalAt locates err at seg relative to the enclosing value.
func marshalAt(err error, seg *kpath.KPath) error {
	if me, ok := err.(*MarshalError); ok {
		cp := *me
		cp.Path = seg.Append(me.Path)
		return &cp
	}
	return &MarshalError{Path: seg, Message: err.Error(), Err: err}
}

// unmarshalAt locates err at seg relative to the enclosing value.
func unmarshalAt(err error, seg *kpath.KPath) error {
	if ue, ok := err.(*UnmarshalError); ok {
		cp := *ue
		cp.Path = seg.Append(ue.Path)
		return &cp
	}
	return &UnmarshalError{Path: seg, Message: err.Error(), Err: err}
}

// shapeError reports that node is not one of the wanted types.
func shapeError(node *ir.Node, want ...ir.Type) error {
	var w string
	for i, t := range want {
		switch {
		case i == 0:
		case i == len(want)-1:
			w += " or "
		default:
			w += ", "
		}
		w += t.String()
	}
	return unmarshalErrorf(ErrShape, "expected %s, got %s", w, describe(node))
}

// describe names the type of node and, for leaves, its value.
func describe(node *ir.Node) string {
	switch typeOf(node) {
	case ir.NumberType:
		return "Number " + ir.FormatNumber(node.Number)
	case ir.StringType:
		return fmt.Sprintf("String %q", node.String)
	case ir.BoolType:
		return fmt.Sprintf("Bool %t", node.Bool)
	}
	return typeOf(node).String()
}

// errorPath returns the member path recorded in err, if any.
func errorPath(err error) *kpath.KPath {
	var me *MarshalError
	if errors.As(err, &me) {
		return me.Path
	}
	var ue *UnmarshalError
	if errors.As(err, &ue) {
		return ue.Path
	}
	return nil
}
