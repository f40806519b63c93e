package gomap

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/signadot/irmap/ir"
)

// boolTolerance is how far from 0 or 1 a Number may be and still decode as a
// bool.
const boolTolerance = 1e-3

func decodeBool(node *ir.Node) (bool, error) {
	switch typeOf(node) {
	case ir.BoolType:
		return node.Bool, nil
	case ir.StringType:
		s := node.String
		switch {
		case s == "0", strings.EqualFold(s, "false"):
			return false, nil
		case s == "1", strings.EqualFold(s, "true"):
			return true, nil
		}
		return false, unmarshalErrorf(ErrInvalid,
			"String %q is not a bool: only false, true, 0 and 1 are allowed", s)
	case ir.NumberType:
		f := node.Number
		if math.Abs(f) < boolTolerance {
			return false, nil
		}
		if math.Abs(f-1) < boolTolerance {
			return true, nil
		}
		return false, unmarshalErrorf(ErrInvalid,
			"Number %s is not a bool: only 0 and 1 are allowed", ir.FormatNumber(f))
	}
	return false, shapeError(node, ir.BoolType, ir.StringType, ir.NumberType)
}

func decodeString(node *ir.Node) (string, error) {
	if typeOf(node) != ir.StringType {
		return "", shapeError(node, ir.StringType)
	}
	return node.String, nil
}

var (
	// Bool encodes as Bool. It decodes Bool, the Strings "0", "1",
	// "true" and "false" (in any case), and Numbers within 1e-3 of 0 or 1.
	Bool Codec[bool] = Func(
		func(v bool) (*ir.Node, error) { return ir.FromBool(v), nil },
		func(node *ir.Node, out *bool) error {
			b, err := decodeBool(node)
			if err != nil {
				return err
			}
			*out = b
			return nil
		})

	String Codec[string] = Func(
		func(v string) (*ir.Node, error) { return ir.FromString(v), nil },
		func(node *ir.Node, out *string) error {
			s, err := decodeString(node)
			if err != nil {
				return err
			}
			*out = s
			return nil
		})

	// Char encodes a rune as a String of one character.
	Char Codec[rune] = Func(
		func(v rune) (*ir.Node, error) {
			if !utf8.ValidRune(v) {
				return nil, marshalErrorf(ErrRange, "%U is not a valid character", v)
			}
			return ir.FromString(string(v)), nil
		},
		func(node *ir.Node, out *rune) error {
			s, err := decodeString(node)
			if err != nil {
				return err
			}
			r, n := utf8.DecodeRuneInString(s)
			if n == 0 || n != len(s) || (r == utf8.RuneError && n == 1) {
				return unmarshalErrorf(ErrInvalid, "String %q is not a single character", s)
			}
			*out = r
			return nil
		})
)
