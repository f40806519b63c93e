package parse

import (
	"errors"
	"fmt"
	"io"

	"github.com/signadot/irmap/ir"

	jsoniter "github.com/json-iterator/go"
)

func parseJSON(d []byte) (*ir.Node, error) {
	iter := jsoniter.ParseBytes(jsoniter.ConfigDefault, d)
	node, err := readJSON(iter)
	if err != nil {
		return nil, err
	}
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrParse, iter.Error)
	}
	// only whitespace may follow; reaching the end sets io.EOF
	iter.WhatIsNext()
	if !errors.Is(iter.Error, io.EOF) {
		return nil, ErrTrailing
	}
	return node, nil
}

func readJSON(iter *jsoniter.Iterator) (*ir.Node, error) {
	var (
		node *ir.Node
		err  error
	)
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		b := &objectBuilder{}
		iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
			val, verr := readJSON(iter)
			if verr == nil {
				verr = b.add(field, val)
			}
			err = verr
			return err == nil
		})
		node = b.node()
	case jsoniter.ArrayValue:
		var values []*ir.Node
		iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			val, verr := readJSON(iter)
			if verr != nil {
				err = verr
				return false
			}
			values = append(values, val)
			return true
		})
		node = ir.FromSlice(values)
	case jsoniter.StringValue:
		node = ir.FromString(iter.ReadString())
	case jsoniter.NumberValue:
		node = ir.FromFloat(iter.ReadFloat64())
	case jsoniter.BoolValue:
		node = ir.FromBool(iter.ReadBool())
	case jsoniter.NilValue:
		iter.ReadNil()
		node = ir.Null()
	default:
		if iter.Error == nil || errors.Is(iter.Error, io.EOF) {
			return nil, fmt.Errorf("%w: expected a json value", ErrParse)
		}
	}
	if err != nil {
		return nil, err
	}
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrParse, iter.Error)
	}
	return node, nil
}
