package gomap

import (
	"encoding/base64"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/signadot/irmap/ir"
)

// stringCodec builds a codec for a type represented by a String.
func stringCodec[T any](format func(T) (string, error), parse func(string) (T, error)) Codec[T] {
	return Func(
		func(v T) (*ir.Node, error) {
			s, err := format(v)
			if err != nil {
				return nil, err
			}
			return ir.FromString(s), nil
		},
		func(node *ir.Node, out *T) error {
			s, err := decodeString(node)
			if err != nil {
				return err
			}
			v, err := parse(s)
			if err != nil {
				return err
			}
			*out = v
			return nil
		})
}

var (
	// Bytes encodes as standard base64. Empty and nil slices encode as "".
	Bytes = stringCodec(
		func(b []byte) (string, error) { return base64.StdEncoding.EncodeToString(b), nil },
		func(s string) ([]byte, error) {
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, unmarshalErrorf(ErrInvalid, "String %q is not base64: %v", s, err)
			}
			return b, nil
		})

	// Time encodes as RFC 3339 with fractional seconds. The zero time encodes
	// as "".
	Time = timeCodec(time.RFC3339Nano)

	// Date encodes the date of a time as YYYY-MM-DD. The zero time encodes
	// as "". Decoded dates are in UTC.
	Date = timeCodec(time.DateOnly)

	URL = stringCodec(
		func(u url.URL) (string, error) { return u.String(), nil },
		func(s string) (url.URL, error) {
			u, err := url.Parse(s)
			if err != nil {
				return url.URL{}, unmarshalErrorf(ErrInvalid, "String %q is not a URL: %v", s, err)
			}
			return *u, nil
		})

	UUID = stringCodec(
		func(u uuid.UUID) (string, error) { return u.String(), nil },
		func(s string) (uuid.UUID, error) {
			u, err := uuid.Parse(s)
			if err != nil {
				return uuid.Nil, unmarshalErrorf(ErrInvalid, "String %q is not a UUID: %v", s, err)
			}
			return u, nil
		})

	// Node passes nodes through as deep copies.
	Node = Func(
		func(n *ir.Node) (*ir.Node, error) {
			if n.IsUndefined() {
				return nil, marshalErrorf(ErrUndefined, "cannot encode an undefined node")
			}
			return n.Clone(), nil
		},
		func(node *ir.Node, out **ir.Node) error {
			if node.IsUndefined() {
				return unmarshalErrorf(ErrUndefined, "cannot decode an undefined node")
			}
			*out = node.Clone()
			return nil
		})
)

func timeCodec(layout string) Codec[time.Time] {
	return stringCodec(
		func(t time.Time) (string, error) {
			if t.IsZero() {
				return "", nil
			}
			return t.Format(layout), nil
		},
		func(s string) (time.Time, error) {
			if s == "" {
				return time.Time{}, nil
			}
			t, err := time.Parse(layout, s)
			if err != nil {
				return time.Time{}, unmarshalErrorf(ErrInvalid, "String %q is not a time in layout %q", s, layout)
			}
			return t, nil
		})
}
