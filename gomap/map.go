package gomap

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"
)

type entry[K, V any] struct {
	key K
	val V
}

// encodeEntries converts entries in order to object members, failing if
// two keys encode to the same text.
func encodeEntries[K, V any](kc Codec[K], vc Codec[V], entries []entry[K, V]) ([]ir.KeyVal, error) {
	kvs := make([]ir.KeyVal, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		key, err := encodeKey(kc, e.key)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[key]; ok {
			return nil, &MarshalError{
				Path:    kpath.Field(key),
				Message: "distinct keys encode to the same key " + kpath.Field(key).String(),
				Err:     ErrDuplicate,
			}
		}
		seen[key] = struct{}{}
		val, err := encodeMember(vc, e.val, kpath.Field(key))
		if err != nil {
			return nil, err
		}
		kvs[i] = ir.KeyVal{Key: key, Val: val}
	}
	return kvs, nil
}

// decodeEntries converts the members of an object in order, calling add for
// each. Two members whose keys decode to the same value fail.
func decodeEntries[K comparable, V any](kc Codec[K], vc Codec[V], node *ir.Node, add func(K, V)) error {
	if typeOf(node) != ir.ObjectType {
		return shapeError(node, ir.ObjectType)
	}
	seen := make(map[K]struct{}, len(node.Fields))
	for i, f := range node.Fields {
		seg := kpath.Field(f.String)
		var k K
		if err := decodeKey(kc, f.String, &k); err != nil {
			return unmarshalAt(err, seg)
		}
		if _, ok := seen[k]; ok {
			return &UnmarshalError{
				Path:    seg,
				Message: "key decodes to the same value as an earlier key",
				Err:     ErrDuplicate,
			}
		}
		seen[k] = struct{}{}
		var v V
		if err := decodeMember(vc, node.Values[i], &v, seg); err != nil {
			return err
		}
		add(k, v)
	}
	return nil
}

type mapCodec[K comparable, V any] struct {
	key Codec[K]
	val Codec[V]
}

// MapOf returns the codec for maps whose keys use key and values use val.
// Members are ordered by key text. Key codecs must produce Strings or Numbers
// and decode Strings.
func MapOf[K comparable, V any](key Codec[K], val Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key: key, val: val}
}

func (c mapCodec[K, V]) ToIR(m map[K]V) (*ir.Node, error) {
	entries := make([]entry[K, V], 0, len(m))
	for k, v := range m {
		entries = append(entries, entry[K, V]{key: k, val: v})
	}
	kvs, err := encodeEntries(c.key, c.val, entries)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(kvs, func(a, b ir.KeyVal) int {
		return strings.Compare(a.Key, b.Key)
	})
	return ir.FromKeyVals(kvs), nil
}

func (c mapCodec[K, V]) FromIR(node *ir.Node, out *map[K]V) error {
	res := make(map[K]V, node.Len())
	if err := decodeEntries(c.key, c.val, node, func(k K, v V) { res[k] = v }); err != nil {
		return err
	}
	*out = res
	return nil
}

type sortedMapCodec[K cmp.Ordered, V any] struct {
	mapCodec[K, V]
}

// SortedMapOf is like MapOf but orders members by the natural order of
// the keys.
func SortedMapOf[K cmp.Ordered, V any](key Codec[K], val Codec[V]) Codec[map[K]V] {
	return sortedMapCodec[K, V]{mapCodec[K, V]{key: key, val: val}}
}

func (c sortedMapCodec[K, V]) ToIR(m map[K]V) (*ir.Node, error) {
	keys := slices.Sorted(maps.Keys(m))
	entries := make([]entry[K, V], len(keys))
	for i, k := range keys {
		entries[i] = entry[K, V]{key: k, val: m[k]}
	}
	kvs, err := encodeEntries(c.key, c.val, entries)
	if err != nil {
		return nil, err
	}
	return ir.FromKeyVals(kvs), nil
}
