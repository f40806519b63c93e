package gomap

import (
	"iter"

	"github.com/signadot/irmap/ir"
)

// MultiMap maps keys to one or more values. Keys are kept in the order
// they were first added and values in the order they were added.
// The zero value is an empty MultiMap ready to use.
type MultiMap[K comparable, V any] struct {
	keys   []K
	values map[K][]V
	n      int
}

func NewMultiMap[K comparable, V any]() *MultiMap[K, V] {
	return &MultiMap[K, V]{}
}

// Add appends v to the values of k.
func (m *MultiMap[K, V]) Add(k K, v V) {
	if m.values == nil {
		m.values = map[K][]V{}
	}
	vs, ok := m.values[k]
	if !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = append(vs, v)
	m.n++
}

// Values returns the values of k in insertion order.
func (m *MultiMap[K, V]) Values(k K) []V {
	if m == nil {
		return nil
	}
	return m.values[k]
}

// Keys returns the distinct keys in first insertion order.
func (m *MultiMap[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of key/value pairs.
func (m *MultiMap[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.n
}

// All iterates over all key/value pairs, grouped by key.
func (m *MultiMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.Keys() {
			for _, v := range m.values[k] {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

type multiMapCodec[K comparable, V any] struct {
	key Codec[K]
	val Codec[V]
}

// MultiMapOf returns the codec for multi maps. Each distinct key becomes one
// object member holding an Array of its values. Decoding adds each element
// of each member's Array as a separate pair.
func MultiMapOf[K comparable, V any](key Codec[K], val Codec[V]) Codec[*MultiMap[K, V]] {
	return multiMapCodec[K, V]{key: key, val: val}
}

func (c multiMapCodec[K, V]) ToIR(m *MultiMap[K, V]) (*ir.Node, error) {
	keys := m.Keys()
	entries := make([]entry[K, []V], len(keys))
	for i, k := range keys {
		entries[i] = entry[K, []V]{key: k, val: m.values[k]}
	}
	kvs, err := encodeEntries(c.key, SliceOf(c.val), entries)
	if err != nil {
		return nil, err
	}
	return ir.FromKeyVals(kvs), nil
}

func (c multiMapCodec[K, V]) FromIR(node *ir.Node, out **MultiMap[K, V]) error {
	res := NewMultiMap[K, V]()
	err := decodeEntries(c.key, SliceOf(c.val), node, func(k K, vs []V) {
		for _, v := range vs {
			res.Add(k, v)
		}
	})
	if err != nil {
		return err
	}
	*out = res
	return nil
}
