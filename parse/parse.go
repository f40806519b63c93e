package parse

import (
	"fmt"

	"github.com/signadot/irmap/debug"
	"github.com/signadot/irmap/format"
	"github.com/signadot/irmap/ir"
)

// Parse reads a single document in the configured format, JSON by default.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, opt := range opts {
		opt(pOpts)
	}
	var (
		node *ir.Node
		err  error
	)
	switch pOpts.format {
	case format.JSONFormat:
		node, err = parseJSON(d)
	case format.YAMLFormat:
		node, err = parseYAML(d)
	case format.MsgPackFormat:
		node, err = parseMsgPack(d)
	default:
		return nil, fmt.Errorf("%w: %d", format.ErrBadFormat, int(pOpts.format))
	}
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parsed %d bytes of %s: %s\n", len(d), pOpts.format, node.Type)
	}
	return node, nil
}

// objectBuilder collects object members, rejecting repeated keys.
type objectBuilder struct {
	kvs  []ir.KeyVal
	seen map[string]struct{}
}

func (b *objectBuilder) add(key string, val *ir.Node) error {
	if b.seen == nil {
		b.seen = map[string]struct{}{}
	}
	if _, dup := b.seen[key]; dup {
		return fmt.Errorf("%w %q", ErrDuplicateKey, key)
	}
	b.seen[key] = struct{}{}
	b.kvs = append(b.kvs, ir.KeyVal{Key: key, Val: val})
	return nil
}

func (b *objectBuilder) node() *ir.Node {
	return ir.FromKeyVals(b.kvs)
}
