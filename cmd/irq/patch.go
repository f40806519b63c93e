package main

import (
	"fmt"

	"github.com/signadot/irmap/encode"
	"github.com/signadot/irmap/format"
	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/parse"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	file, err := optFile(args, 1, "patch <patchfile> [file]")
	if err != nil {
		return err
	}
	ops, err := readDoc(cfg.MainConfig, cc.In, args[0])
	if err != nil {
		return err
	}
	doc, err := readDoc(cfg.MainConfig, cc.In, file)
	if err != nil {
		return err
	}
	res, err := applyPatch(ops, doc)
	if err != nil {
		return fmt.Errorf("error patching: %w", err)
	}
	return writeNode(cfg.MainConfig, cc.Out, res)
}

// applyPatch applies the JSON patch ops, which may have been read from any
// format, to doc.
func applyPatch(ops, doc *ir.Node) (*ir.Node, error) {
	pd, err := wireJSON(ops)
	if err != nil {
		return nil, err
	}
	p, err := jsonpatch.DecodePatch(pd)
	if err != nil {
		return nil, err
	}
	dd, err := wireJSON(doc)
	if err != nil {
		return nil, err
	}
	res, err := p.Apply(dd)
	if err != nil {
		return nil, err
	}
	return parse.Parse(res, parse.ParseJSON())
}

func wireJSON(node *ir.Node) ([]byte, error) {
	s, err := encode.String(node, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true))
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
