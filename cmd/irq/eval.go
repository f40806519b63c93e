package main

import (
	"fmt"
	"io"

	"github.com/signadot/irmap/debug"
	"github.com/signadot/irmap/gomap"
	"github.com/signadot/irmap/ir"

	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"
)

func eval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		cfg.Eval.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression", cli.ErrUsage)
	}
	file, err := optFile(args, 1, "eval <expr> [file]")
	if err != nil {
		return err
	}
	doc, err := readDoc(cfg.MainConfig, cc.In, file)
	if err != nil {
		return err
	}
	return evalExpr(cfg.MainConfig, cc.Out, doc, args[0])
}

func evalExpr(cfg *MainConfig, w io.Writer, doc *ir.Node, src string) error {
	var v any
	if err := gomap.Deserialize(doc, gomap.Any, &v, cfg.mapOpts()...); err != nil {
		return err
	}
	env := map[string]any{"doc": v}
	prg, err := expr.Compile(src, append(exprOpts(cfg, doc), expr.Env(env))...)
	if err != nil {
		return fmt.Errorf("error compiling %q: %w", src, err)
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return fmt.Errorf("error evaluating %q: %w", src, err)
	}
	if debug.Codec() {
		debug.LogAny(res)
	}
	node, err := gomap.Serialize(gomap.Any, res, cfg.mapOpts()...)
	if err != nil {
		return err
	}
	return writeNode(cfg, w, node)
}

func exprOpts(cfg *MainConfig, doc *ir.Node) []expr.Option {
	return []expr.Option{
		expr.Function("getnode", func(params ...any) (any, error) {
			node, err := doc.GetKPath(params[0].(string))
			if err != nil {
				return nil, err
			}
			if node.IsUndefined() {
				return nil, nil
			}
			var v any
			if err := gomap.Deserialize(node, gomap.Any, &v, cfg.mapOpts()...); err != nil {
				return nil, err
			}
			return v, nil
		},
			new(func(string) any)),
		expr.Function("hasnode", func(params ...any) (any, error) {
			node, err := doc.GetKPath(params[0].(string))
			if err != nil {
				return nil, err
			}
			return !node.IsUndefined(), nil
		},
			new(func(string) bool)),
	}
}
