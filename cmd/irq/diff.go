package main

import (
	"fmt"
	"io"

	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readDoc(cfg.MainConfig, cc.In, args[0])
	if err != nil {
		return err
	}
	b, err := readDoc(cfg.MainConfig, cc.In, args[1])
	if err != nil {
		return err
	}
	differs, err := diffDocs(cfg, cc.Out, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffDocs(cfg *DiffConfig, w io.Writer, a, b *ir.Node) (bool, error) {
	changes := libdiff.Diff(a, b)
	if changes == nil {
		return false, nil
	}
	if cfg.Reverse {
		changes = libdiff.Reverse(changes)
	}
	if cfg.JSONPatch {
		d, err := libdiff.JSONPatch(changes)
		if err != nil {
			return true, err
		}
		_, err = w.Write(append(d, '\n'))
		return true, err
	}
	colorize := cfg.colorize(w)
	for _, c := range changes {
		if _, err := fmt.Fprintln(w, c.Format(colorize)); err != nil {
			return true, err
		}
	}
	return true, nil
}
