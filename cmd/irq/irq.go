package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signadot/irmap/encode"
	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/parse"

	"github.com/scott-cotton/cli"
)

func irqMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// readDoc parses the document in file, or in r when file is "" or "-".
func readDoc(cfg *MainConfig, r io.Reader, file string) (*ir.Node, error) {
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", file, err)
	}
	node, err := parse.Parse(d, cfg.parseOpts(file)...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %q: %w", file, err)
	}
	return node, nil
}

// optFile returns the optional file argument following n required ones.
func optFile(args []string, n int, synopsis string) (string, error) {
	switch len(args) {
	case n:
		return "", nil
	case n + 1:
		return args[n], nil
	}
	return "", fmt.Errorf("%w: usage: %s", cli.ErrUsage, synopsis)
}

func writeNode(cfg *MainConfig, w io.Writer, node *ir.Node) error {
	if err := encode.Encode(node, w, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
