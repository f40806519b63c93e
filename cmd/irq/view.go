package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return viewFile(cfg.MainConfig, cc.Out, cc.In, "")
	}
	for i, file := range args {
		if i > 0 && cfg.outFormat().IsYAML() {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
		if err := viewFile(cfg.MainConfig, cc.Out, cc.In, file); err != nil {
			return err
		}
	}
	return nil
}

func viewFile(cfg *MainConfig, w io.Writer, r io.Reader, file string) error {
	doc, err := readDoc(cfg, r, file)
	if err != nil {
		return err
	}
	if err := writeNode(cfg, w, doc); err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	return nil
}
