package main

import (
	"fmt"
	"io"

	"github.com/signadot/irmap/ir"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path argument", cli.ErrUsage)
	}
	file, err := optFile(args, 1, "get <path> [file]")
	if err != nil {
		return err
	}
	doc, err := readDoc(cfg.MainConfig, cc.In, file)
	if err != nil {
		return err
	}
	found, err := getPath(cfg.MainConfig, cc.Out, doc, args[0])
	if err != nil {
		return err
	}
	if !found {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func getPath(cfg *MainConfig, w io.Writer, doc *ir.Node, path string) (bool, error) {
	node, err := doc.GetKPath(path)
	if err != nil {
		return false, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if node.IsUndefined() {
		cfg.logger().Debug("path does not resolve", "path", path)
		return false, nil
	}
	return true, writeNode(cfg, w, node)
}

func has(cfg *HasConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Has.Parse(cc, args)
	if err != nil {
		cfg.Has.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: has requires a path argument", cli.ErrUsage)
	}
	file, err := optFile(args, 1, "has <path> [file]")
	if err != nil {
		return err
	}
	doc, err := readDoc(cfg.MainConfig, cc.In, file)
	if err != nil {
		return err
	}
	found, err := hasPath(cc.Out, doc, args[0])
	if err != nil {
		return err
	}
	if !found {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func hasPath(w io.Writer, doc *ir.Node, path string) (bool, error) {
	node, err := doc.GetKPath(path)
	if err != nil {
		return false, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	found := !node.IsUndefined()
	if _, err := fmt.Fprintln(w, found); err != nil {
		return false, err
	}
	return found, nil
}
