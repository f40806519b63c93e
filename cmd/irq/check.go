package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/signadot/irmap/gomap"
	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"

	"github.com/google/uuid"
	"github.com/scott-cotton/cli"
)

type checkFunc func(doc *ir.Node, p *kpath.KPath, opts ...gomap.Option) (string, error)

func checker[T any](c gomap.Codec[T], show func(T) string) checkFunc {
	return func(doc *ir.Node, p *kpath.KPath, opts ...gomap.Option) (string, error) {
		var v T
		present, err := gomap.DeserializeOptionalNode(doc, p, c, &v, opts...)
		if err != nil {
			return "", err
		}
		if !present {
			return "absent", nil
		}
		return show(v), nil
	}
}

func sprint[T any](v T) string { return fmt.Sprint(v) }

var checkers = map[string]checkFunc{
	"bool":    checker(gomap.Bool, strconv.FormatBool),
	"int":     checker(gomap.Int, sprint[int]),
	"int8":    checker(gomap.Int8, sprint[int8]),
	"int16":   checker(gomap.Int16, sprint[int16]),
	"int32":   checker(gomap.Int32, sprint[int32]),
	"int64":   checker(gomap.Int64, sprint[int64]),
	"uint":    checker(gomap.Uint, sprint[uint]),
	"uint8":   checker(gomap.Uint8, sprint[uint8]),
	"uint16":  checker(gomap.Uint16, sprint[uint16]),
	"uint32":  checker(gomap.Uint32, sprint[uint32]),
	"uint64":  checker(gomap.Uint64, sprint[uint64]),
	"float32": checker(gomap.Float32, sprint[float32]),
	"float64": checker(gomap.Float64, sprint[float64]),
	"string":  checker(gomap.String, strconv.Quote),
	"char":    checker(gomap.Char, strconv.QuoteRune),
	"bytes":   checker(gomap.Bytes, base64.StdEncoding.EncodeToString),
	"time":    checker(gomap.Time, func(t time.Time) string { return t.Format(time.RFC3339Nano) }),
	"date":    checker(gomap.Date, func(t time.Time) string { return t.Format(time.DateOnly) }),
	"url":     checker(gomap.URL, func(u url.URL) string { return u.String() }),
	"uuid":    checker(gomap.UUID, uuid.UUID.String),
}

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Kinds {
		for _, k := range slices.Sorted(maps.Keys(checkers)) {
			fmt.Fprintf(cc.Out, "\t- %s\n", k)
		}
		return nil
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: check requires a kind and a path", cli.ErrUsage)
	}
	file, err := optFile(args, 2, "check <kind> <path> [file]")
	if err != nil {
		return err
	}
	doc, err := readDoc(cfg.MainConfig, cc.In, file)
	if err != nil {
		return err
	}
	ok, err := checkPath(cfg.MainConfig, cc.Out, doc, args[0], args[1])
	if err != nil {
		return err
	}
	if !ok {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkPath writes the value decoded at path, "absent", or the decoding
// error to w. It reports false when decoding failed.
func checkPath(cfg *MainConfig, w io.Writer, doc *ir.Node, kind, path string) (bool, error) {
	c, ok := checkers[kind]
	if !ok {
		return false, fmt.Errorf("%w: unknown kind %q", cli.ErrUsage, kind)
	}
	p, err := kpath.Parse(path)
	if err != nil {
		return false, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	res, err := c(doc, p, cfg.mapOpts()...)
	if err != nil {
		_, werr := fmt.Fprintln(w, err)
		return false, werr
	}
	_, err = fmt.Fprintln(w, res)
	return true, err
}
