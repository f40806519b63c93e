package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/signadot/irmap/encode"
	"github.com/signadot/irmap/format"
	"github.com/signadot/irmap/gomap"
	"github.com/signadot/irmap/parse"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`
	Verbose bool `cli:"name=v desc='log decoding diagnostics at debug level'"`

	InFormat, OutFormat *format.Format

	Main *cli.Command
	Log  *slog.Logger
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

// inFormat returns the format of the input file, taken from -x, then from
// the file suffix, defaulting to JSON.
func (cfg *MainConfig) inFormat(file string) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if f, err := format.FromSuffix(filepath.Ext(file)); err == nil {
		return f
	}
	return format.JSONFormat
}

func (cfg *MainConfig) parseOpts(file string) []parse.ParseOption {
	return []parse.ParseOption{parse.ParseFormat(cfg.inFormat(file))}
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return format.JSONFormat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.colorize(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) colorize(w io.Writer) bool {
	if !cfg.outFormat().IsText() {
		return false
	}
	if cfg.Color {
		color.NoColor = false
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return false
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.Log == nil {
		cfg.Log = newLogger(os.Stderr, cfg.Verbose)
	}
	return cfg.Log
}

func (cfg *MainConfig) mapOpts() []gomap.Option {
	return []gomap.Option{gomap.WithLogger(cfg.logger())}
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type HasConfig struct {
	*MainConfig

	Has *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse   bool `cli:"name=r desc='reverse the diff'"`
	JSONPatch bool `cli:"name=p desc='output the diff as a JSON patch'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig

	Patch *cli.Command
}

type EvalConfig struct {
	*MainConfig

	Eval *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Kinds bool `cli:"name=kinds desc='list the available kinds'"`

	Check *cli.Command
}
