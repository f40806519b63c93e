package gomap

import (
	"context"
	"log/slog"

	"github.com/signadot/irmap/encode"
	"github.com/signadot/irmap/ir"
)

// Option configures the entry points of this package.
type Option func(*config)

type config struct {
	logger *slog.Logger
	level  slog.Level
}

func newConfig(opts []Option) *config {
	cfg := &config{
		logger: slog.Default(),
		level:  slog.LevelWarn,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the logger failures are reported to. The default is
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLevel sets the level failures are reported at. The default is
// slog.LevelWarn.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// report logs a failed operation on a value of type typ.
func (c *config) report(op, typ string, err error, node *ir.Node) {
	ctx := context.Background()
	if !c.logger.Enabled(ctx, c.level) {
		return
	}
	attrs := []slog.Attr{
		slog.String("type", typ),
		slog.String("error", err.Error()),
	}
	if p := errorPath(err); p != nil {
		attrs = append(attrs, slog.String("path", p.String()))
	}
	if node != nil {
		attrs = append(attrs, slog.String("node", nodeText(node)))
	}
	c.logger.LogAttrs(ctx, c.level, op+" failed", attrs...)
}

func nodeText(node *ir.Node) string {
	if node.IsUndefined() {
		return "<undefined>"
	}
	s, err := encode.String(node, encode.EncodeWire(true))
	if err != nil {
		return "<" + node.Type.String() + ">"
	}
	return s
}
