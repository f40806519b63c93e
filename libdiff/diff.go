package libdiff

import (
	"fmt"
	"strings"

	"github.com/signadot/irmap/encode"
	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Insert Op = iota
	Delete
	Replace
)

func (op Op) String() string {
	switch op {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	}
	return fmt.Sprintf("<op %d>", int(op))
}

// Change is one step of a diff. From is nil for insertions and To is nil
// for deletions. Text holds the character level diff of replaced Strings.
type Change struct {
	Op   Op
	Path *kpath.KPath
	From *ir.Node
	To   *ir.Node
	Text []diffpatch.Diff
}

// Diff returns the changes which transform from into to. It returns nil
// if the trees are equal.
func Diff(from, to *ir.Node) []Change {
	return diff(from, to, nil, nil)
}

func diff(from, to *ir.Node, at *kpath.KPath, res []Change) []Change {
	switch {
	case ir.Equal(from, to):
		return res
	case from.IsUndefined():
		return append(res, Change{Op: Insert, Path: at, To: to})
	case to.IsUndefined():
		return append(res, Change{Op: Delete, Path: at, From: from})
	case from.Type != to.Type:
		return append(res, Change{Op: Replace, Path: at, From: from, To: to})
	}
	switch from.Type {
	case ir.StringType:
		return append(res, diffString(from, to, at))
	case ir.ObjectType:
		return diffObject(from, to, at, res)
	case ir.ArrayType:
		return diffArray(from, to, at, res)
	}
	return append(res, Change{Op: Replace, Path: at, From: from, To: to})
}

func diffObject(from, to *ir.Node, at *kpath.KPath, res []Change) []Change {
	for i, f := range from.Fields {
		p := at.AppendField(f.String)
		j := to.FieldIndex(f.String)
		if j == -1 {
			res = append(res, Change{Op: Delete, Path: p, From: from.Values[i]})
			continue
		}
		res = diff(from.Values[i], to.Values[j], p, res)
	}
	for j, f := range to.Fields {
		if from.FieldIndex(f.String) == -1 {
			res = append(res, Change{Op: Insert, Path: at.AppendField(f.String), To: to.Values[j]})
		}
	}
	return res
}

func diffString(from, to *ir.Node, at *kpath.KPath) Change {
	dmp := diffpatch.New()
	doMultiLine := strings.Contains(from.String, "\n") && strings.Contains(to.String, "\n")
	diffs := dmp.DiffMain(from.String, to.String, doMultiLine)
	return Change{
		Op:   Replace,
		Path: at,
		From: from,
		To:   to,
		Text: dmp.DiffCleanupSemantic(diffs),
	}
}

func (c Change) String() string {
	return c.Format(false)
}

// Format renders c on one line as "+ path: value", "- path: value" or
// "~ path: from -> to". Replaced Strings sharing text with their
// replacement show the shared text with [-deleted-] and {+inserted+}
// parts instead.
func (c Change) Format(colorize bool) string {
	red, green := plain, plain
	if colorize {
		red = func(s string) string { return color.RedString("%s", s) }
		green = func(s string) string { return color.GreenString("%s", s) }
	}
	path := c.Path.String()
	if path == "" {
		path = "."
	}
	switch c.Op {
	case Insert:
		return green("+ " + path + ": " + text(c.To))
	case Delete:
		return red("- " + path + ": " + text(c.From))
	}
	if !sharesText(c.Text) {
		return "~ " + path + ": " + red(text(c.From)) + " -> " + green(text(c.To))
	}
	b := &strings.Builder{}
	b.WriteString("~ " + path + ": ")
	for _, d := range c.Text {
		switch d.Type {
		case diffpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffpatch.DiffDelete:
			b.WriteString(red("[-" + d.Text + "-]"))
		case diffpatch.DiffInsert:
			b.WriteString(green("{+" + d.Text + "+}"))
		}
	}
	return b.String()
}

func plain(s string) string { return s }

func sharesText(diffs []diffpatch.Diff) bool {
	for _, d := range diffs {
		if d.Type == diffpatch.DiffEqual && strings.TrimSpace(d.Text) != "" {
			return true
		}
	}
	return false
}

func text(node *ir.Node) string {
	s, err := encode.String(node, encode.EncodeWire(true))
	if err != nil {
		return "<" + node.Type.String() + ">"
	}
	return s
}
