package libdiff

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffArray aligns the elements of two arrays by diffing sequences of
// element summaries:
//
//  1. each element is summarized by its type and, for scalars other than
//     multi line strings, its value
//  2. the sequences of summaries are diffed as runes
//  3. aligned elements are diffed recursively
//  4. a deleted element followed by an inserted one is a replacement
func diffArray(from, to *ir.Node, at *kpath.KPath, res []Change) []Change {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti, ri := 0, 0, 0
	var deleted []*ir.Node
	flush := func() {
		for _, d := range deleted {
			res = append(res, Change{Op: Delete, Path: at.AppendIndex(ri), From: d})
		}
		deleted = nil
	}
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffpatch.DiffDelete:
			deleted = append(deleted, from.Values[fi:fi+n]...)
			fi += n
		case diffpatch.DiffInsert:
			for range n {
				if len(deleted) != 0 {
					res = diff(deleted[0], to.Values[ti], at.AppendIndex(ri), res)
					deleted = deleted[1:]
				} else {
					res = append(res, Change{Op: Insert, Path: at.AppendIndex(ri), To: to.Values[ti]})
				}
				ti++
				ri++
			}
		case diffpatch.DiffEqual:
			flush()
			for range n {
				res = diff(from.Values[fi], to.Values[ti], at.AppendIndex(ri), res)
				fi++
				ti++
				ri++
			}
		}
	}
	flush()
	return res
}

func mapValues(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		sum := summaryStr(v)
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func summaryStr(node *ir.Node) string {
	switch node.Type {
	case ir.ObjectType, ir.ArrayType, ir.NullType:
		return node.Type.String()
	case ir.BoolType:
		return node.Type.String() + "-" + strconv.FormatBool(node.Bool)
	case ir.StringType:
		if strings.Contains(node.String, "\n") {
			return node.Type.String() + "/m"
		}
		return node.Type.String() + "-" + node.String
	case ir.NumberType:
		return node.Type.String() + "-" + ir.FormatNumber(node.Number)
	}
	return node.Type.String()
}
