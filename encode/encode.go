package encode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/signadot/irmap/format"
	"github.com/signadot/irmap/ir"

	yamltoken "github.com/goccy/go-yaml/token"
	jsoniter "github.com/json-iterator/go"
)

var ErrEncoding = errors.New("encoding error")

var json = jsoniter.Config{EscapeHTML: false}.Froze()

type EncState struct {
	indent int
	format format.Format
	wire   bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w in the configured format, JSON by default. Text
// formats end with a newline unless EncodeWire is set. Nothing is written
// if node cannot be encoded.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	buf := bytes.NewBuffer(nil)
	var err error
	switch es.format {
	case format.JSONFormat:
		err = encodeJSON(node, buf, es, 0)
	case format.YAMLFormat:
		if es.wire {
			err = encodeYAMLFlow(node, buf, es)
		} else {
			err = encodeYAML(node, buf, es, 0, yamlTop)
		}
	case format.MsgPackFormat:
		err = encodeMsgPack(node, buf)
	default:
		err = fmt.Errorf("%w: %d", format.ErrBadFormat, int(es.format))
	}
	if err != nil {
		return err
	}
	if es.format.IsText() && !es.wire {
		buf.WriteByte('\n')
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// String returns the encoding of node. Text is returned without its final
// newline.
func String(node *ir.Node, opts ...EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		return "", err
	}
	if FormatFromOpts(opts...).IsText() {
		return strings.TrimSuffix(buf.String(), "\n"), nil
	}
	return buf.String(), nil
}

func nodeType(node *ir.Node) ir.Type {
	if node == nil {
		return ir.UndefinedType
	}
	return node.Type
}

func undefinedError(es *EncState) error {
	return fmt.Errorf("%w: cannot encode an undefined node in %s", ErrEncoding, es.format)
}

// Color application helpers

func applyColor(es *EncState, nodeType ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(nodeType, attr, v)
}

func applyValueColor(es *EncState, nodeType ir.Type, v string) string {
	return applyColor(es, nodeType, ValueColor, v)
}

func writeNL(buf *bytes.Buffer, es *EncState, col int) {
	if es.wire {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", col))
}

// JSON

func quoteJSON(s string) string {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)
	stream.WriteString(s)
	return string(stream.Buffer())
}

func formatJSONNumber(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: cannot encode %v in json", ErrEncoding, f)
	}
	return ir.FormatNumber(f), nil
}

func encodeJSON(node *ir.Node, buf *bytes.Buffer, es *EncState, depth int) error {
	switch nodeType(node) {
	case ir.ObjectType:
		return encodeJSONObject(node, buf, es, depth)
	case ir.ArrayType:
		return encodeJSONArray(node, buf, es, depth)
	case ir.StringType:
		buf.WriteString(applyValueColor(es, ir.StringType, quoteJSON(node.String)))
	case ir.NumberType:
		v, err := formatJSONNumber(node.Number)
		if err != nil {
			return err
		}
		buf.WriteString(applyValueColor(es, ir.NumberType, v))
	case ir.BoolType:
		buf.WriteString(applyValueColor(es, ir.BoolType, strconv.FormatBool(node.Bool)))
	case ir.NullType:
		buf.WriteString(applyValueColor(es, ir.NullType, "null"))
	default:
		return undefinedError(es)
	}
	return nil
}

func encodeJSONObject(node *ir.Node, buf *bytes.Buffer, es *EncState, depth int) error {
	buf.WriteString(applyColor(es, ir.ObjectType, SepColor, "{"))
	for i, f := range node.Fields {
		if i > 0 {
			buf.WriteString(applyColor(es, ir.ObjectType, SepColor, ","))
		}
		writeNL(buf, es, (depth+1)*es.indent)
		buf.WriteString(applyColor(es, ir.ObjectType, FieldColor, quoteJSON(f.String)))
		buf.WriteString(applyColor(es, ir.ObjectType, SepColor, ":"))
		if !es.wire {
			buf.WriteByte(' ')
		}
		if err := encodeJSON(node.Values[i], buf, es, depth+1); err != nil {
			return err
		}
	}
	if len(node.Fields) != 0 {
		writeNL(buf, es, depth*es.indent)
	}
	buf.WriteString(applyColor(es, ir.ObjectType, SepColor, "}"))
	return nil
}

func encodeJSONArray(node *ir.Node, buf *bytes.Buffer, es *EncState, depth int) error {
	buf.WriteString(applyColor(es, ir.ArrayType, SepColor, "["))
	for i, v := range node.Values {
		if i > 0 {
			buf.WriteString(applyColor(es, ir.ArrayType, SepColor, ","))
		}
		writeNL(buf, es, (depth+1)*es.indent)
		if err := encodeJSON(v, buf, es, depth+1); err != nil {
			return err
		}
	}
	if len(node.Values) != 0 {
		writeNL(buf, es, depth*es.indent)
	}
	buf.WriteString(applyColor(es, ir.ArrayType, SepColor, "]"))
	return nil
}

// YAML

type yamlPos int

const (
	yamlTop yamlPos = iota
	yamlField
	yamlItem
)

var yamlKeywords = map[string]bool{
	"y": true, "n": true, "yes": true, "no": true, "on": true, "off": true,
	"true": true, "false": true, "null": true, "~": true,
	".inf": true, "-.inf": true, "+.inf": true, ".nan": true,
}

// needsYAMLQuote reports whether s would not read back as the same plain
// string.
func needsYAMLQuote(s string, flow bool) bool {
	if s == "" || yamlKeywords[strings.ToLower(s)] || yamltoken.IsNeedQuoted(s) {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' {
		return true
	}
	switch s[0] {
	case '*', '&', '%', '@', ':', '#', ',', '{', '[', '(', '-', '!', '|', '>', '\'', '"', '?', '`':
		return true
	}
	if strings.Contains(s, ": ") || strings.Contains(s, " #") || strings.HasSuffix(s, ":") {
		return true
	}
	if flow && strings.ContainsAny(s, ",[]{}") {
		return true
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return true
		}
	}
	return false
}

func yamlString(s string, flow bool) string {
	if needsYAMLQuote(s, flow) {
		return quoteJSON(s)
	}
	return s
}

func formatYAMLNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := ir.FormatNumber(f)
	// YAML floats need a '.' in an exponent's mantissa, 1e+21 reads as a string
	if i := strings.IndexByte(s, 'e'); i != -1 && !strings.Contains(s[:i], ".") {
		s = s[:i] + ".0" + s[i:]
	}
	return s
}

func yamlLeaf(node *ir.Node, es *EncState, flow bool) (string, error) {
	switch nodeType(node) {
	case ir.StringType:
		return applyValueColor(es, ir.StringType, yamlString(node.String, flow)), nil
	case ir.NumberType:
		return applyValueColor(es, ir.NumberType, formatYAMLNumber(node.Number)), nil
	case ir.BoolType:
		return applyValueColor(es, ir.BoolType, strconv.FormatBool(node.Bool)), nil
	case ir.NullType:
		return applyValueColor(es, ir.NullType, "null"), nil
	case ir.ObjectType:
		return applyColor(es, ir.ObjectType, SepColor, "{}"), nil
	case ir.ArrayType:
		return applyColor(es, ir.ArrayType, SepColor, "[]"), nil
	}
	return "", undefinedError(es)
}

// encodeYAML writes node in block style. Members of collections start at
// column col; pos tells what precedes node on the current line.
func encodeYAML(node *ir.Node, buf *bytes.Buffer, es *EncState, col int, pos yamlPos) error {
	if node.Len() == 0 {
		v, err := yamlLeaf(node, es, false)
		if err != nil {
			return err
		}
		if pos == yamlField {
			buf.WriteByte(' ')
		}
		buf.WriteString(v)
		return nil
	}
	if node.Type == ir.ObjectType {
		for i, f := range node.Fields {
			if i > 0 || pos == yamlField {
				writeNL(buf, es, col)
			}
			buf.WriteString(applyColor(es, ir.ObjectType, FieldColor, yamlString(f.String, false)))
			buf.WriteString(applyColor(es, ir.ObjectType, SepColor, ":"))
			if err := encodeYAML(node.Values[i], buf, es, col+es.indent, yamlField); err != nil {
				return err
			}
		}
		return nil
	}
	for i, v := range node.Values {
		if i > 0 || pos == yamlField {
			writeNL(buf, es, col)
		}
		buf.WriteString(applyColor(es, ir.ArrayType, SepColor, "-"))
		buf.WriteByte(' ')
		if err := encodeYAML(v, buf, es, col+2, yamlItem); err != nil {
			return err
		}
	}
	return nil
}

// encodeYAMLFlow writes node in flow style on a single line.
func encodeYAMLFlow(node *ir.Node, buf *bytes.Buffer, es *EncState) error {
	if node.Len() == 0 {
		v, err := yamlLeaf(node, es, true)
		if err != nil {
			return err
		}
		buf.WriteString(v)
		return nil
	}
	if node.Type == ir.ObjectType {
		buf.WriteString(applyColor(es, ir.ObjectType, SepColor, "{"))
		for i, f := range node.Fields {
			if i > 0 {
				buf.WriteString(applyColor(es, ir.ObjectType, SepColor, ","))
				buf.WriteByte(' ')
			}
			buf.WriteString(applyColor(es, ir.ObjectType, FieldColor, yamlString(f.String, true)))
			buf.WriteString(applyColor(es, ir.ObjectType, SepColor, ":"))
			buf.WriteByte(' ')
			if err := encodeYAMLFlow(node.Values[i], buf, es); err != nil {
				return err
			}
		}
		buf.WriteString(applyColor(es, ir.ObjectType, SepColor, "}"))
		return nil
	}
	buf.WriteString(applyColor(es, ir.ArrayType, SepColor, "["))
	for i, v := range node.Values {
		if i > 0 {
			buf.WriteString(applyColor(es, ir.ArrayType, SepColor, ","))
			buf.WriteByte(' ')
		}
		if err := encodeYAMLFlow(v, buf, es); err != nil {
			return err
		}
	}
	buf.WriteString(applyColor(es, ir.ArrayType, SepColor, "]"))
	return nil
}
