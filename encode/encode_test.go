package encode

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/signadot/irmap/format"
	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/parse"
)

func sample() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString("alice")},
		{Key: "age", Val: ir.FromInt(30)},
		{Key: "tags", Val: ir.FromSlice([]*ir.Node{
			ir.FromString("a"),
			ir.FromKeyVals([]ir.KeyVal{
				{Key: "x", Val: ir.FromFloat(1.5)},
				{Key: "y", Val: ir.Null()},
			}),
		})},
		{Key: "empty", Val: ir.FromKeyVals(nil)},
		{Key: "ok", Val: ir.FromBool(true)},
	})
}

func TestEncodeJSON(t *testing.T) {
	got, err := String(sample())
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "name": "alice",
  "age": 30,
  "tags": [
    "a",
    {
      "x": 1.5,
      "y": null
    }
  ],
  "empty": {},
  "ok": true
}`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeWire(t *testing.T) {
	tests := []struct {
		format format.Format
		want   string
	}{
		{format.JSONFormat, `{"name":"alice","age":30,"tags":["a",{"x":1.5,"y":null}],"empty":{},"ok":true}`},
		{format.YAMLFormat, `{name: alice, age: 30, tags: [a, {x: 1.5, "y": null}], empty: {}, ok: true}`},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			got, err := String(sample(), EncodeFormat(tt.format), EncodeWire(true))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
			checkReparse(t, got, tt.format, sample())
		})
	}
}

func checkReparse(t *testing.T, doc string, f format.Format, want *ir.Node) {
	t.Helper()
	back, err := parse.Parse([]byte(doc), parse.ParseFormat(f))
	if err != nil {
		t.Fatalf("reparse %s: %v\n%s", f, err, doc)
	}
	if !ir.Equal(back, want) {
		t.Errorf("reparse %s: got %s, want %s", f, MustString(back), MustString(want))
	}
}

func TestEncodeYAML(t *testing.T) {
	got, err := String(sample(), EncodeFormat(format.YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	want := `name: alice
age: 30
tags:
  - a
  - x: 1.5
    "y": null
empty: {}
ok: true`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	checkReparse(t, got, format.YAMLFormat, sample())
}

func TestEncodeYAMLNested(t *testing.T) {
	node := ir.FromSlice([]*ir.Node{
		ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)}),
		ir.FromKeyVals([]ir.KeyVal{{Key: "k", Val: ir.FromSlice([]*ir.Node{ir.FromInt(3)})}}),
	})
	got, err := String(node, EncodeFormat(format.YAMLFormat), EncodeIndent(4))
	if err != nil {
		t.Fatal(err)
	}
	want := `- - 1
  - 2
- k:
      - 3`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestYAMLQuoting(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"two words", "two words"},
		{"", `""`},
		{"true", `"true"`},
		{"No", `"No"`},
		{"null", `"null"`},
		{"42", `"42"`},
		{"1e3", `"1e3"`},
		{"- item", `"- item"`},
		{"a: b", `"a: b"`},
		{"line\nbreak", `"line\nbreak"`},
		{" padded", `" padded"`},
		{"#comment", `"#comment"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := String(ir.FromString(tt.in), EncodeFormat(format.YAMLFormat))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeNumbers(t *testing.T) {
	tests := []struct {
		f    float64
		json string
		yaml string
	}{
		{0, "0", "0"},
		{-1, "-1", "-1"},
		{0.1, "0.1", "0.1"},
		{1 << 53, "9007199254740992", "9007199254740992"},
		{1e21, "1e+21", "1.0e+21"},
		{1e-7, "1e-07", "1.0e-07"},
		{1.5e300, "1.5e+300", "1.5e+300"},
		{-2e-300, "-2e-300", "-2.0e-300"},
		{math.Inf(1), "", ".inf"},
		{math.NaN(), "", ".nan"},
	}
	for _, tt := range tests {
		got, err := String(ir.FromFloat(tt.f))
		if tt.json == "" {
			if !errors.Is(err, ErrEncoding) {
				t.Errorf("%v: got %v, want ErrEncoding", tt.f, err)
			}
		} else if got != tt.json {
			t.Errorf("%v: got json %s, want %s", tt.f, got, tt.json)
		}
		got, err = String(ir.FromFloat(tt.f), EncodeFormat(format.YAMLFormat))
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.yaml {
			t.Errorf("%v: got yaml %s, want %s", tt.f, got, tt.yaml)
		}
		if tt.json != "" {
			checkReparse(t, got, format.YAMLFormat, ir.FromFloat(tt.f))
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	bad := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.Undefined()})
	for _, f := range format.AllFormats() {
		var buf bytes.Buffer
		if err := Encode(bad, &buf, EncodeFormat(f)); !errors.Is(err, ErrEncoding) {
			t.Errorf("%s: got %v, want ErrEncoding", f, err)
		}
		if buf.Len() != 0 {
			t.Errorf("%s: wrote %q on failure", f, buf.String())
		}
	}
	if err := Encode(ir.Null(), &bytes.Buffer{}, EncodeFormat(format.Format(7))); !errors.Is(err, format.ErrBadFormat) {
		t.Errorf("got %v, want ErrBadFormat", err)
	}
}

func TestEncodeNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(ir.FromInt(1), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "1\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestEncodeMsgPack(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromInt(1)},
		{Key: "b", Val: ir.FromSlice([]*ir.Node{ir.FromBool(true), ir.Null()})},
	})
	got, err := String(node, EncodeFormat(format.MsgPackFormat))
	if err != nil {
		t.Fatal(err)
	}
	// fixmap(2) "a" 1 "b" fixarray(2) true nil
	want := "\x82\xa1a\x01\xa1b\x92\xc3\xc0"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestColors(t *testing.T) {
	colors := &Colors{
		Default: colorDefault,
		Map: map[Colorable]func(string, ...any) string{
			{Type: ir.ObjectType, Attr: FieldColor}: func(s string, _ ...any) string { return "<" + s + ">" },
			{Type: ir.NumberType, Attr: ValueColor}: func(s string, _ ...any) string { return "#" + s },
		},
	}
	node := ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromInt(1)}})
	got, err := String(node, EncodeWire(true), EncodeColors(colors))
	if err != nil {
		t.Fatal(err)
	}
	if want := `{<"a">:#1}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if NewColors().Get(ir.StringType, ValueColor) == nil {
		t.Error("no string color")
	}
}

func TestMustString(t *testing.T) {
	if got := MustString(ir.FromString("x")); got != `"x"` {
		t.Errorf("got %s", got)
	}
	defer func() {
		if r := recover(); r == nil || !strings.Contains(r.(error).Error(), "undefined") {
			t.Errorf("unexpected recover %v", r)
		}
	}()
	MustString(nil)
}
