package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signadot/irmap/format"
	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/parse"

	"github.com/scott-cotton/cli"
)

func testConfig() *MainConfig {
	return &MainConfig{WireOut: true, Log: newLogger(io.Discard, false)}
}

func doc(t *testing.T, s string) *ir.Node {
	t.Helper()
	node, err := parse.Parse([]byte(s), parse.ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func TestMainCommand(t *testing.T) {
	cmd := MainCommand()
	if cmd == nil {
		t.Fatal("nil command")
	}
}

func TestInFormat(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		file string
		want format.Format
	}{
		{"", format.JSONFormat},
		{"-", format.JSONFormat},
		{"a.json", format.JSONFormat},
		{"dir/a.yml", format.YAMLFormat},
		{"a.yaml", format.YAMLFormat},
		{"a.mp", format.MsgPackFormat},
		{"a.txt", format.JSONFormat},
	}
	for _, tc := range tests {
		if got := cfg.inFormat(tc.file); got != tc.want {
			t.Errorf("%q: got %v want %v", tc.file, got, tc.want)
		}
	}
	y := format.YAMLFormat
	cfg.InFormat = &y
	if got := cfg.inFormat("a.json"); got != format.YAMLFormat {
		t.Errorf("-x ignored: got %v", got)
	}
}

func TestGetPath(t *testing.T) {
	d := doc(t, `{"a":{"b":[1,{"c":"x"}]}}`)
	tests := []struct {
		path  string
		found bool
		out   string
	}{
		{"a.b[1].c", true, `"x"`},
		{"a.b", true, `[1,{"c":"x"}]`},
		{"", true, `{"a":{"b":[1,{"c":"x"}]}}`},
		{"a.b[5]", false, ""},
		{"a.c", false, ""},
	}
	for _, tc := range tests {
		w := &bytes.Buffer{}
		found, err := getPath(testConfig(), w, d, tc.path)
		if err != nil {
			t.Errorf("%q: %v", tc.path, err)
			continue
		}
		if found != tc.found || w.String() != tc.out {
			t.Errorf("%q: got %v %q want %v %q", tc.path, found, w.String(), tc.found, tc.out)
		}
	}
	_, err := getPath(testConfig(), io.Discard, d, "a[")
	if !errors.Is(err, cli.ErrUsage) {
		t.Errorf("bad path: got %v", err)
	}
}

func TestHasPath(t *testing.T) {
	d := doc(t, `{"a":[null]}`)
	w := &bytes.Buffer{}
	for _, path := range []string{"a[0]", "a[1]"} {
		if _, err := hasPath(w, d, path); err != nil {
			t.Fatal(err)
		}
	}
	if got := w.String(); got != "true\nfalse\n" {
		t.Errorf("got %q", got)
	}
}

func TestViewFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.yaml")
	if err := os.WriteFile(file, []byte("a: 1\nb: [x, true]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w := &bytes.Buffer{}
	if err := viewFile(testConfig(), w, nil, file); err != nil {
		t.Fatal(err)
	}
	if got, want := w.String(), `{"a":1,"b":["x",true]}`; got != want {
		t.Errorf("got %s want %s", got, want)
	}

	w.Reset()
	if err := viewFile(testConfig(), w, strings.NewReader(`[1,2]`), ""); err != nil {
		t.Fatal(err)
	}
	if got := w.String(); got != `[1,2]` {
		t.Errorf("stdin: got %s", got)
	}

	if err := viewFile(testConfig(), w, nil, filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDiffDocs(t *testing.T) {
	a := doc(t, `{"a":1,"b":[1,2]}`)
	b := doc(t, `{"a":2,"b":[1]}`)
	tests := []struct {
		name string
		cfg  DiffConfig
		want string
	}{
		{"lines", DiffConfig{}, "~ a: 1 -> 2\n- b[1]: 2\n"},
		{"reverse", DiffConfig{Reverse: true}, "+ b[1]: 2\n~ a: 2 -> 1\n"},
		{"patch", DiffConfig{JSONPatch: true}, `[{"op":"replace","path":"/a","value":2},{"op":"remove","path":"/b/1"}]` + "\n"},
	}
	for _, tc := range tests {
		cfg := tc.cfg
		cfg.MainConfig = testConfig()
		w := &bytes.Buffer{}
		differs, err := diffDocs(&cfg, w, a, b)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !differs || w.String() != tc.want {
			t.Errorf("%s: got %v %q want %q", tc.name, differs, w.String(), tc.want)
		}
	}
	cfg := &DiffConfig{MainConfig: testConfig()}
	differs, err := diffDocs(cfg, io.Discard, a, a.Clone())
	if err != nil || differs {
		t.Errorf("equal docs: got %v %v", differs, err)
	}
}

func TestApplyPatch(t *testing.T) {
	ops := doc(t, `[{"op":"add","path":"/b/-","value":3},{"op":"remove","path":"/a"}]`)
	got, err := applyPatch(ops, doc(t, `{"a":1,"b":[1]}`))
	if err != nil {
		t.Fatal(err)
	}
	if want := doc(t, `{"b":[1,3]}`); !ir.Equal(got, want) {
		t.Errorf("got %v", got)
	}

	ops = doc(t, `[{"op":"remove","path":"/nope"}]`)
	if _, err := applyPatch(ops, doc(t, `{}`)); err == nil {
		t.Error("expected an error removing a missing member")
	}
}

func TestEvalExpr(t *testing.T) {
	d := doc(t, `{"a":2,"b":[true,"x"]}`)
	tests := []struct {
		src  string
		want string
	}{
		{`doc.a + 1`, `3`},
		{`hasnode("b[0]")`, `true`},
		{`hasnode("b[2]")`, `false`},
		{`getnode("b[1]")`, `"x"`},
		{`getnode("c")`, `null`},
		{`len(doc.b)`, `2`},
	}
	for _, tc := range tests {
		w := &bytes.Buffer{}
		if err := evalExpr(testConfig(), w, d, tc.src); err != nil {
			t.Errorf("%s: %v", tc.src, err)
			continue
		}
		if got := w.String(); got != tc.want {
			t.Errorf("%s: got %s want %s", tc.src, got, tc.want)
		}
	}
	if err := evalExpr(testConfig(), io.Discard, d, `doc.a +`); err == nil {
		t.Error("expected a compile error")
	}
}

func TestCheckPath(t *testing.T) {
	d := doc(t, `{"n":300,"s":"hi","t":"2024-01-02T03:04:05Z","u":"not a uuid","f":1.5,"l":[1,2]}`)
	tests := []struct {
		kind, path string
		ok         bool
		out        string
	}{
		{"int16", "n", true, "300"},
		{"uint8", "n", false, "out of range"},
		{"float32", "f", true, "1.5"},
		{"string", "s", true, `"hi"`},
		{"char", "s", false, "not a single character"},
		{"time", "t", true, "2024-01-02T03:04:05Z"},
		{"bool", "missing", true, "absent"},
		{"int", "l[1]", true, "2"},
		{"int", "l[2]", true, "absent"},
		{"uuid", "u", false, "not a UUID"},
		{"string", "l", false, "expected String"},
	}
	for _, tc := range tests {
		w := &bytes.Buffer{}
		ok, err := checkPath(testConfig(), w, d, tc.kind, tc.path)
		if err != nil {
			t.Errorf("%s %s: %v", tc.kind, tc.path, err)
			continue
		}
		if ok != tc.ok || !strings.Contains(w.String(), tc.out) {
			t.Errorf("%s %s: got %v %q want %v %q", tc.kind, tc.path, ok, w.String(), tc.ok, tc.out)
		}
	}
	if _, err := checkPath(testConfig(), io.Discard, d, "complex", "n"); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("unknown kind: got %v", err)
	}
}
