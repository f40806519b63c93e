package gomap

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/signadot/irmap/ir"
	"github.com/signadot/irmap/ir/kpath"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleTree() *ir.Node {
	return obj(
		"b", arr(
			ir.FromInt(1),
			obj("x", arr(ir.FromInt(1), ir.FromString("2020-01-01"), ir.FromInt(3))),
			ir.FromBool(true),
		),
	)
}

func TestSerialize(t *testing.T) {
	node, err := Serialize(Int32, -1)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(node, ir.FromInt(-1)) {
		t.Errorf("got %v, want -1", node)
	}

	boom := errors.New("boom")
	failing := Func(
		func(int) (*ir.Node, error) { return nil, boom },
		func(*ir.Node, *int) error { return boom })
	node, err = Serialize(failing, 1, WithLogger(discard()))
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want boom", err)
	}
	if !node.IsUndefined() {
		t.Errorf("got %v, want undefined", node)
	}

	_, err = Serialize(Node, ir.Undefined(), WithLogger(discard()))
	if !errors.Is(err, ErrUndefined) {
		t.Errorf("got %v, want ErrUndefined", err)
	}
}

func TestDeserialize(t *testing.T) {
	var v int32
	if err := Deserialize(ir.FromInt(-1), Int32, &v); err != nil {
		t.Fatal(err)
	}
	if v != -1 {
		t.Errorf("got %d, want -1", v)
	}
	for _, node := range []*ir.Node{nil, ir.Undefined()} {
		if err := Deserialize(node, Int32, &v, WithLogger(discard())); !errors.Is(err, ErrUndefined) {
			t.Errorf("got %v, want ErrUndefined", err)
		}
	}
}

func TestLargeIntegerBoundary(t *testing.T) {
	tests := []struct {
		v    int64
		want *ir.Node
	}{
		{9007199254740992, ir.FromInt(9007199254740992)},
		{9007199254740993, ir.FromString("9007199254740993")},
	}
	for _, tt := range tests {
		node, err := Serialize(Int64, tt.v)
		if err != nil {
			t.Fatal(err)
		}
		if !ir.Equal(node, tt.want) {
			t.Errorf("%d: got %v, want %v", tt.v, node, tt.want)
		}
		var back int64
		if err := Deserialize(node, Int64, &back); err != nil {
			t.Fatal(err)
		}
		if back != tt.v {
			t.Errorf("got %d, want %d", back, tt.v)
		}
	}
}

func TestDeserializeNode(t *testing.T) {
	tree := sampleTree()
	var d time.Time
	if err := DeserializeNode(tree, kpath.MustParse("b[1].x[1]"), Date, &d); err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC); !d.Equal(want) {
		t.Errorf("got %v, want %v", d, want)
	}
	var s string
	if err := DeserializeNode(tree, kpath.FromStrings("b", "1", "x", "1"), String, &s); err != nil {
		t.Fatal(err)
	}
	if s != "2020-01-01" {
		t.Errorf("got %q", s)
	}

	err := DeserializeNode(tree, kpath.MustParse("b[1].x[7]"), String, &s, WithLogger(discard()))
	checkErr(t, err, ErrNotFound, "b[1].x[7]")

	var ds []time.Time
	err = DeserializeNode(tree, kpath.MustParse("b[1].x"), SliceOf(Date), &ds, WithLogger(discard()))
	checkErr(t, err, ErrShape, "b[1].x[0]")
}

func TestDeserializeOptionalNode(t *testing.T) {
	tree := sampleTree()
	tests := []struct {
		name        string
		path        string
		wantPresent bool
		wantErr     error
		want        bool
	}{
		{name: "present", path: "b[2]", wantPresent: true, want: true},
		{name: "missing", path: "c"},
		{name: "missing index", path: "b[3]"},
		{name: "mismatch", path: "b[1]", wantErr: ErrShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got bool
			present, err := DeserializeOptionalNode(tree, kpath.MustParse(tt.path), Bool, &got, WithLogger(discard()))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if present != tt.wantPresent {
				t.Errorf("got present %t, want %t", present, tt.wantPresent)
			}
			if got != tt.want {
				t.Errorf("got %t, want %t", got, tt.want)
			}
		})
	}
}

func TestFailureLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var v uint8
	err := Deserialize(ir.FromInt(256), Uint8, &v, WithLogger(logger))
	if !errors.Is(err, ErrRange) {
		t.Fatalf("got %v, want ErrRange", err)
	}
	out := buf.String()
	for _, want := range []string{
		"level=WARN",
		`msg="deserialize failed"`,
		"type=uint8",
		"out of range for uint8 [0, 255]",
		"node=256",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q does not contain %q", out, want)
		}
	}

	buf.Reset()
	var s string
	err = DeserializeNode(sampleTree(), kpath.MustParse("b[0]"), String, &s,
		WithLogger(logger), WithLevel(slog.LevelError))
	if err == nil {
		t.Fatal("expected error")
	}
	out = buf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "path=b[0]") {
		t.Errorf("unexpected log %q", out)
	}

	buf.Reset()
	_ = Deserialize(ir.FromBool(true), Uint8, &v, WithLogger(logger), WithLevel(slog.LevelDebug))
	if buf.Len() != 0 {
		t.Errorf("got log %q below handler level", buf.String())
	}
}
