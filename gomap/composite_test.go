package gomap

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/signadot/irmap/ir"
)

func obj(kvs ...any) *ir.Node {
	res := make([]ir.KeyVal, 0, len(kvs)/2)
	for i := 0; i < len(kvs); i += 2 {
		res = append(res, ir.KeyVal{Key: kvs[i].(string), Val: kvs[i+1].(*ir.Node)})
	}
	return ir.FromKeyVals(res)
}

func arr(vs ...*ir.Node) *ir.Node {
	return ir.FromSlice(vs)
}

func nums(vs ...float64) *ir.Node {
	res := make([]*ir.Node, len(vs))
	for i, v := range vs {
		res[i] = ir.FromFloat(v)
	}
	return ir.FromSlice(res)
}

// checkErr checks that err wraps want and is located at path.
func checkErr(t *testing.T, err, want error, path string) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("got error %v, want %v", err, want)
	}
	if got := errorPath(err).String(); got != path {
		t.Errorf("got error path %q, want %q", got, path)
	}
}

func TestPair(t *testing.T) {
	c := PairOf(Int, String)
	node, err := c.ToIR(Pair[int, string]{First: 1, Second: "x"})
	if err != nil {
		t.Fatal(err)
	}
	want := obj("first", ir.FromInt(1), "second", ir.FromString("x"))
	if !ir.Equal(node, want) {
		t.Errorf("got %v, want %v", node, want)
	}

	var p Pair[int, string]
	if err := c.FromIR(obj("second", ir.FromString("y"), "first", ir.FromInt(2)), &p); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Pair[int, string]{First: 2, Second: "y"}, p); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	checkErr(t, c.FromIR(obj("first", ir.FromInt(1)), &p), ErrMissing, "second")
	checkErr(t, c.FromIR(obj("first", ir.FromInt(1), "third", ir.FromInt(3)), &p), ErrMissing, "second")
	checkErr(t, c.FromIR(obj("first", ir.FromInt(1), "second", ir.FromString("x"), "third", ir.Null()), &p), ErrArity, "")
	checkErr(t, c.FromIR(obj("first", ir.FromString("one"), "second", ir.FromString("x")), &p), ErrInvalid, "first")
	checkErr(t, c.FromIR(arr(), &p), ErrShape, "")
}

func TestSlice(t *testing.T) {
	c := SliceOf(Int)
	node, err := c.ToIR(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(node, arr()) {
		t.Errorf("nil slice: got %v, want []", node)
	}
	var got []int
	if err := c.FromIR(nums(1, 2, 3), &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	checkErr(t, c.FromIR(arr(ir.FromInt(1), ir.FromBool(true)), &got), ErrShape, "[1]")
}

func TestNestedErrorPath(t *testing.T) {
	c := SliceOf(MapOf(String, Int))
	var got []map[string]int
	err := c.FromIR(arr(obj("a", ir.FromInt(1)), obj("b", ir.FromString("x"))), &got)
	checkErr(t, err, ErrInvalid, "[1].b")
	if want := `unmarshal error at [1].b: String "x" is not a number`; err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestPtr(t *testing.T) {
	c := PtrOf(String)
	node, err := c.ToIR(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !node.IsNull() {
		t.Errorf("got %v, want null", node)
	}
	s := "x"
	p := &s
	if err := c.FromIR(ir.Null(), &p); err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Errorf("got %v, want nil", *p)
	}
	if err := c.FromIR(ir.FromString("y"), &p); err != nil {
		t.Fatal(err)
	}
	if p == nil || *p != "y" {
		t.Errorf("got %v, want y", p)
	}
}

func TestSet(t *testing.T) {
	c := SetOf(Int)
	node, err := c.ToIR(map[int]struct{}{3: {}, 1: {}, 2: {}})
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(node, nums(1, 2, 3)) {
		t.Errorf("got %v, want [1, 2, 3]", node)
	}

	var got map[int]struct{}
	if err := c.FromIR(nums(2, 1), &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[int]struct{}{1: {}, 2: {}}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	checkErr(t, c.FromIR(nums(1, 1), &got), ErrDuplicate, "[1]")
	// 1 and 1.2 both round to 1
	checkErr(t, c.FromIR(nums(1, 1.2), &got), ErrDuplicate, "[1]")
}

func TestSetEncodeCollision(t *testing.T) {
	mod := Func(
		func(v int) (*ir.Node, error) { return ir.FromInt(int64(v % 10)), nil },
		func(node *ir.Node, out *int) error { return Int.FromIR(node, out) })
	_, err := SetOf(mod).ToIR(map[int]struct{}{1: {}, 11: {}})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("got %v, want ErrDuplicate", err)
	}
}

func TestMap(t *testing.T) {
	m := map[int]string{2: "b", 10: "a"}
	node, err := MapOf(Int, String).ToIR(m)
	if err != nil {
		t.Fatal(err)
	}
	want := obj("10", ir.FromString("a"), "2", ir.FromString("b"))
	if diff := cmp.Diff(keys(want), keys(node)); diff != "" {
		t.Errorf("MapOf key order (-want +got):\n%s", diff)
	}
	node, err = SortedMapOf(Int, String).ToIR(m)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"2", "10"}, keys(node)); diff != "" {
		t.Errorf("SortedMapOf key order (-want +got):\n%s", diff)
	}

	var got map[int]string
	if err := MapOf(Int, String).FromIR(node, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func keys(node *ir.Node) []string {
	var res []string
	for _, kv := range node.KeyVals() {
		res = append(res, kv.Key)
	}
	return res
}

func TestMapKeyErrors(t *testing.T) {
	mod := Func(
		func(v int) (*ir.Node, error) { return ir.FromString(strconv.Itoa(v % 10)), nil },
		func(node *ir.Node, out *int) error { return Int.FromIR(node, out) })
	_, err := MapOf(mod, Bool).ToIR(map[int]bool{1: true, 11: false})
	checkErr(t, err, ErrDuplicate, "1")

	_, err = MapOf(Bool, Int).ToIR(map[bool]int{true: 1})
	checkErr(t, err, ErrKey, "")

	var got map[int]string
	err = MapOf(Int, String).FromIR(obj("1", ir.FromString("a"), "01", ir.FromString("b")), &got)
	checkErr(t, err, ErrDuplicate, "01")

	err = MapOf(Int, String).FromIR(obj("x", ir.FromString("a")), &got)
	checkErr(t, err, ErrInvalid, "x")

	var strs map[string]string
	err = MapOf(String, String).FromIR(obj("x", ir.FromInt(1)), &strs)
	checkErr(t, err, ErrShape, "x")
}

func TestKeyEntryPoints(t *testing.T) {
	s, err := SerializeKey(Int64, 1<<53+1)
	if err != nil {
		t.Fatal(err)
	}
	if s != "9007199254740993" {
		t.Errorf("got %q", s)
	}
	s, err = SerializeKey(Float64, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	if s != "1.5" {
		t.Errorf("got %q, want 1.5", s)
	}
	var k int64
	if err := DeserializeKey(Int64, "-7", &k); err != nil {
		t.Fatal(err)
	}
	if k != -7 {
		t.Errorf("got %d, want -7", k)
	}
	var d time.Time
	if err := DeserializeKey(Date, "2020-01-02", &d); err != nil {
		t.Fatal(err)
	}
	if !d.Equal(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %v", d)
	}
	if _, err := SerializeKey(SliceOf(Int), []int{1}, WithLogger(discard())); !errors.Is(err, ErrKey) {
		t.Errorf("got %v, want ErrKey", err)
	}
}

type point struct {
	X, Y  int
	Label string
}

var pointCodec = Struct("point",
	Field("x", Int, func(p *point) *int { return &p.X }),
	Field("y", Int, func(p *point) *int { return &p.Y }),
	OptionalField("label", String, func(p *point) *string { return &p.Label }),
)

func TestStruct(t *testing.T) {
	node, err := pointCodec.ToIR(point{X: 1, Y: 2})
	if err != nil {
		t.Fatal(err)
	}
	if want := obj("x", ir.FromInt(1), "y", ir.FromInt(2)); !ir.Equal(node, want) {
		t.Errorf("got %v, want %v", node, want)
	}
	node, err = pointCodec.ToIR(point{Label: "o"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x", "y", "label"}, keys(node)); diff != "" {
		t.Errorf("member order (-want +got):\n%s", diff)
	}

	var p point
	if err := pointCodec.FromIR(obj("y", ir.FromInt(4), "x", ir.FromInt(3)), &p); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(point{X: 3, Y: 4}, p); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	checkErr(t, pointCodec.FromIR(obj("x", ir.FromInt(3)), &p), ErrMissing, "y")
	checkErr(t, pointCodec.FromIR(obj("x", ir.FromInt(3), "y", ir.FromInt(4), "z", ir.FromInt(5)), &p), ErrArity, "z")
	checkErr(t, pointCodec.FromIR(obj("x", ir.FromInt(3), "y", ir.FromBool(true)), &p), ErrShape, "y")
}

func TestStructDuplicateField(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Struct("bad",
		Field("x", Int, func(p *point) *int { return &p.X }),
		Field("x", Int, func(p *point) *int { return &p.Y }),
	)
}

func TestMultiMap(t *testing.T) {
	m := NewMultiMap[string, int]()
	m.Add("b", 1)
	m.Add("a", 2)
	m.Add("b", 3)
	if m.Len() != 3 {
		t.Errorf("got len %d, want 3", m.Len())
	}
	c := MultiMapOf(String, Int)
	node, err := c.ToIR(m)
	if err != nil {
		t.Fatal(err)
	}
	want := obj("b", nums(1, 3), "a", nums(2))
	if !ir.Equal(node, want) {
		t.Errorf("got %v, want %v", node, want)
	}
	if diff := cmp.Diff([]string{"b", "a"}, keys(node)); diff != "" {
		t.Errorf("key order (-want +got):\n%s", diff)
	}

	var got *MultiMap[string, int]
	if err := c.FromIR(node, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 3}, got.Values("b")); diff != "" {
		t.Errorf("values of b (-want +got):\n%s", diff)
	}
	var pairs []string
	for k, v := range got.All() {
		pairs = append(pairs, k+"="+strconv.Itoa(v))
	}
	if diff := cmp.Diff([]string{"b=1", "b=3", "a=2"}, pairs); diff != "" {
		t.Errorf("All (-want +got):\n%s", diff)
	}
	checkErr(t, c.FromIR(obj("a", ir.FromInt(1)), &got), ErrShape, "a")
}

func TestBitArray(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, false, false, true}
	node, err := BitArray.ToIR(bits)
	if err != nil {
		t.Fatal(err)
	}
	want := obj("bit_count", ir.FromInt(9), "encoded_bits", ir.FromString("DQE="))
	if !ir.Equal(node, want) {
		t.Errorf("got %v, want %v", node, want)
	}
	var got []bool
	if err := BitArray.FromIR(node, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(bits, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	bad := obj("bit_count", ir.FromInt(17), "encoded_bits", ir.FromString("DQE="))
	if err := BitArray.FromIR(bad, &got); !errors.Is(err, ErrArity) {
		t.Errorf("got %v, want ErrArity", err)
	}
}

func TestValues(t *testing.T) {
	ts := time.Date(2021, 3, 4, 5, 6, 7, 8, time.UTC)
	node, err := Time.ToIR(ts)
	if err != nil {
		t.Fatal(err)
	}
	if want := "2021-03-04T05:06:07.000000008Z"; node.String != want {
		t.Errorf("got %q, want %q", node.String, want)
	}
	var back time.Time
	if err := Time.FromIR(node, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(ts) {
		t.Errorf("got %v, want %v", back, ts)
	}
	if err := Time.FromIR(ir.FromString("yesterday"), &back); !errors.Is(err, ErrInvalid) {
		t.Errorf("got %v, want ErrInvalid", err)
	}

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	node, err = UUID.ToIR(id)
	if err != nil {
		t.Fatal(err)
	}
	var gotID uuid.UUID
	if err := UUID.FromIR(node, &gotID); err != nil {
		t.Fatal(err)
	}
	if gotID != id {
		t.Errorf("got %v, want %v", gotID, id)
	}

	node, err = Bytes.ToIR([]byte("hi"))
	if err != nil {
		t.Fatal(err)
	}
	if node.String != "aGk=" {
		t.Errorf("got %q, want aGk=", node.String)
	}
	var b []byte
	if err := Bytes.FromIR(ir.FromString("!!"), &b); !errors.Is(err, ErrInvalid) {
		t.Errorf("got %v, want ErrInvalid", err)
	}
}

type counter struct{ n int }

func (c *counter) ToIR() (*ir.Node, error) {
	return ir.FromInt(int64(c.n)), nil
}

func TestAnyNilMarshaler(t *testing.T) {
	var c *counter
	node, err := Any.ToIR(c)
	if err != nil {
		t.Fatal(err)
	}
	if !node.IsNull() {
		t.Errorf("got %v, want null", node)
	}
	node, err = Any.ToIR(&counter{n: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(node, ir.FromInt(3)) {
		t.Errorf("got %v, want 3", node)
	}
}

func TestAny(t *testing.T) {
	node := obj("a", arr(ir.FromInt(1), ir.FromString("x"), ir.Null()), "b", ir.FromBool(true))
	var v any
	if err := Any.FromIR(node, &v); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": []any{1.0, "x", nil}, "b": true}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	back, err := Any.ToIR(v)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(back, node) {
		t.Errorf("got %v, want %v", back, node)
	}
	if _, err := Any.ToIR(make(chan int)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("got %v, want ErrUnsupported", err)
	}
}
