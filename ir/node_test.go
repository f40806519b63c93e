package ir

import (
	"math"
	"testing"
)

func TestEqual(t *testing.T) {
	obj := func(kvs ...KeyVal) *Node { return FromKeyVals(kvs) }
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"null", Null(), Null(), true},
		{"undefined", Undefined(), nil, true},
		{"null vs undefined", Null(), Undefined(), false},
		{"numbers", FromInt(1), FromFloat(1.0), true},
		{"negative zero", FromFloat(math.Copysign(0, -1)), FromInt(0), true},
		{"nan", FromFloat(math.NaN()), FromFloat(math.NaN()), true},
		{"bool vs number", FromBool(true), FromInt(1), false},
		{"strings", FromString("a"), FromString("b"), false},
		{
			"array order matters",
			FromSlice([]*Node{FromInt(1), FromInt(2)}),
			FromSlice([]*Node{FromInt(2), FromInt(1)}),
			false,
		},
		{
			"object order does not matter",
			obj(KeyVal{"a", FromInt(1)}, KeyVal{"b", FromInt(2)}),
			obj(KeyVal{"b", FromInt(2)}, KeyVal{"a", FromInt(1)}),
			true,
		},
		{
			"object values differ",
			obj(KeyVal{"a", FromInt(1)}),
			obj(KeyVal{"a", FromInt(2)}),
			false,
		},
		{
			"object keys differ",
			obj(KeyVal{"a", FromInt(1)}),
			obj(KeyVal{"b", FromInt(1)}),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
			if tt.want && tt.a != nil && tt.b != nil && !tt.a.IsUndefined() {
				if tt.a.Hash() != tt.b.Hash() {
					t.Errorf("equal nodes hash differently")
				}
			}
			if got := Compare(tt.a, tt.b) == 0; got != tt.want {
				t.Errorf("Compare == 0 is %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompareOrder(t *testing.T) {
	ordered := []*Node{
		Undefined(),
		Null(),
		FromBool(false),
		FromBool(true),
		FromInt(-3),
		FromFloat(2.5),
		FromString("a"),
		FromString("b"),
		FromSlice(nil),
		FromSlice([]*Node{FromInt(1)}),
		FromMap(map[string]*Node{"a": FromInt(1)}),
	}
	for i := 1; i < len(ordered); i++ {
		if c := Compare(ordered[i-1], ordered[i]); c != -1 {
			t.Errorf("Compare(%d, %d) = %d", i-1, i, c)
		}
		if c := Compare(ordered[i], ordered[i-1]); c != 1 {
			t.Errorf("Compare(%d, %d) = %d", i, i-1, c)
		}
	}
}

func TestFromMapSorted(t *testing.T) {
	n := FromMap(map[string]*Node{"z": Null(), "a": Null(), "m": Null()})
	var keys []string
	for _, kv := range n.KeyVals() {
		keys = append(keys, kv.Key)
	}
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "m" || keys[2] != "z" {
		t.Errorf("keys = %v", keys)
	}
	if n.Len() != 3 || n.FieldIndex("m") != 1 || n.FieldIndex("q") != -1 {
		t.Errorf("Len/FieldIndex mismatch")
	}
}

func TestClone(t *testing.T) {
	n := FromKeyVals([]KeyVal{{Key: "a", Val: FromSlice([]*Node{FromString("x")})}})
	c := n.Clone()
	if !Equal(n, c) {
		t.Fatalf("clone differs")
	}
	c.Values[0].Values[0].String = "y"
	if n.Values[0].Values[0].String != "x" {
		t.Errorf("clone shares storage")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{-1, "-1"},
		{1e6, "1000000"},
		{1 << 53, "9007199254740992"},
		{-(1 << 53), "-9007199254740992"},
		{1 << 54, "1.8014398509481984e+16"},
		{0.5, "0.5"},
		{1.25e-7, "1.25e-07"},
		{math.Inf(1), "+Inf"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTypeText(t *testing.T) {
	for _, ty := range append(Types(), UndefinedType) {
		d, err := ty.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Type
		if err := back.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if back != ty {
			t.Errorf("%v round tripped to %v", ty, back)
		}
	}
}
