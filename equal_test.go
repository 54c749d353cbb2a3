package jsonadapt_test

import (
	"testing"

	"github.com/reoring/jsonadapt"
	_ "github.com/reoring/jsonadapt/backend/all"
	"github.com/reoring/jsonadapt/backend/gojson"
	"github.com/reoring/jsonadapt/backend/stdjson"
	"github.com/reoring/jsonadapt/backend/yamlv3"
)

func mustLoad(tb testing.TB, k jsonadapt.Kind, src string) jsonadapt.Adapter {
	tb.Helper()
	a, err := jsonadapt.LoadBytes([]byte(src), k)
	if err != nil {
		tb.Fatalf("load %s with %s: %v", src, k, err)
	}
	return a
}

func strictTyped(k jsonadapt.Kind) bool { return jsonadapt.TraitsOf(k).HasStrictTypes }

func TestEqual_Scenarios(t *testing.T) {
	cases := []struct {
		name        string
		a, b        string
		loose       bool
		strict      bool
		strictOnlyT bool // strict outcome only holds for strict-typed backends
	}{
		{name: "integers vs doubles", a: `[1,2,3]`, b: `[1.0,2.0,3.0]`, loose: true, strict: false, strictOnlyT: true},
		{name: "integers vs strings", a: `[1,2,3]`, b: `["1","2","3"]`, loose: false, strict: false},
		{name: "length mismatch", a: `[1,2,3]`, b: `[1,2,3,4]`, loose: false, strict: false},
		{name: "value mismatch", a: `[10,20,30,40]`, b: `[1,2,3,4]`, loose: false, strict: false},
		{name: "member order", a: `{"a":1,"b":2}`, b: `{"b":2,"a":1}`, loose: true, strict: true},
	}
	for _, k := range jsonadapt.Kinds() {
		for _, tc := range cases {
			t.Run(string(k)+"/"+tc.name, func(t *testing.T) {
				a, b := mustLoad(t, k, tc.a), mustLoad(t, k, tc.b)
				if got := a.EqualTo(b, false); got != tc.loose {
					t.Fatalf("loose: got %t, want %t", got, tc.loose)
				}
				if tc.strictOnlyT && !strictTyped(k) {
					// Without strict types strict comparison degrades to loose.
					if got := a.EqualTo(b, true); got != tc.loose {
						t.Fatalf("strict on %s: got %t, want loose result %t", k, got, tc.loose)
					}
					return
				}
				if got := a.EqualTo(b, true); got != tc.strict {
					t.Fatalf("strict: got %t, want %t", got, tc.strict)
				}
			})
		}
	}
}

var corpus = []string{
	`null`,
	`true`,
	`false`,
	`0`,
	`3`,
	`3.0`,
	`-7.25`,
	`"x"`,
	`""`,
	`[]`,
	`{}`,
	`[1,[2,[3]]]`,
	`{"a":{"b":[true,null,"s"]},"c":1.5}`,
	`{"a/b":1,"m~n":[{}]}`,
}

func TestEqual_Reflexive(t *testing.T) {
	for _, k := range jsonadapt.Kinds() {
		for _, src := range corpus {
			a := mustLoad(t, k, src)
			for _, strict := range []bool{false, true} {
				if !jsonadapt.Equal(a, a, strict) {
					t.Errorf("%s: %s not equal to itself (strict=%t)", k, src, strict)
				}
				if b := mustLoad(t, k, src); !jsonadapt.Equal(a, b, strict) {
					t.Errorf("%s: two loads of %s differ (strict=%t)", k, src, strict)
				}
			}
		}
	}
}

func TestEqual_Symmetric(t *testing.T) {
	kinds := jsonadapt.Kinds()
	for _, ka := range kinds {
		for _, kb := range kinds {
			for _, sa := range corpus {
				a := mustLoad(t, ka, sa)
				for _, sb := range corpus {
					b := mustLoad(t, kb, sb)
					for _, strict := range []bool{false, true} {
						if ab, ba := a.EqualTo(b, strict), b.EqualTo(a, strict); ab != ba {
							t.Errorf("%s(%s) vs %s(%s) strict=%t: %t one way, %t the other", ka, sa, kb, sb, strict, ab, ba)
						}
					}
				}
			}
		}
	}
}

func TestEqual_ArrayNeverEqualsOtherTypes(t *testing.T) {
	for _, k := range jsonadapt.Kinds() {
		arr := mustLoad(t, k, `[1]`)
		for _, src := range []string{`{"0":1}`, `"[1]"`, `1`, `true`, `null`} {
			other := mustLoad(t, k, src)
			for _, strict := range []bool{false, true} {
				if arr.EqualTo(other, strict) {
					t.Errorf("%s: [1] equal to %s (strict=%t)", k, src, strict)
				}
			}
		}
	}
}

func TestEqual_NumericPromotion(t *testing.T) {
	for _, k := range jsonadapt.Kinds() {
		i, d := mustLoad(t, k, `3`), mustLoad(t, k, `3.0`)
		if !i.EqualTo(d, false) {
			t.Errorf("%s: 3 and 3.0 should be loosely equal", k)
		}
		if want := !strictTyped(k); i.EqualTo(d, true) != want {
			t.Errorf("%s: strict 3 vs 3.0 = %t, want %t", k, !want, want)
		}
	}
}

func TestEqual_CrossBackend(t *testing.T) {
	a := mustLoad(t, stdjson.Kind, `{"xs":[1,2,3],"s":"v"}`)
	b := mustLoad(t, yamlv3.Kind, "xs: [1.0, 2.0, 3.0]\ns: v\n")
	c := mustLoad(t, gojson.Kind, `{"s":"v","xs":[1,2,3]}`)

	if !a.EqualTo(b, false) || !b.EqualTo(c, false) || !a.EqualTo(c, false) {
		t.Fatalf("expected loose equality across backends")
	}
	// Both sides keep integer and double apart, so the kinds are compared.
	if a.EqualTo(b, true) {
		t.Fatalf("integers vs doubles should differ strictly between strict-typed backends")
	}
	// go-json cannot tell, so strict falls back to loose.
	if !a.EqualTo(c, true) {
		t.Fatalf("strict against a non-strict backend should degrade to loose")
	}
	if jsonadapt.StrictComparable(a, b) || jsonadapt.StrictComparable(a, c) {
		t.Fatalf("cross-backend pairs are never strictly comparable")
	}
	if !jsonadapt.StrictComparable(a, mustLoad(t, stdjson.Kind, `1`)) {
		t.Fatalf("same strict backend should be strictly comparable")
	}
}

func TestEqual_LargeIntegers(t *testing.T) {
	// 2^53+1 is not representable as float64.
	const x, y = `9007199254740993`, `9007199254740992`
	for _, k := range []jsonadapt.Kind{"encoding/json", "jx", "yaml.v3", "go-yaml", "jsoniter"} {
		if mustLoad(t, k, x).EqualTo(mustLoad(t, k, y), false) {
			t.Errorf("%s: %s and %s should differ", k, x, y)
		}
		if !mustLoad(t, k, x).EqualTo(mustLoad(t, k, x), true) {
			t.Errorf("%s: %s should equal itself", k, x)
		}
	}
}

func TestEqual_Fractions(t *testing.T) {
	for _, k := range jsonadapt.Kinds() {
		if mustLoad(t, k, `1`).EqualTo(mustLoad(t, k, `1.5`), false) {
			t.Errorf("%s: 1 and 1.5 should differ", k)
		}
		if !mustLoad(t, k, `1.5`).EqualTo(mustLoad(t, k, `1.50`), false) {
			t.Errorf("%s: 1.5 and 1.50 should be equal", k)
		}
	}
}

func TestEqual_NaN(t *testing.T) {
	for _, k := range []jsonadapt.Kind{"yaml.v3", "go-yaml"} {
		a, b := mustLoad(t, k, `.nan`), mustLoad(t, k, `.nan`)
		if !a.EqualTo(b, true) {
			t.Errorf("%s: NaN should compare equal to NaN", k)
		}
		if a.EqualTo(mustLoad(t, k, `0.0`), false) {
			t.Errorf("%s: NaN should differ from 0.0", k)
		}
	}
}

func TestEqual_Nil(t *testing.T) {
	a := mustLoad(t, stdjson.Kind, `null`)
	if !jsonadapt.Equal(nil, nil, false) {
		t.Fatalf("nil should equal nil")
	}
	if jsonadapt.Equal(a, nil, false) || jsonadapt.Equal(nil, a, false) {
		t.Fatalf("nil should not equal a null value")
	}
	var zero jsonadapt.Node[any]
	if jsonadapt.Equal(zero, zero, false) || jsonadapt.Equal(zero, a, true) {
		t.Fatalf("zero Node should not equal anything")
	}
}

func TestDiff_Pointer(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want string
	}{
		{name: "equal", a: `{"a":[1,2]}`, b: `{"a":[1,2]}`, want: ""},
		{name: "root type", a: `[]`, b: `{}`, want: "/"},
		{name: "root scalar", a: `1`, b: `2`, want: "/"},
		{name: "nested leaf", a: `{"a":[1,2,{"b":"x"}]}`, b: `{"a":[1,2,{"b":"y"}]}`, want: "/a/2/b"},
		{name: "array length", a: `{"a":[1,2]}`, b: `{"a":[1,2,3]}`, want: "/a"},
		{name: "missing key", a: `{"a":1,"b":2}`, b: `{"a":1,"c":2}`, want: "/b"},
		{name: "escaped key", a: `{"a/b":{"m~n":1}}`, b: `{"a/b":{"m~n":2}}`, want: "/a~1b/m~0n"},
		{name: "first key in order", a: `{"z":1,"a":1}`, b: `{"z":2,"a":2}`, want: "/a"},
	}
	for _, k := range jsonadapt.Kinds() {
		for _, tc := range cases {
			ptr, ok := jsonadapt.Diff(mustLoad(t, k, tc.a), mustLoad(t, k, tc.b), false)
			if ok != (tc.want == "") {
				t.Errorf("%s/%s: equal = %t", k, tc.name, ok)
			}
			if ptr != tc.want {
				t.Errorf("%s/%s: pointer = %q, want %q", k, tc.name, ptr, tc.want)
			}
		}
	}
}

func TestDiff_StrictKind(t *testing.T) {
	ptr, ok := jsonadapt.Diff(mustLoad(t, stdjson.Kind, `{"v":[1,2]}`), mustLoad(t, stdjson.Kind, `{"v":[1,2.0]}`), true)
	if ok || ptr != "/v/1" {
		t.Fatalf("got (%q, %t), want (/v/1, false)", ptr, ok)
	}
}

func BenchmarkEqual(b *testing.B) {
	const src = `{"users":[{"name":"a","tags":["x","y"],"score":1.5},{"name":"b","tags":[],"score":2}],"n":42}`
	for _, k := range jsonadapt.Kinds() {
		x, y := mustLoad(b, k, src), mustLoad(b, k, src)
		b.Run(string(k), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if !jsonadapt.Equal(x, y, true) {
					b.Fatal("not equal")
				}
			}
		})
	}
}
