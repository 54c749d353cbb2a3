package jsonadapt_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/jsonadapt"
	"github.com/reoring/jsonadapt/backend/stdjson"
)

func TestAdapter_Predicates(t *testing.T) {
	cases := []struct {
		src  string
		want jsonadapt.Type
	}{
		{`null`, jsonadapt.TypeNull},
		{`true`, jsonadapt.TypeBool},
		{`"s"`, jsonadapt.TypeString},
		{`[1]`, jsonadapt.TypeArray},
		{`{"k":1}`, jsonadapt.TypeObject},
	}
	for _, k := range jsonadapt.Kinds() {
		for _, tc := range cases {
			a := mustLoad(t, k, tc.src)
			if a.Type() != tc.want {
				t.Errorf("%s %s: type %s, want %s", k, tc.src, a.Type(), tc.want)
			}
			got := []bool{a.IsNull(), a.IsBool(), a.IsString(), a.IsArray(), a.IsObject(), a.IsNumber()}
			want := []bool{
				tc.want == jsonadapt.TypeNull,
				tc.want == jsonadapt.TypeBool,
				tc.want == jsonadapt.TypeString,
				tc.want == jsonadapt.TypeArray,
				tc.want == jsonadapt.TypeObject,
				false,
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s %s predicates (-want +got):\n%s", k, tc.src, diff)
			}
		}
	}
}

func TestAdapter_NumberPredicates(t *testing.T) {
	for _, k := range jsonadapt.Kinds() {
		i, d, f := mustLoad(t, k, `7`), mustLoad(t, k, `7.0`), mustLoad(t, k, `7.5`)
		for _, a := range []jsonadapt.Adapter{i, d, f} {
			if !a.IsNumber() {
				t.Fatalf("%s: %v is not a number", k, a.Type())
			}
		}
		if strictTyped(k) {
			if !i.IsInteger() || i.IsDouble() {
				t.Errorf("%s: 7 should be an integer only", k)
			}
			if d.IsInteger() || !d.IsDouble() {
				t.Errorf("%s: 7.0 should be a double only", k)
			}
		} else {
			// Without strict types every number is a double and integral
			// values are integers too.
			if !i.IsInteger() || !i.IsDouble() || !d.IsInteger() || !d.IsDouble() {
				t.Errorf("%s: 7 and 7.0 should be both integer and double", k)
			}
		}
		if f.IsInteger() || !f.IsDouble() {
			t.Errorf("%s: 7.5 should be a double only", k)
		}
	}
}

func TestAdapter_Accessors(t *testing.T) {
	for _, k := range jsonadapt.Kinds() {
		if v, err := mustLoad(t, k, `true`).Bool(); err != nil || !v {
			t.Errorf("%s: Bool = %t, %v", k, v, err)
		}
		if v, err := mustLoad(t, k, `"héllo"`).Str(); err != nil || v != "héllo" {
			t.Errorf("%s: Str = %q, %v", k, v, err)
		}
		if v, err := mustLoad(t, k, `2.5`).Float(); err != nil || v != 2.5 {
			t.Errorf("%s: Float = %v, %v", k, v, err)
		}
		if v, err := mustLoad(t, k, `4`).Number(); err != nil || v != 4 {
			t.Errorf("%s: Number = %v, %v", k, v, err)
		}
		if v, exact, err := mustLoad(t, k, `-12`).AsInt(); err != nil || v != -12 || !exact {
			t.Errorf("%s: AsInt(-12) = %d, %t, %v", k, v, exact, err)
		}
		if v, exact, err := mustLoad(t, k, `2.75`).AsInt(); err != nil || v != 2 || exact {
			t.Errorf("%s: AsInt(2.75) = %d, %t, %v", k, v, exact, err)
		}
	}
}

func TestAdapter_TypeMismatch(t *testing.T) {
	for _, k := range jsonadapt.Kinds() {
		a := mustLoad(t, k, `[1]`)
		checks := map[string]error{}
		_, checks["Bool"] = a.Bool()
		_, checks["Str"] = a.Str()
		_, checks["Float"] = a.Float()
		_, checks["Number"] = a.Number()
		_, _, checks["AsInt"] = a.AsInt()
		for op, err := range checks {
			if !errors.Is(err, jsonadapt.ErrTypeMismatch) {
				t.Errorf("%s: %s on array: got %v, want type mismatch", k, op, err)
				continue
			}
			var tm *jsonadapt.TypeMismatchError
			if !errors.As(err, &tm) || tm.Op != op || tm.Got != jsonadapt.TypeArray {
				t.Errorf("%s: %s: unexpected error %#v", k, op, err)
			}
			if tm.Code() != jsonadapt.CodeTypeMismatch {
				t.Errorf("%s: code %q", k, tm.Code())
			}
		}
	}
}

func TestAdapter_FloatOnStrictInteger(t *testing.T) {
	a := mustLoad(t, stdjson.Kind, `3`)
	if _, err := a.Float(); !errors.Is(err, jsonadapt.ErrTypeMismatch) {
		t.Fatalf("Float on a strict integer should fail, got %v", err)
	}
	if v, err := a.Number(); err != nil || v != 3 {
		t.Fatalf("Number = %v, %v", v, err)
	}
}

func TestAdapter_Containers(t *testing.T) {
	for _, k := range jsonadapt.Kinds() {
		arr := mustLoad(t, k, `["a","b","c"]`)
		if arr.Len() != 3 {
			t.Fatalf("%s: Len = %d", k, arr.Len())
		}
		var got []string
		for e := range arr.Elements() {
			s, err := e.Str()
			if err != nil {
				t.Fatal(err)
			}
			got = append(got, s)
		}
		if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
			t.Errorf("%s: elements (-want +got):\n%s", k, diff)
		}

		obj := mustLoad(t, k, `{"z":1,"a":2,"m":3}`)
		keys := []string{}
		for key := range obj.Members() {
			keys = append(keys, key)
		}
		if jsonadapt.TraitsOf(k).PreservesOrder {
			if diff := cmp.Diff([]string{"z", "a", "m"}, keys); diff != "" {
				t.Errorf("%s: member order (-want +got):\n%s", k, diff)
			}
		}
		slices.Sort(keys)
		if diff := cmp.Diff([]string{"a", "m", "z"}, keys); diff != "" {
			t.Errorf("%s: members (-want +got):\n%s", k, diff)
		}
		m, ok := obj.Member("a")
		if !ok {
			t.Fatalf("%s: member a missing", k)
		}
		if v, _, _ := m.AsInt(); v != 2 {
			t.Errorf("%s: a = %d", k, v)
		}
		if _, ok := obj.Member("nope"); ok {
			t.Errorf("%s: unexpected member", k)
		}
		if _, ok := arr.Member("0"); ok {
			t.Errorf("%s: Member on array should miss", k)
		}
		if s := mustLoad(t, k, `1`); s.Len() != 0 {
			t.Errorf("%s: scalar Len = %d", k, s.Len())
		}
	}
}

func TestAdapter_EarlyBreak(t *testing.T) {
	for _, k := range jsonadapt.Kinds() {
		n := 0
		for range mustLoad(t, k, `[1,2,3,4]`).Elements() {
			n++
			if n == 2 {
				break
			}
		}
		for range mustLoad(t, k, `{"a":1,"b":2,"c":3}`).Members() {
			n++
			break
		}
		if n != 3 {
			t.Errorf("%s: iterated %d times", k, n)
		}
	}
}

func TestAdapter_Traits(t *testing.T) {
	a := stdjson.Wrap(map[string]any{})
	if a.Kind() != stdjson.Kind || !a.Traits().HasStrictTypes || a.Traits().Name != "encoding/json" {
		t.Fatalf("unexpected traits %+v for %s", a.Traits(), a.Kind())
	}
	var zero jsonadapt.Node[any]
	if zero.Kind() != "" || zero.Type() != jsonadapt.TypeInvalid || zero.Len() != 0 {
		t.Fatalf("zero Node should be invalid and empty")
	}
}

func TestAdapter_TraitsInherited(t *testing.T) {
	for _, k := range jsonadapt.Kinds() {
		root := mustLoad(t, k, `{"a":[{"b":1}]}`)
		leaf, ok := jsonadapt.At(root, "/a/0/b")
		if !ok {
			t.Fatalf("%s: /a/0/b missing", k)
		}
		if diff := cmp.Diff(jsonadapt.TraitsOf(k), leaf.Traits()); diff != "" {
			t.Errorf("%s leaf traits (-want +got):\n%s", k, diff)
		}
	}
}

func TestAdapter_NumberLiteralsAndDuplicates(t *testing.T) {
	cases := []struct {
		src    string
		strict jsonadapt.Type // type on strict-typed backends
		f      float64
		i      int64
		exact  bool
	}{
		{`42`, jsonadapt.TypeInteger, 42, 42, true},
		{`1e2`, jsonadapt.TypeDouble, 100, 100, true},
		{`-1e-2`, jsonadapt.TypeDouble, -0.01, 0, false},
		{`-0`, jsonadapt.TypeInteger, 0, 0, true},
	}
	for _, k := range jsonadapt.Kinds() {
		for _, tc := range cases {
			a := mustLoad(t, k, tc.src)
			if !a.IsNumber() {
				t.Errorf("%s %s: type %s", k, tc.src, a.Type())
				continue
			}
			if strictTyped(k) && a.Type() != tc.strict {
				t.Errorf("%s %s: type %s, want %s", k, tc.src, a.Type(), tc.strict)
			}
			if f, _ := a.Number(); f != tc.f {
				t.Errorf("%s %s: Number = %v, want %v", k, tc.src, f, tc.f)
			}
			if v, exact, _ := a.AsInt(); v != tc.i || exact != tc.exact {
				t.Errorf("%s %s: AsInt = %d, %t", k, tc.src, v, exact)
			}
			if !a.EqualTo(mustLoad(t, stdjson.Kind, tc.src), false) {
				t.Errorf("%s %s: not loosely equal to encoding/json", k, tc.src)
			}
		}

		dup := mustLoad(t, k, `{"a":1,"b":{"c":"x","c":"y"},"a":2}`)
		m, ok := dup.Member("a")
		if v, _, _ := m.AsInt(); !ok || v != 2 {
			t.Errorf("%s: Member(a) = %d, %t; want the last occurrence", k, v, ok)
		}
		c, ok := jsonadapt.At(dup, "/b/c")
		if s, _ := c.Str(); !ok || s != "y" {
			t.Errorf("%s: /b/c = %q, want the last occurrence", k, s)
		}
	}
}

func TestFloatToInt(t *testing.T) {
	cases := []struct {
		in    float64
		want  int64
		exact bool
	}{
		{0, 0, true},
		{3, 3, true},
		{-3, -3, true},
		{3.9, 3, false},
		{-3.9, -3, false},
		{math.NaN(), 0, false},
		{math.Inf(1), math.MaxInt64, false},
		{math.Inf(-1), math.MinInt64, false},
		{math.MaxInt64, math.MaxInt64, false}, // rounds up to 2^63
		{-9223372036854775808, math.MinInt64, true},
		{1e300, math.MaxInt64, false},
	}
	for _, tc := range cases {
		got, exact := jsonadapt.FloatToInt(tc.in)
		if got != tc.want || exact != tc.exact {
			t.Errorf("FloatToInt(%v) = %d, %t; want %d, %t", tc.in, got, exact, tc.want, tc.exact)
		}
	}
}

func TestType_String(t *testing.T) {
	if jsonadapt.TypeDouble.String() != "double" || jsonadapt.Type(99).String() != "invalid" {
		t.Fatalf("unexpected type names")
	}
	if !jsonadapt.TypeInteger.IsNumber() || jsonadapt.TypeString.IsNumber() {
		t.Fatalf("IsNumber misclassifies")
	}
}
