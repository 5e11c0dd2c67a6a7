// Tests for parse.go
package parse_test

import (
	"reflect"
	"testing"

	"github.com/sanity-io/litter"

	"akhil.cc/kras/parse"
	"akhil.cc/kras/render"
	"akhil.cc/kras/value"
)

var litCfg = litter.Options{
	Compact:           true,
	StripPackageNames: false,
	HidePrivateFields: false,
	Separator:         " ",
}

type parseCase struct {
	in   string
	want value.Value
}

var cases = []parseCase{
	{`"a"`, &value.Str{Quote: '"', Body: "a"}},
	{`'a'`, &value.Str{Quote: '\'', Body: "a"}},
	{`b"a"`, &value.Str{Quote: '"', Prefix: "b", Body: "a"}},
	{`"a\nb"`, &value.Str{Quote: '"', Body: "a\nb"}},
	{`0`, &value.Num{Val: 0, Repr: "0"}},
	{`-12`, &value.Num{Val: -12, Repr: "-12"}},
	{`3.14`, &value.Num{Val: 3.14, Repr: "3.14"}},
	{`1e10`, &value.Num{Val: 1e10, Repr: "1e10"}},
	{`0xdeadbeef`, &value.Num{Val: 3735928559, Repr: "0xdeadbeef"}},
	{`[]`, &value.List{Open: "[", Close: "]"}},
	{`[1, 2]`, &value.List{
		Open: "[",
		Items: []value.Value{
			&value.ListItem{Val: &value.Num{Val: 1, Repr: "1"}, Delim: ",", HasDelim: true},
			&value.ListItem{Val: &value.Num{Val: 2, Repr: "2"}},
		},
		Close: "]",
	}},
	{`{"a": 1}`, &value.List{
		Open: "{",
		Items: []value.Value{
			&value.ListItem{Val: &value.Str{Quote: '"', Body: "a"}, Delim: ":", HasDelim: true},
			&value.ListItem{Val: &value.Num{Val: 1, Repr: "1"}},
		},
		Close: "}",
	}},
	{`{a=>b}`, &value.List{
		Open: "{",
		Items: []value.Value{
			&value.ListItem{Val: &value.Ident{Name: "a"}, Delim: "=>", HasDelim: true},
			&value.ListItem{Val: &value.Ident{Name: "b"}},
		},
		Close: "}",
	}},
	{`foo(1, 2)`, &value.Constructor{
		Ident: &value.Ident{Name: "foo"},
		List: &value.List{
			Open: "(",
			Items: []value.Value{
				&value.ListItem{Val: &value.Num{Val: 1, Repr: "1"}, Delim: ",", HasDelim: true},
				&value.ListItem{Val: &value.Num{Val: 2, Repr: "2"}},
			},
			Close: ")",
		},
	}},
}

func TestValue(t *testing.T) {
	for i, c := range cases {
		got, ok := parse.Value([]rune(c.in))
		if !ok {
			t.Errorf("case %d, in %q: parse failed", i, c.in)
			continue
		}
		if !reflect.DeepEqual(c.want, got) {
			t.Errorf("case %d, in %q,\nwant %s,\ngot  %s", i, c.in, litCfg.Sdump(c.want), litCfg.Sdump(got))
		}
	}
}

var rejectCases = []string{
	"[1, 2",
	"foo",
	"",
	"[1 2]extra",
}

func TestValueRejectsInvalidFragments(t *testing.T) {
	for i, in := range rejectCases {
		if got, ok := parse.Value([]rune(in)); ok {
			t.Errorf("case %d, in %q: expected failure, got %s", i, in, litCfg.Sdump(got))
		}
	}
}

// TestRoundTrip checks property 4: rendering the parsed tree with indent=0
// (so nothing ever breaks), no sort, and no colour reproduces the original
// fragment whenever the fragment already uses the spacing kv_spaces would
// have produced itself.
func TestRoundTrip(t *testing.T) {
	fragments := []string{
		`"a"`,
		`[1, 2]`,
		`{"a": 1}`,
		`{a => b}`,
		`foo(1, 2)`,
		`[1, 2, 3]`,
	}
	for _, f := range fragments {
		v, ok := parse.Value([]rune(f))
		if !ok {
			t.Errorf("in %q: parse failed", f)
			continue
		}
		got := render.Value(v, render.Config{Indent: 0, Width: 0, Color: render.ColorNever}, false)
		if got != f {
			t.Errorf("round trip: in %q, got %q", f, got)
		}
	}
}

// TestReparseIsStable checks that rendering a parsed tree and reparsing the
// result yields an equal tree, the round-trip property from a different
// angle: dialect is preserved through a render/parse cycle even when the
// original fragment's spacing wasn't already in kv_spaces's own form.
func TestReparseIsStable(t *testing.T) {
	fragments := []string{
		`{"a":1,"b":2}`,
		`[1,2,3]`,
		`foo(1,2)`,
	}
	for _, f := range fragments {
		v1, ok := parse.Value([]rune(f))
		if !ok {
			t.Fatalf("in %q: parse failed", f)
		}
		rendered := render.Value(v1, render.Config{Indent: 0, Width: 0, Color: render.ColorNever}, false)
		v2, ok := parse.Value([]rune(rendered))
		if !ok {
			t.Fatalf("in %q: reparse of %q failed", f, rendered)
		}
		if !reflect.DeepEqual(v1, v2) {
			t.Errorf("in %q: reparse unstable,\nfirst  %s,\nsecond %s", f, litCfg.Sdump(v1), litCfg.Sdump(v2))
		}
	}
}
