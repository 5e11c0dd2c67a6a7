// Tests for postprocess.go and reparse.go
package postprocess_test

import (
	"reflect"
	"testing"

	"github.com/sanity-io/litter"

	"akhil.cc/kras/postprocess"
	"akhil.cc/kras/value"
)

var litCfg = litter.Options{
	Compact:           true,
	StripPackageNames: false,
	HidePrivateFields: false,
	Separator:         " ",
}

func listItem(v value.Value, delim string, hasDelim bool) *value.ListItem {
	return &value.ListItem{Val: v, Delim: delim, HasDelim: hasDelim}
}

func str(s string) *value.Str { return &value.Str{Quote: '"', Body: s} }
func num(n float64, repr string) *value.Num { return &value.Num{Val: n, Repr: repr} }

func TestProcessPromotesDictPairs(t *testing.T) {
	list := &value.List{
		Open: "{",
		Items: []value.Value{
			listItem(str("a"), ":", true),
			listItem(num(1, "1"), ",", true),
			listItem(str("b"), ":", true),
			listItem(num(2, "2"), "", false),
		},
		Close: "}",
	}
	got := postprocess.Process(list, false).(*value.List)
	want := []*value.Pair{
		{Key: str("a"), D1: ":", Val: num(1, "1"), D2: ",", HasD2: true},
		{Key: str("b"), D1: ":", Val: num(2, "2")},
	}
	if len(got.Items) != len(want) {
		t.Fatalf("got %d pairs, want %d:\n%s", len(got.Items), len(want), litCfg.Sdump(got))
	}
	for i, w := range want {
		g, ok := got.Items[i].(*value.Pair)
		if !ok || !reflect.DeepEqual(w, g) {
			t.Errorf("pair %d:\nwant %s\ngot  %s", i, litCfg.Sdump(w), litCfg.Sdump(got.Items[i]))
		}
	}
}

func TestProcessLeavesTuplesAlone(t *testing.T) {
	list := &value.List{
		Open: "(",
		Items: []value.Value{
			listItem(num(1, "1"), ",", true),
			listItem(num(2, "2"), ",", true),
			listItem(num(3, "3"), "", false),
		},
		Close: ")",
	}
	got := postprocess.Process(list, false).(*value.List)
	for _, it := range got.Items {
		if _, ok := it.(*value.Pair); ok {
			t.Fatalf("tuple was wrongly promoted to dict: %s", litCfg.Sdump(got))
		}
	}
}

func TestProcessFillsLispDelimiters(t *testing.T) {
	list := &value.List{
		Open: "(",
		Items: []value.Value{
			listItem(&value.Ident{Name: "a"}, "", false),
			listItem(&value.Ident{Name: "b"}, "", false),
		},
		Close: ")",
	}
	got := postprocess.Process(list, false).(*value.List)
	first := got.Items[0].(*value.ListItem)
	if !first.HasDelim || first.Delim != " " {
		t.Fatalf("expected a synthetic space delimiter on the non-last item, got %#v", first)
	}
	last := got.Items[1].(*value.ListItem)
	if last.HasDelim {
		t.Fatalf("expected no delimiter on the last item, got %#v", last)
	}
}

// sortedDict builds a fresh unsorted dict List each call, so tests that
// mutate it in place don't interfere with each other.
func sortedDict() *value.List {
	return &value.List{
		Open: "{",
		Items: []value.Value{
			listItem(str("b"), ":", true),
			listItem(num(2, "2"), ",", true),
			listItem(str("a"), ":", true),
			listItem(num(1, "1"), "", false),
		},
		Close: "}",
	}
}

// TestSortIdempotence checks property 5: postprocessing with sort=true
// twice equals postprocessing once, the result is in non-decreasing key
// order, and the trailing-comma invariant holds.
func TestSortIdempotence(t *testing.T) {
	once := postprocess.Process(sortedDict(), true).(*value.List)
	twice := postprocess.Process(once, true).(*value.List)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("sort not idempotent:\nonce  %s\ntwice %s", litCfg.Sdump(once), litCfg.Sdump(twice))
	}

	pairs := make([]*value.Pair, len(once.Items))
	for i, it := range once.Items {
		p, ok := it.(*value.Pair)
		if !ok {
			t.Fatalf("item %d is not a Pair: %s", i, litCfg.Sdump(it))
		}
		pairs[i] = p
	}
	for i := 1; i < len(pairs); i++ {
		prevKey := pairs[i-1].Key.(*value.Str).Body
		curKey := pairs[i].Key.(*value.Str).Body
		if curKey < prevKey {
			t.Fatalf("pairs not sorted: %q before %q", prevKey, curKey)
		}
	}
	for i, p := range pairs {
		if i == len(pairs)-1 {
			if p.HasD2 {
				t.Fatalf("last pair must not carry a trailing comma: %s", litCfg.Sdump(p))
			}
		} else if !p.HasD2 || p.D2 != "," {
			t.Fatalf("pair %d missing its trailing comma: %s", i, litCfg.Sdump(p))
		}
	}
}

func TestReparserReplacesMultiItemBody(t *testing.T) {
	r := &postprocess.Reparser{ParseLine: func(s string) *value.RawList {
		return &value.RawList{Items: []value.Value{num(1, "1"), &value.RawStr{Text: " "}, num(2, "2")}}
	}}
	got := r.VisitStr(&value.Str{Quote: '"', Body: "1 2"})
	want := &value.RawList{Items: []value.Value{num(1, "1"), &value.RawStr{Text: " "}, num(2, "2")}}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("want %s, got %s", litCfg.Sdump(want), litCfg.Sdump(got))
	}
}

func TestReparserLeavesOpaqueBodyAlone(t *testing.T) {
	r := &postprocess.Reparser{ParseLine: func(s string) *value.RawList {
		return &value.RawList{Items: []value.Value{&value.RawStr{Text: s}}}
	}}
	if got := r.VisitStr(&value.Str{Quote: '"', Body: "just prose"}); got != nil {
		t.Fatalf("expected nil (leave the Str alone), got %s", litCfg.Sdump(got))
	}
}

func TestReparserLeavesEmptyBodyAlone(t *testing.T) {
	r := &postprocess.Reparser{ParseLine: func(s string) *value.RawList {
		return &value.RawList{}
	}}
	if got := r.VisitStr(&value.Str{Quote: '"', Body: ""}); got != nil {
		t.Fatalf("expected nil for an empty body, got %s", litCfg.Sdump(got))
	}
}
