package kras

import (
	"testing"

	"github.com/sanity-io/litter"

	"akhil.cc/kras/render"
	"akhil.cc/kras/value"
)

var litCfg = litter.Options{
	Compact:           true,
	StripPackageNames: false,
	HidePrivateFields: false,
	Separator:         " ",
}

func renderPlain(v value.Value) string {
	return render.Value(v, render.Config{Indent: 2, Width: 80, Color: render.ColorNever}, false)
}

func TestParseLineMixedProse(t *testing.T) {
	line := `got response {"status": "ok", "code": 200} after retry`
	rl := ParseLine(line, Options{})
	if len(rl.Items) != 3 {
		t.Fatalf("expected 3 items (prose, dict, prose), got %d: %s", len(rl.Items), renderPlain(rl))
	}
	if _, ok := rl.Items[0].(*value.RawStr); !ok {
		t.Fatalf("expected leading RawStr, got %T", rl.Items[0])
	}
	if _, ok := rl.Items[1].(*value.List); !ok {
		t.Fatalf("expected a List for the dict fragment, got %s", litCfg.Sdump(rl.Items[1]))
	}
}

func TestParseLineNoFragment(t *testing.T) {
	line := "plain text with no brackets at all"
	rl := ParseLine(line, Options{})
	if len(rl.Items) != 1 {
		t.Fatalf("expected a single RawStr item, got %d", len(rl.Items))
	}
	rs, ok := rl.Items[0].(*value.RawStr)
	if !ok || rs.Text != line {
		t.Fatalf("expected RawStr(%q), got %#v", line, rl.Items[0])
	}
}

func TestParseLineSortsOnRequest(t *testing.T) {
	line := `{"b": 2, "a": 1}`
	rl := ParseLine(line, Options{Sort: true})
	got := renderPlain(rl.Items[0])
	want := `{"a": 1, "b": 2}`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestParseLineRobustFindsMismatchedKinds(t *testing.T) {
	line := "[1, 2, 3] {[} (4, 5, 6) ]"
	rl := ParseLine(line, Options{Robust: true})
	var fragments int
	for _, it := range rl.Items {
		if _, ok := it.(*value.RawStr); !ok {
			fragments++
		}
	}
	if fragments != 2 {
		t.Fatalf("expected 2 parsed fragments under robust detection, got %d", fragments)
	}
}

func TestParseLineRecursiveReparsesEmbeddedDicts(t *testing.T) {
	line := `{"payload": "{\"x\": 1}"}`
	rl := ParseLine(line, Options{Recursive: true})
	outer, ok := rl.Items[0].(*value.List)
	if !ok || len(outer.Items) != 1 {
		t.Fatalf("expected single-pair dict, got %s", litCfg.Sdump(rl.Items[0]))
	}
	pair, ok := outer.Items[0].(*value.Pair)
	if !ok {
		t.Fatalf("expected a Pair after postprocessing, got %s", litCfg.Sdump(outer.Items[0]))
	}
	if _, ok := pair.Val.(*value.List); !ok {
		t.Fatalf("expected the payload string to be recursively reparsed into a List, got %s", litCfg.Sdump(pair.Val))
	}
}
