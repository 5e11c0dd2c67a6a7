// Package render lowers a value.Value tree into a prettydoc.Doc annotated
// with colour, and renders that document to bytes under a width budget and
// a colour policy.
package render // import "akhil.cc/kras/render"

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"akhil.cc/kras/prettydoc"
	"akhil.cc/kras/value"
)

// ColorPolicy selects when ANSI colour is emitted.
type ColorPolicy int

const (
	ColorAuto ColorPolicy = iota
	ColorAlways
	ColorNever
)

// Config controls rendering: Indent is the nesting step used by broken
// groups (0 disables breaking entirely), Width is the column budget used
// to decide whether a group fits on one line, and Color selects the colour
// policy.
type Config struct {
	Indent int
	Width  int
	Color  ColorPolicy
}

// spec is the palette attached to a Doc node: an optional foreground
// colour plus whether the node should also be bold (dict keys, brackets).
type spec struct {
	fg    color.Attribute
	hasFg bool
	bold  bool
	set   bool
}

func fgSpec(attr color.Attribute, bold bool) spec {
	return spec{fg: attr, hasFg: true, bold: bold, set: true}
}

func boldSpec() spec { return spec{bold: true, set: true} }

// shouldColor resolves a ColorPolicy against whether stdout (identified by
// isTTY) is a terminal.
func shouldColor(policy ColorPolicy, isTTY bool) bool {
	switch policy {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTTY
	}
}

// StdoutIsTTY reports whether fd is a terminal. Callers pass stdout's
// descriptor; the result decides whether ColorAuto downgrades to no colour.
func StdoutIsTTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Value renders v (typically a *value.RawList, the only top-level shape the
// parser's entry point returns) to a string under cfg, with isTTY deciding
// ColorAuto's behaviour.
func Value(v value.Value, cfg Config, isTTY bool) string {
	doc := toDoc(v, cfg.Indent, false)
	width := cfg.Width
	if cfg.Indent == 0 {
		width = 0
	}
	var colorize func(spec, string) string
	if shouldColor(cfg.Color, isTTY) {
		colorize = applyColor
	}
	return prettydoc.Render(doc, width, colorize)
}

func applyColor(s spec, text string) string {
	if !s.set {
		return text
	}
	var c *color.Color
	if s.hasFg {
		c = color.New(s.fg)
	} else {
		c = color.New()
	}
	if s.bold {
		c = c.Add(color.Bold)
	}
	// fatih/color turns itself off globally when the process's stdout is not
	// a terminal; the policy has already been resolved by shouldColor, so
	// colour is forced on here.
	c.EnableColor()
	return c.Sprint(text)
}

// kvSpaces renders the fixed whitespace a delimiter is surrounded with on
// output.
func kvSpaces(d string) prettydoc.Doc[spec] {
	switch d {
	case "=>":
		return prettydoc.Text[spec](" => ")
	case ":":
		return prettydoc.Text[spec](": ")
	case "=":
		return prettydoc.Text[spec]("=")
	case ",":
		return prettydoc.Text[spec](", ")
	case " ":
		return prettydoc.Text[spec](" ")
	default:
		panic(fmt.Sprintf("render: unexpected delimiter %q", d))
	}
}

func toDoc(v value.Value, indent int, isKey bool) prettydoc.Doc[spec] {
	switch n := v.(type) {
	case *value.Str:
		text := n.Prefix + string(n.Quote) + n.Body + string(n.Quote)
		return prettydoc.Annotate(fgSpec(color.FgRed, isKey), prettydoc.Text[spec](text))
	case *value.Ident:
		return prettydoc.Annotate(fgSpec(color.FgBlue, isKey), prettydoc.Text[spec](n.Name))
	case *value.Num:
		return prettydoc.Annotate(fgSpec(color.FgGreen, isKey), prettydoc.Text[spec](n.Repr))
	case *value.List:
		items := make([]prettydoc.Doc[spec], len(n.Items))
		for i, it := range n.Items {
			items[i] = toDoc(it, indent, false)
		}
		// The closing bracket's line break sits outside Nest, so a broken
		// list lands the bracket back at the outer indent level instead of
		// lining it up with its own contents.
		inner := prettydoc.Nest[spec](indent, prettydoc.Append[spec](
			prettydoc.SoftLine[spec](),
			prettydoc.Intersperse(items, prettydoc.SoftLine[spec]()),
		))
		open := prettydoc.Annotate(boldSpec(), prettydoc.Text[spec](n.Open))
		closeTok := prettydoc.Annotate(boldSpec(), prettydoc.Text[spec](n.Close))
		content := prettydoc.Append[spec](inner, prettydoc.SoftLine[spec]())
		return prettydoc.Group[spec](prettydoc.Append[spec](open, prettydoc.Append[spec](content, closeTok)))
	case *value.Pair:
		key := prettydoc.Group[spec](prettydoc.Append[spec](toDoc(n.Key, indent, true), kvSpaces(n.D1)))
		var valDoc prettydoc.Doc[spec] = toDoc(n.Val, indent, false)
		if n.HasD2 {
			valDoc = prettydoc.Append[spec](valDoc, kvSpaces(n.D2))
		}
		return prettydoc.Group[spec](prettydoc.Append[spec](
			key,
			prettydoc.Nest[spec](indent, prettydoc.Append[spec](prettydoc.SoftLine[spec](), prettydoc.Group[spec](valDoc))),
		))
	case *value.ListItem:
		d := toDoc(n.Val, indent, false)
		if n.HasDelim {
			d = prettydoc.Append[spec](d, kvSpaces(n.Delim))
		}
		return d
	case *value.Constructor:
		return prettydoc.Group[spec](prettydoc.Append[spec](toDoc(n.Ident, indent, isKey), toDoc(n.List, indent, isKey)))
	case *value.RawStr:
		return prettydoc.Text[spec](n.Text)
	case *value.RawList:
		items := make([]prettydoc.Doc[spec], len(n.Items))
		for i, it := range n.Items {
			items[i] = toDoc(it, indent, false)
		}
		return prettydoc.Concat[spec](items...)
	default:
		panic(fmt.Sprintf("render: unknown value type %T", v))
	}
}
