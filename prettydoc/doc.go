// Package prettydoc implements a small Wadler/Lindig-style pretty-printing
// document algebra: nil, text, line/softline break points, nest, group,
// append and annotate, rendered with the standard best-fit algorithm.
package prettydoc // import "akhil.cc/kras/prettydoc"

// Doc is a pretty-printing document annotated with values of type A (kras
// uses this for ANSI colour specs; tests use it with plain structs or
// struct{}).
type Doc[A any] interface {
	isDoc()
}

type nilDoc[A any] struct{}
type textDoc[A any] struct{ s string }

// lineDoc is a break point: rendered as a single space when its enclosing
// group is flat, or as a newline plus the current nesting indent when
// broken. soft=true means it instead renders as nothing at all when flat
// (a "softline").
type lineDoc[A any] struct{ soft bool }
type nestDoc[A any] struct {
	indent int
	d      Doc[A]
}
type groupDoc[A any] struct{ d Doc[A] }
type appendDoc[A any] struct{ a, b Doc[A] }
type annotateDoc[A any] struct {
	ann A
	d   Doc[A]
}

func (nilDoc[A]) isDoc()      {}
func (textDoc[A]) isDoc()     {}
func (lineDoc[A]) isDoc()     {}
func (nestDoc[A]) isDoc()     {}
func (groupDoc[A]) isDoc()    {}
func (appendDoc[A]) isDoc()   {}
func (annotateDoc[A]) isDoc() {}

// Nil is the empty document.
func Nil[A any]() Doc[A] { return nilDoc[A]{} }

// Text is a literal, unbreakable run of text.
func Text[A any](s string) Doc[A] { return textDoc[A]{s: s} }

// Line renders as a space when flat, or a newline when broken.
func Line[A any]() Doc[A] { return lineDoc[A]{soft: false} }

// SoftLine renders as nothing when flat, or a newline when broken.
func SoftLine[A any]() Doc[A] { return lineDoc[A]{soft: true} }

// Nest increases the indentation used by breaks inside d by indent columns.
func Nest[A any](indent int, d Doc[A]) Doc[A] { return nestDoc[A]{indent: indent, d: d} }

// Group marks d as a unit that renders flat if it fits the remaining
// width, or fully broken otherwise.
func Group[A any](d Doc[A]) Doc[A] { return groupDoc[A]{d: d} }

// Append concatenates two documents.
func Append[A any](a, b Doc[A]) Doc[A] { return appendDoc[A]{a: a, b: b} }

// Concat concatenates any number of documents.
func Concat[A any](docs ...Doc[A]) Doc[A] {
	out := Nil[A]()
	for _, d := range docs {
		out = Append[A](out, d)
	}
	return out
}

// Annotate tags d with ann; the renderer's colorize callback wraps the
// rendered text of d with whatever ann implies.
func Annotate[A any](ann A, d Doc[A]) Doc[A] { return annotateDoc[A]{ann: ann, d: d} }

// Intersperse concatenates docs with sep between each pair.
func Intersperse[A any](docs []Doc[A], sep Doc[A]) Doc[A] {
	out := Nil[A]()
	for i, d := range docs {
		if i > 0 {
			out = Append[A](out, sep)
		}
		out = Append[A](out, d)
	}
	return out
}
