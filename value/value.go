// Package value declares the tagged variant tree produced by the kras
// parser. Every node keeps the delimiter text it was parsed with, so the
// renderer can reprint a fragment in the dialect it was found in.
package value // import "akhil.cc/kras/value"

// All Value types implement the Value interface.
type Value interface {
	value()
}

// Str is a quoted string literal. Quote is the opening/closing quote
// character ('\'' or '"'), Prefix is any alphabetic prefix consumed before
// the quote (e.g. "b" in b'', "r" in r"…"), and Body is the unescaped text.
type Str struct {
	Quote  rune
	Prefix string
	Body   string
}

// Num is a number: the parsed IEEE-754 value plus its original textual
// representation. Repr is what gets printed, never Val, so hex literals and
// fixed-precision decimals round-trip.
type Num struct {
	Val  float64
	Repr string
}

// Ident is a bare identifier, keyword, or dotted/namespaced path.
type Ident struct {
	Name string
}

// ListItem is one position inside a container before dict detection. Delim
// is the trailing delimiter captured after the value (",", ";", ":", "=>",
// "=", or a single space for whitespace-separated lists); HasDelim is false
// when no delimiter follows the value. A delimiter after the last element
// (a trailing comma, as in "[1, 2, ]") is kept.
type ListItem struct {
	Val      Value
	Delim    string
	HasDelim bool
}

// Pair is a post-processed key/value produced only by the postprocessor.
// D1 is the key/value delimiter (":" | "=>" | "="); D2 is the delimiter
// between this pair and the next one, absent on the last pair.
type Pair struct {
	Key   Value
	D1    string
	Val   Value
	D2    string
	HasD2 bool
}

// List is any bracketed container. Open/Close preserve the literal bracket
// characters; Items holds ListItems before postprocessing and Pairs after
// dict detection converts it.
type List struct {
	Open  string
	Items []Value
	Close string
}

// Constructor is a call-like form `name(...)` / `name[...]` / `name{...}`.
type Constructor struct {
	Ident *Ident
	List  *List
}

// RawStr is a verbatim fragment of the original input line, printed without
// highlighting.
type RawStr struct {
	Text string
}

// RawList is the top-level container for a single parsed input line,
// alternating RawStr and parsed Values. It is the only shape ParseLine
// returns.
type RawList struct {
	Items []Value
}

func (*Str) value()         {}
func (*Num) value()         {}
func (*Ident) value()       {}
func (*ListItem) value()    {}
func (*Pair) value()        {}
func (*List) value()        {}
func (*Constructor) value() {}
func (*RawStr) value()      {}
func (*RawList) value()     {}
