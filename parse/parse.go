// Package parse implements a recursive-descent grammar over a single
// detected bracket fragment, producing a typed value.Value tree whose
// nodes remember their original delimiters.
package parse // import "akhil.cc/kras/parse"

import (
	"strconv"
	"strings"

	"akhil.cc/kras/value"
)

// Value parses a single detected fragment (e.g. "{a: 1, b: [2,3]}") into a
// value.Value tree. It returns ok=false if the fragment does not match the
// grammar at any point, or if trailing input remains after a value is
// parsed — the detector's slice is then left as prose by the caller.
func Value(fragment []rune) (value.Value, bool) {
	p := &parser{input: fragment}
	p.skipSpace()
	v, ok := p.value()
	if !ok {
		return nil, false
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, false
	}
	return v, true
}

type parser struct {
	input []rune
	pos   int
}

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.pos++
	}
}

// value := string | number | constructor | array
func (p *parser) value() (value.Value, bool) {
	save := p.pos
	if v, ok := p.str(); ok {
		p.skipSpace()
		return v, true
	}
	p.pos = save
	if v, ok := p.number(); ok {
		p.skipSpace()
		return v, true
	}
	p.pos = save
	if v, ok := p.constructor(); ok {
		p.skipSpace()
		return v, true
	}
	p.pos = save
	if v, ok := p.array(); ok {
		p.skipSpace()
		return v, true
	}
	p.pos = save
	return nil, false
}

// inner := value | ident
func (p *parser) inner() (value.Value, bool) {
	save := p.pos
	if v, ok := p.value(); ok {
		return v, true
	}
	p.pos = save
	if name, ok := p.ident(); ok {
		p.skipSpace()
		return &value.Ident{Name: name}, true
	}
	p.pos = save
	return nil, false
}

var brackets = map[rune]rune{'[': ']', '{': '}', '(': ')', '<': '>'}

// array := open space item* close
func (p *parser) array() (*value.List, bool) {
	if p.eof() {
		return nil, false
	}
	open := p.peek()
	close, isBracket := brackets[open]
	if !isBracket {
		return nil, false
	}
	p.pos++
	p.skipSpace()
	var items []value.Value
	for {
		save := p.pos
		it, ok := p.listItem()
		if !ok {
			p.pos = save
			break
		}
		items = append(items, it)
	}
	if p.eof() || p.peek() != close {
		return nil, false
	}
	p.pos++
	return &value.List{Open: string(open), Items: items, Close: string(close)}, true
}

// item := inner ( array_delim | pair_delim )?
func (p *parser) listItem() (*value.ListItem, bool) {
	v, ok := p.inner()
	if !ok {
		return nil, false
	}
	if d, ok := p.arrayDelim(); ok {
		return &value.ListItem{Val: v, Delim: d, HasDelim: true}, true
	}
	if d, ok := p.pairDelim(); ok {
		return &value.ListItem{Val: v, Delim: d, HasDelim: true}, true
	}
	return &value.ListItem{Val: v}, true
}

// array_delim := space (',' | ';') space
func (p *parser) arrayDelim() (string, bool) {
	save := p.pos
	p.skipSpace()
	if p.eof() || (p.peek() != ',' && p.peek() != ';') {
		p.pos = save
		return "", false
	}
	d := string(p.peek())
	p.pos++
	p.skipSpace()
	return d, true
}

// pair_delim := space (':' | '=>' | '=') space
func (p *parser) pairDelim() (string, bool) {
	save := p.pos
	p.skipSpace()
	if p.eof() {
		p.pos = save
		return "", false
	}
	if p.peek() == ':' {
		p.pos++
		p.skipSpace()
		return ":", true
	}
	if p.peek() == '=' {
		if p.pos+1 < len(p.input) && p.input[p.pos+1] == '>' {
			p.pos += 2
			p.skipSpace()
			return "=>", true
		}
		p.pos++
		p.skipSpace()
		return "=", true
	}
	p.pos = save
	return "", false
}

func isIdentFirst(r rune) bool {
	switch r {
	case '_', '%', '$', '@', '\\', '/':
		return true
	}
	return isAlpha(r)
}

func isIdentCont(r rune) bool {
	switch r {
	case '_', '%', '$', '@', '\\', '/':
		return true
	}
	return isAlpha(r) || isDigit(r)
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// ident := [alpha _ % $ @ \ /] [alnum _ % $ @ \ /]* ( [.:-]+ [alnum ...]+ )*
func (p *parser) ident() (string, bool) {
	if p.eof() || !isIdentFirst(p.peek()) {
		return "", false
	}
	start := p.pos
	p.pos++
	for !p.eof() && isIdentCont(p.peek()) {
		p.pos++
	}
	for {
		save := p.pos
		dotStart := p.pos
		for !p.eof() && (p.peek() == '.' || p.peek() == ':' || p.peek() == '-') {
			p.pos++
		}
		if p.pos == dotStart {
			break
		}
		segStart := p.pos
		for !p.eof() && isIdentCont(p.peek()) {
			p.pos++
		}
		if p.pos == segStart {
			p.pos = save
			break
		}
	}
	return string(p.input[start:p.pos]), true
}

// number := hex | plain
func (p *parser) number() (*value.Num, bool) {
	if v, ok := p.hexNumber(); ok {
		return v, true
	}
	return p.plainNumber()
}

// hex := '0x' [0-9a-fA-F]+
func (p *parser) hexNumber() (*value.Num, bool) {
	save := p.pos
	if p.pos+1 >= len(p.input) || p.input[p.pos] != '0' || (p.input[p.pos+1] != 'x' && p.input[p.pos+1] != 'X') {
		return nil, false
	}
	start := p.pos
	p.pos += 2
	digitsStart := p.pos
	for !p.eof() && isHexDigit(p.peek()) {
		p.pos++
	}
	if p.pos == digitsStart {
		p.pos = save
		return nil, false
	}
	repr := string(p.input[start:p.pos])
	n, err := strconv.ParseUint(repr[2:], 16, 64)
	if err != nil {
		p.pos = save
		return nil, false
	}
	return &value.Num{Val: float64(n), Repr: repr}, true
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// plain := '-'? (0 | [1-9][0-9]*) ('.' [0-9]+)? ([eE][+-]?[0-9]+)?
func (p *parser) plainNumber() (*value.Num, bool) {
	save := p.pos
	start := p.pos
	if !p.eof() && p.peek() == '-' {
		p.pos++
	}
	if p.eof() || !isDigit(p.peek()) {
		p.pos = save
		return nil, false
	}
	if p.peek() == '0' {
		p.pos++
	} else {
		for !p.eof() && isDigit(p.peek()) {
			p.pos++
		}
	}
	if !p.eof() && p.peek() == '.' {
		fracStart := p.pos
		p.pos++
		digStart := p.pos
		for !p.eof() && isDigit(p.peek()) {
			p.pos++
		}
		if p.pos == digStart {
			p.pos = fracStart
		}
	}
	if !p.eof() && (p.peek() == 'e' || p.peek() == 'E') {
		expStart := p.pos
		p.pos++
		if !p.eof() && (p.peek() == '+' || p.peek() == '-') {
			p.pos++
		}
		digStart := p.pos
		for !p.eof() && isDigit(p.peek()) {
			p.pos++
		}
		if p.pos == digStart {
			p.pos = expStart
		}
	}
	repr := string(p.input[start:p.pos])
	n, err := strconv.ParseFloat(repr, 64)
	if err != nil {
		p.pos = save
		return nil, false
	}
	return &value.Num{Val: n, Repr: repr}, true
}

// string := alpha* ( dquoted | squoted )
func (p *parser) str() (*value.Str, bool) {
	save := p.pos
	prefixStart := p.pos
	for !p.eof() && isAlpha(p.peek()) {
		p.pos++
	}
	prefix := string(p.input[prefixStart:p.pos])
	if p.eof() || (p.peek() != '"' && p.peek() != '\'') {
		p.pos = save
		return nil, false
	}
	quote := p.peek()
	p.pos++
	var body strings.Builder
	for {
		if p.eof() {
			p.pos = save
			return nil, false
		}
		c := p.peek()
		if c == quote {
			p.pos++
			break
		}
		if c == '\\' {
			p.pos++
			esc, ok := p.escape()
			if !ok {
				p.pos = save
				return nil, false
			}
			body.WriteRune(esc)
			continue
		}
		body.WriteRune(c)
		p.pos++
	}
	return &value.Str{Quote: quote, Prefix: prefix, Body: body.String()}, true
}

// escape := [\\/"'bfnrt] | 'x' hex{2} | 'u' hex{4}
func (p *parser) escape() (rune, bool) {
	if p.eof() {
		return 0, false
	}
	c := p.peek()
	switch c {
	case '\\', '/', '"', '\'':
		p.pos++
		return c, true
	case 'b':
		p.pos++
		return '\b', true
	case 'f':
		p.pos++
		return '\f', true
	case 'n':
		p.pos++
		return '\n', true
	case 'r':
		p.pos++
		return '\r', true
	case 't':
		p.pos++
		return '\t', true
	case 'x':
		return p.hexEscape(2)
	case 'u':
		return p.hexEscape(4)
	}
	return 0, false
}

func (p *parser) hexEscape(n int) (rune, bool) {
	save := p.pos
	p.pos++ // consume 'x' or 'u'
	if p.pos+n > len(p.input) {
		p.pos = save
		return 0, false
	}
	digits := string(p.input[p.pos : p.pos+n])
	for _, d := range digits {
		if !isHexDigit(d) {
			p.pos = save
			return 0, false
		}
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		p.pos = save
		return 0, false
	}
	p.pos += n
	return rune(v), true
}

// constructor := ident space array
func (p *parser) constructor() (*value.Constructor, bool) {
	save := p.pos
	name, ok := p.ident()
	if !ok {
		p.pos = save
		return nil, false
	}
	p.skipSpace()
	arr, ok := p.array()
	if !ok {
		p.pos = save
		return nil, false
	}
	return &value.Constructor{Ident: &value.Ident{Name: name}, List: arr}, true
}
