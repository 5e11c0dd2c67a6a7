// Package postprocess walks a parsed value.Value tree bottom-up, promoting
// ListItems to Pairs where the delimiters justify it, sorting pairs when
// requested, and re-establishing the trailing-comma invariant afterward.
package postprocess // import "akhil.cc/kras/postprocess"

import (
	"sort"

	"akhil.cc/kras/value"
)

var pairDelims = map[string]bool{":": true, "=>": true, "=": true}

// Process recursively postprocesses v in place: Lisp-style (whitespace-only)
// lists get a synthetic single-space delimiter inserted between items,
// qualifying lists of ListItems are promoted to lists of Pairs, and
// Constructor argument lists are recursed into. When sort is true, any
// promoted dict's pairs are sorted by the value total order. Every promoted
// dict then has the trailing-comma invariant re-established.
func Process(v value.Value, sort bool) value.Value {
	switch n := v.(type) {
	case *value.List:
		for i, item := range n.Items {
			n.Items[i] = Process(item, sort)
		}
		fillLispDelims(n.Items)
		if pairs, ok := tryPairUp(n.Items); ok {
			if sort {
				sortPairs(pairs)
			}
			fixComma(pairs)
			items := make([]value.Value, len(pairs))
			for i, p := range pairs {
				items[i] = p
			}
			n.Items = items
		}
		return n
	case *value.Constructor:
		n.List = Process(n.List, sort).(*value.List)
		return n
	case *value.ListItem:
		n.Val = Process(n.Val, sort)
		return n
	case *value.RawList:
		for i, item := range n.Items {
			n.Items[i] = Process(item, sort)
		}
		return n
	default:
		return v
	}
}

// fillLispDelims inserts a synthetic single-space delimiter on every
// non-last ListItem that has none, the way Lisp/tuple-style whitespace
// separated lists are rendered. This never satisfies the dict predicate by
// itself; it only preserves spacing on reprint.
func fillLispDelims(items []value.Value) {
	for i, it := range items {
		li, ok := it.(*value.ListItem)
		if !ok {
			continue
		}
		if i < len(items)-1 && !li.HasDelim {
			li.Delim = " "
			li.HasDelim = true
		}
	}
}

// tryPairUp converts items into Pairs if items is a candidate dict: every
// even-indexed ListItem has a delimiter in {":", "=>", "="} and the number
// of items is even. Any mismatch cancels dict conversion for the whole
// list.
func tryPairUp(items []value.Value) ([]*value.Pair, bool) {
	if len(items) == 0 || len(items)%2 != 0 {
		return nil, false
	}
	listItems := make([]*value.ListItem, len(items))
	for i, it := range items {
		li, ok := it.(*value.ListItem)
		if !ok {
			return nil, false
		}
		listItems[i] = li
	}
	for i := 0; i < len(listItems); i += 2 {
		k := listItems[i]
		if !k.HasDelim || !pairDelims[k.Delim] {
			return nil, false
		}
	}
	pairs := make([]*value.Pair, 0, len(listItems)/2)
	for i := 0; i < len(listItems); i += 2 {
		k, v := listItems[i], listItems[i+1]
		pairs = append(pairs, &value.Pair{
			Key:    k.Val,
			D1:     k.Delim,
			Val:    v.Val,
			D2:     v.Delim,
			HasD2:  v.HasDelim,
		})
	}
	return pairs, true
}

// fixComma ensures the last pair has no inter-pair delimiter and every
// earlier pair has a comma — but only ever adds a comma where the original
// dialect already used one somewhere in the list, and always strips a
// comma from a newly-last pair.
func fixComma(pairs []*value.Pair) {
	n := len(pairs)
	hasComma := false
	for _, p := range pairs {
		if p.HasD2 && p.D2 == "," {
			hasComma = true
		}
	}
	for i, p := range pairs {
		switch {
		case p.HasD2 && i == n-1:
			p.HasD2 = false
			p.D2 = ""
		case !p.HasD2 && i != n-1 && hasComma:
			p.HasD2 = true
			p.D2 = ","
		}
	}
}

// sortPairs orders pairs by the derived total order on values: strings and
// idents lexicographic, numbers by value, containers structurally (by
// kind, then size, then element-wise).
func sortPairs(pairs []*value.Pair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		return less(pairs[i].Key, pairs[j].Key)
	})
}

// rank orders the distinct Value kinds relative to each other so that
// cross-kind comparisons (e.g. a List key next to a Str key) are total and
// stable.
func rank(v value.Value) int {
	switch v.(type) {
	case *value.Str:
		return 0
	case *value.Num:
		return 1
	case *value.Ident:
		return 2
	case *value.List:
		return 3
	case *value.Constructor:
		return 4
	default:
		return 5
	}
}

func less(a, b value.Value) bool {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	switch x := a.(type) {
	case *value.Str:
		return x.Body < b.(*value.Str).Body
	case *value.Num:
		return x.Val < b.(*value.Num).Val
	case *value.Ident:
		return x.Name < b.(*value.Ident).Name
	case *value.List:
		y := b.(*value.List)
		if len(x.Items) != len(y.Items) {
			return len(x.Items) < len(y.Items)
		}
		for i := range x.Items {
			if less(itemValue(x.Items[i]), itemValue(y.Items[i])) {
				return true
			}
			if less(itemValue(y.Items[i]), itemValue(x.Items[i])) {
				return false
			}
		}
		return false
	case *value.Constructor:
		y := b.(*value.Constructor)
		if x.Ident.Name != y.Ident.Name {
			return x.Ident.Name < y.Ident.Name
		}
		return less(x.List, y.List)
	default:
		return false
	}
}

func itemValue(v value.Value) value.Value {
	switch x := v.(type) {
	case *value.ListItem:
		return x.Val
	case *value.Pair:
		return x.Key
	default:
		return v
	}
}
