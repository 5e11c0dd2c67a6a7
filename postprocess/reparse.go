package postprocess

import "akhil.cc/kras/value"

// Reparser implements value.StrVisitor for the optional recursive
// re-parse pass: each Str's body is parsed again as if it were a full
// input line. If the result is a single non-RawStr value, that value
// replaces the Str; if it holds multiple elements, the whole RawList
// replaces it; otherwise (empty, or a single opaque RawStr) the original
// Str is left alone.
//
// Reparser only describes the policy; the reparse itself is supplied by the
// caller (via ParseLine) to avoid an import cycle between postprocess and
// the top-level line parser that already depends on postprocess.
type Reparser struct {
	ParseLine func(s string) *value.RawList
}

// VisitStr implements value.StrVisitor.
func (r *Reparser) VisitStr(s *value.Str) value.Value {
	inner := r.ParseLine(s.Body)
	switch len(inner.Items) {
	case 0:
		return nil
	case 1:
		if _, isRaw := inner.Items[0].(*value.RawStr); isRaw {
			return nil
		}
		return inner.Items[0]
	default:
		return inner
	}
}
