// Package detect scans a rune sequence for well-balanced bracket fragments,
// tolerating imbalanced noise on either side. It ships two interchangeable
// algorithms: Fast (a signature/priority-queue heuristic, O(n log n)) and
// Robust (a backtracking matcher, O(n^2) worst case). Both honour the same
// string/escape/"=>" skipping rules via nextSignificant.
package detect // import "akhil.cc/kras/detect"

// Fragment is one detected bracket-balanced slice of the input.
type Fragment struct {
	Start int
	Runes []rune
}

func isOpen(r rune) bool {
	return r == '(' || r == '[' || r == '{' || r == '<'
}

func isClose(r rune) bool {
	return r == ')' || r == ']' || r == '}' || r == '>'
}

func openFor(close rune) rune {
	switch close {
	case ')':
		return '('
	case ']':
		return '['
	case '}':
		return '{'
	case '>':
		return '<'
	}
	panic("detect: not a close bracket")
}

// nextSignificant scans input starting at idx for the next rune that is
// either a bracket character not inside a quoted string, skipping
// string/escape content along the way. It implements the rule set shared by
// both algorithms:
//
//   - '\' inside a string consumes and ignores the next rune.
//   - '\'' or '"' toggles string state if it matches the opener, or opens a
//     new string when none is active.
//   - '>' immediately preceded by '=' is never treated as a close bracket.
func nextSignificant(input []rune, idx int) (pos int, r rune, ok bool) {
	var strCh rune
	inStr := false
	escape := false
	for i := idx; i < len(input); i++ {
		c := input[i]
		if inStr && escape {
			escape = false
			continue
		}
		if inStr && c == '\\' {
			escape = true
			continue
		}
		if c == '\'' || c == '"' {
			if inStr && strCh == c {
				inStr = false
			} else if !inStr {
				inStr = true
				strCh = c
			}
			continue
		}
		if inStr {
			continue
		}
		if c == '>' && i > 0 && input[i-1] == '=' {
			continue
		}
		if isOpen(c) || isClose(c) {
			return i, c, true
		}
	}
	return 0, 0, false
}
