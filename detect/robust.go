package detect

import "akhil.cc/kras/internal/klog"

// RobustIter is the backtracking detector: two nested scans producing
// strictly correct longest-immediate matches at the cost of O(n^2)
// worst-case time. Selected at runtime with --robust.
type RobustIter struct {
	input []rune
	start int
}

// NewRobust returns a detector over input, resuming scans from rune index 0.
func NewRobust(input []rune) *RobustIter {
	return &RobustIter{input: input}
}

// Next returns the next non-overlapping fragment, or ok=false when the
// input is exhausted.
func (d *RobustIter) Next() (Fragment, bool) {
	sw := klog.NewStopwatch("detect", 0)
	defer sw.Stop()
	i := d.start
outer:
	for i < len(d.input) {
		ni, a, ok := nextSignificant(d.input, i)
		if !ok {
			return Fragment{}, false
		}
		i = ni
		if !isOpen(a) {
			i++
			continue
		}
		var stack []rune
		stack = append(stack, a)
		j := i + 1
		for j < len(d.input) {
			nj, b, ok := nextSignificant(d.input, j)
			if !ok {
				break
			}
			j = nj
			if isOpen(b) {
				stack = append(stack, b)
				j++
				continue
			}
			// b is a close bracket.
			if len(stack) == 0 {
				i++
				continue outer
			}
			top := stack[len(stack)-1]
			if top != openFor(b) {
				i++
				continue outer
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				d.start = j + 1
				return Fragment{Start: i, Runes: d.input[i : j+1]}, true
			}
			j++
		}
		i++
	}
	return Fragment{}, false
}

// All drains d into a slice, for callers that don't need lazy iteration.
func (d *RobustIter) All() []Fragment {
	var out []Fragment
	for {
		f, ok := d.Next()
		if !ok {
			return out
		}
		out = append(out, f)
	}
}
