package detect

import (
	"container/heap"

	"akhil.cc/kras/internal/klog"
)

// signature identifies a scan position by the per-kind bracket balance, the
// total balance across all kinds, and the open-bracket character that
// balance was recorded under.
type signature struct {
	perKind int
	total   int
	open    rune
}

type candidate struct {
	start, end, length int
}

// candidateHeap is a priority queue ordered by the earliest start, tie-broken
// by the greatest length (so FastIter.Next's pop-loop yields the leftmost
// match, and among matches starting at the same position the longest one).
type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(i, j int) bool {
	if h[i].start != h[j].start {
		return h[i].start < h[j].start
	}
	return h[i].length > h[j].length
}
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)        { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// FastIter is the signature/priority-queue detector: an O(n log n)
// heuristic that may yield fewer (or shorter) fragments than the robust
// matcher across mismatched bracket kinds, but is cheap and correct for
// well-nested input.
type FastIter struct {
	input []rune
	start int
}

// NewFast returns a detector over input, resuming scans from rune index 0.
func NewFast(input []rune) *FastIter {
	return &FastIter{input: input}
}

// Next returns the next non-overlapping fragment, or ok=false when the
// input is exhausted.
func (d *FastIter) Next() (Fragment, bool) {
	if d.start >= len(d.input) {
		return Fragment{}, false
	}
	sw := klog.NewStopwatch("detect", 0)
	defer sw.Stop()

	perKind := map[rune]int{}
	total := 0
	signPos := map[signature]int{}
	var pq candidateHeap

	var strCh rune
	inStr := false
	escape := false

	for idx := d.start; idx < len(d.input); idx++ {
		c := d.input[idx]
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
		switch {
		case isOpen(c):
			cnt := perKind[c]
			signPos[signature{cnt, total, c}] = idx
			perKind[c] = cnt + 1
			total++
		case isClose(c) && (c != '>' || idx == 0 || d.input[idx-1] != '='):
			op := openFor(c)
			total--
			perKind[op] = perKind[op] - 1
			if pos, ok := signPos[signature{perKind[op], total, op}]; ok {
				heap.Push(&pq, candidate{start: pos, end: idx, length: idx - pos})
			}
		}
	}

	for pq.Len() > 0 {
		c := heap.Pop(&pq).(candidate)
		if c.start < d.start {
			continue
		}
		d.start = c.end + 1
		return Fragment{Start: c.start, Runes: d.input[c.start : c.end+1]}, true
	}
	return Fragment{}, false
}

// All drains d into a slice, for callers that don't need lazy iteration.
func (d *FastIter) All() []Fragment {
	var out []Fragment
	for {
		f, ok := d.Next()
		if !ok {
			return out
		}
		out = append(out, f)
	}
}
