package pipeline

import (
	"bufio"
	"container/heap"
	"errors"
	"io"
	"syscall"

	"akhil.cc/kras/internal/klog"
)

// line is one finished output line tagged with its original input order.
type line struct {
	seq  int
	text string
}

// lineHeap is a min-heap of lines ordered by seq, used to hold lines that
// arrive out of order until it is their turn to be written.
type lineHeap []line

func (h lineHeap) Len() int            { return len(h) }
func (h lineHeap) Less(i, j int) bool  { return h[i].seq < h[j].seq }
func (h lineHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *lineHeap) Push(x interface{}) { *h = append(*h, x.(line)) }
func (h *lineHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// Printer consumes (seq, text) pairs that may arrive out of order from
// concurrent workers and writes them to w strictly in seq order, buffering
// whatever arrives early in a min-heap. It tracks the largest the heap ever
// grew to, for diagnostics.
type Printer struct {
	w        *bufio.Writer
	next     int
	pending  lineHeap
	maxQLen  int
	aborted  bool
}

// NewPrinter returns a Printer writing to w, starting at sequence 0.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: bufio.NewWriter(w)}
}

// Submit delivers one finished line at position seq. It may be called
// concurrently only if the caller serializes calls itself; Printer expects
// a single consumer goroutine draining a channel (see Process).
func (p *Printer) Submit(seq int, text string) error {
	if p.aborted {
		return nil
	}
	if seq != p.next {
		heap.Push(&p.pending, line{seq: seq, text: text})
		if len(p.pending) > p.maxQLen {
			p.maxQLen = len(p.pending)
		}
		return nil
	}
	if err := p.writeLine(text); err != nil {
		return err
	}
	p.next++
	for len(p.pending) > 0 && p.pending[0].seq == p.next {
		l := heap.Pop(&p.pending).(line)
		if err := p.writeLine(l.text); err != nil {
			return err
		}
		p.next++
	}
	return nil
}

// Flush drains any lines still buffered (this only happens if a seq was
// skipped, e.g. a worker dropped a line on error) and flushes the
// underlying writer.
func (p *Printer) Flush() error {
	for len(p.pending) > 0 {
		l := heap.Pop(&p.pending).(line)
		if err := p.writeLine(l.text); err != nil {
			return err
		}
	}
	klog.Debugf("printer: max queue len = %d", p.maxQLen)
	if err := p.w.Flush(); err != nil {
		return p.handleWriteErr(err)
	}
	return nil
}

func (p *Printer) writeLine(text string) error {
	if _, err := p.w.WriteString(text); err != nil {
		return p.handleWriteErr(err)
	}
	if err := p.w.WriteByte('\n'); err != nil {
		return p.handleWriteErr(err)
	}
	return nil
}

func (p *Printer) handleWriteErr(err error) error {
	if errors.Is(err, syscall.EPIPE) {
		klog.Debugf("printer: write error %v", err)
		p.aborted = true
		return nil
	}
	klog.Errorf("printer: write error %v", err)
	p.aborted = true
	return err
}
