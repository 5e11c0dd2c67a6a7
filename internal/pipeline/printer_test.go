package pipeline

import (
	"strings"
	"testing"
)

func TestPrinterBuffersOutOfOrderLines(t *testing.T) {
	var sb strings.Builder
	p := NewPrinter(&sb)
	if err := p.Submit(2, "c"); err != nil {
		t.Fatal(err)
	}
	if err := p.Submit(0, "a"); err != nil {
		t.Fatal(err)
	}
	if err := p.Submit(1, "b"); err != nil {
		t.Fatal(err)
	}
	if err := p.Flush(); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "a\nb\nc\n" {
		t.Fatalf("got %q", sb.String())
	}
	if p.maxQLen < 1 {
		t.Fatalf("expected queue length to have grown, got %d", p.maxQLen)
	}
}

func TestPrinterInOrderNeverBuffers(t *testing.T) {
	var sb strings.Builder
	p := NewPrinter(&sb)
	for i, s := range []string{"x", "y", "z"} {
		if err := p.Submit(i, s); err != nil {
			t.Fatal(err)
		}
	}
	if p.maxQLen != 0 {
		t.Fatalf("expected no buffering for in-order submissions, got maxQLen=%d", p.maxQLen)
	}
	if err := p.Flush(); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "x\ny\nz\n" {
		t.Fatalf("got %q", sb.String())
	}
}
