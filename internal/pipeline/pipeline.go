// Package pipeline runs the line-parallel worker pool: lines are read in
// order, farmed out to a bounded set of workers, and reassembled in their
// original order before being written out.
package pipeline // import "akhil.cc/kras/internal/pipeline"

import (
	"bufio"
	"context"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"akhil.cc/kras/internal/klog"
)

// job is one input line tagged with its position in the stream.
type job struct {
	seq  int
	text string
}

// Config controls the worker pool.
type Config struct {
	// Jobs is the number of concurrent workers. <= 0 defaults to
	// runtime.NumCPU(). Ignored when WholeInput is set.
	Jobs int
	// WholeInput treats the entire reader as a single job instead of
	// splitting it into lines: r is read to completion, transform is
	// called exactly once on the whole contents, and the result is
	// written out alone. This is what --multiline asks for: a "line" may
	// itself span several physical lines, so there is nothing to shard
	// across workers and no reassembly ordering to preserve.
	WholeInput bool
}

// Process reads from r, transforms it with transform, and writes the
// result to w. With WholeInput unset (the default) r is split into lines,
// each line is transformed independently across cfg.Jobs workers, and
// results are written to w in the same order they were read regardless of
// how long any individual transform takes relative to its neighbours. With
// WholeInput set, r is read to completion and transform runs once over the
// whole contents.
func Process(ctx context.Context, r io.Reader, w io.Writer, cfg Config, transform func(line string) string) error {
	if cfg.WholeInput {
		return processWhole(r, w, transform)
	}

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Rust's implementation bounds its channels at jobs*128 so a slow
	// printer can't let an unbounded number of parsed lines pile up in
	// memory; the same bound is used here for both queues.
	queueLen := jobs * 128

	in := make(chan job, queueLen)
	out := make(chan line, queueLen)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(in)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		seq := 0
		for scanner.Scan() {
			select {
			case in <- job{seq: seq, text: scanner.Text()}:
			case <-gctx.Done():
				return gctx.Err()
			}
			seq++
		}
		return scanner.Err()
	})

	for i := 0; i < jobs; i++ {
		g.Go(func() error {
			for {
				select {
				case j, ok := <-in:
					if !ok {
						return nil
					}
					result := transform(j.text)
					select {
					case out <- line{seq: j.seq, text: result}:
					case <-gctx.Done():
						return gctx.Err()
					}
				case <-gctx.Done():
					return gctx.Err()
				}
			}
		})
	}

	printerDone := make(chan error, 1)
	go func() {
		p := NewPrinter(w)
		var err error
		for l := range out {
			if err = p.Submit(l.seq, l.text); err != nil {
				break
			}
		}
		if err == nil {
			err = p.Flush()
		}
		printerDone <- err
	}()

	go func() {
		// Closing out must wait for all workers, not just the scanner,
		// since workers are the ones writing to it.
		_ = g.Wait()
		close(out)
	}()

	if err := <-printerDone; err != nil {
		klog.Errorf("pipeline: %v", err)
		return err
	}
	return g.Wait()
}

// processWhole reads r to completion and runs transform once over the
// whole contents, the single-job path WholeInput asks for.
func processWhole(r io.Reader, w io.Writer, transform func(line string) string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	result := transform(string(data))
	p := NewPrinter(w)
	if err := p.Submit(0, result); err != nil {
		return err
	}
	return p.Flush()
}
