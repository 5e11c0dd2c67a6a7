// Package kras wires detection, parsing and postprocessing together into
// the single per-line entry point the CLI and the worker pool call: given
// one line of input, find every bracket-balanced fragment, parse and
// postprocess whichever ones turn out to hold a real structured value, and
// stitch the result back together with the untouched prose around it.
package kras // import "akhil.cc/kras"

import (
	"akhil.cc/kras/detect"
	"akhil.cc/kras/internal/klog"
	"akhil.cc/kras/parse"
	"akhil.cc/kras/postprocess"
	"akhil.cc/kras/value"
)

// Options configures a single ParseLine call.
type Options struct {
	Sort      bool
	Recursive bool
	Robust    bool
}

// ParseLine scans line for bracket-balanced fragments, parses and
// postprocesses each one that turns out to hold a real structured value,
// and returns the whole line as a value.RawList mixing value.RawStr
// (untouched prose) and parsed values in their original order.
func ParseLine(line string, opts Options) *value.RawList {
	buf := []rune(line)
	var items []value.Value
	start := 0

	it := detect.New(buf, opts.Robust)
	for {
		frag, ok := it.Next()
		if !ok {
			break
		}
		klog.Debugf("detect: %q", string(frag.Runes))
		sw := klog.NewStopwatch("parse", 0)
		v, parsed := parse.Value(frag.Runes)
		sw.Stop()
		if !parsed {
			klog.Debugf("parse failed for %q", string(frag.Runes))
			continue
		}
		if frag.Start > start {
			items = append(items, &value.RawStr{Text: string(buf[start:frag.Start])})
		}
		start = frag.Start + len(frag.Runes)

		sw = klog.NewStopwatch("postprocess", 0)
		v = postprocess.Process(v, opts.Sort)
		if opts.Recursive {
			reparser := &postprocess.Reparser{ParseLine: func(s string) *value.RawList {
				return ParseLine(s, opts)
			}}
			v = value.Walk(v, reparser)
		}
		sw.Stop()
		items = append(items, v)
	}
	if start < len(buf) {
		items = append(items, &value.RawStr{Text: string(buf[start:])})
	}
	return &value.RawList{Items: items}
}
