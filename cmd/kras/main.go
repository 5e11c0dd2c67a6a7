// This CLI utility scans unstructured text for embedded structured-data
// fragments (JSON, Python/Ruby dict and Perl hash literals, Lisp-style
// lists, constructor calls, angle-bracket class tags) and reprints them
// pretty-printed and colourized, leaving the surrounding prose untouched.
//
// Usage:
//
//	kras [options] [input-files...]
//
// With no files, input is read from standard input. Multiple files are
// concatenated in order.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"akhil.cc/kras"
	"akhil.cc/kras/internal/klog"
	"akhil.cc/kras/internal/pipeline"
	"akhil.cc/kras/render"
)

func prefix(msg string, err error) error {
	return errors.New(msg + err.Error())
}

// concatFiles opens each named file in turn and returns a reader that
// yields their contents back to back, in argument order. A file that fails
// to open is logged and skipped rather than aborting the whole run.
func concatFiles(paths []string) io.Reader {
	readers := make([]io.Reader, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			klog.Errorf("opening %s: %v", p, err)
			continue
		}
		readers = append(readers, f)
	}
	return io.MultiReader(readers...)
}

func parseColor(s string) (render.ColorPolicy, error) {
	switch s {
	case "yes":
		return render.ColorAlways, nil
	case "no":
		return render.ColorNever, nil
	case "auto", "":
		return render.ColorAuto, nil
	default:
		return render.ColorAuto, fmt.Errorf("invalid --color value %q (want yes, no, or auto)", s)
	}
}

func defaultJobs() int {
	return runtime.NumCPU()
}

func main() {
	var (
		indent      int
		colorFlag   string
		forceColor  bool
		sortKeys    bool
		recursive   bool
		jobs        int
		width       int
		multiline   bool
		robust      bool
		debug       bool
	)

	const prefixMsg = "(kras) "

	rootCmd := &cobra.Command{
		Use:   "kras [options] [input-files...]",
		Short: "highlight structured-data fragments embedded in unstructured text",
		Long: `kras scans unstructured text (logs, stack traces, REPL output) for
bracket-balanced fragments that look like JSON, Python/Ruby dicts, Perl
hashes, Lisp-style lists, constructor calls, or angle-bracket class tags,
parses whichever ones actually match, and reprints them pretty-printed and
colourized while leaving the surrounding prose untouched.

With no input files, input is read from standard input. Multiple files are
concatenated in order.`,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			klog.SetDebug(debug)

			policy, err := parseColor(colorFlag)
			if err != nil {
				return prefix(prefixMsg, err)
			}
			if forceColor {
				policy = render.ColorAlways
			}

			var in io.Reader = os.Stdin
			if len(args) > 0 {
				in = concatFiles(args)
			}

			isTTY := render.StdoutIsTTY(os.Stdout.Fd())
			cfg := render.Config{Indent: indent, Width: width, Color: policy}
			opts := kras.Options{Sort: sortKeys, Recursive: recursive, Robust: robust}

			transform := func(line string) string {
				rl := kras.ParseLine(line, opts)
				return render.Value(rl, cfg, isTTY)
			}

			poolCfg := pipeline.Config{Jobs: jobs, WholeInput: multiline}
			err = pipeline.Process(context.Background(), in, os.Stdout, poolCfg, transform)
			if err != nil {
				return prefix(prefixMsg, err)
			}
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.IntVarP(&indent, "indent", "i", 2, "``number of spaces used to indent broken groups; 0 disables line breaking")
	flags.StringVarP(&colorFlag, "color", "c", "auto", "``when to colourize output: yes, no, or auto")
	flags.BoolVarP(&forceColor, "force-color", "C", false, "shorthand for --color yes")
	flags.BoolVarP(&sortKeys, "sort", "s", false, "sort dict keys and repair trailing commas")
	flags.BoolVarP(&recursive, "recursive", "r", false, "recursively re-parse string bodies that themselves look structured")
	flags.IntVarP(&jobs, "jobs", "j", defaultJobs(), "``number of worker goroutines")
	flags.IntVarP(&width, "width", "w", 80, "``column budget used to decide when a group should break")
	flags.BoolVarP(&multiline, "multiline", "m", false, "treat the entire input as a single multi-line job")
	flags.BoolVar(&robust, "robust", false, "use the backtracking detector instead of the signature heuristic")
	flags.BoolVar(&debug, "debug", false, "enable debug logging regardless of KRAS_LOG")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
