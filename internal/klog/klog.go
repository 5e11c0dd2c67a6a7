// Package klog wires up the process-wide structured logger: debug-level
// logging is off by default, and can be turned on either by the --debug
// flag or by setting KRAS_LOG=debug in the environment.
package klog // import "akhil.cc/kras/internal/klog"

import (
	"fmt"
	"log/slog"
	"os"
)

var level = new(slog.LevelVar)

func init() {
	level.Set(slog.LevelWarn)
	if os.Getenv("KRAS_LOG") == "debug" {
		level.Set(slog.LevelDebug)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// SetDebug turns debug-level logging on when on is true. With on false it
// leaves the level unchanged, so KRAS_LOG=debug still applies. It is called
// once at startup from the --debug flag.
func SetDebug(on bool) {
	if on {
		level.Set(slog.LevelDebug)
	}
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) {
	slog.Debug(sprintf(format, args...))
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) {
	slog.Error(sprintf(format, args...))
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
