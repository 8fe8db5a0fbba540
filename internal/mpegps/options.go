package mpegps

import (
	"log/slog"
	"runtime"
	"time"
)

const (
	DefaultScanBudget = 2 << 20
	// minScanBudget leaves room for the whole CDXA sector search plus the
	// RIFF headers in front of it.
	minScanBudget = 128 << 10
)

type Options struct {
	// ScanBudget caps how far from offset 0 the scanner may advance, skips included.
	ScanBudget int64
	// Timeout applies a deadline on top of the caller's context. Zero disables it.
	Timeout time.Duration
	// TrailingGOP enables the last-GOP time code probe near the end of the file.
	TrailingGOP bool
	// Concurrency bounds ProbeFiles. Zero means runtime.NumCPU().
	Concurrency int
	Logger      *slog.Logger
}

func DefaultOptions() Options {
	return Options{ScanBudget: DefaultScanBudget, Concurrency: runtime.NumCPU()}
}

func normalizeOptions(opts Options) Options {
	if opts.ScanBudget <= 0 {
		opts.ScanBudget = DefaultScanBudget
	}
	if opts.ScanBudget < minScanBudget {
		opts.ScanBudget = minScanBudget
	}
	if opts.Timeout < 0 {
		opts.Timeout = 0
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts
}
