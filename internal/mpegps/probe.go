package mpegps

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ProbeFile opens path and probes it. Remote locations are rejected before
// any I/O is attempted.
func ProbeFile(ctx context.Context, path string, opts Options) (Result, error) {
	if path == "" || strings.Contains(path, "://") {
		return Result{}, &ProbeError{Path: path, Err: ErrRemotePath}
	}
	file, err := os.Open(path)
	if err != nil {
		return Result{}, &ProbeError{Path: path, Err: err}
	}
	defer file.Close()

	return probe(ctx, file, path, opts)
}

// ProbeReader probes an already opened byte source. The source is read from
// offset 0 and must not be used by anyone else until ProbeReader returns.
func ProbeReader(ctx context.Context, src io.ReadSeeker, opts Options) (Result, error) {
	return probe(ctx, src, "", opts)
}

func probe(ctx context.Context, src io.ReadSeeker, path string, opts Options) (Result, error) {
	opts = normalizeOptions(opts)
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	log := opts.Logger.With("component", "mpegps")
	if path != "" {
		log = log.With("path", path)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, &ProbeError{Path: path, Err: err}
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return Result{}, &ProbeError{Path: path, Err: err}
	}
	c := newCursor(ctx, src, opts.ScanBudget)
	acc := &accumulator{}

	container, err := detectContainer(c, log)
	if err != nil {
		return Result{}, &ProbeError{Path: path, Offset: c.offset(), Err: err}
	}
	log.Debug("container detected", "container", container, "offset", c.offset())

	if err := scan(c, acc, log); err != nil {
		return Result{}, &ProbeError{Path: path, Offset: c.offset(), Err: err}
	}
	log.Debug("bytes searched", "bytes", c.offset())

	if opts.TrailingGOP {
		tc, err := probeTrailingGOP(ctx, src)
		if err != nil {
			log.Debug("no end GOP found", "error", err)
		}
		acc.lastTimeCode = tc
	}
	return acc.finalize(), nil
}

// scan feeds start codes to the dispatcher until both video and audio are
// latched or the input stops.
func scan(c *cursor, acc *accumulator, log *slog.Logger) error {
	var scanner syncScanner
	d := newDispatcher(c, acc, log)
	for !acc.done() {
		sc, err := c.nextStartCode(&scanner)
		if err != nil {
			return endOfScan(acc, err, c, log)
		}
		skip, err := d.dispatch(sc)
		if err != nil {
			return endOfScan(acc, err, c, log)
		}
		if err := c.skip(skip); err != nil {
			return endOfScan(acc, err, c, log)
		}
	}
	return nil
}

// endOfScan decides whether the reason the scan stopped is a failure. Running
// out of input or budget is fine once a sequence header is latched; so is a
// short read at the tail of the file.
func endOfScan(acc *accumulator, err error, c *cursor, log *slog.Logger) error {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, errBudgetExhausted), errors.Is(err, ErrTruncated):
		if acc.videoLatched() {
			log.Debug("scan stopped", "reason", err, "offset", c.offset())
			return nil
		}
		if errors.Is(err, ErrTruncated) {
			return err
		}
		log.Debug("no sequence-start found", "offset", c.offset())
		return ErrNoSequenceHeader
	default:
		return err
	}
}
