package mpegps

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the prober. Callers match them with errors.Is.
var (
	ErrInvalidContainer   = errors.New("mpegps: not an MPEG program stream")
	ErrUnsupportedWrapper = errors.New("mpegps: unsupported RIFF wrapper")
	ErrNoSequenceHeader   = errors.New("mpegps: no sequence header found")
	ErrTruncated          = errors.New("mpegps: truncated header")
	ErrRemotePath         = errors.New("mpegps: path is not a local file")
)

// errBudgetExhausted stops the scan loop once the configured byte budget is spent.
var errBudgetExhausted = errors.New("mpegps: scan budget exhausted")

// ProbeError records where a probe failed.
type ProbeError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *ProbeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("probe at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("probe %s at offset %d: %v", e.Path, e.Offset, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
