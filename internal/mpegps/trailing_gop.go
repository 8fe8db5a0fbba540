package mpegps

import (
	"bytes"
	"context"
	"errors"
	"io"
)

const (
	trailingWindowSize = 1024
	trailingMaxWindows = 64
)

var (
	gopStartCode     = []byte{0x00, 0x00, 0x01, startCodeGOP}
	errNoTrailingGOP = errors.New("mpegps: no trailing GOP header")
)

// probeTrailingGOP walks backwards from the end of the file in 1 KiB windows
// and returns the time code of the last GOP header it finds. The value is for
// display only: GOP time codes are not reliable enough to derive a duration.
func probeTrailingGOP(ctx context.Context, src io.ReadSeeker) (string, error) {
	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return "", err
	}
	// Windows overlap by the start code and header length so a GOP header
	// straddling two windows is still seen whole.
	overlap := len(gopStartCode) + gopHeaderSize - 1
	buf := make([]byte, trailingWindowSize+overlap)
	for w := 1; w <= trailingMaxWindows; w++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		start := size - int64(w)*trailingWindowSize
		if start < 0 {
			start = 0
		}
		end := min(start+int64(len(buf)), size)
		if end <= start {
			break
		}
		if _, err := src.Seek(start, io.SeekStart); err != nil {
			return "", err
		}
		window := buf[:end-start]
		if _, err := io.ReadFull(src, window); err != nil {
			return "", err
		}
		if tc, ok := lastGOPTimeCode(window); ok {
			return tc, nil
		}
		if start == 0 {
			break
		}
	}
	return "", errNoTrailingGOP
}

func lastGOPTimeCode(window []byte) (string, bool) {
	for end := len(window); end > 0; {
		i := bytes.LastIndex(window[:end], gopStartCode)
		if i < 0 {
			return "", false
		}
		header := window[i+len(gopStartCode):]
		if h, ok := parseGOPHeader(header); ok {
			return h.timeCode(), true
		}
		end = i + len(gopStartCode) - 1
	}
	return "", false
}
