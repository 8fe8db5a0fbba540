package mpegps

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestParseGOPHeader(t *testing.T) {
	h, ok := parseGOPHeader(gopBytes(10, 59, 30, 24)[4:])
	if !ok {
		t.Fatalf("parseGOPHeader failed")
	}
	if got := h.timeCode(); got != "10:59:30:24" {
		t.Fatalf("timeCode=%q, want 10:59:30:24", got)
	}
	if !h.closed || h.broken || h.dropFrame {
		t.Fatalf("flags closed=%v broken=%v drop=%v", h.closed, h.broken, h.dropFrame)
	}
	if _, ok := parseGOPHeader([]byte{0x00, 0x00, 0x00, 0x00}); ok {
		t.Fatalf("header without marker bit accepted")
	}
	if _, ok := parseGOPHeader([]byte{0x00, 0x08}); ok {
		t.Fatalf("short header accepted")
	}
}

func TestProbeTrailingGOPPicksLastHeader(t *testing.T) {
	data := concat(
		gopBytes(0, 0, 1, 0), filler(3000, 0x77),
		gopBytes(0, 0, 2, 0), filler(500, 0x77),
		gopBytes(0, 0, 3, 12), filler(100, 0x77),
	)
	tc, err := probeTrailingGOP(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("probeTrailingGOP: %v", err)
	}
	if tc != "00:00:03:12" {
		t.Fatalf("tc=%q, want 00:00:03:12", tc)
	}
}

func TestProbeTrailingGOPWalksBackwards(t *testing.T) {
	data := concat(filler(500, 0x11), gopBytes(0, 1, 0, 0), filler(10*trailingWindowSize, 0x77))
	tc, err := probeTrailingGOP(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("probeTrailingGOP: %v", err)
	}
	if tc != "00:01:00:00" {
		t.Fatalf("tc=%q, want 00:01:00:00", tc)
	}
}

func TestProbeTrailingGOPBounded(t *testing.T) {
	data := concat(gopBytes(0, 1, 0, 0), filler((trailingMaxWindows+1)*trailingWindowSize, 0x77))
	if _, err := probeTrailingGOP(context.Background(), bytes.NewReader(data)); !errors.Is(err, errNoTrailingGOP) {
		t.Fatalf("err=%v, want errNoTrailingGOP", err)
	}
}

func TestProbeTrailingGOPStraddlingWindows(t *testing.T) {
	gop := gopBytes(2, 3, 4, 5)
	// Place the header so it starts 3 bytes before the last window boundary.
	data := concat(filler(2000, 0x11), gop, filler(trailingWindowSize-len(gop)+3, 0x77))
	tc, err := probeTrailingGOP(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("probeTrailingGOP: %v", err)
	}
	if tc != "02:03:04:05" {
		t.Fatalf("tc=%q, want 02:03:04:05", tc)
	}
}
