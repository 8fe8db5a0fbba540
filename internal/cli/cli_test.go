package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// minimalStream is a pack header followed by a video packet that carries a
// 352x240 29.97 fps MPEG-1 sequence header, then the program end code.
var minimalStream = []byte{
	0x00, 0x00, 0x01, 0xBA, 0x21, 0x00, 0x01, 0x00, 0x01, 0x80, 0x1B, 0x91,
	0x00, 0x00, 0x01, 0xE0, 0x00, 0x0D, 0x0F,
	0x00, 0x00, 0x01, 0xB3, 0x16, 0x00, 0xF0, 0x14, 0x03, 0xA9, 0xA0, 0x00,
	0x00, 0x00, 0x01, 0xB9,
}

func writeStream(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.mpg")
	if err := os.WriteFile(path, minimalStream, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestRunText(t *testing.T) {
	path := writeStream(t)
	var stdout, stderr bytes.Buffer
	code := Run([]string{"mpegprobe", path}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit=%d stderr=%q", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"352x240", "29.970 FPS", "MPEG-1", "Technical Details"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q: %q", want, out)
		}
	}
}

func TestRunJSON(t *testing.T) {
	path := writeStream(t)
	var stdout, stderr bytes.Buffer
	code := Run([]string{"mpegprobe", "--Output=JSON", path}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit=%d stderr=%q", code, stderr.String())
	}
	var payload struct {
		Media []struct {
			Ref       string            `json:"@ref"`
			Technical map[string]string `json:"technical"`
		} `json:"media"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload.Media) != 1 || payload.Media[0].Technical["Resolution"] != "352x240" {
		t.Fatalf("payload=%+v", payload)
	}
}

func TestRunReportsFailures(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.mpg")
	var stdout, stderr bytes.Buffer
	code := Run([]string{"mpegprobe", missing}, &stdout, &stderr)
	if code != exitError {
		t.Fatalf("exit=%d, want %d", code, exitError)
	}
	if !strings.Contains(stderr.String(), "missing.mpg") {
		t.Fatalf("stderr=%q, want path", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout=%q, want empty", stdout.String())
	}
}

func TestRunOptionErrors(t *testing.T) {
	tests := [][]string{
		{"mpegprobe", "--budget=lots", "a.mpg"},
		{"mpegprobe", "--timeout=soon", "a.mpg"},
		{"mpegprobe", "--jobs=0", "a.mpg"},
		{"mpegprobe", "--frobnicate", "a.mpg"},
		{"mpegprobe", "--output=xml", "a.mpg"},
	}
	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		if code := Run(args, &stdout, &stderr); code != exitError {
			t.Fatalf("%v: exit=%d, want %d", args, code, exitError)
		}
	}
}

func TestRunVersionAndUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"mpegprobe", "--Version"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit=%d", code)
	}
	if !strings.HasPrefix(stdout.String(), "go-mpegprobe, ") {
		t.Fatalf("version=%q", stdout.String())
	}

	stdout.Reset()
	if code := Run([]string{"mpegprobe"}, &stdout, &stderr); code != exitError {
		t.Fatalf("usage exit=%d, want %d", code, exitError)
	}
	if !strings.Contains(stdout.String(), "--help") {
		t.Fatalf("usage=%q", stdout.String())
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{"4096": 4096, "64k": 64 << 10, "2M": 2 << 20, "1g": 1 << 30}
	for in, want := range tests {
		got, err := parseSize(in)
		if err != nil || got != want {
			t.Fatalf("parseSize(%q)=%d, %v, want %d", in, got, err, want)
		}
	}
	for _, in := range []string{"", "-1", "0", "12x"} {
		if _, err := parseSize(in); err == nil {
			t.Fatalf("parseSize(%q) succeeded", in)
		}
	}
}

func TestRunContextCanceled(t *testing.T) {
	path := writeStream(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	if code := RunContext(ctx, []string{"mpegprobe", path}, &stdout, &stderr); code != exitError {
		t.Fatalf("exit=%d, want %d", code, exitError)
	}
	if !strings.Contains(stderr.String(), "context canceled") {
		t.Fatalf("stderr=%q, want context canceled", stderr.String())
	}
}
