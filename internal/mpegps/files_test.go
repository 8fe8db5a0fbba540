package mpegps

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestProbeFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.mpg")
	if err := os.WriteFile(good, buildStream(streamSpec{width: 352, height: 240, aspect: 1, frameRate: 4}), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cdxa := filepath.Join(dir, "avseq01.dat")
	ps := buildStream(streamSpec{width: 352, height: 240, aspect: 1, frameRate: 4, audio: mpegAudioPES(startCodeAudio, 2, 11)})
	if err := os.WriteFile(cdxa, wrapCDXA(ps, 2), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	missing := filepath.Join(dir, "missing.mpg")

	opts := DefaultOptions()
	opts.Concurrency = 2
	results, count, err := ProbeFiles(context.Background(), []string{good, missing, cdxa}, opts)
	if err != nil {
		t.Fatalf("ProbeFiles: %v", err)
	}
	if count != 2 {
		t.Fatalf("count=%d, want 2", count)
	}
	if len(results) != 3 {
		t.Fatalf("results=%d, want 3", len(results))
	}
	for i, path := range []string{good, missing, cdxa} {
		if results[i].Path != path {
			t.Fatalf("results[%d].Path=%q, want %q", i, results[i].Path, path)
		}
	}
	if results[0].Err != nil || results[0].Result.Width != 352 {
		t.Fatalf("good=%+v", results[0])
	}
	if !errors.Is(results[1].Err, os.ErrNotExist) {
		t.Fatalf("missing err=%v, want not exist", results[1].Err)
	}
	if results[2].Err != nil || results[2].Result.AudioCodec != AudioMP2 {
		t.Fatalf("cdxa=%+v", results[2])
	}
}

func TestProbeFilesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ProbeFiles(ctx, []string{"a.mpg"}, DefaultOptions()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}
