package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/autobrr/go-mpegprobe/internal/mpegps"
)

type Config struct {
	Root        string
	OutputPath  string
	StatePath   string
	Extensions  []string
	DryRun      bool
	MaxFiles    int
	ScanBudget  int64
	Timeout     time.Duration
	TrailingGOP bool
}

type state struct {
	Version int             `json:"version"`
	Seen    map[string]bool `json:"seen"`
}

type record struct {
	Path         string  `json:"path"`
	Size         int64   `json:"size"`
	Error        string  `json:"error,omitempty"`
	Width        uint    `json:"width,omitempty"`
	Height       uint    `json:"height,omitempty"`
	FrameRate    float64 `json:"frame_rate,omitempty"`
	VideoCodec   string  `json:"video_codec,omitempty"`
	AudioCodec   string  `json:"audio_codec,omitempty"`
	AspectRatio  string  `json:"aspect_ratio,omitempty"`
	Profile      string  `json:"profile,omitempty"`
	TimeCode     string  `json:"time_code,omitempty"`
	LastTimeCode string  `json:"last_time_code,omitempty"`
}

func main() {
	cfg := defaultConfig()
	if v := strings.TrimSpace(os.Getenv("MPEGPROBE_SCAN_OUTPUT")); v != "" {
		cfg.OutputPath = v
	}
	if v := strings.TrimSpace(os.Getenv("MPEGPROBE_SCAN_STATE")); v != "" {
		cfg.StatePath = v
	}
	var extCSV string
	flag.StringVar(&cfg.Root, "root", cfg.Root, "directory tree to scan")
	flag.StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "JSONL output path for probe records")
	flag.StringVar(&cfg.StatePath, "state", cfg.StatePath, "scanner state path")
	flag.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "list candidate files only")
	flag.IntVar(&cfg.MaxFiles, "max-files", cfg.MaxFiles, "hard cap files probed in this run")
	flag.Int64Var(&cfg.ScanBudget, "budget", cfg.ScanBudget, "scan budget per file in bytes")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-file probe timeout")
	flag.BoolVar(&cfg.TrailingGOP, "trailing-gop", cfg.TrailingGOP, "also read the last GOP time code")
	flag.StringVar(&extCSV, "ext", strings.Join(cfg.Extensions, ","), "comma-separated file extensions")
	flag.Parse()

	cfg.Extensions = parseExtensions(extCSV)
	if err := validateConfig(cfg); err != nil {
		fatalf("config error: %v", err)
	}

	st, err := loadState(cfg.StatePath)
	if err != nil {
		fatalf("load state: %v", err)
	}
	files, err := collectFiles(cfg.Root, cfg.Extensions)
	if err != nil {
		fatalf("walk %s: %v", cfg.Root, err)
	}

	if cfg.DryRun {
		for _, path := range files {
			if !st.Seen[path] {
				fmt.Println(path)
			}
		}
		return
	}

	out, err := openOutput(cfg.OutputPath)
	if err != nil {
		fatalf("open output: %v", err)
	}
	defer out.Close()

	opts := mpegps.DefaultOptions()
	opts.ScanBudget = cfg.ScanBudget
	opts.Timeout = cfg.Timeout
	opts.TrailingGOP = cfg.TrailingGOP

	ctx := context.Background()
	probed, failed := 0, 0
	for _, path := range files {
		if st.Seen[path] {
			continue
		}
		if probed >= cfg.MaxFiles {
			fmt.Printf("stop: max-files reached (%d)\n", cfg.MaxFiles)
			break
		}
		rec := probeRecord(ctx, path, opts)
		if rec.Error != "" {
			failed++
		}
		if err := writeJSONLine(out, rec); err != nil {
			fatalf("write output: %v", err)
		}
		st.Seen[path] = true
		probed++
		if err := saveState(cfg.StatePath, st); err != nil {
			fatalf("save state: %v", err)
		}
	}

	fmt.Printf("done candidates=%d probed=%d failed=%d output=%s\n", len(files), probed, failed, cfg.OutputPath)
}

func defaultConfig() Config {
	return Config{
		Root:       ".",
		OutputPath: "mpegprobe_scan.jsonl",
		StatePath:  ".mpegprobe_scan_state.json",
		Extensions: []string{".mpg", ".mpeg", ".m2p", ".vob", ".dat"},
		MaxFiles:   1000,
		ScanBudget: mpegps.DefaultScanBudget,
	}
}

func parseExtensions(csv string) []string {
	out := []string{}
	for _, part := range strings.Split(csv, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		out = append(out, part)
	}
	return out
}

func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Root) == "" {
		return errors.New("root is required")
	}
	if len(cfg.Extensions) == 0 {
		return errors.New("at least one extension is required")
	}
	if cfg.MaxFiles < 1 {
		return errors.New("max-files must be >= 1")
	}
	if cfg.ScanBudget < 1 {
		return errors.New("budget must be >= 1")
	}
	return nil
}

func collectFiles(root string, exts []string) ([]string, error) {
	files := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range exts {
			if ext == want {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

func probeRecord(ctx context.Context, path string, opts mpegps.Options) record {
	rec := record{Path: path}
	if info, err := os.Stat(path); err == nil {
		rec.Size = info.Size()
	}
	res, err := mpegps.ProbeFile(ctx, path, opts)
	if err != nil {
		rec.Error = err.Error()
		return rec
	}
	rec.Width = res.Width
	rec.Height = res.Height
	rec.FrameRate = res.FrameRate
	rec.VideoCodec = string(res.VideoCodec)
	rec.AudioCodec = string(res.AudioCodec)
	rec.AspectRatio = string(res.AspectRatio)
	rec.Profile = res.Profile
	rec.TimeCode = res.TimeCode
	rec.LastTimeCode = res.LastTimeCode
	return rec
}

func loadState(path string) (*state, error) {
	st := &state{Version: 1, Seen: map[string]bool{}}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(b, st); err != nil {
		return nil, err
	}
	if st.Seen == nil {
		st.Seen = map[string]bool{}
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return st, nil
}

func saveState(path string, st *state) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func openOutput(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func writeJSONLine(w io.Writer, rec record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
