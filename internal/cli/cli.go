package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/autobrr/go-mpegprobe/internal/mpegps"
)

const (
	exitOK    = 0
	exitError = 1
)

type Options struct {
	Output      string
	LogFile     string
	Debug       bool
	ScanBudget  int64
	Timeout     time.Duration
	TrailingGOP bool
	Jobs        int
}

func Run(args []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), args, stdout, stderr)
}

// RunContext is Run with a context that aborts in-flight probes when canceled.
func RunContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return exitError
	}

	program := programName(args[0])
	opts := Options{Debug: os.Getenv("DEBUG") != ""}
	files := make([]string, 0)

	for i := 1; i < len(args); i++ {
		original := args[i]
		normalized := normalizeArg(original)

		switch {
		case normalized == "--help" || normalized == "-h":
			Help(program, stdout)
			return exitOK
		case normalized == "--help-output":
			HelpOutput(program, stdout)
			return exitOK
		case normalized == "--version":
			Version(stdout)
			return exitOK
		case strings.HasPrefix(normalized, "--output="):
			value, _ := valueAfterEqual(original)
			if value == "" {
				HelpOutput(program, stdout)
				return exitError
			}
			opts.Output = value
		case strings.HasPrefix(normalized, "--logfile="):
			opts.LogFile, _ = valueAfterEqual(original)
		case strings.HasPrefix(normalized, "--budget="):
			value, _ := valueAfterEqual(original)
			budget, err := parseSize(value)
			if err != nil {
				fmt.Fprintf(stderr, "invalid --budget value %q: %v\n", value, err)
				return exitError
			}
			opts.ScanBudget = budget
		case strings.HasPrefix(normalized, "--timeout="):
			value, _ := valueAfterEqual(original)
			timeout, err := time.ParseDuration(value)
			if err != nil {
				fmt.Fprintf(stderr, "invalid --timeout value %q: %v\n", value, err)
				return exitError
			}
			opts.Timeout = timeout
		case strings.HasPrefix(normalized, "--jobs="):
			value, _ := valueAfterEqual(original)
			jobs, err := strconv.Atoi(value)
			if err != nil || jobs < 1 {
				fmt.Fprintf(stderr, "invalid --jobs value %q\n", value)
				return exitError
			}
			opts.Jobs = jobs
		case normalized == "--trailing-gop":
			opts.TrailingGOP = true
		case normalized == "--debug":
			opts.Debug = true
		case normalized == "--":
			continue
		case strings.HasPrefix(normalized, "--"):
			fmt.Fprintf(stderr, "unknown option %s\n", original)
			return exitError
		default:
			files = append(files, original)
		}
	}

	if len(files) == 0 {
		return Usage(program, stdout)
	}

	output, filesCount, err := runCore(ctx, opts, files, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitError
	}

	if output != "" {
		fmt.Fprint(stdout, output)
	}

	if opts.LogFile != "" {
		if err := os.WriteFile(opts.LogFile, []byte(output), 0644); err != nil {
			fmt.Fprintln(stderr, err.Error())
			return exitError
		}
	}

	if filesCount > 0 {
		return exitOK
	}

	return exitError
}

func programName(arg0 string) string {
	name := filepath.Base(arg0)
	if runtime.GOOS == "windows" {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func normalizeArg(arg string) string {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		eq = len(arg)
	}

	lower := strings.ToLower(arg[:eq])
	return lower + arg[eq:]
}

func valueAfterEqual(arg string) (string, bool) {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		return "", false
	}
	return arg[eq+1:], true
}

// parseSize accepts a byte count with an optional K, M or G suffix (powers of 1024).
func parseSize(value string) (int64, error) {
	upper := strings.ToUpper(strings.TrimSpace(value))
	shift := 0
	switch {
	case strings.HasSuffix(upper, "K"):
		shift = 10
	case strings.HasSuffix(upper, "M"):
		shift = 20
	case strings.HasSuffix(upper, "G"):
		shift = 30
	}
	if shift > 0 {
		upper = upper[:len(upper)-1]
	}
	n, err := strconv.ParseInt(upper, 10, 64)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("must be positive")
	}
	return n << shift, nil
}

func newLogger(stderr io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func runCore(ctx context.Context, opts Options, files []string, stderr io.Writer) (string, int, error) {
	if opts.Output != "" && !strings.EqualFold(opts.Output, "Text") && !strings.EqualFold(opts.Output, "JSON") {
		return "", 0, fmt.Errorf("output format not implemented: %s", opts.Output)
	}

	probeOpts := mpegps.DefaultOptions()
	if opts.ScanBudget > 0 {
		probeOpts.ScanBudget = opts.ScanBudget
	}
	if opts.Jobs > 0 {
		probeOpts.Concurrency = opts.Jobs
	}
	probeOpts.Timeout = opts.Timeout
	probeOpts.TrailingGOP = opts.TrailingGOP
	probeOpts.Logger = newLogger(stderr, opts.Debug)

	results, count, err := mpegps.ProbeFiles(ctx, files, probeOpts)
	if err != nil {
		return "", 0, err
	}
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintln(stderr, res.Err.Error())
		}
	}

	if strings.EqualFold(opts.Output, "JSON") {
		return mpegps.RenderJSON(results), count, nil
	}
	return mpegps.RenderText(results), count, nil
}
