package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/autobrr/go-mpegprobe/internal/cli"
	"github.com/autobrr/go-mpegprobe/internal/mpegps"
)

var version = "dev"

const repoSlug = "autobrr/go-mpegprobe"

const rootLong = `Scan the start of MPEG program stream files (.mpg, .vob) and Video-CD
RIFF/CDXA files (.dat) and report resolution, frame rate, video codec,
audio codec and aspect ratio.

Probe options:
  --Output=TEXT|JSON   output format (default TEXT)
  --Budget=SIZE        bytes scanned per file, K/M/G suffixes (default 2M)
  --Timeout=DURATION   abort a probe after DURATION
  --Trailing-GOP       also report the time code of the last GOP
  --Jobs=N             files probed in parallel
  --LogFile=PATH       save the report to PATH
  --Debug              log scan details to stderr (or set DEBUG=1)`

const helpTemplate = `{{with or .Long .Short}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}`

func newRootCmd(ctx context.Context) *cobra.Command {
	root := &cobra.Command{
		Use:                "mpegprobe [options] <file> [file...]",
		Short:              "Report video and audio details of MPEG-PS and Video-CD files.",
		Long:               rootLong,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				_ = cmd.Help()
				return
			}
			os.Exit(cli.RunContext(ctx, append([]string{cmd.Name()}, args...), cmd.OutOrStdout(), cmd.ErrOrStderr()))
		},
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SetHelpTemplate(helpTemplate)
	root.AddCommand(newUpdateCmd(), newVersionCmd())
	return root
}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update mpegprobe",
		Long:  "Update mpegprobe to latest version (release builds only).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelfUpdate(cmd.Context(), cmd.OutOrStdout())
		},
		DisableFlagsInUseLine: true,
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print go-mpegprobe version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli.Version(cmd.OutOrStdout())
			return nil
		},
		DisableFlagsInUseLine: true,
	}
}

func main() {
	resolved := resolveVersion()
	cli.SetVersion(resolved)
	mpegps.SetAppVersion(resolved)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd(ctx).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		cancel()
		os.Exit(1)
	}
}

func runSelfUpdate(ctx context.Context, out io.Writer) error {
	if version == "" || version == "dev" {
		return errors.New("self-update is only available in release builds")
	}
	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("could not parse version: %w", err)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repoSlug))
	if err != nil {
		return fmt.Errorf("detect latest release of %s: %w", repoSlug, err)
	}
	if !found {
		return fmt.Errorf("no release of %s found for this platform", repoSlug)
	}
	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(out, "mpegprobe %s is up to date\n", mpegps.FormatVersion(current.String()))
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("update to %s: %w", latest.Version(), err)
	}

	fmt.Fprintf(out, "mpegprobe updated to %s\n", mpegps.FormatVersion(latest.Version()))
	return nil
}

// resolveVersion prefers the linker-set version, then the module version
// recorded by go install.
func resolveVersion() string {
	if version != "" && version != "dev" {
		return strings.TrimPrefix(version, "v")
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}
	return "dev"
}
