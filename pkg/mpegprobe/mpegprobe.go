package mpegprobe

import (
	"context"
	"io"

	"github.com/autobrr/go-mpegprobe/internal/mpegps"
)

// Types
type Result = mpegps.Result
type FileResult = mpegps.FileResult
type Options = mpegps.Options
type Field = mpegps.Field
type ProbeError = mpegps.ProbeError
type VideoCodec = mpegps.VideoCodec
type AudioCodec = mpegps.AudioCodec
type AspectRatio = mpegps.AspectRatio

// Constants
const (
	VideoMPEG1 = mpegps.VideoMPEG1
	VideoMPEG2 = mpegps.VideoMPEG2

	AudioNone    = mpegps.AudioNone
	AudioMP1     = mpegps.AudioMP1
	AudioMP2     = mpegps.AudioMP2
	AudioMP3     = mpegps.AudioMP3
	AudioAC3     = mpegps.AudioAC3
	AudioPCM     = mpegps.AudioPCM
	AudioUnknown = mpegps.AudioUnknown

	AspectNone    = mpegps.AspectNone
	AspectDefault = mpegps.AspectDefault
	Aspect4x3     = mpegps.Aspect4x3
	Aspect16x9    = mpegps.Aspect16x9
	Aspect211x1   = mpegps.Aspect211x1

	DefaultScanBudget = mpegps.DefaultScanBudget
)

// Errors
var (
	ErrInvalidContainer   = mpegps.ErrInvalidContainer
	ErrUnsupportedWrapper = mpegps.ErrUnsupportedWrapper
	ErrNoSequenceHeader   = mpegps.ErrNoSequenceHeader
	ErrTruncated          = mpegps.ErrTruncated
	ErrRemotePath         = mpegps.ErrRemotePath
)

// Functions
func DefaultOptions() Options {
	return mpegps.DefaultOptions()
}

func ProbeFile(ctx context.Context, path string, opts Options) (Result, error) {
	return mpegps.ProbeFile(ctx, path, opts)
}

func ProbeReader(ctx context.Context, src io.ReadSeeker, opts Options) (Result, error) {
	return mpegps.ProbeReader(ctx, src, opts)
}

func ProbeFiles(ctx context.Context, paths []string, opts Options) ([]FileResult, int, error) {
	return mpegps.ProbeFiles(ctx, paths, opts)
}

// Rendering
func RenderText(results []FileResult) string {
	return mpegps.RenderText(results)
}

func RenderJSON(results []FileResult) string {
	return mpegps.RenderJSON(results)
}

func FormatVersion(version string) string {
	return mpegps.FormatVersion(version)
}

func SetAppVersion(version string) {
	mpegps.SetAppVersion(version)
}
