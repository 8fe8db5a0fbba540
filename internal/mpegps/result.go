package mpegps

// Result holds the technical details gathered by one probe. It is built once
// at the end of the scan and never modified afterwards.
type Result struct {
	Width       uint
	Height      uint
	FrameRate   float64
	VideoCodec  VideoCodec
	AudioCodec  AudioCodec
	AspectRatio AspectRatio

	VideoBitRate      uint64
	CustomMatrix      bool
	Profile           string
	ChromaSubsampling string
	ScanType          string
	AudioBitRateKbps  int
	TimeCode          string
	LastTimeCode      string
}

// FileResult pairs a path with its probe outcome.
type FileResult struct {
	Path   string
	Result Result
	Err    error
}
