package mpegps

import "fmt"

type VideoCodec string

const (
	VideoMPEG1 VideoCodec = "MPEG-1"
	VideoMPEG2 VideoCodec = "MPEG-2"
)

// AudioCodec is empty when no audio or private stream packet was seen.
type AudioCodec string

const (
	AudioNone    AudioCodec = ""
	AudioMP1     AudioCodec = "MP1"
	AudioMP2     AudioCodec = "MP2"
	AudioMP3     AudioCodec = "MP3"
	AudioAC3     AudioCodec = "AC3"
	AudioPCM     AudioCodec = "PCM"
	AudioUnknown AudioCodec = "Unknown"
)

// AspectRatio is only reported for MPEG-2 video. MPEG-1 pel aspect codes mean
// something else and are left unset.
type AspectRatio string

const (
	AspectNone    AspectRatio = ""
	AspectDefault AspectRatio = "Default"
	Aspect4x3     AspectRatio = "4:3"
	Aspect16x9    AspectRatio = "16:9"
	Aspect211x1   AspectRatio = "2.11:1"
)

type Container string

const (
	ContainerMPEGPS Container = "MPEG-PS"
	ContainerCDXA   Container = "CDXA"
)

// frameRateTable is indexed by the 4-bit frame_rate_code. Codes 9-13 are the
// unofficial economy rates written by some encoders; 0, 14 and 15 are reserved.
var frameRateTable = [16]float64{
	0,
	24000.0 / 1001.0,
	24,
	25,
	30000.0 / 1001.0,
	30,
	50,
	60000.0 / 1001.0,
	60,
	1,
	5,
	10,
	12,
	15,
	0,
	0,
}

// audioBitrateTable holds MPEG-1 audio bit rates in kb/s, one row per layer
// (I, II, III). Index 15 is the "bad" bitrate and has no entry.
var audioBitrateTable = [3][15]int{
	{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448},
	{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384},
	{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320},
}

var aspectRatioTable = [5]AspectRatio{AspectNone, AspectDefault, Aspect4x3, Aspect16x9, Aspect211x1}

func frameRateForCode(code uint8) float64 {
	if int(code) >= len(frameRateTable) {
		return 0
	}
	return frameRateTable[code]
}

// audioLayer is the raw 2-bit layer field: 3 is Layer I, 1 is Layer III.
type audioLayer uint8

func (l audioLayer) codec() AudioCodec {
	switch l {
	case 3:
		return AudioMP1
	case 2:
		return AudioMP2
	case 1:
		return AudioMP3
	default:
		return AudioUnknown
	}
}

func audioBitrateKbps(layer audioLayer, index uint8) int {
	if layer < 1 || layer > 3 {
		return 0
	}
	row := audioBitrateTable[3-layer]
	if int(index) >= len(row) {
		return 0
	}
	return row[index]
}

func aspectRatioForCode(code uint8) AspectRatio {
	if int(code) >= len(aspectRatioTable) {
		return AspectNone
	}
	return aspectRatioTable[code]
}

// Private stream substream types, taken from the high nibble of the first payload byte.
const (
	substreamAC3  = 0x8
	substreamLPCM = 0xA
)

func mapMPEG2Chroma(code uint8) string {
	switch code {
	case 1:
		return "4:2:0"
	case 2:
		return "4:2:2"
	case 3:
		return "4:4:4"
	default:
		return ""
	}
}

func mapMPEG2Profile(profileLevel uint8) string {
	profile := ""
	switch (profileLevel >> 4) & 0x07 {
	case 0x1:
		profile = "High"
	case 0x2:
		profile = "Spatial"
	case 0x3:
		profile = "SNR"
	case 0x4:
		profile = "Main"
	case 0x5:
		profile = "Simple"
	}
	level := ""
	switch profileLevel & 0x0F {
	case 0x4:
		level = "High"
	case 0x6:
		level = "High 1440"
	case 0x8:
		level = "Main"
	case 0xA:
		level = "Low"
	}
	if profile == "" || level == "" {
		return ""
	}
	return fmt.Sprintf("%s@%s", profile, level)
}
