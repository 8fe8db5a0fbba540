package mpegps

type sequenceHeader struct {
	width          uint16
	height         uint16
	aspectCode     uint8
	frameRateCode  uint8
	bitRate        uint32
	intraMatrix    bool
	nonIntraMatrix bool
}

type sequenceExtension struct {
	profileLevel uint8
	progressive  bool
	chromaFormat uint8
}

type audioFrameInfo struct {
	layer        audioLayer
	bitrateIndex uint8
}

type privateStreamInfo struct {
	substream uint8
}

// accumulator collects latched stream parameters for one probe.
type accumulator struct {
	seq       *sequenceHeader
	ext       *sequenceExtension
	audio     *audioFrameInfo
	private   *privateStreamInfo
	audioSeen bool
	firstGOP  *gopHeader

	// pendingExtension holds the scan open for the start code right after
	// the sequence header, where an MPEG-2 sequence extension sits.
	pendingExtension bool

	lastTimeCode string
}

func (a *accumulator) latchSequenceHeader(h sequenceHeader) {
	if a.seq != nil {
		return
	}
	a.seq = &h
	a.pendingExtension = true
}

func (a *accumulator) latchSequenceExtension(ext sequenceExtension) {
	if a.ext != nil {
		return
	}
	a.ext = &ext
}

func (a *accumulator) latchGOP(h gopHeader) {
	if a.firstGOP != nil {
		return
	}
	a.firstGOP = &h
}

// observeAudio records an MPEG audio packet. A nil info marks a packet whose
// frame header could not be found.
func (a *accumulator) observeAudio(info *audioFrameInfo) {
	a.audioSeen = true
	if info == nil || a.audioLatched() {
		return
	}
	a.audio = info
}

func (a *accumulator) observePrivate(substream uint8) {
	a.audioSeen = true
	if a.audioLatched() {
		return
	}
	if substream == substreamAC3 || substream == substreamLPCM {
		a.private = &privateStreamInfo{substream: substream}
	}
}

func (a *accumulator) videoLatched() bool {
	return a.seq != nil
}

func (a *accumulator) audioLatched() bool {
	return a.audio != nil || a.private != nil
}

func (a *accumulator) done() bool {
	return a.videoLatched() && a.audioLatched() && !a.pendingExtension
}

func (a *accumulator) finalize() Result {
	r := Result{VideoCodec: VideoMPEG1}
	if seq := a.seq; seq != nil {
		r.Width = uint(seq.width)
		r.Height = uint(seq.height)
		r.FrameRate = frameRateForCode(seq.frameRateCode)
		r.CustomMatrix = seq.intraMatrix || seq.nonIntraMatrix
		// 0x3FFFF signals variable bit rate.
		if seq.bitRate != 0 && seq.bitRate != 0x3FFFF {
			r.VideoBitRate = uint64(seq.bitRate) * 400
		}
	}
	if ext := a.ext; ext != nil {
		r.VideoCodec = VideoMPEG2
		r.Profile = mapMPEG2Profile(ext.profileLevel)
		r.ChromaSubsampling = mapMPEG2Chroma(ext.chromaFormat)
		if ext.progressive {
			r.ScanType = "Progressive"
		} else {
			r.ScanType = "Interlaced"
		}
		if a.seq != nil {
			r.AspectRatio = aspectRatioForCode(a.seq.aspectCode)
		}
	}
	switch {
	case a.audio != nil:
		r.AudioCodec = a.audio.layer.codec()
		r.AudioBitRateKbps = audioBitrateKbps(a.audio.layer, a.audio.bitrateIndex)
	case a.private != nil && a.private.substream == substreamAC3:
		r.AudioCodec = AudioAC3
	case a.private != nil && a.private.substream == substreamLPCM:
		r.AudioCodec = AudioPCM
	case a.audioSeen:
		r.AudioCodec = AudioUnknown
	default:
		r.AudioCodec = AudioNone
	}
	if a.firstGOP != nil {
		r.TimeCode = a.firstGOP.timeCode()
	}
	r.LastTimeCode = a.lastTimeCode
	return r
}
