package mpegps

import (
	"log/slog"
)

const (
	startCodePicture        = 0x00
	startCodeFirstSlice     = 0x01
	startCodeSequenceHeader = 0xB3
	startCodeExtension      = 0xB5
	startCodeGOP            = 0xB8
	startCodePack           = 0xBA
	startCodePrivate1       = 0xBD
	startCodePadding        = 0xBE
	startCodePrivate2       = 0xBF
	startCodeAudio          = 0xC0
	startCodeAudioAlt       = 0xD0
	startCodeVideo          = 0xE0
)

const (
	packHeaderSkip       = 8
	sequenceHeaderSize   = 8
	quantMatrixSize      = 64
	extensionWordSize    = 4
	sequenceExtensionID  = 1
	audioSyncWindow      = 20
	audioFrameHeaderTail = 2
)

// dispatcher parses the fixed fields that follow a start code and reports how
// many payload bytes the scanner may skip before looking for the next one.
type dispatcher struct {
	c   *cursor
	acc *accumulator
	log *slog.Logger

	// videoPayloadEnd is the end offset of the video PES payload being
	// scanned for a sequence header; zero when none is tracked.
	videoPayloadEnd int64
}

func newDispatcher(c *cursor, acc *accumulator, log *slog.Logger) *dispatcher {
	return &dispatcher{c: c, acc: acc, log: log}
}

func (d *dispatcher) dispatch(sc StartCode) (int64, error) {
	if d.acc.videoLatched() {
		d.acc.pendingExtension = false
	}
	switch sc.ID {
	case startCodeSequenceHeader:
		return d.parseSequenceHeader()
	case startCodeExtension:
		return 0, d.parseExtension()
	case startCodeGOP:
		if err := d.parseGOP(); err != nil {
			return 0, err
		}
		return d.remainingVideoPayload(), nil
	case startCodePicture, startCodeFirstSlice:
		return d.remainingVideoPayload(), nil
	case startCodePack:
		return packHeaderSkip, nil
	case startCodePadding:
		length, err := d.c.readUint16()
		return int64(length), err
	case startCodeVideo:
		length, err := d.c.readUint16()
		if err != nil {
			return 0, err
		}
		if d.acc.videoLatched() {
			return int64(length), nil
		}
		d.videoPayloadEnd = d.c.offset() + int64(length)
		return 0, nil
	case startCodePrivate1, startCodePrivate2:
		return d.parsePrivate()
	case startCodeAudio, startCodeAudioAlt:
		return d.parseAudio()
	default:
		return 0, nil
	}
}

// remainingVideoPayload returns the unscanned part of the tracked video
// payload once the sequence header has been found.
func (d *dispatcher) remainingVideoPayload() int64 {
	if !d.acc.videoLatched() || d.videoPayloadEnd == 0 {
		return 0
	}
	remaining := d.videoPayloadEnd - d.c.offset()
	d.videoPayloadEnd = 0
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (d *dispatcher) insideVideoPayload(n int) bool {
	return d.videoPayloadEnd != 0 && d.c.offset()+int64(n) <= d.videoPayloadEnd
}

func (d *dispatcher) parseSequenceHeader() (int64, error) {
	if d.acc.videoLatched() {
		return 0, nil
	}
	data, err := d.c.readFull(sequenceHeaderSize)
	if err != nil {
		return 0, err
	}
	br := newBitReader(data)
	h := sequenceHeader{}
	h.width = uint16(br.readBitsValue(12))
	h.height = uint16(br.readBitsValue(12))
	h.aspectCode = uint8(br.readBitsValue(4))
	h.frameRateCode = uint8(br.readBitsValue(4))
	h.bitRate = uint32(br.readBitsValue(18))
	_ = br.readBitsValue(1)  // marker
	_ = br.readBitsValue(10) // vbv_buffer_size
	_ = br.readBitsValue(1)  // constrained_parameters_flag
	h.intraMatrix = br.readFlag()

	skip := int64(0)
	if h.intraMatrix {
		// The intra matrix starts on the last bit of the header, which pushes
		// load_non_intra_quantiser_matrix into the low bit of its final byte.
		matrix, err := d.c.readFull(quantMatrixSize)
		if err != nil {
			return 0, err
		}
		h.nonIntraMatrix = matrix[quantMatrixSize-1]&0x01 == 1
	} else {
		h.nonIntraMatrix = br.readFlag()
	}
	if h.nonIntraMatrix {
		skip += quantMatrixSize
	}

	d.acc.latchSequenceHeader(h)
	d.log.Debug("sequence header",
		"width", h.width,
		"height", h.height,
		"aspect_code", h.aspectCode,
		"frame_rate_code", h.frameRateCode,
	)
	return skip, nil
}

func (d *dispatcher) parseExtension() error {
	if !d.acc.videoLatched() || d.acc.ext != nil {
		return nil
	}
	data, err := d.c.readFull(extensionWordSize)
	if err != nil {
		return err
	}
	br := newBitReader(data)
	if br.readBitsValue(4) != sequenceExtensionID {
		return nil
	}
	ext := sequenceExtension{}
	ext.profileLevel = uint8(br.readBitsValue(8))
	ext.progressive = br.readFlag()
	ext.chromaFormat = uint8(br.readBitsValue(2))
	d.acc.latchSequenceExtension(ext)
	return nil
}

func (d *dispatcher) parseGOP() error {
	if !d.acc.videoLatched() || d.acc.firstGOP != nil || !d.insideVideoPayload(gopHeaderSize) {
		return nil
	}
	data, err := d.c.readFull(gopHeaderSize)
	if err != nil {
		return err
	}
	if h, ok := parseGOPHeader(data); ok {
		d.acc.latchGOP(h)
	}
	return nil
}

func (d *dispatcher) parsePrivate() (int64, error) {
	length, err := d.c.readUint16()
	if err != nil {
		return 0, err
	}
	if d.acc.audioLatched() || length == 0 {
		return int64(length), nil
	}
	sub, err := d.c.readFull(1)
	if err != nil {
		return 0, err
	}
	d.acc.observePrivate(sub[0] >> 4)
	return int64(length) - 1, nil
}

// parseAudio looks for an MPEG audio frame header within the first bytes of
// the packet. PES header stuffing is 0xFF, so candidates whose bitrate or
// sample rate index is invalid are passed over.
func (d *dispatcher) parseAudio() (int64, error) {
	length, err := d.c.readUint16()
	if err != nil {
		return 0, err
	}
	if d.acc.audioLatched() {
		return int64(length), nil
	}
	window := min(int(length), audioSyncWindow+audioFrameHeaderTail)
	data, err := d.c.readFull(window)
	if err != nil {
		return 0, err
	}
	info, ok := findAudioFrame(data)
	if !ok {
		d.log.Debug("MPEG audio sync not found", "offset", d.c.offset())
		d.acc.observeAudio(nil)
	} else {
		d.acc.observeAudio(&info)
	}
	return int64(length) - int64(window), nil
}

func findAudioFrame(data []byte) (audioFrameInfo, bool) {
	for i := 0; i < audioSyncWindow && i+audioFrameHeaderTail < len(data); i++ {
		if data[i] != 0xFF || data[i+1]&0xE0 != 0xE0 {
			continue
		}
		layer := audioLayer((data[i+1] >> 1) & 0x03)
		bitrateIndex := data[i+2] >> 4
		sampleRateIndex := (data[i+2] >> 2) & 0x03
		if layer == 0 || bitrateIndex == 0x0F || sampleRateIndex == 0x03 {
			continue
		}
		return audioFrameInfo{layer: layer, bitrateIndex: bitrateIndex}, true
	}
	return audioFrameInfo{}, false
}
