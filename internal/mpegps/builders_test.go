package mpegps

import (
	"bytes"
	"encoding/binary"
)

func startCode(id byte) []byte {
	return []byte{0x00, 0x00, 0x01, id}
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// mpeg1PackHeader is a complete 12-byte MPEG-1 pack header.
func mpeg1PackHeader() []byte {
	return concat(startCode(startCodePack), []byte{0x21, 0x00, 0x01, 0x00, 0x01, 0x80, 0x1B, 0x91})
}

func sequenceHeaderBytes(width, height uint16, aspect, frameRate uint8) []byte {
	word1 := uint32(width)<<20 | uint32(height)<<8 | uint32(aspect)<<4 | uint32(frameRate)
	// bit_rate 3750 (1.5 Mb/s), marker, vbv_buffer_size 20, no custom matrices.
	word2 := uint32(3750)<<14 | 1<<13 | uint32(20)<<3
	buf := make([]byte, 8)
	binary.BigEndian.PutUint32(buf[0:4], word1)
	binary.BigEndian.PutUint32(buf[4:8], word2)
	return concat(startCode(startCodeSequenceHeader), buf)
}

func sequenceExtensionBytes(extID, profileLevel uint8, progressive bool, chroma uint8) []byte {
	word := uint32(extID)<<28 | uint32(profileLevel)<<20 | uint32(chroma)<<17 | 1
	if progressive {
		word |= 1 << 19
	}
	buf := make([]byte, 6)
	binary.BigEndian.PutUint32(buf[0:4], word)
	buf[4] = 0x11
	buf[5] = 0x80
	return concat(startCode(startCodeExtension), buf)
}

func gopBytes(hours, minutes, seconds, pictures uint8) []byte {
	word := uint32(hours)<<26 | uint32(minutes)<<20 | 1<<19 | uint32(seconds)<<13 | uint32(pictures)<<7 | 1<<6
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, word)
	return concat(startCode(startCodeGOP), buf)
}

func pictureBytes() []byte {
	return concat(startCode(startCodePicture), []byte{0x11, 0x22, 0x33, 0x44})
}

func pesBytes(id byte, payload []byte) []byte {
	hdr := make([]byte, 2)
	binary.BigEndian.PutUint16(hdr, uint16(len(payload)))
	return concat(startCode(id), hdr, payload)
}

func filler(n int, b byte) []byte {
	return bytes.Repeat([]byte{b}, n)
}

// videoPES wraps elementary stream data behind a one-byte MPEG-1 PES header.
func videoPES(es ...[]byte) []byte {
	return pesBytes(startCodeVideo, concat(append([][]byte{{0x0F}}, es...)...))
}

// mpegAudioPES carries one MPEG-1 audio frame header with the given layer
// bits (3 = Layer I, 2 = Layer II, 1 = Layer III) and bitrate index.
func mpegAudioPES(id byte, layer, bitrateIndex uint8) []byte {
	frame := []byte{0xFF, 0xF8 | layer<<1 | 0x01, bitrateIndex << 4, 0xC4}
	return pesBytes(id, concat([]byte{0x0F}, frame, filler(40, 0x55)))
}

func privatePES(id, firstByte byte) []byte {
	return pesBytes(id, concat([]byte{firstByte}, filler(30, 0x66)))
}

type streamSpec struct {
	width, height uint16
	aspect        uint8
	frameRate     uint8
	mpeg2         bool
	audio         []byte
}

// buildStream lays out a minimal program stream: pack, video PES with the
// sequence header, an optional audio packet and the end code.
func buildStream(s streamSpec) []byte {
	es := [][]byte{sequenceHeaderBytes(s.width, s.height, s.aspect, s.frameRate)}
	if s.mpeg2 {
		es = append(es, sequenceExtensionBytes(1, 0x48, false, 1))
	}
	es = append(es, gopBytes(0, 0, 0, 0), pictureBytes(), filler(64, 0x77))
	return concat(
		mpeg1PackHeader(),
		videoPES(es...),
		mpeg1PackHeader(),
		s.audio,
		startCode(0xB9),
	)
}

// wrapCDXA embeds ps in a RIFF/CDXA file whose data chunk starts with
// emptySectors sectors that carry no pack header.
func wrapCDXA(ps []byte, emptySectors int) []byte {
	const userData = cdxaSectorSize - cdxaSectorHeader
	sectorHeader := concat(cdSyncPattern, []byte{0x00, 0x02, 0x00, 0x02, 0x01, 0x01, 0x62, 0x0F, 0x01, 0x01, 0x62, 0x0F})

	var data []byte
	for i := 0; i < emptySectors; i++ {
		data = append(data, sectorHeader...)
		data = append(data, filler(userData, 0xAA)...)
	}
	data = append(data, sectorHeader...)
	data = append(data, ps...)
	data = append(data, filler(userData-len(ps), 0x00)...)

	fmtChunk := concat([]byte("fmt "), le32(16), filler(16, 0x01))
	body := concat([]byte("CDXA"), fmtChunk, []byte("data"), le32(uint32(len(data))), data)
	return concat([]byte("RIFF"), le32(uint32(len(body))), body)
}

func le32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}
