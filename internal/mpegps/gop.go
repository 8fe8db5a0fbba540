package mpegps

import "fmt"

const gopHeaderSize = 4

type gopHeader struct {
	dropFrame bool
	hours     uint8
	minutes   uint8
	seconds   uint8
	pictures  uint8
	closed    bool
	broken    bool
}

func parseGOPHeader(data []byte) (gopHeader, bool) {
	if len(data) < gopHeaderSize {
		return gopHeader{}, false
	}
	br := newBitReader(data)
	h := gopHeader{}
	h.dropFrame = br.readFlag()
	h.hours = uint8(br.readBitsValue(5))
	h.minutes = uint8(br.readBitsValue(6))
	if !br.readFlag() {
		// marker bit
		return gopHeader{}, false
	}
	h.seconds = uint8(br.readBitsValue(6))
	h.pictures = uint8(br.readBitsValue(6))
	h.closed = br.readFlag()
	h.broken = br.readFlag()
	if h.minutes > 59 || h.seconds > 59 {
		return gopHeader{}, false
	}
	return h, true
}

func (h gopHeader) timeCode() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", h.hours, h.minutes, h.seconds, h.pictures)
}
