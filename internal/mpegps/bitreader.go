package mpegps

// bitReader reads MSB-first bit fields from a fixed header buffer.
type bitReader struct {
	data []byte
	pos  int
	bit  uint8
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

// readBits returns ok=false once the buffer is exhausted.
func (br *bitReader) readBits(n uint8) (uint64, bool) {
	var value uint64
	for i := uint8(0); i < n; i++ {
		if br.pos >= len(br.data) {
			return 0, false
		}
		bit := (br.data[br.pos] >> (7 - br.bit)) & 1
		value = (value << 1) | uint64(bit)
		br.bit++
		if br.bit == 8 {
			br.bit = 0
			br.pos++
		}
	}
	return value, true
}

func (br *bitReader) readBitsValue(n uint8) uint64 {
	value, _ := br.readBits(n)
	return value
}

func (br *bitReader) readFlag() bool {
	return br.readBitsValue(1) == 1
}
