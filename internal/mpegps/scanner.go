package mpegps

type syncState uint8

const (
	syncSeek0 syncState = iota
	syncSeek1
	syncSeek2
)

// syncScanner finds 00 00 01 prefixes one byte at a time. Runs of zero bytes
// before the 01 are absorbed, so stuffing never hides a start code.
type syncScanner struct {
	state syncState
}

// feed consumes one byte and reports whether it completed a start code prefix.
func (s *syncScanner) feed(b byte) bool {
	switch s.state {
	case syncSeek0:
		if b == 0x00 {
			s.state = syncSeek1
		}
	case syncSeek1:
		if b == 0x00 {
			s.state = syncSeek2
		} else {
			s.state = syncSeek0
		}
	case syncSeek2:
		switch b {
		case 0x00:
		case 0x01:
			s.state = syncSeek0
			return true
		default:
			s.state = syncSeek0
		}
	}
	return false
}

// StartCode is a located 00 00 01 xx sequence. Offset points at the prefix.
type StartCode struct {
	ID     byte
	Offset int64
}

// nextStartCode scans forward until a start code is complete, leaving the
// cursor just past its id byte.
func (c *cursor) nextStartCode(s *syncScanner) (StartCode, error) {
	for {
		b, err := c.readByte()
		if err != nil {
			return StartCode{}, err
		}
		if !s.feed(b) {
			continue
		}
		id, err := c.readByte()
		if err != nil {
			return StartCode{}, err
		}
		return StartCode{ID: id, Offset: c.off - 4}, nil
	}
}
