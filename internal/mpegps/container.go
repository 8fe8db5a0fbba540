package mpegps

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
)

const (
	cdxaSectorSize    = 2352
	cdxaSectorHeader  = 24 // sync, address header and XA subheader
	cdxaMaxSectors    = 32
	riffHeaderSize    = 12
	riffChunkHdrSize  = 8
	riffDataChunkName = "data"
)

var (
	packStartCode = []byte{0x00, 0x00, 0x01, 0xBA}
	riffMagic     = []byte("RIFF")
	cdxaForm      = []byte("CDXA")
	cdSyncPattern = []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}
)

// detectContainer leaves the cursor on the first pack start code of the
// program stream, unwrapping a Video-CD RIFF/CDXA file when needed.
func detectContainer(c *cursor, log *slog.Logger) (Container, error) {
	magic := c.peek(4)
	switch {
	case bytes.Equal(magic, packStartCode):
		return ContainerMPEGPS, nil
	case bytes.Equal(magic, riffMagic):
	default:
		log.Debug("not a MPEG-PS file", "magic", fmt.Sprintf("%x", magic))
		return "", ErrInvalidContainer
	}

	header, err := c.readFull(riffHeaderSize)
	if err != nil {
		return "", err
	}
	if form := header[8:12]; !bytes.Equal(form, cdxaForm) {
		log.Debug("unknown RIFF file", "form", string(form))
		return "", fmt.Errorf("%w: RIFF form %q", ErrUnsupportedWrapper, form)
	}
	if err := findMPEGInCDXA(c); err != nil {
		return "", err
	}
	return ContainerCDXA, nil
}

func findMPEGInCDXA(c *cursor) error {
	for {
		hdr, err := c.readFull(riffChunkHdrSize)
		if err != nil {
			return fmt.Errorf("%w: no data chunk", ErrUnsupportedWrapper)
		}
		if string(hdr[:4]) == riffDataChunkName {
			break
		}
		size := int64(binary.LittleEndian.Uint32(hdr[4:8]))
		if err := c.skip(size + size&1); err != nil {
			return wrapCDXAError(err, "chunk %q", hdr[:4])
		}
	}

	for sector := 0; sector < cdxaMaxSectors; sector++ {
		head, err := c.readFull(cdxaSectorHeader)
		if err != nil {
			return wrapCDXAError(err, "sector %d", sector)
		}
		if !bytes.Equal(head[:len(cdSyncPattern)], cdSyncPattern) {
			return fmt.Errorf("%w: sector %d lacks CD sync", ErrUnsupportedWrapper, sector)
		}
		if bytes.Equal(c.peek(len(packStartCode)), packStartCode) {
			return nil
		}
		if err := c.skip(cdxaSectorSize - cdxaSectorHeader); err != nil {
			return wrapCDXAError(err, "sector %d", sector)
		}
	}
	return fmt.Errorf("%w: no pack header within %d sectors", ErrUnsupportedWrapper, cdxaMaxSectors)
}

func wrapCDXAError(err error, format string, args ...any) error {
	if errors.Is(err, ErrTruncated) || errors.Is(err, errBudgetExhausted) {
		return fmt.Errorf("%w: %s", ErrUnsupportedWrapper, fmt.Sprintf(format, args...))
	}
	return err
}
