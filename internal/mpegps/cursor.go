package mpegps

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"io"
)

const (
	cursorBufferSize = 64 << 10
	ctxCheckInterval = 16 << 10
)

// cursor is the single owner of the byte source during a probe. The offset
// only moves forward; skips inside the read buffer are discarded, longer ones
// seek the source.
type cursor struct {
	ctx       context.Context
	src       io.ReadSeeker
	r         *bufio.Reader
	off       int64
	limit     int64
	nextCheck int64
}

func newCursor(ctx context.Context, src io.ReadSeeker, limit int64) *cursor {
	return &cursor{
		ctx:       ctx,
		src:       src,
		r:         bufio.NewReaderSize(src, cursorBufferSize),
		limit:     limit,
		nextCheck: ctxCheckInterval,
	}
}

func (c *cursor) offset() int64 {
	return c.off
}

func (c *cursor) checkContext() error {
	if c.off < c.nextCheck {
		return nil
	}
	c.nextCheck = c.off + ctxCheckInterval
	return c.ctx.Err()
}

func (c *cursor) readByte() (byte, error) {
	if c.off >= c.limit {
		return 0, errBudgetExhausted
	}
	if err := c.checkContext(); err != nil {
		return 0, err
	}
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, err
	}
	c.off++
	return b, nil
}

// peek returns the next n bytes without advancing. Fewer bytes are returned at EOF.
func (c *cursor) peek(n int) []byte {
	buf, _ := c.r.Peek(n)
	return buf
}

// readFull reads a fixed-size field. A short read is reported as ErrTruncated.
func (c *cursor) readFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(c.r, buf)
	c.off += int64(read)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncated
		}
		return nil, err
	}
	return buf, nil
}

func (c *cursor) readUint16() (uint16, error) {
	buf, err := c.readFull(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

func (c *cursor) skip(n int64) error {
	if n <= 0 {
		return nil
	}
	if c.off+n > c.limit {
		return errBudgetExhausted
	}
	if n <= int64(c.r.Buffered()) {
		discarded, err := c.r.Discard(int(n))
		c.off += int64(discarded)
		if err != nil {
			return err
		}
		return c.checkContext()
	}
	target := c.off + n
	if _, err := c.src.Seek(target, io.SeekStart); err != nil {
		return err
	}
	c.r.Reset(c.src)
	c.off = target
	return c.checkContext()
}
