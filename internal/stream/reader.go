package stream

import (
	"bufio"
	"io"

	"github.com/nefry/weft/specs"
)

// Reader adapts a byte source to the primitives message parsing needs:
// delimiter reads, predicate skips, blank line peeks and exact-length
// reads. Every call blocks until it can be satisfied or the source
// reports end-of-data or failure.
type Reader struct {
	buf *bufio.Reader
}

// NewReader wraps a byte source. An existing *bufio.Reader, e.g. one
// taken from a [BufioReaderPool], is used as-is without double buffering.
func NewReader(reader io.Reader) *Reader {
	if buf, ok := reader.(*bufio.Reader); ok {
		return &Reader{buf: buf}
	}
	return &Reader{buf: bufio.NewReader(reader)}
}

// ReadUntil reads bytes up to and including the first occurrence of
// delim. End-of-data before the delimiter is not a failure: whatever was
// read is returned with a nil error, so an empty result means the source
// is drained. A positive max caps the read and fails with
// [specs.ErrTooLarge] beyond it.
func (r *Reader) ReadUntil(delim byte, max int) ([]byte, error) {
	var data []byte
	for {
		chunk, err := r.buf.ReadSlice(delim)
		data = append(data, chunk...)
		if max > 0 && len(data) > max {
			return nil, specs.ErrTooLarge
		}
		switch err {
		case bufio.ErrBufferFull:
			continue
		case io.EOF, nil:
			return data, nil
		default:
			return data, err
		}
	}
}

// SkipWhile consumes bytes while pred holds and reports how many were
// skipped.
func (r *Reader) SkipWhile(pred func(byte) bool) (int, error) {
	var count int
	for {
		b, err := r.buf.ReadByte()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		if !pred(b) {
			if err := r.buf.UnreadByte(); err != nil {
				return count, err
			}
			return count, nil
		}
		count++
	}
}

// AtBlankLine peeks whether the next bytes are a bare CRLF pair, without
// consuming them. End-of-data counts as blank so header loops terminate
// on truncated streams.
func (r *Reader) AtBlankLine() (bool, error) {
	peeked, err := r.buf.Peek(2)
	if len(peeked) < 2 {
		if err == nil || err == io.EOF {
			return true, nil
		}
		return false, err
	}
	return peeked[0] == '\r' && peeked[1] == '\n', nil
}

// SkipBlankLine consumes a single CRLF pair when one is next.
func (r *Reader) SkipBlankLine() error {
	peeked, err := r.buf.Peek(2)
	if len(peeked) >= 2 && peeked[0] == '\r' && peeked[1] == '\n' {
		_, err = r.buf.Discard(2)
		return err
	}
	if err == io.EOF {
		return nil
	}
	return err
}

// ReadFull reads exactly n bytes, failing with io.ErrUnexpectedEOF when
// the source ends early.
func (r *Reader) ReadFull(n int) ([]byte, error) {
	data := make([]byte, n)
	if _, err := io.ReadFull(r.buf, data); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return data, nil
}

// ReadToEnd drains the source and returns everything left. A positive
// max fails the read with [specs.ErrTooLarge] when the source holds more.
func (r *Reader) ReadToEnd(max int) ([]byte, error) {
	if max > 0 {
		data, err := io.ReadAll(io.LimitReader(r.buf, int64(max)+1))
		if err == nil && len(data) > max {
			return nil, specs.ErrTooLarge
		}
		return data, err
	}
	return io.ReadAll(r.buf)
}
