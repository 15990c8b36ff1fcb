// Package weft implements an http/1.1 message transcoder: it parses
// requests and responses from any byte stream into typed values and
// serializes those values back to the exact wire bytes, with fixed
// length and chunked body framing.
package weft

import (
	"io"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/nefry/weft/specs"
)

// ChunkRange is one entry of a message chunk index: the byte offsets
// of a decoded chunk payload inside the reassembled body buffer.
// A trailing (0,0) entry is a sentinel marking the body as a
// terminated chunked stream, it is not a real offset.
type ChunkRange struct {
	Start int
	End   int
}

func (r ChunkRange) sentinel() bool {
	return r.Start == 0 && r.End == 0
}

// Message is the surface shared by [Request] and [Response]: header
// access, the reassembled body and wire serialization.
type Message interface {
	Header() *specs.Headers
	Body() []byte
	Chunked() bool
	ChunkIndex() []ChunkRange
	WriteTo(writer io.Writer) (int64, error)
	Bytes() []byte

	contentRef() *content
}

// content carries what requests and responses share: the ordered
// header fields, the reassembled body and its chunk index.
type content struct {
	header  *specs.Headers
	body    []byte
	chunks  []ChunkRange
	chunked bool
}

// Header returns the message header fields, allocating them on first
// use so a zero value message works.
func (c *content) Header() *specs.Headers {
	if c.header == nil {
		c.header = specs.NewHeaders()
	}
	return c.header
}

// Body returns the reassembled body bytes. For a chunked message this
// is the concatenation of every decoded chunk payload.
func (c *content) Body() []byte {
	return c.body
}

// Chunked checks if the body was framed in chunks and must serialize
// back in chunked form.
func (c *content) Chunked() bool {
	return c.chunked
}

// ChunkIndex returns the chunk offset ranges, including the trailing
// (0,0) sentinel of a terminated chunked body. Empty unless the
// message is chunked.
func (c *content) ChunkIndex() []ChunkRange {
	return c.chunks
}

// AddData appends data to the body.
//
// On a chunked message the data becomes one more chunk before the
// terminator. Otherwise the body grows in place and the
// Content-Length header is kept in step.
func (c *content) AddData(data []byte) {
	if len(data) == 0 {
		return
	}
	if c.chunked {
		c.AddChunk(data)
		return
	}
	c.body = append(c.body, data...)
	c.Header().Set(specs.HeaderContentLength, strconv.Itoa(len(c.body)))
}

// AddChunk appends data as an explicit chunk, switching the message to
// chunked framing. The terminator sentinel stays at the tail and the
// Transfer-Encoding header replaces any Content-Length.
func (c *content) AddChunk(data []byte) {
	if len(data) == 0 {
		return
	}
	if n := len(c.chunks); n > 0 && c.chunks[n-1].sentinel() {
		c.chunks = c.chunks[:n-1]
	}
	start := len(c.body)
	c.body = append(c.body, data...)
	c.chunks = append(c.chunks, ChunkRange{start, len(c.body)}, ChunkRange{})
	if !c.chunked {
		c.chunked = true
		c.Header().Del(specs.HeaderContentLength)
		c.Header().Set(specs.HeaderTransferEncoding, specs.TransferEncodingChunked)
	}
}

func (c *content) writeHeaderTo(buf *bytebufferpool.ByteBuffer) {
	if c.header != nil {
		for name, value := range c.header.All() {
			buf.WriteString(name)
			buf.WriteString(": ")
			buf.WriteString(value)
			buf.WriteString("\r\n")
		}
	}
	buf.WriteString("\r\n")
}

func (c *content) writeBodyTo(buf *bytebufferpool.ByteBuffer) {
	if !c.chunked {
		buf.Write(c.body)
		return
	}
	for _, chunk := range c.chunks {
		if chunk.sentinel() {
			buf.WriteString("0\r\n\r\n")
			continue
		}
		// Chunk sizes render in upper case hex.
		buf.WriteString(strings.ToUpper(strconv.FormatUint(uint64(chunk.End-chunk.Start), 16)))
		buf.WriteString("\r\n")
		buf.Write(c.body[chunk.Start:chunk.End])
		buf.WriteString("\r\n")
	}
}

func writeBuffer(writer io.Writer, fill func(buf *bytebufferpool.ByteBuffer)) (int64, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	fill(buf)
	n, err := writer.Write(buf.B)
	return int64(n), err
}

func bufferBytes(fill func(buf *bytebufferpool.ByteBuffer)) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	fill(buf)
	data := make([]byte, len(buf.B))
	copy(data, buf.B)
	return data
}
