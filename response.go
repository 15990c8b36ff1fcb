package weft

import (
	"io"
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/nefry/weft/specs"
)

// Response is a typed http response message.
//
// Reason carries the status line reason phrase verbatim. The zero
// value serializes as "HTTP/1.1 200 OK".
type Response struct {
	content

	Version specs.HttpVersion
	Status  specs.StatusCode
	Reason  string
}

func (resp *Response) version() specs.HttpVersion {
	if resp.Version == "" {
		return specs.HttpVersion11
	}
	return resp.Version
}

func (resp *Response) status() specs.StatusCode {
	if resp.Status == specs.StatusCodeUndefined {
		return specs.StatusCodeOK
	}
	return resp.Status
}

func (resp *Response) reason() string {
	if resp.Reason == "" && resp.Status == specs.StatusCodeUndefined {
		return specs.StatusCodeOK.Detail()
	}
	return resp.Reason
}

func (resp *Response) fill(buf *bytebufferpool.ByteBuffer) {
	buf.WriteString(string(resp.version()))
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(int(resp.status())))
	buf.WriteByte(' ')
	buf.WriteString(resp.reason())
	buf.WriteString("\r\n")
	resp.writeHeaderTo(buf)
	resp.writeBodyTo(buf)
}

// WriteTo serializes the response to its wire bytes: status line,
// headers in insertion order, blank line, then the raw or chunked
// body. Parsing the output yields an equal response.
func (resp *Response) WriteTo(writer io.Writer) (int64, error) {
	return writeBuffer(writer, resp.fill)
}

// Bytes returns the serialized wire bytes, see [Response.WriteTo].
func (resp *Response) Bytes() []byte {
	return bufferBytes(resp.fill)
}

func (resp *Response) contentRef() *content {
	return &resp.content
}
