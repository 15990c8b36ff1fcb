package weft

import (
	"io"

	"github.com/valyala/bytebufferpool"

	"github.com/nefry/weft/specs"
)

// Request is a typed http request message.
//
// Target is the request target exactly as it appeared on the wire, it
// is never url-decoded here. The zero value serializes as
// "GET / HTTP/1.1".
type Request struct {
	content

	Method  specs.HttpMethod
	Target  string
	Version specs.HttpVersion
}

func (req *Request) method() specs.HttpMethod {
	if req.Method == "" {
		return specs.HttpMethodGet
	}
	return req.Method
}

func (req *Request) target() string {
	if req.Target == "" {
		return "/"
	}
	return req.Target
}

func (req *Request) version() specs.HttpVersion {
	if req.Version == "" {
		return specs.HttpVersion11
	}
	return req.Version
}

func (req *Request) fill(buf *bytebufferpool.ByteBuffer) {
	buf.WriteString(string(req.method()))
	buf.WriteByte(' ')
	buf.WriteString(req.target())
	buf.WriteByte(' ')
	buf.WriteString(string(req.version()))
	buf.WriteString("\r\n")
	req.writeHeaderTo(buf)
	req.writeBodyTo(buf)
}

// WriteTo serializes the request to its wire bytes: request line,
// headers in insertion order, blank line, then the raw or chunked
// body. Parsing the output yields an equal request.
func (req *Request) WriteTo(writer io.Writer) (int64, error) {
	return writeBuffer(writer, req.fill)
}

// Bytes returns the serialized wire bytes, see [Request.WriteTo].
func (req *Request) Bytes() []byte {
	return bufferBytes(req.fill)
}

func (req *Request) contentRef() *content {
	return &req.content
}
