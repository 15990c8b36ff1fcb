package weft

import (
	"fmt"

	"github.com/nefry/weft/specs"
)

// NewResponseBuilder creates a builder for an outgoing response.
// Without any calls Build yields the zero response, "HTTP/1.1 200 OK".
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{resp: &Response{}}
}

// ResponseBuilder composes a [Response] step by step, with the same
// stick-on-first-error contract as [RequestBuilder].
type ResponseBuilder struct {
	resp *Response
	err  error
}

// Status sets the status code and defaults the reason phrase to its
// standard detail when none was set explicitly.
func (b *ResponseBuilder) Status(status specs.StatusCode) *ResponseBuilder {
	if b.err == nil {
		b.resp.Status = status
		if b.resp.Reason == "" {
			b.resp.Reason = status.Detail()
		}
	}
	return b
}

// Reason sets the status line reason phrase.
func (b *ResponseBuilder) Reason(reason string) *ResponseBuilder {
	if b.err == nil {
		b.resp.Reason = reason
	}
	return b
}

// Version sets the protocol version.
func (b *ResponseBuilder) Version(version specs.HttpVersion) *ResponseBuilder {
	if b.err == nil {
		if !version.IsValid() {
			b.err = fmt.Errorf("weft: unsupported http version '%s'", version)
		} else {
			b.resp.Version = version
		}
	}
	return b
}

// Header sets a header field, canonicalizing the name to title case.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	if b.err == nil {
		b.err = putHeader(b.resp.Header(), name, value)
	}
	return b
}

// Body appends data to the response body,
// keeping the Content-Length header in step.
func (b *ResponseBuilder) Body(data []byte) *ResponseBuilder {
	if b.err == nil {
		b.resp.AddData(data)
	}
	return b
}

// Chunk appends data as an explicit chunk, switching the response to
// chunked framing.
func (b *ResponseBuilder) Chunk(data []byte) *ResponseBuilder {
	if b.err == nil {
		b.resp.AddChunk(data)
	}
	return b
}

// Build returns the composed response,
// or the first error a builder call hit.
func (b *ResponseBuilder) Build() (*Response, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.resp, nil
}
