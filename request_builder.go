package weft

import (
	"fmt"

	"golang.org/x/net/http/httpguts"

	"github.com/nefry/weft/internal/plain"
	"github.com/nefry/weft/specs"
)

// NewRequestBuilder creates a builder for an outgoing request.
// Without any calls Build yields the zero request, "GET / HTTP/1.1".
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{req: &Request{}}
}

// RequestBuilder composes a [Request] step by step. The first invalid
// input sticks and surfaces from Build; later calls are no-ops.
//
// Composed header names are canonicalized to title case and validated,
// unlike parsed messages which keep their wire spellings untouched.
type RequestBuilder struct {
	req *Request
	err error
}

// Method sets the request method.
func (b *RequestBuilder) Method(method specs.HttpMethod) *RequestBuilder {
	if b.err == nil {
		if !method.IsValid() {
			b.err = fmt.Errorf("weft: unsupported http method '%s'", method)
		} else {
			b.req.Method = method
		}
	}
	return b
}

// Url sets the request target from the url's origin form,
// path with query and fragment.
func (b *RequestBuilder) Url(url *specs.Url) *RequestBuilder {
	if b.err == nil {
		b.req.Target = url.Target()
	}
	return b
}

// Path sets the request target verbatim.
func (b *RequestBuilder) Path(target string) *RequestBuilder {
	if b.err == nil {
		b.req.Target = target
	}
	return b
}

// Version sets the protocol version.
func (b *RequestBuilder) Version(version specs.HttpVersion) *RequestBuilder {
	if b.err == nil {
		if !version.IsValid() {
			b.err = fmt.Errorf("weft: unsupported http version '%s'", version)
		} else {
			b.req.Version = version
		}
	}
	return b
}

// Header sets a header field, canonicalizing the name to title case.
func (b *RequestBuilder) Header(name, value string) *RequestBuilder {
	if b.err == nil {
		b.err = putHeader(b.req.Header(), name, value)
	}
	return b
}

// Body appends data to the request body,
// keeping the Content-Length header in step.
func (b *RequestBuilder) Body(data []byte) *RequestBuilder {
	if b.err == nil {
		b.req.AddData(data)
	}
	return b
}

// Chunk appends data as an explicit chunk, switching the request to
// chunked framing.
func (b *RequestBuilder) Chunk(data []byte) *RequestBuilder {
	if b.err == nil {
		b.req.AddChunk(data)
	}
	return b
}

// Build returns the composed request,
// or the first error a builder call hit.
func (b *RequestBuilder) Build() (*Request, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.req, nil
}

func putHeader(header *specs.Headers, name, value string) error {
	name = plain.TitleCase(name)
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("weft: invalid header name '%s'", name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("weft: invalid header value '%s'", value)
	}
	header.Set(name, value)
	return nil
}
