package weft

import (
	"io"
	"strconv"
	"strings"

	"github.com/nefry/weft/internal/stream"
	"github.com/nefry/weft/specs"
)

// NewParser binds a parser to a byte source. One parser reads one
// message at a time from its source; it holds no shared state and is
// not for concurrent use.
func NewParser(reader io.Reader) *Parser {
	return &Parser{reader: stream.NewReader(reader)}
}

// Parser reads http messages from a byte stream.
//
// Parsing is fail-fast: the first malformed token aborts with a
// [specs.ParseError] and the source is left mid-message. Every read
// blocks until satisfied or the source reports end-of-data or failure;
// deadlines belong to the transport that owns the source.
type Parser struct {
	reader *stream.Reader

	// LineMaxSize caps every parsed line: start lines, header fields
	// and chunk size lines. Zero means no limit.
	LineMaxSize int

	// BodyMaxSize caps bodies read without framing headers until the
	// source is drained. Zero means no limit.
	BodyMaxSize int
}

// Request parses one complete request: request line, headers and body.
func (p *Parser) Request() (*Request, error) {
	req, err := p.RequestHeadOnly()
	if err != nil {
		return nil, err
	}
	if err = p.ReadBody(req); err != nil {
		return nil, err
	}
	return req, nil
}

// RequestHeadOnly parses the request line and headers, leaving the
// body unread. Call [Parser.ReadBody] to finish once the head has
// been inspected.
func (p *Parser) RequestHeadOnly() (*Request, error) {
	tok, err := p.reader.ReadUntil(' ', p.LineMaxSize)
	if err != nil {
		return nil, specs.WrapReadError(err)
	}
	method := specs.HttpMethod(strings.TrimRight(string(tok), " "))
	if !method.IsValid() {
		return nil, specs.NewParseError(specs.ErrorKindMethod, string(method))
	}

	line, err := p.readLine()
	if err != nil {
		return nil, err
	}
	target, versionTok, ok := strings.Cut(line, " ")
	if !ok {
		return nil, specs.NewParseError(specs.ErrorKindVersion, "")
	}
	version := specs.HttpVersion(strings.TrimSpace(versionTok))
	if !version.IsValid() {
		return nil, specs.NewParseError(specs.ErrorKindVersion, string(version))
	}

	req := &Request{Method: method, Target: target, Version: version}
	if err = p.readHeaders(req.Header()); err != nil {
		return nil, err
	}
	return req, nil
}

// Response parses one complete response: status line, headers and body.
func (p *Parser) Response() (*Response, error) {
	resp, err := p.ResponseHeadOnly()
	if err != nil {
		return nil, err
	}
	if err = p.ReadBody(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ResponseHeadOnly parses the status line and headers, leaving the
// body unread. It never blocks waiting for body bytes, which makes it
// the entry point for HEAD exchanges and for callers that inspect the
// head before deciding whether to read the body at all.
func (p *Parser) ResponseHeadOnly() (*Response, error) {
	tok, err := p.reader.ReadUntil(' ', p.LineMaxSize)
	if err != nil {
		return nil, specs.WrapReadError(err)
	}
	version := specs.HttpVersion(strings.TrimRight(string(tok), " "))
	if !version.IsValid() {
		return nil, specs.NewParseError(specs.ErrorKindVersion, string(version))
	}

	line, err := p.readLine()
	if err != nil {
		return nil, err
	}
	codeTok, reason, _ := strings.Cut(line, " ")
	code, err := strconv.ParseUint(codeTok, 10, 32)
	if err != nil {
		return nil, specs.NewParseError(specs.ErrorKindStatusCode, codeTok)
	}

	resp := &Response{Version: version, Status: specs.StatusCode(code), Reason: reason}
	if err := p.readHeaders(resp.Header()); err != nil {
		return nil, err
	}
	return resp, nil
}

// ReadBody finishes a head-only parse, selecting the framing mode the
// collected headers call for.
//
// A Transfer-Encoding header whose value does not contain "identity"
// selects chunked framing. Otherwise a Content-Length header selects
// an exact-length read, where a short source is a hard error. With
// neither header the source is drained, the legacy framing of
// connection-close terminated bodies.
func (p *Parser) ReadBody(msg Message) error {
	c := msg.contentRef()
	header := msg.Header()

	if te, has := header.TryGet(specs.HeaderTransferEncoding); has &&
		!strings.Contains(te, specs.TransferEncodingIdentity) {
		return p.readChunkedBody(c)
	}

	if value, has := header.TryGet(specs.HeaderContentLength); has {
		length, err := strconv.ParseUint(value, 10, 63)
		if err != nil {
			return specs.NewParseError(specs.ErrorKindHeader, specs.HeaderContentLength+": "+value)
		}
		data, err := p.reader.ReadFull(int(length))
		if err != nil {
			return specs.WrapReadError(err)
		}
		c.body = data
		return nil
	}

	data, err := p.reader.ReadToEnd(p.BodyMaxSize)
	if err != nil {
		return specs.WrapReadError(err)
	}
	c.body = data
	return nil
}

// readHeaders loops header lines into the collection until the blank
// line ending the head, which is consumed too. End-of-data also ends
// the loop so truncated heads parse as far as they go.
func (p *Parser) readHeaders(header *specs.Headers) error {
	for {
		blank, err := p.reader.AtBlankLine()
		if err != nil {
			return specs.WrapReadError(err)
		}
		if blank {
			if err := p.reader.SkipBlankLine(); err != nil {
				return specs.WrapReadError(err)
			}
			return nil
		}

		tok, err := p.reader.ReadUntil(':', p.LineMaxSize)
		if err != nil {
			return specs.WrapReadError(err)
		}
		name := strings.TrimSuffix(string(tok), ":")
		if i := strings.IndexAny(name, "\r\n"); i >= 0 {
			// The line ended before any colon.
			return specs.NewParseError(specs.ErrorKindHeader, name[:i])
		}
		if name == "" {
			return specs.NewParseError(specs.ErrorKindHeader, name)
		}

		if _, err = p.reader.SkipWhile(isSpaceOrTab); err != nil {
			return specs.WrapReadError(err)
		}
		value, err := p.readLine()
		if err != nil {
			return err
		}
		header.Set(name, value)
	}
}

// readChunkedBody decodes length-prefixed chunks until the zero size
// terminator, appending payloads to the body and recording their
// offsets in the chunk index. A malformed size line is a parse error,
// never a silent end of body.
func (p *Parser) readChunkedBody(c *content) error {
	for {
		line, err := p.readLine()
		if err != nil {
			return err
		}
		size, err := strconv.ParseUint(line, 16, 63)
		if err != nil {
			return specs.NewParseError(specs.ErrorKindHeader, line)
		}
		if size == 0 {
			if err := p.reader.SkipBlankLine(); err != nil {
				return specs.WrapReadError(err)
			}
			break
		}

		data, err := p.reader.ReadFull(int(size))
		if err != nil {
			return specs.WrapReadError(err)
		}
		start := len(c.body)
		c.body = append(c.body, data...)
		c.chunks = append(c.chunks, ChunkRange{start, len(c.body)})
		if err := p.reader.SkipBlankLine(); err != nil {
			return specs.WrapReadError(err)
		}
	}
	if len(c.chunks) > 0 {
		c.chunked = true
		c.chunks = append(c.chunks, ChunkRange{})
	}
	return nil
}

// readLine reads through the next LF and trims the line ending.
func (p *Parser) readLine() (string, error) {
	line, err := p.reader.ReadUntil('\n', p.LineMaxSize)
	if err != nil {
		return "", specs.WrapReadError(err)
	}
	return strings.TrimRight(string(line), "\r\n"), nil
}

func isSpaceOrTab(b byte) bool {
	return b == ' ' || b == '\t'
}
