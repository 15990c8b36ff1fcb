package weft

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/nefry/weft/specs"
)

func TestParser_Request(t *testing.T) {
	raw := "POST /submit?kind=note HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Content-Length: 11\r\n" +
		"\r\n" +
		"hello weft!"

	req, err := NewParser(strings.NewReader(raw)).Request()
	if err != nil {
		t.Fatalf("Request() unexpected error = %s", err)
	}

	if req.Method != specs.HttpMethodPost {
		t.Errorf("Method = %v, want POST", req.Method)
	}
	if req.Target != "/submit?kind=note" {
		t.Errorf("Target = %q, want verbatim target", req.Target)
	}
	if req.Version != specs.HttpVersion11 {
		t.Errorf("Version = %v, want HTTP/1.1", req.Version)
	}
	if got := req.Header().Get("host"); got != "example.com" {
		t.Errorf("Header(host) = %q, want example.com", got)
	}
	if string(req.Body()) != "hello weft!" {
		t.Errorf("Body() = %q", req.Body())
	}
	if req.Chunked() {
		t.Error("Chunked() = true, want false")
	}
}

func TestParser_RequestErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind specs.ErrorKind
	}{
		{
			name: "Unknown method",
			raw:  "YOINK / HTTP/1.1\r\n\r\n",
			kind: specs.ErrorKindMethod,
		},
		{
			name: "Unknown version",
			raw:  "GET / HTTP/9.9\r\n\r\n",
			kind: specs.ErrorKindVersion,
		},
		{
			name: "Missing version",
			raw:  "GET /\r\n\r\n",
			kind: specs.ErrorKindVersion,
		},
		{
			name: "Header line without colon",
			raw:  "GET / HTTP/1.1\r\nbroken header line\r\n\r\n",
			kind: specs.ErrorKindHeader,
		},
		{
			name: "Unparseable content length",
			raw:  "POST / HTTP/1.1\r\nContent-Length: twelve\r\n\r\n",
			kind: specs.ErrorKindHeader,
		},
		{
			name: "Malformed chunk size",
			raw:  "POST / HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\nnothex\r\n",
			kind: specs.ErrorKindHeader,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(strings.NewReader(tt.raw)).Request()
			var parseErr *specs.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Request() error = %v, want ParseError", err)
			}
			if parseErr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", parseErr.Kind, tt.kind)
			}
		})
	}
}

func TestParser_Response(t *testing.T) {
	raw := "HTTP/1.1 404 Not Found\r\n" +
		"Server: weft\r\n" +
		"Content-Length: 9\r\n" +
		"\r\n" +
		"not found"

	resp, err := NewParser(strings.NewReader(raw)).Response()
	if err != nil {
		t.Fatalf("Response() unexpected error = %s", err)
	}

	if resp.Version != specs.HttpVersion11 {
		t.Errorf("Version = %v, want HTTP/1.1", resp.Version)
	}
	if resp.Status != specs.StatusCodeNotFound {
		t.Errorf("Status = %v, want 404", resp.Status)
	}
	if resp.Reason != "Not Found" {
		t.Errorf("Reason = %q, want Not Found", resp.Reason)
	}
	if string(resp.Body()) != "not found" {
		t.Errorf("Body() = %q", resp.Body())
	}
}

func TestParser_ResponseStatusCodeError(t *testing.T) {
	raw := "HTTP/1.1 abc OK\r\n\r\n"
	_, err := NewParser(strings.NewReader(raw)).Response()
	var parseErr *specs.ParseError
	if !errors.As(err, &parseErr) || parseErr.Kind != specs.ErrorKindStatusCode {
		t.Fatalf("Response() error = %v, want status code ParseError", err)
	}
}

func TestParser_ChunkedBody(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\n" +
		"Transfer-Encoding: chunked\r\n" +
		"\r\n" +
		"7\r\nMozilla\r\n11\r\nDeveloper Network\r\n0\r\n\r\n"

	resp, err := NewParser(strings.NewReader(raw)).Response()
	if err != nil {
		t.Fatalf("Response() unexpected error = %s", err)
	}

	if string(resp.Body()) != "MozillaDeveloper Network" {
		t.Errorf("Body() = %q, want reassembled chunks", resp.Body())
	}
	if !resp.Chunked() {
		t.Error("Chunked() = false, want true")
	}
	want := []ChunkRange{{0, 7}, {7, 24}, {0, 0}}
	if !reflect.DeepEqual(resp.ChunkIndex(), want) {
		t.Errorf("ChunkIndex() = %v, want %v", resp.ChunkIndex(), want)
	}
}

func TestParser_TransferEncodingIdentity(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\n" +
		"Transfer-Encoding: identity\r\n" +
		"Content-Length: 4\r\n" +
		"\r\n" +
		"data"

	resp, err := NewParser(strings.NewReader(raw)).Response()
	if err != nil {
		t.Fatalf("Response() unexpected error = %s", err)
	}
	if resp.Chunked() {
		t.Error("Chunked() = true, want content length framing")
	}
	if string(resp.Body()) != "data" {
		t.Errorf("Body() = %q, want data", resp.Body())
	}
}

func TestParser_ContentLengthExact(t *testing.T) {
	body := strings.Repeat("x", 45)
	raw := "HTTP/1.1 200 OK\r\n" +
		"Content-Length: 45\r\n" +
		"\r\n" +
		body + "trailing bytes beyond the declared length"

	resp, err := NewParser(strings.NewReader(raw)).Response()
	if err != nil {
		t.Fatalf("Response() unexpected error = %s", err)
	}
	if len(resp.Body()) != 45 {
		t.Errorf("len(Body()) = %d, want exactly 45", len(resp.Body()))
	}
}

func TestParser_ContentLengthShortRead(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\n" +
		"Content-Length: 45\r\n" +
		"\r\n" +
		"only a few bytes"

	_, err := NewParser(strings.NewReader(raw)).Response()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("Response() error = %v, want wrapped unexpected EOF", err)
	}
	var parseErr *specs.ParseError
	if !errors.As(err, &parseErr) || parseErr.Kind != specs.ErrorKindOther {
		t.Errorf("error = %v, want other-kind ParseError", err)
	}
}

func TestParser_ReadToEndBody(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\n" +
		"\r\n" +
		"everything until the stream ends"

	resp, err := NewParser(strings.NewReader(raw)).Response()
	if err != nil {
		t.Fatalf("Response() unexpected error = %s", err)
	}
	if string(resp.Body()) != "everything until the stream ends" {
		t.Errorf("Body() = %q", resp.Body())
	}
}

// blockingReader fails the test if anything reads past the head.
type blockingReader struct {
	t    *testing.T
	head *strings.Reader
}

func (r *blockingReader) Read(p []byte) (int, error) {
	n, err := r.head.Read(p)
	if err == io.EOF && n == 0 {
		r.t.Fatal("read past the head")
	}
	return n, err
}

func TestParser_HeadOnly(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\n" +
		"Content-Length: 45\r\n" +
		"\r\n"

	resp, err := NewParser(&blockingReader{t: t, head: strings.NewReader(raw)}).ResponseHeadOnly()
	if err != nil {
		t.Fatalf("ResponseHeadOnly() unexpected error = %s", err)
	}
	if len(resp.Body()) != 0 {
		t.Errorf("Body() = %q, want empty", resp.Body())
	}
	if got := resp.Header().Get(specs.HeaderContentLength); got != "45" {
		t.Errorf("Header(Content-Length) = %q, want 45", got)
	}
}

func TestParser_ReadBodyAfterHead(t *testing.T) {
	raw := "POST /upload HTTP/1.1\r\n" +
		"Content-Length: 7\r\n" +
		"\r\n" +
		"payload"

	parser := NewParser(strings.NewReader(raw))
	req, err := parser.RequestHeadOnly()
	if err != nil {
		t.Fatalf("RequestHeadOnly() unexpected error = %s", err)
	}
	if len(req.Body()) != 0 {
		t.Fatalf("Body() = %q before ReadBody", req.Body())
	}
	if err = parser.ReadBody(req); err != nil {
		t.Fatalf("ReadBody() unexpected error = %s", err)
	}
	if string(req.Body()) != "payload" {
		t.Errorf("Body() = %q, want payload", req.Body())
	}
}

func TestParser_HeaderCollapse(t *testing.T) {
	raw := "GET / HTTP/1.1\r\n" +
		"Set-Cookie: a=1\r\n" +
		"set-cookie: b=2\r\n" +
		"\r\n"

	req, err := NewParser(strings.NewReader(raw)).Request()
	if err != nil {
		t.Fatalf("Request() unexpected error = %s", err)
	}
	if req.Header().Len() != 1 {
		t.Fatalf("Len() = %d, want duplicate names collapsed", req.Header().Len())
	}
	if got := req.Header().Get("Set-Cookie"); got != "b=2" {
		t.Errorf("Get() = %q, want last value", got)
	}
}

func TestParser_LineMaxSize(t *testing.T) {
	raw := "GET /" + strings.Repeat("a", 100) + " HTTP/1.1\r\n\r\n"
	parser := NewParser(strings.NewReader(raw))
	parser.LineMaxSize = 32

	_, err := parser.Request()
	if !errors.Is(err, specs.ErrTooLarge) {
		t.Fatalf("Request() error = %v, want ErrTooLarge", err)
	}
}
