package weft

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/nefry/weft/specs"
)

func TestRequest_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "Get without body",
			raw: "GET /video.mp4?start=56 HTTP/1.1\r\n" +
				"Host: 127.0.0.1:8080\r\n" +
				"\r\n",
		},
		{
			name: "Post with content length",
			raw: "POST /submit HTTP/1.1\r\n" +
				"Host: example.com\r\n" +
				"Content-Type: text/plain\r\n" +
				"Content-Length: 11\r\n" +
				"\r\n" +
				"hello weft!",
		},
		{
			name: "Chunked upload",
			raw: "PUT /stream HTTP/1.1\r\n" +
				"Transfer-Encoding: chunked\r\n" +
				"\r\n" +
				"7\r\nMozilla\r\n11\r\nDeveloper Network\r\n0\r\n\r\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewParser(strings.NewReader(tt.raw)).Request()
			if err != nil {
				t.Fatalf("Request() unexpected error = %s", err)
			}
			if got := req.Bytes(); string(got) != tt.raw {
				t.Errorf("Bytes() = %q, want original bytes %q", got, tt.raw)
			}

			// Parsing the serialized form must yield an equal value.
			again, err := NewParser(bytes.NewReader(req.Bytes())).Request()
			if err != nil {
				t.Fatalf("reparse unexpected error = %s", err)
			}
			if !reflect.DeepEqual(req, again) {
				t.Errorf("reparse = %+v, want %+v", again, req)
			}
		})
	}
}

func TestResponse_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "Ok with body",
			raw: "HTTP/1.1 200 OK\r\n" +
				"Server: weft\r\n" +
				"Content-Length: 5\r\n" +
				"\r\n" +
				"hello",
		},
		{
			name: "Chunked with uppercase hex sizes",
			raw: "HTTP/1.1 200 OK\r\n" +
				"Transfer-Encoding: chunked\r\n" +
				"\r\n" +
				"1A\r\nabcdefghijklmnopqrstuvwxyz\r\n0\r\n\r\n",
		},
		{
			name: "Empty reason phrase",
			raw: "HTTP/1.1 404 \r\n" +
				"\r\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := NewParser(strings.NewReader(tt.raw)).Response()
			if err != nil {
				t.Fatalf("Response() unexpected error = %s", err)
			}
			if got := resp.Bytes(); string(got) != tt.raw {
				t.Errorf("Bytes() = %q, want original bytes %q", got, tt.raw)
			}
		})
	}
}

func TestRequest_ZeroValue(t *testing.T) {
	var req Request
	if got := string(req.Bytes()); got != "GET / HTTP/1.1\r\n\r\n" {
		t.Errorf("Bytes() = %q", got)
	}
}

func TestResponse_ZeroValue(t *testing.T) {
	var resp Response
	if got := string(resp.Bytes()); got != "HTTP/1.1 200 OK\r\n\r\n" {
		t.Errorf("Bytes() = %q", got)
	}
}

func TestContent_AddData(t *testing.T) {
	var req Request
	req.AddData([]byte("hello "))
	req.AddData([]byte("weft"))

	if string(req.Body()) != "hello weft" {
		t.Errorf("Body() = %q", req.Body())
	}
	if got := req.Header().Get(specs.HeaderContentLength); got != "10" {
		t.Errorf("Content-Length = %q, want 10", got)
	}
	if req.Chunked() {
		t.Error("Chunked() = true, want false")
	}
}

func TestContent_AddChunk(t *testing.T) {
	var resp Response
	resp.AddChunk([]byte("Mozilla"))
	resp.AddChunk([]byte("Developer Network"))

	if !resp.Chunked() {
		t.Fatal("Chunked() = false, want true")
	}
	want := []ChunkRange{{0, 7}, {7, 24}, {0, 0}}
	if !reflect.DeepEqual(resp.ChunkIndex(), want) {
		t.Errorf("ChunkIndex() = %v, want ranges with trailing sentinel", resp.ChunkIndex())
	}
	if got := resp.Header().Get(specs.HeaderTransferEncoding); got != specs.TransferEncodingChunked {
		t.Errorf("Transfer-Encoding = %q, want chunked", got)
	}
	if resp.Header().Has(specs.HeaderContentLength) {
		t.Error("Content-Length present on chunked message")
	}

	wire := "HTTP/1.1 200 OK\r\n" +
		"Transfer-Encoding: chunked\r\n" +
		"\r\n" +
		"7\r\nMozilla\r\n11\r\nDeveloper Network\r\n0\r\n\r\n"
	if got := string(resp.Bytes()); got != wire {
		t.Errorf("Bytes() = %q, want %q", got, wire)
	}
}

func TestContent_AddDataOnChunked(t *testing.T) {
	var req Request
	req.AddChunk([]byte("first"))
	req.AddData([]byte("second"))

	want := []ChunkRange{{0, 5}, {5, 11}, {0, 0}}
	if !reflect.DeepEqual(req.ChunkIndex(), want) {
		t.Errorf("ChunkIndex() = %v, want %v", req.ChunkIndex(), want)
	}
	if got := req.Header().Get(specs.HeaderTransferEncoding); got != specs.TransferEncodingChunked {
		t.Errorf("Transfer-Encoding = %q, want kept", got)
	}
}
