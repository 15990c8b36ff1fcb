package weft

import (
	"strings"
	"testing"

	"github.com/nefry/weft/specs"
)

func TestRequestBuilder(t *testing.T) {
	url := specs.MustParseUrl("http://127.0.0.1:8080/video.mp4?start=56#time")

	req, err := NewRequestBuilder().
		Method(specs.HttpMethodPost).
		Url(url).
		Header("content-type", specs.ContentTypePlain).
		Body([]byte("hello weft!")).
		Build()
	if err != nil {
		t.Fatalf("Build() unexpected error = %s", err)
	}

	if req.Target != "/video.mp4?start=56#time" {
		t.Errorf("Target = %q, want origin form of the url", req.Target)
	}
	// Composed names are canonicalized to title case.
	found := false
	for name, value := range req.Header().All() {
		if name == "Content-Type" && value == specs.ContentTypePlain {
			found = true
		}
	}
	if !found {
		t.Error("Header() missing canonicalized Content-Type")
	}
	if got := req.Header().Get(specs.HeaderContentLength); got != "11" {
		t.Errorf("Content-Length = %q, want 11", got)
	}

	wire := string(req.Bytes())
	if !strings.HasPrefix(wire, "POST /video.mp4?start=56#time HTTP/1.1\r\n") {
		t.Errorf("Bytes() = %q, want POST request line", wire)
	}
	if !strings.HasSuffix(wire, "\r\n\r\nhello weft!") {
		t.Errorf("Bytes() = %q, want body after blank line", wire)
	}
}

func TestRequestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Request, error)
	}{
		{
			name: "Invalid method",
			build: func() (*Request, error) {
				return NewRequestBuilder().Method("YOINK").Build()
			},
		},
		{
			name: "Invalid version",
			build: func() (*Request, error) {
				return NewRequestBuilder().Version("HTTP/9.9").Build()
			},
		},
		{
			name: "Invalid header name",
			build: func() (*Request, error) {
				return NewRequestBuilder().Header("bad name", "value").Build()
			},
		},
		{
			name: "Invalid header value",
			build: func() (*Request, error) {
				return NewRequestBuilder().Header("Name", "bad\x00value").Build()
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if req, err := tt.build(); err == nil {
				t.Errorf("Build() = %+v, want error", req)
			}
		})
	}
}

func TestRequestBuilder_Chunks(t *testing.T) {
	req, err := NewRequestBuilder().
		Method(specs.HttpMethodPut).
		Path("/stream").
		Chunk([]byte("Mozilla")).
		Chunk([]byte("Developer Network")).
		Build()
	if err != nil {
		t.Fatalf("Build() unexpected error = %s", err)
	}

	wire := "PUT /stream HTTP/1.1\r\n" +
		"Transfer-Encoding: chunked\r\n" +
		"\r\n" +
		"7\r\nMozilla\r\n11\r\nDeveloper Network\r\n0\r\n\r\n"
	if got := string(req.Bytes()); got != wire {
		t.Errorf("Bytes() = %q, want %q", got, wire)
	}
}

func TestResponseBuilder(t *testing.T) {
	resp, err := NewResponseBuilder().
		Status(specs.StatusCodeNotFound).
		Header(specs.HeaderContentType, specs.ContentTypePlain).
		Body([]byte("not found")).
		Build()
	if err != nil {
		t.Fatalf("Build() unexpected error = %s", err)
	}

	if resp.Reason != "Not Found" {
		t.Errorf("Reason = %q, want defaulted from status", resp.Reason)
	}
	wire := string(resp.Bytes())
	if !strings.HasPrefix(wire, "HTTP/1.1 404 Not Found\r\n") {
		t.Errorf("Bytes() = %q, want status line", wire)
	}
	if !strings.HasSuffix(wire, "\r\n\r\nnot found") {
		t.Errorf("Bytes() = %q, want body", wire)
	}
}

func TestResponseBuilder_ExplicitReason(t *testing.T) {
	resp, err := NewResponseBuilder().
		Reason("Totally Fine").
		Status(specs.StatusCodeOK).
		Build()
	if err != nil {
		t.Fatalf("Build() unexpected error = %s", err)
	}
	if resp.Reason != "Totally Fine" {
		t.Errorf("Reason = %q, want explicit reason kept", resp.Reason)
	}
}

func TestStatusCodeComparison(t *testing.T) {
	if specs.StatusCodeOK != 200 {
		t.Error("StatusCodeOK != 200")
	}
	if 200 != specs.StatusCodeOK {
		t.Error("200 != StatusCodeOK")
	}
}
