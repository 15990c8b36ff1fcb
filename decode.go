package weft

import (
	"bytes"
	"io"

	"github.com/nefry/weft/internal/encoding"
	"github.com/nefry/weft/specs"
)

// DecodeData returns the message body inflated per its
// Content-Encoding header. Bodies without one, or with an encoding
// this module cannot decode, come back as-is.
func DecodeData(msg Message) ([]byte, error) {
	contentEncoding := msg.Header().Get(specs.HeaderContentEncoding)
	if !encoding.IsKnownEncoding(contentEncoding) {
		return msg.Body(), nil
	}
	reader, err := encoding.NewReader(contentEncoding, bytes.NewReader(msg.Body()))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}
