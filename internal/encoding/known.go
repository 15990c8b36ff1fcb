package encoding

import "github.com/nefry/weft/specs"

// DefaultAcceptEncoding advertises every content encoding this package
// can decode.
const DefaultAcceptEncoding = specs.ContentEncodingGzip + ", " +
	specs.ContentEncodingDeflate + ", " + specs.ContentEncodingBrotli

// IsKnownEncoding checks if the content encoding token has a reader and
// a writer here.
func IsKnownEncoding(contentEncoding string) bool {
	switch contentEncoding {
	case specs.ContentEncodingGzip, specs.ContentEncodingDeflate, specs.ContentEncodingBrotli:
		return true
	}
	return false
}
