package specs

// Content encoding tokens the module can compress and decompress,
// as registered in the IANA HTTP Content-Encoding registry.
//
// Reference: https://www.iana.org/assignments/http-parameters/http-parameters.xhtml
const (
	ContentEncodingGzip    = "gzip"
	ContentEncodingDeflate = "deflate"
	ContentEncodingBrotli  = "br"
)
