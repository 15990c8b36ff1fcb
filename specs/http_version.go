package specs

type HttpVersion string

// HttpVersion constants list the protocol version tokens the parser
// accepts. HTTP/2 and HTTP/3 are recognized as literal tokens only;
// no version-specific transport handling exists anywhere in the module.
const (
	HttpVersion10 HttpVersion = "HTTP/1.0"
	HttpVersion11 HttpVersion = "HTTP/1.1"
	HttpVersion2  HttpVersion = "HTTP/2"
	HttpVersion3  HttpVersion = "HTTP/3"
)

// IsValid checks if the HttpVersion is one of the known version tokens.
func (version HttpVersion) IsValid() bool {
	return version == HttpVersion10 ||
		version == HttpVersion11 ||
		version == HttpVersion2 ||
		version == HttpVersion3
}
