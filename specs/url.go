package specs

import (
	"strconv"
	"strings"
)

// MustParseUrl is a helper function that parses a url string and panics if it fails.
func MustParseUrl(url string) *Url {
	ur, err := ParseUrl(url)
	if err != nil {
		panic(err)
	}
	return ur
}

// ParseUrl parses a url string and returns a Url object.
//
// An explicit scheme must be "http" or "https", anything else fails
// with an url [ParseError]. Without a "://" marker the scheme defaults
// to http. The remainder splits into host[:port] and path at the first
// '/'. Inside the path part the fragment starts at the first '#' and
// the query at the first '?' before it, so a literal '#' inside a query
// value starts the fragment. Nothing is percent-decoded.
func ParseUrl(url string) (*Url, error) {
	obj := &Url{Scheme: "http"}

	rest := url
	if scheme, tail, ok := strings.Cut(url, "://"); ok {
		if scheme != "http" && scheme != "https" {
			return nil, NewParseError(ErrorKindUrl, url)
		}
		obj.Scheme = scheme
		rest = tail
	}

	hostport, path, hasPath := strings.Cut(rest, "/")
	if hasPath {
		path = "/" + path
	} else {
		path = "/"
	}

	if host, port, ok := strings.Cut(hostport, ":"); ok {
		portNum, err := strconv.ParseUint(port, 10, 16)
		if err != nil {
			return nil, NewParseError(ErrorKindUrl, url)
		}
		obj.Host = host
		obj.Port = uint16(portNum)
	} else {
		obj.Host = hostport
	}

	if i := strings.IndexByte(path, '#'); i >= 0 {
		obj.Fragment = path[i+1:]
		path = path[:i]
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		obj.Query = ParseQuery(path[i+1:])
		path = path[:i]
	}
	obj.Path = path

	return obj, nil
}

// Url represents the decomposed parts of an http resource locator.
//
// Only the http and https schemes are supported. Every component is
// carried verbatim, percent-decoding and encoding are out of scope.
type Url struct {
	Scheme   string
	Host     string
	Port     uint16
	Path     string
	Query    Query
	Fragment string
}

// Address returns the host:port pair to dial, defaulting the port from
// the scheme (80 for http, 443 for https) when none was supplied.
func (url *Url) Address() string {
	port := url.Port
	if port == 0 {
		if url.Scheme == "https" {
			port = 443
		} else {
			port = 80
		}
	}
	return url.Host + ":" + strconv.FormatUint(uint64(port), 10)
}

// Target renders the origin-form request target: path with query and
// fragment. An empty path renders as "/".
func (url *Url) Target() string {
	var builder strings.Builder
	if url.Path == "" {
		builder.WriteByte('/')
	} else {
		if url.Path[0] != '/' {
			builder.WriteByte('/')
		}
		builder.WriteString(url.Path)
	}
	if url.Query.Any() {
		builder.WriteByte('?')
		builder.WriteString(url.Query.String())
	}
	if url.Fragment != "" {
		builder.WriteByte('#')
		builder.WriteString(url.Fragment)
	}
	return builder.String()
}

// File returns the trailing path segment when it names a file: the
// path must contain a dot and not end in '/'. Query and fragment
// markers left inside a hand-assembled path are trimmed first.
// Returns "" when the path names no file.
func (url *Url) File() string {
	path := url.Path
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if i := strings.IndexByte(path, '#'); i >= 0 {
		path = path[:i]
	}
	if !strings.Contains(path, ".") || strings.HasSuffix(path, "/") {
		return ""
	}
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	return path
}

// String returns the string representation of the url.
func (url *Url) String() string {
	var builder strings.Builder
	builder.WriteString(url.Scheme)
	builder.WriteString("://")
	builder.WriteString(url.Host)
	if url.Port > 0 {
		builder.WriteByte(':')
		builder.Write(strconv.AppendUint(nil, uint64(url.Port), 10))
	}
	builder.WriteString(url.Target())
	return builder.String()
}
