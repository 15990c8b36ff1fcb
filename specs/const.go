package specs

import "time"

// TimeFormat is the time layout for http date headers.
// Such times render in UTC, e.g. with [FormatTime].
const TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// FormatTime renders a time in the http date layout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// Standard header names used across the module. Composed messages use
// these spellings; parsed messages keep whatever spelling arrived.
const (
	HeaderAcceptEncoding     = "Accept-Encoding"
	HeaderAcceptRanges       = "Accept-Ranges"
	HeaderAuthorization      = "Authorization"
	HeaderConnection         = "Connection"
	HeaderContentEncoding    = "Content-Encoding"
	HeaderContentLength      = "Content-Length"
	HeaderContentRange       = "Content-Range"
	HeaderContentType        = "Content-Type"
	HeaderDate               = "Date"
	HeaderHost               = "Host"
	HeaderLocation           = "Location"
	HeaderProxyAuthorization = "Proxy-Authorization"
	HeaderRange              = "Range"
	HeaderServer             = "Server"
	HeaderTransferEncoding   = "Transfer-Encoding"
	HeaderUserAgent          = "User-Agent"
)
