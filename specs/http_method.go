package specs

type HttpMethod string

// HttpMethod constants represent the standard HTTP methods as defined in RFC 7231
// and related specifications. The set is closed: any other token fails
// message parsing with [ErrorKindMethod].
const (
	HttpMethodGet     HttpMethod = "GET"
	HttpMethodPost    HttpMethod = "POST"
	HttpMethodPut     HttpMethod = "PUT"
	HttpMethodHead    HttpMethod = "HEAD"
	HttpMethodOptions HttpMethod = "OPTIONS"
	HttpMethodDelete  HttpMethod = "DELETE"
	HttpMethodTrace   HttpMethod = "TRACE"
	HttpMethodPatch   HttpMethod = "PATCH"
	HttpMethodConnect HttpMethod = "CONNECT"
)

// IsValid checks if the HttpMethod is one of the standard HTTP methods.
func (method HttpMethod) IsValid() bool {
	return method == HttpMethodGet ||
		method == HttpMethodPost ||
		method == HttpMethodPut ||
		method == HttpMethodHead ||
		method == HttpMethodOptions ||
		method == HttpMethodDelete ||
		method == HttpMethodTrace ||
		method == HttpMethodPatch ||
		method == HttpMethodConnect
}

// IsPostable checks if the HttpMethod is suitable for sending a request body.
func (method HttpMethod) IsPostable() bool {
	return method == HttpMethodPost || method == HttpMethodPut ||
		method == HttpMethodDelete || method == HttpMethodPatch
}

// IsReplyable checks if the HttpMethod expects a response body.
func (method HttpMethod) IsReplyable() bool {
	return !(method == HttpMethodHead || method == HttpMethodConnect || method == HttpMethodOptions)
}
