package specs

import "fmt"

// ErrorKind identifies which token of an http message failed to parse.
type ErrorKind string

// The closed set of parse failure kinds. Every kind except
// [ErrorKindOther] carries the offending token text; ErrorKindOther
// wraps an i/o failure from the byte source.
const (
	ErrorKindMethod     ErrorKind = "method"
	ErrorKindVersion    ErrorKind = "version"
	ErrorKindUrl        ErrorKind = "url"
	ErrorKindStatusCode ErrorKind = "status"
	ErrorKindHeader     ErrorKind = "header"
	ErrorKindOther      ErrorKind = "read"
)

// NewParseError creates a ParseError for a malformed token.
func NewParseError(kind ErrorKind, text string) *ParseError {
	return &ParseError{Kind: kind, Text: text}
}

// WrapReadError wraps a failure of the underlying byte source
// into a ParseError of kind [ErrorKindOther].
func WrapReadError(err error) *ParseError {
	return &ParseError{Kind: ErrorKindOther, Err: err}
}

// ParseError is the error type for everything that can go wrong while
// reading an http message. Parsing is fail-fast: the first malformed
// token aborts the whole parse and surfaces here.
type ParseError struct {
	Kind ErrorKind
	Text string
	Err  error
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return "weft/" + string(e.Kind) + ": " + e.reason()
}

func (e *ParseError) reason() string {
	switch e.Kind {
	case ErrorKindMethod:
		return fmt.Sprintf("unsupported http method '%s'", e.Text)
	case ErrorKindVersion:
		return fmt.Sprintf("unsupported http version '%s'", e.Text)
	case ErrorKindUrl:
		return fmt.Sprintf("invalid url '%s'", e.Text)
	case ErrorKindStatusCode:
		return fmt.Sprintf("invalid status code '%s'", e.Text)
	case ErrorKindHeader:
		return fmt.Sprintf("invalid header '%s'", e.Text)
	case ErrorKindOther:
		if e.Err != nil {
			return e.Err.Error()
		}
	}
	return fmt.Sprintf("malformed token '%s'", e.Text)
}

// Unwrap exposes the wrapped i/o error, if any, to errors.Is and errors.As.
func (e *ParseError) Unwrap() error {
	return e.Err
}
