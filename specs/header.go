package specs

import (
	"iter"
	"strings"
)

// Header is a single header field as it appears on the wire.
// Name comparison is ascii case-insensitive, value comparison is exact.
type Header struct {
	Name  string
	Value string
}

// Equal checks if two header fields match by folded name and exact value.
func (h Header) Equal(other Header) bool {
	return strings.EqualFold(h.Name, other.Name) && h.Value == other.Value
}

// NewHeaders creates an empty header collection.
func NewHeaders() *Headers {
	return &Headers{}
}

// Headers is an ordered collection of header fields.
//
// Insertion order is preserved and drives serialization, which is why
// this is a list and not a map. Lookups fold ascii case. At most one
// value exists per name: Set replaces the value of the first entry with
// a matching name instead of appending a duplicate, and keeps the name
// spelling the entry was first stored with.
//
// The zero value is ready to use.
type Headers struct {
	fields []Header
}

func (header *Headers) index(name string) int {
	for i := range header.fields {
		if strings.EqualFold(header.fields[i].Name, name) {
			return i
		}
	}
	return -1
}

// Len returns the number of stored fields.
func (header *Headers) Len() int {
	return len(header.fields)
}

// Get returns the value stored under the name, or "" if there is none.
func (header *Headers) Get(name string) string {
	if i := header.index(name); i >= 0 {
		return header.fields[i].Value
	}
	return ""
}

// TryGet returns the value stored under the name and whether it exists,
// distinguishing an absent field from an empty value.
func (header *Headers) TryGet(name string) (string, bool) {
	if i := header.index(name); i >= 0 {
		return header.fields[i].Value, true
	}
	return "", false
}

// Has checks if a field with the name exists.
func (header *Headers) Has(name string) bool {
	return header.index(name) >= 0
}

// Set stores a value under the name, replacing the value of the first
// matching field or appending a new one.
func (header *Headers) Set(name, value string) {
	if i := header.index(name); i >= 0 {
		header.fields[i].Value = value
		return
	}
	header.fields = append(header.fields, Header{Name: name, Value: value})
}

// Del removes the field stored under the name, if any.
func (header *Headers) Del(name string) {
	if i := header.index(name); i >= 0 {
		header.fields = append(header.fields[:i], header.fields[i+1:]...)
	}
}

// All iterates name/value pairs in insertion order.
func (header *Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, field := range header.fields {
			if !yield(field.Name, field.Value) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the collection.
func (header *Headers) Clone() *Headers {
	if header == nil {
		return NewHeaders()
	}
	fields := make([]Header, len(header.fields))
	copy(fields, header.fields)
	return &Headers{fields: fields}
}
