package specs

import (
	"maps"
	"slices"
	"strings"
)

// Query represents url query parameters as unique key/value pairs.
// Values are carried verbatim: no percent-decoding or encoding happens
// anywhere in the module.
type Query map[string]string

// ParseQuery parses raw query text into a Query.
//
// Pairs split on '&', then on the first '='. A pair without '=' keeps
// the key with an empty value. Duplicate keys keep the last value.
func ParseQuery(query string) Query {
	q := make(Query)
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		if key, value, ok := strings.Cut(pair, "="); ok {
			q[key] = value
		} else {
			q[pair] = ""
		}
	}
	return q
}

// Any checks if the query holds at least one pair.
func (q Query) Any() bool {
	return len(q) > 0
}

// Get returns the value stored under the key, or "" if there is none.
func (q Query) Get(key string) string {
	return q[key]
}

// TryGet returns the value stored under the key and whether it exists.
func (q Query) TryGet(key string) (string, bool) {
	value, ok := q[key]
	return value, ok
}

// String renders the query in wire form. Keys are rendered in sorted
// order so output is deterministic; a pair with an empty value renders
// as a bare key.
func (q Query) String() string {
	if len(q) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, key := range slices.Sorted(maps.Keys(q)) {
		if buf.Len() > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(key)
		if value := q[key]; value != "" {
			buf.WriteByte('=')
			buf.WriteString(value)
		}
	}
	return buf.String()
}
