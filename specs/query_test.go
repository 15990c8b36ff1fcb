package specs

import (
	"reflect"
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Query
	}{
		{
			name: "Single pair",
			raw:  "start=56",
			want: Query{"start": "56"},
		},
		{
			name: "Multiple pairs",
			raw:  "a=1&b=2",
			want: Query{"a": "1", "b": "2"},
		},
		{
			name: "Missing equals keeps key",
			raw:  "a=1&flag",
			want: Query{"a": "1", "flag": ""},
		},
		{
			name: "Duplicate keys keep last",
			raw:  "a=1&a=2",
			want: Query{"a": "2"},
		},
		{
			name: "Values stay encoded",
			raw:  "q=1%2B2&s=a%20b",
			want: Query{"q": "1%2B2", "s": "a%20b"},
		},
		{
			name: "Empty pairs skipped",
			raw:  "&&a=1&",
			want: Query{"a": "1"},
		},
		{
			name: "Empty text",
			raw:  "",
			want: Query{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseQuery(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseQuery() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuery_String(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{
			name:  "Sorted keys",
			query: Query{"b": "2", "a": "1", "c": "3"},
			want:  "a=1&b=2&c=3",
		},
		{
			name:  "Empty value renders bare key",
			query: Query{"flag": "", "a": "1"},
			want:  "a=1&flag",
		},
		{
			name:  "Empty query",
			query: Query{},
			want:  "",
		},
		{
			name:  "Nil query",
			query: nil,
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}
