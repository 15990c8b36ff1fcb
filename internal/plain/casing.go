package plain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase canonicalizes a composed header name, e.g. "content-type"
// to "Content-Type". A caser is built per call since they are not safe
// for concurrent use.
func TitleCase(content string) string {
	return cases.Title(language.English).String(content)
}
