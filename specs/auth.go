package specs

import (
	"encoding/base64"
	"errors"
	"strings"
)

// BasicAuthHeader creates a Basic Authentication header value from a
// username and password pair.
func BasicAuthHeader(username, password string) string {
	auth := username + ":" + password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(auth))
}

// ParseBasicAuthHeader parses a Basic Authentication header value and
// returns the username and password.
func ParseBasicAuthHeader(header string) (username, password string, err error) {
	const prefix = "Basic "

	if !strings.HasPrefix(header, prefix) {
		return "", "", errors.New("missing Basic prefix")
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, prefix))
	if err != nil {
		return "", "", errors.New("cannot decode base64")
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", errors.New("invalid format, expected username:password")
	}
	return username, password, nil
}
