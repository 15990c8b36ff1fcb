package proxy

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/nefry/weft/internal/stream"
	"github.com/nefry/weft/specs"
)

// DialHttps tunnels to host:port through an http proxy with a CONNECT
// exchange on an already dialed connection. On return the connection
// carries the tunneled stream.
func DialHttps(conn net.Conn, host string, port uint16, creds *Creds) error {
	if creds != nil && len(creds.Username) == 0 {
		return errors.New("https: invalid username")
	}

	address := net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10))

	header := specs.NewHeaders()
	header.Set(specs.HeaderHost, address)
	if creds != nil {
		WithAuthHeader(header, creds.Username, creds.Password)
	}

	var head strings.Builder
	head.WriteString("CONNECT ")
	head.WriteString(address)
	head.WriteString(" HTTP/1.1\r\n")
	for name, value := range header.All() {
		head.WriteString(name)
		head.WriteString(": ")
		head.WriteString(value)
		head.WriteString("\r\n")
	}
	head.WriteString("\r\n")

	if _, err := conn.Write([]byte(head.String())); err != nil {
		return err
	}

	// The proxy sends nothing past its response head until the tunnel
	// carries client data, so buffered reading cannot swallow payload.
	reader := stream.NewReader(conn)
	tok, err := reader.ReadUntil(' ', 1024)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(string(tok), "HTTP/") {
		return errors.New("https: malformed proxy response")
	}
	line, err := reader.ReadUntil('\n', 1024)
	if err != nil {
		return err
	}
	code, _, _ := strings.Cut(strings.TrimRight(string(line), "\r\n"), " ")
	if code != "200" {
		return fmt.Errorf("https: proxy refused tunnel with status '%s'", code)
	}

	for {
		blank, err := reader.AtBlankLine()
		if err != nil {
			return err
		}
		if blank {
			return reader.SkipBlankLine()
		}
		if _, err := reader.ReadUntil('\n', 4*1024); err != nil {
			return err
		}
	}
}
