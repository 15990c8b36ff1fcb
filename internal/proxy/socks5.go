// Package proxy implements the client-side handshakes for routing
// connections through socks5 and http CONNECT proxies.
package proxy

import (
	"errors"
	"fmt"
	"io"
	"net"
)

const (
	socksVersion5   byte = 0x05
	socksCmdConnect byte = 0x01

	socksNoAuthFlag      byte = 0x00
	socksAuthByCredsFlag byte = 0x02

	socksAuthCredsVersion byte = 0x01
	socksAuthSucceeded    byte = 0x00

	socksAddrTypeIPv4 byte = 0x01
	socksAddrTypeFQDN byte = 0x03
	socksAddrTypeIPv6 byte = 0x04
)

// DialSocks5 tunnels to host:port through a socks5 proxy with a
// CONNECT handshake on an already dialed connection, negotiating
// username/password auth when creds are given. It returns the bind
// address the proxy reports.
func DialSocks5(conn net.Conn, host string, port uint16, creds *Creds) (net.Addr, error) {
	if creds != nil && (len(creds.Username) == 0 || len(creds.Username) > 255 || len(creds.Password) > 255) {
		return nil, errors.New("socks5: invalid username/password")
	}

	buf := make([]byte, 0, 6+len(host))
	buf = append(buf, socksVersion5)
	if creds == nil {
		buf = append(buf, 1, socksNoAuthFlag)
	} else {
		buf = append(buf, 2, socksNoAuthFlag, socksAuthByCredsFlag)
	}
	if _, err := conn.Write(buf); err != nil {
		return nil, err
	}

	if _, err := io.ReadFull(conn, buf[:2]); err != nil {
		return nil, err
	}
	if ver := buf[0]; ver != socksVersion5 {
		return nil, fmt.Errorf("socks5: unexpected protocol version %d", int(ver))
	}

	switch method := buf[1]; method {
	case socksNoAuthFlag:
	case socksAuthByCredsFlag:
		if creds == nil {
			return nil, errors.New("socks5: authentication required")
		}
		if err := authByCreds(conn, creds); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("socks5: no acceptable authentication methods")
	}

	buf = buf[:0]
	buf = append(buf, socksVersion5, socksCmdConnect, 0)
	if ip := net.ParseIP(host); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			buf = append(buf, socksAddrTypeIPv4)
			buf = append(buf, ip4...)
		} else {
			buf = append(buf, socksAddrTypeIPv6)
			buf = append(buf, ip.To16()...)
		}
	} else {
		if len(host) > 255 {
			return nil, errors.New("socks5: FQDN too long")
		}
		buf = append(buf, socksAddrTypeFQDN, byte(len(host)))
		buf = append(buf, host...)
	}
	buf = append(buf, byte(port>>8), byte(port))

	if _, err := conn.Write(buf); err != nil {
		return nil, err
	}
	return readConnectReply(conn, buf)
}

func authByCreds(conn net.Conn, creds *Creds) error {
	buf := []byte{socksAuthCredsVersion, byte(len(creds.Username))}
	buf = append(buf, creds.Username...)
	buf = append(buf, byte(len(creds.Password)))
	buf = append(buf, creds.Password...)

	if _, err := conn.Write(buf); err != nil {
		return err
	}
	if _, err := io.ReadFull(conn, buf[:2]); err != nil {
		return err
	}
	if buf[0] != socksAuthCredsVersion {
		return errors.New("socks5: invalid username/password version")
	}
	if buf[1] != socksAuthSucceeded {
		return errors.New("socks5: username/password authentication failed")
	}
	return nil
}

func readConnectReply(conn net.Conn, buf []byte) (net.Addr, error) {
	if _, err := io.ReadFull(conn, buf[:4]); err != nil {
		return nil, err
	}
	if buf[0] != socksVersion5 {
		return nil, fmt.Errorf("socks5: unexpected protocol version %d", int(buf[0]))
	}
	if code := buf[1]; code != socksAuthSucceeded {
		return nil, fmt.Errorf("socks5: reply error: %s", socksReplyCodeDetail(code))
	}
	if buf[2] != 0 {
		return nil, errors.New("socks5: non-zero reserved field")
	}

	// Bind address plus a trailing two byte port.
	length := 2
	addr := ResolvedAddr{Net: "socks"}
	switch buf[3] {
	case socksAddrTypeIPv4:
		length += net.IPv4len
		addr.IP = make(net.IP, net.IPv4len)
	case socksAddrTypeIPv6:
		length += net.IPv6len
		addr.IP = make(net.IP, net.IPv6len)
	case socksAddrTypeFQDN:
		if _, err := io.ReadFull(conn, buf[:1]); err != nil {
			return nil, err
		}
		length += int(buf[0])
	default:
		return nil, fmt.Errorf("socks5: unknown address type %d", int(buf[3]))
	}

	if cap(buf) < length {
		buf = make([]byte, length)
	} else {
		buf = buf[:length]
	}
	if _, err := io.ReadFull(conn, buf); err != nil {
		return nil, err
	}

	if addr.IP != nil {
		copy(addr.IP, buf)
	} else {
		addr.Domain = string(buf[:len(buf)-2])
	}
	addr.Port = int(buf[len(buf)-2])<<8 | int(buf[len(buf)-1])
	return &addr, nil
}

func socksReplyCodeDetail(code byte) string {
	switch code {
	case 0x01:
		return "general SOCKS server failure"
	case 0x02:
		return "connection not allowed by ruleset"
	case 0x03:
		return "network unreachable"
	case 0x04:
		return "host unreachable"
	case 0x05:
		return "connection refused"
	case 0x06:
		return "TTL expired"
	case 0x07:
		return "command not supported"
	case 0x08:
		return "address type not supported"
	}
	return fmt.Sprintf("unknown code %d", int(code))
}
