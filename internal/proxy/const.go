package proxy

import (
	"net"
	"strconv"

	"github.com/nefry/weft/specs"
)

const (
	DefaultHttpPort   uint16 = 8080
	DefaultHttpsPort  uint16 = 443
	DefaultSocks5Port uint16 = 1080
)

// SchemeDefaultPortMap gives the port to dial a proxy on when its url
// carries none.
var SchemeDefaultPortMap = map[string]uint16{
	"http":    DefaultHttpPort,
	"https":   DefaultHttpsPort,
	"socks5":  DefaultSocks5Port,
	"socks5h": DefaultSocks5Port,
}

// Creds is an optional username/password pair for proxy handshakes.
type Creds struct {
	Username string
	Password string
}

// WithAuthHeader stamps the Proxy-Authorization header for an http
// tunnel handshake.
func WithAuthHeader(header *specs.Headers, username, password string) *specs.Headers {
	header.Set(specs.HeaderProxyAuthorization, specs.BasicAuthHeader(username, password))
	return header
}

// ResolvedAddr is the bind address a socks5 proxy reports for an
// established tunnel.
type ResolvedAddr struct {
	Net    string
	Domain string
	IP     net.IP
	Port   int
}

func (a *ResolvedAddr) Network() string { return a.Net }

func (a *ResolvedAddr) String() string {
	if a == nil {
		return "<nil>"
	}
	port := strconv.Itoa(a.Port)
	if a.IP == nil {
		return a.Domain + ":" + port
	}
	return a.IP.String() + ":" + port
}
