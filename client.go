package weft

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"golang.org/x/net/idna"

	"github.com/nefry/weft/internal/catch"
	"github.com/nefry/weft/internal/encoding"
	"github.com/nefry/weft/internal/proxy"
	"github.com/nefry/weft/internal/stream"
	"github.com/nefry/weft/specs"
)

// DefaultClient creates a [Client] with sane limits and timeouts.
// Each call creates a new instance.
func DefaultClient() *Client {
	return &Client{
		DialTimeout:         10 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
		ReadTimeout:         10 * time.Second,
		WriteTimeout:        10 * time.Second,
		MaxLineSize:         64 << 10,
		MaxBodySize:         10 << 20,
	}
}

// Client sends requests over http and https, optionally through a
// proxy. The zero value works without limits or timeouts.
//
// One exchange owns its connection exclusively: the client dials,
// writes the serialized request, parses the response and closes.
// Connections are not reused.
type Client struct {
	// Dialer creates the tcp connections.
	// If nil, a zero [net.Dialer] is used.
	Dialer *net.Dialer

	// TLSConfig is the configuration for https connections.
	// If nil, the default configuration is used.
	TLSConfig *tls.Config

	// Proxy routes every exchange through a proxy. The url scheme
	// picks the protocol: "http" and "https" tunnel with CONNECT,
	// "socks5" and "socks5h" speak socks5.
	//
	// If nil, connections are direct.
	Proxy *specs.Url

	// ProxyUsername and ProxyPassword authenticate against the proxy
	// when set.
	ProxyUsername string
	ProxyPassword string

	// DialTimeout caps connecting, including the proxy handshake.
	// Zero means no timeout.
	DialTimeout time.Duration

	// TLSHandshakeTimeout caps the tls handshake.
	// Zero means no timeout.
	TLSHandshakeTimeout time.Duration

	// ReadTimeout is the deadline for reading the entire response,
	// including the body. Zero means no deadline.
	ReadTimeout time.Duration

	// WriteTimeout is the deadline for writing the request.
	// Zero means no deadline.
	WriteTimeout time.Duration

	// MaxLineSize caps response start line, header and chunk size
	// lines, see [Parser]. Zero means no limit.
	MaxLineSize int

	// MaxBodySize caps response bodies read until connection close.
	// Zero means no limit.
	MaxBodySize int
}

// Get fetches rawUrl with a GET request.
func (c *Client) Get(ctx context.Context, rawUrl string) (*Response, error) {
	return c.fetch(ctx, specs.HttpMethodGet, rawUrl)
}

// Head fetches the response head of rawUrl with a HEAD request,
// never reading a body.
func (c *Client) Head(ctx context.Context, rawUrl string) (*Response, error) {
	return c.fetch(ctx, specs.HttpMethodHead, rawUrl)
}

func (c *Client) fetch(ctx context.Context, method specs.HttpMethod, rawUrl string) (*Response, error) {
	url, err := specs.ParseUrl(rawUrl)
	if err != nil {
		return nil, err
	}
	req, err := NewRequestBuilder().Method(method).Url(url).Build()
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, url, req)
}

// Do sends the request to the url's host and returns the parsed
// response. The request target stays whatever the request carries;
// the url only says where to connect.
//
// The Host and Accept-Encoding headers are stamped unless already
// set. For HEAD requests and statuses that forbid a body the response
// parse stops after the head. A non-2xx status is not an error.
func (c *Client) Do(ctx context.Context, url *specs.Url, req *Request) (*Response, error) {
	if ctx == nil {
		panic("weft: nil context pointer")
	}
	if url == nil {
		panic("weft: nil url pointer")
	}
	if req == nil {
		panic("weft: nil request pointer")
	}
	if url.Scheme != "http" && url.Scheme != "https" {
		return nil, fmt.Errorf("weft: unsupported url scheme '%s'", url.Scheme)
	}
	if url.Host == "" {
		return nil, fmt.Errorf("weft: empty url host")
	}

	host, err := idnaHost(url.Host)
	if err != nil {
		return nil, fmt.Errorf("weft: invalid url host '%s': %w", url.Host, err)
	}

	conn, err := catch.CallWithTimeoutContext(ctx, c.DialTimeout, func(ctx context.Context) (net.Conn, error) {
		return c.dial(ctx, url, host)
	})
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	// A finished context unblocks any pending conn read or write.
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Now())
	})
	defer stop()

	header := req.Header()
	if !header.Has(specs.HeaderHost) {
		header.Set(specs.HeaderHost, hostHeader(host, url.Port, url.Scheme))
	}
	if !header.Has(specs.HeaderAcceptEncoding) {
		header.Set(specs.HeaderAcceptEncoding, encoding.DefaultAcceptEncoding)
	}

	if c.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(c.WriteTimeout))
	}
	if _, err = req.WriteTo(conn); err != nil {
		return nil, catch.CatchCommonErr(err)
	}

	if c.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(c.ReadTimeout))
	}
	reader := stream.DefaultBufioReaderPool.Get(conn)
	defer stream.DefaultBufioReaderPool.Put(reader)

	parser := NewParser(reader)
	parser.LineMaxSize = c.MaxLineSize
	parser.BodyMaxSize = c.MaxBodySize

	resp, err := parser.ResponseHeadOnly()
	if err != nil {
		return nil, catch.CatchCommonErr(err)
	}
	if req.method() != specs.HttpMethodHead && resp.Status.IsReplyable() {
		if err = parser.ReadBody(resp); err != nil {
			return nil, catch.CatchCommonErr(err)
		}
	}
	return resp, nil
}

func (c *Client) dial(ctx context.Context, url *specs.Url, host string) (net.Conn, error) {
	dialer := c.Dialer
	if dialer == nil {
		dialer = &net.Dialer{}
	}

	port := url.Port
	if port == 0 {
		if url.Scheme == "https" {
			port = 443
		} else {
			port = 80
		}
	}

	var conn net.Conn
	var err error
	if c.Proxy != nil {
		conn, err = c.dialProxy(ctx, dialer, host, port)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10)))
	}
	if err != nil {
		return nil, catch.CatchCommonErr(err)
	}

	if url.Scheme == "https" {
		config := c.TLSConfig
		if config == nil {
			config = &tls.Config{}
		}
		if config.ServerName == "" {
			config = config.Clone()
			config.ServerName = host
		}
		tlsConn := tls.Client(conn, config)
		err = catch.CallWithTimeoutContextErr(ctx, c.TLSHandshakeTimeout, tlsConn.HandshakeContext)
		if err != nil {
			conn.Close()
			return nil, err
		}
		conn = tlsConn
	}
	return conn, nil
}

func (c *Client) dialProxy(ctx context.Context, dialer *net.Dialer, host string, port uint16) (net.Conn, error) {
	scheme := c.Proxy.Scheme
	if scheme == "" {
		scheme = "http"
	}
	proxyPort := c.Proxy.Port
	if proxyPort == 0 {
		proxyPort = proxy.SchemeDefaultPortMap[scheme]
	}

	var creds *proxy.Creds
	if c.ProxyUsername != "" {
		creds = &proxy.Creds{Username: c.ProxyUsername, Password: c.ProxyPassword}
	}

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(c.Proxy.Host, strconv.FormatUint(uint64(proxyPort), 10)))
	if err != nil {
		return nil, err
	}

	switch scheme {
	case "socks5", "socks5h":
		_, err = proxy.DialSocks5(conn, host, port, creds)
	case "http", "https":
		err = proxy.DialHttps(conn, host, port, creds)
	default:
		err = fmt.Errorf("weft: unsupported proxy scheme '%s'", scheme)
	}
	if err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// idnaHost maps a host name to its ascii form, passing ascii names
// and address literals through.
func idnaHost(host string) (string, error) {
	for i := 0; i < len(host); i++ {
		if host[i] >= 0x80 {
			return idna.Lookup.ToASCII(host)
		}
	}
	return host, nil
}

// hostHeader renders the Host header value,
// omitting the scheme's default port.
func hostHeader(host string, port uint16, scheme string) string {
	if port == 0 || (scheme == "http" && port == 80) || (scheme == "https" && port == 443) {
		return host
	}
	return net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10))
}
