package weft

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/nefry/weft/internal/catch"
	"github.com/nefry/weft/internal/stream"
	"github.com/nefry/weft/specs"
)

type remoteAddrContextKey struct{}

// RemoteAddr returns the peer address of the connection a handler is
// serving, or nil outside a handler.
func RemoteAddr(ctx context.Context) net.Addr {
	addr, _ := ctx.Value(remoteAddrContextKey{}).(net.Addr)
	return addr
}

// handle runs the keep-alive loop of one connection: parse the head,
// read the body only when the request frames one, call the handler and
// write the response back.
func (srv *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	defer func() {
		if r := recover(); r != nil {
			srv.logger().Printf("panic serving %s: %v", conn.RemoteAddr(), r)
			srv.respondError(conn, specs.StatusCodeInternalServerError)
		}
	}()

	ctx = context.WithValue(ctx, remoteAddrContextKey{}, conn.RemoteAddr())

	srv.trackConn(conn)
	defer srv.untrackConn(conn)

	reader := stream.DefaultBufioReaderPool.Get(conn)
	defer stream.DefaultBufioReaderPool.Put(reader)
	writer := stream.DefaultBufioWriterPool.Get(conn)
	defer stream.DefaultBufioWriterPool.Put(writer)

	for {
		if ctx.Err() != nil {
			return
		}
		if srv.ReadTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(srv.ReadTimeout))
		}

		// Wait for the next request here so a connection the peer
		// closed between requests goes away without a parse error.
		// Shutdown closes connections parked in this wait.
		if !srv.markConnIdle(conn, true) {
			return
		}
		if _, err := reader.Peek(1); err != nil {
			return
		}
		if !srv.markConnIdle(conn, false) {
			return
		}

		parser := NewParser(reader)
		parser.LineMaxSize = srv.MaxHeaderSize

		req, err := parser.RequestHeadOnly()
		if err != nil {
			if !catch.IsCommonNetReadError(errors.Unwrap(err)) {
				srv.logger().Printf("parse error from %s: %s", conn.RemoteAddr(), err)
				srv.respondError(conn, specs.StatusCodeBadRequest)
			}
			return
		}

		// Bodies are read only when the request frames one; a missing
		// framing header on a postable method means an empty body, it
		// never drains the socket.
		if req.Method.IsPostable() &&
			(req.Header().Has(specs.HeaderTransferEncoding) || req.Header().Has(specs.HeaderContentLength)) {
			if err = parser.ReadBody(req); err != nil {
				srv.respondError(conn, specs.StatusCodeBadRequest)
				return
			}
		}

		resp := srv.Handler(ctx, req)
		if resp == nil {
			resp = &Response{}
		}
		srv.stamp(resp)

		if srv.WriteTimeout > 0 {
			conn.SetWriteDeadline(time.Now().Add(srv.WriteTimeout))
		}
		if _, err = resp.WriteTo(writer); err != nil {
			return
		}
		if err = writer.Flush(); err != nil {
			return
		}

		if !keepAlive(req) || resp.Header().Get(specs.HeaderConnection) == "close" {
			return
		}
	}
}

// stamp fills the response headers the server owns: Server, Date and,
// for unframed bodies, Content-Length.
func (srv *Server) stamp(resp *Response) {
	header := resp.Header()
	if !header.Has(specs.HeaderServer) {
		name := srv.ServerName
		if name == "" {
			name = "weft"
		}
		header.Set(specs.HeaderServer, name)
	}
	if !header.Has(specs.HeaderDate) {
		header.Set(specs.HeaderDate, specs.FormatTime(time.Now()))
	}
	if !resp.Chunked() && !header.Has(specs.HeaderContentLength) && len(resp.Body()) > 0 {
		header.Set(specs.HeaderContentLength, strconv.Itoa(len(resp.Body())))
	}
}

func (srv *Server) respondError(conn net.Conn, status specs.StatusCode) {
	conn.SetDeadline(time.Now().Add(time.Second))
	resp := &Response{Status: status, Reason: status.Detail()}
	resp.Header().Set(specs.HeaderConnection, "close")
	srv.stamp(resp)
	resp.WriteTo(conn)
}

func keepAlive(req *Request) bool {
	connection := strings.ToLower(req.Header().Get(specs.HeaderConnection))
	if req.Version == specs.HttpVersion10 {
		return connection == "keep-alive"
	}
	return connection != "close"
}
