package weft

import (
	"context"
	"log"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nefry/weft/pool"
	"github.com/nefry/weft/specs"
)

// DefaultWorkers is the connection worker limit when [Server.Workers]
// is unset.
const DefaultWorkers = 64

// Handler replies to one parsed request. A nil response answers with
// an empty 200.
type Handler func(ctx context.Context, req *Request) *Response

var defaultLogger = log.New(os.Stderr, "weft: ", log.LstdFlags)

// Server accepts connections and speaks http/1.1 on them, handing
// each parsed request to [Server.Handler]. One worker owns one
// connection at a time; nothing is shared between connections.
type Server struct {
	// Handler to invoke for every request.
	Handler Handler

	// Logger for accept and handler failures.
	// If nil, a default stderr logger is used.
	Logger *log.Logger

	// ServerName is stamped into the Server response header.
	ServerName string

	// Workers bounds how many connections are served at once.
	// If zero, [DefaultWorkers] is used.
	Workers int

	// ReadTimeout is the deadline for reading one entire request,
	// including the body. Zero means no deadline.
	ReadTimeout time.Duration

	// WriteTimeout is the deadline for writing a response.
	// Zero means no deadline.
	WriteTimeout time.Duration

	// MaxHeaderSize caps request start line and header lines,
	// see [Parser]. Zero means no limit.
	MaxHeaderSize int

	isShutdown atomic.Bool
	connTrack  sync.WaitGroup

	mu        sync.Mutex
	listeners []net.Listener
	conns     map[net.Conn]bool
}

func (srv *Server) logger() *log.Logger {
	if srv.Logger != nil {
		return srv.Logger
	}
	return defaultLogger
}

// IsShutdown checks if [Server.Shutdown] was called.
func (srv *Server) IsShutdown() bool {
	return srv.isShutdown.Load()
}

// ListenAndServe listens on the tcp address and serves on it.
// An empty address means ":http".
func (srv *Server) ListenAndServe(addr string) error {
	if srv.IsShutdown() {
		return specs.ErrClosed
	}
	if addr == "" {
		addr = ":http"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return srv.Serve(listener)
}

// Serve accepts connections on the listener, dispatching each to a
// worker from a fixed-size pool. It always returns a non-nil error;
// after [Server.Shutdown] the error is [specs.ErrClosed].
func (srv *Server) Serve(listener net.Listener) error {
	if listener == nil {
		panic("weft: nil listener")
	}
	if srv.Handler == nil {
		panic("weft: nil server handler")
	}
	if srv.IsShutdown() {
		return specs.ErrClosed
	}

	srv.trackListener(listener)
	defer srv.untrackListener(listener)

	size := srv.Workers
	if size <= 0 {
		size = DefaultWorkers
	}
	workers := pool.New(size)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var attemptDelay time.Duration
	for {
		conn, err := listener.Accept()
		if err != nil {
			if srv.IsShutdown() {
				err = specs.ErrClosed
			} else if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				if attemptDelay == 0 {
					attemptDelay = 5 * time.Millisecond
				} else if maxDelay := 1 * time.Second; attemptDelay >= maxDelay {
					attemptDelay = maxDelay
				} else {
					attemptDelay *= 2
				}
				srv.logger().Printf("accept error: %s; retrying in %s", err, attemptDelay)
				time.Sleep(attemptDelay)
				continue
			}
			workers.Wait(context.Background())
			return err
		}

		attemptDelay = 0
		srv.connTrack.Add(1)
		err = workers.Go(ctx, func() {
			defer srv.connTrack.Done()
			srv.handle(ctx, conn)
		})
		if err != nil {
			conn.Close()
			srv.connTrack.Done()
		}
	}
}

// Shutdown stops accepting, closes idle connections and waits for
// in-flight requests to finish.
func (srv *Server) Shutdown() {
	if !srv.isShutdown.CompareAndSwap(false, true) {
		return
	}
	srv.mu.Lock()
	for _, listener := range srv.listeners {
		listener.Close()
	}
	srv.listeners = nil
	for conn, idle := range srv.conns {
		if idle {
			conn.Close()
		}
	}
	srv.mu.Unlock()
	srv.connTrack.Wait()
}

func (srv *Server) trackConn(conn net.Conn) {
	srv.mu.Lock()
	if srv.conns == nil {
		srv.conns = make(map[net.Conn]bool)
	}
	srv.conns[conn] = false
	srv.mu.Unlock()
}

func (srv *Server) untrackConn(conn net.Conn) {
	srv.mu.Lock()
	delete(srv.conns, conn)
	srv.mu.Unlock()
}

// markConnIdle flips the idle state and reports false when the server
// shut down meanwhile, in which case an idle connection must close
// instead of waiting for another request.
func (srv *Server) markConnIdle(conn net.Conn, idle bool) bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if idle && srv.IsShutdown() {
		return false
	}
	srv.conns[conn] = idle
	return true
}

func (srv *Server) trackListener(listener net.Listener) {
	srv.mu.Lock()
	srv.listeners = append(srv.listeners, listener)
	srv.mu.Unlock()
}

func (srv *Server) untrackListener(listener net.Listener) {
	srv.mu.Lock()
	for i, tracked := range srv.listeners {
		if tracked == listener {
			srv.listeners = append(srv.listeners[:i], srv.listeners[i+1:]...)
			break
		}
	}
	srv.mu.Unlock()
}
