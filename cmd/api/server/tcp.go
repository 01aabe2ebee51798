package server

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"

	"go.uber.org/zap"

	"raw-user-service/internal/adapter/tcp/handler"
	"raw-user-service/internal/worker"
	"raw-user-service/pkg/logger"
)

// Dispatcher produces the response for one raw request
type Dispatcher interface {
	Dispatch(ctx context.Context, raw string) handler.Response
}

// Limiter decides whether a client may be served
type Limiter interface {
	Allow(ctx context.Context, remoteAddr string) bool
}

// TCPServer runs the one-request-per-connection protocol loop.
// With a nil pool connections are served one at a time on the accept goroutine.
type TCPServer struct {
	dispatcher Dispatcher
	limiter    Limiter
	pool       worker.Pool
	bufferSize int
	log        *zap.Logger
}

// NewTCPServer creates a TCP server. limiter and pool may be nil.
func NewTCPServer(d Dispatcher, limiter Limiter, pool worker.Pool, bufferSize int, l *zap.Logger) *TCPServer {
	return &TCPServer{
		dispatcher: d,
		limiter:    limiter,
		pool:       pool,
		bufferSize: bufferSize,
		log:        l,
	}
}

// Serve accepts connections until ctx is cancelled, then closes lis and
// returns nil. Accept errors are logged and do not stop the loop.
func (s *TCPServer) Serve(ctx context.Context, lis net.Listener) error {
	stop := make(chan struct{})
	defer close(stop)

	var closeOnce sync.Once
	closeListener := func() {
		closeOnce.Do(func() {
			if err := lis.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
				s.log.Warn("failed to close listener", zap.Error(err))
			}
		})
	}
	defer closeListener()

	go func() {
		select {
		case <-ctx.Done():
			closeListener()
		case <-stop:
		}
	}()

	// In-flight requests finish even when shutdown starts mid-request
	connCtx := context.WithoutCancel(ctx)

	s.log.Info("TCP server running", zap.String("address", lis.Addr().String()))

	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.log.Info("TCP server stopped accepting connections")
				return nil
			}
			s.log.Error("failed to accept connection", zap.Error(err))
			continue
		}

		if s.pool == nil {
			s.HandleConn(connCtx, conn)
			continue
		}

		if err := s.pool.Submit(ctx, func() { s.HandleConn(connCtx, conn) }); err != nil {
			s.log.Warn("connection dropped, worker pool unavailable", zap.Error(err))
			_ = conn.Close()
		}
	}
}

// HandleConn serves a single request on conn and closes it.
func (s *TCPServer) HandleConn(ctx context.Context, conn net.Conn) {
	remoteAddr := ""
	if addr := conn.RemoteAddr(); addr != nil {
		remoteAddr = addr.String()
	}
	ctx = logger.NewConnContext(ctx, remoteAddr)
	log := logger.WithContext(ctx, s.log)

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic recovered in connection handler",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
		}
		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Debug("failed to close connection", zap.Error(err))
		}
	}()

	log.Debug("connection accepted")

	buf := make([]byte, s.bufferSize)
	n, err := conn.Read(buf)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			log.Info("received empty request")
			return
		}
		log.Error("failed to read request", zap.Error(err))
		return
	}
	if err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to read request", zap.Error(err))
		return
	}

	var resp handler.Response
	if s.limiter != nil && !s.limiter.Allow(ctx, remoteAddr) {
		resp = handler.RateLimited()
	} else {
		raw := strings.ToValidUTF8(string(buf[:n]), "�")
		resp = s.dispatcher.Dispatch(ctx, raw)
	}

	if _, err := conn.Write(resp.Bytes()); err != nil {
		log.Error("failed to write response", zap.Error(err))
		return
	}
	log.Debug("response written", zap.String("status", strings.TrimSpace(strings.SplitN(resp.Status, "\r\n", 2)[0])))
}
