package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPServer 便于测试替换 *http.Server
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPService 把阻塞的 ListenAndServe 包装为可监督的服务
type HTTPService struct {
	srv             HTTPServer
	addr            string
	shutdownTimeout time.Duration
	log             *zap.Logger
}

func NewHTTPService(srv *http.Server, shutdownTimeout time.Duration, l *zap.Logger) *HTTPService {
	return newHTTPService(srv, srv.Addr, shutdownTimeout, l)
}

func newHTTPService(srv HTTPServer, addr string, shutdownTimeout time.Duration, l *zap.Logger) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{srv: srv, addr: addr, shutdownTimeout: shutdownTimeout, log: l}
}

func (h *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		h.log.Info("http starting", zap.String("addr", h.addr))
		if err := h.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		// 原 ctx 已取消，关停使用独立超时
		sctx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()
		if err := h.srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		h.log.Info("http stopped", zap.String("addr", h.addr))
		return ctx.Err()
	}
}

func (h *HTTPService) String() string { return "http-server " + h.addr }
