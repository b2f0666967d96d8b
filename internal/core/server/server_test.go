package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeServer struct {
	listenErr error
	stop      chan struct{}
	shutdowns int
}

func (f *fakeServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdowns++
	close(f.stop)
	return nil
}

func TestHTTPService_GracefulShutdown(t *testing.T) {
	fs := &fakeServer{stop: make(chan struct{})}
	svc := newHTTPService(fs, ":0", time.Second, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop")
	}
	if fs.shutdowns != 1 {
		t.Fatalf("shutdowns = %d", fs.shutdowns)
	}
}

func TestHTTPService_ListenError(t *testing.T) {
	boom := errors.New("bind: address in use")
	svc := newHTTPService(&fakeServer{listenErr: boom, stop: make(chan struct{})}, ":0", time.Second, zap.NewNop())
	if err := svc.Serve(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

type tickService struct{ ran chan struct{} }

func (s *tickService) Serve(ctx context.Context) error {
	close(s.ran)
	<-ctx.Done()
	return ctx.Err()
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := &tickService{ran: make(chan struct{})}
	done := make(chan error, 1)
	go func() { done <- Run(ctx, NewSupervisor("test", zap.NewNop()), svc) }()

	<-svc.ran
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("err = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop")
	}
}
