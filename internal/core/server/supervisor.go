package server

import (
	"context"
	"time"

	"github.com/thejerf/suture/v4"
	"go.uber.org/zap"
)

// NewSupervisor 进程根监督者，服务崩溃按退避策略重启
func NewSupervisor(name string, l *zap.Logger) *suture.Supervisor {
	return suture.New(name, suture.Spec{
		EventHook:        ZapEventHook(l),
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		Timeout:          10 * time.Second,
	})
}

func ZapEventHook(l *zap.Logger) suture.EventHook {
	return func(e suture.Event) {
		fields := make([]zap.Field, 0, 4)
		for k, v := range e.Map() {
			fields = append(fields, zap.Any(k, v))
		}
		switch e.(type) {
		case suture.EventServicePanic, suture.EventServiceTerminate, suture.EventStopTimeout:
			l.Error(e.String(), fields...)
		default:
			l.Warn(e.String(), fields...)
		}
	}
}

// Run 启动并阻塞到 ctx 取消；正常退出返回 nil
func Run(ctx context.Context, sup *suture.Supervisor, svcs ...suture.Service) error {
	for _, s := range svcs {
		sup.Add(s)
	}
	err := sup.Serve(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
