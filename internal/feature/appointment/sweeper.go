package appointment

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Completer 收尾所需的最小存储能力
type Completer interface {
	CompleteStartedBefore(ctx context.Context, before, now time.Time) (int64, error)
}

// Sweeper 周期性把开始时间已过的活跃预约置为 completed。
// 实现 suture.Service，由进程监督树托管。
type Sweeper struct {
	repo     Completer
	interval time.Duration
	timeout  time.Duration
	log      *zap.Logger
	Now      func() time.Time

	swept prometheus.Counter
	runs  *prometheus.CounterVec
}

func NewSweeper(repo Completer, interval, timeout time.Duration, l *zap.Logger, reg prometheus.Registerer) *Sweeper {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if timeout <= 0 || timeout > interval {
		timeout = interval
	}
	f := promauto.With(reg)
	return &Sweeper{
		repo:     repo,
		interval: interval,
		timeout:  timeout,
		log:      l,
		Now:      time.Now,
		swept: f.NewCounter(prometheus.CounterOpts{
			Name: "appointments_swept_total",
			Help: "Appointments moved to completed by the sweeper",
		}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "appointment_sweeps_total",
			Help: "Sweeper passes by result",
		}, []string{"result"}),
	}
}

// Sweep 单次收尾；幂等，重复执行不会再改动已完成的记录
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := s.Now().UTC()
	began := time.Now()
	n, err := s.repo.CompleteStartedBefore(ctx, now, now)
	if err != nil {
		s.runs.WithLabelValues("error").Inc()
		s.log.Error("appointment sweep failed", zap.Error(err), zap.Duration("took", time.Since(began)))
		return 0, err
	}
	s.runs.WithLabelValues("ok").Inc()
	s.swept.Add(float64(n))
	if n > 0 {
		s.log.Info("appointments completed", zap.Int64("count", n), zap.Duration("took", time.Since(began)))
	} else {
		s.log.Debug("appointment sweep: nothing to do", zap.Duration("took", time.Since(began)))
	}
	return n, nil
}

// Serve 启动即跑一次，此后按间隔执行；单次失败只记录不退出
func (s *Sweeper) Serve(ctx context.Context) error {
	s.log.Info("appointment sweeper started", zap.Duration("interval", s.interval))
	_, _ = s.Sweep(ctx)

	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("appointment sweeper stopped")
			return ctx.Err()
		case <-t.C:
			_, _ = s.Sweep(ctx)
		}
	}
}

func (s *Sweeper) String() string { return "appointment-sweeper" }

func (s *Sweeper) SweptCounter() prometheus.Counter { return s.swept }

func (s *Sweeper) RunsCounter(result string) prometheus.Counter {
	return s.runs.WithLabelValues(result)
}
