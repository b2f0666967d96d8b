package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"venue-booking-api/internal/core/config"
	"venue-booking-api/internal/core/server"
	httpez "venue-booking-api/internal/transport/http/ez"
	mdw "venue-booking-api/internal/transport/http/middleware"
)

// Deps 两个引擎共用的装配项
type Deps struct {
	Log      *zap.Logger
	Config   *config.Config
	Guard    *mdw.Guard
	Registry *Registry
	Metrics  *mdw.HTTPMetrics
	Gatherer prometheus.Gatherer
	// Ready 健康检查时探测依赖（数据库、redis）
	Ready func(ctx context.Context) error
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := newBase(d)

	// 前缀
	api := r.Group("/api/v1")
	d.Registry.MountAPI(httpez.New(api, d.Guard, d.Log))

	return r
}

// newBase 中间件链 + /health + /metrics
func newBase(d Deps) *gin.Engine {
	app := d.Config.App
	r := server.NewEngine(d.Log, app.Env, app.CORSOrigins)

	rl := d.Config.RateLimit
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(rl.RPS), rl.Burst),
		mdw.ConcurrencyLimit(app.HTTP.MaxInFlight),
		mdw.MaxBodyBytes(app.HTTP.MaxBodyMB<<20),
		mdw.Timeout(time.Duration(app.HTTP.HandlerTimeoutSec)*time.Second),
		mdw.Recovery(d.Log),
		d.Metrics.Handler(),
		mdw.AccessLog(d.Log),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		if d.Ready != nil {
			if err := d.Ready(c.Request.Context()); err != nil {
				d.Log.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	return r
}
