// Package app 两个进程共用的依赖装配：配置 → 日志 → 数据库 → 缓存 → 仓储 → 服务 → 路由。
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"venue-booking-api/internal/core/auth"
	"venue-booking-api/internal/core/cache"
	"venue-booking-api/internal/core/config"
	"venue-booking-api/internal/core/database"
	"venue-booking-api/internal/domain"
	"venue-booking-api/internal/feature/appointment"
	"venue-booking-api/internal/feature/blog"
	"venue-booking-api/internal/feature/chat"
	"venue-booking-api/internal/feature/contact"
	"venue-booking-api/internal/feature/dashboard"
	"venue-booking-api/internal/feature/partner"
	"venue-booking-api/internal/feature/review"
	"venue-booking-api/internal/feature/user"
	"venue-booking-api/internal/feature/venue"
	"venue-booking-api/internal/repo"
	"venue-booking-api/internal/transport/http/handler"
	mdw "venue-booking-api/internal/transport/http/middleware"
	"venue-booking-api/internal/transport/http/router"
)

type App struct {
	Cfg     *config.Config
	Log     *zap.Logger
	DB      *gorm.DB
	Cache   *cache.Cache
	Metrics *prometheus.Registry
	JWT     *auth.JWTer
	Guard   *mdw.Guard

	Users        *user.Service
	Venues       *venue.Service
	Appointments *appointment.Service
	Blogs        *blog.Service
	Reviews      *review.Service
	Partners     *partner.Service
	Contacts     *contact.Service
	Dashboard    *dashboard.Service
	Chat         *chat.Client
	Sweeper      *appointment.Sweeper

	process  string
	registry *router.Registry
	http     *mdw.HTTPMetrics
}

// Open 按配置连接数据库与 redis 后装配；调用方负责 Close
func Open(cfg *config.Config, l *zap.Logger, process string) (*App, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}

	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL())
	if c != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		// redis 不可用时降级为直连数据库
		if err := c.Ping(ctx); err != nil {
			l.Warn("redis unavailable, cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = c.Close()
			c = nil
		}
	}
	return Build(cfg, l, db, c, process), nil
}

// Build 装配仓储、服务与路由模块；测试直接传入 sqlite 与 nil 缓存
func Build(cfg *config.Config, l *zap.Logger, db *gorm.DB, c *cache.Cache, process string) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a := &App{Cfg: cfg, Log: l, DB: db, Cache: c, Metrics: reg, process: process}

	users := repo.NewUserRepo(db)
	venues := repo.NewVenueRepo(db)
	appts := repo.NewAppointmentRepo(db)

	a.JWT = auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	a.Guard = mdw.NewGuard(a.JWT, users, l)

	a.Users = user.NewService(users, a.JWT)
	a.Venues = venue.NewService(venues, c)
	a.Appointments = appointment.NewService(appts, venues, appointment.Config{
		MaxDurationHours:     cfg.Booking.MaxDurationHours,
		DefaultDurationHours: cfg.Booking.DefaultDurationHours,
	})
	a.Blogs = blog.NewService(repo.NewBlogRepo(db))
	a.Partners = partner.NewService(repo.NewPartnerRepo(db))
	a.Reviews = review.NewService(repo.NewReviewRepo(db), map[string]review.TargetChecker{
		domain.EntityVenue:   a.Venues,
		domain.EntityBlog:    a.Blogs,
		domain.EntityPartner: a.Partners,
	})
	a.Contacts = contact.NewService(repo.NewContactRepo(db))
	a.Dashboard = dashboard.NewService(repo.NewStatsRepo(db), c)
	a.Chat = chat.NewClient(chat.Config{
		Endpoint:     cfg.Chat.Endpoint,
		APIKey:       cfg.Chat.APIKey,
		Model:        cfg.Chat.Model,
		Timeout:      time.Duration(cfg.Chat.TimeoutSec) * time.Second,
		SystemPrompt: cfg.Chat.SystemPrompt,
		RequestID:    mdw.RequestIDFrom,
	}, l, reg)
	a.Sweeper = appointment.NewSweeper(appts, cfg.Booking.SweepInterval(), cfg.Booking.SweepTimeout(), l, reg)

	a.http = mdw.NewHTTPMetrics(reg, process)

	rl := cfg.RateLimit
	a.registry = router.NewRegistry(
		handler.NewUserHandler(a.Users, mdw.NewIPLimiter(rate.Limit(rl.AuthRPS), rl.AuthBurst)),
		handler.NewVenueHandler(a.Venues),
		handler.NewAppointmentHandler(a.Appointments),
		handler.NewBlogHandler(a.Blogs),
		handler.NewReviewHandler(a.Reviews),
		handler.NewPartnerHandler(a.Partners),
		handler.NewContactHandler(a.Contacts, mdw.NewIPLimiter(rate.Limit(rl.AuthRPS), rl.AuthBurst)),
		handler.NewDashboardHandler(a.Dashboard),
		handler.NewChatHandler(a.Chat),
	)
	return a
}

func (a *App) deps() router.Deps {
	return router.Deps{
		Log:      a.Log,
		Config:   a.Cfg,
		Guard:    a.Guard,
		Registry: a.registry,
		Metrics:  a.http,
		Gatherer: a.Metrics,
		Ready:    a.Ready,
	}
}

func (a *App) APIEngine() *gin.Engine   { return router.NewAPIEngine(a.deps()) }
func (a *App) AdminEngine() *gin.Engine { return router.NewAdminEngine(a.deps()) }

// Ready 数据库与缓存均可达
func (a *App) Ready(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if err := a.Cache.Ping(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

func (a *App) Close() {
	if err := a.Cache.Close(); err != nil {
		a.Log.Warn("close redis", zap.Error(err))
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
