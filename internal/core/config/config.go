package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	HandlerTimeoutSec int
	MaxBodyMB         int64
	MaxInFlight       int64
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name        string
	Env         string
	HTTP        HTTP
	Admin       AdminHTTP
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttl_sec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Booking struct {
	SweepIntervalMin     int `mapstructure:"sweep_interval_min"`
	SweepTimeoutSec      int `mapstructure:"sweep_timeout_sec"`
	MaxDurationHours     int `mapstructure:"max_duration_hours"`
	DefaultDurationHours int `mapstructure:"default_duration_hours"`
}

type Chat struct {
	Endpoint     string
	APIKey       string `mapstructure:"api_key"`
	Model        string
	TimeoutSec   int    `mapstructure:"timeout_sec"`
	SystemPrompt string `mapstructure:"system_prompt"`
}

type RateLimit struct {
	RPS       float64
	Burst     int
	AuthRPS   float64 `mapstructure:"auth_rps"`
	AuthBurst int     `mapstructure:"auth_burst"`
}

type Config struct {
	App       App
	Log       Log
	JWT       JWT
	DB        DB
	Redis     Redis `mapstructure:"redis"`
	Booking   Booking
	Chat      Chat
	RateLimit RateLimit `mapstructure:"ratelimit"`
}

func (b Booking) SweepInterval() time.Duration {
	return time.Duration(b.SweepIntervalMin) * time.Minute
}

func (b Booking) SweepTimeout() time.Duration {
	return time.Duration(b.SweepTimeoutSec) * time.Second
}

func (j JWT) TTL() time.Duration { return time.Duration(j.AccessTokenTTLMin) * time.Minute }

func (r Redis) TTL() time.Duration { return time.Duration(r.TTLSec) * time.Second }

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "venue-booking-api")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 10)
	v.SetDefault("app.http.writetimeoutsec", 15)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.handlertimeoutsec", 10)
	v.SetDefault("app.http.maxbodymb", 2)
	v.SetDefault("app.http.maxinflight", 512)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 8081)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxsizemb", 100)
	v.SetDefault("log.file.maxbackups", 7)
	v.SetDefault("log.file.maxagedays", 14)

	// 空默认值让环境变量可以覆盖未出现在文件中的键
	for _, k := range []string{"jwt.secret", "db.dsn", "db.username", "db.password", "redis.addr", "redis.password", "chat.endpoint", "chat.api_key"} {
		v.SetDefault(k, "")
	}
	v.SetDefault("jwt.issuer", "venue-booking-api")
	v.SetDefault("jwt.accesstokenttlmin", 60*24)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.maxopenconns", 50)
	v.SetDefault("db.maxidleconns", 10)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("redis.ttl_sec", 60)

	v.SetDefault("booking.sweep_interval_min", 15)
	v.SetDefault("booking.sweep_timeout_sec", 30)
	v.SetDefault("booking.max_duration_hours", 24)
	v.SetDefault("booking.default_duration_hours", 1)

	v.SetDefault("chat.model", "gpt-4o-mini")
	v.SetDefault("chat.timeout_sec", 20)
	v.SetDefault("chat.system_prompt", "You are a helpful assistant for a venue booking platform.")

	v.SetDefault("ratelimit.rps", 200)
	v.SetDefault("ratelimit.burst", 400)
	v.SetDefault("ratelimit.auth_rps", 1)
	v.SetDefault("ratelimit.auth_burst", 5)
}

// Load 读取 yaml + APP_ 前缀环境变量；文件缺失时仅使用默认值与环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: jwt.secret is required")
	}
	if c.Booking.SweepIntervalMin <= 0 {
		return errors.New("config: booking.sweep_interval_min must be positive")
	}
	if c.Booking.MaxDurationHours < 1 || c.Booking.DefaultDurationHours < 1 ||
		c.Booking.DefaultDurationHours > c.Booking.MaxDurationHours {
		return errors.New("config: booking duration bounds are invalid")
	}
	return nil
}
