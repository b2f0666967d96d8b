package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	p := writeFile(t, "jwt:\n  secret: s3cret\n")
	c, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Booking.SweepInterval() != 15*time.Minute {
		t.Errorf("sweep interval = %v", c.Booking.SweepInterval())
	}
	if c.Booking.DefaultDurationHours != 1 || c.Booking.MaxDurationHours != 24 {
		t.Errorf("booking = %+v", c.Booking)
	}
	if c.App.HTTP.Port != 8080 {
		t.Errorf("port = %d", c.App.HTTP.Port)
	}
	if c.RateLimit.AuthBurst != 5 {
		t.Errorf("ratelimit = %+v", c.RateLimit)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	p := writeFile(t, `
jwt:
  secret: s3cret
booking:
  sweep_interval_min: 5
redis:
  addr: localhost:6379
  ttl_sec: 30
`)
	t.Setenv("APP_APP_HTTP_PORT", "9090")
	c, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Booking.SweepIntervalMin != 5 {
		t.Errorf("sweep = %d", c.Booking.SweepIntervalMin)
	}
	if c.Redis.Addr != "localhost:6379" || c.Redis.TTL() != 30*time.Second {
		t.Errorf("redis = %+v", c.Redis)
	}
	if c.App.HTTP.Port != 9090 {
		t.Errorf("port = %d, want env override", c.App.HTTP.Port)
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	p := writeFile(t, "app:\n  name: x\n")
	if _, err := Load(p); err == nil {
		t.Fatal("expected error without jwt.secret")
	}
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "from-env")
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if c.JWT.Secret != "from-env" {
		t.Fatalf("secret = %q", c.JWT.Secret)
	}
}
