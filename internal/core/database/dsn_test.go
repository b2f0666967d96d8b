package database

import "testing"

func TestNormalizeMySQLDSN(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		user, pass string
		want       string
	}{
		{"native dsn untouched", "root:pw@tcp(127.0.0.1:3306)/app", "", "", "root:pw@tcp(127.0.0.1:3306)/app"},
		{"url form", "mysql://root:pw@db:3306/app", "", "", "root:pw@tcp(db:3306)/app?charset=utf8mb4&parseTime=true"},
		{"jdbc prefix", "jdbc:mysql://db:3306/app?parseTime=false", "u", "p", "u:p@tcp(db:3306)/app?charset=utf8mb4&parseTime=false"},
		{"override user", "mysql://a:b@db/app", "svc", "", "svc:b@tcp(db)/app?charset=utf8mb4&parseTime=true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeMySQLDSN(tt.in, tt.user, tt.pass); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewGormUnsupported(t *testing.T) {
	if _, err := NewGorm(Opts{Driver: "oracle"}); err != ErrUnsupportedDriver {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}
