package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"venue-booking-api/internal/core/auth"
	"venue-booking-api/internal/domain"
)

func init() { gin.SetMode(gin.TestMode) }

type stubUsers map[string]*domain.User

func (s stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, domain.NotFound("user not found")
}

func newGuard() (*Guard, *auth.JWTer) {
	j := auth.NewJWTer("test-secret", "test", time.Hour)
	users := stubUsers{
		"u1":  {ID: "u1", Role: domain.RoleUser, IsActive: true},
		"adm": {ID: "adm", Role: domain.RoleAdmin, IsActive: true},
		"off": {ID: "off", Role: domain.RoleUser, IsActive: false},
	}
	return NewGuard(j, users, zap.NewNop()), j
}

func token(t *testing.T, j *auth.JWTer, uid, role string) string {
	t.Helper()
	tok, err := j.Issue(uid, role)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + tok
}

func serve(r *gin.Engine, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGuard_Required(t *testing.T) {
	g, j := newGuard()
	r := gin.New()
	r.GET("/x", g.Required(), func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyUserID)) })

	tests := []struct {
		name   string
		authz  string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"unknown user", token(t, j, "ghost", domain.RoleUser), http.StatusUnauthorized},
		{"deactivated", token(t, j, "off", domain.RoleUser), http.StatusUnauthorized},
		{"ok", token(t, j, "u1", domain.RoleUser), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.authz)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestGuard_Optional(t *testing.T) {
	g, j := newGuard()
	r := gin.New()
	r.GET("/x", g.Optional(), func(c *gin.Context) {
		if p := PrincipalOf(c); p != nil {
			c.String(http.StatusOK, p.UserID)
			return
		}
		c.String(http.StatusOK, "anon")
	})

	tests := []struct {
		name  string
		authz string
		want  string
	}{
		{"anonymous", "", "anon"},
		{"bad token proceeds anonymous", "Bearer nope", "anon"},
		{"deactivated proceeds anonymous", token(t, j, "off", domain.RoleUser), "anon"},
		{"valid", token(t, j, "u1", domain.RoleUser), "u1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.authz)
			if w.Code != http.StatusOK || w.Body.String() != tt.want {
				t.Fatalf("got %d %q, want 200 %q", w.Code, w.Body.String(), tt.want)
			}
		})
	}
}

func TestGuard_RequireRole(t *testing.T) {
	g, j := newGuard()
	r := gin.New()
	r.GET("/x", g.Required(), g.RequireRole(domain.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if w := serve(r, token(t, j, "u1", domain.RoleUser)); w.Code != http.StatusForbidden {
		t.Fatalf("user: status = %d, want 403", w.Code)
	}
	// 令牌里的角色被库内角色覆盖
	if w := serve(r, token(t, j, "u1", domain.RoleAdmin)); w.Code != http.StatusForbidden {
		t.Fatalf("forged role: status = %d, want 403", w.Code)
	}
	if w := serve(r, token(t, j, "adm", domain.RoleAdmin)); w.Code != http.StatusNoContent {
		t.Fatalf("admin: status = %d, want 204", w.Code)
	}
}

func TestIPLimiter(t *testing.T) {
	l := NewIPLimiter(1, 2)
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("burst should allow two requests")
	}
	if l.Allow("a") {
		t.Fatal("third request should be limited")
	}
	if !l.Allow("b") {
		t.Fatal("other ip has its own bucket")
	}

	now = now.Add(10 * time.Minute)
	l.Allow("b")
	l.mu.Lock()
	_, stale := l.clients["a"]
	l.mu.Unlock()
	if stale {
		t.Fatal("idle client should be evicted")
	}
}

func TestRateLimitPerIP_Returns429(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimitPerIP(NewIPLimiter(0.001, 1)), func(c *gin.Context) { c.Status(http.StatusOK) })
	if w := serve(r, ""); w.Code != http.StatusOK {
		t.Fatalf("first = %d", w.Code)
	}
	if w := serve(r, ""); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second = %d, want 429", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	var fromCtx string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		fromCtx = RequestIDFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
		keep   bool
	}{
		{"client id kept", "abc-123_x.y", true},
		{"empty generated", "", false},
		{"unsafe replaced", "bad id\nforged", false},
		{"too long replaced", strings.Repeat("a", 65), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.header != "" {
				req.Header.Set(KeyRequestID, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			got := w.Header().Get(KeyRequestID)
			if got == "" || got != fromCtx {
				t.Fatalf("header %q ctx %q", got, fromCtx)
			}
			if (got == tc.header) != tc.keep {
				t.Fatalf("rid = %q, keep = %v", got, tc.keep)
			}
		})
	}
}
