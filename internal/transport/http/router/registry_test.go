package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpez "venue-booking-api/internal/transport/http/ez"
)

type recMod struct {
	name  string
	prio  int
	order *[]string
}

func (m recMod) MountAPI(httpez.EZ)   { *m.order = append(*m.order, "api:"+m.name) }
func (m recMod) MountAdmin(httpez.EZ) { *m.order = append(*m.order, "admin:"+m.name) }
func (m recMod) Priority() int        { return m.prio }

type apiOnly struct{ order *[]string }

func (m apiOnly) MountAPI(httpez.EZ) { *m.order = append(*m.order, "api:only") }

func TestRegistryOrderAndDispatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var order []string
	reg := NewRegistry(
		apiOnly{&order},
		recMod{"late", 200, &order},
		recMod{"early", 1, &order},
	)
	e := httpez.New(gin.New().Group("/"), nil, zap.NewNop())

	reg.MountAPI(e)
	reg.MountAdmin(e)

	want := []string{"api:early", "api:only", "api:late", "admin:early", "admin:late"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

type pingMod struct{}

func (pingMod) MountAPI(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[struct{}, gin.H]{
		Method:  http.MethodGet,
		Path:    "/ping",
		Handler: func(*gin.Context, *struct{}) (gin.H, error) { return gin.H{"pong": true}, nil },
	})
}

func TestMountedActionServes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewRegistry(pingMod{}).MountAPI(httpez.New(r.Group("/api/v1"), nil, zap.NewNop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d body = %s", w.Code, w.Body.String())
	}
}
