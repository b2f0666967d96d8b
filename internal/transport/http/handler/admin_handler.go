package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venue-booking-api/internal/domain"
	"venue-booking-api/internal/feature/dashboard"
	httpez "venue-booking-api/internal/transport/http/ez"
)

// DashboardHandler 管理端总览
type DashboardHandler struct{ svc *dashboard.Service }

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Priority() int { return 10 }

func (h *DashboardHandler) MountAdmin(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[none, *domain.DashboardStats]{
		Method: http.MethodGet,
		Path:   "/dashboard",
		Handler: func(c *gin.Context, _ *none) (*domain.DashboardStats, error) {
			return h.svc.Get(c.Request.Context())
		},
	})
}
