package router

import (
	"github.com/gin-gonic/gin"

	"venue-booking-api/internal/domain"
	httpez "venue-booking-api/internal/transport/http/ez"
)

func NewAdminEngine(d Deps) *gin.Engine {
	r := newBase(d)

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(d.Guard.Required(), d.Guard.RequireRole(domain.RoleAdmin))

	d.Registry.MountAdmin(httpez.New(admin, d.Guard, d.Log))

	return r
}
