// Package handler 各功能模块的 HTTP 动作；实现 MountAPI / MountAdmin 后交给 router.Registry 挂载。
package handler

import (
	"github.com/gin-gonic/gin"

	"venue-booking-api/internal/core/auth"
	mdw "venue-booking-api/internal/transport/http/middleware"
)

// Deleted 删除类接口的统一返回
type Deleted struct {
	ID string `json:"id"`
}

// principal 守卫已放行时一定非空
func principal(c *gin.Context) *auth.Principal { return mdw.PrincipalOf(c) }

func perIP(l *mdw.IPLimiter) []gin.HandlerFunc {
	if l == nil {
		return nil
	}
	return []gin.HandlerFunc{mdw.RateLimitPerIP(l)}
}

type none = struct{}

