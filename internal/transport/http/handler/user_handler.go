package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venue-booking-api/internal/domain"
	"venue-booking-api/internal/feature/user"
	httpez "venue-booking-api/internal/transport/http/ez"
	mdw "venue-booking-api/internal/transport/http/middleware"
)

type UserHandler struct {
	svc     *user.Service
	limiter *mdw.IPLimiter
}

// NewUserHandler limiter 仅作用于 /auth/*，为 nil 时不限流
func NewUserHandler(svc *user.Service, limiter *mdw.IPLimiter) *UserHandler {
	return &UserHandler{svc: svc, limiter: limiter}
}

func (h *UserHandler) Priority() int { return 10 }

func (h *UserHandler) MountAPI(e httpez.EZ) {
	// --- 注册 / 登录 ---
	httpez.RegisterAction(e, httpez.Action[user.RegisterInput, *user.AuthResult]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Extra:  perIP(h.limiter),
		Handler: func(c *gin.Context, in *user.RegisterInput) (*user.AuthResult, error) {
			return h.svc.Register(c.Request.Context(), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[user.LoginInput, *user.AuthResult]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Extra:  perIP(h.limiter),
		Handler: func(c *gin.Context, in *user.LoginInput) (*user.AuthResult, error) {
			return h.svc.Login(c.Request.Context(), *in)
		},
	})

	// --- 当前用户 ---
	httpez.RegisterAction(e, httpez.Action[none, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Auth:   httpez.AuthRequired,
		Handler: func(c *gin.Context, _ *none) (*domain.User, error) {
			return h.svc.Me(c.Request.Context(), principal(c))
		},
	})
	httpez.RegisterAction(e, httpez.Action[user.ProfileInput, *domain.User]{
		Method: http.MethodPut,
		Path:   "/me",
		Binder: httpez.BindJSON,
		Auth:   httpez.AuthRequired,
		Handler: func(c *gin.Context, in *user.ProfileInput) (*domain.User, error) {
			return h.svc.UpdateProfile(c.Request.Context(), principal(c), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[user.PasswordInput, gin.H]{
		Method: http.MethodPut,
		Path:   "/me/password",
		Binder: httpez.BindJSON,
		Auth:   httpez.AuthRequired,
		Handler: func(c *gin.Context, in *user.PasswordInput) (gin.H, error) {
			if err := h.svc.ChangePassword(c.Request.Context(), principal(c), *in); err != nil {
				return nil, err
			}
			return gin.H{"updated": true}, nil
		},
	})
}

func (h *UserHandler) MountAdmin(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[user.ListQuery, domain.List[domain.User]]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *user.ListQuery) (domain.List[domain.User], error) {
			return h.svc.List(c.Request.Context(), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[none, *domain.User]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Handler: func(c *gin.Context, _ *none) (*domain.User, error) {
			return h.svc.Get(c.Request.Context(), c.Param("id"))
		},
	})
	httpez.RegisterAction(e, httpez.Action[user.AdminUpdateInput, *domain.User]{
		Method: http.MethodPut,
		Path:   "/users/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *user.AdminUpdateInput) (*domain.User, error) {
			return h.svc.AdminUpdate(c.Request.Context(), principal(c), c.Param("id"), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[none, Deleted]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Handler: func(c *gin.Context, _ *none) (Deleted, error) {
			id := c.Param("id")
			return Deleted{ID: id}, h.svc.Delete(c.Request.Context(), principal(c), id)
		},
	})
}
