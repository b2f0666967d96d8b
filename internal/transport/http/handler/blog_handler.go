package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venue-booking-api/internal/domain"
	"venue-booking-api/internal/feature/blog"
	httpez "venue-booking-api/internal/transport/http/ez"
)

type BlogHandler struct{ svc *blog.Service }

func NewBlogHandler(svc *blog.Service) *BlogHandler { return &BlogHandler{svc: svc} }

func (h *BlogHandler) MountAPI(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[blog.ListQuery, domain.List[domain.Blog]]{
		Method: http.MethodGet,
		Path:   "/blogs",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *blog.ListQuery) (domain.List[domain.Blog], error) {
			return h.svc.ListPublished(c.Request.Context(), *in)
		},
	})
	// 静态段 mine 优先于 :id 匹配
	httpez.RegisterAction(e, httpez.Action[domain.Page, domain.List[domain.Blog]]{
		Method: http.MethodGet,
		Path:   "/blogs/mine",
		Binder: httpez.BindQuery,
		Auth:   httpez.AuthRequired,
		Handler: func(c *gin.Context, in *domain.Page) (domain.List[domain.Blog], error) {
			return h.svc.Mine(c.Request.Context(), principal(c), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[none, *domain.Blog]{
		Method: http.MethodGet,
		Path:   "/blogs/:id",
		Handler: func(c *gin.Context, _ *none) (*domain.Blog, error) {
			return h.svc.GetPublic(c.Request.Context(), c.Param("id"))
		},
	})
	httpez.RegisterAction(e, httpez.Action[blog.Input, *domain.Blog]{
		Method: http.MethodPost,
		Path:   "/blogs",
		Binder: httpez.BindJSON,
		Auth:   httpez.AuthRequired,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *blog.Input) (*domain.Blog, error) {
			return h.svc.Create(c.Request.Context(), principal(c), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[blog.UpdateInput, *domain.Blog]{
		Method: http.MethodPut,
		Path:   "/blogs/:id",
		Binder: httpez.BindJSON,
		Auth:   httpez.AuthRequired,
		Handler: func(c *gin.Context, in *blog.UpdateInput) (*domain.Blog, error) {
			return h.svc.Update(c.Request.Context(), principal(c), c.Param("id"), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[none, Deleted]{
		Method: http.MethodDelete,
		Path:   "/blogs/:id",
		Auth:   httpez.AuthRequired,
		Handler: func(c *gin.Context, _ *none) (Deleted, error) {
			id := c.Param("id")
			return Deleted{ID: id}, h.svc.Delete(c.Request.Context(), principal(c), id)
		},
	})
}
