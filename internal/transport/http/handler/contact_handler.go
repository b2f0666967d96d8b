package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venue-booking-api/internal/domain"
	"venue-booking-api/internal/feature/contact"
	httpez "venue-booking-api/internal/transport/http/ez"
	mdw "venue-booking-api/internal/transport/http/middleware"
)

type ContactHandler struct {
	svc     *contact.Service
	limiter *mdw.IPLimiter
}

func NewContactHandler(svc *contact.Service, limiter *mdw.IPLimiter) *ContactHandler {
	return &ContactHandler{svc: svc, limiter: limiter}
}

func (h *ContactHandler) MountAPI(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[contact.Input, *domain.ContactMessage]{
		Method: http.MethodPost,
		Path:   "/contact",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Extra:  perIP(h.limiter),
		Handler: func(c *gin.Context, in *contact.Input) (*domain.ContactMessage, error) {
			return h.svc.Submit(c.Request.Context(), *in)
		},
	})
}

func (h *ContactHandler) MountAdmin(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[contact.ListQuery, domain.List[domain.ContactMessage]]{
		Method: http.MethodGet,
		Path:   "/contacts",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *contact.ListQuery) (domain.List[domain.ContactMessage], error) {
			return h.svc.List(c.Request.Context(), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[contact.StatusInput, *domain.ContactMessage]{
		Method: http.MethodPut,
		Path:   "/contacts/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *contact.StatusInput) (*domain.ContactMessage, error) {
			return h.svc.SetStatus(c.Request.Context(), c.Param("id"), in.Status)
		},
	})
	httpez.RegisterAction(e, httpez.Action[none, Deleted]{
		Method: http.MethodDelete,
		Path:   "/contacts/:id",
		Handler: func(c *gin.Context, _ *none) (Deleted, error) {
			id := c.Param("id")
			return Deleted{ID: id}, h.svc.Delete(c.Request.Context(), id)
		},
	})
}
