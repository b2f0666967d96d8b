package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venue-booking-api/internal/domain"
	"venue-booking-api/internal/feature/partner"
	httpez "venue-booking-api/internal/transport/http/ez"
)

type PartnerHandler struct{ svc *partner.Service }

func NewPartnerHandler(svc *partner.Service) *PartnerHandler { return &PartnerHandler{svc: svc} }

func (h *PartnerHandler) MountAPI(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[partner.ListQuery, domain.List[domain.Partner]]{
		Method: http.MethodGet,
		Path:   "/partners",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *partner.ListQuery) (domain.List[domain.Partner], error) {
			return h.svc.List(c.Request.Context(), *in, false)
		},
	})
}

func (h *PartnerHandler) MountAdmin(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[partner.ListQuery, domain.List[domain.Partner]]{
		Method: http.MethodGet,
		Path:   "/partners",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *partner.ListQuery) (domain.List[domain.Partner], error) {
			return h.svc.List(c.Request.Context(), *in, true)
		},
	})
	httpez.RegisterAction(e, httpez.Action[none, *domain.Partner]{
		Method: http.MethodGet,
		Path:   "/partners/:id",
		Handler: func(c *gin.Context, _ *none) (*domain.Partner, error) {
			return h.svc.Get(c.Request.Context(), c.Param("id"))
		},
	})
	httpez.RegisterAction(e, httpez.Action[partner.Input, *domain.Partner]{
		Method: http.MethodPost,
		Path:   "/partners",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *partner.Input) (*domain.Partner, error) {
			return h.svc.Create(c.Request.Context(), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[partner.Input, *domain.Partner]{
		Method: http.MethodPut,
		Path:   "/partners/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *partner.Input) (*domain.Partner, error) {
			return h.svc.Update(c.Request.Context(), c.Param("id"), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[none, Deleted]{
		Method: http.MethodDelete,
		Path:   "/partners/:id",
		Handler: func(c *gin.Context, _ *none) (Deleted, error) {
			id := c.Param("id")
			return Deleted{ID: id}, h.svc.Delete(c.Request.Context(), id)
		},
	})
}
