package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venue-booking-api/internal/domain"
	"venue-booking-api/internal/feature/venue"
	httpez "venue-booking-api/internal/transport/http/ez"
)

type VenueHandler struct{ svc *venue.Service }

func NewVenueHandler(svc *venue.Service) *VenueHandler { return &VenueHandler{svc: svc} }

func (h *VenueHandler) MountAPI(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[venue.ListQuery, domain.List[domain.Venue]]{
		Method: http.MethodGet,
		Path:   "/venues",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *venue.ListQuery) (domain.List[domain.Venue], error) {
			return h.svc.List(c.Request.Context(), *in, false)
		},
	})
	httpez.RegisterAction(e, httpez.Action[none, *domain.Venue]{
		Method: http.MethodGet,
		Path:   "/venues/:id",
		Handler: func(c *gin.Context, _ *none) (*domain.Venue, error) {
			return h.svc.Get(c.Request.Context(), c.Param("id"))
		},
	})
}

func (h *VenueHandler) MountAdmin(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[venue.ListQuery, domain.List[domain.Venue]]{
		Method: http.MethodGet,
		Path:   "/venues",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *venue.ListQuery) (domain.List[domain.Venue], error) {
			return h.svc.List(c.Request.Context(), *in, true)
		},
	})
	httpez.RegisterAction(e, httpez.Action[none, *domain.Venue]{
		Method: http.MethodGet,
		Path:   "/venues/:id",
		Handler: func(c *gin.Context, _ *none) (*domain.Venue, error) {
			return h.svc.AdminGet(c.Request.Context(), c.Param("id"))
		},
	})
	httpez.RegisterAction(e, httpez.Action[venue.Input, *domain.Venue]{
		Method: http.MethodPost,
		Path:   "/venues",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *venue.Input) (*domain.Venue, error) {
			return h.svc.Create(c.Request.Context(), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[venue.UpdateInput, *domain.Venue]{
		Method: http.MethodPut,
		Path:   "/venues/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *venue.UpdateInput) (*domain.Venue, error) {
			return h.svc.Update(c.Request.Context(), c.Param("id"), *in)
		},
	})
	// 软删：仅置为停用
	httpez.RegisterAction(e, httpez.Action[none, Deleted]{
		Method: http.MethodDelete,
		Path:   "/venues/:id",
		Handler: func(c *gin.Context, _ *none) (Deleted, error) {
			id := c.Param("id")
			return Deleted{ID: id}, h.svc.Deactivate(c.Request.Context(), id)
		},
	})
}
