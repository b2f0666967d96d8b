package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venue-booking-api/internal/domain"
	"venue-booking-api/internal/feature/appointment"
	httpez "venue-booking-api/internal/transport/http/ez"
)

type AppointmentHandler struct{ svc *appointment.Service }

func NewAppointmentHandler(svc *appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

type statusInput struct {
	Status string `json:"status" binding:"required"`
}

type dayQuery struct {
	Date string `form:"date" binding:"required"`
}

func (h *AppointmentHandler) MountAPI(e httpez.EZ) {
	// 公共：某场馆某日已占用的时段
	httpez.RegisterAction(e, httpez.Action[dayQuery, *appointment.Availability]{
		Method: http.MethodGet,
		Path:   "/appointments/availability/:venueId",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *dayQuery) (*appointment.Availability, error) {
			return h.svc.Availability(c.Request.Context(), c.Param("venueId"), in.Date)
		},
	})

	httpez.RegisterAction(e, httpez.Action[appointment.CreateInput, *domain.Appointment]{
		Method: http.MethodPost,
		Path:   "/appointments",
		Binder: httpez.BindJSON,
		Auth:   httpez.AuthRequired,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *appointment.CreateInput) (*domain.Appointment, error) {
			return h.svc.Create(c.Request.Context(), principal(c), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[appointment.ListQuery, domain.List[domain.Appointment]]{
		Method: http.MethodGet,
		Path:   "/appointments",
		Binder: httpez.BindQuery,
		Auth:   httpez.AuthRequired,
		Handler: func(c *gin.Context, in *appointment.ListQuery) (domain.List[domain.Appointment], error) {
			return h.svc.List(c.Request.Context(), principal(c), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[none, *domain.Appointment]{
		Method: http.MethodGet,
		Path:   "/appointments/:id",
		Auth:   httpez.AuthRequired,
		Handler: func(c *gin.Context, _ *none) (*domain.Appointment, error) {
			return h.svc.Get(c.Request.Context(), principal(c), c.Param("id"))
		},
	})
	httpez.RegisterAction(e, httpez.Action[appointment.UpdateInput, *domain.Appointment]{
		Method: http.MethodPut,
		Path:   "/appointments/:id",
		Binder: httpez.BindJSON,
		Auth:   httpez.AuthRequired,
		Handler: func(c *gin.Context, in *appointment.UpdateInput) (*domain.Appointment, error) {
			return h.svc.Update(c.Request.Context(), principal(c), c.Param("id"), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[statusInput, *domain.Appointment]{
		Method: http.MethodPut,
		Path:   "/appointments/:id/status",
		Binder: httpez.BindJSON,
		Auth:   httpez.AuthRequired,
		Handler: func(c *gin.Context, in *statusInput) (*domain.Appointment, error) {
			return h.svc.UpdateStatus(c.Request.Context(), principal(c), c.Param("id"), domain.AppointmentStatus(in.Status))
		},
	})
	httpez.RegisterAction(e, httpez.Action[none, Deleted]{
		Method: http.MethodDelete,
		Path:   "/appointments/:id",
		Auth:   httpez.AuthRequired,
		Handler: func(c *gin.Context, _ *none) (Deleted, error) {
			id := c.Param("id")
			return Deleted{ID: id}, h.svc.Delete(c.Request.Context(), principal(c), id)
		},
	})
}
