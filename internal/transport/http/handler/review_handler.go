package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venue-booking-api/internal/domain"
	"venue-booking-api/internal/feature/review"
	httpez "venue-booking-api/internal/transport/http/ez"
)

type ReviewHandler struct{ svc *review.Service }

func NewReviewHandler(svc *review.Service) *ReviewHandler { return &ReviewHandler{svc: svc} }

func (h *ReviewHandler) MountAPI(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[review.ListQuery, *review.ListResult]{
		Method: http.MethodGet,
		Path:   "/reviews",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *review.ListQuery) (*review.ListResult, error) {
			return h.svc.List(c.Request.Context(), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[review.Input, *domain.Review]{
		Method: http.MethodPost,
		Path:   "/reviews",
		Binder: httpez.BindJSON,
		Auth:   httpez.AuthRequired,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *review.Input) (*domain.Review, error) {
			return h.svc.Create(c.Request.Context(), principal(c), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[review.UpdateInput, *domain.Review]{
		Method: http.MethodPut,
		Path:   "/reviews/:id",
		Binder: httpez.BindJSON,
		Auth:   httpez.AuthRequired,
		Handler: func(c *gin.Context, in *review.UpdateInput) (*domain.Review, error) {
			return h.svc.Update(c.Request.Context(), principal(c), c.Param("id"), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[none, Deleted]{
		Method: http.MethodDelete,
		Path:   "/reviews/:id",
		Auth:   httpez.AuthRequired,
		Handler: func(c *gin.Context, _ *none) (Deleted, error) {
			id := c.Param("id")
			return Deleted{ID: id}, h.svc.Delete(c.Request.Context(), principal(c), id)
		},
	})
}
