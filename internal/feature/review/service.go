package review

import (
	"context"
	"strings"

	"venue-booking-api/internal/core/auth"
	"venue-booking-api/internal/domain"
	"venue-booking-api/pkg/utils"
)

// TargetChecker 判断被评价对象是否存在且可评价
type TargetChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	reviews domain.ReviewRepository
	targets map[string]TargetChecker
}

func NewService(reviews domain.ReviewRepository, targets map[string]TargetChecker) *Service {
	return &Service{reviews: reviews, targets: targets}
}

type Input struct {
	EntityType string `json:"entity_type" binding:"required,entity_type"`
	EntityID   string `json:"entity_id" binding:"required,max=36"`
	Rating     int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment    string `json:"comment" binding:"max=2000"`
}

type UpdateInput struct {
	Rating  *int    `json:"rating" binding:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

type ListQuery struct {
	domain.Page
	EntityType string `form:"entity_type" binding:"required,entity_type"`
	EntityID   string `form:"entity_id" binding:"required"`
}

type ListResult struct {
	domain.List[domain.Review]
	Summary domain.RatingSummary `json:"summary"`
}

func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	items, total, err := s.reviews.ListForEntity(ctx, q.EntityType, q.EntityID, q.Page)
	if err != nil {
		return nil, err
	}
	sum, err := s.reviews.Summary(ctx, q.EntityType, q.EntityID)
	if err != nil {
		return nil, err
	}
	return &ListResult{List: domain.NewList(items, total, q.Page), Summary: sum}, nil
}

func (s *Service) Create(ctx context.Context, p *auth.Principal, in Input) (*domain.Review, error) {
	chk, ok := s.targets[in.EntityType]
	if !ok {
		return nil, domain.FieldError("entity_type", "must be one of: venue, blog, partner")
	}
	exists, err := chk.Exists(ctx, in.EntityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NotFound("%s not found", in.EntityType)
	}
	r := &domain.Review{
		ID:         utils.NewID(),
		UserID:     p.UserID,
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) owned(ctx context.Context, p *auth.Principal, id string) (*domain.Review, error) {
	r, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(p, r.UserID) {
		return nil, domain.Forbidden("you can only modify your own reviews")
	}
	return r, nil
}

func (s *Service) Update(ctx context.Context, p *auth.Principal, id string, in UpdateInput) (*domain.Review, error) {
	r, err := s.owned(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	if in.Comment != nil {
		r.Comment = strings.TrimSpace(*in.Comment)
	}
	if err := s.reviews.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, p *auth.Principal, id string) error {
	if _, err := s.owned(ctx, p, id); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}
