package venue

import (
	"context"
	"errors"
	"strings"

	"venue-booking-api/internal/core/cache"
	"venue-booking-api/internal/domain"
	"venue-booking-api/pkg/utils"
)

type Service struct {
	venues domain.VenueRepository
	cache  *cache.Cache
}

func NewService(venues domain.VenueRepository, c *cache.Cache) *Service {
	return &Service{venues: venues, cache: c}
}

type Input struct {
	Name         string `json:"name" binding:"required,min=1,max=128"`
	Description  string `json:"description" binding:"max=5000"`
	Category     string `json:"category" binding:"required,venue_category"`
	Capacity     int    `json:"capacity" binding:"required,gte=1,lte=100000"`
	Address      string `json:"address" binding:"max=255"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email,max=191"`
	ContactPhone string `json:"contact_phone" binding:"max=32"`
	ImageURL     string `json:"image_url" binding:"omitempty,url,max=512"`
}

type UpdateInput struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=128"`
	Description  *string `json:"description" binding:"omitempty,max=5000"`
	Category     *string `json:"category" binding:"omitempty,venue_category"`
	Capacity     *int    `json:"capacity" binding:"omitempty,gte=1,lte=100000"`
	Address      *string `json:"address" binding:"omitempty,max=255"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email,max=191"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=32"`
	ImageURL     *string `json:"image_url" binding:"omitempty,url,max=512"`
	IsActive     *bool   `json:"is_active"`
}

type ListQuery struct {
	domain.Page
	Category string `form:"category" binding:"omitempty,venue_category"`
	Q        string `form:"q"`
}

func cacheKey(id string) string { return "venue:" + id }

func (s *Service) List(ctx context.Context, q ListQuery, includeInactive bool) (domain.List[domain.Venue], error) {
	items, total, err := s.venues.List(ctx, domain.VenueFilter{
		Category: q.Category, Q: q.Q, IncludeInactive: includeInactive,
	}, q.Page)
	if err != nil {
		return domain.List[domain.Venue]{}, err
	}
	return domain.NewList(items, total, q.Page), nil
}

// Get 公开详情，停用场馆视为不存在；详情走缓存
func (s *Service) Get(ctx context.Context, id string) (*domain.Venue, error) {
	v, err := cache.GetOrLoadJSON(s.cache, ctx, cacheKey(id), 0, func(ctx context.Context) (*domain.Venue, error) {
		v, err := s.venues.FindByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return v, err
	})
	if err != nil {
		return nil, err
	}
	if v == nil || !v.IsActive {
		return nil, domain.NotFound("venue not found")
	}
	return v, nil
}

func (s *Service) AdminGet(ctx context.Context, id string) (*domain.Venue, error) {
	return s.venues.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Venue, error) {
	v := &domain.Venue{
		ID:           utils.NewID(),
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Category:     in.Category,
		Capacity:     in.Capacity,
		Address:      in.Address,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		ImageURL:     in.ImageURL,
		IsActive:     true,
	}
	if err := s.venues.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Venue, error) {
	v, err := s.venues.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&v.Name, in.Name)
	set(&v.Description, in.Description)
	set(&v.Category, in.Category)
	set(&v.Address, in.Address)
	set(&v.ContactEmail, in.ContactEmail)
	set(&v.ContactPhone, in.ContactPhone)
	set(&v.ImageURL, in.ImageURL)
	if in.Capacity != nil {
		v.Capacity = *in.Capacity
	}
	if in.IsActive != nil {
		v.IsActive = *in.IsActive
	}
	if v.Name == "" {
		return nil, domain.FieldError("name", "is required")
	}
	if err := s.venues.Update(ctx, v); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, cacheKey(id))
	return v, nil
}

// Deactivate 软删除：仅置 is_active=false
func (s *Service) Deactivate(ctx context.Context, id string) error {
	v, err := s.venues.FindByID(ctx, id)
	if err != nil {
		return err
	}
	v.IsActive = false
	if err := s.venues.Update(ctx, v); err != nil {
		return err
	}
	s.cache.Delete(ctx, cacheKey(id))
	return nil
}

// Exists 评价等模块校验目标是否存在（需启用）
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	v, err := s.venues.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return v.IsActive, nil
}
