package partner

import (
	"context"
	"errors"
	"strings"

	"venue-booking-api/internal/domain"
	"venue-booking-api/pkg/utils"
)

type Service struct{ partners domain.PartnerRepository }

func NewService(partners domain.PartnerRepository) *Service { return &Service{partners: partners} }

type Input struct {
	Name        string `json:"name" binding:"required,min=1,max=128"`
	Description string `json:"description" binding:"max=5000"`
	Category    string `json:"category" binding:"max=64"`
	LogoURL     string `json:"logo_url" binding:"omitempty,url,max=512"`
	Website     string `json:"website" binding:"omitempty,url,max=512"`
	IsActive    *bool  `json:"is_active"`
}

type ListQuery struct {
	domain.Page
	Category string `form:"category"`
}

func (s *Service) List(ctx context.Context, q ListQuery, includeInactive bool) (domain.List[domain.Partner], error) {
	items, total, err := s.partners.List(ctx, domain.PartnerFilter{Category: q.Category, IncludeInactive: includeInactive}, q.Page)
	if err != nil {
		return domain.List[domain.Partner]{}, err
	}
	return domain.NewList(items, total, q.Page), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Partner, error) {
	return s.partners.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Partner, error) {
	p := &domain.Partner{ID: utils.NewID(), IsActive: true}
	apply(p, in)
	if err := s.partners.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update 全量覆盖（is_active 省略时保持原值）
func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Partner, error) {
	p, err := s.partners.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(p, in)
	if err := s.partners.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func apply(p *domain.Partner, in Input) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Category = strings.TrimSpace(in.Category)
	p.LogoURL = in.LogoURL
	p.Website = in.Website
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

func (s *Service) Delete(ctx context.Context, id string) error { return s.partners.Delete(ctx, id) }

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	p, err := s.partners.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return p.IsActive, nil
}
