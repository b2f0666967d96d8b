package contact

import (
	"context"
	"strings"

	"venue-booking-api/internal/domain"
	"venue-booking-api/pkg/utils"
)

type Service struct{ msgs domain.ContactRepository }

func NewService(msgs domain.ContactRepository) *Service { return &Service{msgs: msgs} }

type Input struct {
	Name    string `json:"name" binding:"required,min=1,max=128"`
	Email   string `json:"email" binding:"required,email,max=191"`
	Subject string `json:"subject" binding:"required,min=1,max=200"`
	Message string `json:"message" binding:"required,min=1,max=5000"`
}

type StatusInput struct {
	Status string `json:"status" binding:"required,contact_status"`
}

type ListQuery struct {
	domain.Page
	Status string `form:"status" binding:"omitempty,contact_status"`
}

func (s *Service) Submit(ctx context.Context, in Input) (*domain.ContactMessage, error) {
	m := &domain.ContactMessage{
		ID:      utils.NewID(),
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
		Status:  domain.ContactNew,
	}
	if err := s.msgs.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) (domain.List[domain.ContactMessage], error) {
	items, total, err := s.msgs.List(ctx, q.Status, q.Page)
	if err != nil {
		return domain.List[domain.ContactMessage]{}, err
	}
	return domain.NewList(items, total, q.Page), nil
}

func (s *Service) SetStatus(ctx context.Context, id, status string) (*domain.ContactMessage, error) {
	m, err := s.msgs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Status = status
	if err := s.msgs.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error { return s.msgs.Delete(ctx, id) }
