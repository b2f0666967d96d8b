package repo

import (
	"context"

	"gorm.io/gorm"

	"venue-booking-api/internal/domain"
)

type ContactRepo struct{ db *gorm.DB }

func NewContactRepo(db *gorm.DB) *ContactRepo { return &ContactRepo{db: db} }

func (r *ContactRepo) Create(ctx context.Context, m *domain.ContactMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ContactRepo) FindByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	var m domain.ContactMessage
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err, "contact message")
	}
	return &m, nil
}

func (r *ContactRepo) List(ctx context.Context, status string, p domain.Page) ([]domain.ContactMessage, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.ContactMessage{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.ContactMessage
	p = p.Normalize()
	if err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset()).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ContactRepo) Update(ctx context.Context, m *domain.ContactMessage) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.ContactMessage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("contact message not found")
	}
	return nil
}
