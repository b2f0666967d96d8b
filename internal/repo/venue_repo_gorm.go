package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"venue-booking-api/internal/domain"
)

type VenueRepo struct{ db *gorm.DB }

func NewVenueRepo(db *gorm.DB) *VenueRepo { return &VenueRepo{db: db} }

func (r *VenueRepo) Create(ctx context.Context, v *domain.Venue) error {
	return translate(r.db.WithContext(ctx).Create(v).Error, "venue")
}

func (r *VenueRepo) FindByID(ctx context.Context, id string) (*domain.Venue, error) {
	var v domain.Venue
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, translate(err, "venue")
	}
	return &v, nil
}

func (r *VenueRepo) List(ctx context.Context, f domain.VenueFilter, p domain.Page) ([]domain.Venue, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Venue{})
	if !f.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if f.Category != "" {
		// both 同时属于两类
		q = q.Where("category IN ?", []string{f.Category, domain.CategoryBoth})
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like(s), like(s))
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var vs []domain.Venue
	p = p.Normalize()
	if err := q.Order("name ASC").Limit(p.Limit).Offset(p.Offset()).Find(&vs).Error; err != nil {
		return nil, 0, err
	}
	return vs, total, nil
}

func (r *VenueRepo) Update(ctx context.Context, v *domain.Venue) error {
	return translate(r.db.WithContext(ctx).Save(v).Error, "venue")
}
