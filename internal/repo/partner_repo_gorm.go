package repo

import (
	"context"

	"gorm.io/gorm"

	"venue-booking-api/internal/domain"
)

type PartnerRepo struct{ db *gorm.DB }

func NewPartnerRepo(db *gorm.DB) *PartnerRepo { return &PartnerRepo{db: db} }

func (r *PartnerRepo) Create(ctx context.Context, p *domain.Partner) error {
	return translate(r.db.WithContext(ctx).Create(p).Error, "partner")
}

func (r *PartnerRepo) FindByID(ctx context.Context, id string) (*domain.Partner, error) {
	var p domain.Partner
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err, "partner")
	}
	return &p, nil
}

func (r *PartnerRepo) List(ctx context.Context, f domain.PartnerFilter, pg domain.Page) ([]domain.Partner, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Partner{})
	if !f.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Partner
	pg = pg.Normalize()
	if err := q.Order("name ASC").Limit(pg.Limit).Offset(pg.Offset()).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PartnerRepo) Update(ctx context.Context, p *domain.Partner) error {
	return translate(r.db.WithContext(ctx).Save(p).Error, "partner")
}

func (r *PartnerRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Partner{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("partner not found")
	}
	return nil
}
