package repo

import (
	"context"

	"gorm.io/gorm"

	"venue-booking-api/internal/domain"
)

type ReviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create 唯一索引 (user_id, entity_type, entity_id) 冲突时返回业务语义的冲突错误
func (r *ReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	err := r.db.WithContext(ctx).Create(rv).Error
	if err != nil && isDupKey(err) {
		return domain.Conflict("you have already reviewed this item")
	}
	return translate(err, "review")
}

func (r *ReviewRepo) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error; err != nil {
		return nil, translate(err, "review")
	}
	return &rv, nil
}

func (r *ReviewRepo) ListForEntity(ctx context.Context, entityType, entityID string, p domain.Page) ([]domain.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Review
	p = p.Normalize()
	if err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset()).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ReviewRepo) Summary(ctx context.Context, entityType, entityID string) (domain.RatingSummary, error) {
	q := r.db.WithContext(ctx).Model(&domain.Review{})
	if entityType != "" {
		q = q.Where("entity_type = ? AND entity_id = ?", entityType, entityID)
	}
	return ratingSummary(q)
}

func ratingSummary(q *gorm.DB) (domain.RatingSummary, error) {
	var row struct {
		Avg *float64
		Cnt int64
	}
	if err := q.Select("AVG(rating) AS avg, COUNT(*) AS cnt").Scan(&row).Error; err != nil {
		return domain.RatingSummary{}, err
	}
	s := domain.RatingSummary{Count: row.Cnt}
	if row.Avg != nil {
		s.Average = *row.Avg
	}
	return s, nil
}

func (r *ReviewRepo) Update(ctx context.Context, rv *domain.Review) error {
	return translate(r.db.WithContext(ctx).Save(rv).Error, "review")
}

func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("review not found")
	}
	return nil
}
