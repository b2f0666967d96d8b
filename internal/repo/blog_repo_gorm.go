package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"venue-booking-api/internal/domain"
)

type BlogRepo struct{ db *gorm.DB }

func NewBlogRepo(db *gorm.DB) *BlogRepo { return &BlogRepo{db: db} }

func (r *BlogRepo) Create(ctx context.Context, b *domain.Blog) error {
	return translate(r.db.WithContext(ctx).Create(b).Error, "blog slug")
}

func (r *BlogRepo) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	var b domain.Blog
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translate(err, "blog")
	}
	return &b, nil
}

func (r *BlogRepo) FindBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	var b domain.Blog
	if err := r.db.WithContext(ctx).First(&b, "slug = ?", slug).Error; err != nil {
		return nil, translate(err, "blog")
	}
	return &b, nil
}

func (r *BlogRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Blog{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

func (r *BlogRepo) List(ctx context.Context, f domain.BlogFilter, p domain.Page) ([]domain.Blog, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Blog{})
	if f.PublishedOnly {
		q = q.Where("status = ?", domain.BlogPublished)
	}
	if f.AuthorID != "" {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		q = q.Where("LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ?", like(s), like(s))
	}
	if t := strings.TrimSpace(f.Tag); t != "" {
		q = q.Where("LOWER(tags) LIKE ?", like(t))
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Blog
	p = p.Normalize()
	if err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset()).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *BlogRepo) Update(ctx context.Context, b *domain.Blog) error {
	return translate(r.db.WithContext(ctx).Save(b).Error, "blog slug")
}

func (r *BlogRepo) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.Blog{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Blog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("blog not found")
	}
	return nil
}
