package domain

import (
	"context"
	"time"
)

const (
	BlogDraft     = "draft"
	BlogPublished = "published"
)

type Blog struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	AuthorID    string     `gorm:"size:36;not null;index" json:"author_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;size:191;not null" json:"slug"`
	Excerpt     string     `gorm:"size:500" json:"excerpt"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	CoverImage  string     `gorm:"size:512" json:"cover_image"`
	Tags        string     `gorm:"size:255" json:"tags"` // 逗号分隔
	Status      string     `gorm:"size:16;not null;index" json:"status"`
	Views       int64      `gorm:"not null" json:"views"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Blog) TableName() string { return "blogs" }

type BlogFilter struct {
	AuthorID      string
	Q             string
	Tag           string
	PublishedOnly bool
}

type BlogRepository interface {
	Create(ctx context.Context, b *Blog) error
	FindByID(ctx context.Context, id string) (*Blog, error)
	FindBySlug(ctx context.Context, slug string) (*Blog, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, f BlogFilter, p Page) ([]Blog, int64, error)
	Update(ctx context.Context, b *Blog) error
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
