package domain

import (
	"context"
	"time"
)

const (
	EntityVenue   = "venue"
	EntityBlog    = "blog"
	EntityPartner = "partner"
)

// Review 每个用户对同一目标仅一条
type Review struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;not null;uniqueIndex:uniq_review_target,priority:1" json:"user_id"`
	EntityType string    `gorm:"size:16;not null;uniqueIndex:uniq_review_target,priority:2;index:idx_review_entity,priority:1" json:"entity_type"`
	EntityID   string    `gorm:"size:36;not null;uniqueIndex:uniq_review_target,priority:3;index:idx_review_entity,priority:2" json:"entity_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Review) TableName() string { return "reviews" }

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id string) (*Review, error)
	ListForEntity(ctx context.Context, entityType, entityID string, p Page) ([]Review, int64, error)
	Summary(ctx context.Context, entityType, entityID string) (RatingSummary, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id string) error
}
