package domain

import (
	"context"
	"time"
)

type Partner struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:64;index" json:"category"`
	LogoURL     string    `gorm:"size:512" json:"logo_url"`
	Website     string    `gorm:"size:512" json:"website"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Partner) TableName() string { return "partners" }

type PartnerFilter struct {
	Category        string
	IncludeInactive bool
}

type PartnerRepository interface {
	Create(ctx context.Context, p *Partner) error
	FindByID(ctx context.Context, id string) (*Partner, error)
	List(ctx context.Context, f PartnerFilter, p Page) ([]Partner, int64, error)
	Update(ctx context.Context, p *Partner) error
	Delete(ctx context.Context, id string) error
}
