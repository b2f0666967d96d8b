package domain

import (
	"context"
	"time"
)

const (
	CategorySports        = "sports"
	CategoryEntertainment = "entertainment"
	CategoryBoth          = "both"

	MaxVenueCapacity = 100000
)

type Venue struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:128;not null;index" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Category     string    `gorm:"size:16;not null;index" json:"category"`
	Capacity     int       `gorm:"not null" json:"capacity"`
	Address      string    `gorm:"size:255" json:"address"`
	ContactEmail string    `gorm:"size:191" json:"contact_email"`
	ContactPhone string    `gorm:"size:32" json:"contact_phone"`
	ImageURL     string    `gorm:"size:512" json:"image_url"`
	IsActive     bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Venue) TableName() string { return "venues" }

type VenueFilter struct {
	Category        string
	Q               string
	IncludeInactive bool
}

type VenueRepository interface {
	Create(ctx context.Context, v *Venue) error
	FindByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, f VenueFilter, p Page) ([]Venue, int64, error)
	Update(ctx context.Context, v *Venue) error
}
