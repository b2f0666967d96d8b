package domain

import (
	"context"
	"time"
)

const (
	ContactNew     = "new"
	ContactRead    = "read"
	ContactReplied = "replied"
)

type ContactMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Email     string    `gorm:"size:191;not null" json:"email"`
	Subject   string    `gorm:"size:200;not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Status    string    `gorm:"size:16;not null;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ContactMessage) TableName() string { return "contact_messages" }

type ContactRepository interface {
	Create(ctx context.Context, m *ContactMessage) error
	FindByID(ctx context.Context, id string) (*ContactMessage, error)
	List(ctx context.Context, status string, p Page) ([]ContactMessage, int64, error)
	Update(ctx context.Context, m *ContactMessage) error
	Delete(ctx context.Context, id string) error
}
