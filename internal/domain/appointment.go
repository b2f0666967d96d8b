package domain

import (
	"context"
	"time"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// ActiveStatuses 参与冲突检测的状态
var ActiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func (s AppointmentStatus) Active() bool { return s == StatusPending || s == StatusConfirmed }

func (s AppointmentStatus) Terminal() bool { return s == StatusCompleted || s == StatusCancelled }

type Appointment struct {
	ID              string            `gorm:"primaryKey;size:36" json:"id"`
	UserID          string            `gorm:"size:36;not null;index" json:"user_id"`
	VenueID         string            `gorm:"size:36;not null;index:idx_appt_venue_status_date,priority:1" json:"venue_id"`
	AppointmentDate time.Time         `gorm:"not null;index:idx_appt_venue_status_date,priority:3;index" json:"appointment_date"`
	DurationHours   int               `gorm:"not null" json:"duration_hours"`
	Purpose         string            `gorm:"size:500;not null" json:"purpose"`
	Notes           string            `gorm:"type:text" json:"notes"`
	Status          AppointmentStatus `gorm:"size:16;not null;index:idx_appt_venue_status_date,priority:2" json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (Appointment) TableName() string { return "appointments" }

// EndsAt 预约结束时间
func (a *Appointment) EndsAt() time.Time {
	return a.AppointmentDate.Add(time.Duration(a.DurationHours) * time.Hour)
}

type AppointmentFilter struct {
	UserID  string
	VenueID string
	Status  AppointmentStatus
	From    *time.Time
	To      *time.Time
}

// AppointmentCount 按状态聚合
type AppointmentCount struct {
	Status AppointmentStatus `json:"status"`
	Count  int64             `json:"count"`
}

type AppointmentRepository interface {
	// CreateIfFree 在同一事务内检查 [from,to] 内是否已有活跃预约，空闲则写入
	CreateIfFree(ctx context.Context, a *Appointment, from, to time.Time) (bool, error)
	// UpdateIfFree 改期使用，排除自身
	UpdateIfFree(ctx context.Context, a *Appointment, from, to time.Time) (bool, error)
	FindByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, f AppointmentFilter, p Page) ([]Appointment, int64, error)
	ListActiveForVenue(ctx context.Context, venueID string, from, to time.Time) ([]Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id string) error
	// CompleteStartedBefore 批量将 before 之前开始的活跃预约置为 completed
	CompleteStartedBefore(ctx context.Context, before, now time.Time) (int64, error)
}
