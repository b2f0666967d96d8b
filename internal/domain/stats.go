package domain

import (
	"context"
	"time"
)

type DashboardStats struct {
	Users struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
		Admins int64 `json:"admins"`
	} `json:"users"`
	Venues struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
	} `json:"venues"`
	Appointments struct {
		ByStatus map[AppointmentStatus]int64 `json:"by_status"`
		Upcoming int64                       `json:"upcoming"`
		Recent   []Appointment               `json:"recent"`
	} `json:"appointments"`
	Blogs struct {
		Total     int64 `json:"total"`
		Published int64 `json:"published"`
	} `json:"blogs"`
	Reviews        RatingSummary `json:"reviews"`
	Partners       int64         `json:"partners"`
	UnreadContacts int64         `json:"unread_contacts"`
	GeneratedAt    time.Time     `json:"generated_at"`
}

// StatsRepository 仪表盘聚合查询
type StatsRepository interface {
	Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error)
}

// Models 需要自动迁移的表
func Models() []any {
	return []any{&User{}, &Venue{}, &Appointment{}, &Blog{}, &Review{}, &Partner{}, &ContactMessage{}}
}
