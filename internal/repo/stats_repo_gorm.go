package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"venue-booking-api/internal/domain"
)

type StatsRepo struct{ db *gorm.DB }

func NewStatsRepo(db *gorm.DB) *StatsRepo { return &StatsRepo{db: db} }

func (r *StatsRepo) Dashboard(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	db := r.db.WithContext(ctx)
	s := &domain.DashboardStats{GeneratedAt: now.UTC()}

	counts := []struct {
		dst   *int64
		model any
		where []any
	}{
		{&s.Users.Total, &domain.User{}, nil},
		{&s.Users.Active, &domain.User{}, []any{"is_active = ?", true}},
		{&s.Users.Admins, &domain.User{}, []any{"role = ?", domain.RoleAdmin}},
		{&s.Venues.Total, &domain.Venue{}, nil},
		{&s.Venues.Active, &domain.Venue{}, []any{"is_active = ?", true}},
		{&s.Appointments.Upcoming, &domain.Appointment{}, []any{"status IN ? AND appointment_date > ?", statusStrings(domain.ActiveStatuses), now.UTC()}},
		{&s.Blogs.Total, &domain.Blog{}, nil},
		{&s.Blogs.Published, &domain.Blog{}, []any{"status = ?", domain.BlogPublished}},
		{&s.Partners, &domain.Partner{}, []any{"is_active = ?", true}},
		{&s.UnreadContacts, &domain.ContactMessage{}, []any{"status = ?", domain.ContactNew}},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if len(c.where) > 0 {
			q = q.Where(c.where[0], c.where[1:]...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	var byStatus []domain.AppointmentCount
	if err := db.Model(&domain.Appointment{}).Select("status, COUNT(*) AS count").
		Group("status").Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	s.Appointments.ByStatus = map[domain.AppointmentStatus]int64{
		domain.StatusPending: 0, domain.StatusConfirmed: 0, domain.StatusCancelled: 0, domain.StatusCompleted: 0,
	}
	for _, c := range byStatus {
		s.Appointments.ByStatus[c.Status] = c.Count
	}

	if err := db.Order("created_at DESC").Limit(5).Find(&s.Appointments.Recent).Error; err != nil {
		return nil, err
	}
	if s.Appointments.Recent == nil {
		s.Appointments.Recent = []domain.Appointment{}
	}

	sum, err := ratingSummary(db.Model(&domain.Review{}))
	if err != nil {
		return nil, err
	}
	s.Reviews = sum
	return s, nil
}
