package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"venue-booking-api/internal/domain"
)

type AppointmentRepo struct{ db *gorm.DB }

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

func (r *AppointmentRepo) CreateIfFree(ctx context.Context, a *domain.Appointment, from, to time.Time) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockVenue(tx, a.VenueID); err != nil {
			return err
		}
		busy, err := hasActiveBetween(tx, a.VenueID, from, to, "")
		if err != nil || busy {
			return err
		}
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, translate(err, "appointment")
}

func (r *AppointmentRepo) UpdateIfFree(ctx context.Context, a *domain.Appointment, from, to time.Time) (bool, error) {
	saved := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockVenue(tx, a.VenueID); err != nil {
			return err
		}
		busy, err := hasActiveBetween(tx, a.VenueID, from, to, a.ID)
		if err != nil || busy {
			return err
		}
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		saved = true
		return nil
	})
	return saved, translate(err, "appointment")
}

// lockVenue 对场馆行加写锁，串行化同一场馆的并发预约；sqlite 无行锁，依赖单连接
func lockVenue(tx *gorm.DB, venueID string) error {
	q := tx.Model(&domain.Venue{}).Where("id = ?", venueID)
	if tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var ids []string
	return q.Pluck("id", &ids).Error
}

func hasActiveBetween(tx *gorm.DB, venueID string, from, to time.Time, excludeID string) (bool, error) {
	q := tx.Model(&domain.Appointment{}).
		Where("venue_id = ? AND status IN ?", venueID, statusStrings(domain.ActiveStatuses)).
		Where("appointment_date >= ? AND appointment_date <= ?", from, to)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *AppointmentRepo) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err, "appointment")
	}
	return &a, nil
}

func (r *AppointmentRepo) List(ctx context.Context, f domain.AppointmentFilter, p domain.Page) ([]domain.Appointment, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Appointment{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.VenueID != "" {
		q = q.Where("venue_id = ?", f.VenueID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.From != nil {
		q = q.Where("appointment_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("appointment_date <= ?", *f.To)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Appointment
	p = p.Normalize()
	if err := q.Order("appointment_date DESC").Limit(p.Limit).Offset(p.Offset()).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *AppointmentRepo) ListActiveForVenue(ctx context.Context, venueID string, from, to time.Time) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND status IN ?", venueID, statusStrings(domain.ActiveStatuses)).
		Where("appointment_date >= ? AND appointment_date < ?", from, to).
		Order("appointment_date ASC").
		Find(&out).Error
	return out, err
}

func (r *AppointmentRepo) Update(ctx context.Context, a *domain.Appointment) error {
	return translate(r.db.WithContext(ctx).Save(a).Error, "appointment")
}

func (r *AppointmentRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("appointment not found")
	}
	return nil
}

// CompleteStartedBefore 单条 UPDATE 完成批量收尾，重复执行无副作用
func (r *AppointmentRepo) CompleteStartedBefore(ctx context.Context, before, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Appointment{}).
		Where("status IN ? AND appointment_date < ?", statusStrings(domain.ActiveStatuses), before).
		Updates(map[string]any{"status": string(domain.StatusCompleted), "updated_at": now})
	return res.RowsAffected, res.Error
}
