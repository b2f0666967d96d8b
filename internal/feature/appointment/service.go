package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"venue-booking-api/internal/core/auth"
	"venue-booking-api/internal/domain"
	"venue-booking-api/pkg/utils"
)

type Config struct {
	MaxDurationHours     int
	DefaultDurationHours int
}

type Service struct {
	appts  domain.AppointmentRepository
	venues domain.VenueRepository
	cfg    Config
	Now    func() time.Time
}

func NewService(appts domain.AppointmentRepository, venues domain.VenueRepository, cfg Config) *Service {
	if cfg.MaxDurationHours <= 0 {
		cfg.MaxDurationHours = 24
	}
	if cfg.DefaultDurationHours <= 0 {
		cfg.DefaultDurationHours = 1
	}
	return &Service{appts: appts, venues: venues, cfg: cfg, Now: time.Now}
}

type CreateInput struct {
	VenueID         string `json:"venue_id" binding:"required,max=36"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	DurationHours   *int   `json:"duration_hours" binding:"omitempty,gte=1,lte=24"`
	Purpose         string `json:"purpose" binding:"required,max=500"`
	Notes           string `json:"notes" binding:"max=2000"`
}

type UpdateInput struct {
	AppointmentDate *string `json:"appointment_date"`
	DurationHours   *int    `json:"duration_hours" binding:"omitempty,gte=1,lte=24"`
	Purpose         *string `json:"purpose" binding:"omitempty,min=1,max=500"`
	Notes           *string `json:"notes" binding:"omitempty,max=2000"`
}

type ListQuery struct {
	domain.Page
	Status  string `form:"status" binding:"omitempty,appt_status"`
	VenueID string `form:"venue_id"`
	UserID  string `form:"user_id"`
	From    string `form:"from"`
	To      string `form:"to"`
}

type Slot struct {
	Start         time.Time                `json:"start"`
	End           time.Time                `json:"end"`
	DurationHours int                      `json:"duration_hours"`
	Status        domain.AppointmentStatus `json:"status"`
}

type Availability struct {
	VenueID string `json:"venue_id"`
	Date    string `json:"date"`
	Booked  []Slot `json:"booked"`
}

func (s *Service) now() time.Time { return s.Now().UTC() }

func (s *Service) duration(h *int) (int, error) {
	if h == nil {
		return s.cfg.DefaultDurationHours, nil
	}
	if *h < 1 || *h > s.cfg.MaxDurationHours {
		return 0, domain.FieldError("duration_hours", fmt.Sprintf("must be between 1 and %d", s.cfg.MaxDurationHours))
	}
	return *h, nil
}

func (s *Service) futureStart(raw string) (time.Time, error) {
	start, ok := ParseDate(raw)
	if !ok {
		return time.Time{}, domain.FieldError("appointment_date", "must be a valid ISO-8601 date")
	}
	if !start.After(s.now()) {
		return time.Time{}, domain.FieldError("appointment_date", "must be in the future")
	}
	return start, nil
}

func (s *Service) activeVenue(ctx context.Context, id string) (*domain.Venue, error) {
	v, err := s.venues.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.IsActive {
		return nil, domain.NotFound("venue not found")
	}
	return v, nil
}

// Create 校验未来时间 → 场馆可用 → 事务内冲突检测并写入
func (s *Service) Create(ctx context.Context, p *auth.Principal, in CreateInput) (*domain.Appointment, error) {
	start, err := s.futureStart(in.AppointmentDate)
	if err != nil {
		return nil, err
	}
	hours, err := s.duration(in.DurationHours)
	if err != nil {
		return nil, err
	}
	if _, err := s.activeVenue(ctx, in.VenueID); err != nil {
		return nil, err
	}

	a := &domain.Appointment{
		ID:              utils.NewID(),
		UserID:          p.UserID,
		VenueID:         in.VenueID,
		AppointmentDate: start,
		DurationHours:   hours,
		Purpose:         strings.TrimSpace(in.Purpose),
		Notes:           strings.TrimSpace(in.Notes),
		Status:          domain.StatusPending,
	}
	from, to := Window(start, hours)
	ok, err := s.appts.CreateIfFree(ctx, a, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.SlotUnavailable("time slot unavailable")
	}
	return a, nil
}

func parseBound(raw, field string, endOfDay bool) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	if _, end, ok := ParseDay(raw); ok && endOfDay {
		t := end.Add(-time.Nanosecond)
		return &t, nil
	}
	t, ok := ParseDate(raw)
	if !ok {
		return nil, domain.FieldError(field, "must be an ISO-8601 date")
	}
	return &t, nil
}

// List 管理员看全部（可按 user_id 过滤），普通用户只看自己的
func (s *Service) List(ctx context.Context, p *auth.Principal, q ListQuery) (domain.List[domain.Appointment], error) {
	f := domain.AppointmentFilter{
		VenueID: q.VenueID,
		Status:  domain.AppointmentStatus(q.Status),
	}
	if p.IsAdmin() {
		f.UserID = q.UserID
	} else {
		f.UserID = p.UserID
	}
	var err error
	if f.From, err = parseBound(q.From, "from", false); err != nil {
		return domain.List[domain.Appointment]{}, err
	}
	if f.To, err = parseBound(q.To, "to", true); err != nil {
		return domain.List[domain.Appointment]{}, err
	}
	items, total, err := s.appts.List(ctx, f, q.Page)
	if err != nil {
		return domain.List[domain.Appointment]{}, err
	}
	return domain.NewList(items, total, q.Page), nil
}

func (s *Service) owned(ctx context.Context, p *auth.Principal, id string) (*domain.Appointment, error) {
	a, err := s.appts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(p, a.UserID) {
		return nil, domain.Forbidden("you can only access your own appointments")
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, p *auth.Principal, id string) (*domain.Appointment, error) {
	return s.owned(ctx, p, id)
}

// Update 字段修改；改期或改时长会重新校验未来时间并重跑冲突检测（排除自身）
func (s *Service) Update(ctx context.Context, p *auth.Principal, id string, in UpdateInput) (*domain.Appointment, error) {
	a, err := s.appts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckEditable(p, a); err != nil {
		return nil, err
	}

	reschedule := false
	if in.AppointmentDate != nil {
		start, err := s.futureStart(*in.AppointmentDate)
		if err != nil {
			return nil, err
		}
		reschedule = reschedule || !start.Equal(a.AppointmentDate)
		a.AppointmentDate = start
	}
	if in.DurationHours != nil {
		hours, err := s.duration(in.DurationHours)
		if err != nil {
			return nil, err
		}
		reschedule = reschedule || hours != a.DurationHours
		a.DurationHours = hours
	}
	if in.Purpose != nil {
		purpose := strings.TrimSpace(*in.Purpose)
		if purpose == "" {
			return nil, domain.FieldError("purpose", "is required")
		}
		a.Purpose = purpose
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}

	if !reschedule {
		if err := s.appts.Update(ctx, a); err != nil {
			return nil, err
		}
		return a, nil
	}
	from, to := Window(a.AppointmentDate, a.DurationHours)
	ok, err := s.appts.UpdateIfFree(ctx, a, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.SlotUnavailable("time slot unavailable")
	}
	return a, nil
}

func (s *Service) UpdateStatus(ctx context.Context, p *auth.Principal, id string, to domain.AppointmentStatus) (*domain.Appointment, error) {
	a, err := s.appts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(p, a, to); err != nil {
		return nil, err
	}
	a.Status = to
	if err := s.appts.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, p *auth.Principal, id string) error {
	if _, err := s.owned(ctx, p, id); err != nil {
		return err
	}
	return s.appts.Delete(ctx, id)
}

// Availability 某场馆某天（UTC）已被占用的时段
func (s *Service) Availability(ctx context.Context, venueID, day string) (*Availability, error) {
	from, to, ok := ParseDay(day)
	if !ok {
		return nil, domain.FieldError("date", "must be in YYYY-MM-DD format")
	}
	if _, err := s.activeVenue(ctx, venueID); err != nil {
		return nil, err
	}
	// 前一日开始、时长跨入当日的预约同样占用当日时段
	lookback := time.Duration(s.cfg.MaxDurationHours) * time.Hour
	items, err := s.appts.ListActiveForVenue(ctx, venueID, from.Add(-lookback), to)
	if err != nil {
		return nil, err
	}
	out := &Availability{VenueID: venueID, Date: from.Format(DayLayout), Booked: make([]Slot, 0, len(items))}
	for i := range items {
		a := &items[i]
		if !Overlaps(a.AppointmentDate, a.EndsAt(), from, to) {
			continue
		}
		out.Booked = append(out.Booked, Slot{
			Start:         a.AppointmentDate.UTC(),
			End:           a.EndsAt().UTC(),
			DurationHours: a.DurationHours,
			Status:        a.Status,
		})
	}
	return out, nil
}
