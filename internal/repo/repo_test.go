package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"venue-booking-api/internal/domain"
	"venue-booking-api/internal/repo"
	"venue-booking-api/internal/testinfra"
	"venue-booking-api/pkg/utils"
)

func appt(userID, venueID string, start time.Time, hours int) *domain.Appointment {
	return &domain.Appointment{
		ID:              utils.NewID(),
		UserID:          userID,
		VenueID:         venueID,
		AppointmentDate: start,
		DurationHours:   hours,
		Purpose:         "match",
		Status:          domain.StatusPending,
	}
}

func TestAppointmentRepo_CreateIfFree(t *testing.T) {
	db := testinfra.NewDB(t)
	u := testinfra.SeedUser(t, db, "a@example.com", domain.RoleUser)
	v := testinfra.SeedVenue(t, db, "Arena")
	r := repo.NewAppointmentRepo(db)
	ctx := context.Background()

	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	ok, err := r.CreateIfFree(ctx, appt(u.ID, v.ID, start, 2), start.Add(-2*time.Hour), start.Add(2*time.Hour))
	if err != nil || !ok {
		t.Fatalf("first booking: ok=%v err=%v", ok, err)
	}

	second := start.Add(time.Hour)
	ok, err = r.CreateIfFree(ctx, appt(u.ID, v.ID, second, 1), second.Add(-time.Hour), second.Add(time.Hour))
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}
	if ok {
		t.Fatal("overlapping booking should be rejected")
	}

	next := time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC)
	ok, err = r.CreateIfFree(ctx, appt(u.ID, v.ID, next, 1), next.Add(-time.Hour), next.Add(time.Hour))
	if err != nil || !ok {
		t.Fatalf("next day booking: ok=%v err=%v", ok, err)
	}

	_, total, err := r.List(ctx, domain.AppointmentFilter{VenueID: v.ID}, domain.Page{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
}

func TestAppointmentRepo_InactiveIgnoredByConflict(t *testing.T) {
	db := testinfra.NewDB(t)
	u := testinfra.SeedUser(t, db, "a@example.com", domain.RoleUser)
	v := testinfra.SeedVenue(t, db, "Arena")
	r := repo.NewAppointmentRepo(db)
	ctx := context.Background()

	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	a := appt(u.ID, v.ID, start, 1)
	a.Status = domain.StatusCancelled
	if err := db.Create(a).Error; err != nil {
		t.Fatal(err)
	}
	b := appt(u.ID, v.ID, start, 1)
	ok, err := r.CreateIfFree(ctx, b, start.Add(-time.Hour), start.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("cancelled appointment must not block the slot")
	}
}

func TestAppointmentRepo_UpdateIfFreeExcludesSelf(t *testing.T) {
	db := testinfra.NewDB(t)
	u := testinfra.SeedUser(t, db, "a@example.com", domain.RoleUser)
	v := testinfra.SeedVenue(t, db, "Arena")
	r := repo.NewAppointmentRepo(db)
	ctx := context.Background()

	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	a := appt(u.ID, v.ID, start, 2)
	if ok, err := r.CreateIfFree(ctx, a, start.Add(-2*time.Hour), start.Add(2*time.Hour)); err != nil || !ok {
		t.Fatalf("create: ok=%v err=%v", ok, err)
	}
	a.AppointmentDate = start.Add(30 * time.Minute)
	ok, err := r.UpdateIfFree(ctx, a, a.AppointmentDate.Add(-2*time.Hour), a.AppointmentDate.Add(2*time.Hour))
	if err != nil || !ok {
		t.Fatalf("reschedule over own slot: ok=%v err=%v", ok, err)
	}
}

func TestAppointmentRepo_CompleteStartedBefore(t *testing.T) {
	db := testinfra.NewDB(t)
	u := testinfra.SeedUser(t, db, "a@example.com", domain.RoleUser)
	v := testinfra.SeedVenue(t, db, "Arena")
	r := repo.NewAppointmentRepo(db)
	ctx := context.Background()

	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	past := appt(u.ID, v.ID, now.Add(-3*time.Hour), 1)
	pastConfirmed := appt(u.ID, v.ID, now.Add(-48*time.Hour), 1)
	pastConfirmed.Status = domain.StatusConfirmed
	pastCancelled := appt(u.ID, v.ID, now.Add(-5*time.Hour), 1)
	pastCancelled.Status = domain.StatusCancelled
	future := appt(u.ID, v.ID, now.Add(3*time.Hour), 1)
	for _, a := range []*domain.Appointment{past, pastConfirmed, pastCancelled, future} {
		if err := db.Create(a).Error; err != nil {
			t.Fatal(err)
		}
	}

	n, err := r.CompleteStartedBefore(ctx, now, now)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("first pass affected %d, want 2", n)
	}
	n, err = r.CompleteStartedBefore(ctx, now, now)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("second pass affected %d, want 0", n)
	}

	want := []struct {
		id      string
		status  domain.AppointmentStatus
		touched bool
	}{
		{past.ID, domain.StatusCompleted, true},
		{pastConfirmed.ID, domain.StatusCompleted, true},
		{pastCancelled.ID, domain.StatusCancelled, false},
		{future.ID, domain.StatusPending, false},
	}
	for _, w := range want {
		got, err := r.FindByID(ctx, w.id)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != w.status {
			t.Errorf("%s: status = %s, want %s", w.id, got.Status, w.status)
		}
		if stamped := got.UpdatedAt.Equal(now); stamped != w.touched {
			t.Errorf("%s: updated_at = %s, stamped with sweep time = %v, want %v", w.id, got.UpdatedAt, stamped, w.touched)
		}
	}
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	db := testinfra.NewDB(t)
	testinfra.SeedUser(t, db, "dup@example.com", domain.RoleUser)
	r := repo.NewUserRepo(db)

	err := r.Create(context.Background(), &domain.User{
		ID: utils.NewID(), Email: "dup@example.com", Name: "x", PasswordHash: "h", Role: domain.RoleUser, IsActive: true,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestReviewRepo_UniquePerTarget(t *testing.T) {
	db := testinfra.NewDB(t)
	u := testinfra.SeedUser(t, db, "a@example.com", domain.RoleUser)
	v := testinfra.SeedVenue(t, db, "Arena")
	r := repo.NewReviewRepo(db)
	ctx := context.Background()

	mk := func(rating int) *domain.Review {
		return &domain.Review{ID: utils.NewID(), UserID: u.ID, EntityType: domain.EntityVenue, EntityID: v.ID, Rating: rating}
	}
	if err := r.Create(ctx, mk(4)); err != nil {
		t.Fatal(err)
	}
	err := r.Create(ctx, mk(5))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	sum, err := r.Summary(ctx, domain.EntityVenue, v.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Count != 1 || sum.Average != 4 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestVenueRepo_ListCategoryIncludesBoth(t *testing.T) {
	db := testinfra.NewDB(t)
	ctx := context.Background()
	r := repo.NewVenueRepo(db)
	for _, v := range []*domain.Venue{
		{ID: utils.NewID(), Name: "A", Category: domain.CategorySports, Capacity: 1, IsActive: true},
		{ID: utils.NewID(), Name: "B", Category: domain.CategoryBoth, Capacity: 1, IsActive: true},
		{ID: utils.NewID(), Name: "C", Category: domain.CategoryEntertainment, Capacity: 1, IsActive: true},
		{ID: utils.NewID(), Name: "D", Category: domain.CategorySports, Capacity: 1, IsActive: false},
	} {
		if err := r.Create(ctx, v); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		f    domain.VenueFilter
		want int64
	}{
		{"all active", domain.VenueFilter{}, 3},
		{"sports", domain.VenueFilter{Category: domain.CategorySports}, 2},
		{"sports incl inactive", domain.VenueFilter{Category: domain.CategorySports, IncludeInactive: true}, 3},
		{"search", domain.VenueFilter{Q: "c"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total, err := r.List(ctx, tt.f, domain.Page{})
			if err != nil {
				t.Fatal(err)
			}
			if total != tt.want {
				t.Fatalf("total = %d, want %d", total, tt.want)
			}
		})
	}
}

func TestStatsRepo_Dashboard(t *testing.T) {
	db := testinfra.NewDB(t)
	u := testinfra.SeedUser(t, db, "a@example.com", domain.RoleUser)
	testinfra.SeedUser(t, db, "admin@example.com", domain.RoleAdmin)
	v := testinfra.SeedVenue(t, db, "Arena")
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := db.Create(appt(u.ID, v.ID, now.Add(time.Hour), 1)).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&domain.ContactMessage{ID: utils.NewID(), Name: "n", Email: "e@x.io", Subject: "s", Message: "m", Status: domain.ContactNew}).Error; err != nil {
		t.Fatal(err)
	}

	s, err := repo.NewStatsRepo(db).Dashboard(context.Background(), now)
	if err != nil {
		t.Fatal(err)
	}
	if s.Users.Total != 2 || s.Users.Admins != 1 {
		t.Errorf("users = %+v", s.Users)
	}
	if s.Appointments.ByStatus[domain.StatusPending] != 1 || s.Appointments.Upcoming != 1 {
		t.Errorf("appointments = %+v", s.Appointments)
	}
	if len(s.Appointments.Recent) != 1 {
		t.Errorf("recent = %d", len(s.Appointments.Recent))
	}
	if s.UnreadContacts != 1 {
		t.Errorf("unread = %d", s.UnreadContacts)
	}
}
