package dashboard_test

import (
	"context"
	"testing"
	"time"

	"venue-booking-api/internal/domain"
	"venue-booking-api/internal/feature/dashboard"
	"venue-booking-api/internal/repo"
	"venue-booking-api/internal/testinfra"
)

func TestDashboardWithoutCache(t *testing.T) {
	db := testinfra.NewDB(t)
	testinfra.SeedUser(t, db, "admin@example.com", domain.RoleAdmin)
	testinfra.SeedUser(t, db, "u@example.com", domain.RoleUser)
	testinfra.SeedVenue(t, db, "Arena")

	svc := dashboard.NewService(repo.NewStatsRepo(db), nil)
	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.Users.Total != 2 || got.Users.Admins != 1 || got.Venues.Active != 1 {
		t.Fatalf("stats = %+v", got)
	}
	if !got.GeneratedAt.Equal(fixed) {
		t.Fatalf("generated_at = %v", got.GeneratedAt)
	}
	if got.Appointments.Recent == nil {
		t.Fatal("recent should be an empty slice")
	}
}
