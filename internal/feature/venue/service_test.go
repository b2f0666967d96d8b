package venue_test

import (
	"context"
	"errors"
	"testing"

	"venue-booking-api/internal/domain"
	"venue-booking-api/internal/feature/venue"
	"venue-booking-api/internal/repo"
	"venue-booking-api/internal/testinfra"
)

func TestVenueLifecycle(t *testing.T) {
	db := testinfra.NewDB(t)
	svc := venue.NewService(repo.NewVenueRepo(db), nil)
	ctx := context.Background()

	v, err := svc.Create(ctx, venue.Input{Name: "Arena", Category: domain.CategorySports, Capacity: 500})
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsActive {
		t.Fatal("new venue should be active")
	}

	capacity := 800
	if _, err := svc.Update(ctx, v.ID, venue.UpdateInput{Capacity: &capacity}); err != nil {
		t.Fatal(err)
	}
	got, err := svc.Get(ctx, v.ID)
	if err != nil || got.Capacity != 800 {
		t.Fatalf("get: %+v %v", got, err)
	}

	if err := svc.Deactivate(ctx, v.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, v.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("inactive venue: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.AdminGet(ctx, v.ID); err != nil {
		t.Fatalf("admin still sees inactive venue: %v", err)
	}

	public, err := svc.List(ctx, venue.ListQuery{}, false)
	if err != nil || public.Total != 0 {
		t.Fatalf("public list: %+v %v", public, err)
	}
	all, err := svc.List(ctx, venue.ListQuery{}, true)
	if err != nil || all.Total != 1 {
		t.Fatalf("admin list: %+v %v", all, err)
	}
	ok, err := svc.Exists(ctx, v.ID)
	if err != nil || ok {
		t.Fatalf("exists = %v %v", ok, err)
	}
}
