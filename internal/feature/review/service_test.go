package review_test

import (
	"context"
	"errors"
	"testing"

	"venue-booking-api/internal/core/auth"
	"venue-booking-api/internal/domain"
	"venue-booking-api/internal/feature/review"
	"venue-booking-api/internal/repo"
	"venue-booking-api/internal/testinfra"
)

type known map[string]bool

func (k known) Exists(_ context.Context, id string) (bool, error) { return k[id], nil }

func TestReviewFlow(t *testing.T) {
	db := testinfra.NewDB(t)
	svc := review.NewService(repo.NewReviewRepo(db), map[string]review.TargetChecker{
		domain.EntityVenue: known{"v1": true},
	})
	ctx := context.Background()
	alice := &auth.Principal{UserID: "alice", Role: domain.RoleUser}
	bob := &auth.Principal{UserID: "bob", Role: domain.RoleUser}

	r, err := svc.Create(ctx, alice, review.Input{EntityType: domain.EntityVenue, EntityID: "v1", Rating: 5})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, bob, review.Input{EntityType: domain.EntityVenue, EntityID: "v1", Rating: 2}); err != nil {
		t.Fatal(err)
	}

	_, err = svc.Create(ctx, alice, review.Input{EntityType: domain.EntityVenue, EntityID: "v1", Rating: 1})
	var de *domain.Error
	if !errors.As(err, &de) || !errors.Is(err, domain.ErrConflict) || de.Msg != "you have already reviewed this item" {
		t.Fatalf("duplicate: err = %v", err)
	}

	if _, err := svc.Create(ctx, alice, review.Input{EntityType: domain.EntityVenue, EntityID: "nope", Rating: 3}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing target: err = %v", err)
	}
	if _, err := svc.Create(ctx, alice, review.Input{EntityType: domain.EntityBlog, EntityID: "b1", Rating: 3}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unchecked type: err = %v", err)
	}

	res, err := svc.List(ctx, review.ListQuery{EntityType: domain.EntityVenue, EntityID: "v1"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 2 || res.Summary.Count != 2 || res.Summary.Average != 3.5 {
		t.Fatalf("list = %+v", res)
	}

	one := 1
	if _, err := svc.Update(ctx, bob, r.ID, review.UpdateInput{Rating: &one}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign update: err = %v", err)
	}
	if err := svc.Delete(ctx, &auth.Principal{UserID: "root", Role: domain.RoleAdmin}, r.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}
