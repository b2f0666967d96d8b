package testinfra

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"venue-booking-api/internal/domain"
	"venue-booking-api/pkg/utils"
)

// SeedUser 写入一个启用的用户，密码固定为 "password123"
func SeedUser(t testing.TB, db *gorm.DB, email, role string) *domain.User {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         "tester",
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := db.WithContext(context.Background()).Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedVenue(t testing.TB, db *gorm.DB, name string) *domain.Venue {
	t.Helper()
	v := &domain.Venue{
		ID:       utils.NewID(),
		Name:     name,
		Category: domain.CategorySports,
		Capacity: 100,
		IsActive: true,
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed venue: %v", err)
	}
	return v
}
