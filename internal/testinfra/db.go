// Package testinfra 测试用数据库与夹具
package testinfra

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"venue-booking-api/internal/core/database"
)

// NewDB 每个测试一个独立的 sqlite 文件库，已完成迁移
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
