package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"venue-booking-api/internal/domain"
)

// translate 把存储层错误映射为业务错误
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFound("%s not found", what)
	case isDupKey(err):
		return domain.Conflict("%s already exists", what)
	}
	return err
}

func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 部分驱动不走 TranslateError，按消息兜底
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

func like(s string) string { return "%" + strings.ToLower(strings.TrimSpace(s)) + "%" }

func statusStrings(ss []domain.AppointmentStatus) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}
