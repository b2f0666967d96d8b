package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// NewID 实体主键（uuid v4 字符串）
func NewID() string { return uuid.NewString() }

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 标题转 url 片段，仅保留 [a-z0-9-]
func Slugify(s string) string {
	s = nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	s = strings.Trim(s, "-")
	if len(s) > 80 {
		s = strings.TrimRight(s[:80], "-")
	}
	return s
}
