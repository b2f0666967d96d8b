package auth

import (
	"context"

	"venue-booking-api/internal/domain"
)

// Principal 已认证的调用者
type Principal struct {
	UserID string
	Role   string
	Email  string
}

func (p *Principal) IsAdmin() bool { return p != nil && p.Role == domain.RoleAdmin }

// CanModify 本人或管理员
func CanModify(p *Principal, ownerID string) bool {
	if p == nil {
		return false
	}
	return p.IsAdmin() || p.UserID == ownerID
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext 未认证时返回 nil
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(ctxKey{}).(*Principal)
	return p
}
