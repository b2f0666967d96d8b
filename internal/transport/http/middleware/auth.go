package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"venue-booking-api/internal/core/auth"
	"venue-booking-api/internal/domain"
	resp "venue-booking-api/internal/transport/http/response"
)

const (
	KeyPrincipal = "principal"
	KeyUserID    = "userId"
	KeyRole      = "role"
)

// UserFinder 守卫按 token 中的 uid 回查用户状态
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Guard 三种模式：必须登录 / 可选登录 / 角色限定
type Guard struct {
	jwt   *auth.JWTer
	users UserFinder
	log   *zap.Logger
}

func NewGuard(j *auth.JWTer, users UserFinder, l *zap.Logger) *Guard {
	return &Guard{jwt: j, users: users, log: l}
}

var (
	errNoToken      = errors.New("authentication required")
	errBadToken     = errors.New("invalid or expired token")
	errUnknownUser  = errors.New("user no longer exists")
	errInactiveUser = errors.New("account is deactivated")
)

func bearer(c *gin.Context) string {
	ah := c.GetHeader("Authorization")
	if len(ah) > 7 && strings.EqualFold(ah[:7], "Bearer ") {
		return strings.TrimSpace(ah[7:])
	}
	return ""
}

// resolve 解析 token 并回查用户；返回的 error 可直接作为 401 提示
func (g *Guard) resolve(c *gin.Context) (*auth.Principal, error) {
	raw := bearer(c)
	if raw == "" {
		return nil, errNoToken
	}
	claims, err := g.jwt.Parse(raw)
	if err != nil {
		return nil, errBadToken
	}
	u, err := g.users.FindByID(c.Request.Context(), claims.UID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errUnknownUser
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, errInactiveUser
	}
	// 角色以库内为准，令牌签发后的角色变更立即生效
	return &auth.Principal{UserID: u.ID, Role: u.Role, Email: u.Email}, nil
}

func attach(c *gin.Context, p *auth.Principal) {
	c.Set(KeyPrincipal, p)
	c.Set(KeyUserID, p.UserID)
	c.Set(KeyRole, p.Role)
	c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
}

func (g *Guard) isAuthErr(err error) bool {
	return errors.Is(err, errNoToken) || errors.Is(err, errBadToken) ||
		errors.Is(err, errUnknownUser) || errors.Is(err, errInactiveUser)
}

// Required 未登录、令牌无效或账号停用均 401
func (g *Guard) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := g.resolve(c)
		if err != nil {
			if !g.isAuthErr(err) {
				g.log.Error("guard lookup failed", zap.String("rid", c.GetString(KeyRequestID)), zap.Error(err))
				resp.Abort(c, resp.CodeServerError, "internal error")
				return
			}
			resp.Abort(c, resp.CodeUnauthorized, err.Error())
			return
		}
		attach(c, p)
		c.Next()
	}
}

// Optional 有合法令牌则附加身份，否则按匿名继续
func (g *Guard) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, err := g.resolve(c); err == nil {
			attach(c, p)
		} else if !g.isAuthErr(err) {
			g.log.Warn("optional guard lookup failed", zap.Error(err))
		}
		c.Next()
	}
}

// RequireRole 需在 Required 之后使用
func (g *Guard) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalOf(c)
		if p == nil {
			resp.Abort(c, resp.CodeUnauthorized, errNoToken.Error())
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		resp.Abort(c, resp.CodeForbidden, "insufficient permissions")
	}
}

// PrincipalOf 未认证时返回 nil
func PrincipalOf(c *gin.Context) *auth.Principal {
	if v, ok := c.Get(KeyPrincipal); ok {
		if p, ok := v.(*auth.Principal); ok {
			return p
		}
	}
	return nil
}
