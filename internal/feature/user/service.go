// Package user 注册登录、个人资料与后台用户管理
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"venue-booking-api/internal/core/auth"
	"venue-booking-api/internal/domain"
	"venue-booking-api/pkg/utils"
)

type Service struct {
	users domain.UserRepository
	jwt   *auth.JWTer
	Now   func() time.Time
}

func NewService(users domain.UserRepository, j *auth.JWTer) *Service {
	return &Service{users: users, jwt: j, Now: time.Now}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email,max=191"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,min=1,max=64"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProfileInput struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

type PasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

type AdminUpdateInput struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=64"`
	Role     *string `json:"role" binding:"omitempty,oneof=user admin"`
	IsActive *bool   `json:"is_active"`
}

type ListQuery struct {
	domain.Page
	Q      string `form:"q"`
	Role   string `form:"role" binding:"omitempty,oneof=user admin"`
	Active *bool  `form:"active"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

var errBadCredentials = domain.Unauthorized("invalid email or password")

func (s *Service) issue(u *domain.User) (*AuthResult, error) {
	tok, err := s.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: tok, User: u}, nil
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict("email is already registered")
		}
		return nil, err
	}
	return s.issue(u)
}

// Login 用户不存在与密码错误返回同一提示
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(in.Password, u.PasswordHash) {
		return nil, errBadCredentials
	}
	if !u.IsActive {
		return nil, domain.Unauthorized("account is deactivated")
	}
	now := s.Now().UTC()
	if err := s.users.TouchLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastLoginAt = &now
	return s.issue(u)
}

func (s *Service) Me(ctx context.Context, p *auth.Principal) (*domain.User, error) {
	return s.users.FindByID(ctx, p.UserID)
}

func (s *Service) UpdateProfile(ctx context.Context, p *auth.Principal, in ProfileInput) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	u.Name = strings.TrimSpace(in.Name)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, p *auth.Principal, in PasswordInput) error {
	u, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(in.CurrentPassword, u.PasswordHash) {
		return domain.FieldError("current_password", "is incorrect")
	}
	hash, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return s.users.Update(ctx, u)
}

func (s *Service) List(ctx context.Context, q ListQuery) (domain.List[domain.User], error) {
	items, total, err := s.users.List(ctx, domain.UserFilter{Q: q.Q, Role: q.Role, Active: q.Active}, q.Page)
	if err != nil {
		return domain.List[domain.User]{}, err
	}
	return domain.NewList(items, total, q.Page), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// AdminUpdate 管理员不能修改自己的角色或停用自己
func (s *Service) AdminUpdate(ctx context.Context, p *auth.Principal, id string, in AdminUpdateInput) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	self := u.ID == p.UserID
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil && *in.Role != u.Role {
		if self {
			return nil, domain.Forbidden("you cannot change your own role")
		}
		u.Role = *in.Role
	}
	if in.IsActive != nil && *in.IsActive != u.IsActive {
		if self {
			return nil, domain.Forbidden("you cannot deactivate your own account")
		}
		u.IsActive = *in.IsActive
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, p *auth.Principal, id string) error {
	if id == p.UserID {
		return domain.Forbidden("you cannot delete your own account")
	}
	return s.users.Delete(ctx, id)
}
