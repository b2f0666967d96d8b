package blog

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"venue-booking-api/internal/core/auth"
	"venue-booking-api/internal/domain"
	"venue-booking-api/pkg/utils"
)

type Service struct {
	blogs domain.BlogRepository
	Now   func() time.Time
}

func NewService(blogs domain.BlogRepository) *Service {
	return &Service{blogs: blogs, Now: time.Now}
}

type Input struct {
	Title      string   `json:"title" binding:"required,min=1,max=200"`
	Content    string   `json:"content" binding:"required"`
	Excerpt    string   `json:"excerpt" binding:"max=500"`
	CoverImage string   `json:"cover_image" binding:"omitempty,url,max=512"`
	Tags       []string `json:"tags" binding:"max=20,dive,min=1,max=32"`
	Status     string   `json:"status" binding:"omitempty,blog_status"`
}

type UpdateInput struct {
	Title      *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Content    *string  `json:"content" binding:"omitempty,min=1"`
	Excerpt    *string  `json:"excerpt" binding:"omitempty,max=500"`
	CoverImage *string  `json:"cover_image" binding:"omitempty,url,max=512"`
	Tags       []string `json:"tags" binding:"omitempty,max=20,dive,min=1,max=32"`
	Status     *string  `json:"status" binding:"omitempty,blog_status"`
}

type ListQuery struct {
	domain.Page
	Q   string `form:"q"`
	Tag string `form:"tag"`
}

func joinTags(tags []string) string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(t, ",", " ")))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return strings.Join(out, ",")
}

// uniqueSlug 标题生成 slug，冲突时追加 -2、-3 …
func (s *Service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = "post"
	}
	slug := base
	for i := 2; i < 50; i++ {
		taken, err := s.blogs.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(i)
	}
	return base + "-" + utils.NewID()[:8], nil
}

func (s *Service) applyStatus(b *domain.Blog, status string) {
	if status == "" {
		return
	}
	b.Status = status
	if status == domain.BlogPublished && b.PublishedAt == nil {
		now := s.Now().UTC()
		b.PublishedAt = &now
	}
}

func (s *Service) Create(ctx context.Context, p *auth.Principal, in Input) (*domain.Blog, error) {
	slug, err := s.uniqueSlug(ctx, in.Title)
	if err != nil {
		return nil, err
	}
	b := &domain.Blog{
		ID:         utils.NewID(),
		AuthorID:   p.UserID,
		Title:      strings.TrimSpace(in.Title),
		Slug:       slug,
		Excerpt:    strings.TrimSpace(in.Excerpt),
		Content:    in.Content,
		CoverImage: in.CoverImage,
		Tags:       joinTags(in.Tags),
		Status:     domain.BlogDraft,
	}
	s.applyStatus(b, in.Status)
	if err := s.blogs.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) ListPublished(ctx context.Context, q ListQuery) (domain.List[domain.Blog], error) {
	return s.list(ctx, domain.BlogFilter{Q: q.Q, Tag: q.Tag, PublishedOnly: true}, q.Page)
}

func (s *Service) Mine(ctx context.Context, p *auth.Principal, page domain.Page) (domain.List[domain.Blog], error) {
	return s.list(ctx, domain.BlogFilter{AuthorID: p.UserID}, page)
}

func (s *Service) list(ctx context.Context, f domain.BlogFilter, page domain.Page) (domain.List[domain.Blog], error) {
	items, total, err := s.blogs.List(ctx, f, page)
	if err != nil {
		return domain.List[domain.Blog]{}, err
	}
	return domain.NewList(items, total, page), nil
}

func (s *Service) find(ctx context.Context, slugOrID string) (*domain.Blog, error) {
	b, err := s.blogs.FindBySlug(ctx, slugOrID)
	if errors.Is(err, domain.ErrNotFound) {
		return s.blogs.FindByID(ctx, slugOrID)
	}
	return b, err
}

// GetPublic 仅已发布文章可见，每次读取浏览数 +1
func (s *Service) GetPublic(ctx context.Context, slugOrID string) (*domain.Blog, error) {
	b, err := s.find(ctx, slugOrID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BlogPublished {
		return nil, domain.NotFound("blog not found")
	}
	if err := s.blogs.IncrementViews(ctx, b.ID); err != nil {
		return nil, err
	}
	b.Views++
	return b, nil
}

func (s *Service) owned(ctx context.Context, p *auth.Principal, id string) (*domain.Blog, error) {
	b, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(p, b.AuthorID) {
		return nil, domain.Forbidden("you can only modify your own posts")
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, p *auth.Principal, id string, in UpdateInput) (*domain.Blog, error) {
	b, err := s.owned(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		b.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		b.Content = *in.Content
	}
	if in.Excerpt != nil {
		b.Excerpt = strings.TrimSpace(*in.Excerpt)
	}
	if in.CoverImage != nil {
		b.CoverImage = *in.CoverImage
	}
	if in.Tags != nil {
		b.Tags = joinTags(in.Tags)
	}
	if in.Status != nil {
		s.applyStatus(b, *in.Status)
	}
	if err := s.blogs.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, p *auth.Principal, id string) error {
	if _, err := s.owned(ctx, p, id); err != nil {
		return err
	}
	return s.blogs.Delete(ctx, id)
}

// Exists 评价目标校验：仅已发布文章
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	b, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return b.Status == domain.BlogPublished, nil
}
