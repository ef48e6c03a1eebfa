package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

var tagColorPattern = regexp.MustCompile(`^#[0-9A-F]{6}$`)

// TagInput 标签写入参数
type TagInput struct {
	Name  string
	Color string
	Slug  string
}

// TagService 标签服务
type TagService struct {
	repo repository.TagRepository
}

// NewTagService 创建标签服务
func NewTagService(repo repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

// List 获取全部标签，优先读取缓存
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	if tags, hit, err := cache.GetTagList(ctx); err == nil && hit {
		return tags, nil
	} else if err != nil {
		logger.Warnw("tag_list_cache_read_failed", "error", err)
	}
	tags, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if err := cache.SetTagList(ctx, tags); err != nil {
		logger.Warnw("tag_list_cache_write_failed", "error", err)
	}
	return tags, nil
}

// Get 获取标签详情
func (s *TagService) Get(id uint) (*models.Tag, error) {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	return tag, nil
}

// Create 创建标签
func (s *TagService) Create(ctx context.Context, input TagInput) (*models.Tag, error) {
	tag, err := normalizeTagInput(input)
	if err != nil {
		return nil, err
	}
	conflict, err := s.repo.FindConflict(tag, 0)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, ErrTagExists
	}
	now := time.Now()
	tag.CreatedAt = now
	tag.UpdatedAt = now
	if err := s.repo.Create(tag); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return tag, nil
}

// Update 更新标签
func (s *TagService) Update(ctx context.Context, id uint, input TagInput) (*models.Tag, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	tag, err := normalizeTagInput(input)
	if err != nil {
		return nil, err
	}
	conflict, err := s.repo.FindConflict(tag, id)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, ErrTagExists
	}
	existing.Name = tag.Name
	existing.Color = tag.Color
	existing.Slug = tag.Slug
	existing.UpdatedAt = time.Now()
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return existing, nil
}

// Delete 删除标签
func (s *TagService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TagService) invalidate(ctx context.Context) {
	if err := cache.InvalidateTagList(ctx); err != nil {
		logger.Warnw("tag_list_cache_invalidate_failed", "error", err)
	}
}

func normalizeTagInput(input TagInput) (*models.Tag, error) {
	name := strings.TrimSpace(input.Name)
	color := strings.ToUpper(strings.TrimSpace(input.Color))
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if name == "" || slug == "" || len([]rune(name)) > 200 || len(slug) > 200 {
		return nil, ErrInvalidInput
	}
	if !tagColorPattern.MatchString(color) {
		return nil, ErrInvalidInput
	}
	return &models.Tag{Name: name, Color: color, Slug: slug}, nil
}
