package service

import (
	"time"

	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

// AuthorSubscription 订阅作者及其最新菜谱
type AuthorSubscription struct {
	Author       models.User
	IsSubscribed bool
	RecipesCount int64
	Recipes      []models.Recipe
}

// SubscriptionService 作者订阅服务
type SubscriptionService struct {
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
	recipeRepo       repository.RecipeRepository
}

// NewSubscriptionService 创建订阅服务
func NewSubscriptionService(userRepo repository.UserRepository, subscriptionRepo repository.SubscriptionRepository, recipeRepo repository.RecipeRepository) *SubscriptionService {
	return &SubscriptionService{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		recipeRepo:       recipeRepo,
	}
}

// Subscribe 订阅作者，recipesLimit 控制返回的菜谱条数（<=0 不限制）
func (s *SubscriptionService) Subscribe(userID, authorID uint, recipesLimit int) (*AuthorSubscription, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	if userID == authorID {
		return nil, ErrSubscribeSelf
	}
	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrNotFound
	}
	exists, err := s.subscriptionRepo.Exists(userID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}
	if err := s.subscriptionRepo.Create(&models.Subscription{
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}

	items, err := s.decorate([]models.User{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Unsubscribe 取消订阅
func (s *SubscriptionService) Unsubscribe(userID, authorID uint) error {
	if userID == 0 {
		return ErrNotFound
	}
	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return err
	}
	if author == nil {
		return ErrNotFound
	}
	removed, err := s.subscriptionRepo.Delete(userID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotSubscribed
	}
	return nil
}

// ListSubscriptions 分页获取当前用户订阅的作者
func (s *SubscriptionService) ListSubscriptions(userID uint, page, pageSize, recipesLimit int) ([]AuthorSubscription, int64, error) {
	authors, total, err := s.subscriptionRepo.ListAuthors(repository.SubscriptionListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	items, err := s.decorate(authors, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *SubscriptionService) decorate(authors []models.User, recipesLimit int) ([]AuthorSubscription, error) {
	ids := make([]uint, 0, len(authors))
	for _, author := range authors {
		ids = append(ids, author.ID)
	}
	counts, err := s.recipeRepo.CountByAuthors(ids)
	if err != nil {
		return nil, err
	}
	result := make([]AuthorSubscription, 0, len(authors))
	for _, author := range authors {
		recipes, err := s.recipeRepo.ListByAuthor(author.ID, recipesLimit)
		if err != nil {
			return nil, err
		}
		result = append(result, AuthorSubscription{
			Author:       author,
			IsSubscribed: true,
			RecipesCount: counts[author.ID],
			Recipes:      recipes,
		})
	}
	return result, nil
}
