package service

import (
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

// RecipeList 用户菜谱清单类型
type RecipeList string

const (
	RecipeListFavorites    RecipeList = "favorites"
	RecipeListShoppingCart RecipeList = "shopping_cart"
)

// RecipeRelationService 收藏与购物清单服务
type RecipeRelationService struct {
	recipeRepo   repository.RecipeRepository
	favoriteRepo repository.RecipeRelationRepository
	cartRepo     repository.RecipeRelationRepository
}

// NewRecipeRelationService 创建收藏与购物清单服务
func NewRecipeRelationService(recipeRepo repository.RecipeRepository, favoriteRepo, cartRepo repository.RecipeRelationRepository) *RecipeRelationService {
	return &RecipeRelationService{
		recipeRepo:   recipeRepo,
		favoriteRepo: favoriteRepo,
		cartRepo:     cartRepo,
	}
}

// Add 将菜谱加入指定清单，返回菜谱
func (s *RecipeRelationService) Add(list RecipeList, userID, recipeID uint) (*models.Recipe, error) {
	repo, err := s.repoFor(list)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, ErrForbidden
	}
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	exists, err := repo.Exists(userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInList
	}
	if err := repo.Add(userID, recipeID); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Remove 将菜谱移出指定清单
func (s *RecipeRelationService) Remove(list RecipeList, userID, recipeID uint) error {
	repo, err := s.repoFor(list)
	if err != nil {
		return err
	}
	if userID == 0 {
		return ErrForbidden
	}
	exists, err := s.recipeRepo.Exists(recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecipeNotFound
	}
	removed, err := repo.Remove(userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotInList
	}
	return nil
}

func (s *RecipeRelationService) repoFor(list RecipeList) (repository.RecipeRelationRepository, error) {
	switch list {
	case RecipeListFavorites:
		return s.favoriteRepo, nil
	case RecipeListShoppingCart:
		return s.cartRepo, nil
	}
	return nil, ErrInvalidInput
}
